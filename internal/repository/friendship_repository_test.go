package repository

import (
	"testing"

	"socset_backend/internal/model"
	"socset_backend/internal/util"
	"socset_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func TestAcceptRequestTransaction(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db, nil)

	require.NoError(t, db.Create(&model.FriendRequest{FromUserID: 1, ToUserID: 2}).Error)

	require.NoError(t, repo.AcceptRequest(1, 2))

	var count int64
	require.NoError(t, db.Model(&model.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)

	// 申请已随事务删除，二次接受踩到 RowsAffected 守卫
	err := repo.AcceptRequest(1, 2)
	assert.ErrorIs(t, err, util.ErrRequestNotFound)
	require.NoError(t, db.Model(&model.Friendship{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestAcceptRequestRollsBackOnDuplicatePair(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db, nil)

	// 申请还在，但好友行已存在：插入撞复合主键，整个事务回滚
	require.NoError(t, db.Create(&model.FriendRequest{FromUserID: 1, ToUserID: 2}).Error)
	require.NoError(t, db.Create(&model.Friendship{UserID: 2, FriendID: 1}).Error)

	err := repo.AcceptRequest(1, 2)
	require.Error(t, err)

	// 申请没有被删掉，也没有多出半对好友行
	var reqCount, pairCount int64
	require.NoError(t, db.Model(&model.FriendRequest{}).Count(&reqCount).Error)
	require.NoError(t, db.Model(&model.Friendship{}).Count(&pairCount).Error)
	assert.EqualValues(t, 1, reqCount)
	assert.EqualValues(t, 1, pairCount)
}

func TestGetFriendIDs(t *testing.T) {
	db := newTestDB(t)
	repo := NewFriendshipRepository(db, nil)

	for _, pair := range [][2]uint{{1, 2}, {2, 1}, {1, 3}, {3, 1}} {
		require.NoError(t, db.Create(&model.Friendship{UserID: pair[0], FriendID: pair[1]}).Error)
	}

	ids, err := repo.GetFriendIDs(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{2, 3}, ids)

	// 没有 Redis 时缓存通道直接回源
	ids, err = repo.GetFriendIDsCached(1)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{2, 3}, ids)
}

func TestParseFriendIDs(t *testing.T) {
	// 哨兵 0 和脏成员都跳过，合法 ID 原样保留
	ids := parseFriendIDs([]string{"2", "0", "not-a-number", "", "-5", "3"})
	assert.ElementsMatch(t, []uint{2, 3}, ids)

	assert.Empty(t, parseFriendIDs([]string{"0"}))
	assert.Empty(t, parseFriendIDs(nil))
}
