package service

import (
	"testing"

	"socset_backend/internal/model"
	"socset_backend/internal/repository"
	"socset_backend/pkg/database"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// newTestDB 内存库，单连接避免每个连接各拿一份 :memory:
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

func createUser(t *testing.T, db *gorm.DB, username string) *model.User {
	t.Helper()

	user := &model.User{
		Username: username,
		Email:    username + "@example.com",
		Password: "not-a-real-hash",
		IsActive: true,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

// 测试里 Redis 传 nil，仓库层会直接回源数据库

func newFriendshipService(db *gorm.DB) *FriendshipService {
	return NewFriendshipService(
		repository.NewFriendshipRepository(db, nil),
		repository.NewUserRepository(db),
	)
}

func newFeedService(db *gorm.DB) *FeedService {
	return NewFeedService(
		repository.NewPostRepository(db),
		repository.NewFriendshipRepository(db, nil),
		repository.NewUserRepository(db),
	)
}

func newMessageService(db *gorm.DB) *MessageService {
	return NewMessageService(
		repository.NewMessageRepository(db),
		repository.NewUserRepository(db),
	)
}

// makeFriends 直接建立好友关系，绕过申请流程
func makeFriends(t *testing.T, db *gorm.DB, a, b uint) {
	t.Helper()
	require.NoError(t, db.Create(&model.Friendship{UserID: a, FriendID: b}).Error)
	require.NoError(t, db.Create(&model.Friendship{UserID: b, FriendID: a}).Error)
}

func friendshipCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.Friendship{}).Count(&count).Error)
	return count
}

func requestCount(t *testing.T, db *gorm.DB) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.FriendRequest{}).Count(&count).Error)
	return count
}
