package service

import (
	"testing"

	"socset_backend/internal/model"
	"socset_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	created, err := svc.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.EqualValues(t, 1, requestCount(t, db))

	// 重复发起不报错也不新建
	created, err = svc.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.False(t, created)
	assert.EqualValues(t, 1, requestCount(t, db))
}

func TestSendRequestSelfTarget(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")

	_, err := svc.SendRequest(alice.ID, alice.ID)
	assert.ErrorIs(t, err, util.ErrSelfTarget)
}

func TestSendRequestUnknownTarget(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")

	_, err := svc.SendRequest(alice.ID, 9999)
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestSendRequestAlreadyFriends(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	makeFriends(t, db, alice.ID, bob.ID)

	_, err := svc.SendRequest(alice.ID, bob.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyFriends)
}

func TestSendRequestBothDirectionsCoexist(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	created, err := svc.SendRequest(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, created)
	assert.EqualValues(t, 2, requestCount(t, db))
}

func TestAcceptRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, svc.AcceptRequest(bob.ID, alice.ID))

	// 申请已删除，两行对称关系已建立
	assert.EqualValues(t, 0, requestCount(t, db))
	assert.EqualValues(t, 2, friendshipCount(t, db))

	// 每次查询用新的目标结构体，已填充的主键字段会被 gorm 当成附加条件
	var forward, backward model.Friendship
	require.NoError(t, db.First(&forward, "user_id = ? AND friend_id = ?", alice.ID, bob.ID).Error)
	require.NoError(t, db.First(&backward, "user_id = ? AND friend_id = ?", bob.ID, alice.ID).Error)
}

func TestAcceptRequestWithoutRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	err := svc.AcceptRequest(bob.ID, alice.ID)
	assert.ErrorIs(t, err, util.ErrRequestNotFound)
	assert.EqualValues(t, 0, friendshipCount(t, db))
}

func TestAcceptRequestAlreadyFriends(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	makeFriends(t, db, alice.ID, bob.ID)

	// 残留的申请不应该造出第二对行
	require.NoError(t, db.Create(&model.FriendRequest{FromUserID: alice.ID, ToUserID: bob.ID}).Error)

	err := svc.AcceptRequest(bob.ID, alice.ID)
	assert.ErrorIs(t, err, util.ErrAlreadyFriends)
	assert.EqualValues(t, 2, friendshipCount(t, db))
}

func TestAcceptRequestSelfTarget(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")

	err := svc.AcceptRequest(alice.ID, alice.ID)
	assert.ErrorIs(t, err, util.ErrSelfTarget)
}

func TestDeclineRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	require.NoError(t, svc.DeclineRequest(bob.ID, alice.ID))
	assert.EqualValues(t, 0, requestCount(t, db))
	assert.EqualValues(t, 0, friendshipCount(t, db))

	// 拒绝后可以重新申请
	created, err := svc.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, created)
}

func TestDeclineRequestWithoutRequest(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	err := svc.DeclineRequest(bob.ID, alice.ID)
	assert.ErrorIs(t, err, util.ErrRequestNotFound)
}

func TestRemoveFriend(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	makeFriends(t, db, alice.ID, bob.ID)

	require.NoError(t, svc.RemoveFriend(alice.ID, bob.ID))
	assert.EqualValues(t, 0, friendshipCount(t, db))

	// 第二次删除报"不是好友"
	err := svc.RemoveFriend(alice.ID, bob.ID)
	assert.ErrorIs(t, err, util.ErrNotFriends)
}

func TestRemoveFriendRepairsSingleRow(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	// 只有一个方向的残留行，删除按修复处理
	require.NoError(t, db.Create(&model.Friendship{UserID: alice.ID, FriendID: bob.ID}).Error)

	require.NoError(t, svc.RemoveFriend(bob.ID, alice.ID))
	assert.EqualValues(t, 0, friendshipCount(t, db))
}

func TestListFriendships(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	makeFriends(t, db, alice.ID, bob.ID)
	makeFriends(t, db, carol.ID, alice.ID)

	rows, err := svc.ListFriendships(alice.ID)
	require.NoError(t, err)
	// alice 出现在四行里（每段关系两行）
	assert.Len(t, rows, 4)

	usernames := make(map[string]bool)
	for _, row := range rows {
		usernames[row.User.Username] = true
		usernames[row.Friend.Username] = true
	}
	assert.True(t, usernames["alice"])
	assert.True(t, usernames["bob"])
	assert.True(t, usernames["carol"])
}

func TestListRequests(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	_, err := svc.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	_, err = svc.SendRequest(carol.ID, alice.ID)
	require.NoError(t, err)

	// 发出的和收到的都在
	reqs, err := svc.ListRequests(alice.ID)
	require.NoError(t, err)
	require.Len(t, reqs, 2)

	// bob 只看到收到的那条
	reqs, err = svc.ListRequests(bob.ID)
	require.NoError(t, err)
	require.Len(t, reqs, 1)
	assert.Equal(t, "alice", reqs[0].FromUser.Username)
	assert.Equal(t, "bob", reqs[0].ToUser.Username)
}

func TestAcceptAfterRemoveLifecycle(t *testing.T) {
	db := newTestDB(t)
	svc := newFriendshipService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	// 申请 → 接受 → 删除 → 重新申请 → 再接受，全程走通
	_, err := svc.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	require.NoError(t, svc.AcceptRequest(bob.ID, alice.ID))
	require.NoError(t, svc.RemoveFriend(alice.ID, bob.ID))

	created, err := svc.SendRequest(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, created)
	require.NoError(t, svc.AcceptRequest(alice.ID, bob.ID))
	assert.EqualValues(t, 2, friendshipCount(t, db))
}
