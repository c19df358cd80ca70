package service

import (
	"testing"

	"socset_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessage(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	msg, err := svc.SendMessage(alice.ID, bob.ID, "hi bob")
	require.NoError(t, err)
	assert.NotEmpty(t, msg.ID)
	assert.Equal(t, alice.ID, msg.SenderID)
	assert.Equal(t, bob.ID, msg.RecipientID)
	assert.Equal(t, "hi bob", msg.Content)
	assert.False(t, msg.IsRead)
}

func TestSendMessageUnknownRecipient(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := createUser(t, db, "alice")

	_, err := svc.SendMessage(alice.ID, 9999, "hello?")
	assert.ErrorIs(t, err, util.ErrUserNotFound)
}

func TestSendMessageEmptyContent(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.SendMessage(alice.ID, bob.ID, " ")
	assert.ErrorIs(t, err, util.ErrEmptyContent)
}

func TestSendMessageToSelf(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := createUser(t, db, "alice")

	// 给自己发消息不拦
	_, err := svc.SendMessage(alice.ID, alice.ID, "note to self")
	require.NoError(t, err)

	msgs, err := svc.Conversation(alice.ID, alice.ID)
	require.NoError(t, err)
	assert.Len(t, msgs, 1)
}

func TestConversation(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")

	_, err := svc.SendMessage(alice.ID, bob.ID, "one")
	require.NoError(t, err)
	_, err = svc.SendMessage(bob.ID, alice.ID, "two")
	require.NoError(t, err)
	_, err = svc.SendMessage(alice.ID, bob.ID, "three")
	require.NoError(t, err)
	// 不相干的会话不应混进来
	_, err = svc.SendMessage(alice.ID, carol.ID, "other thread")
	require.NoError(t, err)

	// 两个方向合并，按时间升序；参数顺序不影响结果
	for _, pair := range [][2]uint{{alice.ID, bob.ID}, {bob.ID, alice.ID}} {
		msgs, err := svc.Conversation(pair[0], pair[1])
		require.NoError(t, err)
		require.Len(t, msgs, 3)
		assert.Equal(t, "one", msgs[0].Content)
		assert.Equal(t, "two", msgs[1].Content)
		assert.Equal(t, "three", msgs[2].Content)
	}
}

func TestConversationEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")

	_, err := svc.Conversation(alice.ID, bob.ID)
	assert.ErrorIs(t, err, util.ErrConversationNotFound)
}

func TestContacts(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	carol := createUser(t, db, "carol")
	createUser(t, db, "dave")

	// 双向往来只算一个联系人
	_, err := svc.SendMessage(alice.ID, bob.ID, "hi")
	require.NoError(t, err)
	_, err = svc.SendMessage(bob.ID, alice.ID, "hi back")
	require.NoError(t, err)
	_, err = svc.SendMessage(carol.ID, alice.ID, "hey")
	require.NoError(t, err)

	contacts, err := svc.Contacts(alice.ID)
	require.NoError(t, err)
	require.Len(t, contacts, 2)

	names := []string{contacts[0].Username, contacts[1].Username}
	assert.ElementsMatch(t, []string{"bob", "carol"}, names)
}

func TestContactsEmpty(t *testing.T) {
	db := newTestDB(t)
	svc := newMessageService(db)

	alice := createUser(t, db, "alice")

	contacts, err := svc.Contacts(alice.ID)
	require.NoError(t, err)
	assert.Empty(t, contacts)
}
