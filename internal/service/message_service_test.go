package service

import (
	"testing"

	"moments/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendMessageRequiresFriendship(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "", "")
	bob := env.createUser(t, "bob", "", "")

	_, err := env.messages.Send(alice.ID, bob.ID, "hi")
	assert.ErrorIs(t, err, ErrNotFriends)

	_, err = env.messages.Send(alice.ID, alice.ID, "hi")
	assert.ErrorIs(t, err, ErrInvalidInput)

	// WebSocket 帧被静默丢弃
	assert.NoError(t, env.messages.ReceiveChat(alice.ID, bob.ID, "hi"))
	assert.Zero(t, env.count(t, &model.Message{}, "1 = 1"))
	assert.Empty(t, env.pusher.chats[bob.ID])
}

func TestSendMessageBetweenFriends(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "", "")
	bob := env.createUser(t, "bob", "", "")
	env.befriend(t, bob, alice)

	msg, err := env.messages.Send(alice.ID, bob.ID, " 在吗 ")
	require.NoError(t, err)
	assert.Equal(t, "在吗", msg.Content)

	require.Len(t, env.pusher.chats[bob.ID], 1)
	assert.Equal(t, msg.ID, env.pusher.chats[bob.ID][0].ID)

	notes := env.notificationsOf(t, bob.ID, model.NotificationMessage)
	require.Len(t, notes, 1)
	assert.Equal(t, "alice 给你发送了私信: \"在吗\"", notes[0].Content)
	assert.Equal(t, msg.ID, notes[0].RelatedID)

	require.NoError(t, env.messages.ReceiveChat(bob.ID, alice.ID, "在"))

	history, err := env.messages.History(alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, "在吗", history[0].Content)
	assert.Equal(t, "在", history[1].Content)

	unread, err := env.messages.Unread(bob.ID)
	require.NoError(t, err)
	assert.Len(t, unread, 1)

	n, err := env.messages.MarkAsRead(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	unread, err = env.messages.Unread(bob.ID)
	require.NoError(t, err)
	assert.Empty(t, unread)
}

func TestMessageHistoryAndDeletePermissions(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "", "")
	bob := env.createUser(t, "bob", "", "")
	carol := env.createUser(t, "carol", "", "")
	env.befriend(t, alice, bob)

	_, err := env.messages.History(alice.ID, carol.ID)
	assert.ErrorIs(t, err, ErrNotFriends)

	msg, err := env.messages.Send(alice.ID, bob.ID, "hello")
	require.NoError(t, err)

	assert.ErrorIs(t, env.messages.Delete(callerOf(bob), msg.ID), ErrForbidden)
	assert.ErrorIs(t, env.messages.Delete(callerOf(alice), 404), ErrNotFound)
	require.NoError(t, env.messages.Delete(callerOf(alice), msg.ID))
	assert.Zero(t, env.count(t, &model.Message{}, "id = ?", msg.ID))
}
