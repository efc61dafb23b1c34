package service

import (
	"testing"

	"moments/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendRequestValidation(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "", "")

	_, err := env.friendships.SendRequest(0, alice.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.friendships.SendRequest(alice.ID, 0)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = env.friendships.SendRequest(alice.ID, alice.ID)
	assert.ErrorIs(t, err, ErrInvalidInput)

	assert.Zero(t, env.count(t, &model.Friendship{}, "1 = 1"))
}

func TestSendRequestIsIdempotentInBothDirections(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "Alice", "")
	bob := env.createUser(t, "bob", "", "")

	first, err := env.friendships.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FriendshipPending, first.Status)
	assert.Equal(t, alice.ID, first.UserID)
	assert.Equal(t, bob.ID, first.FriendID)

	again, err := env.friendships.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, again.ID)

	reverse, err := env.friendships.SendRequest(bob.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, first.ID, reverse.ID)

	assert.EqualValues(t, 1, env.count(t, &model.Friendship{}, "1 = 1"))

	// 只有第一次请求产生通知
	notes := env.notificationsOf(t, bob.ID, model.NotificationFriendRequest)
	require.Len(t, notes, 1)
	assert.Equal(t, "Alice 向你发送了好友请求", notes[0].Content)
	assert.Equal(t, first.ID, notes[0].RelatedID)
	assert.Equal(t, 1, env.pusher.notificationCount(bob.ID))
	assert.Empty(t, env.notificationsOf(t, alice.ID, model.NotificationFriendRequest))
}

func TestAcceptOnlyByTargetWhilePending(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "", "")
	bob := env.createUser(t, "bob", "", "")

	f, err := env.friendships.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)

	// 发起方不能接受自己的请求
	got, err := env.friendships.Accept(f.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FriendshipPending, got.Status)
	assert.False(t, env.friendships.AreFriends(alice.ID, bob.ID))

	got, err = env.friendships.Accept(f.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FriendshipAccepted, got.Status)

	// 终态不再迁移
	got, err = env.friendships.Reject(f.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FriendshipAccepted, got.Status)

	stored, err := env.friendships.Get(f.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FriendshipAccepted, stored.Status)
}

func TestRejectIsTerminalAndBlocksNewRequest(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "", "")
	bob := env.createUser(t, "bob", "", "")

	f, err := env.friendships.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	got, err := env.friendships.Reject(f.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FriendshipRejected, got.Status)

	got, err = env.friendships.Accept(f.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, model.FriendshipRejected, got.Status)

	again, err := env.friendships.SendRequest(alice.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, f.ID, again.ID)
	assert.Equal(t, model.FriendshipRejected, again.Status)
	assert.False(t, env.friendships.AreFriends(alice.ID, bob.ID))
}

func TestAcceptUnknownFriendship(t *testing.T) {
	env := newTestEnv(t)
	got, err := env.friendships.Accept(404, 1)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotFound)

	got, err = env.friendships.Reject(404, 1)
	assert.Nil(t, got)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestAreFriendsIsSymmetric(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "", "")
	bob := env.createUser(t, "bob", "", "")
	carol := env.createUser(t, "carol", "", "")

	env.befriend(t, alice, bob)

	assert.True(t, env.friendships.AreFriends(alice.ID, bob.ID))
	assert.True(t, env.friendships.AreFriends(bob.ID, alice.ID))
	assert.False(t, env.friendships.AreFriends(alice.ID, carol.ID))
	assert.False(t, env.friendships.AreFriends(carol.ID, alice.ID))
	assert.False(t, env.friendships.AreFriends(0, alice.ID))
}

func TestDeleteRemovesOnlyDirectedRecord(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "", "")
	bob := env.createUser(t, "bob", "", "")
	env.befriend(t, alice, bob)

	require.NoError(t, env.friendships.Delete(bob.ID, alice.ID))
	assert.True(t, env.friendships.AreFriends(alice.ID, bob.ID))

	require.NoError(t, env.friendships.Delete(alice.ID, bob.ID))
	assert.False(t, env.friendships.AreFriends(alice.ID, bob.ID))
}

func TestListFriendsAndPending(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "", "")
	bob := env.createUser(t, "bob", "", "")
	carol := env.createUser(t, "carol", "", "")
	dave := env.createUser(t, "dave", "", "")

	env.befriend(t, alice, bob)
	env.befriend(t, carol, alice)
	_, err := env.friendships.SendRequest(dave.ID, alice.ID)
	require.NoError(t, err)

	friends, err := env.friendships.ListFriends(alice.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []uint{bob.ID, carol.ID}, friends)

	pending, err := env.friendships.ListPendingIncoming(alice.ID)
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, dave.ID, pending[0].UserID)

	all, err := env.friendships.ListByUser(alice.ID)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestFriendshipAdminOperations(t *testing.T) {
	env := newTestEnv(t)
	alice := env.createUser(t, "alice", "", "")
	bob := env.createUser(t, "bob", "", "")

	_, err := env.friendships.ListAll(callerOf(alice))
	assert.ErrorIs(t, err, ErrForbidden)
	_, err = env.friendships.AdminCreate(callerOf(alice), alice.ID, bob.ID, model.FriendshipAccepted)
	assert.ErrorIs(t, err, ErrForbidden)

	f, err := env.friendships.AdminCreate(adminCaller, alice.ID, bob.ID, model.FriendshipAccepted)
	require.NoError(t, err)
	assert.True(t, env.friendships.AreFriends(alice.ID, bob.ID))
	assert.Empty(t, env.notificationsOf(t, bob.ID, model.NotificationFriendRequest))

	_, err = env.friendships.AdminUpdateStatus(adminCaller, f.ID, "BLOCKED")
	assert.ErrorIs(t, err, ErrInvalidInput)

	f, err = env.friendships.AdminUpdateStatus(adminCaller, f.ID, model.FriendshipRejected)
	require.NoError(t, err)
	assert.Equal(t, model.FriendshipRejected, f.Status)
	assert.False(t, env.friendships.AreFriends(alice.ID, bob.ID))

	list, err := env.friendships.ListAll(adminCaller)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, env.friendships.AdminDeleteByID(adminCaller, f.ID))
	assert.ErrorIs(t, env.friendships.AdminDeleteByID(adminCaller, f.ID), ErrNotFound)
}
