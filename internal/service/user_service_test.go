package service

import (
	"testing"
	"time"

	"moments/config"
	"moments/internal/model"
	"moments/internal/repository"
	"moments/pkg/jwt"
	"moments/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newUserService(t *testing.T, env *testEnv) (*UserService, *jwt.JWTService) {
	t.Helper()
	jwtSvc := jwt.NewJWTService(config.JWTConfig{Secret: "test-secret", Issuer: "moments-test", ExpireTime: time.Hour})
	return NewUserService(repository.NewUserRepository(env.db), jwtSvc), jwtSvc
}

func TestRegisterAndLogin(t *testing.T) {
	env := newTestEnv(t)
	users, jwtSvc := newUserService(t, env)

	u, token, err := users.Register("alice", "alice@example.com", "爱丽丝", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, model.RoleUser, u.Role)

	caller, err := jwtSvc.ParseCaller(token)
	require.NoError(t, err)
	assert.Equal(t, u.ID, caller.UserID)
	assert.Equal(t, "alice", caller.Username)
	assert.False(t, caller.IsAdmin)

	_, _, err = users.Register("alice", "", "", "other")
	assert.ErrorIs(t, err, ErrConflict)
	_, _, err = users.Register(" ", "", "", "pw")
	assert.ErrorIs(t, err, ErrInvalidInput)
	_, _, err = users.Register("carol", "", "", "12345")
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, _, err = users.Login("alice", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, _, err = users.Login("nobody", "s3cret")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	logged, _, err := users.Login("alice@example.com", "s3cret")
	require.NoError(t, err)
	assert.Equal(t, u.ID, logged.ID)
}

func TestUpdateProfileKeepsUnsetFields(t *testing.T) {
	env := newTestEnv(t)
	users, _ := newUserService(t, env)
	alice := env.createUser(t, "alice", "old", "a@example.com")

	nick := "new"
	bio := "  hello  "
	u, err := users.UpdateProfile(callerOf(alice), ProfileInput{Nickname: &nick, Bio: &bio})
	require.NoError(t, err)
	assert.Equal(t, "new", u.Nickname)
	assert.Equal(t, "hello", u.Bio)
	assert.Equal(t, "a@example.com", u.Email)

	got, err := users.GetProfile(alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "new", got.Nickname)

	_, err = users.GetProfile(404)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUserAdminOperations(t *testing.T) {
	env := newTestEnv(t)
	users, _ := newUserService(t, env)
	alice := env.createUser(t, "alice", "", "")

	_, err := users.ListUsers(callerOf(alice))
	assert.ErrorIs(t, err, ErrForbidden)

	bob, err := users.AdminCreate(adminCaller, "bob", "", "", "", "")
	require.NoError(t, err)
	assert.True(t, password.Verify(defaultPassword, bob.PasswordHash))

	require.NoError(t, users.UpdateRole(adminCaller, bob.ID, model.RoleAdmin))
	assert.ErrorIs(t, users.UpdateRole(adminCaller, bob.ID, "ROOT"), ErrInvalidInput)

	_, _, err = users.Login("bob", defaultPassword)
	require.NoError(t, err)

	list, err := users.ListUsers(adminCaller)
	require.NoError(t, err)
	assert.Len(t, list, 2)

	require.NoError(t, users.ResetPassword(adminCaller, alice.ID))
	_, _, err = users.Login("alice", defaultPassword)
	require.NoError(t, err)

	require.NoError(t, users.DeleteUser(adminCaller, alice.ID))
	assert.ErrorIs(t, users.DeleteUser(adminCaller, alice.ID), ErrNotFound)
}
