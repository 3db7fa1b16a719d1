package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServiceImpl_CreateUser(t *testing.T) {
	t.Run("should create operator with generated uid", func(t *testing.T) {
		// given
		service := NewUserService(NewStubUserRepository())

		// when
		created, err := service.CreateUser(context.Background(), User{Username: " ana ", DisplayName: "Ana Souza"})

		// then
		require.NoError(t, err)
		assert.NotZero(t, created.Id)
		assert.NotEmpty(t, created.Uid)
		assert.Equal(t, "ana", created.Username)
		assert.Equal(t, RoleOperator, created.Role)
	})

	t.Run("should reject missing display name", func(t *testing.T) {
		service := NewUserService(NewStubUserRepository())

		_, err := service.CreateUser(context.Background(), User{Username: "ana"})

		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})

	t.Run("should reject uid that is not a UUID", func(t *testing.T) {
		service := NewUserService(NewStubUserRepository())

		_, err := service.CreateUser(context.Background(), User{Uid: "ana-1", Username: "ana", DisplayName: "Ana"})

		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})

	t.Run("should reject unknown role", func(t *testing.T) {
		service := NewUserService(NewStubUserRepository())

		_, err := service.CreateUser(context.Background(), User{Username: "ana", DisplayName: "Ana", Role: "root"})

		assert.ErrorIs(t, err, ErrUserDataInvalid)
	})
}

func TestServiceImpl_GetCurrentUser(t *testing.T) {
	t.Run("should read the user stored in context", func(t *testing.T) {
		// given
		service := NewUserService(NewStubUserRepository())
		created, err := service.CreateUser(context.Background(), User{Username: "ana", DisplayName: "Ana"})
		require.NoError(t, err)
		ctx := WithUser(context.Background(), created)

		// when
		current, err := service.GetCurrentUser(ctx)

		// then
		require.NoError(t, err)
		assert.Equal(t, created, current)
	})

	t.Run("should return error when context has no user", func(t *testing.T) {
		service := NewUserService(NewStubUserRepository())

		_, err := service.GetCurrentUser(context.Background())

		assert.ErrorIs(t, err, ErrNoUser)
		assert.Contains(t, err.Error(), "failed to get current user")
	})
}
