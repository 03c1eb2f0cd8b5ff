package sqlxrepos_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpeck07/StudentoS/core/user"
	"github.com/rpeck07/StudentoS/storage/database/sqlx"
	"github.com/rpeck07/StudentoS/testutil"
)

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := sqlxrepos.NewUserRepository(testutil.PrepareDB(t))

	created := time.Date(2026, 2, 1, 8, 30, 0, 0, time.UTC)
	usr := testutil.CreateUser(t, repo, "alice", "s3cr3t-pwd", true, created)

	t.Run("get by id and username", func(t *testing.T) {
		byID, err := repo.GetUserByID(ctx, usr.ID)
		require.NoError(t, err)
		byName, err := repo.GetUserByUsername(ctx, "alice")
		require.NoError(t, err)

		for _, got := range []user.User{byID, byName} {
			assert.Equal(t, usr.ID, got.ID)
			assert.Equal(t, "alice", got.Username)
			assert.True(t, got.IsActive)
			assert.True(t, got.CreatedAt.Equal(created))
			assert.True(t, got.LastLogin.IsZero())
			assert.NoError(t, got.CheckPassword("s3cr3t-pwd"))
		}
	})

	t.Run("missing user", func(t *testing.T) {
		_, err := repo.GetUserByID(ctx, "nope")
		assert.Equal(t, user.ErrNotFound, err)
		_, err = repo.GetUserByUsername(ctx, "nobody")
		assert.Equal(t, user.ErrNotFound, err)
	})

	t.Run("duplicate username", func(t *testing.T) {
		dup := usr
		dup.ID = "another-id"
		_, err := repo.CreateUser(ctx, dup)
		assert.Equal(t, user.ErrUsernameExists, err)
	})

	t.Run("update", func(t *testing.T) {
		login := time.Date(2026, 2, 10, 9, 0, 0, 0, time.UTC)
		upd := usr
		upd.IsActive = false
		upd.LastLogin = login
		got, err := repo.UpdateUser(ctx, upd)
		require.NoError(t, err)
		assert.False(t, got.IsActive)
		assert.True(t, got.LastLogin.Equal(login))

		_, err = repo.UpdateUser(ctx, user.User{ID: "nope", Username: "ghost"})
		assert.Equal(t, user.ErrNotFound, err)
	})
}
