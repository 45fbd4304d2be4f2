package sqlxrepos_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trezcool/codedaily/core/user"
	"github.com/trezcool/codedaily/storage/database/sqlx"
	"github.com/trezcool/codedaily/tests"
)

func Test_userRepository(t *testing.T) {
	db := testutil.PrepareDB(t)
	repo := sqlxrepos.NewUserRepository(db)
	ctx := context.Background()

	joined := time.Date(2024, 3, 1, 8, 30, 0, 0, time.UTC)
	usr := testutil.CreateUser(t, repo, "ada@test.dev", "Ada", "s3cret!pwd", user.RoleStudent, true, joined)
	other := testutil.CreateUser(t, repo, "bob@test.dev", "Bob", "", user.RoleAdmin, true)

	t.Run("get", func(t *testing.T) {
		got, err := repo.GetUserByID(ctx, usr.ID)
		require.NoError(t, err)
		assert.Equal(t, "ada@test.dev", got.Email)
		assert.True(t, got.DateJoined.Equal(joined))
		assert.True(t, got.LastLogin.IsZero())
		assert.NoError(t, got.CheckPassword("s3cret!pwd"))

		got, err = repo.GetUserByEmail(ctx, "bob@test.dev")
		require.NoError(t, err)
		assert.Equal(t, other.ID, got.ID)
		assert.True(t, got.IsStaff)
	})

	t.Run("not found", func(t *testing.T) {
		_, err := repo.GetUserByID(ctx, "not-a-uuid")
		assert.Equal(t, user.ErrNotFound, err)

		_, err = repo.GetUserByEmail(ctx, "nobody@test.dev")
		assert.Equal(t, user.ErrNotFound, err)
	})

	t.Run("email uniqueness", func(t *testing.T) {
		assert.Equal(t, user.ErrEmailExists, repo.CheckEmailUniqueness(ctx, "ada@test.dev"))
		assert.NoError(t, repo.CheckEmailUniqueness(ctx, "ada@test.dev", usr))
		assert.NoError(t, repo.CheckEmailUniqueness(ctx, "new@test.dev"))
	})

	t.Run("update", func(t *testing.T) {
		lastLogin := time.Date(2024, 4, 2, 10, 0, 0, 0, time.UTC)
		usr.FullName = "Ada Lovelace"
		usr.LastLogin = lastLogin

		got, err := repo.UpdateUser(ctx, usr)
		require.NoError(t, err)
		assert.Equal(t, "Ada Lovelace", got.FullName)
		assert.True(t, got.LastLogin.Equal(lastLogin))

		ghost := usr
		ghost.ID = "0b7c4f5e-3a52-4a53-9a54-6b3c1e1f2a3b"
		_, err = repo.UpdateUser(ctx, ghost)
		assert.Equal(t, user.ErrNotFound, err)
	})
}
