package user_test

import (
	"errors"
	"testing"
	"time"

	"marketplace/internal/core/domain/model/kernel"
	"marketplace/internal/core/domain/model/user"
	"marketplace/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	validID := kernel.NewUUID()
	now := time.Now()

	t.Run("should create valid user with client role", func(t *testing.T) {
		u, err := user.NewUser(validID, "jamie@example.com", "Jamie", "$2a$10$hash", now)

		require.NoError(t, err)
		require.NoError(t, u.Validate())
		assert.True(t, u.ID().IsEqual(validID))
		assert.Equal(t, "jamie@example.com", u.Email())
		assert.Equal(t, "Jamie", u.Name())
		assert.Equal(t, user.Client, u.Role())
		assert.Equal(t, now, u.CreatedAt())
		assert.Equal(t, now, u.UpdatedAt())
	})

	t.Run("should fail with invalid email", func(t *testing.T) {
		for _, email := range []string{"", "not-an-email", "a@b", "a b@example.com"} {
			u, err := user.NewUser(validID, email, "Jamie", "$2a$10$hash", now)

			require.Error(t, err, "email %q must be rejected", email)
			assert.Nil(t, u)
			assert.True(t, errors.Is(err, errs.ErrValueIsInvalid))
		}
	})

	t.Run("should fail with empty name", func(t *testing.T) {
		u, err := user.NewUser(validID, "jamie@example.com", "", "$2a$10$hash", now)

		require.Error(t, err)
		assert.Nil(t, u)
		assert.True(t, errors.Is(err, errs.ErrValueIsRequired))
	})

	t.Run("should fail with empty password hash", func(t *testing.T) {
		u, err := user.NewUser(validID, "jamie@example.com", "Jamie", "", now)

		require.Error(t, err)
		assert.Nil(t, u)
	})
}

func TestUser_ProfileUpdates(t *testing.T) {
	newUser := func(t *testing.T) *user.User {
		t.Helper()
		u, err := user.NewUser(kernel.NewUUID(), "jamie@example.com", "Jamie", "$2a$10$hash", time.Now())
		require.NoError(t, err)
		return u
	}

	t.Run("rename refreshes updated_at", func(t *testing.T) {
		u := newUser(t)
		later := u.UpdatedAt().Add(time.Minute)

		require.NoError(t, u.Rename("Jamie Q", later))
		assert.Equal(t, "Jamie Q", u.Name())
		assert.Equal(t, later, u.UpdatedAt())
	})

	t.Run("rename rejects empty name", func(t *testing.T) {
		u := newUser(t)

		require.Error(t, u.Rename("", time.Now()))
		assert.Equal(t, "Jamie", u.Name())
	})

	t.Run("change email validates format", func(t *testing.T) {
		u := newUser(t)

		require.Error(t, u.ChangeEmail("nope", time.Now()))
		assert.Equal(t, "jamie@example.com", u.Email())

		require.NoError(t, u.ChangeEmail("new@example.com", time.Now()))
		assert.Equal(t, "new@example.com", u.Email())
	})
}

func TestRestoreUser(t *testing.T) {
	t.Run("restores persisted state including role", func(t *testing.T) {
		createdAt := time.Now().Add(-time.Hour)
		updatedAt := time.Now()

		u, err := user.RestoreUser(kernel.NewUUID(), "root@example.com", "Root", "$2a$10$hash", user.Admin, createdAt, updatedAt)

		require.NoError(t, err)
		assert.Equal(t, user.Admin, u.Role())
		assert.True(t, u.Role().IsAdmin())
		assert.Equal(t, createdAt, u.CreatedAt())
	})

	t.Run("rejects invalid stored role", func(t *testing.T) {
		_, err := user.RestoreUser(kernel.NewUUID(), "root@example.com", "Root", "$2a$10$hash", user.RoleUnknown, time.Now(), time.Now())

		require.Error(t, err)
	})
}

func TestRoleFromString(t *testing.T) {
	t.Run("recognizes wire strings", func(t *testing.T) {
		admin, err := user.RoleFromString("admin")
		require.NoError(t, err)
		assert.Equal(t, user.Admin, admin)
		assert.True(t, admin.IsAdmin())

		client, err := user.RoleFromString("client")
		require.NoError(t, err)
		assert.Equal(t, user.Client, client)
		assert.False(t, client.IsAdmin())
	})

	t.Run("rejects unrecognized values", func(t *testing.T) {
		for _, s := range []string{"", "superuser", "ADMIN"} {
			_, err := user.RoleFromString(s)
			require.Error(t, err, "role %q must be rejected", s)
		}
	})
}

func TestUser_Validate(t *testing.T) {
	var u *user.User
	require.ErrorIs(t, u.Validate(), user.ErrUserIsNotConstructed)
	require.ErrorIs(t, (&user.User{}).Validate(), user.ErrUserIsNotConstructed)
}
