package supervisor

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupervisor_HashPassword(t *testing.T) {
	s := New("SUP-001", "Ravi Kumar")
	s.Password = "Super123!"

	require.NoError(t, s.HashPassword())

	assert.Empty(t, s.Password, "plaintext must be cleared after hashing")
	assert.NotEmpty(t, s.PasswordHash)
	assert.NotEqual(t, "Super123!", s.PasswordHash)

	assert.True(t, s.CheckPassword("Super123!"))
	assert.False(t, s.CheckPassword("wrong"))
}

func TestSupervisor_HashPassword_NoopWithoutPlaintext(t *testing.T) {
	s := New("SUP-001", "Ravi Kumar")
	s.Password = "Super123!"
	require.NoError(t, s.HashPassword())
	original := s.PasswordHash

	// Update without a new password keeps the old hash.
	require.NoError(t, s.HashPassword())
	assert.Equal(t, original, s.PasswordHash)
}

func TestSupervisor_Validate(t *testing.T) {
	ctx := context.Background()

	s := New("SUP-001", "Ravi Kumar")
	s.Password = "Super123!"
	require.NoError(t, s.Validate(ctx))

	t.Run("password required for new account", func(t *testing.T) {
		s := New("SUP-002", "No Password")
		require.Error(t, s.Validate(ctx))
	})

	t.Run("existing hash satisfies password requirement", func(t *testing.T) {
		s := New("SUP-003", "Existing")
		s.PasswordHash = "$2a$10$existinghash"
		require.NoError(t, s.Validate(ctx))
	})

	t.Run("invalid status", func(t *testing.T) {
		s := New("SUP-004", "Bad Status")
		s.Password = "x"
		s.Status = Status("suspended")
		require.Error(t, s.Validate(ctx))
	})
}

func TestSupervisor_IsActive(t *testing.T) {
	s := New("SUP-001", "Ravi Kumar")
	assert.True(t, s.IsActive())

	s.Status = StatusInactive
	assert.False(t, s.IsActive())

	s.Status = StatusActive
	s.DeletionMark = true
	assert.False(t, s.IsActive())
}
