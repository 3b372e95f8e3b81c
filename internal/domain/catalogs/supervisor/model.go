// Package supervisor provides the Supervisor catalog. Supervisors record
// production receipts and sign in with their supervisor ID and password.
// The catalog Code field holds the supervisor ID.
package supervisor

import (
	"context"

	"golang.org/x/crypto/bcrypt"

	"loomledger/internal/core/apperror"
	"loomledger/internal/core/entity"
)

// Status defines supervisor account status.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// Supervisor represents a catalog entry for a floor supervisor.
type Supervisor struct {
	entity.Catalog

	// PasswordHash is the bcrypt hash of the login password
	PasswordHash string `db:"password_hash" json:"-"`

	// Status controls whether the supervisor may sign in
	Status Status `db:"status" json:"status"`

	// Password carries the plaintext from the API layer to the
	// before-create/update hook that hashes it. Never persisted.
	Password string `db:"-" json:"-"`
}

// New creates a new Supervisor with required fields.
func New(supervisorID, name string) *Supervisor {
	return &Supervisor{
		Catalog: entity.NewCatalog(supervisorID, name),
		Status:  StatusActive,
	}
}

// Validate implements entity.Validatable interface.
func (s *Supervisor) Validate(ctx context.Context) error {
	if err := s.Catalog.Validate(ctx); err != nil {
		return err
	}

	if s.Code == "" {
		return apperror.NewValidation("supervisorId is required").
			WithDetail("field", "supervisorId")
	}

	if !isValidStatus(s.Status) {
		return apperror.NewValidation("invalid supervisor status").
			WithDetail("field", "status").
			WithDetail("value", string(s.Status))
	}

	// A new account must arrive with a password; updates may keep the old hash.
	if s.PasswordHash == "" && s.Password == "" {
		return apperror.NewValidation("password is required").
			WithDetail("field", "password")
	}

	return nil
}

// HashPassword converts the pending plaintext into PasswordHash.
// No-op when no new password was supplied.
func (s *Supervisor) HashPassword() error {
	if s.Password == "" {
		return nil
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(s.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	s.PasswordHash = string(hash)
	s.Password = ""
	return nil
}

// CheckPassword verifies a plaintext password against the stored hash.
func (s *Supervisor) CheckPassword(plain string) bool {
	return bcrypt.CompareHashAndPassword([]byte(s.PasswordHash), []byte(plain)) == nil
}

// IsActive reports whether the supervisor may sign in.
func (s *Supervisor) IsActive() bool {
	return s.Status == StatusActive && !s.DeletionMark
}

func isValidStatus(st Status) bool {
	switch st {
	case StatusActive, StatusInactive:
		return true
	}
	return false
}
