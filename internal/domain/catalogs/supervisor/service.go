package supervisor

import (
	"context"

	"loomledger/internal/core/apperror"
	"loomledger/internal/core/tx"
	"loomledger/internal/domain"
)

// Service provides business logic for the Supervisor catalog.
type Service struct {
	*domain.CatalogService[*Supervisor]
	repo Repository
}

// NewService creates a new Supervisor service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Supervisor]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "supervisor",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate enforces supervisor ID uniqueness and hashes the password.
func (s *Service) prepareForCreate(ctx context.Context, item *Supervisor) error {
	if exists, _ := s.checkIDTaken(ctx, item); exists {
		return apperror.NewDuplicate("supervisor", "supervisorId", item.Code)
	}
	return item.HashPassword()
}

// prepareForUpdate enforces supervisor ID uniqueness and hashes a new
// password when one was supplied.
func (s *Service) prepareForUpdate(ctx context.Context, item *Supervisor) error {
	if exists, _ := s.checkIDTaken(ctx, item); exists {
		return apperror.NewDuplicate("supervisor", "supervisorId", item.Code)
	}
	return item.HashPassword()
}

// FindByID retrieves a supervisor by supervisor ID (login lookup).
func (s *Service) FindByID(ctx context.Context, supervisorID string) (*Supervisor, error) {
	return s.repo.GetByCode(ctx, supervisorID)
}

// checkIDTaken reports whether another supervisor already uses the ID.
func (s *Service) checkIDTaken(ctx context.Context, item *Supervisor) (bool, error) {
	existing, err := s.repo.GetByCode(ctx, item.Code)
	if err != nil {
		return false, nil
	}
	return existing.ID != item.ID, nil
}
