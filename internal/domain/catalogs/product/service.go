package product

import (
	"context"
	"fmt"
	"time"

	"loomledger/internal/core/apperror"
	"loomledger/internal/core/numerator"
	"loomledger/internal/core/tx"
	"loomledger/internal/domain"
)

// Service provides business logic for the Product catalog.
// Uses composition with domain.CatalogService for common CRUD operations.
type Service struct {
	*domain.CatalogService[*Product]
	repo      Repository
	numerator numerator.Generator
}

// NewService creates a new Product service.
func NewService(repo Repository, txManager tx.Manager, gen numerator.Generator) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Product]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "product",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
		numerator:      gen,
	}

	base.Hooks().OnBeforeCreate(svc.prepareForCreate)
	base.Hooks().OnBeforeUpdate(svc.prepareForUpdate)

	return svc
}

// prepareForCreate assigns code and serial number, and enforces name uniqueness.
func (s *Service) prepareForCreate(ctx context.Context, item *Product) error {
	// Generate code if not provided
	if item.Code == "" {
		code, err := s.numerator.GetNextNumber(ctx, numerator.DefaultConfig("PR"), nil, time.Now())
		if err != nil {
			return fmt.Errorf("generate code: %w", err)
		}
		item.Code = code
	}

	// Name uniqueness is case-insensitive: "Towel" and "towel" are the
	// same report column, so they cannot coexist.
	if exists, _ := s.checkNameTaken(ctx, item); exists {
		return apperror.NewDuplicate("product", "name", item.Name)
	}

	// SerialNo: next after the current maximum, stable afterwards.
	maxSerial, err := s.repo.MaxSerialNo(ctx)
	if err != nil {
		return fmt.Errorf("max serial: %w", err)
	}
	item.SerialNo = maxSerial + 1

	return nil
}

// prepareForUpdate enforces name uniqueness and serial immutability.
func (s *Service) prepareForUpdate(ctx context.Context, item *Product) error {
	if exists, _ := s.checkNameTaken(ctx, item); exists {
		return apperror.NewDuplicate("product", "name", item.Name)
	}

	// SerialNo never changes after creation.
	existing, err := s.repo.GetByID(ctx, item.ID)
	if err != nil {
		return err
	}
	item.SerialNo = existing.SerialNo

	return nil
}

// ListOrdered returns all live products in catalog (serial) order.
func (s *Service) ListOrdered(ctx context.Context) ([]*Product, error) {
	return s.repo.ListOrdered(ctx)
}

// checkNameTaken reports whether another product already uses the name.
func (s *Service) checkNameTaken(ctx context.Context, item *Product) (bool, error) {
	existing, err := s.repo.FindByName(ctx, item.Name)
	if err != nil {
		return false, nil
	}
	return existing.ID != item.ID, nil
}
