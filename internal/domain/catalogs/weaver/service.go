package weaver

import (
	"context"
	"sort"
	"strconv"

	"loomledger/internal/core/apperror"
	"loomledger/internal/core/tx"
	"loomledger/internal/domain"
)

// Service provides business logic for the Weaver catalog.
type Service struct {
	*domain.CatalogService[*Weaver]
	repo Repository
}

// NewService creates a new Weaver service.
func NewService(repo Repository, txManager tx.Manager) *Service {
	base := domain.NewCatalogService(domain.CatalogServiceConfig[*Weaver]{
		Repo:       repo,
		TxManager:  txManager,
		EntityName: "weaver",
	})

	svc := &Service{
		CatalogService: base,
		repo:           repo,
	}

	base.Hooks().OnBeforeCreate(svc.checkLoomNoFree)
	base.Hooks().OnBeforeUpdate(svc.checkLoomNoFree)

	return svc
}

// checkLoomNoFree enforces loom number uniqueness.
func (s *Service) checkLoomNoFree(ctx context.Context, item *Weaver) error {
	existing, err := s.repo.GetByCode(ctx, item.Code)
	if err != nil {
		return nil // no clash
	}
	if existing.ID != item.ID {
		return apperror.NewDuplicate("weaver", "weaverId", item.Code)
	}
	return nil
}

// FindByLoomNo retrieves a weaver by loom number.
func (s *Service) FindByLoomNo(ctx context.Context, loomNo string) (*Weaver, error) {
	return s.repo.GetByCode(ctx, loomNo)
}

// List orders weavers by loom number numerically. Loom numbers are
// digit strings, so lexicographic ordering would put "10" before "2".
// The default "name" ordering also maps to loom order: the loom number
// is the natural display order for this catalog.
func (s *Service) List(ctx context.Context, f domain.ListFilter) (domain.ListResult[*Weaver], error) {
	descending := false
	switch f.OrderBy {
	case "", "name", "code", "+code":
		f.OrderBy = "code"
	case "-code", "-name":
		f.OrderBy = "-code"
		descending = true
	default:
		return s.CatalogService.List(ctx, f)
	}

	result, err := s.CatalogService.List(ctx, f)
	if err != nil {
		return result, err
	}

	sort.SliceStable(result.Items, func(i, j int) bool {
		a, _ := strconv.ParseInt(result.Items[i].Code, 10, 64)
		b, _ := strconv.ParseInt(result.Items[j].Code, 10, 64)
		if descending {
			return a > b
		}
		return a < b
	})

	return result, nil
}
