package supervisor

import (
	"loomledger/internal/domain"
)

// Repository defines the interface for Supervisor persistence.
// GetByCode/ExistsByCode from the base interface look up by supervisor ID.
type Repository interface {
	domain.CatalogRepository[*Supervisor]
}
