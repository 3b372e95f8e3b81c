package weaver

import (
	"loomledger/internal/domain"
)

// Repository defines the interface for Weaver persistence.
// GetByCode/ExistsByCode from the base interface look up by loom number.
type Repository interface {
	domain.CatalogRepository[*Weaver]
}
