package product

import (
	"context"

	"loomledger/internal/domain"
)

// Repository defines the interface for Product persistence.
type Repository interface {
	domain.CatalogRepository[*Product]

	// FindByName retrieves a product by name, case-insensitively.
	FindByName(ctx context.Context, name string) (*Product, error)

	// MaxSerialNo returns the highest assigned serial number (0 when empty).
	MaxSerialNo(ctx context.Context) (int, error)

	// ListOrdered returns all live products ascending by serial number,
	// name as tiebreak. This is the catalog order reports rely on.
	ListOrdered(ctx context.Context) ([]*Product, error)
}
