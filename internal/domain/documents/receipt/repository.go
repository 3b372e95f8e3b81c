package receipt

import (
	"context"
	"time"

	"loomledger/internal/core/id"
	"loomledger/internal/domain"
)

// Repository defines operations for receipt documents.
type Repository interface {
	// CRUD operations. Delete removes the document permanently together
	// with its lines; receipts have no soft-delete lifecycle.
	Create(ctx context.Context, doc *Receipt) error
	GetByID(ctx context.Context, docID id.ID) (*Receipt, error)
	GetByNumber(ctx context.Context, number string) (*Receipt, error)
	Update(ctx context.Context, doc *Receipt) error
	Delete(ctx context.Context, docID id.ID) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Receipt], error)

	// ListAll loads every receipt in the optional date window, attribute
	// bags included. Reports operate over this in-memory set.
	ListAll(ctx context.Context, dateFrom, dateTo *time.Time) ([]*Receipt, error)

	// Count returns the total number of receipts.
	Count(ctx context.Context) (int, error)

	// Locking
	GetForUpdate(ctx context.Context, docID id.ID) (*Receipt, error)
}

// ListFilter for filtering receipts.
type ListFilter struct {
	domain.ListFilter

	SupervisorCode *string
	WeaverCode     *string
	DateFrom       *time.Time
	DateTo         *time.Time
}
