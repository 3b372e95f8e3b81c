// Package product provides the Product catalog: the woven goods the mill
// produces (towels, lungis, etc.). Product names are the join key for
// receipt quantity columns in reports, so uniqueness is case-insensitive.
package product

import (
	"context"
	"strings"

	"loomledger/internal/core/apperror"
	"loomledger/internal/core/entity"
)

// Status defines product stock status.
type Status string

const (
	StatusInStock    Status = "in_stock"
	StatusOutOfStock Status = "out_of_stock"
)

// Product represents a catalog item.
type Product struct {
	entity.Catalog

	// ImageURL points to the product photo in the image store
	ImageURL *string `db:"image_url" json:"imageUrl,omitempty"`

	// Status is the stock status shown on the public site
	Status Status `db:"status" json:"status"`

	// SerialNo is the stable ordering key: assigned max+1 at creation,
	// never changed afterwards. Report product columns follow this order.
	SerialNo int `db:"serial_no" json:"serialNo"`
}

// New creates a new Product with required fields.
func New(name string) *Product {
	return &Product{
		Catalog: entity.NewCatalog("", name),
		Status:  StatusInStock,
	}
}

// Validate implements entity.Validatable interface.
func (p *Product) Validate(ctx context.Context) error {
	if err := p.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !isValidStatus(p.Status) {
		return apperror.NewValidation("invalid product status").
			WithDetail("field", "status").
			WithDetail("value", string(p.Status))
	}

	// SerialNo is zero until assigned at creation; never negative.
	if p.SerialNo < 0 {
		return apperror.NewValidation("serialNo cannot be negative").
			WithDetail("field", "serialNo")
	}

	return nil
}

// NormalizedName returns the trimmed, lowercased name used for
// case-insensitive matching.
func (p *Product) NormalizedName() string {
	return strings.ToLower(strings.TrimSpace(p.Name))
}

func isValidStatus(s Status) bool {
	switch s {
	case StatusInStock, StatusOutOfStock:
		return true
	}
	return false
}
