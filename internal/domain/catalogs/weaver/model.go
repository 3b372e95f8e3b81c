// Package weaver provides the Weaver catalog. A weaver is identified by a
// numeric loom number, which doubles as the pivot grouping key in reports.
// The catalog Code field holds the loom number.
package weaver

import (
	"context"
	"regexp"

	"loomledger/internal/core/apperror"
	"loomledger/internal/core/entity"
)

// Status defines weaver status.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
)

// loom numbers are digits only
var loomNoPattern = regexp.MustCompile(`^\d+$`)

// Weaver represents a catalog entry for a weaver and their loom.
type Weaver struct {
	entity.Catalog

	// Status marks whether the loom is currently operated
	Status Status `db:"status" json:"status"`
}

// New creates a new Weaver with required fields.
func New(loomNo, name string) *Weaver {
	return &Weaver{
		Catalog: entity.NewCatalog(loomNo, name),
		Status:  StatusActive,
	}
}

// LoomNo returns the loom number (stored as catalog code).
func (w *Weaver) LoomNo() string {
	return w.Code
}

// Validate implements entity.Validatable interface.
func (w *Weaver) Validate(ctx context.Context) error {
	if err := w.Catalog.Validate(ctx); err != nil {
		return err
	}

	if !loomNoPattern.MatchString(w.Code) {
		return apperror.NewValidation("weaverId must be numeric").
			WithDetail("field", "weaverId").
			WithDetail("value", w.Code)
	}

	if !isValidStatus(w.Status) {
		return apperror.NewValidation("invalid weaver status").
			WithDetail("field", "status").
			WithDetail("value", string(w.Status))
	}

	return nil
}

func isValidStatus(st Status) bool {
	switch st {
	case StatusActive, StatusInactive:
		return true
	}
	return false
}
