// Package receipt provides the production Receipt document. A receipt
// records the woven output a supervisor collected from one weaver on one
// date, as product-name/quantity pairs. The raw submitted payload is kept
// in the entity attribute bag so reporting can work over legacy records
// whose field names drifted over time.
package receipt

import (
	"context"

	"github.com/shopspring/decimal"

	"loomledger/internal/core/apperror"
	"loomledger/internal/core/entity"
	"loomledger/internal/core/id"
)

// Receipt represents a production receipt document.
type Receipt struct {
	entity.Document

	// Supervisor who recorded the receipt (supervisor catalog code)
	SupervisorCode string `db:"supervisor_id" json:"supervisorId"`

	// Weaver loom number and display name at recording time
	WeaverCode string `db:"weaver_id" json:"weaverId"`
	WeaverName string `db:"weaver_name" json:"weaverName"`

	// SubTotal is recalculated from lines on every save
	SubTotal decimal.Decimal `db:"sub_total" json:"subTotal"`

	// Table part: produced goods
	Lines []Line `db:"-" json:"lines"`
}

// Line represents one product row in a receipt.
type Line struct {
	LineID      id.ID           `db:"line_id" json:"lineId"`
	LineNo      int             `db:"line_no" json:"lineNo"`
	ProductName string          `db:"product_name" json:"productName"`
	Quantity    decimal.Decimal `db:"quantity" json:"quantity"`
}

// New creates a new receipt document.
func New(supervisorCode, weaverCode, weaverName string) *Receipt {
	return &Receipt{
		Document:       entity.NewDocument(),
		SupervisorCode: supervisorCode,
		WeaverCode:     weaverCode,
		WeaverName:     weaverName,
		SubTotal:       decimal.Zero,
		Lines:          make([]Line, 0),
	}
}

// AddLine appends a product row and recalculates the subtotal.
func (r *Receipt) AddLine(productName string, quantity decimal.Decimal) {
	r.Lines = append(r.Lines, Line{
		LineID:      id.New(),
		LineNo:      len(r.Lines) + 1,
		ProductName: productName,
		Quantity:    quantity,
	})
	r.RecalculateSubTotal()
}

// RecalculateSubTotal updates SubTotal from lines.
func (r *Receipt) RecalculateSubTotal() {
	total := decimal.Zero
	for _, line := range r.Lines {
		total = total.Add(line.Quantity)
	}
	r.SubTotal = total
}

// Validate implements entity.Validatable.
func (r *Receipt) Validate(ctx context.Context) error {
	if err := r.Document.Validate(ctx); err != nil {
		return err
	}

	if r.SupervisorCode == "" {
		return apperror.NewValidation("supervisorId is required").
			WithDetail("field", "supervisorId")
	}

	if r.WeaverCode == "" {
		return apperror.NewValidation("weaverId is required").
			WithDetail("field", "weaverId")
	}

	if len(r.Lines) == 0 {
		return apperror.NewValidation("at least one product line is required").
			WithDetail("field", "lines")
	}

	for i, line := range r.Lines {
		if line.ProductName == "" {
			return apperror.NewValidation("product name is required").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Quantity.IsNegative() {
			return apperror.NewValidation("quantity must not be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// syncAttributes mirrors the canonical fields into the attribute bag.
// The bag keeps whatever alias keys the original payload carried; the
// canonical keys written here take priority when reports read it back.
func (r *Receipt) syncAttributes() {
	products := make(map[string]any, len(r.Lines))
	for _, line := range r.Lines {
		products[line.ProductName] = line.Quantity.InexactFloat64()
	}

	r.SetAttribute("receiptNo", r.Number)
	r.SetAttribute("supervisorId", r.SupervisorCode)
	r.SetAttribute("weaverId", r.WeaverCode)
	r.SetAttribute("weaverName", r.WeaverName)
	r.SetAttribute("date", r.Date.Format("2006-01-02"))
	r.SetAttribute("products", products)
}
