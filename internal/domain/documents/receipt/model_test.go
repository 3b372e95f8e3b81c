package receipt

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loomledger/internal/core/apperror"
)

func TestReceipt_SubTotal(t *testing.T) {
	r := New("SUP-001", "3", "Ravi")
	assert.True(t, r.SubTotal.IsZero())

	r.AddLine("Towel", decimal.NewFromInt(5))
	r.AddLine("Lungi", decimal.NewFromFloat(2.5))

	assert.Equal(t, "7.5", r.SubTotal.String())
	assert.Equal(t, 1, r.Lines[0].LineNo)
	assert.Equal(t, 2, r.Lines[1].LineNo)

	// Editing a line quantity must be reflected after recalc.
	r.Lines[0].Quantity = decimal.NewFromInt(10)
	r.RecalculateSubTotal()
	assert.Equal(t, "12.5", r.SubTotal.String())
}

func TestReceipt_Validate(t *testing.T) {
	ctx := context.Background()

	valid := New("SUP-001", "3", "Ravi")
	valid.AddLine("Towel", decimal.NewFromInt(5))
	require.NoError(t, valid.Validate(ctx))

	tests := []struct {
		name   string
		mutate func(*Receipt)
	}{
		{"missing supervisor", func(r *Receipt) { r.SupervisorCode = "" }},
		{"missing weaver", func(r *Receipt) { r.WeaverCode = "" }},
		{"no lines", func(r *Receipt) { r.Lines = nil }},
		{"empty product name", func(r *Receipt) { r.Lines[0].ProductName = "" }},
		{"negative quantity", func(r *Receipt) { r.Lines[0].Quantity = decimal.NewFromInt(-1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := New("SUP-001", "3", "Ravi")
			r.AddLine("Towel", decimal.NewFromInt(5))
			tt.mutate(r)

			err := r.Validate(ctx)
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
		})
	}
}

func TestReceipt_SyncAttributes(t *testing.T) {
	r := New("SUP-001", "3", "Ravi")
	r.Number = "R-2026-00042"
	r.AddLine("Towel", decimal.NewFromInt(5))
	r.syncAttributes()

	assert.Equal(t, "R-2026-00042", r.Attributes["receiptNo"])
	assert.Equal(t, "SUP-001", r.Attributes["supervisorId"])
	assert.Equal(t, "3", r.Attributes["weaverId"])
	assert.Equal(t, "Ravi", r.Attributes["weaverName"])

	products, ok := r.Attributes["products"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 5.0, products["Towel"])
}
