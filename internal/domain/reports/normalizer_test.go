package reports

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loomledger/internal/core/entity"
	"loomledger/internal/domain/catalogs/product"
	"loomledger/internal/domain/documents/receipt"
)

func testCatalog(t *testing.T) []*product.Product {
	t.Helper()
	towel := product.New("Towel")
	towel.SerialNo = 1
	lungi := product.New("Lungi")
	lungi.SerialNo = 2
	return []*product.Product{towel, lungi}
}

func rawReceipt(attrs map[string]any) *receipt.Receipt {
	doc := &receipt.Receipt{Document: entity.NewDocument()}
	for k, v := range attrs {
		doc.SetAttribute(k, v)
	}
	return doc
}

func TestNormalize_CanonicalKeys(t *testing.T) {
	n := NewNormalizer(testCatalog(t), nil)

	rec := n.Normalize(rawReceipt(map[string]any{
		"receiptNo":    "101",
		"supervisorId": "SUP1",
		"weaverId":     "3",
		"weaverName":   "Ravi",
		"date":         "2024-01-05",
		"products":     map[string]any{"Towel": 5, "Lungi": 2},
	}))

	assert.Equal(t, "101", rec.ReceiptNo)
	assert.Equal(t, "SUP1", rec.SupervisorID)
	assert.Equal(t, "3", rec.WeaverID)
	assert.Equal(t, "Ravi", rec.WeaverName)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), rec.Date)
	assert.Equal(t, 5.0, rec.Quantities["Towel"])
	assert.Equal(t, 2.0, rec.Quantities["Lungi"])
	assert.Equal(t, 7.0, rec.SubTotal)
}

func TestNormalize_LegacyAliases(t *testing.T) {
	n := NewNormalizer(testCatalog(t), nil)

	rec := n.Normalize(rawReceipt(map[string]any{
		"receipt_no":    "42",
		"supervisor_id": "SUP9",
		"loom_no":       "7",
		"weaver_name":   "Mani",
	}))

	assert.Equal(t, "42", rec.ReceiptNo)
	assert.Equal(t, "SUP9", rec.SupervisorID)
	assert.Equal(t, "7", rec.WeaverID)
	assert.Equal(t, "Mani", rec.WeaverName)
}

func TestNormalize_AliasPriority(t *testing.T) {
	n := NewNormalizer(testCatalog(t), nil)

	// Canonical key wins over legacy aliases
	rec := n.Normalize(rawReceipt(map[string]any{
		"weaverId": "1",
		"loomNo":   "2",
	}))
	assert.Equal(t, "1", rec.WeaverID)
}

func TestNormalize_MissingFieldsYieldEmpty(t *testing.T) {
	n := NewNormalizer(testCatalog(t), nil)

	rec := n.Normalize(rawReceipt(map[string]any{}))

	assert.Empty(t, rec.ReceiptNo)
	assert.Empty(t, rec.SupervisorID)
	assert.Empty(t, rec.WeaverID)
	assert.Empty(t, rec.WeaverName)
	assert.False(t, rec.HasDate())
	assert.Equal(t, DateNotAvailable, rec.DisplayDate())
	assert.Equal(t, 0.0, rec.SubTotal)
}

func TestNormalize_NumericReceiptNo(t *testing.T) {
	n := NewNormalizer(testCatalog(t), nil)

	rec := n.Normalize(rawReceipt(map[string]any{
		"receiptNo": json.Number("105"),
	}))
	assert.Equal(t, "105", rec.ReceiptNo)
}

func TestNormalize_EntryMapProducts(t *testing.T) {
	n := NewNormalizer(testCatalog(t), nil)

	// Legacy shape: keyed entries with productName/quantity objects
	rec := n.Normalize(rawReceipt(map[string]any{
		"products": map[string]any{
			"a": map[string]any{"productName": "Towel", "quantity": 5},
			"b": map[string]any{"productName": "Lungi", "quantity": 2},
		},
	}))

	assert.Equal(t, 5.0, rec.Quantities["Towel"])
	assert.Equal(t, 2.0, rec.Quantities["Lungi"])
	assert.Equal(t, 7.0, rec.SubTotal)
}

func TestNormalize_ArrayProducts(t *testing.T) {
	n := NewNormalizer(testCatalog(t), nil)

	rec := n.Normalize(rawReceipt(map[string]any{
		"items": []any{
			map[string]any{"name": "towel ", "qty": "3"},
			map[string]any{"name": "LUNGI", "qty": 4},
		},
	}))

	assert.Equal(t, 3.0, rec.Quantities["Towel"])
	assert.Equal(t, 4.0, rec.Quantities["Lungi"])
}

func TestNormalize_JSONStringProducts(t *testing.T) {
	n := NewNormalizer(testCatalog(t), nil)

	rec := n.Normalize(rawReceipt(map[string]any{
		"products": `{"Towel": 6}`,
	}))

	assert.Equal(t, 6.0, rec.Quantities["Towel"])
	assert.Equal(t, 0.0, rec.Quantities["Lungi"])
}

func TestNormalize_UnparseableProductsYieldZeros(t *testing.T) {
	n := NewNormalizer(testCatalog(t), nil)

	rec := n.Normalize(rawReceipt(map[string]any{
		"products": "not json",
	}))

	require.Len(t, rec.Quantities, 2)
	assert.Equal(t, 0.0, rec.Quantities["Towel"])
	assert.Equal(t, 0.0, rec.Quantities["Lungi"])
	assert.Equal(t, 0.0, rec.SubTotal)
}

func TestNormalize_UnmatchedNamesDroppedWithHook(t *testing.T) {
	var unmatched []string
	n := NewNormalizer(testCatalog(t), func(receiptNo, name string) {
		unmatched = append(unmatched, name)
	})

	rec := n.Normalize(rawReceipt(map[string]any{
		"receiptNo": "7",
		"products":  map[string]any{"Towel": 1, "Bedsheet": 9},
	}))

	assert.Equal(t, 1.0, rec.SubTotal)
	assert.Equal(t, []string{"Bedsheet"}, unmatched)
	assert.NotContains(t, rec.Quantities, "Bedsheet")
}

func TestNormalize_DateForms(t *testing.T) {
	n := NewNormalizer(testCatalog(t), nil)

	tests := []struct {
		name string
		raw  any
		want time.Time
	}{
		{"iso date", "2024-03-09", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
		{"rfc3339", "2024-03-09T10:30:00Z", time.Date(2024, 3, 9, 10, 30, 0, 0, time.UTC)},
		{"display form", "09/03/2024", time.Date(2024, 3, 9, 0, 0, 0, 0, time.UTC)},
		{"unix millis", json.Number("1709985600000"), time.UnixMilli(1709985600000).UTC()},
		{"unix seconds", json.Number("1709985600"), time.Unix(1709985600, 0).UTC()},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := n.Normalize(rawReceipt(map[string]any{"date": tt.raw}))
			assert.Equal(t, tt.want, rec.Date)
		})
	}
}

func TestNormalize_UnparseableDateNotAvailable(t *testing.T) {
	n := NewNormalizer(testCatalog(t), nil)

	rec := n.Normalize(rawReceipt(map[string]any{"date": "yesterday"}))

	assert.False(t, rec.HasDate())
	assert.Equal(t, DateNotAvailable, rec.DisplayDate())
	assert.Empty(t, rec.ExportDate())
}

func TestNormalize_SubTotalInvariant(t *testing.T) {
	n := NewNormalizer(testCatalog(t), nil)

	rec := n.Normalize(rawReceipt(map[string]any{
		"products": map[string]any{"Towel": 5, "lungi": 2},
	}))

	var sum float64
	for _, qty := range rec.Quantities {
		sum += qty
	}
	assert.Equal(t, sum, rec.SubTotal)
}

func TestRecord_DateForms(t *testing.T) {
	rec := Record{Date: time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC)}
	assert.Equal(t, "2024-01-05", rec.ExportDate())
	assert.Equal(t, "05/01/2024", rec.DisplayDate())
}
