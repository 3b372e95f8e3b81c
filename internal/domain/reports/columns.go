package reports

import (
	"sort"
	"strings"

	"loomledger/internal/domain/catalogs/product"
)

// Column keys for flat receipt reports.
const (
	ColReceiptNo    = "receiptNo"
	ColSupervisorID = "supervisorId"
	ColWeaverID     = "weaverId"
	ColWeaverName   = "weaverName"
	ColDate         = "date"
	ColSubTotal     = "subTotal"
)

// Column keys specific to pivot tables.
const (
	ColSerial = "sno"
	ColTotal  = "total"
)

// headerLabels maps column keys to the fixed export header strings.
var headerLabels = map[string]string{
	ColReceiptNo:    "RECEIPT NO",
	ColSupervisorID: "SUPERVISOR ID",
	ColWeaverID:     "LOOM NO",
	ColWeaverName:   "NAME",
	ColDate:         "DATE",
	ColSubTotal:     "TOTAL",
	ColSerial:       "S.NO",
	ColTotal:        "TOTAL",
}

// BaseColumns returns the fixed base column order for flat reports.
func BaseColumns() []string {
	return []string{ColReceiptNo, ColSupervisorID, ColWeaverID, ColWeaverName, ColDate}
}

// OrderedProductColumns returns the distinct product column names in
// catalog order: ascending serialNo with name as a stable tiebreak.
// Duplicate names collapse case-insensitively, first occurrence wins.
func OrderedProductColumns(catalog []*product.Product) []string {
	sorted := make([]*product.Product, len(catalog))
	copy(sorted, catalog)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].SerialNo != sorted[j].SerialNo {
			return sorted[i].SerialNo < sorted[j].SerialNo
		}
		return sorted[i].Name < sorted[j].Name
	})

	seen := make(map[string]struct{}, len(sorted))
	columns := make([]string, 0, len(sorted))
	for _, p := range sorted {
		key := normalizeName(p.Name)
		if key == "" {
			continue
		}
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		columns = append(columns, p.Name)
	}

	return columns
}

// AllColumns returns base columns, ordered product columns and the
// synthetic subtotal column.
func AllColumns(catalog []*product.Product) []string {
	productCols := OrderedProductColumns(catalog)
	columns := make([]string, 0, len(productCols)+6)
	columns = append(columns, BaseColumns()...)
	columns = append(columns, productCols...)
	columns = append(columns, ColSubTotal)
	return columns
}

// HeaderLabel returns the export header for a column key. Product
// columns have no fixed mapping and render as their uppercased name.
func HeaderLabel(column string) string {
	if label, ok := headerLabels[column]; ok {
		return label
	}
	return strings.ToUpper(column)
}
