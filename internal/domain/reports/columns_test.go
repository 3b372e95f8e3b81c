package reports

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"loomledger/internal/domain/catalogs/product"
)

func catalogEntry(name string, serialNo int) *product.Product {
	p := product.New(name)
	p.SerialNo = serialNo
	return p
}

func TestOrderedProductColumns_SerialOrder(t *testing.T) {
	catalog := []*product.Product{
		catalogEntry("Lungi", 2),
		catalogEntry("Towel", 1),
		catalogEntry("Bedsheet", 3),
	}

	assert.Equal(t, []string{"Towel", "Lungi", "Bedsheet"}, OrderedProductColumns(catalog))
}

func TestOrderedProductColumns_DedupeCaseInsensitive(t *testing.T) {
	catalog := []*product.Product{
		catalogEntry("Towel", 1),
		catalogEntry("TOWEL", 2),
		catalogEntry("towel ", 3),
		catalogEntry("Lungi", 4),
	}

	// First occurrence by serial order wins
	assert.Equal(t, []string{"Towel", "Lungi"}, OrderedProductColumns(catalog))
}

func TestOrderedProductColumns_NameTiebreak(t *testing.T) {
	catalog := []*product.Product{
		catalogEntry("Zari", 5),
		catalogEntry("Angavastram", 5),
	}

	assert.Equal(t, []string{"Angavastram", "Zari"}, OrderedProductColumns(catalog))
}

func TestAllColumns(t *testing.T) {
	catalog := []*product.Product{
		catalogEntry("Towel", 1),
		catalogEntry("Lungi", 2),
	}

	want := []string{
		ColReceiptNo, ColSupervisorID, ColWeaverID, ColWeaverName, ColDate,
		"Towel", "Lungi",
		ColSubTotal,
	}
	assert.Equal(t, want, AllColumns(catalog))
}

func TestHeaderLabel(t *testing.T) {
	assert.Equal(t, "RECEIPT NO", HeaderLabel(ColReceiptNo))
	assert.Equal(t, "SUPERVISOR ID", HeaderLabel(ColSupervisorID))
	assert.Equal(t, "LOOM NO", HeaderLabel(ColWeaverID))
	assert.Equal(t, "NAME", HeaderLabel(ColWeaverName))
	assert.Equal(t, "DATE", HeaderLabel(ColDate))
	assert.Equal(t, "TOTAL", HeaderLabel(ColSubTotal))
	assert.Equal(t, "TOWEL", HeaderLabel("Towel"))
}
