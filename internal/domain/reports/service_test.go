package reports

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"loomledger/internal/core/apperror"
	"loomledger/internal/core/id"
	"loomledger/internal/domain/catalogs/product"
	"loomledger/internal/domain/documents/receipt"
)

type fakeReceiptSource struct {
	docs      []*receipt.Receipt
	deleted   []id.ID
	failOnNos map[string]bool
}

func (f *fakeReceiptSource) ListAll(ctx context.Context, dateFrom, dateTo *time.Time) ([]*receipt.Receipt, error) {
	return f.docs, nil
}

func (f *fakeReceiptSource) Delete(ctx context.Context, docID id.ID) error {
	for _, doc := range f.docs {
		if doc.ID == docID && f.failOnNos[doc.Attributes.GetString("receiptNo")] {
			return errors.New("store unavailable")
		}
	}
	f.deleted = append(f.deleted, docID)
	return nil
}

type fakeCatalogSource struct {
	products []*product.Product
}

func (f *fakeCatalogSource) ListOrdered(ctx context.Context) ([]*product.Product, error) {
	return f.products, nil
}

func newTestService(t *testing.T, docs []*receipt.Receipt) (*Service, *fakeReceiptSource) {
	t.Helper()
	receipts := &fakeReceiptSource{docs: docs, failOnNos: map[string]bool{}}
	return NewService(receipts, &fakeCatalogSource{products: testCatalog(t)}), receipts
}

func TestService_BuildReceiptReport(t *testing.T) {
	docs := []*receipt.Receipt{
		rawReceipt(map[string]any{
			"receiptNo": "2", "supervisorId": "S1", "weaverId": "3", "weaverName": "Ravi",
			"date": "2024-01-05", "products": map[string]any{"Towel": 5},
		}),
		rawReceipt(map[string]any{
			"receiptNo": "10", "supervisorId": "S1", "weaverId": "4", "weaverName": "Mani",
			"date": "2024-01-06", "products": map[string]any{"Lungi": 2},
		}),
	}
	svc, _ := newTestService(t, docs)

	report, err := svc.BuildReceiptReport(context.Background(), Criteria{}, ColReceiptNo, Ascending)
	require.NoError(t, err)

	require.Len(t, report.Rows, 2)
	// Numeric-aware sort: "2" before "10"
	assert.Equal(t, "2", report.Rows[0].ReceiptNo)
	assert.Equal(t, "10", report.Rows[1].ReceiptNo)
	assert.Equal(t, []string{"Towel", "Lungi"}, report.ProductColumns)
	assert.Equal(t, ColSubTotal, report.Columns[len(report.Columns)-1])
}

func TestService_BuildPivot(t *testing.T) {
	docs := []*receipt.Receipt{
		rawReceipt(map[string]any{
			"weaverId": "3", "weaverName": "Ravi", "date": "2024-01-05",
			"products": map[string]any{"Towel": 5},
		}),
		rawReceipt(map[string]any{
			"weaverId": "3", "weaverName": "Ravi", "date": "2024-01-06",
			"products": map[string]any{"Lungi": 2},
		}),
	}
	svc, _ := newTestService(t, docs)

	table, err := svc.BuildPivot(context.Background(), day(2024, 1, 1), day(2024, 1, 31))
	require.NoError(t, err)

	require.Len(t, table.Rows, 1)
	assert.Equal(t, 7.0, table.Rows[0].Total)
	assert.Equal(t, 7.0, table.GrandTotal())
}

func TestService_BuildPivot_RequiresBounds(t *testing.T) {
	svc, _ := newTestService(t, nil)

	_, err := svc.BuildPivot(context.Background(), time.Time{}, day(2024, 1, 31))
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestService_ExportReceiptReport(t *testing.T) {
	docs := []*receipt.Receipt{
		rawReceipt(map[string]any{
			"receiptNo": "1", "date": "2024-01-05",
			"products": map[string]any{"Towel": 5},
		}),
	}
	svc, _ := newTestService(t, docs)

	start := day(2024, 1, 1)
	end := day(2024, 1, 31)
	data, filename, err := svc.ExportReceiptReport(context.Background(),
		Criteria{StartDate: &start, EndDate: &end}, "", Ascending)
	require.NoError(t, err)

	assert.NotEmpty(t, data)
	assert.Equal(t, "Receipts_2024-01-01_2024-01-31.xlsx", filename)
}

func TestService_PreviewDoesNotDelete(t *testing.T) {
	docs := []*receipt.Receipt{
		rawReceipt(map[string]any{"receiptNo": "100"}),
		rawReceipt(map[string]any{"receiptNo": "103"}),
		rawReceipt(map[string]any{"receiptNo": "106"}),
	}
	svc, receipts := newTestService(t, docs)

	preview, err := svc.PreviewRangeDeletion(context.Background(), "100", "105")
	require.NoError(t, err)

	assert.Len(t, preview.Records, 2)
	assert.Empty(t, receipts.deleted)
}

func TestService_CommitRangeDeletion(t *testing.T) {
	docs := []*receipt.Receipt{
		rawReceipt(map[string]any{"receiptNo": "100"}),
		rawReceipt(map[string]any{"receiptNo": "103"}),
		rawReceipt(map[string]any{"receiptNo": "106"}),
	}
	svc, receipts := newTestService(t, docs)

	deleted, err := svc.CommitRangeDeletion(context.Background(), "100", "105")
	require.NoError(t, err)

	assert.Equal(t, 2, deleted)
	assert.Len(t, receipts.deleted, 2)
}

func TestService_CommitRangeDeletion_PartialFailure(t *testing.T) {
	docs := []*receipt.Receipt{
		rawReceipt(map[string]any{"receiptNo": "100"}),
		rawReceipt(map[string]any{"receiptNo": "103"}),
	}
	svc, receipts := newTestService(t, docs)
	receipts.failOnNos["103"] = true

	deleted, err := svc.CommitRangeDeletion(context.Background(), "100", "110")
	require.Error(t, err)

	// All deletes settle; the failure is reported once
	assert.Equal(t, 1, deleted)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeExternal, appErr.Code)
}
