package reports

import (
	"context"
	"fmt"
	"time"

	"loomledger/internal/core/apperror"
	"loomledger/internal/core/id"
	"loomledger/internal/domain/catalogs/product"
	"loomledger/internal/domain/documents/receipt"
	"loomledger/pkg/logger"
)

// ReceiptSource loads receipts for report runs and deletes them for
// range deletion. Satisfied by the receipt document service.
type ReceiptSource interface {
	ListAll(ctx context.Context, dateFrom, dateTo *time.Time) ([]*receipt.Receipt, error)
	Delete(ctx context.Context, docID id.ID) error
}

// CatalogSource provides the live product catalog in serial order.
// Satisfied by the product catalog service.
type CatalogSource interface {
	ListOrdered(ctx context.Context) ([]*product.Product, error)
}

// Service orchestrates the reporting engine over the receipt and product
// stores. Every report run fetches fresh data; regenerating a report
// simply discards the previous in-memory result.
type Service struct {
	receipts ReceiptSource
	catalog  CatalogSource
}

// NewService creates a new reports service.
func NewService(receipts ReceiptSource, catalog CatalogSource) *Service {
	return &Service{
		receipts: receipts,
		catalog:  catalog,
	}
}

// RangePreview is the resolved set of a receipt-number range, returned
// for confirmation before any deletion happens.
type RangePreview struct {
	StartToken string
	EndToken   string
	Records    []Record
}

// loadRecords fetches the catalog and receipts and normalizes everything.
func (s *Service) loadRecords(ctx context.Context, dateFrom, dateTo *time.Time) ([]Record, []*product.Product, error) {
	catalog, err := s.catalog.ListOrdered(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("load product catalog: %w", err)
	}

	docs, err := s.receipts.ListAll(ctx, dateFrom, dateTo)
	if err != nil {
		return nil, nil, fmt.Errorf("load receipts: %w", err)
	}

	normalizer := NewNormalizer(catalog, func(receiptNo, productName string) {
		logger.Debug(ctx, "unmatched product name in receipt",
			"receiptNo", receiptNo,
			"productName", productName)
	})

	return normalizer.NormalizeAll(docs), catalog, nil
}

// BuildReceiptReport produces the flat receipt report: normalized rows
// narrowed by the criteria and sorted by the requested column.
func (s *Service) BuildReceiptReport(ctx context.Context, criteria Criteria, sortColumn string, dir Direction) (*Report, error) {
	records, catalog, err := s.loadRecords(ctx, criteria.StartDate, criteria.EndDate)
	if err != nil {
		return nil, err
	}

	rows := Filter(records, criteria)

	if sortColumn != "" {
		SortRecords(rows, sortColumn, dir)
	}

	return &Report{
		Columns:        AllColumns(catalog),
		ProductColumns: OrderedProductColumns(catalog),
		Rows:           rows,
	}, nil
}

// BuildPivot aggregates receipts over the inclusive date range into the
// (loom, weaver) pivot table.
func (s *Service) BuildPivot(ctx context.Context, start, end time.Time) (*PivotTable, error) {
	if start.IsZero() || end.IsZero() {
		return nil, apperror.NewValidation("start and end dates are required").
			WithDetail("field", "dateRange")
	}

	records, catalog, err := s.loadRecords(ctx, &start, &end)
	if err != nil {
		return nil, err
	}

	return Aggregate(records, start, end, OrderedProductColumns(catalog))
}

// ExportReceiptReport builds and serializes the flat report, returning
// the file bytes and the derived filename.
func (s *Service) ExportReceiptReport(ctx context.Context, criteria Criteria, sortColumn string, dir Direction) ([]byte, string, error) {
	report, err := s.BuildReceiptReport(ctx, criteria, sortColumn, dir)
	if err != nil {
		return nil, "", err
	}

	data, err := ExportReceipts(report)
	if err != nil {
		return nil, "", fmt.Errorf("export receipts: %w", err)
	}

	return data, Filename(KindReceipts, criteria.StartDate, criteria.EndDate), nil
}

// ExportPivotReport builds and serializes the pivot table.
func (s *Service) ExportPivotReport(ctx context.Context, start, end time.Time) ([]byte, string, error) {
	table, err := s.BuildPivot(ctx, start, end)
	if err != nil {
		return nil, "", err
	}

	title := fmt.Sprintf("PRODUCTION REPORT %s TO %s",
		start.Format(exportDateLayout), end.Format(exportDateLayout))

	data, err := ExportPivot(table, title)
	if err != nil {
		return nil, "", fmt.Errorf("export pivot: %w", err)
	}

	return data, Filename(KindPivot, &start, &end), nil
}

// PreviewRangeDeletion resolves a receipt-number range without deleting
// anything. The caller must present the set for confirmation first.
func (s *Service) PreviewRangeDeletion(ctx context.Context, startToken, endToken string) (*RangePreview, error) {
	records, _, err := s.loadRecords(ctx, nil, nil)
	if err != nil {
		return nil, err
	}

	matched, err := ResolveRange(records, startToken, endToken)
	if err != nil {
		return nil, err
	}

	return &RangePreview{
		StartToken: startToken,
		EndToken:   endToken,
		Records:    matched,
	}, nil
}

// CommitRangeDeletion re-resolves the range and deletes every matching
// receipt. All deletes settle before the result is reported; a partial
// failure surfaces as a single failure without per-record granularity.
func (s *Service) CommitRangeDeletion(ctx context.Context, startToken, endToken string) (int, error) {
	preview, err := s.PreviewRangeDeletion(ctx, startToken, endToken)
	if err != nil {
		return 0, err
	}

	deleted := 0
	var firstErr error
	for _, rec := range preview.Records {
		if err := s.receipts.Delete(ctx, rec.ID); err != nil {
			logger.Error(ctx, "range deletion: delete failed",
				"receiptId", rec.ID,
				"receiptNo", rec.ReceiptNo,
				"error", err)
			if firstErr == nil {
				firstErr = err
			}
			continue
		}
		deleted++
	}

	if firstErr != nil {
		return deleted, apperror.NewExternal("delete receipts", firstErr).
			WithDetail("deleted", deleted).
			WithDetail("failed", len(preview.Records)-deleted)
	}

	logger.Info(ctx, "range deletion committed",
		"start", startToken,
		"end", endToken,
		"deleted", deleted)

	return deleted, nil
}
