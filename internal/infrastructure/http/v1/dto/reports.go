package dto

import (
	"time"

	"loomledger/internal/domain/reports"
)

// --- Request DTOs ---

// ReportFilterRequest holds report query parameters. Dates are
// inclusive day bounds.
type ReportFilterRequest struct {
	StartDate    *time.Time `form:"startDate" time_format:"2006-01-02"`
	EndDate      *time.Time `form:"endDate" time_format:"2006-01-02"`
	SupervisorID string     `form:"supervisorId"`
	WeaverID     string     `form:"weaverId"`
	ReceiptNo    string     `form:"receiptNo"`
	SortBy       string     `form:"sortBy"`
	SortDir      string     `form:"sortDir"`
}

// ToCriteria converts query parameters to report criteria.
func (r *ReportFilterRequest) ToCriteria() reports.Criteria {
	return reports.Criteria{
		StartDate:    r.StartDate,
		EndDate:      r.EndDate,
		SupervisorID: r.SupervisorID,
		WeaverID:     r.WeaverID,
		ReceiptNo:    r.ReceiptNo,
	}
}

// PivotRequest holds pivot query parameters. Both dates are required.
type PivotRequest struct {
	StartDate *time.Time `form:"startDate" time_format:"2006-01-02" binding:"required"`
	EndDate   *time.Time `form:"endDate" time_format:"2006-01-02" binding:"required"`
	SortBy    string     `form:"sortBy"`
	SortDir   string     `form:"sortDir"`
}

// RangeDeletionRequest identifies a receipt-number range.
type RangeDeletionRequest struct {
	StartReceiptNo string `json:"startReceiptNo" binding:"required"`
	EndReceiptNo   string `json:"endReceiptNo" binding:"required"`
}

// --- Response DTOs ---

// ReportRowResponse is one flat report row keyed by canonical column
// names, product quantities flattened in.
type ReportRowResponse map[string]any

// ReportResponse is the flat receipt report.
type ReportResponse struct {
	Columns        []string            `json:"columns"`
	ProductColumns []string            `json:"productColumns"`
	Rows           []ReportRowResponse `json:"rows"`
}

// FromReport creates the report response.
func FromReport(report *reports.Report) *ReportResponse {
	rows := make([]ReportRowResponse, len(report.Rows))
	for i, rec := range report.Rows {
		row := ReportRowResponse{
			reports.ColReceiptNo:    rec.ReceiptNo,
			reports.ColSupervisorID: rec.SupervisorID,
			reports.ColWeaverID:     rec.WeaverID,
			reports.ColWeaverName:   rec.WeaverName,
			reports.ColDate:         rec.DisplayDate(),
			reports.ColSubTotal:     rec.SubTotal,
		}
		for _, col := range report.ProductColumns {
			row[col] = rec.Quantities[col]
		}
		rows[i] = row
	}

	return &ReportResponse{
		Columns:        report.Columns,
		ProductColumns: report.ProductColumns,
		Rows:           rows,
	}
}

// PivotRowResponse is one aggregated pivot row.
type PivotRowResponse struct {
	Serial     int                `json:"sno"`
	WeaverID   string             `json:"weaverId"`
	WeaverName string             `json:"weaverName"`
	Quantities map[string]float64 `json:"quantities"`
	Total      float64            `json:"total"`
}

// PivotResponse is the aggregated production report.
type PivotResponse struct {
	StartDate      string             `json:"startDate"`
	EndDate        string             `json:"endDate"`
	ProductColumns []string           `json:"productColumns"`
	Rows           []PivotRowResponse `json:"rows"`
	GrandTotal     float64            `json:"grandTotal"`
}

// FromPivot creates the pivot response.
func FromPivot(table *reports.PivotTable) *PivotResponse {
	rows := make([]PivotRowResponse, len(table.Rows))
	for i, r := range table.Rows {
		rows[i] = PivotRowResponse{
			Serial:     r.Serial,
			WeaverID:   r.LoomNo,
			WeaverName: r.WeaverName,
			Quantities: r.Quantities,
			Total:      r.Total,
		}
	}

	return &PivotResponse{
		StartDate:      table.StartDate.Format("2006-01-02"),
		EndDate:        table.EndDate.Format("2006-01-02"),
		ProductColumns: table.ProductColumns,
		Rows:           rows,
		GrandTotal:     table.GrandTotal(),
	}
}

// RangePreviewRowResponse is one receipt inside a deletion range.
type RangePreviewRowResponse struct {
	ID         string  `json:"id"`
	ReceiptNo  string  `json:"receiptNo"`
	WeaverName string  `json:"weaverName"`
	Date       string  `json:"date"`
	SubTotal   float64 `json:"subTotal"`
}

// RangePreviewResponse lists the receipts a range deletion would remove.
type RangePreviewResponse struct {
	StartReceiptNo string                    `json:"startReceiptNo"`
	EndReceiptNo   string                    `json:"endReceiptNo"`
	Count          int                       `json:"count"`
	Receipts       []RangePreviewRowResponse `json:"receipts"`
}

// FromRangePreview creates the preview response.
func FromRangePreview(preview *reports.RangePreview) *RangePreviewResponse {
	rows := make([]RangePreviewRowResponse, len(preview.Records))
	for i, rec := range preview.Records {
		rows[i] = RangePreviewRowResponse{
			ID:         rec.ID.String(),
			ReceiptNo:  rec.ReceiptNo,
			WeaverName: rec.WeaverName,
			Date:       rec.DisplayDate(),
			SubTotal:   rec.SubTotal,
		}
	}

	return &RangePreviewResponse{
		StartReceiptNo: preview.StartToken,
		EndReceiptNo:   preview.EndToken,
		Count:          len(preview.Records),
		Receipts:       rows,
	}
}

// RangeDeletionResponse reports how many receipts were removed.
type RangeDeletionResponse struct {
	Deleted int `json:"deleted"`
}
