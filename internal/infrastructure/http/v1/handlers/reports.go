package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"loomledger/internal/domain/reports"
	"loomledger/internal/infrastructure/http/v1/dto"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ReportsHandler handles reporting endpoints: the flat receipt report,
// the pivot production report, Excel exports and range deletion.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// ReceiptReport handles GET /reports/receipts
func (h *ReportsHandler) ReceiptReport(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ReportFilterRequest
	if !h.BindQuery(c, &req) {
		return
	}

	report, err := h.service.BuildReceiptReport(ctx, req.ToCriteria(), req.SortBy, sortDirection(req.SortDir))
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromReport(report))
}

// Pivot handles GET /reports/pivot
func (h *ReportsHandler) Pivot(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.PivotRequest
	if !h.BindQuery(c, &req) {
		return
	}

	table, err := h.service.BuildPivot(ctx, *req.StartDate, *req.EndDate)
	if err != nil {
		h.Error(c, err)
		return
	}

	if req.SortBy != "" {
		reports.SortPivotRows(table.Rows, req.SortBy, sortDirection(req.SortDir))
	}

	c.JSON(http.StatusOK, dto.FromPivot(table))
}

// ExportReceipts handles GET /reports/receipts/export
func (h *ReportsHandler) ExportReceipts(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ReportFilterRequest
	if !h.BindQuery(c, &req) {
		return
	}

	data, filename, err := h.service.ExportReceiptReport(ctx, req.ToCriteria(), req.SortBy, sortDirection(req.SortDir))
	if err != nil {
		h.Error(c, err)
		return
	}

	h.sendFile(c, filename, data)
}

// ExportPivot handles GET /reports/pivot/export
func (h *ReportsHandler) ExportPivot(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.PivotRequest
	if !h.BindQuery(c, &req) {
		return
	}

	data, filename, err := h.service.ExportPivotReport(ctx, *req.StartDate, *req.EndDate)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.sendFile(c, filename, data)
}

// PreviewRangeDeletion handles POST /reports/receipts/range. Deletion is
// a two-step flow: preview the resolved set, then confirm with DELETE.
func (h *ReportsHandler) PreviewRangeDeletion(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RangeDeletionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	preview, err := h.service.PreviewRangeDeletion(ctx, req.StartReceiptNo, req.EndReceiptNo)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.FromRangePreview(preview))
}

// CommitRangeDeletion handles DELETE /reports/receipts/range.
func (h *ReportsHandler) CommitRangeDeletion(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.RangeDeletionRequest
	if !h.BindJSON(c, &req) {
		return
	}

	deleted, err := h.service.CommitRangeDeletion(ctx, req.StartReceiptNo, req.EndReceiptNo)
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.RangeDeletionResponse{Deleted: deleted})
}

// sendFile streams an xlsx attachment.
func (h *ReportsHandler) sendFile(c *gin.Context, filename string, data []byte) {
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// sortDirection maps the query value to a sort direction, ascending by
// default.
func sortDirection(raw string) reports.Direction {
	if raw == string(reports.Descending) {
		return reports.Descending
	}
	return reports.Ascending
}
