package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"loomledger/internal/domain"
	"loomledger/internal/domain/catalogs/product"
	"loomledger/internal/domain/catalogs/supervisor"
	"loomledger/internal/domain/catalogs/weaver"
	"loomledger/internal/domain/documents/receipt"
)

// DashboardHandler serves summary statistics for the admin dashboard.
type DashboardHandler struct {
	*BaseHandler
	products    *product.Service
	supervisors *supervisor.Service
	weavers     *weaver.Service
	receipts    *receipt.Service
}

// NewDashboardHandler creates a new dashboard handler.
func NewDashboardHandler(
	base *BaseHandler,
	products *product.Service,
	supervisors *supervisor.Service,
	weavers *weaver.Service,
	receipts *receipt.Service,
) *DashboardHandler {
	return &DashboardHandler{
		BaseHandler: base,
		products:    products,
		supervisors: supervisors,
		weavers:     weavers,
		receipts:    receipts,
	}
}

// Stats handles GET /dashboard/stats
func (h *DashboardHandler) Stats(c *gin.Context) {
	ctx := c.Request.Context()

	countFilter := domain.ListFilter{Limit: 1}

	productCount, err := h.products.List(ctx, countFilter)
	if err != nil {
		h.Error(c, err)
		return
	}

	supervisorCount, err := h.supervisors.List(ctx, countFilter)
	if err != nil {
		h.Error(c, err)
		return
	}

	weaverCount, err := h.weavers.List(ctx, countFilter)
	if err != nil {
		h.Error(c, err)
		return
	}

	totalReceipts, err := h.receipts.Count(ctx)
	if err != nil {
		h.Error(c, err)
		return
	}

	// Receipts recorded in the last 30 days.
	since := time.Now().AddDate(0, 0, -30)
	recent, err := h.receipts.List(ctx, receipt.ListFilter{
		ListFilter: domain.ListFilter{Limit: 1},
		DateFrom:   &since,
	})
	if err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"products":       productCount.TotalCount,
		"supervisors":    supervisorCount.TotalCount,
		"weavers":        weaverCount.TotalCount,
		"receipts":       totalReceipts,
		"recentReceipts": recent.TotalCount,
	})
}
