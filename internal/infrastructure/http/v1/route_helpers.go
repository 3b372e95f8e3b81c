// Package v1 provides HTTP API version 1.
package v1

import (
	"github.com/gin-gonic/gin"

	"loomledger/internal/domain/auth"
	"loomledger/internal/infrastructure/http/v1/middleware"
)

// CatalogRouteHandler defines the interface for catalog handlers.
// All catalog handlers must implement these methods.
type CatalogRouteHandler interface {
	List(c *gin.Context)
	Create(c *gin.Context)
	Get(c *gin.Context)
	Update(c *gin.Context)
	Delete(c *gin.Context)
	SetDeletionMark(c *gin.Context)
}

// RegisterCatalogRoutes registers standard CRUD routes for a catalog.
// Reads are open to anyone who can record receipts, since supervisors
// pick products and weavers when entering production; writes require
// the catalog management permission.
//
// Usage:
//
//	repo := catalog_repo.NewProductRepo(txManager)
//	service := product.NewService(repo, txManager, numerator)
//	handler := handlers.NewProductHandler(baseHandler, service)
//	RegisterCatalogRoutes(catalogs.Group("/products"), handler)
func RegisterCatalogRoutes(group *gin.RouterGroup, handler CatalogRouteHandler) {
	read := middleware.RequireAnyPermission(auth.PermCatalogManage, auth.PermReceiptCreate)
	manage := middleware.RequirePermission(auth.PermCatalogManage)

	group.GET("", read, handler.List)
	group.GET("/:id", read, handler.Get)
	group.POST("", manage, handler.Create)
	group.PUT("/:id", manage, handler.Update)
	group.DELETE("/:id", manage, handler.Delete)
	group.POST("/:id/deletion-mark", manage, handler.SetDeletionMark)
}
