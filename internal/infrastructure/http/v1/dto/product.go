package dto

import (
	"loomledger/internal/core/entity"
	"loomledger/internal/domain/catalogs/product"
)

// --- Request DTOs ---

// CreateProductRequest is the request body for creating a product.
type CreateProductRequest struct {
	Name       string            `json:"name" binding:"required"`
	Status     product.Status    `json:"status"`
	ImageURL   *string           `json:"imageUrl"`
	Attributes entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateProductRequest) ToEntity() *product.Product {
	item := product.New(r.Name)
	if r.Status != "" {
		item.Status = r.Status
	}
	item.ImageURL = r.ImageURL
	if r.Attributes != nil {
		item.Attributes = r.Attributes
	}
	return item
}

// UpdateProductRequest is the request body for updating a product.
// The serial number is assigned at creation and never changes.
type UpdateProductRequest struct {
	Name       string            `json:"name" binding:"required"`
	Status     product.Status    `json:"status"`
	ImageURL   *string           `json:"imageUrl"`
	Attributes entity.Attributes `json:"attributes"`
	Version    int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateProductRequest) ApplyTo(item *product.Product) {
	item.Name = r.Name
	if r.Status != "" {
		item.Status = r.Status
	}
	item.ImageURL = r.ImageURL
	if r.Attributes != nil {
		item.Attributes = r.Attributes
	}
	item.Version = r.Version
}

// --- Response DTOs ---

// ProductResponse is the response body for a product.
type ProductResponse struct {
	ID           string            `json:"id"`
	Name         string            `json:"name"`
	Status       product.Status    `json:"status"`
	SerialNo     int               `json:"serialNo"`
	ImageURL     *string           `json:"imageUrl,omitempty"`
	DeletionMark bool              `json:"deletionMark"`
	Version      int               `json:"version"`
	Attributes   entity.Attributes `json:"attributes,omitempty"`
}

// FromProduct creates response DTO from domain entity.
func FromProduct(item *product.Product) *ProductResponse {
	return &ProductResponse{
		ID:           item.ID.String(),
		Name:         item.Name,
		Status:       item.Status,
		SerialNo:     item.SerialNo,
		ImageURL:     item.ImageURL,
		DeletionMark: item.DeletionMark,
		Version:      item.Version,
		Attributes:   item.Attributes,
	}
}
