package dto

import (
	"loomledger/internal/core/entity"
	"loomledger/internal/domain/catalogs/weaver"
)

// --- Request DTOs ---

// CreateWeaverRequest is the request body for creating a weaver.
type CreateWeaverRequest struct {
	WeaverID   string            `json:"weaverId" binding:"required"`
	Name       string            `json:"name" binding:"required"`
	Status     weaver.Status     `json:"status"`
	Attributes entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateWeaverRequest) ToEntity() *weaver.Weaver {
	item := weaver.New(r.WeaverID, r.Name)
	if r.Status != "" {
		item.Status = r.Status
	}
	if r.Attributes != nil {
		item.Attributes = r.Attributes
	}
	return item
}

// UpdateWeaverRequest is the request body for updating a weaver.
type UpdateWeaverRequest struct {
	WeaverID   string            `json:"weaverId" binding:"required"`
	Name       string            `json:"name" binding:"required"`
	Status     weaver.Status     `json:"status"`
	Attributes entity.Attributes `json:"attributes"`
	Version    int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateWeaverRequest) ApplyTo(item *weaver.Weaver) {
	item.Code = r.WeaverID
	item.Name = r.Name
	if r.Status != "" {
		item.Status = r.Status
	}
	if r.Attributes != nil {
		item.Attributes = r.Attributes
	}
	item.Version = r.Version
}

// --- Response DTOs ---

// WeaverResponse is the response body for a weaver.
type WeaverResponse struct {
	ID           string            `json:"id"`
	WeaverID     string            `json:"weaverId"`
	Name         string            `json:"name"`
	Status       weaver.Status     `json:"status"`
	DeletionMark bool              `json:"deletionMark"`
	Version      int               `json:"version"`
	Attributes   entity.Attributes `json:"attributes,omitempty"`
}

// FromWeaver creates response DTO from domain entity.
func FromWeaver(item *weaver.Weaver) *WeaverResponse {
	return &WeaverResponse{
		ID:           item.ID.String(),
		WeaverID:     item.Code,
		Name:         item.Name,
		Status:       item.Status,
		DeletionMark: item.DeletionMark,
		Version:      item.Version,
		Attributes:   item.Attributes,
	}
}
