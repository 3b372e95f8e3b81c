package dto

import (
	"loomledger/internal/core/entity"
	"loomledger/internal/domain/catalogs/supervisor"
)

// --- Request DTOs ---

// CreateSupervisorRequest is the request body for creating a supervisor.
type CreateSupervisorRequest struct {
	SupervisorID string            `json:"supervisorId" binding:"required"`
	Name         string            `json:"name" binding:"required"`
	Password     string            `json:"password" binding:"required,min=6"`
	Status       supervisor.Status `json:"status"`
	Attributes   entity.Attributes `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateSupervisorRequest) ToEntity() *supervisor.Supervisor {
	item := supervisor.New(r.SupervisorID, r.Name)
	item.Password = r.Password
	if r.Status != "" {
		item.Status = r.Status
	}
	if r.Attributes != nil {
		item.Attributes = r.Attributes
	}
	return item
}

// UpdateSupervisorRequest is the request body for updating a supervisor.
// Password is optional; when empty the stored hash is kept.
type UpdateSupervisorRequest struct {
	SupervisorID string            `json:"supervisorId" binding:"required"`
	Name         string            `json:"name" binding:"required"`
	Password     string            `json:"password"`
	Status       supervisor.Status `json:"status"`
	Attributes   entity.Attributes `json:"attributes"`
	Version      int               `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity.
func (r *UpdateSupervisorRequest) ApplyTo(item *supervisor.Supervisor) {
	item.Code = r.SupervisorID
	item.Name = r.Name
	item.Password = r.Password
	if r.Status != "" {
		item.Status = r.Status
	}
	if r.Attributes != nil {
		item.Attributes = r.Attributes
	}
	item.Version = r.Version
}

// --- Response DTOs ---

// SupervisorResponse is the response body for a supervisor.
// The password hash never leaves the server.
type SupervisorResponse struct {
	ID           string            `json:"id"`
	SupervisorID string            `json:"supervisorId"`
	Name         string            `json:"name"`
	Status       supervisor.Status `json:"status"`
	DeletionMark bool              `json:"deletionMark"`
	Version      int               `json:"version"`
	Attributes   entity.Attributes `json:"attributes,omitempty"`
}

// FromSupervisor creates response DTO from domain entity.
func FromSupervisor(item *supervisor.Supervisor) *SupervisorResponse {
	return &SupervisorResponse{
		ID:           item.ID.String(),
		SupervisorID: item.Code,
		Name:         item.Name,
		Status:       item.Status,
		DeletionMark: item.DeletionMark,
		Version:      item.Version,
		Attributes:   item.Attributes,
	}
}
