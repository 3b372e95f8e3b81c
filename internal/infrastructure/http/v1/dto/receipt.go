package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"loomledger/internal/core/entity"
	"loomledger/internal/domain/documents/receipt"
)

// --- Request DTOs ---

// ReceiptLineRequest is one product row in a receipt.
type ReceiptLineRequest struct {
	ProductName string          `json:"productName" binding:"required"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// CreateReceiptRequest is the request body for creating a receipt.
// The receipt number is generated when absent.
type CreateReceiptRequest struct {
	Number       string               `json:"receiptNo"`
	Date         *time.Time           `json:"date"`
	SupervisorID string               `json:"supervisorId" binding:"required"`
	WeaverID     string               `json:"weaverId" binding:"required"`
	WeaverName   string               `json:"weaverName"`
	Comment      string               `json:"comment"`
	Products     []ReceiptLineRequest `json:"products" binding:"required,min=1"`
	Attributes   entity.Attributes    `json:"attributes"`
}

// ToEntity converts DTO to domain entity.
func (r *CreateReceiptRequest) ToEntity() *receipt.Receipt {
	doc := receipt.New(r.SupervisorID, r.WeaverID, r.WeaverName)
	doc.Number = r.Number
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.Comment = r.Comment
	if r.Attributes != nil {
		doc.Attributes = r.Attributes
	}
	for _, line := range r.Products {
		doc.AddLine(line.ProductName, line.Quantity)
	}
	return doc
}

// UpdateReceiptRequest is the request body for updating a receipt.
type UpdateReceiptRequest struct {
	Date         *time.Time           `json:"date"`
	SupervisorID string               `json:"supervisorId" binding:"required"`
	WeaverID     string               `json:"weaverId" binding:"required"`
	WeaverName   string               `json:"weaverName"`
	Comment      string               `json:"comment"`
	Products     []ReceiptLineRequest `json:"products" binding:"required,min=1"`
	Version      int                  `json:"version" binding:"required"`
}

// ApplyTo applies update DTO to existing entity. Lines are replaced
// wholesale.
func (r *UpdateReceiptRequest) ApplyTo(doc *receipt.Receipt) {
	if r.Date != nil {
		doc.Date = *r.Date
	}
	doc.SupervisorCode = r.SupervisorID
	doc.WeaverCode = r.WeaverID
	doc.WeaverName = r.WeaverName
	doc.Comment = r.Comment
	doc.Version = r.Version

	doc.Lines = doc.Lines[:0]
	for _, line := range r.Products {
		doc.AddLine(line.ProductName, line.Quantity)
	}
}

// ReceiptFilterRequest holds list query parameters.
type ReceiptFilterRequest struct {
	Search       string     `form:"search"`
	SupervisorID *string    `form:"supervisorId"`
	WeaverID     *string    `form:"weaverId"`
	DateFrom     *time.Time `form:"dateFrom" time_format:"2006-01-02"`
	DateTo       *time.Time `form:"dateTo" time_format:"2006-01-02"`
	Limit        int        `form:"limit"`
	Offset       int        `form:"offset"`
	OrderBy      string     `form:"orderBy"`
}

// --- Response DTOs ---

// ReceiptLineResponse is one product row in a receipt response.
type ReceiptLineResponse struct {
	LineNo      int             `json:"lineNo"`
	ProductName string          `json:"productName"`
	Quantity    decimal.Decimal `json:"quantity"`
}

// ReceiptResponse is the response body for a receipt.
type ReceiptResponse struct {
	ID           string                `json:"id"`
	Number       string                `json:"receiptNo"`
	Date         time.Time             `json:"date"`
	SupervisorID string                `json:"supervisorId"`
	WeaverID     string                `json:"weaverId"`
	WeaverName   string                `json:"weaverName"`
	SubTotal     decimal.Decimal       `json:"subTotal"`
	Comment      string                `json:"comment,omitempty"`
	Products     []ReceiptLineResponse `json:"products"`
	Version      int                   `json:"version"`
	CreatedAt    time.Time             `json:"createdAt"`
	UpdatedAt    time.Time             `json:"updatedAt"`
}

// FromReceipt creates response DTO from domain entity.
func FromReceipt(doc *receipt.Receipt) *ReceiptResponse {
	lines := make([]ReceiptLineResponse, len(doc.Lines))
	for i, line := range doc.Lines {
		lines[i] = ReceiptLineResponse{
			LineNo:      line.LineNo,
			ProductName: line.ProductName,
			Quantity:    line.Quantity,
		}
	}

	return &ReceiptResponse{
		ID:           doc.ID.String(),
		Number:       doc.Number,
		Date:         doc.Date,
		SupervisorID: doc.SupervisorCode,
		WeaverID:     doc.WeaverCode,
		WeaverName:   doc.WeaverName,
		SubTotal:     doc.SubTotal,
		Comment:      doc.Comment,
		Products:     lines,
		Version:      doc.Version,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}
}
