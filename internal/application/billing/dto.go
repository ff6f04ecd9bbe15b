package billing

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/billing"
)

// CreateInvoiceRequest represents a request to create a manual invoice.
// An empty DueDate derives from the client's payment terms.
type CreateInvoiceRequest struct {
	ClientID    uuid.UUID        `json:"client_id" binding:"required"`
	Currency    string           `json:"currency" binding:"omitempty,max=3"`
	Subtotal    decimal.Decimal  `json:"subtotal"`
	Adjustments *decimal.Decimal `json:"adjustments"`
	DueDate     string           `json:"due_date" binding:"omitempty,datestr"`
	CreatedBy   *uuid.UUID       `json:"-"`
}

// UpdateInvoiceRequest represents a partial update to an invoice
type UpdateInvoiceRequest struct {
	Subtotal    *decimal.Decimal `json:"subtotal"`
	Adjustments *decimal.Decimal `json:"adjustments"`
	DueDate     *string          `json:"due_date" binding:"omitempty,datestr"`
	Status      *string          `json:"status" binding:"omitempty,oneof=draft sent paid overdue"`
}

// CreateLineItemRequest represents a request to add a line item
type CreateLineItemRequest struct {
	ShipmentID  *uuid.UUID       `json:"shipment_id"`
	Description string           `json:"description" binding:"required,min=1,max=500"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Weight      *decimal.Decimal `json:"weight"`
	Rate        decimal.Decimal  `json:"rate"`
}

// RecordPaymentRequest represents a request to record a payment
type RecordPaymentRequest struct {
	ClientID    uuid.UUID       `json:"client_id" binding:"required"`
	InvoiceID   *uuid.UUID      `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,max=3"`
	Method      string          `json:"method" binding:"omitempty,oneof=eft cash card mobile_money other"`
	PaymentDate string          `json:"payment_date" binding:"omitempty,datestr"`
	Reference   string          `json:"reference" binding:"max=100"`
	Notes       string          `json:"notes"`
}

// InvoiceResponse represents an invoice in API responses.
// Outstanding is derived from the ledger at read time, never stored.
type InvoiceResponse struct {
	ID            uuid.UUID       `json:"id"`
	TenantID      uuid.UUID       `json:"tenant_id"`
	ClientID      uuid.UUID       `json:"client_id"`
	TripID        *uuid.UUID      `json:"trip_id"`
	ShipmentIDs   []uuid.UUID     `json:"shipment_ids"`
	InvoiceNumber string          `json:"invoice_number"`
	Currency      string          `json:"currency"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	VAT           decimal.Decimal `json:"vat"`
	Adjustments   decimal.Decimal `json:"adjustments"`
	Total         decimal.Decimal `json:"total"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Status        string          `json:"status"`
	IssueDate     string          `json:"issue_date"`
	DueDate       string          `json:"due_date"`
	SentAt        *time.Time      `json:"sent_at"`
	SentBy        *uuid.UUID      `json:"sent_by"`
	PaidAt        *time.Time      `json:"paid_at"`
	EmailSentAt   *time.Time      `json:"email_sent_at"`
	EmailSentTo   string          `json:"email_sent_to"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Version       int             `json:"version"`
}

// LineItemResponse represents a line item in API responses
type LineItemResponse struct {
	ID          uuid.UUID        `json:"id"`
	InvoiceID   uuid.UUID        `json:"invoice_id"`
	ShipmentID  *uuid.UUID       `json:"shipment_id"`
	Description string           `json:"description"`
	Quantity    decimal.Decimal  `json:"quantity"`
	Weight      *decimal.Decimal `json:"weight"`
	Rate        decimal.Decimal  `json:"rate"`
	Amount      decimal.Decimal  `json:"amount"`
}

// PaymentResponse represents a payment in API responses
type PaymentResponse struct {
	ID          uuid.UUID       `json:"id"`
	ClientID    uuid.UUID       `json:"client_id"`
	InvoiceID   *uuid.UUID      `json:"invoice_id"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	Method      string          `json:"method"`
	PaymentDate string          `json:"payment_date"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`
	CreatedAt   time.Time       `json:"created_at"`
}

// GenerationResult reports the outcome of invoice generation for a trip
type GenerationResult struct {
	Created []InvoiceResponse `json:"created"`
	Skipped []uuid.UUID       `json:"skipped_clients"`
	Failed  map[string]string `json:"failed_clients,omitempty"`
}

// InvoiceListFilter represents filter options for the invoice list
type InvoiceListFilter struct {
	Search   string     `form:"search"`
	Status   string     `form:"status" binding:"omitempty,oneof=draft sent paid overdue"`
	ClientID *uuid.UUID `form:"client_id"`
	TripID   *uuid.UUID `form:"trip_id"`
	Page     int        `form:"page" binding:"omitempty,min=1"`
	PageSize int        `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string     `form:"order_by"`
	OrderDir string     `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToInvoiceResponse converts a domain invoice plus its payment ledger to a
// response DTO
func ToInvoiceResponse(inv *billing.Invoice, payments []billing.Payment) InvoiceResponse {
	paid := billing.SumPayments(payments)
	return InvoiceResponse{
		ID:            inv.ID,
		TenantID:      inv.TenantID,
		ClientID:      inv.ClientID,
		TripID:        inv.TripID,
		ShipmentIDs:   inv.ShipmentIDs,
		InvoiceNumber: inv.InvoiceNumber,
		Currency:      string(inv.Currency),
		Subtotal:      inv.Subtotal,
		VAT:           inv.VAT,
		Adjustments:   inv.Adjustments,
		Total:         inv.Total,
		AmountPaid:    paid,
		Outstanding:   inv.Outstanding(paid),
		Status:        string(inv.Status),
		IssueDate:     inv.IssueDate,
		DueDate:       inv.DueDate,
		SentAt:        inv.SentAt,
		SentBy:        inv.SentBy,
		PaidAt:        inv.PaidAt,
		EmailSentAt:   inv.EmailSentAt,
		EmailSentTo:   inv.EmailSentTo,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
		Version:       inv.Version,
	}
}

// ToLineItemResponse converts a domain line item to a response DTO
func ToLineItemResponse(item *billing.LineItem) LineItemResponse {
	return LineItemResponse{
		ID:          item.ID,
		InvoiceID:   item.InvoiceID,
		ShipmentID:  item.ShipmentID,
		Description: item.Description,
		Quantity:    item.Quantity,
		Weight:      item.Weight,
		Rate:        item.Rate,
		Amount:      item.Amount,
	}
}

// ToPaymentResponse converts a domain payment to a response DTO
func ToPaymentResponse(p *billing.Payment) PaymentResponse {
	return PaymentResponse{
		ID:          p.ID,
		ClientID:    p.ClientID,
		InvoiceID:   p.InvoiceID,
		Amount:      p.Amount,
		Currency:    string(p.Currency),
		Method:      string(p.Method),
		PaymentDate: p.PaymentDate,
		Reference:   p.Reference,
		Notes:       p.Notes,
		CreatedAt:   p.CreatedAt,
	}
}
