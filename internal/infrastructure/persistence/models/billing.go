package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/billing"
	"github.com/servex/backend/internal/domain/shared/valueobject"
)

// InvoiceModel is the persistence model for the Invoice domain entity.
// ShipmentIDs is a JSONB array; the open-invoice report paths query it
// with jsonb_array_elements_text.
type InvoiceModel struct {
	TenantAggregateModel
	ClientID      uuid.UUID             `gorm:"type:uuid;not null;index"`
	TripID        *uuid.UUID            `gorm:"type:uuid;index"`
	ShipmentIDs   billing.UUIDSlice     `gorm:"type:jsonb"`
	InvoiceNumber string                `gorm:"type:varchar(30);not null;uniqueIndex:idx_invoice_tenant_number,priority:2"`
	Currency      valueobject.Currency  `gorm:"type:varchar(3);not null;default:'ZAR'"`
	Subtotal      decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	VAT           decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Adjustments   decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Total         decimal.Decimal       `gorm:"type:decimal(18,2);not null;default:0"`
	Status        billing.InvoiceStatus `gorm:"type:varchar(20);not null;default:'draft';index"`
	IssueDate     string                `gorm:"type:varchar(30);not null"`
	DueDate       string                `gorm:"type:varchar(30)"`
	SentAt        *time.Time
	SentBy        *uuid.UUID `gorm:"type:uuid"`
	PaidAt        *time.Time
	EmailSentAt   *time.Time
	EmailSentTo   string `gorm:"type:varchar(200)"`
}

// TableName returns the table name for GORM
func (InvoiceModel) TableName() string {
	return "invoices"
}

// ToDomain converts the persistence model to a domain Invoice entity.
func (m *InvoiceModel) ToDomain() *billing.Invoice {
	return &billing.Invoice{
		TenantAggregateRoot: m.TenantRoot(),
		ClientID:            m.ClientID,
		TripID:              m.TripID,
		ShipmentIDs:         m.ShipmentIDs,
		InvoiceNumber:       m.InvoiceNumber,
		Currency:            m.Currency,
		Subtotal:            m.Subtotal,
		VAT:                 m.VAT,
		Adjustments:         m.Adjustments,
		Total:               m.Total,
		Status:              m.Status,
		IssueDate:           m.IssueDate,
		DueDate:             m.DueDate,
		SentAt:              m.SentAt,
		SentBy:              m.SentBy,
		PaidAt:              m.PaidAt,
		EmailSentAt:         m.EmailSentAt,
		EmailSentTo:         m.EmailSentTo,
	}
}

// FromDomain populates the persistence model from a domain Invoice entity.
func (m *InvoiceModel) FromDomain(inv *billing.Invoice) {
	m.FromDomainTenantAggregateRoot(inv.TenantAggregateRoot)
	m.ClientID = inv.ClientID
	m.TripID = inv.TripID
	m.ShipmentIDs = inv.ShipmentIDs
	m.InvoiceNumber = inv.InvoiceNumber
	m.Currency = inv.Currency
	m.Subtotal = inv.Subtotal
	m.VAT = inv.VAT
	m.Adjustments = inv.Adjustments
	m.Total = inv.Total
	m.Status = inv.Status
	m.IssueDate = inv.IssueDate
	m.DueDate = inv.DueDate
	m.SentAt = inv.SentAt
	m.SentBy = inv.SentBy
	m.PaidAt = inv.PaidAt
	m.EmailSentAt = inv.EmailSentAt
	m.EmailSentTo = inv.EmailSentTo
}

// InvoiceModelFromDomain creates a new persistence model from a domain Invoice entity.
func InvoiceModelFromDomain(inv *billing.Invoice) *InvoiceModel {
	m := &InvoiceModel{}
	m.FromDomain(inv)
	return m
}

// LineItemModel is the persistence model for the invoice LineItem domain entity.
type LineItemModel struct {
	BaseModel
	InvoiceID   uuid.UUID        `gorm:"type:uuid;not null;index"`
	ShipmentID  *uuid.UUID       `gorm:"type:uuid"`
	Description string           `gorm:"type:text;not null"`
	Quantity    decimal.Decimal  `gorm:"type:decimal(12,2);not null;default:1"`
	Weight      *decimal.Decimal `gorm:"type:decimal(12,2)"`
	Rate        decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
	Amount      decimal.Decimal  `gorm:"type:decimal(18,2);not null;default:0"`
}

// TableName returns the table name for GORM
func (LineItemModel) TableName() string {
	return "invoice_line_items"
}

// ToDomain converts the persistence model to a domain LineItem entity.
func (m *LineItemModel) ToDomain() *billing.LineItem {
	return &billing.LineItem{
		BaseEntity:  m.BaseModel.ToDomain(),
		InvoiceID:   m.InvoiceID,
		ShipmentID:  m.ShipmentID,
		Description: m.Description,
		Quantity:    m.Quantity,
		Weight:      m.Weight,
		Rate:        m.Rate,
		Amount:      m.Amount,
	}
}

// FromDomain populates the persistence model from a domain LineItem entity.
func (m *LineItemModel) FromDomain(item *billing.LineItem) {
	m.FromDomainBaseEntity(item.BaseEntity)
	m.InvoiceID = item.InvoiceID
	m.ShipmentID = item.ShipmentID
	m.Description = item.Description
	m.Quantity = item.Quantity
	m.Weight = item.Weight
	m.Rate = item.Rate
	m.Amount = item.Amount
}

// LineItemModelFromDomain creates a new persistence model from a domain LineItem entity.
func LineItemModelFromDomain(item *billing.LineItem) *LineItemModel {
	m := &LineItemModel{}
	m.FromDomain(item)
	return m
}

// PaymentModel is the persistence model for the Payment domain entity.
type PaymentModel struct {
	TenantAggregateModel
	ClientID    uuid.UUID             `gorm:"type:uuid;not null;index"`
	InvoiceID   *uuid.UUID            `gorm:"type:uuid;index"`
	Amount      decimal.Decimal       `gorm:"type:decimal(18,2);not null"`
	Currency    valueobject.Currency  `gorm:"type:varchar(3);not null;default:'ZAR'"`
	Method      billing.PaymentMethod `gorm:"type:varchar(20);not null;default:'eft'"`
	PaymentDate string                `gorm:"type:varchar(30);not null"`
	Reference   string                `gorm:"type:varchar(100)"`
	Notes       string                `gorm:"type:text"`
	RecordedBy  *uuid.UUID            `gorm:"type:uuid"`
}

// TableName returns the table name for GORM
func (PaymentModel) TableName() string {
	return "payments"
}

// ToDomain converts the persistence model to a domain Payment entity.
func (m *PaymentModel) ToDomain() *billing.Payment {
	return &billing.Payment{
		TenantAggregateRoot: m.TenantRoot(),
		ClientID:            m.ClientID,
		InvoiceID:           m.InvoiceID,
		Amount:              m.Amount,
		Currency:            m.Currency,
		Method:              m.Method,
		PaymentDate:         m.PaymentDate,
		Reference:           m.Reference,
		Notes:               m.Notes,
		RecordedBy:          m.RecordedBy,
	}
}

// FromDomain populates the persistence model from a domain Payment entity.
func (m *PaymentModel) FromDomain(p *billing.Payment) {
	m.FromDomainTenantAggregateRoot(p.TenantAggregateRoot)
	m.ClientID = p.ClientID
	m.InvoiceID = p.InvoiceID
	m.Amount = p.Amount
	m.Currency = p.Currency
	m.Method = p.Method
	m.PaymentDate = p.PaymentDate
	m.Reference = p.Reference
	m.Notes = p.Notes
	m.RecordedBy = p.RecordedBy
}

// PaymentModelFromDomain creates a new persistence model from a domain Payment entity.
func PaymentModelFromDomain(p *billing.Payment) *PaymentModel {
	m := &PaymentModel{}
	m.FromDomain(p)
	return m
}
