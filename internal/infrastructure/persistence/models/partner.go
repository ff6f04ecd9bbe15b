package models

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/partner"
	"github.com/servex/backend/internal/domain/shared/valueobject"
)

// ClientModel is the persistence model for the Client domain entity.
type ClientModel struct {
	TenantAggregateModel
	Name             string               `gorm:"type:varchar(200);not null;index"`
	Phone            string               `gorm:"type:varchar(50)"`
	Email            string               `gorm:"type:varchar(200)"`
	Whatsapp         string               `gorm:"type:varchar(50)"`
	CreditLimit      decimal.Decimal      `gorm:"type:decimal(18,2);not null;default:0"`
	PaymentTermsDays int                  `gorm:"not null;default:30"`
	DefaultCurrency  valueobject.Currency `gorm:"type:varchar(3);not null;default:'ZAR'"`
	DefaultRateValue *decimal.Decimal     `gorm:"type:decimal(18,2)"`
	DefaultRateType  partner.RateType     `gorm:"type:varchar(20);not null;default:'per_kg'"`
	Status           partner.ClientStatus `gorm:"type:varchar(20);not null;default:'active';index"`
}

// TableName returns the table name for GORM
func (ClientModel) TableName() string {
	return "clients"
}

// ToDomain converts the persistence model to a domain Client entity.
func (m *ClientModel) ToDomain() *partner.Client {
	return &partner.Client{
		TenantAggregateRoot: m.TenantRoot(),
		Name:                m.Name,
		Phone:               m.Phone,
		Email:               m.Email,
		Whatsapp:            m.Whatsapp,
		CreditLimit:         m.CreditLimit,
		PaymentTermsDays:    m.PaymentTermsDays,
		DefaultCurrency:     m.DefaultCurrency,
		DefaultRateValue:    m.DefaultRateValue,
		DefaultRateType:     m.DefaultRateType,
		Status:              m.Status,
	}
}

// FromDomain populates the persistence model from a domain Client entity.
func (m *ClientModel) FromDomain(c *partner.Client) {
	m.FromDomainTenantAggregateRoot(c.TenantAggregateRoot)
	m.Name = c.Name
	m.Phone = c.Phone
	m.Email = c.Email
	m.Whatsapp = c.Whatsapp
	m.CreditLimit = c.CreditLimit
	m.PaymentTermsDays = c.PaymentTermsDays
	m.DefaultCurrency = c.DefaultCurrency
	m.DefaultRateValue = c.DefaultRateValue
	m.DefaultRateType = c.DefaultRateType
	m.Status = c.Status
}

// ClientModelFromDomain creates a new persistence model from a domain Client entity.
func ClientModelFromDomain(c *partner.Client) *ClientModel {
	m := &ClientModel{}
	m.FromDomain(c)
	return m
}

// ClientRateModel is the persistence model for the ClientRate domain entity.
// Rate history rows are append-only.
type ClientRateModel struct {
	TenantAggregateModel
	ClientID      uuid.UUID        `gorm:"type:uuid;not null;index:idx_client_rate_client"`
	RateType      partner.RateType `gorm:"type:varchar(20);not null"`
	RateValue     decimal.Decimal  `gorm:"type:decimal(18,2);not null"`
	EffectiveFrom string           `gorm:"type:varchar(30);not null"`
	Notes         string           `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (ClientRateModel) TableName() string {
	return "client_rates"
}

// ToDomain converts the persistence model to a domain ClientRate entity.
func (m *ClientRateModel) ToDomain() *partner.ClientRate {
	return &partner.ClientRate{
		TenantAggregateRoot: m.TenantRoot(),
		ClientID:            m.ClientID,
		RateType:            m.RateType,
		RateValue:           m.RateValue,
		EffectiveFrom:       m.EffectiveFrom,
		Notes:               m.Notes,
	}
}

// FromDomain populates the persistence model from a domain ClientRate entity.
func (m *ClientRateModel) FromDomain(r *partner.ClientRate) {
	m.FromDomainTenantAggregateRoot(r.TenantAggregateRoot)
	m.ClientID = r.ClientID
	m.RateType = r.RateType
	m.RateValue = r.RateValue
	m.EffectiveFrom = r.EffectiveFrom
	m.Notes = r.Notes
}

// ClientRateModelFromDomain creates a new persistence model from a domain ClientRate entity.
func ClientRateModelFromDomain(r *partner.ClientRate) *ClientRateModel {
	m := &ClientRateModel{}
	m.FromDomain(r)
	return m
}
