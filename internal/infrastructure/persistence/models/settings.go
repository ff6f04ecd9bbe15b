package models

import (
	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/settings"
	"github.com/servex/backend/internal/domain/shared"
)

// CurrencySettingsModel is the persistence model for the CurrencySettings
// domain entity. One row per tenant, so the tenant index is unique here.
type CurrencySettingsModel struct {
	AggregateModel
	TenantID   uuid.UUID             `gorm:"type:uuid;not null;uniqueIndex"`
	CreatedBy  *uuid.UUID            `gorm:"type:uuid"`
	Currencies settings.CurrencyList `gorm:"type:jsonb"`
}

// TableName returns the table name for GORM
func (CurrencySettingsModel) TableName() string {
	return "currency_settings"
}

// ToDomain converts the persistence model to a domain CurrencySettings entity.
func (m *CurrencySettingsModel) ToDomain() *settings.CurrencySettings {
	return &settings.CurrencySettings{
		TenantAggregateRoot: shared.TenantAggregateRoot{
			BaseAggregateRoot: shared.BaseAggregateRoot{
				BaseEntity: m.BaseModel.ToDomain(),
				Version:    m.Version,
			},
			TenantID:  m.TenantID,
			CreatedBy: m.CreatedBy,
		},
		Currencies: m.Currencies,
	}
}

// FromDomain populates the persistence model from a domain CurrencySettings entity.
func (m *CurrencySettingsModel) FromDomain(s *settings.CurrencySettings) {
	m.FromDomainAggregateRoot(s.BaseAggregateRoot)
	m.TenantID = s.TenantID
	m.CreatedBy = s.CreatedBy
	m.Currencies = s.Currencies
}

// CurrencySettingsModelFromDomain creates a new persistence model from a domain CurrencySettings entity.
func CurrencySettingsModelFromDomain(s *settings.CurrencySettings) *CurrencySettingsModel {
	m := &CurrencySettingsModel{}
	m.FromDomain(s)
	return m
}
