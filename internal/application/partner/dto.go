package partner

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/partner"
)

// CreateClientRequest represents a request to create a new client
type CreateClientRequest struct {
	Name             string           `json:"name" binding:"required,min=1,max=200"`
	Phone            string           `json:"phone" binding:"max=50"`
	Email            string           `json:"email" binding:"omitempty,email,max=200"`
	Whatsapp         string           `json:"whatsapp" binding:"max=50"`
	CreditLimit      *decimal.Decimal `json:"credit_limit"`
	PaymentTermsDays *int             `json:"payment_terms_days" binding:"omitempty,min=1,max=365"`
	DefaultCurrency  string           `json:"default_currency" binding:"omitempty,max=3"`
	DefaultRateValue *decimal.Decimal `json:"default_rate_value"`
	DefaultRateType  string           `json:"default_rate_type" binding:"omitempty,oneof=per_kg per_cbm flat_rate custom"`
	CreatedBy        *uuid.UUID       `json:"-"`
}

// UpdateClientRequest represents a request to update a client
type UpdateClientRequest struct {
	Name             *string          `json:"name" binding:"omitempty,min=1,max=200"`
	Phone            *string          `json:"phone" binding:"omitempty,max=50"`
	Email            *string          `json:"email" binding:"omitempty,email,max=200"`
	Whatsapp         *string          `json:"whatsapp" binding:"omitempty,max=50"`
	CreditLimit      *decimal.Decimal `json:"credit_limit"`
	PaymentTermsDays *int             `json:"payment_terms_days" binding:"omitempty,min=1,max=365"`
	DefaultCurrency  *string          `json:"default_currency" binding:"omitempty,max=3"`
	DefaultRateValue *decimal.Decimal `json:"default_rate_value"`
	DefaultRateType  *string          `json:"default_rate_type" binding:"omitempty,oneof=per_kg per_cbm flat_rate custom"`
	Status           *string          `json:"status" binding:"omitempty,oneof=active inactive"`
}

// CreateRateRequest represents a request to add a rate entry for a client
type CreateRateRequest struct {
	RateType      string          `json:"rate_type" binding:"required,oneof=per_kg per_cbm flat_rate custom"`
	RateValue     decimal.Decimal `json:"rate_value" binding:"required"`
	EffectiveFrom string          `json:"effective_from" binding:"omitempty,datestr"`
	Notes         string          `json:"notes"`
}

// ClientResponse represents a client in API responses
type ClientResponse struct {
	ID               uuid.UUID        `json:"id"`
	TenantID         uuid.UUID        `json:"tenant_id"`
	Name             string           `json:"name"`
	Phone            string           `json:"phone"`
	Email            string           `json:"email"`
	Whatsapp         string           `json:"whatsapp"`
	CreditLimit      decimal.Decimal  `json:"credit_limit"`
	PaymentTermsDays int              `json:"payment_terms_days"`
	DefaultCurrency  string           `json:"default_currency"`
	DefaultRateValue *decimal.Decimal `json:"default_rate_value"`
	DefaultRateType  string           `json:"default_rate_type"`
	Status           string           `json:"status"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
	Version          int              `json:"version"`
}

// RateResponse represents a client rate entry in API responses
type RateResponse struct {
	ID            uuid.UUID       `json:"id"`
	ClientID      uuid.UUID       `json:"client_id"`
	RateType      string          `json:"rate_type"`
	RateValue     decimal.Decimal `json:"rate_value"`
	EffectiveFrom string          `json:"effective_from"`
	Notes         string          `json:"notes"`
	CreatedAt     time.Time       `json:"created_at"`
}

// ClientStatsResponse is a client list row enriched with billing figures
type ClientStatsResponse struct {
	ClientResponse
	CurrentRateValue *decimal.Decimal `json:"current_rate_value"`
	CurrentRateType  string           `json:"current_rate_type"`
	AmountOwed       decimal.Decimal  `json:"amount_owed"`
	TotalSpent       decimal.Decimal  `json:"total_spent"`
}

// ClientListFilter represents filter options for the client list
type ClientListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=active inactive"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToClientResponse converts a domain client to a response DTO
func ToClientResponse(c *partner.Client) ClientResponse {
	return ClientResponse{
		ID:               c.ID,
		TenantID:         c.TenantID,
		Name:             c.Name,
		Phone:            c.Phone,
		Email:            c.Email,
		Whatsapp:         c.Whatsapp,
		CreditLimit:      c.CreditLimit,
		PaymentTermsDays: c.PaymentTermsDays,
		DefaultCurrency:  string(c.DefaultCurrency),
		DefaultRateValue: c.DefaultRateValue,
		DefaultRateType:  string(c.DefaultRateType),
		Status:           string(c.Status),
		CreatedAt:        c.CreatedAt,
		UpdatedAt:        c.UpdatedAt,
		Version:          c.Version,
	}
}

// ToRateResponse converts a domain rate entry to a response DTO
func ToRateResponse(r *partner.ClientRate) RateResponse {
	return RateResponse{
		ID:            r.ID,
		ClientID:      r.ClientID,
		RateType:      string(r.RateType),
		RateValue:     r.RateValue,
		EffectiveFrom: r.EffectiveFrom,
		Notes:         r.Notes,
		CreatedAt:     r.CreatedAt,
	}
}
