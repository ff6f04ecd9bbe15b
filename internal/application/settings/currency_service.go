package settings

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/settings"
	"github.com/servex/backend/internal/domain/shared"
)

// CurrencyCache caches the per-tenant rate table in front of the store.
// A nil cache is valid and disables caching.
type CurrencyCache interface {
	Get(ctx context.Context, tenantID uuid.UUID) (settings.CurrencyList, bool)
	Set(ctx context.Context, tenantID uuid.UUID, currencies settings.CurrencyList)
	Invalidate(ctx context.Context, tenantID uuid.UUID)
}

// CurrencyRateInput is one currency row in an update request
type CurrencyRateInput struct {
	Code         string          `json:"code" binding:"required,len=3"`
	Name         string          `json:"name" binding:"required,max=100"`
	Symbol       string          `json:"symbol" binding:"required,max=8"`
	ExchangeRate decimal.Decimal `json:"exchange_rate" binding:"required"`
}

// UpdateCurrenciesRequest replaces the tenant's rate table
type UpdateCurrenciesRequest struct {
	Currencies []CurrencyRateInput `json:"currencies" binding:"required,min=1,dive"`
}

// CurrenciesResponse carries the tenant's rate table
type CurrenciesResponse struct {
	Currencies settings.CurrencyList `json:"currencies"`
}

// CurrencyService serves the per-tenant currency settings through a
// read-through cache. Tenants without a stored record get the defaults.
type CurrencyService struct {
	settingsRepo settings.Repository
	cache        CurrencyCache
}

// NewCurrencyService creates a new CurrencyService
func NewCurrencyService(settingsRepo settings.Repository, cache CurrencyCache) *CurrencyService {
	return &CurrencyService{settingsRepo: settingsRepo, cache: cache}
}

// Get returns the tenant's currencies, falling back to the defaults when no
// record exists yet.
func (s *CurrencyService) Get(ctx context.Context, tenantID uuid.UUID) (*CurrenciesResponse, error) {
	if s.cache != nil {
		if currencies, ok := s.cache.Get(ctx, tenantID); ok {
			return &CurrenciesResponse{Currencies: currencies}, nil
		}
	}

	record, err := s.settingsRepo.FindForTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return &CurrenciesResponse{Currencies: settings.DefaultCurrencies()}, nil
		}
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, tenantID, record.Currencies)
	}
	return &CurrenciesResponse{Currencies: record.Currencies}, nil
}

// Update replaces the tenant's rate table, creating the record on first use
func (s *CurrencyService) Update(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, req UpdateCurrenciesRequest) (*CurrenciesResponse, error) {
	record, err := s.settingsRepo.FindForTenant(ctx, tenantID)
	if err != nil {
		if !errors.Is(err, shared.ErrNotFound) {
			return nil, err
		}
		record = settings.NewCurrencySettings(tenantID)
		record.SetCreatedBy(actor.UserID)
	}

	currencies := make(settings.CurrencyList, len(req.Currencies))
	for i, c := range req.Currencies {
		currencies[i] = settings.CurrencyRate{
			Code:         c.Code,
			Name:         c.Name,
			Symbol:       c.Symbol,
			ExchangeRate: c.ExchangeRate,
		}
	}
	if err := record.SetCurrencies(currencies); err != nil {
		return nil, err
	}
	if err := s.settingsRepo.Save(ctx, record); err != nil {
		return nil, err
	}

	if s.cache != nil {
		s.cache.Set(ctx, tenantID, record.Currencies)
	}
	return &CurrenciesResponse{Currencies: record.Currencies}, nil
}
