package settings

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/shared"
)

// CurrencyRate is one currency a tenant invoices in, with its exchange rate
// relative to the base currency.
type CurrencyRate struct {
	Code         string          `json:"code"`
	Name         string          `json:"name"`
	Symbol       string          `json:"symbol"`
	ExchangeRate decimal.Decimal `json:"exchange_rate"`
}

// CurrencyList stores the rates as a JSONB column
type CurrencyList []CurrencyRate

// Value implements driver.Valuer for JSONB storage
func (l CurrencyList) Value() (driver.Value, error) {
	if l == nil {
		return json.Marshal([]CurrencyRate{})
	}
	return json.Marshal(l)
}

// Scan implements sql.Scanner for JSONB retrieval
func (l *CurrencyList) Scan(value interface{}) error {
	if value == nil {
		*l = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan CurrencyList: unsupported type")
	}
	if len(bytes) == 0 {
		*l = nil
		return nil
	}
	return json.Unmarshal(bytes, l)
}

// DefaultCurrencies returns the rates a tenant starts with
func DefaultCurrencies() CurrencyList {
	return CurrencyList{
		{Code: "ZAR", Name: "South African Rand", Symbol: "R", ExchangeRate: decimal.NewFromInt(1)},
		{Code: "KES", Name: "Kenyan Shilling", Symbol: "KES", ExchangeRate: decimal.NewFromFloat(6.67)},
	}
}

// CurrencySettings is the per-tenant currency configuration. One record per
// tenant; absence means the defaults apply.
type CurrencySettings struct {
	shared.TenantAggregateRoot
	Currencies CurrencyList `json:"currencies"`
}

// NewCurrencySettings creates a settings record seeded with the defaults
func NewCurrencySettings(tenantID uuid.UUID) *CurrencySettings {
	return &CurrencySettings{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		Currencies:          DefaultCurrencies(),
	}
}

// SetCurrencies replaces the rate table
func (s *CurrencySettings) SetCurrencies(currencies CurrencyList) error {
	if len(currencies) == 0 {
		return shared.NewDomainError("INVALID_CURRENCIES", "At least one currency is required")
	}
	seen := map[string]struct{}{}
	for i := range currencies {
		code := strings.ToUpper(strings.TrimSpace(currencies[i].Code))
		if len(code) != 3 {
			return shared.NewDomainError("INVALID_CURRENCY_CODE", "Currency code must be three letters")
		}
		if !currencies[i].ExchangeRate.IsPositive() {
			return shared.NewDomainError("INVALID_EXCHANGE_RATE", "Exchange rate must be positive")
		}
		if _, dup := seen[code]; dup {
			return shared.NewDomainError("DUPLICATE_CURRENCY", "Currency codes must be unique")
		}
		seen[code] = struct{}{}
		currencies[i].Code = code
	}
	s.Currencies = currencies
	s.IncrementVersion()
	return nil
}

// Repository defines persistence operations for currency settings
type Repository interface {
	FindForTenant(ctx context.Context, tenantID uuid.UUID) (*CurrencySettings, error)
	Save(ctx context.Context, s *CurrencySettings) error
}
