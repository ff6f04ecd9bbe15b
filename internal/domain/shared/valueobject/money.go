package valueobject

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Currency is an ISO 4217 currency code
type Currency string

// Currencies the freight office bills in across its corridors
const (
	ZAR Currency = "ZAR"
	KES Currency = "KES"
	USD Currency = "USD"
	TZS Currency = "TZS"
	ZMW Currency = "ZMW"
)

// DefaultCurrency is applied when a record carries no explicit currency
const DefaultCurrency = ZAR

// Money pairs an amount with its currency. It is immutable; every
// operation returns a new value, and cross-currency arithmetic errors
// instead of silently mixing corridors.
type Money struct {
	amount   decimal.Decimal
	currency Currency
}

// NewMoney creates a Money with the specified amount and currency
func NewMoney(amount decimal.Decimal, currency Currency) (Money, error) {
	if currency == "" {
		return Money{}, errors.New("currency cannot be empty")
	}
	return Money{amount: amount, currency: currency}, nil
}

// NewMoneyFromFloat creates Money from a float64 value
func NewMoneyFromFloat(amount float64, currency Currency) (Money, error) {
	return NewMoney(decimal.NewFromFloat(amount), currency)
}

// NewMoneyFromString creates Money from a decimal string
func NewMoneyFromString(amount string, currency Currency) (Money, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return Money{}, fmt.Errorf("invalid amount string: %w", err)
	}
	return NewMoney(d, currency)
}

// NewMoneyZAR creates Money in the default rand currency
func NewMoneyZAR(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: ZAR}
}

// NewMoneyZARFromFloat creates rand Money from float64
func NewMoneyZARFromFloat(amount float64) Money {
	return NewMoneyZAR(decimal.NewFromFloat(amount))
}

// Zero returns a zero-value Money in the specified currency
func Zero(currency Currency) Money {
	return Money{amount: decimal.Zero, currency: currency}
}

// ZeroZAR returns zero rand
func ZeroZAR() Money {
	return Zero(ZAR)
}

// Amount returns the decimal amount
func (m Money) Amount() decimal.Decimal {
	return m.amount
}

// Currency returns the currency code
func (m Money) Currency() Currency {
	return m.currency
}

// IsZero reports whether the amount is zero
func (m Money) IsZero() bool {
	return m.amount.IsZero()
}

// IsPositive reports whether the amount is positive
func (m Money) IsPositive() bool {
	return m.amount.IsPositive()
}

// IsNegative reports whether the amount is negative
func (m Money) IsNegative() bool {
	return m.amount.IsNegative()
}

func (m Money) checkCurrency(op string, other Money) error {
	if m.currency != other.currency {
		return fmt.Errorf("cannot %s money with different currencies: %s and %s", op, m.currency, other.currency)
	}
	return nil
}

func (m Money) with(amount decimal.Decimal) Money {
	return Money{amount: amount, currency: m.currency}
}

// Add returns the sum; errors when currencies differ
func (m Money) Add(other Money) (Money, error) {
	if err := m.checkCurrency("add", other); err != nil {
		return Money{}, err
	}
	return m.with(m.amount.Add(other.amount)), nil
}

// MustAdd adds two Money values, panicking on currency mismatch
func (m Money) MustAdd(other Money) Money {
	result, err := m.Add(other)
	if err != nil {
		panic(err)
	}
	return result
}

// Subtract returns the difference; errors when currencies differ
func (m Money) Subtract(other Money) (Money, error) {
	if err := m.checkCurrency("subtract", other); err != nil {
		return Money{}, err
	}
	return m.with(m.amount.Sub(other.amount)), nil
}

// MustSubtract subtracts two Money values, panicking on currency mismatch
func (m Money) MustSubtract(other Money) Money {
	result, err := m.Subtract(other)
	if err != nil {
		panic(err)
	}
	return result
}

// Multiply scales the amount by factor
func (m Money) Multiply(factor decimal.Decimal) Money {
	return m.with(m.amount.Mul(factor))
}

// MultiplyByFloat scales the amount by a float factor
func (m Money) MultiplyByFloat(factor float64) Money {
	return m.Multiply(decimal.NewFromFloat(factor))
}

// Negate flips the sign
func (m Money) Negate() Money {
	return m.with(m.amount.Neg())
}

// Round rounds to the given number of decimal places
func (m Money) Round(places int32) Money {
	return m.with(m.amount.Round(places))
}

// CalculatePercentage returns percent% of this Money
func (m Money) CalculatePercentage(percent decimal.Decimal) Money {
	return m.with(m.amount.Mul(percent).Div(decimal.NewFromInt(100)))
}

// Equals reports whether amount and currency both match
func (m Money) Equals(other Money) bool {
	return m.currency == other.currency && m.amount.Equal(other.amount)
}

// LessThan compares amounts; errors when currencies differ
func (m Money) LessThan(other Money) (bool, error) {
	if err := m.checkCurrency("compare", other); err != nil {
		return false, err
	}
	return m.amount.LessThan(other.amount), nil
}

// GreaterThanOrEqual compares amounts; errors when currencies differ
func (m Money) GreaterThanOrEqual(other Money) (bool, error) {
	if err := m.checkCurrency("compare", other); err != nil {
		return false, err
	}
	return m.amount.GreaterThanOrEqual(other.amount), nil
}

// String renders as "1234.50 ZAR"
func (m Money) String() string {
	return fmt.Sprintf("%s %s", m.amount.StringFixed(2), m.currency)
}

// StringFixed returns only the amount, with fixed decimal places
func (m Money) StringFixed(places int32) string {
	return m.amount.StringFixed(places)
}

// Float64 returns the amount as a float64 (may lose precision)
func (m Money) Float64() float64 {
	f, _ := m.amount.Float64()
	return f
}

type moneyJSON struct {
	Amount   string   `json:"amount"`
	Currency Currency `json:"currency"`
}

// MarshalJSON implements json.Marshaler
func (m Money) MarshalJSON() ([]byte, error) {
	return json.Marshal(moneyJSON{
		Amount:   m.amount.String(),
		Currency: m.currency,
	})
}

// UnmarshalJSON implements json.Unmarshaler.
// Fields are assigned directly without going through NewMoney, so an empty
// currency is possible when binding untrusted input. Callers that need strict
// validation should use NewMoneyFromString.
func (m *Money) UnmarshalJSON(data []byte) error {
	var v moneyJSON
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	amount, err := decimal.NewFromString(v.Amount)
	if err != nil {
		return fmt.Errorf("invalid amount: %w", err)
	}
	m.amount = amount
	m.currency = v.Currency
	return nil
}

// Value implements driver.Valuer. Only the amount is stored; the currency
// lives in its own column.
func (m Money) Value() (driver.Value, error) {
	return m.amount.String(), nil
}

// Scan implements sql.Scanner. The currency defaults to DefaultCurrency
// unless the receiver already carries one.
func (m *Money) Scan(value any) error {
	if value == nil {
		m.amount = decimal.Zero
		m.currency = DefaultCurrency
		return nil
	}

	var strVal string
	switch v := value.(type) {
	case string:
		strVal = v
	case []byte:
		strVal = string(v)
	default:
		return fmt.Errorf("cannot scan %T into Money", value)
	}

	amount, err := decimal.NewFromString(strVal)
	if err != nil {
		return fmt.Errorf("invalid decimal value: %w", err)
	}
	m.amount = amount
	if m.currency == "" {
		m.currency = DefaultCurrency
	}
	return nil
}
