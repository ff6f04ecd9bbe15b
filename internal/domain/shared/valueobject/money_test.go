package valueobject

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMoney(t *testing.T) {
	tests := []struct {
		name     string
		amount   decimal.Decimal
		currency Currency
		wantErr  bool
	}{
		{"valid ZAR", decimal.NewFromFloat(100.50), ZAR, false},
		{"valid KES", decimal.NewFromInt(200), KES, false},
		{"negative amount allowed", decimal.NewFromInt(-50), ZAR, false},
		{"zero amount allowed", decimal.Zero, USD, false},
		{"empty currency", decimal.NewFromInt(10), "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, err := NewMoney(tt.amount, tt.currency)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, m.Amount().Equal(tt.amount))
			assert.Equal(t, tt.currency, m.Currency())
		})
	}
}

func TestMoneyArithmetic(t *testing.T) {
	a := NewMoneyZARFromFloat(1250)
	b := NewMoneyZARFromFloat(187.50)

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, "1437.50", sum.StringFixed(2))

	diff, err := sum.Subtract(b)
	require.NoError(t, err)
	assert.True(t, diff.Equals(a))

	_, err = a.Add(Zero(KES))
	assert.Error(t, err, "mixed currency addition must fail")
}

func TestMoneyVATCalculation(t *testing.T) {
	// 15% VAT on a 1250.00 subtotal
	subtotal := NewMoneyZARFromFloat(1250)
	vat := subtotal.CalculatePercentage(decimal.NewFromInt(15))
	assert.Equal(t, "187.50", vat.StringFixed(2))

	total := subtotal.MustAdd(vat)
	assert.Equal(t, "1437.50", total.StringFixed(2))
}

func TestMoneyMultiply(t *testing.T) {
	// weight x rate: 25kg at 50/kg
	rate := NewMoneyZARFromFloat(50)
	amount := rate.Multiply(decimal.NewFromFloat(25))
	assert.Equal(t, "1250.00", amount.StringFixed(2))
}

func TestMoneyComparisons(t *testing.T) {
	small := NewMoneyZARFromFloat(10)
	big := NewMoneyZARFromFloat(20)

	less, err := small.LessThan(big)
	require.NoError(t, err)
	assert.True(t, less)

	gte, err := big.GreaterThanOrEqual(big)
	require.NoError(t, err)
	assert.True(t, gte)

	_, err = small.LessThan(Zero(USD))
	assert.Error(t, err)
}

func TestMoneyJSONRoundTrip(t *testing.T) {
	m := NewMoneyZARFromFloat(99.99)

	data, err := json.Marshal(m)
	require.NoError(t, err)
	assert.JSONEq(t, `{"amount":"99.99","currency":"ZAR"}`, string(data))

	var parsed Money
	require.NoError(t, json.Unmarshal(data, &parsed))
	assert.True(t, m.Equals(parsed))
}

func TestMoneyScan(t *testing.T) {
	var m Money
	require.NoError(t, m.Scan("123.45"))
	assert.Equal(t, "123.45", m.StringFixed(2))
	assert.Equal(t, DefaultCurrency, m.Currency())

	var nilMoney Money
	require.NoError(t, nilMoney.Scan(nil))
	assert.True(t, nilMoney.IsZero())

	var bad Money
	assert.Error(t, bad.Scan(42))
}
