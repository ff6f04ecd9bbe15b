package persistence

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateSortOrder(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"lowercase asc", "asc", "ASC"},
		{"uppercase ASC", "ASC", "ASC"},
		{"padded asc", "  asc  ", "ASC"},
		{"desc", "desc", "DESC"},
		{"empty defaults to DESC", "", "DESC"},
		{"garbage defaults to DESC", "ascending; DROP TABLE trips", "DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, ValidateSortOrder(tt.input))
		})
	}
}

func TestValidateSortField(t *testing.T) {
	t.Run("accepts whitelisted field", func(t *testing.T) {
		assert.Equal(t, "trip_number", ValidateSortField("trip_number", TripSortFields, "created_at"))
	})

	t.Run("rejects unknown field", func(t *testing.T) {
		assert.Equal(t, "created_at", ValidateSortField("locked_at", TripSortFields, "created_at"))
	})

	t.Run("rejects injection attempt", func(t *testing.T) {
		assert.Equal(t, "issue_date", ValidateSortField("total; DELETE FROM invoices", InvoiceSortFields, "issue_date"))
	})

	t.Run("empty falls back to default", func(t *testing.T) {
		assert.Equal(t, "name", ValidateSortField("", ClientSortFields, "name"))
	})
}
