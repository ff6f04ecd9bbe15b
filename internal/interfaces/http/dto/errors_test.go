package dto

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		code string
		want int
	}{
		{ErrCodeInternal, http.StatusInternalServerError},
		{ErrCodeValidation, http.StatusBadRequest},
		{ErrCodeUnauthorized, http.StatusUnauthorized},
		{ErrCodeForbidden, http.StatusForbidden},
		{ErrCodeTokenExpired, http.StatusUnauthorized},
		{ErrCodeNotFound, http.StatusNotFound},
		{ErrCodeAlreadyExists, http.StatusConflict},
		{ErrCodeConcurrencyConflict, http.StatusConflict},
		{ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{ErrCodeTripLocked, http.StatusUnprocessableEntity},
		{ErrCodeTripAlreadyClosed, http.StatusUnprocessableEntity},
		{ErrCodeBadRequest, http.StatusBadRequest},
		{ErrCodeRateLimited, http.StatusTooManyRequests},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}

	t.Run("unmapped code falls back to 500", func(t *testing.T) {
		assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_SOMETHING_NEW"))
	})
}

func TestNormalizeErrorCode(t *testing.T) {
	t.Run("domain codes get the wire prefix", func(t *testing.T) {
		tests := []struct {
			domain string
			wire   string
		}{
			{"NOT_FOUND", ErrCodeNotFound},
			{"ALREADY_EXISTS", ErrCodeAlreadyExists},
			{"INVALID_STATE", ErrCodeInvalidState},
			{"CONCURRENCY_CONFLICT", ErrCodeConcurrencyConflict},
			{"TRIP_LOCKED", ErrCodeTripLocked},
			{"TRIP_ALREADY_CLOSED", ErrCodeTripAlreadyClosed},
			{"INVALID_BARCODE", ErrCodeInvalidInput},
			{"VALIDATION_ERROR", ErrCodeValidation},
			{"INTERNAL_ERROR", ErrCodeInternal},
		}
		for _, tt := range tests {
			assert.Equal(t, tt.wire, NormalizeErrorCode(tt.domain), tt.domain)
		}
	})

	t.Run("wire codes pass through", func(t *testing.T) {
		assert.Equal(t, ErrCodeTripLocked, NormalizeErrorCode(ErrCodeTripLocked))
	})

	t.Run("unknown codes pass through", func(t *testing.T) {
		assert.Equal(t, "CUSTOM_ERROR", NormalizeErrorCode("CUSTOM_ERROR"))
	})
}

func TestErrorCodeStatusMap(t *testing.T) {
	for code, status := range errorCodeStatus {
		assert.True(t, strings.HasPrefix(code, "ERR_"), "code %s missing ERR_ prefix", code)
		assert.GreaterOrEqual(t, status, http.StatusBadRequest, "code %s maps to a non-error status", code)
	}

	// Every normalization target must itself be routable to a status.
	for domain, wire := range legacyErrorCodes {
		_, ok := errorCodeStatus[wire]
		assert.True(t, ok, "legacy code %s normalizes to unmapped %s", domain, wire)
	}
}

func TestNewErrorResponse(t *testing.T) {
	resp := NewErrorResponse("TRIP_LOCKED", "Trip LS-2024-001 is closed")

	assert.False(t, resp.Success)
	assert.Nil(t, resp.Data)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeTripLocked, resp.Error.Code)
	assert.Equal(t, "Trip LS-2024-001 is closed", resp.Error.Message)
	assert.NotZero(t, resp.Error.Timestamp)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Shipment not found", "req-123-456")

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "req-123-456", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{
		{Field: "barcode", Message: "Barcode must be 12 digits"},
		{Field: "weight_kg", Message: "Weight must be positive"},
	}

	resp := NewValidationErrorResponse("Validation failed", "req-789", details)

	assert.False(t, resp.Success)
	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Equal(t, "req-789", resp.Error.RequestID)
	require.Len(t, resp.Error.Details, 2)
	assert.Equal(t, "barcode", resp.Error.Details[0].Field)
}

func TestNewErrorResponseWithHelp(t *testing.T) {
	resp := NewErrorResponseWithHelp(ErrCodeUnauthorized, "Not authenticated", "req-001", "https://docs.servex.app/errors/auth")

	require.NotNil(t, resp.Error)
	assert.Equal(t, ErrCodeUnauthorized, resp.Error.Code)
	assert.Equal(t, "https://docs.servex.app/errors/auth", resp.Error.Help)
}

func TestErrorResponseJSONRoundTrip(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "Client not found", "req-test-123")

	data, err := json.Marshal(resp)
	require.NoError(t, err)

	var decoded Response
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.False(t, decoded.Success)
	require.NotNil(t, decoded.Error)
	assert.Equal(t, ErrCodeNotFound, decoded.Error.Code)
	assert.Equal(t, "req-test-123", decoded.Error.RequestID)
}

func TestErrorResponseTimestamp(t *testing.T) {
	before := time.Now()
	resp := NewErrorResponse(ErrCodeInternal, "Server error")
	after := time.Now()

	assert.False(t, resp.Error.Timestamp.Before(before))
	assert.False(t, resp.Error.Timestamp.After(after))
}

func TestNewSuccessResponse(t *testing.T) {
	resp := NewSuccessResponse(map[string]string{"tracking_number": "SX-000042"})

	assert.True(t, resp.Success)
	assert.NotNil(t, resp.Data)
	assert.Nil(t, resp.Error)
	assert.Nil(t, resp.Meta)
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 100, 1, 10)

	assert.True(t, resp.Success)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, int64(100), resp.Meta.Total)
	assert.Equal(t, 1, resp.Meta.Page)
	assert.Equal(t, 10, resp.Meta.PageSize)
	assert.Equal(t, 10, resp.Meta.TotalPages)
}

func TestSuccessResponseMetaPages(t *testing.T) {
	tests := []struct {
		name      string
		total     int64
		pageSize  int
		wantPages int
		wantSize  int
	}{
		{"even split", 100, 10, 10, 10},
		{"partial last page", 101, 10, 11, 10},
		{"empty result", 0, 10, 0, 10},
		{"single short page", 9, 10, 1, 10},
		{"exactly one page", 10, 10, 1, 10},
		{"zero page size defaults", 100, 0, 5, 20},
		{"negative page size defaults", 100, -1, 5, 20},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := NewSuccessResponseWithMeta(nil, tt.total, 1, tt.pageSize)
			assert.Equal(t, tt.wantPages, resp.Meta.TotalPages)
			assert.Equal(t, tt.wantSize, resp.Meta.PageSize)
		})
	}
}
