package handler

import "github.com/servex/backend/internal/interfaces/http/dto"

// APIResponse is the standard response wrapper with a typed data field.
type APIResponse[T any] struct {
	Success bool           `json:"success"`
	Data    T              `json:"data,omitempty"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
	Meta    *dto.Meta      `json:"meta,omitempty"`
}

// ErrorResponse is the standard error response shape.
type ErrorResponse struct {
	Success bool           `json:"success"`
	Error   *dto.ErrorInfo `json:"error,omitempty"`
}

// SuccessResponse is a simple success response without data.
type SuccessResponse struct {
	Success bool `json:"success"`
}

// CountData wraps a count value.
type CountData struct {
	Count int64 `json:"count"`
}

// NextNumberData carries the next suggested trip number.
type NextNumberData struct {
	TripNumber string `json:"trip_number"`
}
