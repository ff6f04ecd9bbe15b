package trip

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/trip"
)

// CreateTripRequest represents a request to create a new trip.
// An empty TripNumber lets the service derive the next one.
type CreateTripRequest struct {
	TripNumber    string     `json:"trip_number" binding:"omitempty,max=10"`
	Route         []string   `json:"route"`
	DepartureDate string     `json:"departure_date" binding:"omitempty,datestr"`
	VehicleID     *uuid.UUID `json:"vehicle_id"`
	DriverID      *uuid.UUID `json:"driver_id"`
	Notes         string     `json:"notes"`
	CreatedBy     *uuid.UUID `json:"-"`
}

// UpdateTripRequest represents a partial update to a trip
type UpdateTripRequest struct {
	TripNumber    *string    `json:"trip_number" binding:"omitempty,max=10"`
	Route         []string   `json:"route"`
	DepartureDate *string    `json:"departure_date" binding:"omitempty,datestr"`
	VehicleID     *uuid.UUID `json:"vehicle_id"`
	DriverID      *uuid.UUID `json:"driver_id"`
	Notes         *string    `json:"notes"`
	Status        *string    `json:"status" binding:"omitempty,oneof=planning loading in_transit delivered closed"`
	ClearVehicle  bool       `json:"clear_vehicle"`
	ClearDriver   bool       `json:"clear_driver"`
}

// CreateExpenseRequest represents a request to record a trip expense
type CreateExpenseRequest struct {
	Category    string          `json:"category" binding:"required,oneof=fuel tolls border_fees driver_allowance maintenance other"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	Currency    string          `json:"currency" binding:"omitempty,max=3"`
	ExpenseDate string          `json:"expense_date" binding:"omitempty,datestr"`
	Description string          `json:"description" binding:"max=500"`
	ReceiptURL  string          `json:"receipt_url" binding:"max=500"`
	CreatedBy   *uuid.UUID      `json:"-"`
}

// UpdateExpenseRequest represents changes to a recorded expense
type UpdateExpenseRequest struct {
	Category    string          `json:"category" binding:"required,oneof=fuel tolls border_fees driver_allowance maintenance other"`
	Amount      decimal.Decimal `json:"amount" binding:"required"`
	ExpenseDate string          `json:"expense_date" binding:"omitempty,datestr"`
	Description string          `json:"description" binding:"max=500"`
	ReceiptURL  string          `json:"receipt_url" binding:"max=500"`
}

// TripResponse represents a trip in API responses
type TripResponse struct {
	ID              uuid.UUID  `json:"id"`
	TenantID        uuid.UUID  `json:"tenant_id"`
	TripNumber      string     `json:"trip_number"`
	Route           []string   `json:"route"`
	DepartureDate   string     `json:"departure_date"`
	VehicleID       *uuid.UUID `json:"vehicle_id"`
	DriverID        *uuid.UUID `json:"driver_id"`
	Notes           string     `json:"notes"`
	Status          string     `json:"status"`
	LockedAt        *time.Time `json:"locked_at"`
	ActualDeparture *time.Time `json:"actual_departure"`
	ActualArrival   *time.Time `json:"actual_arrival"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
	Version         int        `json:"version"`
}

// ExpenseResponse represents an expense in API responses
type ExpenseResponse struct {
	ID          uuid.UUID       `json:"id"`
	TripID      uuid.UUID       `json:"trip_id"`
	Category    string          `json:"category"`
	Amount      decimal.Decimal `json:"amount"`
	Currency    string          `json:"currency"`
	ExpenseDate string          `json:"expense_date"`
	Description string          `json:"description"`
	ReceiptURL  string          `json:"receipt_url"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TripDetailResponse is a trip with its expense breakdown
type TripDetailResponse struct {
	TripResponse
	Expenses       []ExpenseResponse          `json:"expenses"`
	ExpenseTotals  map[string]decimal.Decimal `json:"expense_totals"`
	ExpensesAmount decimal.Decimal            `json:"expenses_amount"`
}

// TripListFilter represents filter options for the trip list
type TripListFilter struct {
	Search   string `form:"search"`
	Status   string `form:"status" binding:"omitempty,oneof=planning loading in_transit delivered closed"`
	Page     int    `form:"page" binding:"omitempty,min=1"`
	PageSize int    `form:"page_size" binding:"omitempty,min=1,max=100"`
	OrderBy  string `form:"order_by"`
	OrderDir string `form:"order_dir" binding:"omitempty,oneof=asc desc"`
}

// ToTripResponse converts a domain trip to a response DTO
func ToTripResponse(t *trip.Trip) TripResponse {
	return TripResponse{
		ID:              t.ID,
		TenantID:        t.TenantID,
		TripNumber:      t.TripNumber,
		Route:           t.Route,
		DepartureDate:   t.DepartureDate,
		VehicleID:       t.VehicleID,
		DriverID:        t.DriverID,
		Notes:           t.Notes,
		Status:          string(t.Status),
		LockedAt:        t.LockedAt,
		ActualDeparture: t.ActualDeparture,
		ActualArrival:   t.ActualArrival,
		CreatedAt:       t.CreatedAt,
		UpdatedAt:       t.UpdatedAt,
		Version:         t.Version,
	}
}

// ToExpenseResponse converts a domain expense to a response DTO
func ToExpenseResponse(e *trip.Expense) ExpenseResponse {
	return ExpenseResponse{
		ID:          e.ID,
		TripID:      e.TripID,
		Category:    string(e.Category),
		Amount:      e.Amount,
		Currency:    string(e.Currency),
		ExpenseDate: e.ExpenseDate,
		Description: e.Description,
		ReceiptURL:  e.ReceiptURL,
		CreatedAt:   e.CreatedAt,
	}
}
