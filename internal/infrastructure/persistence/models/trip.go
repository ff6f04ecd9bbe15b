package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/shared/valueobject"
	"github.com/servex/backend/internal/domain/trip"
)

// TripModel is the persistence model for the Trip domain entity.
type TripModel struct {
	TenantAggregateModel
	TripNumber      string      `gorm:"type:varchar(20);not null;uniqueIndex:idx_trip_tenant_number,priority:2"`
	Route           StringList  `gorm:"type:jsonb"`
	DepartureDate   string      `gorm:"type:varchar(30)"`
	VehicleID       *uuid.UUID  `gorm:"type:uuid;index"`
	DriverID        *uuid.UUID  `gorm:"type:uuid;index"`
	Notes           string      `gorm:"type:text"`
	Status          trip.Status `gorm:"type:varchar(20);not null;default:'planning';index"`
	LockedAt        *time.Time
	ActualDeparture *time.Time
	ActualArrival   *time.Time
}

// TableName returns the table name for GORM
func (TripModel) TableName() string {
	return "trips"
}

// ToDomain converts the persistence model to a domain Trip entity.
func (m *TripModel) ToDomain() *trip.Trip {
	return &trip.Trip{
		TenantAggregateRoot: m.TenantRoot(),
		TripNumber:          m.TripNumber,
		Route:               m.Route,
		DepartureDate:       m.DepartureDate,
		VehicleID:           m.VehicleID,
		DriverID:            m.DriverID,
		Notes:               m.Notes,
		Status:              m.Status,
		LockedAt:            m.LockedAt,
		ActualDeparture:     m.ActualDeparture,
		ActualArrival:       m.ActualArrival,
	}
}

// FromDomain populates the persistence model from a domain Trip entity.
func (m *TripModel) FromDomain(t *trip.Trip) {
	m.FromDomainTenantAggregateRoot(t.TenantAggregateRoot)
	m.TripNumber = t.TripNumber
	m.Route = t.Route
	m.DepartureDate = t.DepartureDate
	m.VehicleID = t.VehicleID
	m.DriverID = t.DriverID
	m.Notes = t.Notes
	m.Status = t.Status
	m.LockedAt = t.LockedAt
	m.ActualDeparture = t.ActualDeparture
	m.ActualArrival = t.ActualArrival
}

// TripModelFromDomain creates a new persistence model from a domain Trip entity.
func TripModelFromDomain(t *trip.Trip) *TripModel {
	m := &TripModel{}
	m.FromDomain(t)
	return m
}

// TripExpenseModel is the persistence model for the trip Expense domain entity.
type TripExpenseModel struct {
	TenantAggregateModel
	TripID      uuid.UUID            `gorm:"type:uuid;not null;index"`
	Category    trip.ExpenseCategory `gorm:"type:varchar(30);not null"`
	Amount      decimal.Decimal      `gorm:"type:decimal(18,2);not null"`
	Currency    valueobject.Currency `gorm:"type:varchar(3);not null;default:'ZAR'"`
	ExpenseDate string               `gorm:"type:varchar(30);not null"`
	Description string               `gorm:"type:text"`
	ReceiptURL  string               `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (TripExpenseModel) TableName() string {
	return "trip_expenses"
}

// ToDomain converts the persistence model to a domain Expense entity.
func (m *TripExpenseModel) ToDomain() *trip.Expense {
	return &trip.Expense{
		TenantAggregateRoot: m.TenantRoot(),
		TripID:              m.TripID,
		Category:            m.Category,
		Amount:              m.Amount,
		Currency:            m.Currency,
		ExpenseDate:         m.ExpenseDate,
		Description:         m.Description,
		ReceiptURL:          m.ReceiptURL,
	}
}

// FromDomain populates the persistence model from a domain Expense entity.
func (m *TripExpenseModel) FromDomain(e *trip.Expense) {
	m.FromDomainTenantAggregateRoot(e.TenantAggregateRoot)
	m.TripID = e.TripID
	m.Category = e.Category
	m.Amount = e.Amount
	m.Currency = e.Currency
	m.ExpenseDate = e.ExpenseDate
	m.Description = e.Description
	m.ReceiptURL = e.ReceiptURL
}

// TripExpenseModelFromDomain creates a new persistence model from a domain Expense entity.
func TripExpenseModelFromDomain(e *trip.Expense) *TripExpenseModel {
	m := &TripExpenseModel{}
	m.FromDomain(e)
	return m
}
