package trip

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/shared/valueobject"
)

// ExpenseCategory classifies a trip running cost
type ExpenseCategory string

const (
	ExpenseFuel            ExpenseCategory = "fuel"
	ExpenseTolls           ExpenseCategory = "tolls"
	ExpenseBorderFees      ExpenseCategory = "border_fees"
	ExpenseDriverAllowance ExpenseCategory = "driver_allowance"
	ExpenseMaintenance     ExpenseCategory = "maintenance"
	ExpenseOther           ExpenseCategory = "other"
)

// IsValid checks if the category is a valid ExpenseCategory
func (c ExpenseCategory) IsValid() bool {
	switch c {
	case ExpenseFuel, ExpenseTolls, ExpenseBorderFees, ExpenseDriverAllowance,
		ExpenseMaintenance, ExpenseOther:
		return true
	}
	return false
}

// Expense represents a cost incurred running a trip
type Expense struct {
	shared.TenantAggregateRoot
	TripID      uuid.UUID            `json:"trip_id"`
	Category    ExpenseCategory      `json:"category"`
	Amount      decimal.Decimal      `json:"amount"`
	Currency    valueobject.Currency `json:"currency"`
	ExpenseDate string               `json:"expense_date"`
	Description string               `json:"description"`
	ReceiptURL  string               `json:"receipt_url"`
}

// NewExpense records a cost against a trip.
// An empty expenseDate defaults to today; an empty currency to the default.
func NewExpense(tenantID, tripID uuid.UUID, category ExpenseCategory, amount decimal.Decimal, currency valueobject.Currency, expenseDate, description string) (*Expense, error) {
	if tripID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_TRIP", "Trip ID cannot be empty")
	}
	if !category.IsValid() {
		return nil, shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if !amount.IsPositive() {
		return nil, shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if currency == "" {
		currency = valueobject.DefaultCurrency
	}
	if expenseDate == "" {
		expenseDate = shared.Today()
	} else if !shared.ValidDate(shared.DateOnly(expenseDate)) {
		return nil, shared.NewDomainError("INVALID_DATE", "Expense date must be a valid YYYY-MM-DD date")
	}

	return &Expense{
		TenantAggregateRoot: shared.NewTenantAggregateRoot(tenantID),
		TripID:              tripID,
		Category:            category,
		Amount:              amount,
		Currency:            currency,
		ExpenseDate:         expenseDate,
		Description:         description,
	}, nil
}

// Update applies field changes to the expense
func (e *Expense) Update(category ExpenseCategory, amount decimal.Decimal, expenseDate, description, receiptURL string) error {
	if !category.IsValid() {
		return shared.NewDomainError("INVALID_CATEGORY", "Expense category is not valid")
	}
	if !amount.IsPositive() {
		return shared.NewDomainError("INVALID_AMOUNT", "Expense amount must be positive")
	}
	if expenseDate != "" && !shared.ValidDate(shared.DateOnly(expenseDate)) {
		return shared.NewDomainError("INVALID_DATE", "Expense date must be a valid YYYY-MM-DD date")
	}
	e.Category = category
	e.Amount = amount
	if expenseDate != "" {
		e.ExpenseDate = expenseDate
	}
	e.Description = description
	e.ReceiptURL = receiptURL
	e.Touch()
	e.IncrementVersion()
	return nil
}

// TotalsByCategory sums expense amounts per category
func TotalsByCategory(expenses []Expense) map[ExpenseCategory]decimal.Decimal {
	totals := make(map[ExpenseCategory]decimal.Decimal)
	for _, e := range expenses {
		totals[e.Category] = totals[e.Category].Add(e.Amount)
	}
	return totals
}
