package trip

import (
	"context"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/shared"
)

// Repository defines persistence operations for trips
type Repository interface {
	shared.TenantReader[Trip]
	FindByNumber(ctx context.Context, tenantID uuid.UUID, tripNumber string) (*Trip, error)
	ListNumbers(ctx context.Context, tenantID uuid.UUID) ([]string, error)
	ExistsByNumber(ctx context.Context, tenantID uuid.UUID, tripNumber string) (bool, error)
	Save(ctx context.Context, t *Trip) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// ExpenseRepository defines persistence operations for trip expenses
type ExpenseRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Expense, error)
	FindByTrip(ctx context.Context, tenantID, tripID uuid.UUID) ([]Expense, error)
	Save(ctx context.Context, e *Expense) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	DeleteByTrip(ctx context.Context, tenantID, tripID uuid.UUID) error
}
