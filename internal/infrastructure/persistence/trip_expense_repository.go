package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/trip"
	"github.com/servex/backend/internal/infrastructure/persistence/models"
)

// GormTripExpenseRepository implements trip.ExpenseRepository using GORM
type GormTripExpenseRepository struct {
	db *gorm.DB
}

// NewGormTripExpenseRepository creates a new GormTripExpenseRepository
func NewGormTripExpenseRepository(db *gorm.DB) *GormTripExpenseRepository {
	return &GormTripExpenseRepository{db: db}
}

// FindByIDForTenant finds an expense by ID within a tenant
func (r *GormTripExpenseRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trip.Expense, error) {
	var model models.TripExpenseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id = ?", tenantID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByTrip finds all expenses of a trip ordered by expense date
func (r *GormTripExpenseRepository) FindByTrip(ctx context.Context, tenantID, tripID uuid.UUID) ([]trip.Expense, error) {
	var expenseModels []models.TripExpenseModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND trip_id = ?", tenantID, tripID).
		Order("expense_date ASC, created_at ASC").
		Find(&expenseModels).Error; err != nil {
		return nil, err
	}

	expenses := make([]trip.Expense, len(expenseModels))
	for i, model := range expenseModels {
		expenses[i] = *model.ToDomain()
	}
	return expenses, nil
}

// Save creates or updates an expense
func (r *GormTripExpenseRepository) Save(ctx context.Context, e *trip.Expense) error {
	model := models.TripExpenseModelFromDomain(e)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes an expense within a tenant
func (r *GormTripExpenseRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TripExpenseModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByTrip deletes all expenses of a trip
func (r *GormTripExpenseRepository) DeleteByTrip(ctx context.Context, tenantID, tripID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.TripExpenseModel{}, "tenant_id = ? AND trip_id = ?", tenantID, tripID).Error
}

// Ensure GormTripExpenseRepository implements trip.ExpenseRepository
var _ trip.ExpenseRepository = (*GormTripExpenseRepository)(nil)
