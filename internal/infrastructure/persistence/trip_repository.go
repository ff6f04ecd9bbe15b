package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/trip"
	"github.com/servex/backend/internal/infrastructure/persistence/models"
)

// GormTripRepository implements trip.Repository using GORM
type GormTripRepository struct {
	db *gorm.DB
}

// NewGormTripRepository creates a new GormTripRepository
func NewGormTripRepository(db *gorm.DB) *GormTripRepository {
	return &GormTripRepository{db: db}
}

// FindByIDForTenant finds a trip by ID within a tenant
func (r *GormTripRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trip.Trip, error) {
	var model models.TripModel
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

// FindByNumber finds a trip by its trip number within a tenant
func (r *GormTripRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, tripNumber string) (*trip.Trip, error) {
	var model models.TripModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND trip_number = ?", tenantID, tripNumber).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAllForTenant finds all trips for a tenant matching the filter
func (r *GormTripRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trip.Trip, error) {
	var tripModels []models.TripModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.TripModel{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&tripModels).Error; err != nil {
		return nil, err
	}

	trips := make([]trip.Trip, len(tripModels))
	for i, model := range tripModels {
		trips[i] = *model.ToDomain()
	}
	return trips, nil
}

// ListNumbers lists all trip numbers for a tenant
func (r *GormTripRepository) ListNumbers(ctx context.Context, tenantID uuid.UUID) ([]string, error) {
	var numbers []string
	if err := r.db.WithContext(ctx).
		Model(&models.TripModel{}).
		Where("tenant_id = ?", tenantID).
		Order("trip_number ASC").
		Pluck("trip_number", &numbers).Error; err != nil {
		return nil, err
	}
	return numbers, nil
}

// ExistsByNumber checks if a trip with the given number exists in the tenant
func (r *GormTripRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, tripNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.TripModel{}).
		Where("tenant_id = ? AND trip_number = ?", tenantID, tripNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// CountForTenant counts trips for a tenant matching the filter
func (r *GormTripRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.TripModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a trip. A duplicate trip number surfaces as
// Conflict.
func (r *GormTripRepository) Save(ctx context.Context, t *trip.Trip) error {
	model := models.TripModelFromDomain(t)
	return translateSaveError(r.db.WithContext(ctx).Save(model).Error)
}

// DeleteForTenant deletes a trip within a tenant
func (r *GormTripRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.TripModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormTripRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, TripSortFields, "departure_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query
}

func (r *GormTripRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("trip_number ILIKE ? OR notes ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "vehicle_id":
			query = query.Where("vehicle_id = ?", value)
		case "driver_id":
			query = query.Where("driver_id = ?", value)
		}
	}

	return query
}

// Ensure GormTripRepository implements trip.Repository
var _ trip.Repository = (*GormTripRepository)(nil)
