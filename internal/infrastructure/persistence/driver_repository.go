package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex/backend/internal/domain/fleet"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/infrastructure/persistence/models"
)

// GormDriverRepository implements DriverRepository using GORM
type GormDriverRepository struct {
	db *gorm.DB
}

// NewGormDriverRepository creates a new GormDriverRepository
func NewGormDriverRepository(db *gorm.DB) *GormDriverRepository {
	return &GormDriverRepository{db: db}
}

// FindByIDForTenant finds a driver by ID within a tenant
func (r *GormDriverRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Driver, error) {
	var model models.DriverModel
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

// FindByIDs finds drivers by their IDs keyed by driver ID
func (r *GormDriverRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]fleet.Driver, error) {
	result := make(map[uuid.UUID]fleet.Driver)
	if len(ids) == 0 {
		return result, nil
	}

	var driverModels []models.DriverModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&driverModels).Error; err != nil {
		return nil, err
	}

	for _, model := range driverModels {
		result[model.ID] = *model.ToDomain()
	}
	return result, nil
}

// FindAllForTenant finds all drivers for a tenant matching the filter
func (r *GormDriverRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Driver, error) {
	var driverModels []models.DriverModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.DriverModel{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&driverModels).Error; err != nil {
		return nil, err
	}

	drivers := make([]fleet.Driver, len(driverModels))
	for i, model := range driverModels {
		drivers[i] = *model.ToDomain()
	}
	return drivers, nil
}

// CountForTenant counts drivers for a tenant matching the filter
func (r *GormDriverRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.DriverModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a driver
func (r *GormDriverRepository) Save(ctx context.Context, d *fleet.Driver) error {
	model := models.DriverModelFromDomain(d)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes a driver within a tenant
func (r *GormDriverRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.DriverModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormDriverRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, DriverSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query
}

func (r *GormDriverRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR phone ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "nationality":
			query = query.Where("nationality = ?", value)
		}
	}

	return query
}

// Ensure GormDriverRepository implements DriverRepository
var _ fleet.DriverRepository = (*GormDriverRepository)(nil)
