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

// GormVehicleRepository implements VehicleRepository using GORM
type GormVehicleRepository struct {
	db *gorm.DB
}

// NewGormVehicleRepository creates a new GormVehicleRepository
func NewGormVehicleRepository(db *gorm.DB) *GormVehicleRepository {
	return &GormVehicleRepository{db: db}
}

// FindByIDForTenant finds a vehicle by ID within a tenant
func (r *GormVehicleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Vehicle, error) {
	var model models.VehicleModel
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

// FindByIDs finds vehicles by their IDs keyed by vehicle ID
func (r *GormVehicleRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]fleet.Vehicle, error) {
	result := make(map[uuid.UUID]fleet.Vehicle)
	if len(ids) == 0 {
		return result, nil
	}

	var vehicleModels []models.VehicleModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND id IN ?", tenantID, ids).
		Find(&vehicleModels).Error; err != nil {
		return nil, err
	}

	for _, model := range vehicleModels {
		result[model.ID] = *model.ToDomain()
	}
	return result, nil
}

// FindAllForTenant finds all vehicles for a tenant matching the filter
func (r *GormVehicleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Vehicle, error) {
	var vehicleModels []models.VehicleModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.VehicleModel{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&vehicleModels).Error; err != nil {
		return nil, err
	}

	vehicles := make([]fleet.Vehicle, len(vehicleModels))
	for i, model := range vehicleModels {
		vehicles[i] = *model.ToDomain()
	}
	return vehicles, nil
}

// CountForTenant counts vehicles for a tenant matching the filter
func (r *GormVehicleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.VehicleModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a vehicle
func (r *GormVehicleRepository) Save(ctx context.Context, v *fleet.Vehicle) error {
	model := models.VehicleModelFromDomain(v)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes a vehicle within a tenant
func (r *GormVehicleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.VehicleModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *GormVehicleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, VehicleSortFields, "name")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query
}

func (r *GormVehicleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR registration_number ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		}
	}

	return query
}

// Ensure GormVehicleRepository implements VehicleRepository
var _ fleet.VehicleRepository = (*GormVehicleRepository)(nil)
