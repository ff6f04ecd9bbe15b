package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex/backend/internal/domain/freight"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/infrastructure/persistence/models"
)

// GormShipmentRepository implements ShipmentRepository using GORM
type GormShipmentRepository struct {
	db *gorm.DB
}

// NewGormShipmentRepository creates a new GormShipmentRepository
func NewGormShipmentRepository(db *gorm.DB) *GormShipmentRepository {
	return &GormShipmentRepository{db: db}
}

// FindByIDForTenant finds a shipment by ID within a tenant
func (r *GormShipmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*freight.Shipment, error) {
	var model models.ShipmentModel
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

// FindAllForTenant finds all shipments for a tenant matching the filter
func (r *GormShipmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]freight.Shipment, error) {
	var shipmentModels []models.ShipmentModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.ShipmentModel{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&shipmentModels).Error; err != nil {
		return nil, err
	}

	shipments := make([]freight.Shipment, len(shipmentModels))
	for i, model := range shipmentModels {
		shipments[i] = *model.ToDomain()
	}
	return shipments, nil
}

// FindByTrip finds all shipments assigned to a trip
func (r *GormShipmentRepository) FindByTrip(ctx context.Context, tenantID, tripID uuid.UUID) ([]freight.Shipment, error) {
	var shipmentModels []models.ShipmentModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND trip_id = ?", tenantID, tripID).
		Order("created_at ASC").
		Find(&shipmentModels).Error; err != nil {
		return nil, err
	}

	shipments := make([]freight.Shipment, len(shipmentModels))
	for i, model := range shipmentModels {
		shipments[i] = *model.ToDomain()
	}
	return shipments, nil
}

// CountByTrip counts shipments assigned to a trip
func (r *GormShipmentRepository) CountByTrip(ctx context.Context, tenantID, tripID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.ShipmentModel{}).
		Where("tenant_id = ? AND trip_id = ?", tenantID, tripID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountForTenant counts shipments for a tenant matching the filter
func (r *GormShipmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.ShipmentModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a shipment
func (r *GormShipmentRepository) Save(ctx context.Context, shipment *freight.Shipment) error {
	model := models.ShipmentModelFromDomain(shipment)
	return translateSaveError(r.db.WithContext(ctx).Save(model).Error)
}

// SavePieces creates or updates pieces in a single batch
func (r *GormShipmentRepository) SavePieces(ctx context.Context, pieces []freight.ShipmentPiece) error {
	if len(pieces) == 0 {
		return nil
	}
	pieceModels := make([]*models.ShipmentPieceModel, len(pieces))
	for i := range pieces {
		pieceModels[i] = models.ShipmentPieceModelFromDomain(&pieces[i])
	}
	return translateSaveError(r.db.WithContext(ctx).Save(pieceModels).Error)
}

// DeleteForTenant deletes a shipment and its pieces within a tenant
func (r *GormShipmentRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.ShipmentModel{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&models.ShipmentPieceModel{}, "shipment_id = ?", id).Error
	})
}

func (r *GormShipmentRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, ShipmentSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query
}

func (r *GormShipmentRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("description ILIKE ? OR destination ILIKE ?", searchPattern, searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "trip_id":
			query = query.Where("trip_id = ?", value)
		case "unassigned":
			if value == true {
				query = query.Where("trip_id IS NULL")
			}
		}
	}

	return query
}

// Ensure GormShipmentRepository implements ShipmentRepository
var _ freight.ShipmentRepository = (*GormShipmentRepository)(nil)
