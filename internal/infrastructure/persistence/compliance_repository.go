package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex/backend/internal/domain/fleet"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/infrastructure/persistence/models"
)

// GormComplianceRepository implements ComplianceRepository using GORM
type GormComplianceRepository struct {
	db *gorm.DB
}

// NewGormComplianceRepository creates a new GormComplianceRepository
func NewGormComplianceRepository(db *gorm.DB) *GormComplianceRepository {
	return &GormComplianceRepository{db: db}
}

// FindByIDForTenant finds a compliance item by ID within a tenant
func (r *GormComplianceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.ComplianceItem, error) {
	var model models.ComplianceItemModel
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

// FindBySubject finds all compliance items for a vehicle or driver
func (r *GormComplianceRepository) FindBySubject(ctx context.Context, tenantID uuid.UUID, subjectType fleet.ComplianceSubject, subjectID uuid.UUID) ([]fleet.ComplianceItem, error) {
	var itemModels []models.ComplianceItemModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND subject_type = ? AND subject_id = ?", tenantID, subjectType, subjectID).
		Order("expiry_date ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]fleet.ComplianceItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// FindAllForTenant finds all compliance items for a tenant ordered by expiry
func (r *GormComplianceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]fleet.ComplianceItem, error) {
	var itemModels []models.ComplianceItemModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Order("expiry_date ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]fleet.ComplianceItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// Save creates or updates a compliance item
func (r *GormComplianceRepository) Save(ctx context.Context, item *fleet.ComplianceItem) error {
	model := models.ComplianceItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// DeleteForTenant deletes a compliance item within a tenant
func (r *GormComplianceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.ComplianceItemModel{}, "tenant_id = ? AND id = ?", tenantID, id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteBySubject deletes all compliance items of a vehicle or driver
func (r *GormComplianceRepository) DeleteBySubject(ctx context.Context, tenantID uuid.UUID, subjectType fleet.ComplianceSubject, subjectID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.ComplianceItemModel{}, "tenant_id = ? AND subject_type = ? AND subject_id = ?", tenantID, subjectType, subjectID).Error
}

// Ensure GormComplianceRepository implements ComplianceRepository
var _ fleet.ComplianceRepository = (*GormComplianceRepository)(nil)
