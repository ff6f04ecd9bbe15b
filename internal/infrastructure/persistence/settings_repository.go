package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex/backend/internal/domain/settings"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/infrastructure/persistence/models"
)

// GormSettingsRepository implements settings.Repository using GORM
type GormSettingsRepository struct {
	db *gorm.DB
}

// NewGormSettingsRepository creates a new GormSettingsRepository
func NewGormSettingsRepository(db *gorm.DB) *GormSettingsRepository {
	return &GormSettingsRepository{db: db}
}

// FindForTenant finds the currency settings row of a tenant
func (r *GormSettingsRepository) FindForTenant(ctx context.Context, tenantID uuid.UUID) (*settings.CurrencySettings, error) {
	var model models.CurrencySettingsModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Save creates or updates the currency settings row of a tenant
func (r *GormSettingsRepository) Save(ctx context.Context, s *settings.CurrencySettings) error {
	model := models.CurrencySettingsModelFromDomain(s)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormSettingsRepository implements settings.Repository
var _ settings.Repository = (*GormSettingsRepository)(nil)
