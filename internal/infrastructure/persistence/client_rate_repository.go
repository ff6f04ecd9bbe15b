package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex/backend/internal/domain/partner"
	"github.com/servex/backend/internal/infrastructure/persistence/models"
)

// GormClientRateRepository implements ClientRateRepository using GORM.
// Rate history is append-only, newest entries first.
type GormClientRateRepository struct {
	db *gorm.DB
}

// NewGormClientRateRepository creates a new GormClientRateRepository
func NewGormClientRateRepository(db *gorm.DB) *GormClientRateRepository {
	return &GormClientRateRepository{db: db}
}

// FindByClient finds all rate entries for a client, newest first
func (r *GormClientRateRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]partner.ClientRate, error) {
	var rateModels []models.ClientRateModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID).
		Order("effective_from DESC, created_at DESC").
		Find(&rateModels).Error; err != nil {
		return nil, err
	}

	rates := make([]partner.ClientRate, len(rateModels))
	for i, model := range rateModels {
		rates[i] = *model.ToDomain()
	}
	return rates, nil
}

// FindByClients finds rate entries for multiple clients keyed by client ID
func (r *GormClientRateRepository) FindByClients(ctx context.Context, tenantID uuid.UUID, clientIDs []uuid.UUID) (map[uuid.UUID][]partner.ClientRate, error) {
	result := make(map[uuid.UUID][]partner.ClientRate)
	if len(clientIDs) == 0 {
		return result, nil
	}

	var rateModels []models.ClientRateModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND client_id IN ?", tenantID, clientIDs).
		Order("effective_from DESC, created_at DESC").
		Find(&rateModels).Error; err != nil {
		return nil, err
	}

	for _, model := range rateModels {
		result[model.ClientID] = append(result[model.ClientID], *model.ToDomain())
	}
	return result, nil
}

// Save creates a rate history entry
func (r *GormClientRateRepository) Save(ctx context.Context, rate *partner.ClientRate) error {
	model := models.ClientRateModelFromDomain(rate)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormClientRateRepository implements ClientRateRepository
var _ partner.ClientRateRepository = (*GormClientRateRepository)(nil)
