package persistence

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex/backend/internal/domain/comms"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/infrastructure/persistence/models"
)

// recentWhatsAppLogLimit caps the message history listing
const recentWhatsAppLogLimit = 100

// GormWhatsAppLogRepository implements WhatsAppLogRepository using GORM
type GormWhatsAppLogRepository struct {
	db *gorm.DB
}

// NewGormWhatsAppLogRepository creates a new GormWhatsAppLogRepository
func NewGormWhatsAppLogRepository(db *gorm.DB) *GormWhatsAppLogRepository {
	return &GormWhatsAppLogRepository{db: db}
}

// FindByIDForTenant finds a WhatsApp log entry by ID within a tenant
func (r *GormWhatsAppLogRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*comms.WhatsAppLog, error) {
	var model models.WhatsAppLogModel
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

// FindAllForTenant finds recent WhatsApp log entries, newest first.
// When invoiceID is set the listing is narrowed to that invoice.
func (r *GormWhatsAppLogRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, invoiceID *uuid.UUID) ([]comms.WhatsAppLog, error) {
	query := r.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if invoiceID != nil {
		query = query.Where("invoice_id = ?", *invoiceID)
	}

	var logModels []models.WhatsAppLogModel
	if err := query.
		Order("sent_at DESC").
		Limit(recentWhatsAppLogLimit).
		Find(&logModels).Error; err != nil {
		return nil, err
	}

	logs := make([]comms.WhatsAppLog, len(logModels))
	for i, model := range logModels {
		logs[i] = *model.ToDomain()
	}
	return logs, nil
}

// Save creates or updates a WhatsApp log entry
func (r *GormWhatsAppLogRepository) Save(ctx context.Context, l *comms.WhatsAppLog) error {
	model := models.WhatsAppLogModelFromDomain(l)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormWhatsAppLogRepository implements WhatsAppLogRepository
var _ comms.WhatsAppLogRepository = (*GormWhatsAppLogRepository)(nil)
