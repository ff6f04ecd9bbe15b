package persistence

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex/backend/internal/domain/billing"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/infrastructure/persistence/models"
)

// GormLineItemRepository implements LineItemRepository using GORM.
// Line items are scoped through their parent invoice.
type GormLineItemRepository struct {
	db *gorm.DB
}

// NewGormLineItemRepository creates a new GormLineItemRepository
func NewGormLineItemRepository(db *gorm.DB) *GormLineItemRepository {
	return &GormLineItemRepository{db: db}
}

// FindByInvoice finds all line items of an invoice in insertion order
func (r *GormLineItemRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]billing.LineItem, error) {
	var itemModels []models.LineItemModel
	if err := r.db.WithContext(ctx).
		Where("invoice_id = ?", invoiceID).
		Order("created_at ASC").
		Find(&itemModels).Error; err != nil {
		return nil, err
	}

	items := make([]billing.LineItem, len(itemModels))
	for i, model := range itemModels {
		items[i] = *model.ToDomain()
	}
	return items, nil
}

// Save creates or updates a line item
func (r *GormLineItemRepository) Save(ctx context.Context, item *billing.LineItem) error {
	model := models.LineItemModelFromDomain(item)
	return r.db.WithContext(ctx).Save(model).Error
}

// Delete deletes a line item
func (r *GormLineItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Delete(&models.LineItemModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteByInvoice deletes all line items of an invoice
func (r *GormLineItemRepository) DeleteByInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.LineItemModel{}, "invoice_id = ?", invoiceID).Error
}

// Ensure GormLineItemRepository implements LineItemRepository
var _ billing.LineItemRepository = (*GormLineItemRepository)(nil)
