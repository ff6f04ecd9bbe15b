package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex/backend/internal/domain/billing"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/infrastructure/persistence/models"
)

// GormInvoiceRepository implements InvoiceRepository using GORM
type GormInvoiceRepository struct {
	db *gorm.DB
}

// NewGormInvoiceRepository creates a new GormInvoiceRepository
func NewGormInvoiceRepository(db *gorm.DB) *GormInvoiceRepository {
	return &GormInvoiceRepository{db: db}
}

// FindByIDForTenant finds an invoice by ID within a tenant
func (r *GormInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	var model models.InvoiceModel
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

// FindAllForTenant finds all invoices for a tenant matching the filter
func (r *GormInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// FindByTrip finds all invoices generated from a trip
func (r *GormInvoiceRepository) FindByTrip(ctx context.Context, tenantID, tripID uuid.UUID) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND trip_id = ?", tenantID, tripID).
		Order("invoice_number ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// FindByShipmentIDs finds invoices whose shipment_ids JSONB array overlaps the given IDs
func (r *GormInvoiceRepository) FindByShipmentIDs(ctx context.Context, tenantID uuid.UUID, shipmentIDs []uuid.UUID) ([]billing.Invoice, error) {
	if len(shipmentIDs) == 0 {
		return []billing.Invoice{}, nil
	}

	strs := make([]string, len(shipmentIDs))
	for i, id := range shipmentIDs {
		strs[i] = id.String()
	}

	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ?", tenantID).
		Where("EXISTS (SELECT 1 FROM jsonb_array_elements_text(shipment_ids) sid WHERE sid IN ?)", strs).
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// FindByClient finds all invoices of a client, newest first
func (r *GormInvoiceRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND client_id = ?", tenantID, clientID).
		Order("issue_date DESC, invoice_number DESC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// FindOpenForTenant finds invoices still awaiting payment
func (r *GormInvoiceRepository) FindOpenForTenant(ctx context.Context, tenantID uuid.UUID) ([]billing.Invoice, error) {
	var invoiceModels []models.InvoiceModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND status IN ?", tenantID,
			[]billing.InvoiceStatus{billing.InvoiceStatusSent, billing.InvoiceStatusOverdue}).
		Order("due_date ASC").
		Find(&invoiceModels).Error; err != nil {
		return nil, err
	}

	invoices := make([]billing.Invoice, len(invoiceModels))
	for i, model := range invoiceModels {
		invoices[i] = *model.ToDomain()
	}
	return invoices, nil
}

// ListNumbers lists all invoice numbers for a tenant
func (r *GormInvoiceRepository) ListNumbers(ctx context.Context, tenantID uuid.UUID) ([]string, error) {
	var numbers []string
	if err := r.db.WithContext(ctx).
		Model(&models.InvoiceModel{}).
		Where("tenant_id = ?", tenantID).
		Order("invoice_number ASC").
		Pluck("invoice_number", &numbers).Error; err != nil {
		return nil, err
	}
	return numbers, nil
}

// CountForTenant counts invoices for a tenant matching the filter
func (r *GormInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.InvoiceModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates an invoice. A duplicate invoice number surfaces
// as Conflict so the generation retry can take over.
func (r *GormInvoiceRepository) Save(ctx context.Context, inv *billing.Invoice) error {
	model := models.InvoiceModelFromDomain(inv)
	return translateSaveError(r.db.WithContext(ctx).Save(model).Error)
}

// DeleteForTenant deletes an invoice and its line items within a tenant
func (r *GormInvoiceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Delete(&models.InvoiceModel{}, "tenant_id = ? AND id = ?", tenantID, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return shared.ErrNotFound
		}
		return tx.Delete(&models.LineItemModel{}, "invoice_id = ?", id).Error
	})
}

func (r *GormInvoiceRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, InvoiceSortFields, "issue_date")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query
}

func (r *GormInvoiceRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("invoice_number ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "status":
			query = query.Where("status = ?", value)
		case "client_id":
			query = query.Where("client_id = ?", value)
		case "trip_id":
			query = query.Where("trip_id = ?", value)
		}
	}

	return query
}

// Ensure GormInvoiceRepository implements InvoiceRepository
var _ billing.InvoiceRepository = (*GormInvoiceRepository)(nil)
