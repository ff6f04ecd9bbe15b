package billing

import (
	"context"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/shared"
)

// InvoiceRepository defines persistence operations for invoices
type InvoiceRepository interface {
	shared.TenantReader[Invoice]
	FindByTrip(ctx context.Context, tenantID, tripID uuid.UUID) ([]Invoice, error)
	FindByShipmentIDs(ctx context.Context, tenantID uuid.UUID, shipmentIDs []uuid.UUID) ([]Invoice, error)
	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]Invoice, error)
	FindOpenForTenant(ctx context.Context, tenantID uuid.UUID) ([]Invoice, error)
	ListNumbers(ctx context.Context, tenantID uuid.UUID) ([]string, error)
	Save(ctx context.Context, inv *Invoice) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// LineItemRepository defines persistence operations for invoice line items
type LineItemRepository interface {
	FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]LineItem, error)
	Save(ctx context.Context, item *LineItem) error
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteByInvoice(ctx context.Context, invoiceID uuid.UUID) error
}

// PaymentRepository defines persistence operations for payments
type PaymentRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*Payment, error)
	FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]Payment, error)
	FindByInvoices(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) (map[uuid.UUID][]Payment, error)
	FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]Payment, error)
	Save(ctx context.Context, p *Payment) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}
