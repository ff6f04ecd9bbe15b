package billing

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/servex/backend/internal/domain/billing"
	"github.com/servex/backend/internal/domain/freight"
	"github.com/servex/backend/internal/domain/partner"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/trip"
)

// MockInvoiceRepository is a mock implementation of billing.InvoiceRepository
type MockInvoiceRepository struct {
	mock.Mock
}

func (m *MockInvoiceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Invoice, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByTrip(ctx context.Context, tenantID, tripID uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID, tripID)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByShipmentIDs(ctx context.Context, tenantID uuid.UUID, shipmentIDs []uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID, shipmentIDs)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID, clientID)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) FindOpenForTenant(ctx context.Context, tenantID uuid.UUID) ([]billing.Invoice, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]billing.Invoice), args.Error(1)
}

func (m *MockInvoiceRepository) ListNumbers(ctx context.Context, tenantID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockInvoiceRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockInvoiceRepository) Save(ctx context.Context, inv *billing.Invoice) error {
	args := m.Called(ctx, inv)
	return args.Error(0)
}

func (m *MockInvoiceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockLineItemRepository is a mock implementation of billing.LineItemRepository
type MockLineItemRepository struct {
	mock.Mock
}

func (m *MockLineItemRepository) FindByInvoice(ctx context.Context, invoiceID uuid.UUID) ([]billing.LineItem, error) {
	args := m.Called(ctx, invoiceID)
	return args.Get(0).([]billing.LineItem), args.Error(1)
}

func (m *MockLineItemRepository) Save(ctx context.Context, item *billing.LineItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockLineItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockLineItemRepository) DeleteByInvoice(ctx context.Context, invoiceID uuid.UUID) error {
	args := m.Called(ctx, invoiceID)
	return args.Error(0)
}

// MockPaymentRepository is a mock implementation of billing.PaymentRepository
type MockPaymentRepository struct {
	mock.Mock
}

func (m *MockPaymentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*billing.Payment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, tenantID, invoiceID)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByInvoices(ctx context.Context, tenantID uuid.UUID, invoiceIDs []uuid.UUID) (map[uuid.UUID][]billing.Payment, error) {
	args := m.Called(ctx, tenantID, invoiceIDs)
	return args.Get(0).(map[uuid.UUID][]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]billing.Payment, error) {
	args := m.Called(ctx, tenantID, clientID)
	return args.Get(0).([]billing.Payment), args.Error(1)
}

func (m *MockPaymentRepository) Save(ctx context.Context, p *billing.Payment) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

func (m *MockPaymentRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockClientRepository is a mock implementation of partner.ClientRepository
type MockClientRepository struct {
	mock.Mock
}

func (m *MockClientRepository) FindByID(ctx context.Context, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*partner.Client, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) ([]partner.Client, error) {
	args := m.Called(ctx, tenantID, ids)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]partner.Client, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]partner.Client), args.Error(1)
}

func (m *MockClientRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockClientRepository) Save(ctx context.Context, c *partner.Client) error {
	args := m.Called(ctx, c)
	return args.Error(0)
}

func (m *MockClientRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockClientRateRepository is a mock implementation of partner.ClientRateRepository
type MockClientRateRepository struct {
	mock.Mock
}

func (m *MockClientRateRepository) FindByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]partner.ClientRate, error) {
	args := m.Called(ctx, tenantID, clientID)
	return args.Get(0).([]partner.ClientRate), args.Error(1)
}

func (m *MockClientRateRepository) FindByClients(ctx context.Context, tenantID uuid.UUID, clientIDs []uuid.UUID) (map[uuid.UUID][]partner.ClientRate, error) {
	args := m.Called(ctx, tenantID, clientIDs)
	return args.Get(0).(map[uuid.UUID][]partner.ClientRate), args.Error(1)
}

func (m *MockClientRateRepository) Save(ctx context.Context, r *partner.ClientRate) error {
	args := m.Called(ctx, r)
	return args.Error(0)
}

// MockShipmentRepository is a mock implementation of freight.ShipmentRepository
type MockShipmentRepository struct {
	mock.Mock
}

func (m *MockShipmentRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*freight.Shipment, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*freight.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]freight.Shipment, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]freight.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) FindByTrip(ctx context.Context, tenantID, tripID uuid.UUID) ([]freight.Shipment, error) {
	args := m.Called(ctx, tenantID, tripID)
	return args.Get(0).([]freight.Shipment), args.Error(1)
}

func (m *MockShipmentRepository) CountByTrip(ctx context.Context, tenantID, tripID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, tripID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShipmentRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockShipmentRepository) Save(ctx context.Context, shipment *freight.Shipment) error {
	args := m.Called(ctx, shipment)
	return args.Error(0)
}

func (m *MockShipmentRepository) SavePieces(ctx context.Context, pieces []freight.ShipmentPiece) error {
	args := m.Called(ctx, pieces)
	return args.Error(0)
}

func (m *MockShipmentRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

// MockTripRepository is a mock implementation of trip.Repository
type MockTripRepository struct {
	mock.Mock
}

func (m *MockTripRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*trip.Trip, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) FindByNumber(ctx context.Context, tenantID uuid.UUID, tripNumber string) (*trip.Trip, error) {
	args := m.Called(ctx, tenantID, tripNumber)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*trip.Trip), args.Error(1)
}

func (m *MockTripRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]trip.Trip, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).([]trip.Trip), args.Error(1)
}

func (m *MockTripRepository) ListNumbers(ctx context.Context, tenantID uuid.UUID) ([]string, error) {
	args := m.Called(ctx, tenantID)
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockTripRepository) ExistsByNumber(ctx context.Context, tenantID uuid.UUID, tripNumber string) (bool, error) {
	args := m.Called(ctx, tenantID, tripNumber)
	return args.Bool(0), args.Error(1)
}

func (m *MockTripRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockTripRepository) Save(ctx context.Context, t *trip.Trip) error {
	args := m.Called(ctx, t)
	return args.Error(0)
}

func (m *MockTripRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}
