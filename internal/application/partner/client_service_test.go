package partner

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/servex/backend/internal/domain/billing"
	"github.com/servex/backend/internal/domain/partner"
	"github.com/servex/backend/internal/domain/shared"
)

// =============================================================================
// Mock Repositories
// =============================================================================

// MockClientRepository is a mock implementation of ClientRepository
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

// MockClientRateRepository is a mock implementation of ClientRateRepository
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

// =============================================================================
// Tests
// =============================================================================

func newClientService() (*ClientService, *MockClientRepository, *MockClientRateRepository, *MockInvoiceRepository, *MockPaymentRepository) {
	clientRepo := new(MockClientRepository)
	rateRepo := new(MockClientRateRepository)
	invoiceRepo := new(MockInvoiceRepository)
	paymentRepo := new(MockPaymentRepository)
	return NewClientService(clientRepo, rateRepo, invoiceRepo, paymentRepo), clientRepo, rateRepo, invoiceRepo, paymentRepo
}

func TestClientServiceCreate(t *testing.T) {
	svc, clientRepo, _, _, _ := newClientService()
	tenantID := uuid.New()

	clientRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.Client")).Return(nil)

	terms := 14
	resp, err := svc.Create(context.Background(), tenantID, CreateClientRequest{
		Name:             "Mukuru Traders",
		Phone:            "+263 77 000 0000",
		Email:            "Accounts@Mukuru.example",
		PaymentTermsDays: &terms,
	})
	require.NoError(t, err)
	assert.Equal(t, "Mukuru Traders", resp.Name)
	assert.Equal(t, "accounts@mukuru.example", resp.Email)
	assert.Equal(t, 14, resp.PaymentTermsDays)
	assert.Equal(t, "active", resp.Status)
	clientRepo.AssertExpectations(t)
}

func TestClientServiceCreateInvalidName(t *testing.T) {
	svc, _, _, _, _ := newClientService()

	_, err := svc.Create(context.Background(), uuid.New(), CreateClientRequest{Name: "   "})
	assert.Error(t, err)
}

func TestClientServiceUpdateNotFound(t *testing.T) {
	svc, clientRepo, _, _, _ := newClientService()
	tenantID := uuid.New()
	clientID := uuid.New()

	clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, clientID).Return(nil, shared.ErrNotFound)

	name := "Renamed"
	_, err := svc.Update(context.Background(), tenantID, clientID, UpdateClientRequest{Name: &name})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestClientServiceGetCurrentRateFallsBack(t *testing.T) {
	svc, clientRepo, rateRepo, _, _ := newClientService()
	tenantID := uuid.New()

	client, err := partner.NewClient(tenantID, "Mukuru Traders")
	require.NoError(t, err)
	require.NoError(t, client.SetDefaultRate(decimal.NewFromInt(45), partner.RateTypePerKg))

	clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, client.ID).Return(client, nil)
	rateRepo.On("FindByClient", mock.Anything, tenantID, client.ID).Return([]partner.ClientRate{}, nil)

	resp, err := svc.GetCurrentRate(context.Background(), tenantID, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "45", resp.RateValue.String())
	assert.Equal(t, "per_kg", resp.RateType)
}

func TestClientServiceGetCurrentRatePrefersHistory(t *testing.T) {
	svc, clientRepo, rateRepo, _, _ := newClientService()
	tenantID := uuid.New()

	client, err := partner.NewClient(tenantID, "Mukuru Traders")
	require.NoError(t, err)

	rate, err := partner.NewClientRate(tenantID, client.ID, uuid.New(), partner.RateTypePerKg, decimal.NewFromInt(55), "2020-01-01", "")
	require.NoError(t, err)

	clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, client.ID).Return(client, nil)
	rateRepo.On("FindByClient", mock.Anything, tenantID, client.ID).Return([]partner.ClientRate{*rate}, nil)

	resp, err := svc.GetCurrentRate(context.Background(), tenantID, client.ID)
	require.NoError(t, err)
	assert.Equal(t, "55", resp.RateValue.String())
}

func TestClientServiceListWithStats(t *testing.T) {
	svc, clientRepo, rateRepo, invoiceRepo, paymentRepo := newClientService()
	tenantID := uuid.New()

	client, err := partner.NewClient(tenantID, "Mukuru Traders")
	require.NoError(t, err)

	inv, err := billing.NewInvoice(tenantID, client.ID, "INV-2026-0001", "", decimal.NewFromInt(1000), decimal.Zero, "")
	require.NoError(t, err)
	inv.MarkSent(uuid.New())

	payment, err := billing.NewPayment(tenantID, client.ID, &inv.ID, decimal.NewFromInt(400), "", billing.PaymentEFT, "2026-02-01", "")
	require.NoError(t, err)

	clientRepo.On("FindAllForTenant", mock.Anything, tenantID, mock.Anything).Return([]partner.Client{*client}, nil)
	clientRepo.On("CountForTenant", mock.Anything, tenantID, mock.Anything).Return(int64(1), nil)
	rateRepo.On("FindByClients", mock.Anything, tenantID, mock.Anything).Return(map[uuid.UUID][]partner.ClientRate{}, nil)
	invoiceRepo.On("FindByClient", mock.Anything, tenantID, client.ID).Return([]billing.Invoice{*inv}, nil)
	paymentRepo.On("FindByInvoices", mock.Anything, tenantID, mock.Anything).Return(map[uuid.UUID][]billing.Payment{inv.ID: {*payment}}, nil)

	rows, total, err := svc.ListWithStats(context.Background(), tenantID, ClientListFilter{})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Equal(t, "600", rows[0].AmountOwed.String())
	assert.Equal(t, "400", rows[0].TotalSpent.String())
}

func TestClientServiceAddRate(t *testing.T) {
	svc, clientRepo, rateRepo, _, _ := newClientService()
	tenantID := uuid.New()

	client, err := partner.NewClient(tenantID, "Mukuru Traders")
	require.NoError(t, err)

	clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, client.ID).Return(client, nil)
	rateRepo.On("Save", mock.Anything, mock.AnythingOfType("*partner.ClientRate")).Return(nil)

	actor := shared.Actor{UserID: uuid.New(), Role: shared.RoleManager}
	resp, err := svc.AddRate(context.Background(), tenantID, client.ID, actor, CreateRateRequest{
		RateType:      "per_kg",
		RateValue:     decimal.NewFromInt(52),
		EffectiveFrom: "2026-03-01",
	})
	require.NoError(t, err)
	assert.Equal(t, "2026-03-01", resp.EffectiveFrom)
	rateRepo.AssertExpectations(t)
}
