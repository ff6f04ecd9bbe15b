package billing

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/servex/backend/internal/domain/billing"
	"github.com/servex/backend/internal/domain/freight"
	"github.com/servex/backend/internal/domain/partner"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/trip"
)

func newGenerationService() (*GenerationService, *MockTripRepository, *MockShipmentRepository, *MockClientRepository, *MockClientRateRepository, *MockInvoiceRepository) {
	tripRepo := new(MockTripRepository)
	shipmentRepo := new(MockShipmentRepository)
	clientRepo := new(MockClientRepository)
	rateRepo := new(MockClientRateRepository)
	invoiceRepo := new(MockInvoiceRepository)
	svc := NewGenerationService(tripRepo, shipmentRepo, clientRepo, rateRepo, invoiceRepo, nil)
	return svc, tripRepo, shipmentRepo, clientRepo, rateRepo, invoiceRepo
}

func mkShipment(t *testing.T, tenantID, clientID, tripID uuid.UUID, weight int64) freight.Shipment {
	t.Helper()
	sh, err := freight.NewShipment(tenantID, clientID, "Cargo", "Harare", decimal.NewFromInt(weight))
	require.NoError(t, err)
	require.NoError(t, sh.AssignToTrip(tripID))
	return *sh
}

func TestGenerateForTripTwoClients(t *testing.T) {
	svc, tripRepo, shipmentRepo, clientRepo, rateRepo, invoiceRepo := newGenerationService()
	tenantID := uuid.New()

	tr, err := trip.NewTrip(tenantID, "S12", nil, "")
	require.NoError(t, err)

	clientA, err := partner.NewClient(tenantID, "Client A")
	require.NoError(t, err)
	clientB, err := partner.NewClient(tenantID, "Client B")
	require.NoError(t, err)

	// Client A ships 25kg at a 50/kg rate entry; client B ships 8kg with no
	// rate anywhere and falls back to the default 50/kg.
	rateA, err := partner.NewClientRate(tenantID, clientA.ID, uuid.New(), partner.RateTypePerKg, decimal.NewFromInt(50), "2020-01-01", "")
	require.NoError(t, err)

	shipments := []freight.Shipment{
		mkShipment(t, tenantID, clientA.ID, tr.ID, 10),
		mkShipment(t, tenantID, clientA.ID, tr.ID, 15),
		mkShipment(t, tenantID, clientB.ID, tr.ID, 8),
	}

	tripRepo.On("FindByIDForTenant", mock.Anything, tenantID, tr.ID).Return(tr, nil)
	shipmentRepo.On("FindByTrip", mock.Anything, tenantID, tr.ID).Return(shipments, nil)
	invoiceRepo.On("FindByTrip", mock.Anything, tenantID, tr.ID).Return([]billing.Invoice{}, nil)
	rateRepo.On("FindByClients", mock.Anything, tenantID, mock.Anything).Return(map[uuid.UUID][]partner.ClientRate{
		clientA.ID: {*rateA},
	}, nil)
	clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, clientA.ID).Return(clientA, nil)
	clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, clientB.ID).Return(clientB, nil)
	invoiceRepo.On("ListNumbers", mock.Anything, tenantID).Return([]string{}, nil)
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	result, err := svc.GenerateForTrip(context.Background(), tenantID, tr.ID)
	require.NoError(t, err)
	require.Len(t, result.Created, 2)
	assert.Empty(t, result.Skipped)
	assert.Nil(t, result.Failed)

	byClient := map[uuid.UUID]InvoiceResponse{}
	for _, inv := range result.Created {
		byClient[inv.ClientID] = inv
	}

	a := byClient[clientA.ID]
	assert.Equal(t, "1250", a.Subtotal.String())
	assert.Equal(t, "187.5", a.VAT.String())
	assert.Equal(t, "1437.5", a.Total.String())
	assert.Equal(t, "draft", a.Status)
	assert.Len(t, a.ShipmentIDs, 2)

	b := byClient[clientB.ID]
	assert.Equal(t, "400", b.Subtotal.String())
	assert.Equal(t, "60", b.VAT.String())
	assert.Equal(t, "460", b.Total.String())
}

func TestGenerateForTripIdempotent(t *testing.T) {
	svc, tripRepo, shipmentRepo, clientRepo, rateRepo, invoiceRepo := newGenerationService()
	tenantID := uuid.New()

	tr, err := trip.NewTrip(tenantID, "S12", nil, "")
	require.NoError(t, err)
	client, err := partner.NewClient(tenantID, "Client A")
	require.NoError(t, err)

	sh := mkShipment(t, tenantID, client.ID, tr.ID, 25)

	existing, err := billing.NewTripInvoice(tenantID, client.ID, tr.ID, "INV-2026-0001", "",
		[]uuid.UUID{sh.ID}, decimal.NewFromInt(25), decimal.NewFromInt(50))
	require.NoError(t, err)

	tripRepo.On("FindByIDForTenant", mock.Anything, tenantID, tr.ID).Return(tr, nil)
	shipmentRepo.On("FindByTrip", mock.Anything, tenantID, tr.ID).Return([]freight.Shipment{sh}, nil)
	invoiceRepo.On("FindByTrip", mock.Anything, tenantID, tr.ID).Return([]billing.Invoice{*existing}, nil)
	rateRepo.On("FindByClients", mock.Anything, tenantID, mock.Anything).Return(map[uuid.UUID][]partner.ClientRate{}, nil)

	result, err := svc.GenerateForTrip(context.Background(), tenantID, tr.ID)
	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Equal(t, []uuid.UUID{client.ID}, result.Skipped)
	clientRepo.AssertNotCalled(t, "FindByIDForTenant")
}

func TestGenerateForTripSkipsUnparentedShipments(t *testing.T) {
	svc, tripRepo, shipmentRepo, _, rateRepo, invoiceRepo := newGenerationService()
	tenantID := uuid.New()

	tr, err := trip.NewTrip(tenantID, "S12", nil, "")
	require.NoError(t, err)

	orphan := mkShipment(t, tenantID, uuid.New(), tr.ID, 10)
	orphan.ClientID = uuid.Nil

	tripRepo.On("FindByIDForTenant", mock.Anything, tenantID, tr.ID).Return(tr, nil)
	shipmentRepo.On("FindByTrip", mock.Anything, tenantID, tr.ID).Return([]freight.Shipment{orphan}, nil)
	invoiceRepo.On("FindByTrip", mock.Anything, tenantID, tr.ID).Return([]billing.Invoice{}, nil)
	rateRepo.On("FindByClients", mock.Anything, tenantID, mock.Anything).Return(map[uuid.UUID][]partner.ClientRate{}, nil)

	result, err := svc.GenerateForTrip(context.Background(), tenantID, tr.ID)
	require.NoError(t, err)
	assert.Empty(t, result.Created)
	assert.Empty(t, result.Skipped)
}

func TestGenerateForTripPerClientIsolation(t *testing.T) {
	svc, tripRepo, shipmentRepo, clientRepo, rateRepo, invoiceRepo := newGenerationService()
	tenantID := uuid.New()

	tr, err := trip.NewTrip(tenantID, "S12", nil, "")
	require.NoError(t, err)
	clientA, err := partner.NewClient(tenantID, "Client A")
	require.NoError(t, err)
	clientB, err := partner.NewClient(tenantID, "Client B")
	require.NoError(t, err)

	shipments := []freight.Shipment{
		mkShipment(t, tenantID, clientA.ID, tr.ID, 10),
		mkShipment(t, tenantID, clientB.ID, tr.ID, 8),
	}

	tripRepo.On("FindByIDForTenant", mock.Anything, tenantID, tr.ID).Return(tr, nil)
	shipmentRepo.On("FindByTrip", mock.Anything, tenantID, tr.ID).Return(shipments, nil)
	invoiceRepo.On("FindByTrip", mock.Anything, tenantID, tr.ID).Return([]billing.Invoice{}, nil)
	rateRepo.On("FindByClients", mock.Anything, tenantID, mock.Anything).Return(map[uuid.UUID][]partner.ClientRate{}, nil)
	clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, clientA.ID).Return(nil, fmt.Errorf("connection reset"))
	clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, clientB.ID).Return(clientB, nil)
	invoiceRepo.On("ListNumbers", mock.Anything, tenantID).Return([]string{}, nil)
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	result, err := svc.GenerateForTrip(context.Background(), tenantID, tr.ID)
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.Equal(t, clientB.ID, result.Created[0].ClientID)
	require.NotNil(t, result.Failed)
	assert.Contains(t, result.Failed, clientA.ID.String())
}

func TestGenerateForTripRetriesTakenNumber(t *testing.T) {
	svc, tripRepo, shipmentRepo, clientRepo, rateRepo, invoiceRepo := newGenerationService()
	tenantID := uuid.New()

	tr, err := trip.NewTrip(tenantID, "S12", nil, "")
	require.NoError(t, err)
	client, err := partner.NewClient(tenantID, "Client A")
	require.NoError(t, err)

	sh := mkShipment(t, tenantID, client.ID, tr.ID, 10)
	year := time.Now().UTC().Year()

	tripRepo.On("FindByIDForTenant", mock.Anything, tenantID, tr.ID).Return(tr, nil)
	shipmentRepo.On("FindByTrip", mock.Anything, tenantID, tr.ID).Return([]freight.Shipment{sh}, nil)
	invoiceRepo.On("FindByTrip", mock.Anything, tenantID, tr.ID).Return([]billing.Invoice{}, nil)
	rateRepo.On("FindByClients", mock.Anything, tenantID, mock.Anything).Return(map[uuid.UUID][]partner.ClientRate{}, nil)
	clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, client.ID).Return(client, nil)

	// A concurrent generator grabs 0008 between our sequence read and the
	// insert; the second read sees it taken and the retry lands on 0009.
	invoiceRepo.On("ListNumbers", mock.Anything, tenantID).Return([]string{
		fmt.Sprintf("INV-%d-0007", year),
	}, nil).Once()
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(shared.ErrConflict).Once()
	invoiceRepo.On("ListNumbers", mock.Anything, tenantID).Return([]string{
		fmt.Sprintf("INV-%d-0008", year),
	}, nil).Once()
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil).Once()

	result, err := svc.GenerateForTrip(context.Background(), tenantID, tr.ID)
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.Nil(t, result.Failed)
	assert.Equal(t, fmt.Sprintf("INV-%d-0009", year), result.Created[0].InvoiceNumber)
	invoiceRepo.AssertExpectations(t)
}

func TestGenerateForTripNumbersContinueSequence(t *testing.T) {
	svc, tripRepo, shipmentRepo, clientRepo, rateRepo, invoiceRepo := newGenerationService()
	tenantID := uuid.New()

	tr, err := trip.NewTrip(tenantID, "S12", nil, "")
	require.NoError(t, err)
	client, err := partner.NewClient(tenantID, "Client A")
	require.NoError(t, err)

	sh := mkShipment(t, tenantID, client.ID, tr.ID, 10)
	year := time.Now().UTC().Year()

	tripRepo.On("FindByIDForTenant", mock.Anything, tenantID, tr.ID).Return(tr, nil)
	shipmentRepo.On("FindByTrip", mock.Anything, tenantID, tr.ID).Return([]freight.Shipment{sh}, nil)
	invoiceRepo.On("FindByTrip", mock.Anything, tenantID, tr.ID).Return([]billing.Invoice{}, nil)
	rateRepo.On("FindByClients", mock.Anything, tenantID, mock.Anything).Return(map[uuid.UUID][]partner.ClientRate{}, nil)
	clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, client.ID).Return(client, nil)
	invoiceRepo.On("ListNumbers", mock.Anything, tenantID).Return([]string{
		fmt.Sprintf("INV-%d-0007", year),
	}, nil)
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	result, err := svc.GenerateForTrip(context.Background(), tenantID, tr.ID)
	require.NoError(t, err)
	require.Len(t, result.Created, 1)
	assert.Equal(t, fmt.Sprintf("INV-%d-0008", year), result.Created[0].InvoiceNumber)
}
