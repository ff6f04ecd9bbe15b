package billing

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

func newInvoiceService() (*InvoiceService, *MockInvoiceRepository, *MockLineItemRepository, *MockPaymentRepository, *MockClientRepository) {
	invoiceRepo := new(MockInvoiceRepository)
	lineItemRepo := new(MockLineItemRepository)
	paymentRepo := new(MockPaymentRepository)
	clientRepo := new(MockClientRepository)
	svc := NewInvoiceService(invoiceRepo, lineItemRepo, paymentRepo, clientRepo, nil)
	return svc, invoiceRepo, lineItemRepo, paymentRepo, clientRepo
}

func TestCreateInvoiceUsesClientTermsForDueDate(t *testing.T) {
	svc, invoiceRepo, _, _, clientRepo := newInvoiceService()
	tenantID := uuid.New()

	client, err := partner.NewClient(tenantID, "Client A")
	require.NoError(t, err)
	require.NoError(t, client.SetPaymentTerms(14))

	clientRepo.On("FindByIDForTenant", mock.Anything, tenantID, client.ID).Return(client, nil)
	invoiceRepo.On("ListNumbers", mock.Anything, tenantID).Return([]string{}, nil)
	invoiceRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.Invoice")).Return(nil)

	adjustments := decimal.NewFromInt(-100)
	resp, err := svc.Create(context.Background(), tenantID, shared.Actor{Role: shared.RoleOwner}, CreateInvoiceRequest{
		ClientID:    client.ID,
		Subtotal:    decimal.NewFromInt(900),
		Adjustments: &adjustments,
	})
	require.NoError(t, err)

	assert.Equal(t, "draft", resp.Status)
	assert.Equal(t, "800", resp.Total.String())
	assert.True(t, resp.VAT.IsZero())
	assert.Equal(t, shared.AddDays(shared.Today(), 14), resp.DueDate)
	assert.Equal(t, string(client.DefaultCurrency), resp.Currency)
}

func TestGetInvoicePersistsOverdueFlip(t *testing.T) {
	svc, invoiceRepo, _, paymentRepo, _ := newInvoiceService()
	tenantID := uuid.New()

	inv := mkInvoice(t, tenantID, uuid.New(), 1000, "2020-01-31")

	invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, inv.ID).Return(inv, nil)
	invoiceRepo.On("Save", mock.Anything, inv).Return(nil)
	paymentRepo.On("FindByInvoice", mock.Anything, tenantID, inv.ID).Return([]billing.Payment{}, nil)

	resp, err := svc.GetByID(context.Background(), tenantID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "overdue", resp.Status)
	invoiceRepo.AssertCalled(t, "Save", mock.Anything, inv)
}

func TestGetInvoiceLeavesCurrentStatusAlone(t *testing.T) {
	svc, invoiceRepo, _, paymentRepo, _ := newInvoiceService()
	tenantID := uuid.New()

	inv := mkInvoice(t, tenantID, uuid.New(), 1000, "2099-12-31")

	invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, inv.ID).Return(inv, nil)
	paymentRepo.On("FindByInvoice", mock.Anything, tenantID, inv.ID).Return([]billing.Payment{
		*mkPayment(t, tenantID, inv.ClientID, &inv.ID, 400),
	}, nil)

	resp, err := svc.GetByID(context.Background(), tenantID, inv.ID)
	require.NoError(t, err)
	assert.Equal(t, "sent", resp.Status)
	assert.Equal(t, "400", resp.AmountPaid.String())
	assert.Equal(t, "600", resp.Outstanding.String())
	invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, inv)
}

func TestUpdateInvoiceStatusStamps(t *testing.T) {
	svc, invoiceRepo, _, paymentRepo, _ := newInvoiceService()
	tenantID := uuid.New()
	actor := shared.Actor{UserID: uuid.New(), Role: shared.RoleManager}

	inv, err := billing.NewInvoice(tenantID, uuid.New(), "INV-2026-0001", "", decimal.NewFromInt(500), decimal.Zero, "2099-12-31")
	require.NoError(t, err)

	invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, inv.ID).Return(inv, nil)
	invoiceRepo.On("Save", mock.Anything, inv).Return(nil)
	paymentRepo.On("FindByInvoice", mock.Anything, tenantID, inv.ID).Return([]billing.Payment{}, nil)

	sent := "sent"
	resp, err := svc.Update(context.Background(), tenantID, inv.ID, actor, UpdateInvoiceRequest{Status: &sent})
	require.NoError(t, err)
	assert.Equal(t, "sent", resp.Status)
	require.NotNil(t, resp.SentAt)
	require.NotNil(t, resp.SentBy)
	assert.Equal(t, actor.UserID, *resp.SentBy)

	paid := "paid"
	resp, err = svc.Update(context.Background(), tenantID, inv.ID, actor, UpdateInvoiceRequest{Status: &paid})
	require.NoError(t, err)
	assert.Equal(t, "paid", resp.Status)
	assert.NotNil(t, resp.PaidAt)
}

func TestDeleteInvoiceDraftOnlyForNonOwners(t *testing.T) {
	svc, invoiceRepo, lineItemRepo, _, _ := newInvoiceService()
	tenantID := uuid.New()

	inv := mkInvoice(t, tenantID, uuid.New(), 1000, "2099-12-31")
	invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, inv.ID).Return(inv, nil)

	err := svc.Delete(context.Background(), tenantID, inv.ID, shared.Actor{Role: shared.RoleManager})
	assert.ErrorIs(t, err, shared.ErrForbidden)

	lineItemRepo.On("DeleteByInvoice", mock.Anything, inv.ID).Return(nil)
	invoiceRepo.On("DeleteForTenant", mock.Anything, tenantID, inv.ID).Return(nil)
	require.NoError(t, svc.Delete(context.Background(), tenantID, inv.ID, shared.Actor{Role: shared.RoleOwner}))
}

func TestAddLineItemResumsDraftInvoice(t *testing.T) {
	svc, invoiceRepo, lineItemRepo, _, _ := newInvoiceService()
	tenantID := uuid.New()

	inv, err := billing.NewInvoice(tenantID, uuid.New(), "INV-2026-0001", "", decimal.NewFromInt(500), decimal.NewFromInt(75), "")
	require.NoError(t, err)

	existing, err := billing.NewLineItem(inv.ID, nil, "Handling", decimal.NewFromInt(2), nil, decimal.NewFromInt(250))
	require.NoError(t, err)

	invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, inv.ID).Return(inv, nil)
	lineItemRepo.On("FindByInvoice", mock.Anything, inv.ID).Return([]billing.LineItem{*existing}, nil)
	lineItemRepo.On("Save", mock.Anything, mock.AnythingOfType("*billing.LineItem")).Return(nil)
	invoiceRepo.On("Save", mock.Anything, inv).Return(nil)

	weight := decimal.NewFromInt(12)
	resp, err := svc.AddLineItem(context.Background(), tenantID, inv.ID, shared.Actor{Role: shared.RoleStaff}, CreateLineItemRequest{
		Description: "Freight 12kg",
		Weight:      &weight,
		Rate:        decimal.NewFromInt(20),
	})
	require.NoError(t, err)

	// weight takes precedence over quantity: 12 x 20
	assert.Equal(t, "240", resp.Amount.String())
	assert.Equal(t, "740", inv.Subtotal.String())
	assert.Equal(t, "815", inv.Total.String())
}

func TestAddLineItemRejectsSentInvoice(t *testing.T) {
	svc, invoiceRepo, lineItemRepo, _, _ := newInvoiceService()
	tenantID := uuid.New()

	inv := mkInvoice(t, tenantID, uuid.New(), 500, "")
	invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, inv.ID).Return(inv, nil)
	lineItemRepo.On("FindByInvoice", mock.Anything, inv.ID).Return([]billing.LineItem{}, nil)

	_, err := svc.AddLineItem(context.Background(), tenantID, inv.ID, shared.Actor{Role: shared.RoleOwner}, CreateLineItemRequest{
		Description: "Late charge",
		Rate:        decimal.NewFromInt(100),
	})
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_STATE", domainErr.Code)
	invoiceRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestRemoveLineItemResumsAndDeletes(t *testing.T) {
	svc, invoiceRepo, lineItemRepo, _, _ := newInvoiceService()
	tenantID := uuid.New()

	inv, err := billing.NewInvoice(tenantID, uuid.New(), "INV-2026-0001", "", decimal.NewFromInt(740), decimal.Zero, "")
	require.NoError(t, err)

	keep, err := billing.NewLineItem(inv.ID, nil, "Handling", decimal.NewFromInt(2), nil, decimal.NewFromInt(250))
	require.NoError(t, err)
	drop, err := billing.NewLineItem(inv.ID, nil, "Freight", decimal.NewFromInt(1), nil, decimal.NewFromInt(240))
	require.NoError(t, err)

	invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, inv.ID).Return(inv, nil)
	lineItemRepo.On("FindByInvoice", mock.Anything, inv.ID).Return([]billing.LineItem{*keep, *drop}, nil)
	lineItemRepo.On("Delete", mock.Anything, drop.ID).Return(nil)
	invoiceRepo.On("Save", mock.Anything, inv).Return(nil)

	require.NoError(t, svc.RemoveLineItem(context.Background(), tenantID, inv.ID, drop.ID, shared.Actor{Role: shared.RoleOwner}))
	assert.Equal(t, "500", inv.Subtotal.String())
	assert.Equal(t, "500", inv.Total.String())
}

func TestRemoveLineItemMissing(t *testing.T) {
	svc, invoiceRepo, lineItemRepo, _, _ := newInvoiceService()
	tenantID := uuid.New()

	inv, err := billing.NewInvoice(tenantID, uuid.New(), "INV-2026-0001", "", decimal.NewFromInt(100), decimal.Zero, "")
	require.NoError(t, err)

	invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, inv.ID).Return(inv, nil)
	lineItemRepo.On("FindByInvoice", mock.Anything, inv.ID).Return([]billing.LineItem{}, nil)

	err = svc.RemoveLineItem(context.Background(), tenantID, inv.ID, uuid.New(), shared.Actor{Role: shared.RoleOwner})
	assert.ErrorIs(t, err, shared.ErrNotFound)
}

func TestMarkEmailSentRecordsRecipient(t *testing.T) {
	svc, invoiceRepo, _, _, _ := newInvoiceService()
	tenantID := uuid.New()

	inv := mkInvoice(t, tenantID, uuid.New(), 500, "")
	invoiceRepo.On("FindByIDForTenant", mock.Anything, tenantID, inv.ID).Return(inv, nil)
	invoiceRepo.On("Save", mock.Anything, inv).Return(nil)

	resp, err := svc.MarkEmailSent(context.Background(), tenantID, inv.ID, shared.Actor{Role: shared.RoleStaff}, "billing@client.example")
	require.NoError(t, err)
	assert.Equal(t, "billing@client.example", resp.EmailSentTo)
	assert.NotNil(t, resp.EmailSentAt)
}
