package partner

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/servex/backend/internal/domain/billing"
	"github.com/servex/backend/internal/domain/partner"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/shared/valueobject"
)

// ClientService handles client and rate-history business operations
type ClientService struct {
	clientRepo  partner.ClientRepository
	rateRepo    partner.ClientRateRepository
	invoiceRepo billing.InvoiceRepository
	paymentRepo billing.PaymentRepository
}

// NewClientService creates a new ClientService
func NewClientService(clientRepo partner.ClientRepository, rateRepo partner.ClientRateRepository, invoiceRepo billing.InvoiceRepository, paymentRepo billing.PaymentRepository) *ClientService {
	return &ClientService{
		clientRepo:  clientRepo,
		rateRepo:    rateRepo,
		invoiceRepo: invoiceRepo,
		paymentRepo: paymentRepo,
	}
}

// Create creates a new client
func (s *ClientService) Create(ctx context.Context, tenantID uuid.UUID, req CreateClientRequest) (*ClientResponse, error) {
	client, err := partner.NewClient(tenantID, req.Name)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		client.SetCreatedBy(*req.CreatedBy)
	}

	if req.Phone != "" || req.Email != "" || req.Whatsapp != "" {
		client.SetContact(req.Phone, req.Email, req.Whatsapp)
	}
	if req.CreditLimit != nil {
		if err := client.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}
	if req.PaymentTermsDays != nil {
		if err := client.SetPaymentTerms(*req.PaymentTermsDays); err != nil {
			return nil, err
		}
	}
	if req.DefaultCurrency != "" {
		if err := client.SetDefaultCurrency(valueobject.Currency(req.DefaultCurrency)); err != nil {
			return nil, err
		}
	}
	if req.DefaultRateValue != nil {
		rateType := partner.RateType(req.DefaultRateType)
		if req.DefaultRateType == "" {
			rateType = partner.RateTypePerKg
		}
		if err := client.SetDefaultRate(*req.DefaultRateValue, rateType); err != nil {
			return nil, err
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// GetByID retrieves a client by ID
func (s *ClientService) GetByID(ctx context.Context, tenantID, clientID uuid.UUID) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}
	response := ToClientResponse(client)
	return &response, nil
}

// Update applies a partial update to a client
func (s *ClientService) Update(ctx context.Context, tenantID, clientID uuid.UUID, req UpdateClientRequest) (*ClientResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		if err := client.Rename(*req.Name); err != nil {
			return nil, err
		}
	}
	if req.Phone != nil || req.Email != nil || req.Whatsapp != nil {
		phone, email, whatsapp := client.Phone, client.Email, client.Whatsapp
		if req.Phone != nil {
			phone = *req.Phone
		}
		if req.Email != nil {
			email = *req.Email
		}
		if req.Whatsapp != nil {
			whatsapp = *req.Whatsapp
		}
		client.SetContact(phone, email, whatsapp)
	}
	if req.CreditLimit != nil {
		if err := client.SetCreditLimit(*req.CreditLimit); err != nil {
			return nil, err
		}
	}
	if req.PaymentTermsDays != nil {
		if err := client.SetPaymentTerms(*req.PaymentTermsDays); err != nil {
			return nil, err
		}
	}
	if req.DefaultCurrency != nil {
		if err := client.SetDefaultCurrency(valueobject.Currency(*req.DefaultCurrency)); err != nil {
			return nil, err
		}
	}
	if req.DefaultRateValue != nil {
		rateType := client.DefaultRateType
		if req.DefaultRateType != nil {
			rateType = partner.RateType(*req.DefaultRateType)
		}
		if err := client.SetDefaultRate(*req.DefaultRateValue, rateType); err != nil {
			return nil, err
		}
	}
	if req.Status != nil {
		switch partner.ClientStatus(*req.Status) {
		case partner.ClientStatusActive:
			client.Activate()
		case partner.ClientStatusInactive:
			client.Deactivate()
		default:
			return nil, shared.NewDomainError("INVALID_STATUS", "Client status is not valid")
		}
	}

	if err := s.clientRepo.Save(ctx, client); err != nil {
		return nil, err
	}

	response := ToClientResponse(client)
	return &response, nil
}

// Delete removes a client
func (s *ClientService) Delete(ctx context.Context, tenantID, clientID uuid.UUID) error {
	if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID); err != nil {
		return err
	}
	return s.clientRepo.DeleteForTenant(ctx, tenantID, clientID)
}

// List retrieves clients with filtering and pagination
func (s *ClientService) List(ctx context.Context, tenantID uuid.UUID, filter ClientListFilter) ([]ClientResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	clients, err := s.clientRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.clientRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]ClientResponse, len(clients))
	for i := range clients {
		responses[i] = ToClientResponse(&clients[i])
	}
	return responses, total, nil
}

// ListWithStats retrieves clients enriched with their current rate, amount
// owed on unpaid invoices and total spent on settled ones.
func (s *ClientService) ListWithStats(ctx context.Context, tenantID uuid.UUID, filter ClientListFilter) ([]ClientStatsResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	clients, err := s.clientRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.clientRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, len(clients))
	for i := range clients {
		ids[i] = clients[i].ID
	}
	ratesByClient, err := s.rateRepo.FindByClients(ctx, tenantID, ids)
	if err != nil {
		return nil, 0, err
	}

	today := shared.Today()
	responses := make([]ClientStatsResponse, len(clients))
	for i := range clients {
		c := &clients[i]
		row := ClientStatsResponse{
			ClientResponse: ToClientResponse(c),
			AmountOwed:     decimal.Zero,
			TotalSpent:     decimal.Zero,
		}

		if current := partner.CurrentRate(ratesByClient[c.ID], today); current != nil {
			row.CurrentRateValue = &current.RateValue
			row.CurrentRateType = string(current.RateType)
		} else if c.DefaultRateValue != nil {
			row.CurrentRateValue = c.DefaultRateValue
			row.CurrentRateType = string(c.DefaultRateType)
		}

		owed, spent, err := s.clientBillingTotals(ctx, tenantID, c.ID)
		if err != nil {
			return nil, 0, err
		}
		row.AmountOwed = owed
		row.TotalSpent = spent
		responses[i] = row
	}
	return responses, total, nil
}

// clientBillingTotals derives amount owed and total spent from the client's
// invoices and the payment ledger. Outstanding is never read from storage.
func (s *ClientService) clientBillingTotals(ctx context.Context, tenantID, clientID uuid.UUID) (owed, spent decimal.Decimal, err error) {
	owed, spent = decimal.Zero, decimal.Zero

	invoices, err := s.invoiceRepo.FindByClient(ctx, tenantID, clientID)
	if err != nil {
		return owed, spent, err
	}
	if len(invoices) == 0 {
		return owed, spent, nil
	}

	invoiceIDs := make([]uuid.UUID, len(invoices))
	for i := range invoices {
		invoiceIDs[i] = invoices[i].ID
	}
	paymentsByInvoice, err := s.paymentRepo.FindByInvoices(ctx, tenantID, invoiceIDs)
	if err != nil {
		return owed, spent, err
	}

	for i := range invoices {
		inv := &invoices[i]
		paid := billing.SumPayments(paymentsByInvoice[inv.ID])
		if inv.IsPaid() {
			spent = spent.Add(inv.Total)
			continue
		}
		outstanding := inv.Outstanding(paid)
		if outstanding.IsPositive() {
			owed = owed.Add(outstanding)
		}
		spent = spent.Add(paid)
	}
	return owed, spent, nil
}

// AddRate appends an entry to a client's rate history
func (s *ClientService) AddRate(ctx context.Context, tenantID, clientID uuid.UUID, actor shared.Actor, req CreateRateRequest) (*RateResponse, error) {
	if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID); err != nil {
		return nil, err
	}

	rate, err := partner.NewClientRate(tenantID, clientID, actor.UserID, partner.RateType(req.RateType), req.RateValue, req.EffectiveFrom, req.Notes)
	if err != nil {
		return nil, err
	}
	if err := s.rateRepo.Save(ctx, rate); err != nil {
		return nil, err
	}

	response := ToRateResponse(rate)
	return &response, nil
}

// RateHistory returns a client's full rate history, newest effective first
func (s *ClientService) RateHistory(ctx context.Context, tenantID, clientID uuid.UUID) ([]RateResponse, error) {
	if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID); err != nil {
		return nil, err
	}
	rates, err := s.rateRepo.FindByClient(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}
	responses := make([]RateResponse, len(rates))
	for i := range rates {
		responses[i] = ToRateResponse(&rates[i])
	}
	return responses, nil
}

// GetCurrentRate returns the rate in effect today, falling back to the
// client's default rate when the history has no effective entry.
func (s *ClientService) GetCurrentRate(ctx context.Context, tenantID, clientID uuid.UUID) (*RateResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}
	rates, err := s.rateRepo.FindByClient(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}

	if current := partner.CurrentRate(rates, shared.Today()); current != nil {
		response := ToRateResponse(current)
		return &response, nil
	}
	if client.DefaultRateValue != nil {
		return &RateResponse{
			ClientID:  client.ID,
			RateType:  string(client.DefaultRateType),
			RateValue: *client.DefaultRateValue,
		}, nil
	}
	return nil, shared.NewDomainError("NOT_FOUND", "Client has no rate configured")
}

func toDomainFilter(filter ClientListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters = map[string]interface{}{"status": filter.Status}
	}
	return f
}
