package billing

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	auditapp "github.com/servex/backend/internal/application/audit"
	"github.com/servex/backend/internal/domain/audit"
	"github.com/servex/backend/internal/domain/billing"
	"github.com/servex/backend/internal/domain/partner"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/shared/valueobject"
)

// InvoiceService handles manual invoice operations and the lazy-overdue
// projection every read path goes through.
type InvoiceService struct {
	invoiceRepo  billing.InvoiceRepository
	lineItemRepo billing.LineItemRepository
	paymentRepo  billing.PaymentRepository
	clientRepo   partner.ClientRepository
	auditSvc     *auditapp.Service
}

// NewInvoiceService creates a new InvoiceService
func NewInvoiceService(invoiceRepo billing.InvoiceRepository, lineItemRepo billing.LineItemRepository, paymentRepo billing.PaymentRepository, clientRepo partner.ClientRepository, auditSvc *auditapp.Service) *InvoiceService {
	return &InvoiceService{
		invoiceRepo:  invoiceRepo,
		lineItemRepo: lineItemRepo,
		paymentRepo:  paymentRepo,
		clientRepo:   clientRepo,
		auditSvc:     auditSvc,
	}
}

// Create creates a manual draft invoice. The number continues the year's
// INV sequence; the due date falls back to the client's payment terms.
func (s *InvoiceService) Create(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, req CreateInvoiceRequest) (*InvoiceResponse, error) {
	client, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, req.ClientID)
	if err != nil {
		return nil, err
	}

	numbers, err := s.invoiceRepo.ListNumbers(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	number := billing.NextInvoiceNumber(numbers, time.Now().UTC().Year())

	currency := req.Currency
	if currency == "" {
		currency = string(client.DefaultCurrency)
	}
	adjustments := decimalOrZero(req.Adjustments)
	dueDate := req.DueDate
	if dueDate == "" {
		dueDate = client.DueDateFromIssue(shared.Today())
	}

	inv, err := billing.NewInvoice(tenantID, client.ID, number, valueobject.Currency(currency), req.Subtotal, adjustments, dueDate)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		inv.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	s.record(ctx, tenantID, actor, audit.ActionCreate, inv.ID, nil, audit.ValueMap{
		"invoice_number": inv.InvoiceNumber,
		"total":          inv.Total.String(),
	})

	response := ToInvoiceResponse(inv, nil)
	return &response, nil
}

// GetByID retrieves an invoice with its ledger-derived outstanding figure.
// Reading refreshes the overdue status.
func (s *InvoiceService) GetByID(ctx context.Context, tenantID, invoiceID uuid.UUID) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	if err := s.refreshOverdue(ctx, inv); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	response := ToInvoiceResponse(inv, payments)
	return &response, nil
}

// List retrieves invoices with filtering, refreshing overdue states so the
// list agrees with every other read path.
func (s *InvoiceService) List(ctx context.Context, tenantID uuid.UUID, filter InvoiceListFilter) ([]InvoiceResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	invoices, err := s.invoiceRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.invoiceRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	ids := make([]uuid.UUID, len(invoices))
	for i := range invoices {
		ids[i] = invoices[i].ID
	}
	paymentsByInvoice, err := s.paymentRepo.FindByInvoices(ctx, tenantID, ids)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]InvoiceResponse, len(invoices))
	for i := range invoices {
		inv := &invoices[i]
		if err := s.refreshOverdue(ctx, inv); err != nil {
			return nil, 0, err
		}
		responses[i] = ToInvoiceResponse(inv, paymentsByInvoice[inv.ID])
	}
	return responses, total, nil
}

// Update applies a partial update. Amount changes re-derive the total;
// a status change to sent stamps sent_at/sent_by, to paid stamps paid_at.
func (s *InvoiceService) Update(ctx context.Context, tenantID, invoiceID uuid.UUID, actor shared.Actor, req UpdateInvoiceRequest) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	oldStatus := string(inv.Status)

	if req.Subtotal != nil || req.Adjustments != nil {
		subtotal, adjustments := inv.Subtotal, inv.Adjustments
		if req.Subtotal != nil {
			subtotal = *req.Subtotal
		}
		if req.Adjustments != nil {
			adjustments = *req.Adjustments
		}
		inv.SetAmounts(subtotal, adjustments)
	}
	if req.DueDate != nil {
		if err := inv.SetDueDate(*req.DueDate); err != nil {
			return nil, err
		}
	}
	action := audit.ActionUpdate
	if req.Status != nil && billing.InvoiceStatus(*req.Status) != inv.Status {
		switch billing.InvoiceStatus(*req.Status) {
		case billing.InvoiceStatusSent:
			inv.MarkSent(actor.UserID)
		case billing.InvoiceStatusPaid:
			inv.MarkPaid(time.Now())
		case billing.InvoiceStatusDraft, billing.InvoiceStatusOverdue:
			inv.Status = billing.InvoiceStatus(*req.Status)
		default:
			return nil, shared.NewDomainError("INVALID_STATUS", "Invoice status is not valid")
		}
		action = audit.ActionStatusChange
	}

	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	s.record(ctx, tenantID, actor, action, inv.ID,
		audit.ValueMap{"status": oldStatus},
		audit.ValueMap{"status": string(inv.Status)})

	payments, err := s.paymentRepo.FindByInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	response := ToInvoiceResponse(inv, payments)
	return &response, nil
}

// Delete removes an invoice and its line items. Non-owners may only delete
// drafts.
func (s *InvoiceService) Delete(ctx context.Context, tenantID, invoiceID uuid.UUID, actor shared.Actor) error {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return err
	}
	if !inv.IsDraft() && !actor.IsOwner() {
		return shared.ErrForbidden
	}

	if err := s.lineItemRepo.DeleteByInvoice(ctx, invoiceID); err != nil {
		return err
	}
	if err := s.invoiceRepo.DeleteForTenant(ctx, tenantID, invoiceID); err != nil {
		return err
	}
	s.record(ctx, tenantID, actor, audit.ActionDelete, invoiceID, audit.ValueMap{
		"invoice_number": inv.InvoiceNumber,
	}, nil)
	return nil
}

// AddLineItem appends a line item to a draft invoice and re-derives the
// subtotal and total.
func (s *InvoiceService) AddLineItem(ctx context.Context, tenantID, invoiceID uuid.UUID, actor shared.Actor, req CreateLineItemRequest) (*LineItemResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}

	item, err := billing.NewLineItem(invoiceID, req.ShipmentID, req.Description, req.Quantity, req.Weight, req.Rate)
	if err != nil {
		return nil, err
	}

	items, err := s.lineItemRepo.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	items = append(items, *item)
	if err := inv.ApplyLineItems(items); err != nil {
		return nil, err
	}

	if err := s.lineItemRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}

	response := ToLineItemResponse(item)
	return &response, nil
}

// ListLineItems returns an invoice's line items
func (s *InvoiceService) ListLineItems(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]LineItemResponse, error) {
	if _, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID); err != nil {
		return nil, err
	}
	items, err := s.lineItemRepo.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return nil, err
	}
	responses := make([]LineItemResponse, len(items))
	for i := range items {
		responses[i] = ToLineItemResponse(&items[i])
	}
	return responses, nil
}

// RemoveLineItem deletes a line item from a draft invoice and re-derives
// the subtotal and total.
func (s *InvoiceService) RemoveLineItem(ctx context.Context, tenantID, invoiceID, itemID uuid.UUID, actor shared.Actor) error {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return err
	}
	items, err := s.lineItemRepo.FindByInvoice(ctx, invoiceID)
	if err != nil {
		return err
	}

	remaining := items[:0]
	found := false
	for _, item := range items {
		if item.ID == itemID {
			found = true
			continue
		}
		remaining = append(remaining, item)
	}
	if !found {
		return shared.ErrNotFound
	}
	if err := inv.ApplyLineItems(remaining); err != nil {
		return err
	}

	if err := s.lineItemRepo.Delete(ctx, itemID); err != nil {
		return err
	}
	return s.invoiceRepo.Save(ctx, inv)
}

// MarkEmailSent logs that the invoice document went out to an address.
// Transport happens at the collaborator boundary; this records the fact.
func (s *InvoiceService) MarkEmailSent(ctx context.Context, tenantID, invoiceID uuid.UUID, actor shared.Actor, to string) (*InvoiceResponse, error) {
	inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	inv.MarkEmailSent(to, time.Now())
	if err := s.invoiceRepo.Save(ctx, inv); err != nil {
		return nil, err
	}
	s.record(ctx, tenantID, actor, audit.ActionUpdate, inv.ID, nil, audit.ValueMap{"email_sent_to": to})

	response := ToInvoiceResponse(inv, nil)
	return &response, nil
}

// refreshOverdue materializes the lazy overdue projection, persisting the
// flip so every read path reports the same status.
func (s *InvoiceService) refreshOverdue(ctx context.Context, inv *billing.Invoice) error {
	if inv.RefreshOverdue(shared.Today()) {
		return s.invoiceRepo.Save(ctx, inv)
	}
	return nil
}

func (s *InvoiceService) record(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, action audit.Action, recordID uuid.UUID, oldValues, newValues audit.ValueMap) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Record(ctx, tenantID, actor, action, "invoices", recordID, oldValues, newValues, "")
}

func decimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

func toDomainFilter(filter InvoiceListFilter) shared.Filter {
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
	filters := map[string]interface{}{}
	if filter.Status != "" {
		filters["status"] = filter.Status
	}
	if filter.ClientID != nil {
		filters["client_id"] = *filter.ClientID
	}
	if filter.TripID != nil {
		filters["trip_id"] = *filter.TripID
	}
	if len(filters) > 0 {
		f.Filters = filters
	}
	return f
}
