package billing

import (
	"context"
	"time"

	"github.com/google/uuid"

	auditapp "github.com/servex/backend/internal/application/audit"
	"github.com/servex/backend/internal/domain/audit"
	"github.com/servex/backend/internal/domain/billing"
	"github.com/servex/backend/internal/domain/partner"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/shared/valueobject"
)

// PaymentService maintains the payment ledger and re-derives invoice status
// from it after every change.
type PaymentService struct {
	paymentRepo billing.PaymentRepository
	invoiceRepo billing.InvoiceRepository
	clientRepo  partner.ClientRepository
	auditSvc    *auditapp.Service
}

// NewPaymentService creates a new PaymentService
func NewPaymentService(paymentRepo billing.PaymentRepository, invoiceRepo billing.InvoiceRepository, clientRepo partner.ClientRepository, auditSvc *auditapp.Service) *PaymentService {
	return &PaymentService{
		paymentRepo: paymentRepo,
		invoiceRepo: invoiceRepo,
		clientRepo:  clientRepo,
		auditSvc:    auditSvc,
	}
}

// Record inserts a payment and, when it is allocated to an invoice, re-sums
// the full ledger: collected at or above total settles the invoice.
func (s *PaymentService) Record(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, req RecordPaymentRequest) (*PaymentResponse, error) {
	if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, req.ClientID); err != nil {
		return nil, err
	}

	var inv *billing.Invoice
	if req.InvoiceID != nil {
		var err error
		inv, err = s.invoiceRepo.FindByIDForTenant(ctx, tenantID, *req.InvoiceID)
		if err != nil {
			return nil, err
		}
	}

	payment, err := billing.NewPayment(tenantID, req.ClientID, req.InvoiceID, req.Amount,
		valueobject.Currency(req.Currency), billing.PaymentMethod(req.Method), req.PaymentDate, req.Reference)
	if err != nil {
		return nil, err
	}
	payment.Notes = req.Notes
	payment.SetRecordedBy(actor.UserID)

	if err := s.paymentRepo.Save(ctx, payment); err != nil {
		return nil, err
	}

	if inv != nil {
		ledger, err := s.paymentRepo.FindByInvoice(ctx, tenantID, inv.ID)
		if err != nil {
			return nil, err
		}
		if inv.SettleAgainst(billing.SumPayments(ledger), time.Now()) {
			if err := s.invoiceRepo.Save(ctx, inv); err != nil {
				return nil, err
			}
		}
	}

	s.record(ctx, tenantID, actor, audit.ActionCreate, payment.ID, nil, audit.ValueMap{
		"client_id": req.ClientID.String(),
		"amount":    req.Amount.String(),
	})

	response := ToPaymentResponse(payment)
	return &response, nil
}

// ListByInvoice returns the ledger entries allocated to an invoice
func (s *PaymentService) ListByInvoice(ctx context.Context, tenantID, invoiceID uuid.UUID) ([]PaymentResponse, error) {
	if _, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, invoiceID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByInvoice(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses, nil
}

// ListByClient returns a client's payments
func (s *PaymentService) ListByClient(ctx context.Context, tenantID, clientID uuid.UUID) ([]PaymentResponse, error) {
	if _, err := s.clientRepo.FindByIDForTenant(ctx, tenantID, clientID); err != nil {
		return nil, err
	}
	payments, err := s.paymentRepo.FindByClient(ctx, tenantID, clientID)
	if err != nil {
		return nil, err
	}
	responses := make([]PaymentResponse, len(payments))
	for i := range payments {
		responses[i] = ToPaymentResponse(&payments[i])
	}
	return responses, nil
}

// Delete removes a ledger entry. Owner and finance roles only. When the
// payment was allocated to a paid invoice and the remaining ledger no longer
// covers the total, the invoice reverts to overdue or sent.
func (s *PaymentService) Delete(ctx context.Context, tenantID, paymentID uuid.UUID, actor shared.Actor) error {
	if !actor.CanDeletePayments() {
		return shared.ErrForbidden
	}
	payment, err := s.paymentRepo.FindByIDForTenant(ctx, tenantID, paymentID)
	if err != nil {
		return err
	}
	if err := s.paymentRepo.DeleteForTenant(ctx, tenantID, paymentID); err != nil {
		return err
	}

	if payment.InvoiceID != nil {
		inv, err := s.invoiceRepo.FindByIDForTenant(ctx, tenantID, *payment.InvoiceID)
		if err != nil {
			return err
		}
		ledger, err := s.paymentRepo.FindByInvoice(ctx, tenantID, inv.ID)
		if err != nil {
			return err
		}
		if inv.IsPaid() && billing.SumPayments(ledger).LessThan(inv.Total) {
			inv.RevertPayment(shared.Today())
			if err := s.invoiceRepo.Save(ctx, inv); err != nil {
				return err
			}
		}
	}

	s.record(ctx, tenantID, actor, audit.ActionDelete, paymentID, audit.ValueMap{
		"amount": payment.Amount.String(),
	}, nil)
	return nil
}

func (s *PaymentService) record(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, action audit.Action, recordID uuid.UUID, oldValues, newValues audit.ValueMap) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Record(ctx, tenantID, actor, action, "payments", recordID, oldValues, newValues, "")
}
