package comms

import (
	"context"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/comms"
	"github.com/servex/backend/internal/domain/shared"
)

// WhatsAppLogService records outbound WhatsApp messages and provider status
// callbacks. Actual transport lives outside the service boundary.
type WhatsAppLogService struct {
	logRepo comms.WhatsAppLogRepository
}

// NewWhatsAppLogService creates a new WhatsAppLogService
func NewWhatsAppLogService(logRepo comms.WhatsAppLogRepository) *WhatsAppLogService {
	return &WhatsAppLogService{logRepo: logRepo}
}

// List returns the tenant's message logs, optionally filtered by invoice
func (s *WhatsAppLogService) List(ctx context.Context, tenantID uuid.UUID, invoiceID *uuid.UUID) ([]WhatsAppLogResponse, error) {
	logs, err := s.logRepo.FindAllForTenant(ctx, tenantID, invoiceID)
	if err != nil {
		return nil, err
	}
	responses := make([]WhatsAppLogResponse, len(logs))
	for i := range logs {
		responses[i] = ToWhatsAppLogResponse(&logs[i])
	}
	return responses, nil
}

// Create records a message handed to the provider
func (s *WhatsAppLogService) Create(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, req CreateWhatsAppLogRequest) (*WhatsAppLogResponse, error) {
	l, err := comms.NewWhatsAppLog(tenantID, actor.UserIDPtr(), req.RecipientPhone, comms.WhatsAppMessageType(req.MessageType), req.Content)
	if err != nil {
		return nil, err
	}
	if req.InvoiceID != nil {
		l.LinkInvoice(*req.InvoiceID)
	}
	if req.ClientID != nil {
		l.LinkClient(*req.ClientID)
	}
	if err := s.logRepo.Save(ctx, l); err != nil {
		return nil, err
	}
	response := ToWhatsAppLogResponse(l)
	return &response, nil
}

// UpdateStatus applies a provider delivery callback to a log entry
func (s *WhatsAppLogService) UpdateStatus(ctx context.Context, tenantID, id uuid.UUID, req UpdateWhatsAppStatusRequest) (*WhatsAppLogResponse, error) {
	l, err := s.logRepo.FindByIDForTenant(ctx, tenantID, id)
	if err != nil {
		return nil, err
	}
	if err := l.ApplyStatus(comms.WhatsAppStatus(req.Status), req.ErrorMessage); err != nil {
		return nil, err
	}
	if err := s.logRepo.Save(ctx, l); err != nil {
		return nil, err
	}
	response := ToWhatsAppLogResponse(l)
	return &response, nil
}
