package comms

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/shared"
)

// WhatsAppStatus tracks delivery of an outbound message. Transport is an
// external collaborator; the service only records what the provider reports.
type WhatsAppStatus string

const (
	WhatsAppQueued    WhatsAppStatus = "queued"
	WhatsAppSent      WhatsAppStatus = "sent"
	WhatsAppDelivered WhatsAppStatus = "delivered"
	WhatsAppRead      WhatsAppStatus = "read"
	WhatsAppFailed    WhatsAppStatus = "failed"
)

// IsValid checks if the status is a valid WhatsAppStatus
func (s WhatsAppStatus) IsValid() bool {
	switch s {
	case WhatsAppQueued, WhatsAppSent, WhatsAppDelivered, WhatsAppRead, WhatsAppFailed:
		return true
	}
	return false
}

// WhatsAppMessageType classifies what was sent
type WhatsAppMessageType string

const (
	WhatsAppMessageInvoice   WhatsAppMessageType = "invoice"
	WhatsAppMessageStatement WhatsAppMessageType = "statement"
	WhatsAppMessageReminder  WhatsAppMessageType = "reminder"
	WhatsAppMessageOther     WhatsAppMessageType = "other"
)

// IsValid checks if the message type is a valid WhatsAppMessageType
func (t WhatsAppMessageType) IsValid() bool {
	switch t {
	case WhatsAppMessageInvoice, WhatsAppMessageStatement, WhatsAppMessageReminder, WhatsAppMessageOther:
		return true
	}
	return false
}

// WhatsAppLog records one outbound WhatsApp message
type WhatsAppLog struct {
	shared.BaseEntity
	TenantID       uuid.UUID           `json:"tenant_id"`
	ClientID       *uuid.UUID          `json:"client_id"`
	InvoiceID      *uuid.UUID          `json:"invoice_id"`
	RecipientPhone string              `json:"recipient_phone"`
	MessageType    WhatsAppMessageType `json:"message_type"`
	Content        string              `json:"content"`
	Status         WhatsAppStatus      `json:"status"`
	SentBy         *uuid.UUID          `json:"sent_by"`
	SentAt         time.Time           `json:"sent_at"`
	DeliveredAt    *time.Time          `json:"delivered_at"`
	ReadAt         *time.Time          `json:"read_at"`
	ErrorMessage   string              `json:"error_message"`
}

// NewWhatsAppLog records a message handed to the provider
func NewWhatsAppLog(tenantID uuid.UUID, sentBy *uuid.UUID, recipientPhone string, messageType WhatsAppMessageType, content string) (*WhatsAppLog, error) {
	recipientPhone = strings.TrimSpace(recipientPhone)
	if recipientPhone == "" {
		return nil, shared.NewDomainError("INVALID_RECIPIENT", "Recipient phone cannot be empty")
	}
	if messageType == "" {
		messageType = WhatsAppMessageOther
	}
	if !messageType.IsValid() {
		return nil, shared.NewDomainError("INVALID_MESSAGE_TYPE", "WhatsApp message type is not valid")
	}

	return &WhatsAppLog{
		BaseEntity:     shared.NewBaseEntity(),
		TenantID:       tenantID,
		RecipientPhone: recipientPhone,
		MessageType:    messageType,
		Content:        content,
		Status:         WhatsAppSent,
		SentBy:         sentBy,
		SentAt:         time.Now(),
	}, nil
}

// LinkInvoice ties the message to the invoice it carried
func (l *WhatsAppLog) LinkInvoice(invoiceID uuid.UUID) {
	l.InvoiceID = &invoiceID
}

// LinkClient ties the message to the client it went to
func (l *WhatsAppLog) LinkClient(clientID uuid.UUID) {
	l.ClientID = &clientID
}

// ApplyStatus records a provider status callback. Delivered and read stamp
// their timestamps; failed keeps the provider's error text.
func (l *WhatsAppLog) ApplyStatus(status WhatsAppStatus, errorMessage string) error {
	if !status.IsValid() {
		return shared.NewDomainError("INVALID_STATUS", "WhatsApp status is not valid")
	}
	now := time.Now()
	switch status {
	case WhatsAppDelivered:
		if l.DeliveredAt == nil {
			l.DeliveredAt = &now
		}
	case WhatsAppRead:
		if l.ReadAt == nil {
			l.ReadAt = &now
		}
	case WhatsAppFailed:
		l.ErrorMessage = errorMessage
	}
	l.Status = status
	l.UpdatedAt = now
	return nil
}

// WhatsAppLogRepository defines persistence operations for WhatsApp logs
type WhatsAppLogRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*WhatsAppLog, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, invoiceID *uuid.UUID) ([]WhatsAppLog, error)
	Save(ctx context.Context, l *WhatsAppLog) error
}
