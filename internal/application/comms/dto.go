package comms

import (
	"time"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/comms"
)

// CreateNotificationRequest represents the request to create a notification
type CreateNotificationRequest struct {
	UserID       uuid.UUID  `json:"user_id" binding:"required"`
	Type         string     `json:"type" binding:"required,oneof=compliance_reminder invoice_overdue payment_received system"`
	Title        string     `json:"title" binding:"required,max=200"`
	Message      string     `json:"message" binding:"max=2000"`
	RelatedTable string     `json:"related_table" binding:"omitempty,max=64"`
	RelatedID    *uuid.UUID `json:"related_id"`
}

// NotificationResponse represents a notification in API responses
type NotificationResponse struct {
	ID           uuid.UUID  `json:"id"`
	UserID       uuid.UUID  `json:"user_id"`
	Type         string     `json:"type"`
	Title        string     `json:"title"`
	Message      string     `json:"message"`
	RelatedTable string     `json:"related_table,omitempty"`
	RelatedID    *uuid.UUID `json:"related_id,omitempty"`
	ReadAt       *time.Time `json:"read_at"`
	ResolvedAt   *time.Time `json:"resolved_at"`
	CreatedAt    time.Time  `json:"created_at"`
}

// UnreadCountResponse carries the unread notification counter
type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

// MarkAllReadResponse reports how many notifications were marked
type MarkAllReadResponse struct {
	Marked int64 `json:"marked"`
}

// CreateWhatsAppLogRequest represents the request to record a sent message
type CreateWhatsAppLogRequest struct {
	RecipientPhone string     `json:"recipient_phone" binding:"required,max=32"`
	MessageType    string     `json:"message_type" binding:"omitempty,oneof=invoice statement reminder other"`
	Content        string     `json:"content" binding:"max=4000"`
	ClientID       *uuid.UUID `json:"client_id"`
	InvoiceID      *uuid.UUID `json:"invoice_id"`
}

// UpdateWhatsAppStatusRequest is the provider status callback payload
type UpdateWhatsAppStatusRequest struct {
	Status       string `json:"status" binding:"required,oneof=queued sent delivered read failed"`
	ErrorMessage string `json:"error_message" binding:"omitempty,max=1000"`
}

// WhatsAppLogResponse represents a WhatsApp log in API responses
type WhatsAppLogResponse struct {
	ID             uuid.UUID  `json:"id"`
	ClientID       *uuid.UUID `json:"client_id,omitempty"`
	InvoiceID      *uuid.UUID `json:"invoice_id,omitempty"`
	RecipientPhone string     `json:"recipient_phone"`
	MessageType    string     `json:"message_type"`
	Content        string     `json:"content"`
	Status         string     `json:"status"`
	SentBy         *uuid.UUID `json:"sent_by,omitempty"`
	SentAt         time.Time  `json:"sent_at"`
	DeliveredAt    *time.Time `json:"delivered_at"`
	ReadAt         *time.Time `json:"read_at"`
	ErrorMessage   string     `json:"error_message,omitempty"`
}

// ToNotificationResponse converts a domain notification to a response DTO
func ToNotificationResponse(n *comms.Notification) NotificationResponse {
	return NotificationResponse{
		ID:           n.ID,
		UserID:       n.UserID,
		Type:         string(n.Type),
		Title:        n.Title,
		Message:      n.Message,
		RelatedTable: n.RelatedTable,
		RelatedID:    n.RelatedID,
		ReadAt:       n.ReadAt,
		ResolvedAt:   n.ResolvedAt,
		CreatedAt:    n.CreatedAt,
	}
}

// ToWhatsAppLogResponse converts a domain log to a response DTO
func ToWhatsAppLogResponse(l *comms.WhatsAppLog) WhatsAppLogResponse {
	return WhatsAppLogResponse{
		ID:             l.ID,
		ClientID:       l.ClientID,
		InvoiceID:      l.InvoiceID,
		RecipientPhone: l.RecipientPhone,
		MessageType:    string(l.MessageType),
		Content:        l.Content,
		Status:         string(l.Status),
		SentBy:         l.SentBy,
		SentAt:         l.SentAt,
		DeliveredAt:    l.DeliveredAt,
		ReadAt:         l.ReadAt,
		ErrorMessage:   l.ErrorMessage,
	}
}
