package comms

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/shared"
)

// NotificationType classifies what a notification is about
type NotificationType string

const (
	NotificationComplianceReminder NotificationType = "compliance_reminder"
	NotificationInvoiceOverdue     NotificationType = "invoice_overdue"
	NotificationPaymentReceived    NotificationType = "payment_received"
	NotificationSystem             NotificationType = "system"
)

// IsValid checks if the type is a valid NotificationType
func (t NotificationType) IsValid() bool {
	switch t {
	case NotificationComplianceReminder, NotificationInvoiceOverdue,
		NotificationPaymentReceived, NotificationSystem:
		return true
	}
	return false
}

// Notification is an in-app message addressed to one user. Read and resolved
// are separate marks: a reminder stays actionable until someone resolves it.
type Notification struct {
	shared.BaseEntity
	TenantID     uuid.UUID        `json:"tenant_id"`
	UserID       uuid.UUID        `json:"user_id"`
	Type         NotificationType `json:"type"`
	Title        string           `json:"title"`
	Message      string           `json:"message"`
	RelatedTable string           `json:"related_table"`
	RelatedID    *uuid.UUID       `json:"related_id"`
	ReadAt       *time.Time       `json:"read_at"`
	ResolvedAt   *time.Time       `json:"resolved_at"`
}

// NewNotification creates an unread notification for a user
func NewNotification(tenantID, userID uuid.UUID, ntype NotificationType, title, message string) (*Notification, error) {
	if userID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_USER", "Notification user ID cannot be empty")
	}
	if !ntype.IsValid() {
		return nil, shared.NewDomainError("INVALID_TYPE", "Notification type is not valid")
	}
	title = strings.TrimSpace(title)
	if title == "" {
		return nil, shared.NewDomainError("INVALID_TITLE", "Notification title cannot be empty")
	}

	return &Notification{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		UserID:     userID,
		Type:       ntype,
		Title:      title,
		Message:    strings.TrimSpace(message),
	}, nil
}

// Relate links the notification to the record it is about
func (n *Notification) Relate(tableName string, recordID uuid.UUID) {
	n.RelatedTable = tableName
	n.RelatedID = &recordID
}

// IsRead reports whether the notification has been read
func (n *Notification) IsRead() bool {
	return n.ReadAt != nil
}

// MarkRead stamps the read time once
func (n *Notification) MarkRead() {
	if n.ReadAt == nil {
		now := time.Now()
		n.ReadAt = &now
	}
	n.Touch()
}

// Resolve closes the notification out. Resolving implies reading.
func (n *Notification) Resolve() {
	now := time.Now()
	if n.ReadAt == nil {
		n.ReadAt = &now
	}
	n.ResolvedAt = &now
	n.UpdatedAt = now
}

// NotificationRepository defines persistence operations for notifications.
// All reads are scoped to the recipient as well as the tenant.
type NotificationRepository interface {
	FindByIDForUser(ctx context.Context, tenantID, userID, id uuid.UUID) (*Notification, error)
	FindForUser(ctx context.Context, tenantID, userID uuid.UUID, unreadOnly bool) ([]Notification, error)
	CountUnread(ctx context.Context, tenantID, userID uuid.UUID) (int64, error)
	MarkAllRead(ctx context.Context, tenantID, userID uuid.UUID) (int64, error)
	Save(ctx context.Context, n *Notification) error
}
