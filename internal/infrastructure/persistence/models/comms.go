package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/comms"
)

// NotificationModel is the persistence model for the Notification domain entity.
type NotificationModel struct {
	BaseModel
	TenantID     uuid.UUID              `gorm:"type:uuid;not null;index:idx_notification_user,priority:1"`
	UserID       uuid.UUID              `gorm:"type:uuid;not null;index:idx_notification_user,priority:2"`
	Type         comms.NotificationType `gorm:"type:varchar(30);not null"`
	Title        string                 `gorm:"type:varchar(200);not null"`
	Message      string                 `gorm:"type:text"`
	RelatedTable string                 `gorm:"type:varchar(50)"`
	RelatedID    *uuid.UUID             `gorm:"type:uuid"`
	ReadAt       *time.Time
	ResolvedAt   *time.Time
}

// TableName returns the table name for GORM
func (NotificationModel) TableName() string {
	return "notifications"
}

// ToDomain converts the persistence model to a domain Notification entity.
func (m *NotificationModel) ToDomain() *comms.Notification {
	return &comms.Notification{
		BaseEntity:   m.BaseModel.ToDomain(),
		TenantID:     m.TenantID,
		UserID:       m.UserID,
		Type:         m.Type,
		Title:        m.Title,
		Message:      m.Message,
		RelatedTable: m.RelatedTable,
		RelatedID:    m.RelatedID,
		ReadAt:       m.ReadAt,
		ResolvedAt:   m.ResolvedAt,
	}
}

// FromDomain populates the persistence model from a domain Notification entity.
func (m *NotificationModel) FromDomain(n *comms.Notification) {
	m.FromDomainBaseEntity(n.BaseEntity)
	m.TenantID = n.TenantID
	m.UserID = n.UserID
	m.Type = n.Type
	m.Title = n.Title
	m.Message = n.Message
	m.RelatedTable = n.RelatedTable
	m.RelatedID = n.RelatedID
	m.ReadAt = n.ReadAt
	m.ResolvedAt = n.ResolvedAt
}

// NotificationModelFromDomain creates a new persistence model from a domain Notification entity.
func NotificationModelFromDomain(n *comms.Notification) *NotificationModel {
	m := &NotificationModel{}
	m.FromDomain(n)
	return m
}

// WhatsAppLogModel is the persistence model for the WhatsAppLog domain entity.
type WhatsAppLogModel struct {
	BaseModel
	TenantID       uuid.UUID                 `gorm:"type:uuid;not null;index"`
	ClientID       *uuid.UUID                `gorm:"type:uuid;index"`
	InvoiceID      *uuid.UUID                `gorm:"type:uuid;index"`
	RecipientPhone string                    `gorm:"type:varchar(50);not null"`
	MessageType    comms.WhatsAppMessageType `gorm:"type:varchar(30);not null"`
	Content        string                    `gorm:"type:text"`
	Status         comms.WhatsAppStatus      `gorm:"type:varchar(20);not null;default:'sent'"`
	SentBy         *uuid.UUID                `gorm:"type:uuid"`
	SentAt         time.Time                 `gorm:"not null;index"`
	DeliveredAt    *time.Time
	ReadAt         *time.Time
	ErrorMessage   string `gorm:"type:text"`
}

// TableName returns the table name for GORM
func (WhatsAppLogModel) TableName() string {
	return "whatsapp_logs"
}

// ToDomain converts the persistence model to a domain WhatsAppLog entity.
func (m *WhatsAppLogModel) ToDomain() *comms.WhatsAppLog {
	return &comms.WhatsAppLog{
		BaseEntity:     m.BaseModel.ToDomain(),
		TenantID:       m.TenantID,
		ClientID:       m.ClientID,
		InvoiceID:      m.InvoiceID,
		RecipientPhone: m.RecipientPhone,
		MessageType:    m.MessageType,
		Content:        m.Content,
		Status:         m.Status,
		SentBy:         m.SentBy,
		SentAt:         m.SentAt,
		DeliveredAt:    m.DeliveredAt,
		ReadAt:         m.ReadAt,
		ErrorMessage:   m.ErrorMessage,
	}
}

// FromDomain populates the persistence model from a domain WhatsAppLog entity.
func (m *WhatsAppLogModel) FromDomain(l *comms.WhatsAppLog) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.TenantID = l.TenantID
	m.ClientID = l.ClientID
	m.InvoiceID = l.InvoiceID
	m.RecipientPhone = l.RecipientPhone
	m.MessageType = l.MessageType
	m.Content = l.Content
	m.Status = l.Status
	m.SentBy = l.SentBy
	m.SentAt = l.SentAt
	m.DeliveredAt = l.DeliveredAt
	m.ReadAt = l.ReadAt
	m.ErrorMessage = l.ErrorMessage
}

// WhatsAppLogModelFromDomain creates a new persistence model from a domain WhatsAppLog entity.
func WhatsAppLogModelFromDomain(l *comms.WhatsAppLog) *WhatsAppLogModel {
	m := &WhatsAppLogModel{}
	m.FromDomain(l)
	return m
}
