package models

import (
	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/audit"
)

// AuditLogModel is the persistence model for the audit Log domain entity.
// Rows are append-only; there is no update or delete path.
type AuditLogModel struct {
	BaseModel
	TenantID  uuid.UUID      `gorm:"type:uuid;not null;index"`
	UserID    *uuid.UUID     `gorm:"type:uuid;index"`
	Action    audit.Action   `gorm:"type:varchar(20);not null"`
	Table     string         `gorm:"column:table_name;type:varchar(50);not null;index:idx_audit_record,priority:1"`
	RecordID  uuid.UUID      `gorm:"type:uuid;not null;index:idx_audit_record,priority:2"`
	OldValues audit.ValueMap `gorm:"type:jsonb"`
	NewValues audit.ValueMap `gorm:"type:jsonb"`
	IPAddress string         `gorm:"type:varchar(50)"`
}

// TableName returns the table name for GORM
func (AuditLogModel) TableName() string {
	return "audit_logs"
}

// ToDomain converts the persistence model to a domain Log entity.
func (m *AuditLogModel) ToDomain() *audit.Log {
	return &audit.Log{
		BaseEntity: m.BaseModel.ToDomain(),
		TenantID:   m.TenantID,
		UserID:     m.UserID,
		Action:     m.Action,
		TableName:  m.Table,
		RecordID:   m.RecordID,
		OldValues:  m.OldValues,
		NewValues:  m.NewValues,
		IPAddress:  m.IPAddress,
	}
}

// FromDomain populates the persistence model from a domain Log entity.
func (m *AuditLogModel) FromDomain(l *audit.Log) {
	m.FromDomainBaseEntity(l.BaseEntity)
	m.TenantID = l.TenantID
	m.UserID = l.UserID
	m.Action = l.Action
	m.Table = l.TableName
	m.RecordID = l.RecordID
	m.OldValues = l.OldValues
	m.NewValues = l.NewValues
	m.IPAddress = l.IPAddress
}

// AuditLogModelFromDomain creates a new persistence model from a domain Log entity.
func AuditLogModelFromDomain(l *audit.Log) *AuditLogModel {
	m := &AuditLogModel{}
	m.FromDomain(l)
	return m
}
