package audit

import (
	"context"
	"database/sql/driver"
	"encoding/json"
	"errors"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/shared"
)

// Action classifies what happened to a record
type Action string

const (
	ActionCreate       Action = "create"
	ActionUpdate       Action = "update"
	ActionDelete       Action = "delete"
	ActionStatusChange Action = "status_change"
)

// IsValid checks if the action is a valid Action
func (a Action) IsValid() bool {
	switch a {
	case ActionCreate, ActionUpdate, ActionDelete, ActionStatusChange:
		return true
	}
	return false
}

// ValueMap stores a record snapshot as a JSONB column
type ValueMap map[string]interface{}

// Value implements driver.Valuer for JSONB storage
func (m ValueMap) Value() (driver.Value, error) {
	if m == nil {
		return nil, nil
	}
	return json.Marshal(m)
}

// Scan implements sql.Scanner for JSONB retrieval
func (m *ValueMap) Scan(value interface{}) error {
	if value == nil {
		*m = nil
		return nil
	}
	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return errors.New("failed to scan ValueMap: unsupported type")
	}
	if len(bytes) == 0 {
		*m = nil
		return nil
	}
	return json.Unmarshal(bytes, m)
}

// Log is an immutable record of a change made through the API
type Log struct {
	shared.BaseEntity
	TenantID  uuid.UUID  `json:"tenant_id"`
	UserID    *uuid.UUID `json:"user_id"`
	Action    Action     `json:"action"`
	TableName string     `json:"table_name"`
	RecordID  uuid.UUID  `json:"record_id"`
	OldValues ValueMap   `json:"old_values"`
	NewValues ValueMap   `json:"new_values"`
	IPAddress string     `json:"ip_address"`
}

// NewLog records a change to a row
func NewLog(tenantID uuid.UUID, userID *uuid.UUID, action Action, tableName string, recordID uuid.UUID, oldValues, newValues ValueMap, ipAddress string) (*Log, error) {
	if !action.IsValid() {
		return nil, shared.NewDomainError("INVALID_ACTION", "Audit action is not valid")
	}
	if tableName == "" {
		return nil, shared.NewDomainError("INVALID_TABLE", "Audit table name cannot be empty")
	}
	if recordID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_RECORD", "Audit record ID cannot be empty")
	}

	return &Log{
		BaseEntity: shared.NewBaseEntity(),
		TenantID:   tenantID,
		UserID:     userID,
		Action:     action,
		TableName:  tableName,
		RecordID:   recordID,
		OldValues:  oldValues,
		NewValues:  newValues,
		IPAddress:  ipAddress,
	}, nil
}

// Repository defines persistence operations for audit logs.
// Logs are append-only; there is no update or delete.
type Repository interface {
	Save(ctx context.Context, l *Log) error
	FindByRecord(ctx context.Context, tenantID uuid.UUID, tableName string, recordID uuid.UUID) ([]Log, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]Log, error)
	CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error)
}
