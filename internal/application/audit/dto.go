package audit

import (
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/audit"
)

// LogResponse represents an audit entry in API responses
type LogResponse struct {
	ID        uuid.UUID      `json:"id"`
	UserID    *uuid.UUID     `json:"user_id"`
	Action    string         `json:"action"`
	TableName string         `json:"table_name"`
	RecordID  uuid.UUID      `json:"record_id"`
	OldValues audit.ValueMap `json:"old_values"`
	NewValues audit.ValueMap `json:"new_values"`
	IPAddress string         `json:"ip_address"`
	CreatedAt time.Time      `json:"created_at"`
}

func toLogResponses(logs []audit.Log) []LogResponse {
	out := make([]LogResponse, len(logs))
	for i, l := range logs {
		out[i] = LogResponse{
			ID:        l.ID,
			UserID:    l.UserID,
			Action:    string(l.Action),
			TableName: l.TableName,
			RecordID:  l.RecordID,
			OldValues: l.OldValues,
			NewValues: l.NewValues,
			IPAddress: l.IPAddress,
			CreatedAt: l.CreatedAt,
		}
	}
	return out
}

func sortLogsNewestFirst(logs []audit.Log) {
	sort.SliceStable(logs, func(i, j int) bool {
		return logs[i].CreatedAt.After(logs[j].CreatedAt)
	})
}
