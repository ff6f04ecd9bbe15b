package audit

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/servex/backend/internal/domain/audit"
	"github.com/servex/backend/internal/domain/shared"
)

// Service records and queries the audit trail
type Service struct {
	repo   audit.Repository
	logger *zap.Logger
}

// NewService creates a new audit Service
func NewService(repo audit.Repository, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{repo: repo, logger: logger}
}

// Record writes an audit entry. Failures are logged and swallowed so a
// broken trail never fails the operation it describes.
func (s *Service) Record(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, action audit.Action, tableName string, recordID uuid.UUID, oldValues, newValues audit.ValueMap, ipAddress string) {
	entry, err := audit.NewLog(tenantID, actor.UserIDPtr(), action, tableName, recordID, oldValues, newValues, ipAddress)
	if err != nil {
		s.logger.Warn("audit entry rejected",
			zap.String("table", tableName),
			zap.String("action", string(action)),
			zap.Error(err))
		return
	}
	if err := s.repo.Save(ctx, entry); err != nil {
		s.logger.Warn("audit entry not persisted",
			zap.String("table", tableName),
			zap.String("record_id", recordID.String()),
			zap.Error(err))
	}
}

// History returns the audit trail for a single record, newest first
func (s *Service) History(ctx context.Context, tenantID uuid.UUID, tableName string, recordID uuid.UUID) ([]LogResponse, error) {
	logs, err := s.repo.FindByRecord(ctx, tenantID, tableName, recordID)
	if err != nil {
		return nil, err
	}
	return toLogResponses(logs), nil
}

// List returns the tenant's audit trail with filtering and pagination
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]LogResponse, int64, error) {
	logs, err := s.repo.FindAllForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.repo.CountForTenant(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, err
	}
	return toLogResponses(logs), total, nil
}

// TripHistory returns the combined audit trail of a trip and the records
// hanging off it: its shipments, expenses and invoices.
func (s *Service) TripHistory(ctx context.Context, tenantID, tripID uuid.UUID, related map[string][]uuid.UUID) ([]LogResponse, error) {
	out, err := s.repo.FindByRecord(ctx, tenantID, "trips", tripID)
	if err != nil {
		return nil, err
	}
	for table, ids := range related {
		for _, id := range ids {
			logs, err := s.repo.FindByRecord(ctx, tenantID, table, id)
			if err != nil {
				return nil, err
			}
			out = append(out, logs...)
		}
	}
	sortLogsNewestFirst(out)
	return toLogResponses(out), nil
}
