package persistence

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex/backend/internal/domain/audit"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/infrastructure/persistence/models"
)

// GormAuditLogRepository implements audit.Repository using GORM.
// The log is append-only; there is no update or delete path.
type GormAuditLogRepository struct {
	db *gorm.DB
}

// NewGormAuditLogRepository creates a new GormAuditLogRepository
func NewGormAuditLogRepository(db *gorm.DB) *GormAuditLogRepository {
	return &GormAuditLogRepository{db: db}
}

// Save appends an audit log entry
func (r *GormAuditLogRepository) Save(ctx context.Context, l *audit.Log) error {
	model := models.AuditLogModelFromDomain(l)
	return r.db.WithContext(ctx).Create(model).Error
}

// FindByRecord finds the change history of a single record, newest first
func (r *GormAuditLogRepository) FindByRecord(ctx context.Context, tenantID uuid.UUID, tableName string, recordID uuid.UUID) ([]audit.Log, error) {
	var logModels []models.AuditLogModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND table_name = ? AND record_id = ?", tenantID, tableName, recordID).
		Order("created_at DESC").
		Find(&logModels).Error; err != nil {
		return nil, err
	}

	logs := make([]audit.Log, len(logModels))
	for i, model := range logModels {
		logs[i] = *model.ToDomain()
	}
	return logs, nil
}

// FindAllForTenant finds audit log entries for a tenant matching the filter
func (r *GormAuditLogRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]audit.Log, error) {
	var logModels []models.AuditLogModel
	query := r.applyFilter(r.db.WithContext(ctx).Model(&models.AuditLogModel{}).Where("tenant_id = ?", tenantID), filter)

	if err := query.Find(&logModels).Error; err != nil {
		return nil, err
	}

	logs := make([]audit.Log, len(logModels))
	for i, model := range logModels {
		logs[i] = *model.ToDomain()
	}
	return logs, nil
}

// CountForTenant counts audit log entries for a tenant matching the filter
func (r *GormAuditLogRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.AuditLogModel{}).Where("tenant_id = ?", tenantID)
	query = r.applyFilterWithoutPagination(query, filter)

	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *GormAuditLogRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	sortField := ValidateSortField(filter.OrderBy, AuditLogSortFields, "created_at")
	sortOrder := ValidateSortOrder(filter.OrderDir)
	query = query.Order(fmt.Sprintf("%s %s", sortField, sortOrder))

	if filter.Page > 0 && filter.PageSize > 0 {
		query = query.Offset(filter.Offset()).Limit(filter.PageSize)
	}

	return query
}

func (r *GormAuditLogRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		searchPattern := "%" + filter.Search + "%"
		query = query.Where("table_name ILIKE ?", searchPattern)
	}

	for key, value := range filter.Filters {
		switch key {
		case "action":
			query = query.Where("action = ?", value)
		case "table_name":
			query = query.Where("table_name = ?", value)
		case "user_id":
			query = query.Where("user_id = ?", value)
		case "record_id":
			query = query.Where("record_id = ?", value)
		}
	}

	return query
}

// Ensure GormAuditLogRepository implements audit.Repository
var _ audit.Repository = (*GormAuditLogRepository)(nil)
