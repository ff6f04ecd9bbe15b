package fleet

import (
	"context"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/shared"
)

// VehicleRepository defines persistence operations for vehicles
type VehicleRepository interface {
	shared.TenantReader[Vehicle]
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]Vehicle, error)
	Save(ctx context.Context, v *Vehicle) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// DriverRepository defines persistence operations for drivers
type DriverRepository interface {
	shared.TenantReader[Driver]
	FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]Driver, error)
	Save(ctx context.Context, d *Driver) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
}

// ComplianceRepository defines persistence operations for compliance items
type ComplianceRepository interface {
	FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*ComplianceItem, error)
	FindBySubject(ctx context.Context, tenantID uuid.UUID, subjectType ComplianceSubject, subjectID uuid.UUID) ([]ComplianceItem, error)
	FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]ComplianceItem, error)
	Save(ctx context.Context, item *ComplianceItem) error
	DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error
	DeleteBySubject(ctx context.Context, tenantID uuid.UUID, subjectType ComplianceSubject, subjectID uuid.UUID) error
}
