// Package tenant provides multi-tenant database scoping for GORM.
//
// Repositories filter by tenant_id explicitly; this package adds a second
// line of defence. TenantDB scopes queries to the tenant carried in the
// request context, and the callback in guard.go refuses tenant-table
// queries that carry no tenant condition at all.
package tenant

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex/backend/internal/infrastructure/logger"
)

// ErrTenantIDRequired is returned when tenant_id is required but not found
var ErrTenantIDRequired = errors.New("tenant_id is required but not found in context")

// ErrInvalidTenantID is returned when tenant_id format is invalid
var ErrInvalidTenantID = errors.New("invalid tenant_id format")

// TenantScope applies tenant filtering to GORM queries
func TenantScope(tenantID uuid.UUID) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// TenantScopeString applies tenant filtering using string tenant ID
func TenantScopeString(tenantID string) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// TenantDB wraps GORM DB with automatic tenant scoping
type TenantDB struct {
	db       *gorm.DB
	required bool
}

// NewTenantDB creates a new TenantDB that requires a tenant in context
func NewTenantDB(db *gorm.DB) *TenantDB {
	return &TenantDB{db: db, required: true}
}

// DB returns the underlying GORM DB without tenant scoping.
// Use with caution, this bypasses tenant isolation.
func (t *TenantDB) DB() *gorm.DB {
	return t.db
}

// WithContext returns a GORM DB scoped to the tenant from context.
// The tenant ID is set by the tenant middleware. When it is missing
// and required, the returned DB errors on any operation.
func (t *TenantDB) WithContext(ctx context.Context) *gorm.DB {
	tenantID := logger.GetTenantID(ctx)

	if tenantID == "" {
		db := t.db.WithContext(ctx)
		if t.required {
			_ = db.AddError(ErrTenantIDRequired)
		}
		return db
	}

	if _, err := uuid.Parse(tenantID); err != nil {
		db := t.db.WithContext(ctx)
		_ = db.AddError(ErrInvalidTenantID)
		return db
	}

	return t.db.WithContext(ctx).Scopes(TenantScopeString(tenantID))
}

// WithTenant returns a GORM DB scoped to a specific tenant ID.
// Use this when you have the tenant ID directly rather than from context.
func (t *TenantDB) WithTenant(tenantID uuid.UUID) *gorm.DB {
	if tenantID == uuid.Nil {
		db := t.db
		if t.required {
			_ = db.AddError(ErrTenantIDRequired)
		}
		return db
	}
	return t.db.Scopes(TenantScope(tenantID))
}

// Transaction executes a function within a database transaction with tenant scope
func (t *TenantDB) Transaction(ctx context.Context, fn func(tx *gorm.DB) error) error {
	tenantID := logger.GetTenantID(ctx)

	if tenantID == "" && t.required {
		return ErrTenantIDRequired
	}

	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if tenantID != "" {
			tx = tx.Scopes(TenantScopeString(tenantID))
		}
		return fn(tx)
	})
}
