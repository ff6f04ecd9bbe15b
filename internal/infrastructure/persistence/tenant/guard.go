package tenant

import (
	"strings"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// guardedTables are the tenant-owned tables the callback protects.
// Tables keyed by other columns (shipment_pieces, invoice_line_items)
// are reached through their parent aggregate and are not listed.
var guardedTables = map[string]bool{
	"clients":           true,
	"client_rates":      true,
	"shipments":         true,
	"trips":             true,
	"trip_expenses":     true,
	"invoices":          true,
	"payments":          true,
	"vehicles":          true,
	"drivers":           true,
	"compliance_items":  true,
	"audit_logs":        true,
	"notifications":     true,
	"whatsapp_logs":     true,
	"currency_settings": true,
}

// Guard registers GORM callbacks that reject queries, updates and deletes
// against tenant-owned tables when no tenant_id condition is present.
// It is a tripwire for repository bugs, not the primary isolation mechanism.
type Guard struct {
	tenantColumn string
}

// NewGuard creates a tenant guard for the tenant_id column
func NewGuard() *Guard {
	return &Guard{tenantColumn: "tenant_id"}
}

// Register attaches the guard callbacks to a GORM DB
func (g *Guard) Register(db *gorm.DB) error {
	if err := db.Callback().Query().Before("gorm:query").Register("tenant:guard_query", g.check); err != nil {
		return err
	}
	if err := db.Callback().Update().Before("gorm:update").Register("tenant:guard_update", g.check); err != nil {
		return err
	}
	return db.Callback().Delete().Before("gorm:delete").Register("tenant:guard_delete", g.check)
}

func (g *Guard) check(db *gorm.DB) {
	if db.Statement.Unscoped {
		return
	}
	if !guardedTables[db.Statement.Table] {
		return
	}
	if g.hasTenantCondition(db) {
		return
	}
	_ = db.AddError(ErrTenantIDRequired)
}

// hasTenantCondition checks whether a tenant_id condition is already present
func (g *Guard) hasTenantCondition(db *gorm.DB) bool {
	if whereClause, ok := db.Statement.Clauses["WHERE"]; ok {
		if where, ok := whereClause.Expression.(clause.Where); ok {
			for _, expr := range where.Exprs {
				if g.exprContainsTenant(expr) {
					return true
				}
			}
		}
	}

	sql := db.Statement.SQL.String()
	return sql != "" && strings.Contains(sql, g.tenantColumn)
}

func (g *Guard) exprContainsTenant(expr clause.Expression) bool {
	switch e := expr.(type) {
	case clause.Eq:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == g.tenantColumn
		}
	case clause.IN:
		if col, ok := e.Column.(clause.Column); ok {
			return col.Name == g.tenantColumn
		}
	case clause.Expr:
		return strings.Contains(e.SQL, g.tenantColumn)
	case clause.NamedExpr:
		return strings.Contains(e.SQL, g.tenantColumn)
	case clause.AndConditions:
		for _, cond := range e.Exprs {
			if g.exprContainsTenant(cond) {
				return true
			}
		}
	case clause.OrConditions:
		for _, cond := range e.Exprs {
			if g.exprContainsTenant(cond) {
				return true
			}
		}
	}
	return false
}

// EnableTenantGuard registers the tenant guard callbacks on a GORM DB instance
func EnableTenantGuard(db *gorm.DB) error {
	return NewGuard().Register(db)
}
