package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// CommonSortFields contains fields common to most entities
var CommonSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
}

// ClientSortFields contains allowed sort fields for clients
var ClientSortFields = map[string]bool{
	"id":                 true,
	"created_at":         true,
	"updated_at":         true,
	"name":               true,
	"phone":              true,
	"email":              true,
	"status":             true,
	"credit_limit":       true,
	"payment_terms_days": true,
}

// ShipmentSortFields contains allowed sort fields for shipments
var ShipmentSortFields = map[string]bool{
	"id":           true,
	"created_at":   true,
	"updated_at":   true,
	"description":  true,
	"destination":  true,
	"status":       true,
	"total_pieces": true,
	"total_weight": true,
	"total_cbm":    true,
}

// TripSortFields contains allowed sort fields for trips
var TripSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"trip_number":    true,
	"departure_date": true,
	"status":         true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":             true,
	"created_at":     true,
	"updated_at":     true,
	"invoice_number": true,
	"issue_date":     true,
	"due_date":       true,
	"total":          true,
	"status":         true,
}

// VehicleSortFields contains allowed sort fields for vehicles
var VehicleSortFields = map[string]bool{
	"id":                  true,
	"created_at":          true,
	"updated_at":          true,
	"name":                true,
	"registration_number": true,
	"make":                true,
	"model":               true,
	"year":                true,
	"status":              true,
}

// DriverSortFields contains allowed sort fields for drivers
var DriverSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"name":        true,
	"phone":       true,
	"nationality": true,
	"status":      true,
}

// AuditLogSortFields contains allowed sort fields for audit logs
var AuditLogSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"table_name": true,
	"action":     true,
}
