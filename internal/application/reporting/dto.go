package reporting

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TripStats carries the derived figures shown alongside a trip
type TripStats struct {
	TotalParcels      int             `json:"total_parcels"`
	TotalPieces       int             `json:"total_pieces,omitempty"`
	TotalWeight       decimal.Decimal `json:"total_weight"`
	TotalClients      int             `json:"total_clients"`
	InvoicedValue     decimal.Decimal `json:"invoiced_value"`
	LoadedParcels     int             `json:"loaded_parcels"`
	LoadingPercentage int             `json:"loading_percentage"`
}

// TripVehicleInfo is the vehicle enrichment on trip views
type TripVehicleInfo struct {
	ID                 uuid.UUID `json:"id"`
	Name               string    `json:"name"`
	RegistrationNumber string    `json:"registration_number"`
}

// TripDriverInfo is the driver enrichment on trip views
type TripDriverInfo struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone"`
}

// TripSummaryResponse is the single-trip summary view
type TripSummaryResponse struct {
	TripID        uuid.UUID        `json:"trip_id"`
	TripNumber    string           `json:"trip_number"`
	Status        string           `json:"status"`
	Route         []string         `json:"route"`
	DepartureDate string           `json:"departure_date"`
	Vehicle       *TripVehicleInfo `json:"vehicle"`
	Driver        *TripDriverInfo  `json:"driver"`
	Stats         TripStats        `json:"stats"`
	CreatedAt     time.Time        `json:"created_at"`
}

// TripWithStats is one row of the trips-with-stats list
type TripWithStats struct {
	TripID        uuid.UUID        `json:"trip_id"`
	TripNumber    string           `json:"trip_number"`
	Status        string           `json:"status"`
	Route         []string         `json:"route"`
	DepartureDate string           `json:"departure_date"`
	Vehicle       *TripVehicleInfo `json:"vehicle"`
	Driver        *TripDriverInfo  `json:"driver"`
	Stats         TripStats        `json:"stats"`
	CreatedAt     time.Time        `json:"created_at"`
}

// TripParcelRow is one shipment on the trip parcels view
type TripParcelRow struct {
	ShipmentID  uuid.UUID       `json:"shipment_id"`
	ClientID    uuid.UUID       `json:"client_id"`
	ClientName  string          `json:"client_name"`
	Description string          `json:"description"`
	Destination string          `json:"destination"`
	Status      string          `json:"status"`
	TotalWeight decimal.Decimal `json:"total_weight"`
	PieceCount  int             `json:"piece_count"`
	Barcodes    []string        `json:"barcodes"`
	CreatedAt   time.Time       `json:"created_at"`
}

// ClientInvoiceSummary is an invoice with its ledger-derived paid amount
type ClientInvoiceSummary struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Status        string          `json:"status"`
}

// TripClientSummary is the per-client block on the trip clients view
type TripClientSummary struct {
	ClientID    uuid.UUID              `json:"client_id"`
	ClientName  string                 `json:"client_name"`
	ClientPhone string                 `json:"client_phone"`
	ParcelCount int                    `json:"parcel_count"`
	TotalWeight decimal.Decimal        `json:"total_weight"`
	Invoices    []ClientInvoiceSummary `json:"invoices"`
}

// TripClientsTotals are the grand totals for the trip clients view
type TripClientsTotals struct {
	TotalClients  int             `json:"total_clients"`
	TotalParcels  int             `json:"total_parcels"`
	TotalWeight   decimal.Decimal `json:"total_weight"`
	TotalInvoiced decimal.Decimal `json:"total_invoiced"`
	TotalPaid     decimal.Decimal `json:"total_paid"`
}

// TripClientsSummaryResponse is the trip clients view
type TripClientsSummaryResponse struct {
	Clients []TripClientSummary `json:"clients"`
	Totals  TripClientsTotals   `json:"totals"`
}

// WorksheetRow is one invoice line on the trip worksheet
type WorksheetRow struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	ClientID      uuid.UUID       `json:"client_id"`
	ClientName    string          `json:"client_name"`
	WeightKg      decimal.Decimal `json:"weight_kg"`
	Total         decimal.Decimal `json:"total"`
	Paid          decimal.Decimal `json:"paid"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	Status        string          `json:"status"`
	DueDate       string          `json:"due_date"`
}

// WorksheetSummary carries the worksheet collection totals
type WorksheetSummary struct {
	TotalRevenue      decimal.Decimal `json:"total_revenue"`
	TotalCollected    decimal.Decimal `json:"total_collected"`
	TotalOutstanding  decimal.Decimal `json:"total_outstanding"`
	CollectionPercent decimal.Decimal `json:"collection_percent"`
	InvoicesPaid      int             `json:"invoices_paid"`
	InvoicesTotal     int             `json:"invoices_total"`
}

// WorksheetResponse is the trip worksheet view
type WorksheetResponse struct {
	TripID        uuid.UUID        `json:"trip_id"`
	TripNumber    string           `json:"trip_number"`
	Status        string           `json:"status"`
	Route         []string         `json:"route"`
	DepartureDate string           `json:"departure_date"`
	Summary       WorksheetSummary `json:"summary"`
	Invoices      []WorksheetRow   `json:"invoices"`
}

// StatementRow is one client on the statements view. TripAmounts maps trip
// numbers to that trip's outstanding amount; invoices off the listed trips
// land under "Other".
type StatementRow struct {
	ClientID         uuid.UUID                  `json:"client_id"`
	ClientName       string                     `json:"client_name"`
	ClientEmail      string                     `json:"client_email"`
	ClientPhone      string                     `json:"client_phone"`
	TotalOutstanding decimal.Decimal            `json:"total_outstanding"`
	TripAmounts      map[string]decimal.Decimal `json:"trip_amounts"`
	InvoiceCount     int                        `json:"invoice_count"`
	HasOverdue       bool                       `json:"has_overdue"`
}

// StatementsSummary carries the debtor-book totals
type StatementsSummary struct {
	TotalOutstanding decimal.Decimal `json:"total_outstanding"`
	ClientsWithDebt  int             `json:"clients_with_debt"`
	OverdueAmount    decimal.Decimal `json:"overdue_amount"`
}

// StatementsResponse is the client statements view
type StatementsResponse struct {
	Statements  []StatementRow    `json:"statements"`
	TripColumns []string          `json:"trip_columns"`
	Summary     StatementsSummary `json:"summary"`
}

// StatementInvoiceRow is one open invoice on a client's statement detail
type StatementInvoiceRow struct {
	InvoiceID     uuid.UUID       `json:"invoice_id"`
	InvoiceNumber string          `json:"invoice_number"`
	TripNumber    string          `json:"trip_number"`
	Total         decimal.Decimal `json:"total"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	Outstanding   decimal.Decimal `json:"outstanding"`
	DueDate       string          `json:"due_date"`
	Status        string          `json:"status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// OverdueRow is one invoice on the overdue list
type OverdueRow struct {
	InvoiceID      uuid.UUID       `json:"invoice_id"`
	InvoiceNumber  string          `json:"invoice_number"`
	ClientID       uuid.UUID       `json:"client_id"`
	ClientName     string          `json:"client_name"`
	ClientEmail    string          `json:"client_email"`
	ClientWhatsApp string          `json:"client_whatsapp"`
	TripNumber     string          `json:"trip_number"`
	DueDate        string          `json:"due_date"`
	DaysOverdue    int             `json:"days_overdue"`
	Total          decimal.Decimal `json:"total"`
	PaidAmount     decimal.Decimal `json:"paid_amount"`
	Outstanding    decimal.Decimal `json:"outstanding"`
}

// OverdueResponse is the overdue list with its totals
type OverdueResponse struct {
	Invoices     []OverdueRow    `json:"invoices"`
	TotalOverdue decimal.Decimal `json:"total_overdue"`
	Count        int             `json:"count"`
}

// FinancialSummaryResponse aggregates the invoice book by status
type FinancialSummaryResponse struct {
	TotalsByStatus   map[string]decimal.Decimal `json:"totals_by_status"`
	CountsByStatus   map[string]int             `json:"counts_by_status"`
	TotalOutstanding decimal.Decimal            `json:"total_outstanding"`
	TotalReceived    decimal.Decimal            `json:"total_received"`
	RecentInvoices   []ClientInvoiceSummary     `json:"recent_invoices"`
}

// RecentShipment is a dashboard row
type RecentShipment struct {
	ShipmentID  uuid.UUID       `json:"shipment_id"`
	ClientName  string          `json:"client_name"`
	Description string          `json:"description"`
	Destination string          `json:"destination"`
	Status      string          `json:"status"`
	TotalWeight decimal.Decimal `json:"total_weight"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DashboardStatsResponse is the landing-page counter block
type DashboardStatsResponse struct {
	TotalClients    int64            `json:"total_clients"`
	TotalShipments  int64            `json:"total_shipments"`
	TotalTrips      int64            `json:"total_trips"`
	ShipmentStatus  map[string]int64 `json:"shipment_status"`
	RecentShipments []RecentShipment `json:"recent_shipments"`
}
