package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/servex/backend/internal/application/reporting"
)

// ReportHandler handles read-only reporting endpoints
type ReportHandler struct {
	BaseHandler
	financeService *reporting.FinanceReportService
	tripService    *reporting.TripReportService
}

// NewReportHandler creates a new report handler
func NewReportHandler(financeService *reporting.FinanceReportService, tripService *reporting.TripReportService) *ReportHandler {
	return &ReportHandler{
		financeService: financeService,
		tripService:    tripService,
	}
}

// ClientStatements returns per-client invoiced, paid, and balance totals
func (h *ReportHandler) ClientStatements(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	statements, err := h.financeService.ClientStatements(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, statements)
}

// StatementInvoices returns the invoice rows behind a client statement
func (h *ReportHandler) StatementInvoices(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	clientID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid client ID")
		return
	}

	rows, err := h.financeService.StatementInvoices(c.Request.Context(), tenantID, clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rows)
}

// OverdueInvoices returns unpaid invoices past their due date
func (h *ReportHandler) OverdueInvoices(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	overdue, err := h.financeService.OverdueInvoices(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, overdue)
}

// FinancialSummary returns tenant-wide revenue and collection totals
func (h *ReportHandler) FinancialSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	summary, err := h.financeService.FinancialSummary(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// DashboardStats returns the landing page counters and recent activity
func (h *ReportHandler) DashboardStats(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	stats, err := h.financeService.DashboardStats(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, stats)
}

// TripSummary returns aggregate stats for a single trip
func (h *ReportHandler) TripSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid trip ID")
		return
	}

	summary, err := h.tripService.Summary(c.Request.Context(), tenantID, tripID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// TripsWithStats returns trips annotated with shipment and piece counts
func (h *ReportHandler) TripsWithStats(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	trips, err := h.tripService.ListWithStats(c.Request.Context(), tenantID, c.Query("status"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, trips)
}

// TripParcels returns the per-piece manifest for a trip
func (h *ReportHandler) TripParcels(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid trip ID")
		return
	}

	parcels, err := h.tripService.Parcels(c.Request.Context(), tenantID, tripID, c.Query("loaded"))
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, parcels)
}

// TripClientsSummary groups a trip's shipments and invoices by client
func (h *ReportHandler) TripClientsSummary(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid trip ID")
		return
	}

	summary, err := h.tripService.ClientsSummary(c.Request.Context(), tenantID, tripID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, summary)
}

// TripWorksheet returns the printable loading worksheet for a trip
func (h *ReportHandler) TripWorksheet(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tripID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid trip ID")
		return
	}

	worksheet, err := h.tripService.Worksheet(c.Request.Context(), tenantID, tripID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, worksheet)
}
