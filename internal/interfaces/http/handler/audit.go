package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/servex/backend/internal/application/audit"
	"github.com/servex/backend/internal/application/billing"
	"github.com/servex/backend/internal/application/freight"
	"github.com/servex/backend/internal/application/trip"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/interfaces/http/dto"
)

// AuditHandler handles audit trail endpoints
type AuditHandler struct {
	BaseHandler
	auditService    *audit.Service
	shipmentService *freight.ShipmentService
	expenseService  *trip.ExpenseService
	invoiceService  *billing.InvoiceService
}

// NewAuditHandler creates a new audit handler
func NewAuditHandler(auditService *audit.Service, shipmentService *freight.ShipmentService, expenseService *trip.ExpenseService, invoiceService *billing.InvoiceService) *AuditHandler {
	return &AuditHandler{
		auditService:    auditService,
		shipmentService: shipmentService,
		expenseService:  expenseService,
		invoiceService:  invoiceService,
	}
}

// List returns the tenant's audit trail, newest first
func (h *AuditHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	req := dto.DefaultListRequest()
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BindError(c, err)
		return
	}

	filter := shared.Filter{
		Page:     req.Page,
		PageSize: req.PageSize,
		OrderBy:  req.OrderBy,
		OrderDir: req.OrderDir,
		Search:   req.Search,
	}
	if tableName := c.Query("table_name"); tableName != "" {
		filter.Filters = map[string]interface{}{"table_name": tableName}
	}

	logs, total, err := h.auditService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, logs, total, filter.Page, filter.PageSize)
}

// History returns the audit trail for a single record
func (h *AuditHandler) History(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	tableName := c.Param("table")
	recordID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid record ID")
		return
	}

	logs, err := h.auditService.History(c.Request.Context(), tenantID, tableName, recordID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, logs)
}

// TripHistory returns the combined trail of a trip and everything on it
func (h *AuditHandler) TripHistory(c *gin.Context) {
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

	related, err := h.relatedRecords(c, tenantID, tripID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	logs, err := h.auditService.TripHistory(c.Request.Context(), tenantID, tripID, related)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, logs)
}

// relatedRecords collects the shipment, expense, and invoice IDs that
// currently hang off a trip so their trails can be merged in.
func (h *AuditHandler) relatedRecords(c *gin.Context, tenantID, tripID uuid.UUID) (map[string][]uuid.UUID, error) {
	ctx := c.Request.Context()
	related := make(map[string][]uuid.UUID)

	shipments, _, err := h.shipmentService.List(ctx, tenantID, freight.ShipmentListFilter{
		TripID:   &tripID,
		Page:     1,
		PageSize: 100,
	})
	if err != nil {
		return nil, err
	}
	for i := range shipments {
		related["shipments"] = append(related["shipments"], shipments[i].ID)
	}

	expenses, err := h.expenseService.ListByTrip(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}
	for i := range expenses {
		related["trip_expenses"] = append(related["trip_expenses"], expenses[i].ID)
	}

	invoices, _, err := h.invoiceService.List(ctx, tenantID, billing.InvoiceListFilter{
		TripID:   &tripID,
		Page:     1,
		PageSize: 100,
	})
	if err != nil {
		return nil, err
	}
	for i := range invoices {
		related["invoices"] = append(related["invoices"], invoices[i].ID)
	}

	return related, nil
}
