package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/servex/backend/internal/application/billing"
)

// InvoiceHandler handles invoice and line item endpoints
type InvoiceHandler struct {
	BaseHandler
	invoiceService *billing.InvoiceService
}

// NewInvoiceHandler creates a new invoice handler
func NewInvoiceHandler(invoiceService *billing.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// EmailSentRequest records the recipient of a sent invoice email
type EmailSentRequest struct {
	To string `json:"to" binding:"required,email"`
}

// Create creates a new invoice
func (h *InvoiceHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	var req billing.CreateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	invoice, err := h.invoiceService.Create(c.Request.Context(), tenantID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, invoice)
}

// List returns a paginated list of invoices
func (h *InvoiceHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter billing.InvoiceListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, invoices, total, filter.Page, filter.PageSize)
}

// GetByID returns a single invoice with derived balance
func (h *InvoiceHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	invoice, err := h.invoiceService.GetByID(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Update updates invoice amounts, due date, or status
func (h *InvoiceHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	var req billing.UpdateInvoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), tenantID, invoiceID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}

// Delete deletes an invoice and its line items
func (h *InvoiceHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	if err := h.invoiceService.Delete(c.Request.Context(), tenantID, invoiceID, actor); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddLineItem appends a manual line item to an invoice
func (h *InvoiceHandler) AddLineItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	var req billing.CreateLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.invoiceService.AddLineItem(c.Request.Context(), tenantID, invoiceID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// ListLineItems returns all line items on an invoice
func (h *InvoiceHandler) ListLineItems(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	items, err := h.invoiceService.ListLineItems(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// RemoveLineItem removes a line item and recomputes the invoice subtotal
func (h *InvoiceHandler) RemoveLineItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	itemID, err := uuid.Parse(c.Param("itemId"))
	if err != nil {
		h.BadRequest(c, "Invalid line item ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	if err := h.invoiceService.RemoveLineItem(c.Request.Context(), tenantID, invoiceID, itemID, actor); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// MarkEmailSent records that the invoice was emailed to the client
func (h *InvoiceHandler) MarkEmailSent(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	invoiceID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid invoice ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	var req EmailSentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	invoice, err := h.invoiceService.MarkEmailSent(c.Request.Context(), tenantID, invoiceID, actor, req.To)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, invoice)
}
