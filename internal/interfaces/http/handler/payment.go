package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/servex/backend/internal/application/billing"
)

// PaymentHandler handles payment recording and reconciliation endpoints
type PaymentHandler struct {
	BaseHandler
	paymentService *billing.PaymentService
}

// NewPaymentHandler creates a new payment handler
func NewPaymentHandler(paymentService *billing.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// Record records a payment against an invoice
func (h *PaymentHandler) Record(c *gin.Context) {
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

	var req billing.RecordPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	payment, err := h.paymentService.Record(c.Request.Context(), tenantID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, payment)
}

// ListByInvoice returns all payments applied to an invoice
func (h *PaymentHandler) ListByInvoice(c *gin.Context) {
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

	payments, err := h.paymentService.ListByInvoice(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}

// ListByClient returns all payments received from a client
func (h *PaymentHandler) ListByClient(c *gin.Context) {
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

	payments, err := h.paymentService.ListByClient(c.Request.Context(), tenantID, clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, payments)
}

// Delete removes a payment, reopening the invoice balance
func (h *PaymentHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	paymentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid payment ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	if err := h.paymentService.Delete(c.Request.Context(), tenantID, paymentID, actor); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}
