package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/servex/backend/internal/application/comms"
)

// CommsHandler handles notification and WhatsApp log endpoints
type CommsHandler struct {
	BaseHandler
	notificationService *comms.NotificationService
	whatsappService     *comms.WhatsAppLogService
}

// NewCommsHandler creates a new comms handler
func NewCommsHandler(notificationService *comms.NotificationService, whatsappService *comms.WhatsAppLogService) *CommsHandler {
	return &CommsHandler{
		notificationService: notificationService,
		whatsappService:     whatsappService,
	}
}

// ListNotifications returns notifications for the acting user
func (h *CommsHandler) ListNotifications(c *gin.Context) {
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

	unreadOnly := c.Query("unread") == "true"

	notifications, err := h.notificationService.List(c.Request.Context(), tenantID, actor, unreadOnly)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, notifications)
}

// UnreadCount returns the unread notification count for the acting user
func (h *CommsHandler) UnreadCount(c *gin.Context) {
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

	count, err := h.notificationService.UnreadCount(c.Request.Context(), tenantID, actor)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, count)
}

// CreateNotification creates a notification
func (h *CommsHandler) CreateNotification(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req comms.CreateNotificationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	notification, err := h.notificationService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, notification)
}

// MarkNotificationRead marks a single notification as read
func (h *CommsHandler) MarkNotificationRead(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	notification, err := h.notificationService.MarkRead(c.Request.Context(), tenantID, actor, notificationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, notification)
}

// MarkAllNotificationsRead marks every unread notification as read
func (h *CommsHandler) MarkAllNotificationsRead(c *gin.Context) {
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

	result, err := h.notificationService.MarkAllRead(c.Request.Context(), tenantID, actor)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// ResolveNotification marks an actionable notification as resolved
func (h *CommsHandler) ResolveNotification(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	notificationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid notification ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	notification, err := h.notificationService.Resolve(c.Request.Context(), tenantID, actor, notificationID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, notification)
}

// ListWhatsAppLogs returns WhatsApp send attempts, optionally for one invoice
func (h *CommsHandler) ListWhatsAppLogs(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var invoiceID *uuid.UUID
	if raw := c.Query("invoice_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid invoice ID")
			return
		}
		invoiceID = &id
	}

	logs, err := h.whatsappService.List(c.Request.Context(), tenantID, invoiceID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, logs)
}

// CreateWhatsAppLog records an outbound WhatsApp message attempt
func (h *CommsHandler) CreateWhatsAppLog(c *gin.Context) {
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

	var req comms.CreateWhatsAppLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	log, err := h.whatsappService.Create(c.Request.Context(), tenantID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, log)
}

// UpdateWhatsAppStatus advances the delivery status of a logged message
func (h *CommsHandler) UpdateWhatsAppStatus(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	logID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid log ID")
		return
	}

	var req comms.UpdateWhatsAppStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	log, err := h.whatsappService.UpdateStatus(c.Request.Context(), tenantID, logID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, log)
}
