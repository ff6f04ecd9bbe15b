package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/servex/backend/internal/application/partner"
)

// ClientHandler handles client and rate endpoints
type ClientHandler struct {
	BaseHandler
	clientService *partner.ClientService
}

// NewClientHandler creates a new client handler
func NewClientHandler(clientService *partner.ClientService) *ClientHandler {
	return &ClientHandler{clientService: clientService}
}

// Create creates a new client
func (h *ClientHandler) Create(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req partner.CreateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	client, err := h.clientService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, client)
}

// List returns a paginated list of clients
func (h *ClientHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter partner.ClientListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	clients, total, err := h.clientService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, clients, total, filter.Page, filter.PageSize)
}

// ListWithStats returns clients annotated with billing totals and balance
func (h *ClientHandler) ListWithStats(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter partner.ClientListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	clients, total, err := h.clientService.ListWithStats(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, clients, total, filter.Page, filter.PageSize)
}

// GetByID returns a single client
func (h *ClientHandler) GetByID(c *gin.Context) {
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

	client, err := h.clientService.GetByID(c.Request.Context(), tenantID, clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// Update updates a client
func (h *ClientHandler) Update(c *gin.Context) {
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

	var req partner.UpdateClientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	client, err := h.clientService.Update(c.Request.Context(), tenantID, clientID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, client)
}

// Delete archives a client
func (h *ClientHandler) Delete(c *gin.Context) {
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

	if err := h.clientService.Delete(c.Request.Context(), tenantID, clientID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// AddRate appends a new rate version for a client
func (h *ClientHandler) AddRate(c *gin.Context) {
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

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	var req partner.CreateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	rate, err := h.clientService.AddRate(c.Request.Context(), tenantID, clientID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, rate)
}

// RateHistory returns the full rate history for a client, newest first
func (h *ClientHandler) RateHistory(c *gin.Context) {
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

	rates, err := h.clientService.RateHistory(c.Request.Context(), tenantID, clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rates)
}

// GetCurrentRate returns the rate currently in effect for a client
func (h *ClientHandler) GetCurrentRate(c *gin.Context) {
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

	rate, err := h.clientService.GetCurrentRate(c.Request.Context(), tenantID, clientID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, rate)
}
