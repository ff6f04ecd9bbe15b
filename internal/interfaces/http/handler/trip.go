package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/servex/backend/internal/application/billing"
	"github.com/servex/backend/internal/application/trip"
)

// TripHandler handles trip, expense, and invoice generation endpoints
type TripHandler struct {
	BaseHandler
	tripService       *trip.Service
	expenseService    *trip.ExpenseService
	generationService *billing.GenerationService
}

// NewTripHandler creates a new trip handler
func NewTripHandler(tripService *trip.Service, expenseService *trip.ExpenseService, generationService *billing.GenerationService) *TripHandler {
	return &TripHandler{
		tripService:       tripService,
		expenseService:    expenseService,
		generationService: generationService,
	}
}

// Create creates a new trip
func (h *TripHandler) Create(c *gin.Context) {
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

	var req trip.CreateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	t, err := h.tripService.Create(c.Request.Context(), tenantID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, t)
}

// List returns a paginated list of trips
func (h *TripHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter trip.TripListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	trips, total, err := h.tripService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, trips, total, filter.Page, filter.PageSize)
}

// GetByID returns a trip with its expenses and totals
func (h *TripHandler) GetByID(c *gin.Context) {
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

	t, err := h.tripService.GetByID(c.Request.Context(), tenantID, tripID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, t)
}

// Update updates a trip
func (h *TripHandler) Update(c *gin.Context) {
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

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	var req trip.UpdateTripRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	t, err := h.tripService.Update(c.Request.Context(), tenantID, tripID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, t)
}

// Close closes a trip, locking it against further edits
func (h *TripHandler) Close(c *gin.Context) {
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

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	t, err := h.tripService.Close(c.Request.Context(), tenantID, tripID, actor)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, t)
}

// Delete deletes a trip, unassigning its shipments first
func (h *TripHandler) Delete(c *gin.Context) {
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

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	if err := h.tripService.Delete(c.Request.Context(), tenantID, tripID, actor); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Duplicate creates a new planned trip copied from an existing one
func (h *TripHandler) Duplicate(c *gin.Context) {
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

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	t, err := h.tripService.Duplicate(c.Request.Context(), tenantID, tripID, actor)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, t)
}

// NextNumber suggests the next sequential trip number
func (h *TripHandler) NextNumber(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	number, err := h.tripService.NextNumber(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, NextNumberData{TripNumber: number})
}

// CreateExpense records an expense against a trip
func (h *TripHandler) CreateExpense(c *gin.Context) {
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

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	var req trip.CreateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	expense, err := h.expenseService.Create(c.Request.Context(), tenantID, tripID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, expense)
}

// ListExpenses returns all expenses for a trip
func (h *TripHandler) ListExpenses(c *gin.Context) {
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

	expenses, err := h.expenseService.ListByTrip(c.Request.Context(), tenantID, tripID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expenses)
}

// UpdateExpense updates a trip expense
func (h *TripHandler) UpdateExpense(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	expenseID, err := uuid.Parse(c.Param("expenseId"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	var req trip.UpdateExpenseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	expense, err := h.expenseService.Update(c.Request.Context(), tenantID, expenseID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, expense)
}

// DeleteExpense removes a trip expense
func (h *TripHandler) DeleteExpense(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	expenseID, err := uuid.Parse(c.Param("expenseId"))
	if err != nil {
		h.BadRequest(c, "Invalid expense ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	if err := h.expenseService.Delete(c.Request.Context(), tenantID, expenseID, actor); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// GenerateInvoices creates one invoice per client for a trip's shipments
func (h *TripHandler) GenerateInvoices(c *gin.Context) {
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

	result, err := h.generationService.GenerateForTrip(c.Request.Context(), tenantID, tripID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}
