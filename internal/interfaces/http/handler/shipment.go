package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/servex/backend/internal/application/freight"
)

// ShipmentHandler handles shipment, piece, and trip assignment endpoints
type ShipmentHandler struct {
	BaseHandler
	shipmentService   *freight.ShipmentService
	assignmentService *freight.AssignmentService
}

// NewShipmentHandler creates a new shipment handler
func NewShipmentHandler(shipmentService *freight.ShipmentService, assignmentService *freight.AssignmentService) *ShipmentHandler {
	return &ShipmentHandler{
		shipmentService:   shipmentService,
		assignmentService: assignmentService,
	}
}

// ScanRequest carries a scanned piece barcode
type ScanRequest struct {
	Barcode string `json:"barcode" binding:"required"`
}

// Create creates a new shipment with its pieces
func (h *ShipmentHandler) Create(c *gin.Context) {
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

	var req freight.CreateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shipment, err := h.shipmentService.Create(c.Request.Context(), tenantID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, shipment)
}

// List returns a paginated list of shipments
func (h *ShipmentHandler) List(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter freight.ShipmentListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	shipments, total, err := h.shipmentService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, shipments, total, filter.Page, filter.PageSize)
}

// GetByID returns a single shipment with its pieces
func (h *ShipmentHandler) GetByID(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	shipment, err := h.shipmentService.GetByID(c.Request.Context(), tenantID, shipmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, shipment)
}

// Update updates a shipment
func (h *ShipmentHandler) Update(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	var req freight.UpdateShipmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	shipment, err := h.shipmentService.Update(c.Request.Context(), tenantID, shipmentID, actor, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, shipment)
}

// Delete deletes a shipment and its pieces
func (h *ShipmentHandler) Delete(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	shipmentID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	if err := h.shipmentService.Delete(c.Request.Context(), tenantID, shipmentID, actor); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// Scan looks up a piece by barcode along with its shipment and client
func (h *ShipmentHandler) Scan(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	result, err := h.shipmentService.ScanBarcode(c.Request.Context(), tenantID, req.Barcode)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, result)
}

// MarkLoaded marks a scanned piece as loaded
func (h *ShipmentHandler) MarkLoaded(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req ScanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	piece, err := h.shipmentService.MarkPieceLoaded(c.Request.Context(), tenantID, req.Barcode)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, piece)
}

// Assign attaches a shipment to a trip
func (h *ShipmentHandler) Assign(c *gin.Context) {
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

	shipmentID, err := uuid.Parse(c.Param("shipmentId"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	shipment, err := h.assignmentService.Assign(c.Request.Context(), tenantID, actor, tripID, shipmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, shipment)
}

// Unassign detaches a shipment from a trip
func (h *ShipmentHandler) Unassign(c *gin.Context) {
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

	shipmentID, err := uuid.Parse(c.Param("shipmentId"))
	if err != nil {
		h.BadRequest(c, "Invalid shipment ID")
		return
	}

	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "User identity required")
		return
	}

	shipment, err := h.assignmentService.Unassign(c.Request.Context(), tenantID, actor, tripID, shipmentID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, shipment)
}
