package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/servex/backend/internal/application/fleet"
	domainfleet "github.com/servex/backend/internal/domain/fleet"
)

// FleetHandler handles vehicle, driver, and compliance endpoints
type FleetHandler struct {
	BaseHandler
	vehicleService    *fleet.VehicleService
	driverService     *fleet.DriverService
	complianceService *fleet.ComplianceService
}

// NewFleetHandler creates a new fleet handler
func NewFleetHandler(vehicleService *fleet.VehicleService, driverService *fleet.DriverService, complianceService *fleet.ComplianceService) *FleetHandler {
	return &FleetHandler{
		vehicleService:    vehicleService,
		driverService:     driverService,
		complianceService: complianceService,
	}
}

// CreateVehicle registers a new vehicle
func (h *FleetHandler) CreateVehicle(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req fleet.CreateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	vehicle, err := h.vehicleService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, vehicle)
}

// ListVehicles returns a paginated list of vehicles
func (h *FleetHandler) ListVehicles(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter fleet.FleetListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	vehicles, total, err := h.vehicleService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, vehicles, total, filter.Page, filter.PageSize)
}

// GetVehicle returns a single vehicle
func (h *FleetHandler) GetVehicle(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID")
		return
	}

	vehicle, err := h.vehicleService.GetByID(c.Request.Context(), tenantID, vehicleID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vehicle)
}

// UpdateVehicle updates a vehicle
func (h *FleetHandler) UpdateVehicle(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID")
		return
	}

	var req fleet.UpdateVehicleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	vehicle, err := h.vehicleService.Update(c.Request.Context(), tenantID, vehicleID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, vehicle)
}

// DeleteVehicle retires a vehicle and its compliance items
func (h *FleetHandler) DeleteVehicle(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	vehicleID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid vehicle ID")
		return
	}

	if err := h.vehicleService.Delete(c.Request.Context(), tenantID, vehicleID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// VehicleCompliance returns compliance items attached to a vehicle
func (h *FleetHandler) VehicleCompliance(c *gin.Context) {
	h.listCompliance(c, domainfleet.SubjectVehicle)
}

// CreateDriver registers a new driver
func (h *FleetHandler) CreateDriver(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req fleet.CreateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	driver, err := h.driverService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, driver)
}

// ListDrivers returns a paginated list of drivers
func (h *FleetHandler) ListDrivers(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var filter fleet.FleetListFilter
	if err := c.ShouldBindQuery(&filter); err != nil {
		h.BindError(c, err)
		return
	}

	drivers, total, err := h.driverService.List(c.Request.Context(), tenantID, filter)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.SuccessWithMeta(c, drivers, total, filter.Page, filter.PageSize)
}

// GetDriver returns a single driver
func (h *FleetHandler) GetDriver(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid driver ID")
		return
	}

	driver, err := h.driverService.GetByID(c.Request.Context(), tenantID, driverID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, driver)
}

// UpdateDriver updates a driver
func (h *FleetHandler) UpdateDriver(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid driver ID")
		return
	}

	var req fleet.UpdateDriverRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	driver, err := h.driverService.Update(c.Request.Context(), tenantID, driverID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, driver)
}

// DeleteDriver removes a driver and its compliance items
func (h *FleetHandler) DeleteDriver(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	driverID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid driver ID")
		return
	}

	if err := h.driverService.Delete(c.Request.Context(), tenantID, driverID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// DriverCompliance returns compliance items attached to a driver
func (h *FleetHandler) DriverCompliance(c *gin.Context) {
	h.listCompliance(c, domainfleet.SubjectDriver)
}

func (h *FleetHandler) listCompliance(c *gin.Context, subjectType domainfleet.ComplianceSubject) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	subjectID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid subject ID")
		return
	}

	items, err := h.complianceService.ListBySubject(c.Request.Context(), tenantID, subjectType, subjectID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, items)
}

// CreateComplianceItem registers an expiring document for a vehicle or driver
func (h *FleetHandler) CreateComplianceItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	var req fleet.CreateComplianceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.complianceService.Create(c.Request.Context(), tenantID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Created(c, item)
}

// UpdateComplianceItem updates a compliance item
func (h *FleetHandler) UpdateComplianceItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid compliance item ID")
		return
	}

	var req fleet.UpdateComplianceItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindError(c, err)
		return
	}

	item, err := h.complianceService.Update(c.Request.Context(), tenantID, itemID, req)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, item)
}

// DeleteComplianceItem removes a compliance item
func (h *FleetHandler) DeleteComplianceItem(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	itemID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.BadRequest(c, "Invalid compliance item ID")
		return
	}

	if err := h.complianceService.Delete(c.Request.Context(), tenantID, itemID); err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.NoContent(c)
}

// ComplianceReminders buckets expiring items by urgency
func (h *FleetHandler) ComplianceReminders(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	reminders, err := h.complianceService.Reminders(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, reminders)
}

// ComplianceBoard returns the full compliance board, most urgent first
func (h *FleetHandler) ComplianceBoard(c *gin.Context) {
	tenantID, err := getTenantID(c)
	if err != nil {
		h.BadRequest(c, "Invalid tenant ID")
		return
	}

	board, err := h.complianceService.Board(c.Request.Context(), tenantID)
	if err != nil {
		h.HandleDomainError(c, err)
		return
	}

	h.Success(c, board)
}
