package fleet

import (
	"context"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/fleet"
	"github.com/servex/backend/internal/domain/shared"
)

// VehicleService handles vehicle fleet operations
type VehicleService struct {
	vehicleRepo    fleet.VehicleRepository
	complianceRepo fleet.ComplianceRepository
}

// NewVehicleService creates a new VehicleService
func NewVehicleService(vehicleRepo fleet.VehicleRepository, complianceRepo fleet.ComplianceRepository) *VehicleService {
	return &VehicleService{
		vehicleRepo:    vehicleRepo,
		complianceRepo: complianceRepo,
	}
}

// Create registers a new vehicle
func (s *VehicleService) Create(ctx context.Context, tenantID uuid.UUID, req CreateVehicleRequest) (*VehicleResponse, error) {
	v, err := fleet.NewVehicle(tenantID, req.Name, req.RegistrationNumber)
	if err != nil {
		return nil, err
	}
	if req.VIN != "" || req.Make != "" || req.Model != "" || req.Year != 0 || req.MaxWeightKg != nil || req.MaxVolumeCbm != nil {
		if err := v.UpdateDetails(req.Name, req.RegistrationNumber, req.VIN, req.Make, req.Model, req.Year, req.MaxWeightKg, req.MaxVolumeCbm); err != nil {
			return nil, err
		}
	}

	if err := s.vehicleRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	response := ToVehicleResponse(v, 0)
	return &response, nil
}

// GetByID retrieves a vehicle with its expired compliance item count
func (s *VehicleService) GetByID(ctx context.Context, tenantID, vehicleID uuid.UUID) (*VehicleResponse, error) {
	v, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, vehicleID)
	if err != nil {
		return nil, err
	}
	items, err := s.complianceRepo.FindBySubject(ctx, tenantID, fleet.SubjectVehicle, vehicleID)
	if err != nil {
		return nil, err
	}

	response := ToVehicleResponse(v, fleet.CountExpired(items, shared.Today()))
	return &response, nil
}

// List retrieves vehicles with filtering. Each row carries the count of its
// expired compliance items.
func (s *VehicleService) List(ctx context.Context, tenantID uuid.UUID, filter FleetListFilter) ([]VehicleResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	vehicles, err := s.vehicleRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.vehicleRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	expired, err := expiredCountsBySubject(ctx, s.complianceRepo, tenantID, fleet.SubjectVehicle)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]VehicleResponse, len(vehicles))
	for i := range vehicles {
		responses[i] = ToVehicleResponse(&vehicles[i], expired[vehicles[i].ID])
	}
	return responses, total, nil
}

// Update applies a partial update to a vehicle
func (s *VehicleService) Update(ctx context.Context, tenantID, vehicleID uuid.UUID, req UpdateVehicleRequest) (*VehicleResponse, error) {
	v, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, vehicleID)
	if err != nil {
		return nil, err
	}

	name := v.Name
	if req.Name != nil {
		name = *req.Name
	}
	registration := v.RegistrationNumber
	if req.RegistrationNumber != nil {
		registration = *req.RegistrationNumber
	}
	vin := v.VIN
	if req.VIN != nil {
		vin = *req.VIN
	}
	vehicleMake := v.Make
	if req.Make != nil {
		vehicleMake = *req.Make
	}
	model := v.Model
	if req.Model != nil {
		model = *req.Model
	}
	year := v.Year
	if req.Year != nil {
		year = *req.Year
	}
	maxWeight := v.MaxWeightKg
	if req.MaxWeightKg != nil {
		maxWeight = req.MaxWeightKg
	}
	maxVolume := v.MaxVolumeCbm
	if req.MaxVolumeCbm != nil {
		maxVolume = req.MaxVolumeCbm
	}
	if err := v.UpdateDetails(name, registration, vin, vehicleMake, model, year, maxWeight, maxVolume); err != nil {
		return nil, err
	}
	if req.Status != nil {
		if err := v.SetStatus(fleet.VehicleStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.vehicleRepo.Save(ctx, v); err != nil {
		return nil, err
	}
	response := ToVehicleResponse(v, 0)
	return &response, nil
}

// Delete removes a vehicle and all compliance items tracked against it
func (s *VehicleService) Delete(ctx context.Context, tenantID, vehicleID uuid.UUID) error {
	if _, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, vehicleID); err != nil {
		return err
	}
	if err := s.complianceRepo.DeleteBySubject(ctx, tenantID, fleet.SubjectVehicle, vehicleID); err != nil {
		return err
	}
	return s.vehicleRepo.DeleteForTenant(ctx, tenantID, vehicleID)
}

func expiredCountsBySubject(ctx context.Context, repo fleet.ComplianceRepository, tenantID uuid.UUID, subjectType fleet.ComplianceSubject) (map[uuid.UUID]int, error) {
	items, err := repo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	today := shared.Today()
	counts := make(map[uuid.UUID]int)
	for i := range items {
		if items[i].SubjectType == subjectType && items[i].IsExpired(today) {
			counts[items[i].SubjectID]++
		}
	}
	return counts, nil
}

func toDomainFilter(filter FleetListFilter) shared.Filter {
	f := shared.DefaultFilter()
	if filter.Page > 0 {
		f.Page = filter.Page
	}
	if filter.PageSize > 0 {
		f.PageSize = filter.PageSize
	}
	if filter.OrderBy != "" {
		f.OrderBy = filter.OrderBy
	}
	if filter.OrderDir != "" {
		f.OrderDir = filter.OrderDir
	}
	f.Search = filter.Search
	if filter.Status != "" {
		f.Filters = map[string]interface{}{"status": filter.Status}
	}
	return f
}
