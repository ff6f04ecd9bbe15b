package fleet

import (
	"context"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/fleet"
	"github.com/servex/backend/internal/domain/shared"
)

// DriverService handles driver roster operations
type DriverService struct {
	driverRepo     fleet.DriverRepository
	complianceRepo fleet.ComplianceRepository
}

// NewDriverService creates a new DriverService
func NewDriverService(driverRepo fleet.DriverRepository, complianceRepo fleet.ComplianceRepository) *DriverService {
	return &DriverService{
		driverRepo:     driverRepo,
		complianceRepo: complianceRepo,
	}
}

// Create registers a new driver
func (s *DriverService) Create(ctx context.Context, tenantID uuid.UUID, req CreateDriverRequest) (*DriverResponse, error) {
	d, err := fleet.NewDriver(tenantID, req.Name, req.Phone)
	if err != nil {
		return nil, err
	}
	if req.Email != "" || req.IDPassportNumber != "" || req.Nationality != "" {
		if err := d.UpdateDetails(req.Name, req.Phone, req.Email, req.IDPassportNumber, req.Nationality); err != nil {
			return nil, err
		}
	}

	if err := s.driverRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	response := ToDriverResponse(d, 0)
	return &response, nil
}

// GetByID retrieves a driver with their expired compliance item count
func (s *DriverService) GetByID(ctx context.Context, tenantID, driverID uuid.UUID) (*DriverResponse, error) {
	d, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, driverID)
	if err != nil {
		return nil, err
	}
	items, err := s.complianceRepo.FindBySubject(ctx, tenantID, fleet.SubjectDriver, driverID)
	if err != nil {
		return nil, err
	}

	response := ToDriverResponse(d, fleet.CountExpired(items, shared.Today()))
	return &response, nil
}

// List retrieves drivers with filtering. Each row carries the count of their
// expired compliance items.
func (s *DriverService) List(ctx context.Context, tenantID uuid.UUID, filter FleetListFilter) ([]DriverResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	drivers, err := s.driverRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.driverRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	expired, err := expiredCountsBySubject(ctx, s.complianceRepo, tenantID, fleet.SubjectDriver)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]DriverResponse, len(drivers))
	for i := range drivers {
		responses[i] = ToDriverResponse(&drivers[i], expired[drivers[i].ID])
	}
	return responses, total, nil
}

// Update applies a partial update to a driver
func (s *DriverService) Update(ctx context.Context, tenantID, driverID uuid.UUID, req UpdateDriverRequest) (*DriverResponse, error) {
	d, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, driverID)
	if err != nil {
		return nil, err
	}

	name := d.Name
	if req.Name != nil {
		name = *req.Name
	}
	phone := d.Phone
	if req.Phone != nil {
		phone = *req.Phone
	}
	email := d.Email
	if req.Email != nil {
		email = *req.Email
	}
	idPassport := d.IDPassportNumber
	if req.IDPassportNumber != nil {
		idPassport = *req.IDPassportNumber
	}
	nationality := d.Nationality
	if req.Nationality != nil {
		nationality = *req.Nationality
	}
	if err := d.UpdateDetails(name, phone, email, idPassport, nationality); err != nil {
		return nil, err
	}
	if req.Status != nil {
		if err := d.SetStatus(fleet.DriverStatus(*req.Status)); err != nil {
			return nil, err
		}
	}

	if err := s.driverRepo.Save(ctx, d); err != nil {
		return nil, err
	}
	response := ToDriverResponse(d, 0)
	return &response, nil
}

// Delete removes a driver and all compliance items tracked against them
func (s *DriverService) Delete(ctx context.Context, tenantID, driverID uuid.UUID) error {
	if _, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, driverID); err != nil {
		return err
	}
	if err := s.complianceRepo.DeleteBySubject(ctx, tenantID, fleet.SubjectDriver, driverID); err != nil {
		return err
	}
	return s.driverRepo.DeleteForTenant(ctx, tenantID, driverID)
}
