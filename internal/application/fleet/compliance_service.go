package fleet

import (
	"context"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/fleet"
	"github.com/servex/backend/internal/domain/shared"
)

// ComplianceService tracks dated documents against vehicles and drivers and
// serves the reminders and board views.
type ComplianceService struct {
	complianceRepo fleet.ComplianceRepository
	vehicleRepo    fleet.VehicleRepository
	driverRepo     fleet.DriverRepository
}

// NewComplianceService creates a new ComplianceService
func NewComplianceService(complianceRepo fleet.ComplianceRepository, vehicleRepo fleet.VehicleRepository, driverRepo fleet.DriverRepository) *ComplianceService {
	return &ComplianceService{
		complianceRepo: complianceRepo,
		vehicleRepo:    vehicleRepo,
		driverRepo:     driverRepo,
	}
}

// Create starts tracking a document against an existing vehicle or driver
func (s *ComplianceService) Create(ctx context.Context, tenantID uuid.UUID, req CreateComplianceItemRequest) (*ComplianceItemResponse, error) {
	subjectType := fleet.ComplianceSubject(req.SubjectType)
	subjectName, err := s.subjectName(ctx, tenantID, subjectType, req.SubjectID)
	if err != nil {
		return nil, err
	}

	item, err := fleet.NewComplianceItem(tenantID, subjectType, req.SubjectID, req.ItemType, req.ItemLabel, req.ExpiryDate, req.ReminderDaysBefore)
	if err != nil {
		return nil, err
	}
	item.Provider = req.Provider
	item.PolicyNumber = req.PolicyNumber
	item.LicenseNumber = req.LicenseNumber
	item.IssuingCountry = req.IssuingCountry

	if err := s.complianceRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	response := ToComplianceItemResponse(item, subjectName)
	return &response, nil
}

// ListBySubject returns the documents tracked against one vehicle or driver,
// soonest expiry first
func (s *ComplianceService) ListBySubject(ctx context.Context, tenantID uuid.UUID, subjectType fleet.ComplianceSubject, subjectID uuid.UUID) ([]ComplianceItemResponse, error) {
	subjectName, err := s.subjectName(ctx, tenantID, subjectType, subjectID)
	if err != nil {
		return nil, err
	}
	items, err := s.complianceRepo.FindBySubject(ctx, tenantID, subjectType, subjectID)
	if err != nil {
		return nil, err
	}
	fleet.SortByExpiry(items)

	responses := make([]ComplianceItemResponse, len(items))
	for i := range items {
		responses[i] = ToComplianceItemResponse(&items[i], subjectName)
	}
	return responses, nil
}

// Update applies a partial update to a tracked document
func (s *ComplianceService) Update(ctx context.Context, tenantID, itemID uuid.UUID, req UpdateComplianceItemRequest) (*ComplianceItemResponse, error) {
	item, err := s.complianceRepo.FindByIDForTenant(ctx, tenantID, itemID)
	if err != nil {
		return nil, err
	}

	itemType := item.ItemType
	if req.ItemType != nil {
		itemType = *req.ItemType
	}
	itemLabel := item.ItemLabel
	if req.ItemLabel != nil {
		itemLabel = *req.ItemLabel
	}
	expiryDate := item.ExpiryDate
	if req.ExpiryDate != nil {
		expiryDate = *req.ExpiryDate
	}
	reminderDays := item.ReminderDaysBefore
	if req.ReminderDaysBefore != nil {
		reminderDays = *req.ReminderDaysBefore
	}
	if err := item.Update(itemType, itemLabel, expiryDate, reminderDays); err != nil {
		return nil, err
	}
	if req.Provider != nil {
		item.Provider = *req.Provider
	}
	if req.PolicyNumber != nil {
		item.PolicyNumber = *req.PolicyNumber
	}
	if req.LicenseNumber != nil {
		item.LicenseNumber = *req.LicenseNumber
	}
	if req.IssuingCountry != nil {
		item.IssuingCountry = *req.IssuingCountry
	}

	if err := s.complianceRepo.Save(ctx, item); err != nil {
		return nil, err
	}
	subjectName, _ := s.subjectName(ctx, tenantID, item.SubjectType, item.SubjectID)
	response := ToComplianceItemResponse(item, subjectName)
	return &response, nil
}

// Delete stops tracking a document
func (s *ComplianceService) Delete(ctx context.Context, tenantID, itemID uuid.UUID) error {
	if _, err := s.complianceRepo.FindByIDForTenant(ctx, tenantID, itemID); err != nil {
		return err
	}
	return s.complianceRepo.DeleteForTenant(ctx, tenantID, itemID)
}

// Reminders builds the reminders view: only items inside their reminder
// window, bucketed by urgency, soonest expiry first within each bucket.
func (s *ComplianceService) Reminders(ctx context.Context, tenantID uuid.UUID) (*RemindersResponse, error) {
	items, err := s.complianceRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	names, err := s.subjectNames(ctx, tenantID, items)
	if err != nil {
		return nil, err
	}

	fleet.SortByExpiry(items)
	today := shared.Today()

	response := &RemindersResponse{
		Overdue:      []ReminderItem{},
		DueThisWeek:  []ReminderItem{},
		DueThisMonth: []ReminderItem{},
		Upcoming:     []ReminderItem{},
	}
	for i := range items {
		item := &items[i]
		if !item.InReminderWindow(today) {
			continue
		}
		urgency := item.UrgencyOn(today)
		reminder := ReminderItem{
			ComplianceItemResponse: ToComplianceItemResponse(item, names[item.SubjectID]),
			Urgency:                string(urgency),
		}
		switch urgency {
		case fleet.UrgencyOverdue:
			response.Overdue = append(response.Overdue, reminder)
		case fleet.UrgencyDueThisWeek:
			response.DueThisWeek = append(response.DueThisWeek, reminder)
		case fleet.UrgencyDueThisMonth:
			response.DueThisMonth = append(response.DueThisMonth, reminder)
		default:
			response.Upcoming = append(response.Upcoming, reminder)
		}
	}

	response.Summary = ReminderSummary{
		Overdue:      len(response.Overdue),
		DueThisWeek:  len(response.DueThisWeek),
		DueThisMonth: len(response.DueThisMonth),
		Upcoming:     len(response.Upcoming),
	}
	response.Summary.Total = response.Summary.Overdue + response.Summary.DueThisWeek +
		response.Summary.DueThisMonth + response.Summary.Upcoming
	return response, nil
}

// Board returns every compliance item with its traffic-light rating, soonest
// expiry first
func (s *ComplianceService) Board(ctx context.Context, tenantID uuid.UUID) ([]BoardItem, error) {
	items, err := s.complianceRepo.FindAllForTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	names, err := s.subjectNames(ctx, tenantID, items)
	if err != nil {
		return nil, err
	}

	fleet.SortByExpiry(items)
	today := shared.Today()

	board := make([]BoardItem, len(items))
	for i := range items {
		board[i] = BoardItem{
			ComplianceItemResponse: ToComplianceItemResponse(&items[i], names[items[i].SubjectID]),
			Color:                  string(items[i].ColorOn(today)),
		}
	}
	return board, nil
}

func (s *ComplianceService) subjectName(ctx context.Context, tenantID uuid.UUID, subjectType fleet.ComplianceSubject, subjectID uuid.UUID) (string, error) {
	switch subjectType {
	case fleet.SubjectVehicle:
		v, err := s.vehicleRepo.FindByIDForTenant(ctx, tenantID, subjectID)
		if err != nil {
			return "", err
		}
		return v.Name, nil
	case fleet.SubjectDriver:
		d, err := s.driverRepo.FindByIDForTenant(ctx, tenantID, subjectID)
		if err != nil {
			return "", err
		}
		return d.Name, nil
	default:
		return "", shared.NewDomainError("INVALID_SUBJECT", "Compliance subject must be a vehicle or a driver")
	}
}

func (s *ComplianceService) subjectNames(ctx context.Context, tenantID uuid.UUID, items []fleet.ComplianceItem) (map[uuid.UUID]string, error) {
	var vehicleIDs, driverIDs []uuid.UUID
	for i := range items {
		switch items[i].SubjectType {
		case fleet.SubjectVehicle:
			vehicleIDs = append(vehicleIDs, items[i].SubjectID)
		case fleet.SubjectDriver:
			driverIDs = append(driverIDs, items[i].SubjectID)
		}
	}

	names := make(map[uuid.UUID]string)
	if len(vehicleIDs) > 0 {
		vehicles, err := s.vehicleRepo.FindByIDs(ctx, tenantID, vehicleIDs)
		if err != nil {
			return nil, err
		}
		for id, v := range vehicles {
			names[id] = v.Name
		}
	}
	if len(driverIDs) > 0 {
		drivers, err := s.driverRepo.FindByIDs(ctx, tenantID, driverIDs)
		if err != nil {
			return nil, err
		}
		for id, d := range drivers {
			names[id] = d.Name
		}
	}
	return names, nil
}
