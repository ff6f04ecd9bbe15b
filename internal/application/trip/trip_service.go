package trip

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	auditapp "github.com/servex/backend/internal/application/audit"
	freightapp "github.com/servex/backend/internal/application/freight"
	"github.com/servex/backend/internal/domain/audit"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/trip"
	"github.com/servex/backend/internal/infrastructure/telemetry"
)

// Service handles trip lifecycle business operations
type Service struct {
	tripRepo    trip.Repository
	expenseRepo trip.ExpenseRepository
	assignments *freightapp.AssignmentService
	auditSvc    *auditapp.Service
}

// NewService creates a new trip Service
func NewService(tripRepo trip.Repository, expenseRepo trip.ExpenseRepository, assignments *freightapp.AssignmentService, auditSvc *auditapp.Service) *Service {
	return &Service{
		tripRepo:    tripRepo,
		expenseRepo: expenseRepo,
		assignments: assignments,
		auditSvc:    auditSvc,
	}
}

// Create creates a trip. When no trip number is given the next manifest
// number in the S-sequence is derived from the existing trips.
func (s *Service) Create(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, req CreateTripRequest) (*TripResponse, error) {
	number := req.TripNumber
	if number == "" {
		existing, err := s.tripRepo.ListNumbers(ctx, tenantID)
		if err != nil {
			return nil, err
		}
		number = trip.NextTripNumber(existing)
	} else {
		exists, err := s.tripRepo.ExistsByNumber(ctx, tenantID, number)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Trip number already in use")
		}
	}

	t, err := trip.NewTrip(tenantID, number, req.Route, req.DepartureDate)
	if err != nil {
		return nil, err
	}
	if req.CreatedBy != nil {
		t.SetCreatedBy(*req.CreatedBy)
	}
	if req.VehicleID != nil {
		t.AssignVehicle(req.VehicleID)
	}
	if req.DriverID != nil {
		t.AssignDriver(req.DriverID)
	}
	if req.Notes != "" {
		t.SetNotes(req.Notes)
	}

	if err := s.tripRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.record(ctx, tenantID, actor, audit.ActionCreate, t.ID, nil, audit.ValueMap{"trip_number": t.TripNumber})

	response := ToTripResponse(t)
	return &response, nil
}

// GetByID retrieves a trip with its expenses, newest expense first, and
// per-category totals.
func (s *Service) GetByID(ctx context.Context, tenantID, tripID uuid.UUID) (*TripDetailResponse, error) {
	t, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindByTrip(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(expenses, func(i, j int) bool {
		return expenses[i].ExpenseDate > expenses[j].ExpenseDate
	})

	detail := TripDetailResponse{
		TripResponse:   ToTripResponse(t),
		Expenses:       make([]ExpenseResponse, len(expenses)),
		ExpenseTotals:  map[string]decimal.Decimal{},
		ExpensesAmount: decimal.Zero,
	}
	for i := range expenses {
		detail.Expenses[i] = ToExpenseResponse(&expenses[i])
	}
	for category, total := range trip.TotalsByCategory(expenses) {
		detail.ExpenseTotals[string(category)] = total
		detail.ExpensesAmount = detail.ExpensesAmount.Add(total)
	}
	return &detail, nil
}

// List retrieves trips with filtering and pagination
func (s *Service) List(ctx context.Context, tenantID uuid.UUID, filter TripListFilter) ([]TripResponse, int64, error) {
	domainFilter := toDomainFilter(filter)

	trips, err := s.tripRepo.FindAllForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.tripRepo.CountForTenant(ctx, tenantID, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	responses := make([]TripResponse, len(trips))
	for i := range trips {
		responses[i] = ToTripResponse(&trips[i])
	}
	return responses, total, nil
}

// Update applies a partial update. Status changes run through the domain
// lifecycle so departure, arrival and lock stamps land consistently.
// A locked trip admits only the owner.
func (s *Service) Update(ctx context.Context, tenantID, tripID uuid.UUID, actor shared.Actor, req UpdateTripRequest) (*TripResponse, error) {
	t, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}
	if t.IsLocked() && !actor.IsOwner() {
		return nil, shared.ErrTripLocked
	}

	oldStatus := string(t.Status)

	if req.TripNumber != nil && *req.TripNumber != t.TripNumber {
		exists, err := s.tripRepo.ExistsByNumber(ctx, tenantID, *req.TripNumber)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, shared.NewDomainError("ALREADY_EXISTS", "Trip number already in use")
		}
		if err := t.Renumber(*req.TripNumber); err != nil {
			return nil, err
		}
	}
	if req.Route != nil {
		t.SetRoute(req.Route)
	}
	if req.DepartureDate != nil {
		if err := t.SetDepartureDate(*req.DepartureDate); err != nil {
			return nil, err
		}
	}
	if req.ClearVehicle {
		t.AssignVehicle(nil)
	} else if req.VehicleID != nil {
		t.AssignVehicle(req.VehicleID)
	}
	if req.ClearDriver {
		t.AssignDriver(nil)
	} else if req.DriverID != nil {
		t.AssignDriver(req.DriverID)
	}
	if req.Notes != nil {
		t.SetNotes(*req.Notes)
	}

	action := audit.ActionUpdate
	if req.Status != nil {
		next := trip.Status(*req.Status)
		// Re-sending the current status is a no-op, except for closed:
		// closing an already-closed trip must error, not silently pass.
		if next != t.Status || next == trip.StatusClosed {
			if err := t.ChangeStatus(next); err != nil {
				return nil, err
			}
			action = audit.ActionStatusChange
		}
	}

	if err := s.tripRepo.Save(ctx, t); err != nil {
		return nil, err
	}
	s.record(ctx, tenantID, actor, action, t.ID,
		audit.ValueMap{"status": oldStatus},
		audit.ValueMap{"status": string(t.Status)})

	response := ToTripResponse(t)
	return &response, nil
}

// Close closes and locks the trip. Owner only; closing twice errors.
func (s *Service) Close(ctx context.Context, tenantID, tripID uuid.UUID, actor shared.Actor) (*TripResponse, error) {
	ctx, span := telemetry.StartServiceSpan(ctx, "trip", "close",
		telemetry.WithAttribute(telemetry.SpanAttrTenantID, tenantID),
		telemetry.WithAttribute(telemetry.SpanAttrTripID, tripID),
	)
	defer span.End()

	if !actor.IsOwner() {
		telemetry.RecordError(span, shared.ErrForbidden)
		return nil, shared.ErrForbidden
	}
	t, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID)
	if err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := t.Close(); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	if err := s.tripRepo.Save(ctx, t); err != nil {
		telemetry.RecordError(span, err)
		return nil, err
	}
	telemetry.SetAttribute(span, telemetry.SpanAttrTripNumber, t.TripNumber)
	telemetry.SetOK(span)
	s.record(ctx, tenantID, actor, audit.ActionStatusChange, t.ID, nil, audit.ValueMap{"status": "closed"})

	response := ToTripResponse(t)
	return &response, nil
}

// Delete removes a trip, returning its shipments to the warehouse and
// deleting its expenses. Locked trips admit only the owner.
func (s *Service) Delete(ctx context.Context, tenantID, tripID uuid.UUID, actor shared.Actor) error {
	t, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID)
	if err != nil {
		return err
	}
	if t.IsLocked() && !actor.IsOwner() {
		return shared.ErrTripLocked
	}

	if err := s.assignments.UnassignAllForTrip(ctx, tenantID, actor, tripID); err != nil {
		return err
	}
	if err := s.expenseRepo.DeleteByTrip(ctx, tenantID, tripID); err != nil {
		return err
	}
	if err := s.tripRepo.DeleteForTenant(ctx, tenantID, tripID); err != nil {
		return err
	}
	s.record(ctx, tenantID, actor, audit.ActionDelete, tripID, audit.ValueMap{"trip_number": t.TripNumber}, nil)
	return nil
}

// Duplicate creates a fresh planning trip under the next manifest number,
// carrying over route, vehicle and driver.
func (s *Service) Duplicate(ctx context.Context, tenantID, tripID uuid.UUID, actor shared.Actor) (*TripResponse, error) {
	t, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}
	existing, err := s.tripRepo.ListNumbers(ctx, tenantID)
	if err != nil {
		return nil, err
	}

	dup, err := t.Duplicate(trip.NextTripNumber(existing))
	if err != nil {
		return nil, err
	}
	if err := s.tripRepo.Save(ctx, dup); err != nil {
		return nil, err
	}
	s.record(ctx, tenantID, actor, audit.ActionCreate, dup.ID, nil, audit.ValueMap{
		"trip_number": dup.TripNumber,
		"source":      t.TripNumber,
	})

	response := ToTripResponse(dup)
	return &response, nil
}

// NextNumber returns the next free manifest number
func (s *Service) NextNumber(ctx context.Context, tenantID uuid.UUID) (string, error) {
	existing, err := s.tripRepo.ListNumbers(ctx, tenantID)
	if err != nil {
		return "", err
	}
	return trip.NextTripNumber(existing), nil
}

func (s *Service) record(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, action audit.Action, tripID uuid.UUID, oldValues, newValues audit.ValueMap) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Record(ctx, tenantID, actor, action, "trips", tripID, oldValues, newValues, "")
}

func toDomainFilter(filter TripListFilter) shared.Filter {
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
