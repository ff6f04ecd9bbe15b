package trip

import (
	"context"

	"github.com/google/uuid"

	auditapp "github.com/servex/backend/internal/application/audit"
	"github.com/servex/backend/internal/domain/audit"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/domain/shared/valueobject"
	"github.com/servex/backend/internal/domain/trip"
)

// ExpenseService handles trip expense operations under the trip lock gate
type ExpenseService struct {
	tripRepo    trip.Repository
	expenseRepo trip.ExpenseRepository
	auditSvc    *auditapp.Service
}

// NewExpenseService creates a new ExpenseService
func NewExpenseService(tripRepo trip.Repository, expenseRepo trip.ExpenseRepository, auditSvc *auditapp.Service) *ExpenseService {
	return &ExpenseService{
		tripRepo:    tripRepo,
		expenseRepo: expenseRepo,
		auditSvc:    auditSvc,
	}
}

// Create records an expense against a trip
func (s *ExpenseService) Create(ctx context.Context, tenantID, tripID uuid.UUID, actor shared.Actor, req CreateExpenseRequest) (*ExpenseResponse, error) {
	t, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}
	if t.IsLocked() && !actor.IsOwner() {
		return nil, shared.ErrTripLocked
	}

	expense, err := trip.NewExpense(tenantID, tripID, trip.ExpenseCategory(req.Category), req.Amount,
		valueobject.Currency(req.Currency), req.ExpenseDate, req.Description)
	if err != nil {
		return nil, err
	}
	if req.ReceiptURL != "" {
		expense.ReceiptURL = req.ReceiptURL
	}
	if req.CreatedBy != nil {
		expense.SetCreatedBy(*req.CreatedBy)
	}

	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.record(ctx, tenantID, actor, audit.ActionCreate, expense.ID, nil, audit.ValueMap{
		"trip_id":  tripID.String(),
		"category": req.Category,
		"amount":   req.Amount.String(),
	})

	response := ToExpenseResponse(expense)
	return &response, nil
}

// ListByTrip returns a trip's expenses, newest expense date first
func (s *ExpenseService) ListByTrip(ctx context.Context, tenantID, tripID uuid.UUID) ([]ExpenseResponse, error) {
	if _, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID); err != nil {
		return nil, err
	}
	expenses, err := s.expenseRepo.FindByTrip(ctx, tenantID, tripID)
	if err != nil {
		return nil, err
	}

	responses := make([]ExpenseResponse, len(expenses))
	for i := range expenses {
		responses[i] = ToExpenseResponse(&expenses[i])
	}
	return responses, nil
}

// Update modifies a recorded expense
func (s *ExpenseService) Update(ctx context.Context, tenantID, expenseID uuid.UUID, actor shared.Actor, req UpdateExpenseRequest) (*ExpenseResponse, error) {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, expenseID)
	if err != nil {
		return nil, err
	}
	if err := s.checkLock(ctx, tenantID, expense.TripID, actor); err != nil {
		return nil, err
	}

	if err := expense.Update(trip.ExpenseCategory(req.Category), req.Amount, req.ExpenseDate, req.Description, req.ReceiptURL); err != nil {
		return nil, err
	}
	if err := s.expenseRepo.Save(ctx, expense); err != nil {
		return nil, err
	}
	s.record(ctx, tenantID, actor, audit.ActionUpdate, expense.ID, nil, audit.ValueMap{
		"category": req.Category,
		"amount":   req.Amount.String(),
	})

	response := ToExpenseResponse(expense)
	return &response, nil
}

// Delete removes an expense
func (s *ExpenseService) Delete(ctx context.Context, tenantID, expenseID uuid.UUID, actor shared.Actor) error {
	expense, err := s.expenseRepo.FindByIDForTenant(ctx, tenantID, expenseID)
	if err != nil {
		return err
	}
	if err := s.checkLock(ctx, tenantID, expense.TripID, actor); err != nil {
		return err
	}

	if err := s.expenseRepo.DeleteForTenant(ctx, tenantID, expenseID); err != nil {
		return err
	}
	s.record(ctx, tenantID, actor, audit.ActionDelete, expenseID, audit.ValueMap{
		"category": string(expense.Category),
		"amount":   expense.Amount.String(),
	}, nil)
	return nil
}

func (s *ExpenseService) checkLock(ctx context.Context, tenantID, tripID uuid.UUID, actor shared.Actor) error {
	t, err := s.tripRepo.FindByIDForTenant(ctx, tenantID, tripID)
	if err != nil {
		return err
	}
	if t.IsLocked() && !actor.IsOwner() {
		return shared.ErrTripLocked
	}
	return nil
}

func (s *ExpenseService) record(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, action audit.Action, recordID uuid.UUID, oldValues, newValues audit.ValueMap) {
	if s.auditSvc == nil {
		return
	}
	s.auditSvc.Record(ctx, tenantID, actor, action, "trip_expenses", recordID, oldValues, newValues, "")
}
