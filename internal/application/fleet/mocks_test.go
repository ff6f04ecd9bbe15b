package fleet

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/servex/backend/internal/domain/fleet"
	"github.com/servex/backend/internal/domain/shared"
)

type MockVehicleRepository struct {
	mock.Mock
}

func (m *MockVehicleRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Vehicle, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]fleet.Vehicle, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]fleet.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Vehicle, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Vehicle), args.Error(1)
}

func (m *MockVehicleRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockVehicleRepository) Save(ctx context.Context, v *fleet.Vehicle) error {
	args := m.Called(ctx, v)
	return args.Error(0)
}

func (m *MockVehicleRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockDriverRepository struct {
	mock.Mock
}

func (m *MockDriverRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.Driver, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindByIDs(ctx context.Context, tenantID uuid.UUID, ids []uuid.UUID) (map[uuid.UUID]fleet.Driver, error) {
	args := m.Called(ctx, tenantID, ids)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[uuid.UUID]fleet.Driver), args.Error(1)
}

func (m *MockDriverRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) ([]fleet.Driver, error) {
	args := m.Called(ctx, tenantID, filter)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.Driver), args.Error(1)
}

func (m *MockDriverRepository) CountForTenant(ctx context.Context, tenantID uuid.UUID, filter shared.Filter) (int64, error) {
	args := m.Called(ctx, tenantID, filter)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockDriverRepository) Save(ctx context.Context, d *fleet.Driver) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}

func (m *MockDriverRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

type MockComplianceRepository struct {
	mock.Mock
}

func (m *MockComplianceRepository) FindByIDForTenant(ctx context.Context, tenantID, id uuid.UUID) (*fleet.ComplianceItem, error) {
	args := m.Called(ctx, tenantID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fleet.ComplianceItem), args.Error(1)
}

func (m *MockComplianceRepository) FindBySubject(ctx context.Context, tenantID uuid.UUID, subjectType fleet.ComplianceSubject, subjectID uuid.UUID) ([]fleet.ComplianceItem, error) {
	args := m.Called(ctx, tenantID, subjectType, subjectID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.ComplianceItem), args.Error(1)
}

func (m *MockComplianceRepository) FindAllForTenant(ctx context.Context, tenantID uuid.UUID) ([]fleet.ComplianceItem, error) {
	args := m.Called(ctx, tenantID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fleet.ComplianceItem), args.Error(1)
}

func (m *MockComplianceRepository) Save(ctx context.Context, item *fleet.ComplianceItem) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockComplianceRepository) DeleteForTenant(ctx context.Context, tenantID, id uuid.UUID) error {
	args := m.Called(ctx, tenantID, id)
	return args.Error(0)
}

func (m *MockComplianceRepository) DeleteBySubject(ctx context.Context, tenantID uuid.UUID, subjectType fleet.ComplianceSubject, subjectID uuid.UUID) error {
	args := m.Called(ctx, tenantID, subjectType, subjectID)
	return args.Error(0)
}
