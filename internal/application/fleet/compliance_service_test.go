package fleet

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/servex/backend/internal/domain/fleet"
	"github.com/servex/backend/internal/domain/shared"
)

func newComplianceService() (*ComplianceService, *MockComplianceRepository, *MockVehicleRepository, *MockDriverRepository) {
	complianceRepo := new(MockComplianceRepository)
	vehicleRepo := new(MockVehicleRepository)
	driverRepo := new(MockDriverRepository)
	return NewComplianceService(complianceRepo, vehicleRepo, driverRepo), complianceRepo, vehicleRepo, driverRepo
}

func mkItem(t *testing.T, tenantID uuid.UUID, subjectType fleet.ComplianceSubject, subjectID uuid.UUID, itemType, expiry string, reminderDays int) fleet.ComplianceItem {
	t.Helper()
	item, err := fleet.NewComplianceItem(tenantID, subjectType, subjectID, itemType, "", expiry, reminderDays)
	require.NoError(t, err)
	return *item
}

func TestCreateComplianceItemValidatesSubject(t *testing.T) {
	svc, complianceRepo, vehicleRepo, _ := newComplianceService()
	tenantID := uuid.New()

	vehicle, err := fleet.NewVehicle(tenantID, "Scania R450", "ABC123GP")
	require.NoError(t, err)

	vehicleRepo.On("FindByIDForTenant", mock.Anything, tenantID, vehicle.ID).Return(vehicle, nil)
	complianceRepo.On("Save", mock.Anything, mock.AnythingOfType("*fleet.ComplianceItem")).Return(nil)

	resp, err := svc.Create(context.Background(), tenantID, CreateComplianceItemRequest{
		SubjectType:  "vehicle",
		SubjectID:    vehicle.ID,
		ItemType:     "insurance",
		ExpiryDate:   shared.AddDays(shared.Today(), 90),
		Provider:     "Santam",
		PolicyNumber: "POL-9921",
	})
	require.NoError(t, err)
	assert.Equal(t, "Scania R450", resp.SubjectName)
	assert.Equal(t, fleet.DefaultReminderDays, resp.ReminderDaysBefore)
	assert.Equal(t, "Santam", resp.Provider)
}

func TestCreateComplianceItemUnknownSubject(t *testing.T) {
	svc, complianceRepo, _, driverRepo := newComplianceService()
	tenantID := uuid.New()
	driverID := uuid.New()

	driverRepo.On("FindByIDForTenant", mock.Anything, tenantID, driverID).Return(nil, shared.ErrNotFound)

	_, err := svc.Create(context.Background(), tenantID, CreateComplianceItemRequest{
		SubjectType: "driver",
		SubjectID:   driverID,
		ItemType:    "license",
		ExpiryDate:  shared.AddDays(shared.Today(), 30),
	})
	assert.ErrorIs(t, err, shared.ErrNotFound)
	complianceRepo.AssertNotCalled(t, "Save")
}

func TestRemindersBucketsAndFilters(t *testing.T) {
	svc, complianceRepo, vehicleRepo, driverRepo := newComplianceService()
	tenantID := uuid.New()

	vehicle, err := fleet.NewVehicle(tenantID, "Volvo FH", "XYZ987GP")
	require.NoError(t, err)
	driver, err := fleet.NewDriver(tenantID, "T. Moyo", "+27821234567")
	require.NoError(t, err)

	overdue := mkItem(t, tenantID, fleet.SubjectVehicle, vehicle.ID, "license_disk", shared.AddDays(shared.Today(), -3), 30)
	thisWeek := mkItem(t, tenantID, fleet.SubjectDriver, driver.ID, "passport", shared.AddDays(shared.Today(), 5), 30)
	thisMonth := mkItem(t, tenantID, fleet.SubjectVehicle, vehicle.ID, "insurance", shared.AddDays(shared.Today(), 20), 30)
	// Expires in 45 days with a 30 day reminder window: outside, excluded
	farOut := mkItem(t, tenantID, fleet.SubjectVehicle, vehicle.ID, "permit", shared.AddDays(shared.Today(), 45), 30)
	// Same horizon but a 60 day window: inside, lands in upcoming
	watched := mkItem(t, tenantID, fleet.SubjectDriver, driver.ID, "work_permit", shared.AddDays(shared.Today(), 45), 60)

	complianceRepo.On("FindAllForTenant", mock.Anything, tenantID).Return([]fleet.ComplianceItem{
		farOut, thisMonth, overdue, watched, thisWeek,
	}, nil)
	vehicleRepo.On("FindByIDs", mock.Anything, tenantID, mock.Anything).Return(map[uuid.UUID]fleet.Vehicle{
		vehicle.ID: *vehicle,
	}, nil)
	driverRepo.On("FindByIDs", mock.Anything, tenantID, mock.Anything).Return(map[uuid.UUID]fleet.Driver{
		driver.ID: *driver,
	}, nil)

	resp, err := svc.Reminders(context.Background(), tenantID)
	require.NoError(t, err)

	require.Len(t, resp.Overdue, 1)
	assert.Equal(t, "license_disk", resp.Overdue[0].ItemType)
	assert.Equal(t, "Volvo FH", resp.Overdue[0].SubjectName)
	require.Len(t, resp.DueThisWeek, 1)
	assert.Equal(t, "passport", resp.DueThisWeek[0].ItemType)
	require.Len(t, resp.DueThisMonth, 1)
	assert.Equal(t, "insurance", resp.DueThisMonth[0].ItemType)
	require.Len(t, resp.Upcoming, 1)
	assert.Equal(t, "work_permit", resp.Upcoming[0].ItemType)

	assert.Equal(t, ReminderSummary{Overdue: 1, DueThisWeek: 1, DueThisMonth: 1, Upcoming: 1, Total: 4}, resp.Summary)
}

func TestBoardColorsAndOrder(t *testing.T) {
	svc, complianceRepo, vehicleRepo, _ := newComplianceService()
	tenantID := uuid.New()

	vehicle, err := fleet.NewVehicle(tenantID, "Volvo FH", "XYZ987GP")
	require.NoError(t, err)

	red := mkItem(t, tenantID, fleet.SubjectVehicle, vehicle.ID, "license_disk", shared.AddDays(shared.Today(), 10), 30)
	yellow := mkItem(t, tenantID, fleet.SubjectVehicle, vehicle.ID, "insurance", shared.AddDays(shared.Today(), 45), 30)
	green := mkItem(t, tenantID, fleet.SubjectVehicle, vehicle.ID, "permit", shared.AddDays(shared.Today(), 90), 30)

	complianceRepo.On("FindAllForTenant", mock.Anything, tenantID).Return([]fleet.ComplianceItem{
		green, red, yellow,
	}, nil)
	vehicleRepo.On("FindByIDs", mock.Anything, tenantID, mock.Anything).Return(map[uuid.UUID]fleet.Vehicle{
		vehicle.ID: *vehicle,
	}, nil)

	board, err := svc.Board(context.Background(), tenantID)
	require.NoError(t, err)
	require.Len(t, board, 3)

	assert.Equal(t, "license_disk", board[0].ItemType)
	assert.Equal(t, "red", board[0].Color)
	assert.Equal(t, "insurance", board[1].ItemType)
	assert.Equal(t, "yellow", board[1].Color)
	assert.Equal(t, "permit", board[2].ItemType)
	assert.Equal(t, "green", board[2].Color)
}

func TestUpdateComplianceItem(t *testing.T) {
	svc, complianceRepo, vehicleRepo, _ := newComplianceService()
	tenantID := uuid.New()

	vehicle, err := fleet.NewVehicle(tenantID, "Volvo FH", "XYZ987GP")
	require.NoError(t, err)
	item := mkItem(t, tenantID, fleet.SubjectVehicle, vehicle.ID, "insurance", shared.AddDays(shared.Today(), 30), 30)

	complianceRepo.On("FindByIDForTenant", mock.Anything, tenantID, item.ID).Return(&item, nil)
	complianceRepo.On("Save", mock.Anything, &item).Return(nil)
	vehicleRepo.On("FindByIDForTenant", mock.Anything, tenantID, vehicle.ID).Return(vehicle, nil)

	newExpiry := shared.AddDays(shared.Today(), 365)
	provider := "Hollard"
	resp, err := svc.Update(context.Background(), tenantID, item.ID, UpdateComplianceItemRequest{
		ExpiryDate: &newExpiry,
		Provider:   &provider,
	})
	require.NoError(t, err)
	assert.Equal(t, newExpiry, resp.ExpiryDate)
	assert.Equal(t, "Hollard", resp.Provider)
	assert.Equal(t, "insurance", resp.ItemType)
}
