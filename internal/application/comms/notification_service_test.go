package comms

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/servex/backend/internal/domain/comms"
	"github.com/servex/backend/internal/domain/shared"
)

// MockNotificationRepository is a mock implementation of comms.NotificationRepository
type MockNotificationRepository struct {
	mock.Mock
}

func (m *MockNotificationRepository) FindByIDForUser(ctx context.Context, tenantID, userID, id uuid.UUID) (*comms.Notification, error) {
	args := m.Called(ctx, tenantID, userID, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*comms.Notification), args.Error(1)
}

func (m *MockNotificationRepository) FindForUser(ctx context.Context, tenantID, userID uuid.UUID, unreadOnly bool) ([]comms.Notification, error) {
	args := m.Called(ctx, tenantID, userID, unreadOnly)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]comms.Notification), args.Error(1)
}

func (m *MockNotificationRepository) CountUnread(ctx context.Context, tenantID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) MarkAllRead(ctx context.Context, tenantID, userID uuid.UUID) (int64, error) {
	args := m.Called(ctx, tenantID, userID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockNotificationRepository) Save(ctx context.Context, n *comms.Notification) error {
	args := m.Called(ctx, n)
	return args.Error(0)
}

func mkNotification(t *testing.T, tenantID, userID uuid.UUID, title string) *comms.Notification {
	t.Helper()
	n, err := comms.NewNotification(tenantID, userID, comms.NotificationComplianceReminder, title, "GIT policy expires soon")
	require.NoError(t, err)
	return n
}

func TestCreateNotificationRelatesRecord(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo)
	tenantID := uuid.New()
	userID := uuid.New()
	itemID := uuid.New()

	repo.On("Save", mock.Anything, mock.AnythingOfType("*comms.Notification")).Return(nil)

	result, err := svc.Create(context.Background(), tenantID, CreateNotificationRequest{
		UserID:       userID,
		Type:         "compliance_reminder",
		Title:        "Insurance expiring",
		Message:      "Scania R450 insurance expires in 7 days",
		RelatedTable: "compliance_items",
		RelatedID:    &itemID,
	})

	require.NoError(t, err)
	assert.Equal(t, "compliance_reminder", result.Type)
	assert.Equal(t, "compliance_items", result.RelatedTable)
	require.NotNil(t, result.RelatedID)
	assert.Equal(t, itemID, *result.RelatedID)
	assert.Nil(t, result.ReadAt)
}

func TestCreateNotificationRejectsBadType(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo)

	_, err := svc.Create(context.Background(), uuid.New(), CreateNotificationRequest{
		UserID: uuid.New(),
		Type:   "carrier_pigeon",
		Title:  "Hello",
	})

	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_TYPE", domainErr.Code)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestResolveNotificationStampsReadToo(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo)
	tenantID := uuid.New()
	actor := shared.Actor{UserID: uuid.New(), Role: shared.RoleStaff}
	n := mkNotification(t, tenantID, actor.UserID, "Vehicle license due")

	repo.On("FindByIDForUser", mock.Anything, tenantID, actor.UserID, n.ID).Return(n, nil)
	repo.On("Save", mock.Anything, n).Return(nil)

	result, err := svc.Resolve(context.Background(), tenantID, actor, n.ID)

	require.NoError(t, err)
	assert.NotNil(t, result.ResolvedAt)
	assert.NotNil(t, result.ReadAt)
}

func TestMarkAllReadReportsCount(t *testing.T) {
	repo := new(MockNotificationRepository)
	svc := NewNotificationService(repo)
	tenantID := uuid.New()
	actor := shared.Actor{UserID: uuid.New(), Role: shared.RoleStaff}

	repo.On("MarkAllRead", mock.Anything, tenantID, actor.UserID).Return(int64(7), nil)

	result, err := svc.MarkAllRead(context.Background(), tenantID, actor)

	require.NoError(t, err)
	assert.Equal(t, int64(7), result.Marked)
}
