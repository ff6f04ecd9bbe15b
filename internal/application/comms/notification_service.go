package comms

import (
	"context"

	"github.com/google/uuid"

	"github.com/servex/backend/internal/domain/comms"
	"github.com/servex/backend/internal/domain/shared"
)

// NotificationService handles in-app notification use cases
type NotificationService struct {
	notificationRepo comms.NotificationRepository
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(notificationRepo comms.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns the actor's notifications, newest first
func (s *NotificationService) List(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, unreadOnly bool) ([]NotificationResponse, error) {
	notifications, err := s.notificationRepo.FindForUser(ctx, tenantID, actor.UserID, unreadOnly)
	if err != nil {
		return nil, err
	}
	responses := make([]NotificationResponse, len(notifications))
	for i := range notifications {
		responses[i] = ToNotificationResponse(&notifications[i])
	}
	return responses, nil
}

// UnreadCount returns how many unread notifications the actor has
func (s *NotificationService) UnreadCount(ctx context.Context, tenantID uuid.UUID, actor shared.Actor) (*UnreadCountResponse, error) {
	count, err := s.notificationRepo.CountUnread(ctx, tenantID, actor.UserID)
	if err != nil {
		return nil, err
	}
	return &UnreadCountResponse{UnreadCount: count}, nil
}

// Create records a new notification for a user
func (s *NotificationService) Create(ctx context.Context, tenantID uuid.UUID, req CreateNotificationRequest) (*NotificationResponse, error) {
	n, err := comms.NewNotification(tenantID, req.UserID, comms.NotificationType(req.Type), req.Title, req.Message)
	if err != nil {
		return nil, err
	}
	if req.RelatedTable != "" && req.RelatedID != nil {
		n.Relate(req.RelatedTable, *req.RelatedID)
	}
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return nil, err
	}
	response := ToNotificationResponse(n)
	return &response, nil
}

// MarkRead marks one of the actor's notifications as read
func (s *NotificationService) MarkRead(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, id uuid.UUID) (*NotificationResponse, error) {
	n, err := s.notificationRepo.FindByIDForUser(ctx, tenantID, actor.UserID, id)
	if err != nil {
		return nil, err
	}
	n.MarkRead()
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return nil, err
	}
	response := ToNotificationResponse(n)
	return &response, nil
}

// MarkAllRead marks every unread notification of the actor as read
func (s *NotificationService) MarkAllRead(ctx context.Context, tenantID uuid.UUID, actor shared.Actor) (*MarkAllReadResponse, error) {
	marked, err := s.notificationRepo.MarkAllRead(ctx, tenantID, actor.UserID)
	if err != nil {
		return nil, err
	}
	return &MarkAllReadResponse{Marked: marked}, nil
}

// Resolve closes a notification out, stamping read as well
func (s *NotificationService) Resolve(ctx context.Context, tenantID uuid.UUID, actor shared.Actor, id uuid.UUID) (*NotificationResponse, error) {
	n, err := s.notificationRepo.FindByIDForUser(ctx, tenantID, actor.UserID, id)
	if err != nil {
		return nil, err
	}
	n.Resolve()
	if err := s.notificationRepo.Save(ctx, n); err != nil {
		return nil, err
	}
	response := ToNotificationResponse(n)
	return &response, nil
}
