package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/servex/backend/internal/domain/comms"
	"github.com/servex/backend/internal/domain/shared"
	"github.com/servex/backend/internal/infrastructure/persistence/models"
)

// GormNotificationRepository implements NotificationRepository using GORM.
// All reads are scoped to both tenant and user.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GormNotificationRepository
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// FindByIDForUser finds a notification by ID for a specific user
func (r *GormNotificationRepository) FindByIDForUser(ctx context.Context, tenantID, userID, id uuid.UUID) (*comms.Notification, error) {
	var model models.NotificationModel
	if err := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ? AND id = ?", tenantID, userID, id).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindForUser finds notifications for a user, newest first
func (r *GormNotificationRepository) FindForUser(ctx context.Context, tenantID, userID uuid.UUID, unreadOnly bool) ([]comms.Notification, error) {
	query := r.db.WithContext(ctx).
		Where("tenant_id = ? AND user_id = ?", tenantID, userID)
	if unreadOnly {
		query = query.Where("read_at IS NULL")
	}

	var notificationModels []models.NotificationModel
	if err := query.Order("created_at DESC").Find(&notificationModels).Error; err != nil {
		return nil, err
	}

	notifications := make([]comms.Notification, len(notificationModels))
	for i, model := range notificationModels {
		notifications[i] = *model.ToDomain()
	}
	return notifications, nil
}

// CountUnread counts unread notifications for a user
func (r *GormNotificationRepository) CountUnread(ctx context.Context, tenantID, userID uuid.UUID) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("tenant_id = ? AND user_id = ? AND read_at IS NULL", tenantID, userID).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// MarkAllRead marks all unread notifications of a user as read.
// Returns the number of notifications updated.
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, tenantID, userID uuid.UUID) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.NotificationModel{}).
		Where("tenant_id = ? AND user_id = ? AND read_at IS NULL", tenantID, userID).
		Update("read_at", time.Now().UTC())
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

// Save creates or updates a notification
func (r *GormNotificationRepository) Save(ctx context.Context, n *comms.Notification) error {
	model := models.NotificationModelFromDomain(n)
	return r.db.WithContext(ctx).Save(model).Error
}

// Ensure GormNotificationRepository implements NotificationRepository
var _ comms.NotificationRepository = (*GormNotificationRepository)(nil)
