// Package notificationrepo persists per-user notifications.
package notificationrepo

import (
	"context"
	"time"

	"prepcenter/internal/adapters/out/postgres/pgerr"
	"prepcenter/internal/core/domain/model/activity"
	"prepcenter/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationDTO is a row of the notifications table.
type NotificationDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	UserID    uuid.UUID `gorm:"type:uuid;index:idx_notifications_user_read;not null"`
	Message   string    `gorm:"not null"`
	Read      bool      `gorm:"index:idx_notifications_user_read;not null;default:false"`
	CreatedAt time.Time `gorm:"not null"`
}

func (NotificationDTO) TableName() string {
	return "notifications"
}

// GormNotificationRepository implements ports.NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

func (r *GormNotificationRepository) Add(ctx context.Context, n *activity.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	dto := NotificationDTO{
		ID:        n.ID().Bytes(),
		UserID:    n.UserID().Bytes(),
		Message:   n.Message(),
		Read:      n.IsRead(),
		CreatedAt: n.CreatedAt(),
	}
	err := r.db.WithContext(ctx).Create(&dto).Error
	return pgerr.Translate("add notification", "notification", n.ID().String(), err)
}

// FindForUser scopes the lookup to the owner, so a foreign id reads as absent.
func (r *GormNotificationRepository) FindForUser(
	ctx context.Context,
	id, userID kernel.UUID,
) (*activity.Notification, error) {
	var dtos []NotificationDTO
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id.Bytes(), userID.Bytes()).
		Limit(1).
		Find(&dtos).Error
	if err != nil {
		return nil, pgerr.Translate("find notification", "notification", id.String(), err)
	}
	if len(dtos) == 0 {
		return nil, nil
	}

	dto := dtos[0]
	return activity.RestoreNotification(id, userID, dto.Message, dto.Read, dto.CreatedAt)
}

// Update saves the read flag.
func (r *GormNotificationRepository) Update(ctx context.Context, n *activity.Notification) error {
	if err := n.Validate(); err != nil {
		return err
	}

	err := r.db.WithContext(ctx).Model(&NotificationDTO{}).
		Where("id = ? AND user_id = ?", n.ID().Bytes(), n.UserID().Bytes()).
		Update("read", n.IsRead()).Error
	return pgerr.Translate("update notification", "notification", n.ID().String(), err)
}
