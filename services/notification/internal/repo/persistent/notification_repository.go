package persistent

import (
	"rewear/services/notification/internal/entity"
	"rewear/services/notification/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository interface {
	Create(notification *entity.Notification) error
	ListForUser(userID string, limit, offset int) ([]*entity.Notification, error)
	CountUnread(userID string) (int64, error)

	// MarkRead only touches rows owned by userID, so one user cannot
	// acknowledge another user's notifications.
	MarkRead(userID, notificationID string) error
	MarkAllRead(userID string) (int64, error)
}

type notificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) Create(notification *entity.Notification) error {
	m := ToNotificationModel(notification)
	if err := r.db.Create(m).Error; err != nil {
		return err
	}
	notification.ID = m.ID
	notification.CreatedAt = m.CreatedAt
	return nil
}

func (r *notificationRepository) ListForUser(userID string, limit, offset int) ([]*entity.Notification, error) {
	var notificationModels []model.NotificationModel
	err := r.db.Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&notificationModels).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*entity.Notification, 0, len(notificationModels))
	for i := range notificationModels {
		notifications = append(notifications, ToNotificationEntity(&notificationModels[i]))
	}
	return notifications, nil
}

func (r *notificationRepository) CountUnread(userID string) (int64, error) {
	var count int64
	err := r.db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND read = ?", userID, false).
		Count(&count).Error
	return count, err
}

func (r *notificationRepository) MarkRead(userID, notificationID string) error {
	res := r.db.Model(&model.NotificationModel{}).
		Where("id = ? AND user_id = ?", notificationID, userID).
		Update("read", true)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrNotFound
	}
	return nil
}

func (r *notificationRepository) MarkAllRead(userID string) (int64, error) {
	res := r.db.Model(&model.NotificationModel{}).
		Where("user_id = ? AND read = ?", userID, false).
		Update("read", true)
	return res.RowsAffected, res.Error
}
