package persistent

import (
	"rewear/services/notification/internal/entity"
	"rewear/services/notification/internal/model"
)

func ToNotificationEntity(m *model.NotificationModel) *entity.Notification {
	if m == nil {
		return nil
	}

	return &entity.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		Type:      m.Type,
		Title:     m.Title,
		Message:   m.Message,
		SwapID:    m.SwapID,
		ItemID:    m.ItemID,
		Read:      m.Read,
		CreatedAt: m.CreatedAt,
	}
}

func ToNotificationModel(e *entity.Notification) *model.NotificationModel {
	if e == nil {
		return nil
	}

	return &model.NotificationModel{
		ID:        e.ID,
		UserID:    e.UserID,
		Type:      e.Type,
		Title:     e.Title,
		Message:   e.Message,
		SwapID:    e.SwapID,
		ItemID:    e.ItemID,
		Read:      e.Read,
		CreatedAt: e.CreatedAt,
	}
}
