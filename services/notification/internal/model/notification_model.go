package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationModel struct {
	ID        string    `gorm:"type:uuid;primary_key"`
	UserID    string    `gorm:"type:uuid;not null;index"`
	Type      string    `gorm:"type:varchar(30);not null"`
	Title     string    `gorm:"not null"`
	Message   string    ``
	SwapID    string    `gorm:"type:uuid"`
	ItemID    string    `gorm:"type:uuid"`
	Read      bool      `gorm:"default:false"`
	CreatedAt time.Time ``
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	return nil
}
