package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type ItemModel struct {
	ID            string         `gorm:"type:uuid;primary_key"`
	Title         string         `gorm:"not null"`
	Description   string
	Category      string         `gorm:"index"`
	Type          string
	Size          string
	Condition     string
	Tags          pq.StringArray `gorm:"type:text[]"`
	Images        pq.StringArray `gorm:"type:text[]"`
	Brand         string
	OriginalPrice int64          `gorm:"default:0"`
	AgeMonths     int            `gorm:"default:0"`
	PointsValue   int64          `gorm:"not null"`
	UploadedBy    string         `gorm:"type:uuid;not null;index"`
	Availability  string         `gorm:"type:varchar(20);default:'available';index"`
	Moderation    string         `gorm:"type:varchar(20);default:'pending';index"`
	SwappedTo     *string        `gorm:"type:uuid"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (ItemModel) TableName() string {
	return "items"
}

func (i *ItemModel) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
