package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserModel struct {
	ID            string    `gorm:"type:uuid;primary_key"`
	Username      string    `gorm:"uniqueIndex;not null"`
	PointsBalance int64     `gorm:"not null;default:0"`
	Status        string    `gorm:"type:varchar(20);default:'active'"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

func (UserModel) TableName() string {
	return "users"
}

type ItemModel struct {
	ID           string    `gorm:"type:uuid;primary_key"`
	Title        string    `gorm:"not null"`
	PointsValue  int64     `gorm:"not null"`
	UploadedBy   string    `gorm:"type:uuid;not null;index"`
	Availability string    `gorm:"type:varchar(20);default:'available';index"`
	Moderation   string    `gorm:"type:varchar(20);default:'pending';index"`
	SwappedTo    *string   `gorm:"type:uuid"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (ItemModel) TableName() string {
	return "items"
}

type SwapModel struct {
	ID          string    `gorm:"type:uuid;primary_key"`
	RequesterID string    `gorm:"type:uuid;not null;index"`
	OwnerID     string    `gorm:"type:uuid;not null;index"`
	ItemID      string    `gorm:"type:uuid;not null;index"`
	Status      string    `gorm:"type:varchar(20);default:'pending'"`
	Message     string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

func (SwapModel) TableName() string {
	return "swap_requests"
}

func (s *SwapModel) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}

type TransactionModel struct {
	ID          string    `gorm:"type:uuid;primary_key"`
	UserID      string    `gorm:"type:uuid;not null;index"`
	ItemID      string    `gorm:"type:uuid;index"`
	Type        string    `gorm:"type:varchar(20);not null"`
	Points      int64     `gorm:"not null"`
	Description string
	CreatedAt   time.Time
}

func (TransactionModel) TableName() string {
	return "transactions"
}

func (t *TransactionModel) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
