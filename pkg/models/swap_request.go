package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type SwapStatus string

const (
	SwapPending  SwapStatus = "pending"
	SwapAccepted SwapStatus = "accepted"
	SwapDeclined SwapStatus = "declined"
)

type SwapRequest struct {
	ID          string     `gorm:"type:uuid;primary_key" json:"id"`
	RequesterID string     `gorm:"type:uuid;not null;index" json:"requester_id"`
	OwnerID     string     `gorm:"type:uuid;not null;index" json:"owner_id"`
	ItemID      string     `gorm:"type:uuid;not null;index" json:"item_id"`
	Status      SwapStatus `gorm:"type:varchar(20);default:'pending'" json:"status"`
	Message     string     `json:"message,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func (s *SwapRequest) BeforeCreate(tx *gorm.DB) error {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	return nil
}
