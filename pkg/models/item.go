package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// ItemAvailability is the settlement lifecycle of a listing. Once an item
// leaves "available" it never comes back.
type ItemAvailability string

const (
	ItemAvailable ItemAvailability = "available"
	ItemRedeemed  ItemAvailability = "redeemed"
	ItemSwapped   ItemAvailability = "swapped"
	ItemRemoved   ItemAvailability = "removed"
)

// ItemModeration is the admin visibility gate, orthogonal to availability.
type ItemModeration string

const (
	ModerationPending  ItemModeration = "pending"
	ModerationApproved ItemModeration = "approved"
	ModerationRejected ItemModeration = "rejected"
)

type Item struct {
	ID            string           `gorm:"type:uuid;primary_key" json:"id"`
	Title         string           `gorm:"not null" json:"title"`
	Description   string           `json:"description"`
	Category      string           `gorm:"index" json:"category"`
	Type          string           `json:"type"`
	Size          string           `json:"size"`
	Condition     string           `json:"condition"`
	Tags          pq.StringArray   `gorm:"type:text[]" json:"tags"`
	Images        pq.StringArray   `gorm:"type:text[]" json:"images"`
	Brand         string           `json:"brand"`
	OriginalPrice int64            `gorm:"default:0" json:"original_price"`
	AgeMonths     int              `gorm:"default:0" json:"age_months"`
	PointsValue   int64            `gorm:"not null" json:"points_value"`
	UploadedBy    string           `gorm:"type:uuid;not null;index" json:"uploaded_by"`
	Availability  ItemAvailability `gorm:"type:varchar(20);default:'available';index" json:"availability"`
	Moderation    ItemModeration   `gorm:"type:varchar(20);default:'pending';index" json:"moderation"`
	SwappedTo     *string          `gorm:"type:uuid" json:"swapped_to,omitempty"`
	CreatedAt     time.Time        `json:"created_at"`
	UpdatedAt     time.Time        `json:"updated_at"`
}

func (i *Item) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	return nil
}
