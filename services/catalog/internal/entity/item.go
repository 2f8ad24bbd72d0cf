package entity

import (
	"errors"
	"time"
)

var (
	ErrNotFound   = errors.New("item not found")
	ErrNotOwner   = errors.New("you can only modify your own items")
	ErrItemLocked = errors.New("item can no longer be modified")

	ErrStorageUnavailable = errors.New("storage unavailable")
)

type Availability string

const (
	ItemAvailable Availability = "available"
	ItemRedeemed  Availability = "redeemed"
	ItemSwapped   Availability = "swapped"
	ItemRemoved   Availability = "removed"
)

type Moderation string

const (
	ModerationPending  Moderation = "pending"
	ModerationApproved Moderation = "approved"
	ModerationRejected Moderation = "rejected"
)

type Item struct {
	ID            string       `json:"id"`
	Title         string       `json:"title"`
	Description   string       `json:"description"`
	Category      string       `json:"category"`
	Type          string       `json:"type"`
	Size          string       `json:"size"`
	Condition     string       `json:"condition"`
	Tags          []string     `json:"tags"`
	Images        []string     `json:"images"`
	Brand         string       `json:"brand"`
	OriginalPrice int64        `json:"original_price"`
	AgeMonths     int          `json:"age_months"`
	PointsValue   int64        `json:"points_value"`
	UploadedBy    string       `json:"uploaded_by"`
	Availability  Availability `json:"availability"`
	Moderation    Moderation   `json:"moderation"`
	CreatedAt     time.Time    `json:"created_at"`
	UpdatedAt     time.Time    `json:"updated_at"`
}

// Editable reports whether the owner may still update or withdraw the
// listing. Settled and removed items are frozen.
func (i *Item) Editable() bool {
	return i.Availability == ItemAvailable
}
