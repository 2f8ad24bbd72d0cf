package entity

import (
	"errors"
	"time"
)

var (
	ErrNotFound = errors.New("notification not found")
)

// Notification kinds produced by exchange events.
const (
	TypeSwapRequested = "swap_requested"
	TypeSwapResolved  = "swap_resolved"
	TypeItemRedeemed  = "item_redeemed"
)

type Notification struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Type      string    `json:"type"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	SwapID    string    `json:"swap_id,omitempty"`
	ItemID    string    `json:"item_id,omitempty"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
