package entity

import "time"

// Availability is the settlement lifecycle of an item. The only legal
// transitions are out of "available"; redeemed, swapped and removed are
// terminal.
type Availability string

const (
	ItemAvailable Availability = "available"
	ItemRedeemed  Availability = "redeemed"
	ItemSwapped   Availability = "swapped"
	ItemRemoved   Availability = "removed"
)

var availabilityTransitions = map[Availability]map[Availability]bool{
	ItemAvailable: {
		ItemRedeemed: true,
		ItemSwapped:  true,
		ItemRemoved:  true,
	},
}

// CanTransition reports whether the edge a -> to exists in the
// availability state machine.
func (a Availability) CanTransition(to Availability) bool {
	return availabilityTransitions[a][to]
}

// Terminal reports whether the state permits no further transitions.
func (a Availability) Terminal() bool {
	return len(availabilityTransitions[a]) == 0
}

// Moderation is the admin visibility gate, orthogonal to availability.
type Moderation string

const (
	ModerationPending  Moderation = "pending"
	ModerationApproved Moderation = "approved"
	ModerationRejected Moderation = "rejected"
)

type Item struct {
	ID           string       `json:"id"`
	Title        string       `json:"title"`
	PointsValue  int64        `json:"points_value"`
	UploadedBy   string       `json:"uploaded_by"`
	Availability Availability `json:"availability"`
	Moderation   Moderation   `json:"moderation"`
	SwappedTo    *string      `json:"swapped_to,omitempty"`
	CreatedAt    time.Time    `json:"created_at"`
	UpdatedAt    time.Time    `json:"updated_at"`
}

// Settleable reports whether the item may be the subject of a redemption
// or swap acceptance: it must be approved by moderation and still
// available.
func (i *Item) Settleable() bool {
	return i.Moderation == ModerationApproved && i.Availability == ItemAvailable
}
