package entity

import "time"

// SwapStatus is monotonic: once a request leaves "pending" it never
// returns.
type SwapStatus string

const (
	SwapPending  SwapStatus = "pending"
	SwapAccepted SwapStatus = "accepted"
	SwapDeclined SwapStatus = "declined"
)

var swapTransitions = map[SwapStatus]map[SwapStatus]bool{
	SwapPending: {
		SwapAccepted: true,
		SwapDeclined: true,
	},
}

func (s SwapStatus) CanTransition(to SwapStatus) bool {
	return swapTransitions[s][to]
}

func (s SwapStatus) Terminal() bool {
	return len(swapTransitions[s]) == 0
}

type SwapRequest struct {
	ID          string     `json:"id"`
	RequesterID string     `json:"requester_id"`
	OwnerID     string     `json:"owner_id"`
	ItemID      string     `json:"item_id"`
	Status      SwapStatus `json:"status"`
	Message     string     `json:"message,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}
