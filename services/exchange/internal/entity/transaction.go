package entity

import "time"

type TransactionType string

const (
	TransactionEarn   TransactionType = "earn"
	TransactionRedeem TransactionType = "redeem"
	TransactionSwap   TransactionType = "swap"
)

// Transaction is one append-only ledger entry. Points carry their sign:
// negative for outgoing (redeem), positive for incoming (earn), zero for
// a pure swap.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      string          `json:"user_id"`
	ItemID      string          `json:"item_id,omitempty"`
	Type        TransactionType `json:"transaction_type"`
	Points      int64           `json:"points"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}
