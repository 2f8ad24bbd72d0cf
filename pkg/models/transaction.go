package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TransactionType string

const (
	TransactionTypeEarn   TransactionType = "earn"
	TransactionTypeRedeem TransactionType = "redeem"
	TransactionTypeSwap   TransactionType = "swap"
)

// Transaction is an append-only ledger entry. Rows are never updated or
// deleted after creation.
type Transaction struct {
	ID          string          `gorm:"type:uuid;primary_key" json:"id"`
	UserID      string          `gorm:"type:uuid;not null;index" json:"user_id"`
	ItemID      string          `gorm:"type:uuid;index" json:"item_id,omitempty"`
	Type        TransactionType `gorm:"type:varchar(20);not null" json:"transaction_type"`
	Points      int64           `gorm:"not null" json:"points"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return nil
}
