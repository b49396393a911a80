package entities

import (
	"time"

	"github.com/google/uuid"
)

// Transaction is an append-only settlement record. ExternalOrderID carries a
// unique index so a payment order can be settled at most once.
type Transaction struct {
	ID               uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v4()" json:"id"`
	UserID           string     `json:"user_id"`
	ExternalOrderID  string     `gorm:"uniqueIndex" json:"external_order_id"`
	Tier             string     `json:"tier"`
	AmountUSD        float64    `json:"amount_usd"`
	CreditsPurchased int        `json:"credits_purchased"`
	Status           string     `json:"status"` // completed, failed
	CompletedAt      *time.Time `json:"completed_at,omitempty"`

	User *User `gorm:"foreignKey:UserID"`
	Timestamp
}
