package entities

import (
	"time"
)

type Timestamp struct {
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// User is the per-account credit ledger row. The ID is the subject claim
// issued by the external identity provider; it is never generated here.
type User struct {
	ID                    string `gorm:"primary_key" json:"id"`
	Credits               int    `json:"credits"`
	TotalCreditsPurchased int    `json:"total_credits_purchased"`
	Role                  string `gorm:"default:'user'" json:"role"` // user, admin

	Transactions []*Transaction `gorm:"foreignKey:UserID"`
	Generations  []*Generation  `gorm:"foreignKey:UserID"`
	Timestamp
}
