package models

import (
	"time"

	"github.com/gofrs/uuid"
)

// AppUser is created on a user's first assignment request. The wallet
// balance only ever moves up, by the reward of a submitted task.
type AppUser struct {
	ID                 uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	Name               string    `json:"name" gorm:"not null"`
	Email              string    `json:"email" gorm:"unique;not null"`
	WalletBalanceCents int64     `json:"wallet_balance_cents" gorm:"not null;default:0"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

func (AppUser) TableName() string {
	return "appuser"
}
