package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	TaskStatusPending   = "pending"
	TaskStatusCompleted = "completed"
	TaskStatusDisabled  = "disabled"
)

const (
	// DefaultRewardCents is applied whenever a task row carries no reward.
	DefaultRewardCents = 30

	DefaultInstructions = "Please review this property information and confirm whether the listing is still active."
)

// VerificationTask is a property listing a user is asked to confirm.
// Completed tasks are never reassigned and never deleted.
type VerificationTask struct {
	ID             uuid.UUID  `json:"id" gorm:"primaryKey;type:uuid"`
	Title          string     `json:"title" gorm:"not null"`
	Price          float64    `json:"price"`
	Location       string     `json:"location"`
	ImageURL       string     `json:"image_url"`
	PropertyType   string     `json:"property_type"`
	RewardCents    int64      `json:"reward_cents" gorm:"default:30"`
	Instructions   string     `json:"instructions"`
	Status         string     `json:"status" gorm:"not null;default:'pending';index"`
	AssignedTo     *uuid.UUID `json:"assigned_to" gorm:"type:uuid"`
	LastAssignedAt *time.Time `json:"last_assigned_at"`
	CreatedAt      time.Time  `json:"created_at"`
	UpdatedAt      time.Time  `json:"updated_at"`
}

func (VerificationTask) TableName() string {
	return "verificationtask"
}
