package models

import (
	"time"

	"github.com/gofrs/uuid"
)

const (
	ChoiceActive   = "active"
	ChoiceInactive = "inactive"
	ChoiceUnknown  = "unknown"
)

// ValidChoice reports whether a submission choice is one of the three
// allowed values. Checked at the request boundary, before any store access.
func ValidChoice(choice string) bool {
	switch choice {
	case ChoiceActive, ChoiceInactive, ChoiceUnknown:
		return true
	}
	return false
}

// TaskResult records one submission. Append-only; RewardCents is copied
// from the task at submission time so later task edits cannot change it.
type TaskResult struct {
	ID          uuid.UUID `json:"id" gorm:"primaryKey;type:uuid"`
	TaskID      uuid.UUID `json:"task_id" gorm:"type:uuid;not null;index"`
	UserID      uuid.UUID `json:"user_id" gorm:"type:uuid;not null;index"`
	Choice      string    `json:"choice" gorm:"not null"`
	RewardCents int64     `json:"reward_cents" gorm:"not null"`
	SubmittedAt time.Time `json:"submitted_at"`
	CreatedAt   time.Time `json:"created_at"`
}

func (TaskResult) TableName() string {
	return "taskresult"
}
