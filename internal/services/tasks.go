package services

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"property-verify/backend/internal/models"

	"github.com/gofrs/uuid"
	"gorm.io/gorm"
)

// Assignment is the payload returned to a user who just received a task.
type Assignment struct {
	TaskID       string  `json:"task_id"`
	Title        string  `json:"title"`
	Price        float64 `json:"price"`
	Location     string  `json:"location"`
	ImageURL     string  `json:"image_url"`
	PropertyType string  `json:"property_type"`
	RewardCents  int64   `json:"reward_cents"`
	Instructions string  `json:"instructions"`
}

// Submission confirms a recorded result and the credited reward.
type Submission struct {
	Message     string `json:"message"`
	RewardCents int64  `json:"reward_cents"`
}

type TaskService interface {
	AssignNext(db *gorm.DB, userEmail string) (Assignment, error)
	Submit(db *gorm.DB, userEmail, taskID, choice string) (Submission, error)
}

type TaskServiceImpl struct{}

func NewTaskService() *TaskServiceImpl {
	return &TaskServiceImpl{}
}

// claimAttempts bounds how often AssignNext retries after losing a claim
// race to a concurrent caller.
const claimAttempts = 5

// AssignNext hands the least recently assigned pending task to the user,
// creating the user on first contact. The claim compares against the
// snapshot read by the select, so when two callers race over the same task
// the loser sees zero rows and moves on to the next candidate.
func (s *TaskServiceImpl) AssignNext(db *gorm.DB, userEmail string) (Assignment, error) {
	user, err := findOrCreateUser(db, userEmail)
	if err != nil {
		return Assignment{}, err
	}

	for attempt := 0; attempt < claimAttempts; attempt++ {
		var task models.VerificationTask
		err := db.Where("status = ?", models.TaskStatusPending).
			Order("last_assigned_at IS NOT NULL, last_assigned_at ASC").
			First(&task).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Assignment{}, ErrNoTasksAvailable
		}
		if err != nil {
			return Assignment{}, fmt.Errorf("failed to select task: %w", err)
		}

		claimed, err := claimTask(db, task, user.ID)
		if err != nil {
			return Assignment{}, fmt.Errorf("failed to claim task: %w", err)
		}
		if !claimed {
			// Lost the claim to another caller; pick the next candidate.
			continue
		}

		return buildAssignment(task), nil
	}

	return Assignment{}, ErrNoTasksAvailable
}

// claimTask assigns the task to the user only if nobody has touched it since
// the caller's read. The guard includes last_assigned_at from the snapshot,
// so a concurrent claim on the same still-pending task bumps the timestamp
// and makes every stale claim report zero rows.
func claimTask(db *gorm.DB, task models.VerificationTask, userID uuid.UUID) (bool, error) {
	claim := db.Model(&models.VerificationTask{}).
		Where("id = ? AND status = ?", task.ID, models.TaskStatusPending)
	if task.LastAssignedAt == nil {
		claim = claim.Where("last_assigned_at IS NULL")
	} else {
		claim = claim.Where("last_assigned_at = ?", *task.LastAssignedAt)
	}

	claim = claim.Updates(map[string]interface{}{
		"assigned_to":      userID,
		"last_assigned_at": time.Now().UTC(),
	})
	if claim.Error != nil {
		return false, claim.Error
	}
	return claim.RowsAffected > 0, nil
}

// Submit records the user's choice, marks the task completed and credits the
// wallet by the task's reward, all inside one transaction.
func (s *TaskServiceImpl) Submit(db *gorm.DB, userEmail, taskID, choice string) (Submission, error) {
	if !models.ValidChoice(choice) {
		return Submission{}, ErrInvalidChoice
	}

	var user models.AppUser
	if err := db.Where("email = ?", userEmail).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Submission{}, ErrUserNotFound
		}
		return Submission{}, fmt.Errorf("failed to look up user: %w", err)
	}

	id, err := uuid.FromString(taskID)
	if err != nil {
		return Submission{}, ErrInvalidTaskID
	}

	var task models.VerificationTask
	if err := db.First(&task, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Submission{}, ErrTaskNotFound
		}
		return Submission{}, fmt.Errorf("failed to look up task: %w", err)
	}

	reward := task.RewardCents
	if reward == 0 {
		reward = models.DefaultRewardCents
	}

	result := models.TaskResult{
		ID:          uuid.Must(uuid.NewV4()),
		TaskID:      task.ID,
		UserID:      user.ID,
		Choice:      choice,
		RewardCents: reward,
		SubmittedAt: time.Now().UTC(),
	}

	tx := db.Begin()
	if tx.Error != nil {
		return Submission{}, tx.Error
	}

	if err := tx.Create(&result).Error; err != nil {
		tx.Rollback()
		return Submission{}, fmt.Errorf("failed to record result: %w", err)
	}

	if err := tx.Model(&models.VerificationTask{}).Where("id = ?", task.ID).
		Update("status", models.TaskStatusCompleted).Error; err != nil {
		tx.Rollback()
		return Submission{}, fmt.Errorf("failed to complete task: %w", err)
	}

	if err := tx.Model(&models.AppUser{}).Where("id = ?", user.ID).
		Update("wallet_balance_cents", gorm.Expr("wallet_balance_cents + ?", reward)).Error; err != nil {
		tx.Rollback()
		return Submission{}, fmt.Errorf("failed to credit wallet: %w", err)
	}

	if err := tx.Commit().Error; err != nil {
		return Submission{}, err
	}

	return Submission{
		Message:     fmt.Sprintf("Task completed! $%.2f has been added to your wallet.", float64(reward)/100),
		RewardCents: reward,
	}, nil
}

func findOrCreateUser(db *gorm.DB, email string) (models.AppUser, error) {
	var user models.AppUser
	err := db.Where("email = ?", email).First(&user).Error
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return models.AppUser{}, fmt.Errorf("failed to look up user: %w", err)
	}

	user = models.AppUser{
		ID:    uuid.Must(uuid.NewV4()),
		Name:  emailLocalPart(email),
		Email: email,
	}
	if err := db.Create(&user).Error; err != nil {
		return models.AppUser{}, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func emailLocalPart(email string) string {
	if i := strings.Index(email, "@"); i > 0 {
		return email[:i]
	}
	return email
}

func buildAssignment(task models.VerificationTask) Assignment {
	reward := task.RewardCents
	if reward == 0 {
		reward = models.DefaultRewardCents
	}
	instructions := task.Instructions
	if instructions == "" {
		instructions = models.DefaultInstructions
	}

	return Assignment{
		TaskID:       task.ID.String(),
		Title:        task.Title,
		Price:        task.Price,
		Location:     task.Location,
		ImageURL:     task.ImageURL,
		PropertyType: task.PropertyType,
		RewardCents:  reward,
		Instructions: instructions,
	}
}
