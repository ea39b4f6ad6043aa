package handlers

import (
	"errors"
	"net/http"

	"property-verify/backend/internal/models"
	"property-verify/backend/internal/services"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type TaskHandler struct {
	db            *gorm.DB
	taskService   services.TaskService
	walletService services.WalletService
}

func NewTaskHandler(db *gorm.DB, taskService services.TaskService, walletService services.WalletService) *TaskHandler {
	return &TaskHandler{db: db, taskService: taskService, walletService: walletService}
}

// AssignTask hands the next available verification task to the requesting
// user, creating the user record on first contact.
func (h *TaskHandler) AssignTask(c *gin.Context) {
	var input struct {
		UserEmail string `json:"user_email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	assignment, err := h.taskService.AssignNext(h.db, input.UserEmail)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, assignment)
}

// SubmitTask records a verification result, marks the task completed and
// credits the user's wallet. The choice is validated before any store access.
func (h *TaskHandler) SubmitTask(c *gin.Context) {
	var input struct {
		UserEmail string `json:"user_email" binding:"required"`
		TaskID    string `json:"task_id" binding:"required"`
		Choice    string `json:"choice" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if !models.ValidChoice(input.Choice) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "choice must be one of active, inactive, unknown"})
		return
	}

	submission, err := h.taskService.Submit(h.db, input.UserEmail, input.TaskID, input.Choice)
	if err != nil {
		handleServiceError(c, err)
		return
	}

	h.walletService.InvalidateBalance(input.UserEmail)

	c.JSON(http.StatusOK, submission)
}

func handleServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrNoTasksAvailable):
		c.JSON(http.StatusNotFound, gin.H{"error": "No tasks available"})
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
	case errors.Is(err, services.ErrTaskNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Task not found"})
	case errors.Is(err, services.ErrInvalidTaskID):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid task id"})
	case errors.Is(err, services.ErrInvalidChoice):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "choice must be one of active, inactive, unknown"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to process request"})
	}
}
