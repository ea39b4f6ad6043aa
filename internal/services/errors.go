package services

import "errors"

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrTaskNotFound     = errors.New("task not found")
	ErrNoTasksAvailable = errors.New("no tasks available")
	ErrInvalidTaskID    = errors.New("invalid task id")
	ErrInvalidChoice    = errors.New("invalid choice")
)
