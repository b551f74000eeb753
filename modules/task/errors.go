package task

import "errors"

// Sentinel errors for task operations.
var (
	// ErrTaskFieldsRequired is returned when the title or budget is missing.
	ErrTaskFieldsRequired = errors.New("title and budget are required")

	// ErrInvalidBudget is returned when the budget is not a number.
	ErrInvalidBudget = errors.New("budget must be a number")

	// ErrTaskNotFound is returned when no task has the requested id.
	ErrTaskNotFound = errors.New("task not found")
)
