package tasks

import (
	"errors"
	"fmt"
	"time"
	"unicode/utf8"

	"smart-task-api/pkg/types"
)

// Validation limits for task fields.
const (
	MaxTitleLength       = 200
	MaxDescriptionLength = 1000
)

// Validator checks task fields against the service's validation rules
type Validator struct {
	maxTitleLength       int
	maxDescriptionLength int
	now                  func() time.Time
}

// NewValidator creates a validator with default limits
func NewValidator() *Validator {
	return &Validator{
		maxTitleLength:       MaxTitleLength,
		maxDescriptionLength: MaxDescriptionLength,
		now:                  time.Now,
	}
}

// ValidateTitle checks the title length bounds
func (v *Validator) ValidateTitle(title string) error {
	if title == "" {
		return errors.New("task title is required")
	}
	if utf8.RuneCountInString(title) > v.maxTitleLength {
		return fmt.Errorf("task title exceeds %d characters", v.maxTitleLength)
	}
	return nil
}

// ValidateDescription checks the description length bound
func (v *Validator) ValidateDescription(description *string) error {
	if description == nil {
		return nil
	}
	if utf8.RuneCountInString(*description) > v.maxDescriptionLength {
		return fmt.Errorf("task description exceeds %d characters", v.maxDescriptionLength)
	}
	return nil
}

// ValidateDueDate rejects due dates in the past
func (v *Validator) ValidateDueDate(dueDate *time.Time) error {
	if dueDate == nil {
		return nil
	}
	if dueDate.Before(v.now()) {
		return errors.New("due date cannot be in the past")
	}
	return nil
}

// ValidateStatus checks status membership
func (v *Validator) ValidateStatus(status types.TaskStatus) error {
	if !status.Valid() {
		return fmt.Errorf("invalid task status: %q", status)
	}
	return nil
}

// ValidateUpdate checks a merged partial update. The due date is only
// validated when the update sets it, so a task whose due date has already
// passed can still change status or title.
func (v *Validator) ValidateUpdate(task *types.Task, update *TaskUpdate) error {
	if err := v.ValidateTitle(task.Title); err != nil {
		return err
	}
	if err := v.ValidateDescription(task.Description); err != nil {
		return err
	}
	if update.DueDate != nil {
		if err := v.ValidateDueDate(task.DueDate); err != nil {
			return err
		}
	}
	return v.ValidateStatus(task.Status)
}

// ValidateTask runs all field validations on a task
func (v *Validator) ValidateTask(task *types.Task) error {
	if err := v.ValidateTitle(task.Title); err != nil {
		return err
	}
	if err := v.ValidateDescription(task.Description); err != nil {
		return err
	}
	if err := v.ValidateDueDate(task.DueDate); err != nil {
		return err
	}
	return v.ValidateStatus(task.Status)
}
