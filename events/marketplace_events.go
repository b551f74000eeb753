package events

import (
	"time"

	"github.com/go-monolith/mono/pkg/helper"
)

// UserRegisteredEvent is emitted when a new account is created.
type UserRegisteredEvent struct {
	UserID       string    `json:"user_id"`
	Name         string    `json:"name"`
	RegisteredAt time.Time `json:"registered_at"`
}

// UserRegisteredV1 is the typed event definition for registrations.
// Subject: events.auth.v1.user-registered
var UserRegisteredV1 = helper.EventDefinition[UserRegisteredEvent](
	"auth", "UserRegistered", "v1",
)

// TaskPostedEvent is emitted when a task is created.
type TaskPostedEvent struct {
	TaskID    string    `json:"task_id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Budget    float64   `json:"budget"`
	CreatedBy string    `json:"created_by"`
	CreatedAt time.Time `json:"created_at"`
}

// TaskPostedV1 is the typed event definition for task creation.
// Subject: events.task.v1.task-posted
var TaskPostedV1 = helper.EventDefinition[TaskPostedEvent](
	"task", "TaskPosted", "v1",
)

// ApplicationSubmittedEvent is emitted when someone applies to a task.
type ApplicationSubmittedEvent struct {
	ApplicationID string    `json:"application_id"`
	TaskID        string    `json:"task_id"`
	ApplicantName string    `json:"applicant_name"`
	OfferBudget   *float64  `json:"offer_budget,omitempty"`
	SubmittedAt   time.Time `json:"submitted_at"`
}

// ApplicationSubmittedV1 is the typed event definition for applications.
// Subject: events.application.v1.application-submitted
var ApplicationSubmittedV1 = helper.EventDefinition[ApplicationSubmittedEvent](
	"application", "ApplicationSubmitted", "v1",
)
