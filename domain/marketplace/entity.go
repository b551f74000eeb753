// Package marketplace holds the task and application records shared by the
// task, application and api modules.
package marketplace

import (
	"time"
)

// Defaults applied when optional task fields are left blank.
const (
	DefaultCategory  = "general"
	DefaultCreatedBy = "Anonymous"
)

// Task is a posted gig. Tasks are never updated or deleted.
type Task struct {
	ID          string    `gorm:"primaryKey;type:text" bson:"_id" json:"id"`
	Title       string    `gorm:"not null;type:text" bson:"title" json:"title"`
	Description string    `gorm:"type:text" bson:"description" json:"description"`
	Budget      float64   `gorm:"not null" bson:"budget" json:"budget"`
	Category    string    `gorm:"type:text;index" bson:"category" json:"category"`
	City        string    `gorm:"type:text" bson:"city" json:"city"`
	CreatedBy   string    `gorm:"type:text" bson:"created_by" json:"createdBy"`
	CreatedAt   time.Time `gorm:"index" bson:"created_at" json:"createdAt"`
}

// TableName returns the table name for the Task entity.
func (Task) TableName() string {
	return "tasks"
}

// Application is an offer to complete a task. CreatedAt orders listings
// newest first.
type Application struct {
	ID            string    `gorm:"primaryKey;type:text" bson:"_id" json:"id"`
	TaskID        string    `gorm:"not null;type:text;index" bson:"task_id" json:"taskId"`
	ApplicantName string    `gorm:"not null;type:text;index" bson:"applicant_name" json:"applicantName"`
	Message       string    `gorm:"not null;type:text" bson:"message" json:"message"`
	OfferBudget   *float64  `bson:"offer_budget,omitempty" json:"offerBudget,omitempty"`
	CreatedAt     time.Time `gorm:"index" bson:"created_at" json:"createdAt"`
}

// TableName returns the table name for the Application entity.
func (Application) TableName() string {
	return "applications"
}
