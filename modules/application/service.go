package application

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/example/studenthustle/domain/marketplace"
	"github.com/example/studenthustle/modules/task"
	"github.com/google/uuid"
)

// TaskLookup resolves task ids. It is satisfied by task.TaskPort.
type TaskLookup interface {
	GetTask(ctx context.Context, taskID string) (*marketplace.Task, error)
}

// CreateApplicationInput carries the caller-supplied fields of an application.
type CreateApplicationInput struct {
	TaskID        string
	ApplicantName string
	Message       string
	OfferBudget   marketplace.Amount
}

// Service implements applying to tasks and listing applications.
type Service struct {
	store Store
	tasks TaskLookup
	now   func() time.Time
}

// NewService creates an application service.
func NewService(store Store, tasks TaskLookup) *Service {
	return &Service{
		store: store,
		tasks: tasks,
		now:   time.Now,
	}
}

// CreateApplication records an application against an existing task.
func (s *Service) CreateApplication(ctx context.Context, in CreateApplicationInput) (*marketplace.Application, error) {
	if strings.TrimSpace(in.ApplicantName) == "" || strings.TrimSpace(in.Message) == "" {
		return nil, ErrApplicationFieldsRequired
	}

	var offer *float64
	if in.OfferBudget.Provided() {
		v, err := in.OfferBudget.Float64()
		if err != nil {
			return nil, ErrInvalidOffer
		}
		offer = &v
	}

	if strings.TrimSpace(in.TaskID) == "" {
		return nil, task.ErrTaskNotFound
	}
	if _, err := s.tasks.GetTask(ctx, in.TaskID); err != nil {
		if errors.Is(err, task.ErrTaskNotFound) {
			return nil, task.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to look up task: %w", err)
	}

	app := &marketplace.Application{
		ID:            uuid.New().String(),
		TaskID:        in.TaskID,
		ApplicantName: in.ApplicantName,
		Message:       in.Message,
		OfferBudget:   offer,
		CreatedAt:     s.now().UTC(),
	}
	if err := s.store.Insert(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to save application: %w", err)
	}
	return app, nil
}

// ListForTask returns a task's applications, newest first. Unknown tasks
// yield an empty list.
func (s *Service) ListForTask(ctx context.Context, taskID string) ([]marketplace.Application, error) {
	return s.store.ListByTask(ctx, taskID)
}

// ListApplications returns all applications, newest first, filtered to one
// applicant when applicantName is set.
func (s *Service) ListApplications(ctx context.Context, applicantName string) ([]marketplace.Application, error) {
	return s.store.List(ctx, applicantName)
}
