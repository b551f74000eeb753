package task

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/studenthustle/domain/marketplace"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskPort defines the interface other modules use to reach task services.
type TaskPort interface {
	CreateTask(ctx context.Context, req *CreateTaskRequest) (*marketplace.Task, error)
	GetTask(ctx context.Context, taskID string) (*marketplace.Task, error)
	ListTasks(ctx context.Context) ([]marketplace.Task, error)
}

// taskAdapter wraps ServiceContainer for type-safe cross-module communication.
type taskAdapter struct {
	container mono.ServiceContainer
}

// NewTaskAdapter creates a new adapter for task services.
// container is the ServiceContainer from the task module received via SetDependencyServiceContainer.
func NewTaskAdapter(container mono.ServiceContainer) TaskPort {
	if container == nil {
		panic("task adapter requires non-nil ServiceContainer")
	}
	return &taskAdapter{container: container}
}

// CreateTask creates a new task via the create-task service.
func (a *taskAdapter) CreateTask(ctx context.Context, req *CreateTaskRequest) (*marketplace.Task, error) {
	var resp marketplace.Task
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create-task",
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, mapServiceError(fmt.Errorf("create-task service call failed: %w", err))
	}
	return &resp, nil
}

// GetTask retrieves a task by ID via the get-task service.
func (a *taskAdapter) GetTask(ctx context.Context, taskID string) (*marketplace.Task, error) {
	req := GetTaskRequest{TaskID: taskID}
	var resp marketplace.Task
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"get-task",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(fmt.Errorf("get-task service call failed: %w", err))
	}
	return &resp, nil
}

// ListTasks lists every task via the list-tasks service.
func (a *taskAdapter) ListTasks(ctx context.Context) ([]marketplace.Task, error) {
	req := ListTasksRequest{}
	var resp ListTasksResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"list-tasks",
		json.Marshal,
		json.Unmarshal,
		&req,
		&resp,
	); err != nil {
		return nil, mapServiceError(fmt.Errorf("list-tasks service call failed: %w", err))
	}
	if resp.Tasks == nil {
		resp.Tasks = []marketplace.Task{}
	}
	return resp.Tasks, nil
}

// mapServiceError restores sentinel errors from the text of a service error.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, ErrTaskFieldsRequired.Error()) {
		return ErrTaskFieldsRequired
	}
	if strings.Contains(errMsg, ErrInvalidBudget.Error()) {
		return ErrInvalidBudget
	}
	if strings.Contains(errMsg, ErrTaskNotFound.Error()) {
		return ErrTaskNotFound
	}

	return err
}
