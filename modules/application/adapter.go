package application

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/example/studenthustle/domain/marketplace"
	"github.com/example/studenthustle/modules/task"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ApplicationPort defines the interface for reaching application services.
type ApplicationPort interface {
	CreateApplication(ctx context.Context, req *CreateApplicationRequest) (*marketplace.Application, error)
	ListForTask(ctx context.Context, taskID string) ([]marketplace.Application, error)
	ListApplications(ctx context.Context, applicantName string) ([]marketplace.Application, error)
}

type applicationAdapter struct {
	container mono.ServiceContainer
}

// NewApplicationAdapter creates a new adapter for application services.
func NewApplicationAdapter(container mono.ServiceContainer) ApplicationPort {
	if container == nil {
		panic("application adapter requires non-nil ServiceContainer")
	}
	return &applicationAdapter{container: container}
}

// CreateApplication submits an application via the create-application service.
func (a *applicationAdapter) CreateApplication(ctx context.Context, req *CreateApplicationRequest) (*marketplace.Application, error) {
	var resp marketplace.Application
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		"create-application",
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, mapServiceError(fmt.Errorf("create-application service call failed: %w", err))
	}
	return &resp, nil
}

// ListForTask lists a task's applications via the list-task-applications service.
func (a *applicationAdapter) ListForTask(ctx context.Context, taskID string) ([]marketplace.Application, error) {
	req := ListTaskApplicationsRequest{TaskID: taskID}
	return a.list(ctx, "list-task-applications", &req)
}

// ListApplications lists applications via the list-applications service.
func (a *applicationAdapter) ListApplications(ctx context.Context, applicantName string) ([]marketplace.Application, error) {
	req := ListApplicationsRequest{ApplicantName: applicantName}
	return a.list(ctx, "list-applications", &req)
}

func (a *applicationAdapter) list(ctx context.Context, service string, req any) ([]marketplace.Application, error) {
	var resp ListApplicationsResponse
	if err := helper.CallRequestReplyService(
		ctx,
		a.container,
		service,
		json.Marshal,
		json.Unmarshal,
		req,
		&resp,
	); err != nil {
		return nil, mapServiceError(fmt.Errorf("%s service call failed: %w", service, err))
	}
	if resp.Applications == nil {
		resp.Applications = []marketplace.Application{}
	}
	return resp.Applications, nil
}

// mapServiceError restores sentinel errors from the text of a service error.
func mapServiceError(err error) error {
	if err == nil {
		return nil
	}

	errMsg := strings.ToLower(err.Error())

	if strings.Contains(errMsg, ErrApplicationFieldsRequired.Error()) {
		return ErrApplicationFieldsRequired
	}
	if strings.Contains(errMsg, ErrInvalidOffer.Error()) {
		return ErrInvalidOffer
	}
	if strings.Contains(errMsg, task.ErrTaskNotFound.Error()) {
		return task.ErrTaskNotFound
	}

	return err
}
