package api

import (
	"context"
	"errors"

	domain "github.com/example/studenthustle/domain/user"
	"github.com/example/studenthustle/domain/marketplace"
	"github.com/example/studenthustle/modules/activity"
	"github.com/example/studenthustle/modules/application"
	"github.com/example/studenthustle/modules/task"
)

var errNotImplemented = errors.New("not implemented")

// mockAuthPort implements auth.AuthPort for testing
type mockAuthPort struct {
	registerFunc      func(ctx context.Context, name, email, password string) (*domain.Session, error)
	loginFunc         func(ctx context.Context, email, password string) (*domain.Session, error)
	validateTokenFunc func(ctx context.Context, token string) (*domain.Claims, error)
}

func (m *mockAuthPort) Register(ctx context.Context, name, email, password string) (*domain.Session, error) {
	if m.registerFunc != nil {
		return m.registerFunc(ctx, name, email, password)
	}
	return nil, errNotImplemented
}

func (m *mockAuthPort) Login(ctx context.Context, email, password string) (*domain.Session, error) {
	if m.loginFunc != nil {
		return m.loginFunc(ctx, email, password)
	}
	return nil, errNotImplemented
}

func (m *mockAuthPort) ValidateToken(ctx context.Context, token string) (*domain.Claims, error) {
	if m.validateTokenFunc != nil {
		return m.validateTokenFunc(ctx, token)
	}
	return nil, errNotImplemented
}

func (m *mockAuthPort) GetUser(context.Context, string) (*domain.PublicUser, error) {
	return nil, errNotImplemented
}

type mockTaskPort struct {
	createFunc func(ctx context.Context, req *task.CreateTaskRequest) (*marketplace.Task, error)
	listFunc   func(ctx context.Context) ([]marketplace.Task, error)
}

func (m *mockTaskPort) CreateTask(ctx context.Context, req *task.CreateTaskRequest) (*marketplace.Task, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockTaskPort) GetTask(context.Context, string) (*marketplace.Task, error) {
	return nil, errNotImplemented
}

func (m *mockTaskPort) ListTasks(ctx context.Context) ([]marketplace.Task, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx)
	}
	return nil, errNotImplemented
}

type mockApplicationPort struct {
	createFunc      func(ctx context.Context, req *application.CreateApplicationRequest) (*marketplace.Application, error)
	listForTaskFunc func(ctx context.Context, taskID string) ([]marketplace.Application, error)
	listFunc        func(ctx context.Context, applicantName string) ([]marketplace.Application, error)
}

func (m *mockApplicationPort) CreateApplication(ctx context.Context, req *application.CreateApplicationRequest) (*marketplace.Application, error) {
	if m.createFunc != nil {
		return m.createFunc(ctx, req)
	}
	return nil, errNotImplemented
}

func (m *mockApplicationPort) ListForTask(ctx context.Context, taskID string) ([]marketplace.Application, error) {
	if m.listForTaskFunc != nil {
		return m.listForTaskFunc(ctx, taskID)
	}
	return nil, errNotImplemented
}

func (m *mockApplicationPort) ListApplications(ctx context.Context, applicantName string) ([]marketplace.Application, error) {
	if m.listFunc != nil {
		return m.listFunc(ctx, applicantName)
	}
	return nil, errNotImplemented
}

type mockActivityPort struct {
	recentFunc func(ctx context.Context, limit int) ([]activity.Entry, error)
}

func (m *mockActivityPort) Recent(ctx context.Context, limit int) ([]activity.Entry, error) {
	if m.recentFunc != nil {
		return m.recentFunc(ctx, limit)
	}
	return nil, errNotImplemented
}
