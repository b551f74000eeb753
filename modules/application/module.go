package application

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/studenthustle/config"
	"github.com/example/studenthustle/domain/marketplace"
	"github.com/example/studenthustle/events"
	"github.com/example/studenthustle/modules/task"
	"github.com/example/studenthustle/storage"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// ApplicationModule owns the application repository. It checks task ids
// through the task module.
type ApplicationModule struct {
	storeCfg config.StoreConfig
	handle   *storage.Handle
	taskPort task.TaskPort
	service  *Service
	eventBus mono.EventBus
}

var _ mono.Module = (*ApplicationModule)(nil)
var _ mono.ServiceProviderModule = (*ApplicationModule)(nil)
var _ mono.DependentModule = (*ApplicationModule)(nil)
var _ mono.EventEmitterModule = (*ApplicationModule)(nil)
var _ mono.HealthCheckableModule = (*ApplicationModule)(nil)

func NewModule(storeCfg config.StoreConfig) *ApplicationModule {
	return &ApplicationModule{storeCfg: storeCfg}
}

func (m *ApplicationModule) Name() string {
	return "application"
}

func (m *ApplicationModule) Dependencies() []string {
	return []string{"task"}
}

func (m *ApplicationModule) SetDependencyServiceContainer(dependency string, container mono.ServiceContainer) {
	if dependency == "task" {
		m.taskPort = task.NewTaskAdapter(container)
	}
}

func (m *ApplicationModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *ApplicationModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.ApplicationSubmittedV1.ToBase(),
	}
}

func (m *ApplicationModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-application", json.Unmarshal, json.Marshal, m.createApplication,
	); err != nil {
		return fmt.Errorf("failed to register create-application service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-task-applications", json.Unmarshal, json.Marshal, m.listTaskApplications,
	); err != nil {
		return fmt.Errorf("failed to register list-task-applications service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-applications", json.Unmarshal, json.Marshal, m.listApplications,
	); err != nil {
		return fmt.Errorf("failed to register list-applications service: %w", err)
	}

	log.Printf("[application] Registered services: create-application, list-task-applications, list-applications")
	return nil
}

func (m *ApplicationModule) Start(ctx context.Context) error {
	if m.taskPort == nil {
		return fmt.Errorf("taskPort dependency not set")
	}

	handle, err := storage.Acquire(ctx, m.storeCfg)
	if err != nil {
		return err
	}
	m.handle = handle

	var store Store
	if handle.Mongo != nil {
		if store, err = NewMongoStore(ctx, handle.Mongo); err != nil {
			return fmt.Errorf("failed to prepare application store: %w", err)
		}
	} else {
		repo := NewRepository(handle.SQL)
		if err := repo.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		store = repo
	}

	m.service = NewService(store, m.taskPort)
	log.Printf("[application] Module started (store: %s, depends on: task)", handle.Location())
	return nil
}

func (m *ApplicationModule) Stop(ctx context.Context) error {
	if m.handle != nil {
		if err := storage.Release(ctx, m.handle); err != nil {
			log.Printf("[application] Error closing store: %v", err)
		}
	}
	log.Println("[application] Module stopped")
	return nil
}

func (m *ApplicationModule) Health(ctx context.Context) mono.HealthStatus {
	if m.handle == nil {
		return mono.HealthStatus{Healthy: false, Message: "store not initialized"}
	}
	if err := m.handle.Ping(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("store ping failed: %v", err)}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{"store": m.handle.Location()},
	}
}

// createApplication handles the create-application service request.
func (m *ApplicationModule) createApplication(ctx context.Context, req CreateApplicationRequest, _ *mono.Msg) (marketplace.Application, error) {
	app, err := m.service.CreateApplication(ctx, CreateApplicationInput{
		TaskID:        req.TaskID,
		ApplicantName: req.ApplicantName,
		Message:       req.Message,
		OfferBudget:   req.OfferBudget,
	})
	if err != nil {
		return marketplace.Application{}, err
	}

	if m.eventBus != nil {
		event := events.ApplicationSubmittedEvent{
			ApplicationID: app.ID,
			TaskID:        app.TaskID,
			ApplicantName: app.ApplicantName,
			OfferBudget:   app.OfferBudget,
			SubmittedAt:   app.CreatedAt,
		}
		if err := events.ApplicationSubmittedV1.Publish(m.eventBus, event, nil); err != nil {
			log.Printf("[application] Warning: failed to publish ApplicationSubmitted event for %s: %v", app.ID, err)
		}
	}

	return *app, nil
}

// listTaskApplications handles the list-task-applications service request.
func (m *ApplicationModule) listTaskApplications(ctx context.Context, req ListTaskApplicationsRequest, _ *mono.Msg) (ListApplicationsResponse, error) {
	apps, err := m.service.ListForTask(ctx, req.TaskID)
	if err != nil {
		return ListApplicationsResponse{}, err
	}
	return ListApplicationsResponse{Applications: apps}, nil
}

// listApplications handles the list-applications service request.
func (m *ApplicationModule) listApplications(ctx context.Context, req ListApplicationsRequest, _ *mono.Msg) (ListApplicationsResponse, error) {
	apps, err := m.service.ListApplications(ctx, req.ApplicantName)
	if err != nil {
		return ListApplicationsResponse{}, err
	}
	return ListApplicationsResponse{Applications: apps}, nil
}
