package task

import (
	"context"
	"encoding/json"
	"fmt"
	"log"

	"github.com/example/studenthustle/config"
	"github.com/example/studenthustle/domain/marketplace"
	"github.com/example/studenthustle/events"
	"github.com/example/studenthustle/storage"
	"github.com/go-monolith/mono"
	"github.com/go-monolith/mono/pkg/helper"
)

// TaskModule owns the task repository.
type TaskModule struct {
	storeCfg config.StoreConfig
	handle   *storage.Handle
	cache    ListCache
	service  *Service
	eventBus mono.EventBus
}

var _ mono.Module = (*TaskModule)(nil)
var _ mono.ServiceProviderModule = (*TaskModule)(nil)
var _ mono.EventEmitterModule = (*TaskModule)(nil)
var _ mono.HealthCheckableModule = (*TaskModule)(nil)

func NewModule(storeCfg config.StoreConfig) *TaskModule {
	return &TaskModule{storeCfg: storeCfg}
}

func (m *TaskModule) Name() string {
	return "task"
}

// SetCache enables the list cache. Call before Start.
func (m *TaskModule) SetCache(c ListCache) {
	m.cache = c
}

func (m *TaskModule) SetEventBus(bus mono.EventBus) {
	m.eventBus = bus
}

func (m *TaskModule) EmitEvents() []mono.BaseEventDefinition {
	return []mono.BaseEventDefinition{
		events.TaskPostedV1.ToBase(),
	}
}

func (m *TaskModule) RegisterServices(container mono.ServiceContainer) error {
	if err := helper.RegisterTypedRequestReplyService(
		container, "create-task", json.Unmarshal, json.Marshal, m.createTask,
	); err != nil {
		return fmt.Errorf("failed to register create-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "get-task", json.Unmarshal, json.Marshal, m.getTask,
	); err != nil {
		return fmt.Errorf("failed to register get-task service: %w", err)
	}

	if err := helper.RegisterTypedRequestReplyService(
		container, "list-tasks", json.Unmarshal, json.Marshal, m.listTasks,
	); err != nil {
		return fmt.Errorf("failed to register list-tasks service: %w", err)
	}

	log.Printf("[task] Registered services: create-task, get-task, list-tasks")
	return nil
}

func (m *TaskModule) Start(ctx context.Context) error {
	handle, err := storage.Acquire(ctx, m.storeCfg)
	if err != nil {
		return err
	}
	m.handle = handle

	var store Store
	if handle.Mongo != nil {
		if store, err = NewMongoStore(ctx, handle.Mongo); err != nil {
			return fmt.Errorf("failed to prepare task store: %w", err)
		}
	} else {
		repo := NewRepository(handle.SQL)
		if err := repo.Migrate(); err != nil {
			return fmt.Errorf("failed to migrate database: %w", err)
		}
		store = repo
	}

	m.service = NewService(store, m.cache)
	if m.eventBus == nil {
		log.Println("[task] Warning: eventBus not set, events will not be published")
	}
	log.Printf("[task] Module started (store: %s, list cache: %t)", handle.Location(), m.cache != nil)
	return nil
}

func (m *TaskModule) Stop(ctx context.Context) error {
	if m.handle != nil {
		if err := storage.Release(ctx, m.handle); err != nil {
			log.Printf("[task] Error closing store: %v", err)
		}
	}
	log.Println("[task] Module stopped")
	return nil
}

func (m *TaskModule) Health(ctx context.Context) mono.HealthStatus {
	if m.handle == nil {
		return mono.HealthStatus{Healthy: false, Message: "store not initialized"}
	}
	if err := m.handle.Ping(ctx); err != nil {
		return mono.HealthStatus{Healthy: false, Message: fmt.Sprintf("store ping failed: %v", err)}
	}
	return mono.HealthStatus{
		Healthy: true,
		Message: "operational",
		Details: map[string]any{
			"store":      m.handle.Location(),
			"list_cache": m.cache != nil,
		},
	}
}

// createTask handles the create-task service request.
func (m *TaskModule) createTask(ctx context.Context, req CreateTaskRequest, _ *mono.Msg) (marketplace.Task, error) {
	t, err := m.service.CreateTask(ctx, CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Budget:      req.Budget,
		Category:    req.Category,
		City:        req.City,
		CreatedBy:   req.CreatedBy,
	})
	if err != nil {
		return marketplace.Task{}, err
	}

	if m.eventBus != nil {
		event := events.TaskPostedEvent{
			TaskID:    t.ID,
			Title:     t.Title,
			Category:  t.Category,
			Budget:    t.Budget,
			CreatedBy: t.CreatedBy,
			CreatedAt: t.CreatedAt,
		}
		if err := events.TaskPostedV1.Publish(m.eventBus, event, nil); err != nil {
			// Event publishing is best-effort; log but don't fail the operation
			log.Printf("[task] Warning: failed to publish TaskPosted event for task %s: %v", t.ID, err)
		}
	}

	return *t, nil
}

// getTask handles the get-task service request.
func (m *TaskModule) getTask(ctx context.Context, req GetTaskRequest, _ *mono.Msg) (marketplace.Task, error) {
	t, err := m.service.GetTask(ctx, req.TaskID)
	if err != nil {
		return marketplace.Task{}, err
	}
	return *t, nil
}

// listTasks handles the list-tasks service request.
func (m *TaskModule) listTasks(ctx context.Context, _ ListTasksRequest, _ *mono.Msg) (ListTasksResponse, error) {
	tasks, err := m.service.ListTasks(ctx)
	if err != nil {
		return ListTasksResponse{}, err
	}
	return ListTasksResponse{Tasks: tasks}, nil
}
