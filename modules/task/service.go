package task

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync/atomic"
	"time"

	"github.com/example/studenthustle/domain/marketplace"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

const listCacheKey = "tasks:all"

// ListCache is the subset of the Redis cache the task service uses.
type ListCache interface {
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, key string) error
}

// CreateTaskInput carries the caller-supplied fields of a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Budget      marketplace.Amount
	Category    string
	City        string
	CreatedBy   string
}

// Service implements task creation and listing with an optional
// cache-aside list cache.
type Service struct {
	store   Store
	cache   ListCache
	sfGroup singleflight.Group
	// bumped on every write so in-flight list loads do not repopulate
	// the cache with stale data
	generation atomic.Uint64
	now        func() time.Time
}

// NewService creates a task service. cache may be nil.
func NewService(store Store, cache ListCache) *Service {
	return &Service{
		store: store,
		cache: cache,
		now:   time.Now,
	}
}

// CreateTask validates input, applies defaults and stores the task.
func (s *Service) CreateTask(ctx context.Context, in CreateTaskInput) (*marketplace.Task, error) {
	if strings.TrimSpace(in.Title) == "" || !in.Budget.Provided() {
		return nil, ErrTaskFieldsRequired
	}
	budget, err := in.Budget.Float64()
	if err != nil {
		return nil, ErrInvalidBudget
	}

	t := &marketplace.Task{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		Budget:      budget,
		Category:    orDefault(in.Category, marketplace.DefaultCategory),
		City:        in.City,
		CreatedBy:   orDefault(in.CreatedBy, marketplace.DefaultCreatedBy),
		CreatedAt:   s.now().UTC(),
	}

	if err := s.store.Insert(ctx, t); err != nil {
		return nil, fmt.Errorf("failed to save task: %w", err)
	}

	s.invalidate(ctx)
	return t, nil
}

// GetTask returns the task with the given id.
func (s *Service) GetTask(ctx context.Context, id string) (*marketplace.Task, error) {
	if strings.TrimSpace(id) == "" {
		return nil, ErrTaskNotFound
	}
	return s.store.FindByID(ctx, id)
}

// ListTasks returns all tasks, oldest first. When a cache is configured the
// list is served cache-aside and concurrent misses share one store query.
func (s *Service) ListTasks(ctx context.Context) ([]marketplace.Task, error) {
	if s.cache == nil {
		return s.store.List(ctx)
	}

	var cached []marketplace.Task
	found, err := s.cache.Get(ctx, listCacheKey, &cached)
	if err != nil {
		log.Printf("[task] Cache error for list: %v", err)
	}
	if found {
		return cached, nil
	}

	gen := s.generation.Load()
	val, err, _ := s.sfGroup.Do(fmt.Sprintf("list:%d", gen), func() (any, error) {
		tasks, err := s.store.List(ctx)
		if err != nil {
			return nil, err
		}
		if s.generation.Load() != gen {
			return tasks, nil
		}
		if err := s.cache.Set(ctx, listCacheKey, tasks); err != nil {
			log.Printf("[task] Warning: failed to cache list: %v", err)
			return tasks, nil
		}
		// a write that landed between the check and Set may already have
		// run its Delete
		if s.generation.Load() != gen {
			if err := s.cache.Delete(ctx, listCacheKey); err != nil {
				log.Printf("[task] Warning: failed to drop stale list: %v", err)
			}
		}
		return tasks, nil
	})
	if err != nil {
		return nil, err
	}

	tasks, ok := val.([]marketplace.Task)
	if !ok {
		return nil, errors.New("unexpected list result type")
	}
	return tasks, nil
}

func (s *Service) invalidate(ctx context.Context) {
	s.generation.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.Delete(ctx, listCacheKey); err != nil {
		log.Printf("[task] Warning: failed to invalidate list cache: %v", err)
	}
}

func orDefault(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
