package cache

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/example/studenthustle/config"
	"github.com/example/studenthustle/domain/marketplace"
	"github.com/example/studenthustle/modules/task"
	"github.com/redis/go-redis/v9"
)

var _ task.ListCache = (*Cache)(nil)

func testRedisAddr() string {
	if addr := os.Getenv("REDIS_TEST_ADDR"); addr != "" {
		return addr
	}
	return "localhost:6379"
}

// setupTestCache creates a cache instance for testing.
// Returns the cache and a cleanup function.
func setupTestCache(t *testing.T, prefix string) (*Cache, func()) {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: testRedisAddr(),
	})

	ctx := context.Background()
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		t.Skipf("Redis not available at %s: %v", testRedisAddr(), err)
	}

	cleanupKeys(ctx, client, prefix+"*")
	cache := New(client, prefix, 5*time.Minute)

	cleanup := func() {
		cleanupKeys(ctx, client, prefix+"*")
		client.Close()
	}

	return cache, cleanup
}

// cleanupKeys removes all keys matching the pattern.
func cleanupKeys(ctx context.Context, client *redis.Client, pattern string) {
	var cursor uint64
	for {
		keys, nextCursor, err := client.Scan(ctx, cursor, pattern, 100).Result()
		if err != nil {
			return
		}
		if len(keys) > 0 {
			client.Del(ctx, keys...)
		}
		cursor = nextCursor
		if cursor == 0 {
			break
		}
	}
}

func TestNewModule(t *testing.T) {
	m := NewModule(config.CacheConfig{RedisAddr: "localhost:6379", Prefix: "sh:", TTL: time.Minute})
	defer m.GetCache().Close()

	if m.Name() != "cache" {
		t.Errorf("Name() = %q, want %q", m.Name(), "cache")
	}
	c := m.GetCache()
	if c == nil {
		t.Fatal("GetCache() returned nil before Start")
	}
	if c.prefix != "sh:" {
		t.Errorf("prefix = %q, want %q", c.prefix, "sh:")
	}
	if c.ttl != time.Minute {
		t.Errorf("ttl = %v, want %v", c.ttl, time.Minute)
	}
}

func TestCache_TaskListRoundTrip(t *testing.T) {
	cache, cleanup := setupTestCache(t, "test:tasks:")
	defer cleanup()

	ctx := context.Background()
	created := time.Date(2024, 9, 1, 9, 0, 0, 0, time.UTC)
	tasks := []marketplace.Task{
		{ID: "a", Title: "Tutor", Budget: 20, Category: "study", CreatedBy: "Ana", CreatedAt: created},
		{ID: "b", Title: "Logo", Budget: 50, Category: "creative", CreatedBy: "Ion", CreatedAt: created.Add(time.Hour)},
	}

	if err := cache.Set(ctx, "tasks:all", tasks); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	var got []marketplace.Task
	found, err := cache.Get(ctx, "tasks:all", &got)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !found {
		t.Fatal("Get() returned found = false, want true")
	}
	if len(got) != 2 || got[1].Title != "Logo" || !got[0].CreatedAt.Equal(created) {
		t.Errorf("Get() = %+v, want %+v", got, tasks)
	}
}

func TestCache_GetMiss(t *testing.T) {
	cache, cleanup := setupTestCache(t, "test:miss:")
	defer cleanup()

	var result []marketplace.Task
	found, err := cache.Get(context.Background(), "nonexistent", &result)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if found {
		t.Error("Get() returned found = true for nonexistent key, want false")
	}
}

func TestCache_Delete(t *testing.T) {
	cache, cleanup := setupTestCache(t, "test:delete:")
	defer cleanup()

	ctx := context.Background()
	if err := cache.Set(ctx, "to-delete", "some value"); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := cache.Delete(ctx, "to-delete"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	var result string
	if found, _ := cache.Get(ctx, "to-delete", &result); found {
		t.Error("Key should not exist after deletion")
	}
}

func TestCache_Stats(t *testing.T) {
	cache, cleanup := setupTestCache(t, "test:stats:")
	defer cleanup()

	ctx := context.Background()
	var result string

	cache.Set(ctx, "stats-test", "value")
	cache.Get(ctx, "stats-test", &result)
	cache.Get(ctx, "nonexistent", &result)
	cache.Get(ctx, "stats-test", &result)
	cache.Delete(ctx, "stats-test")

	stats := cache.GetStats()
	if stats.Sets != 1 || stats.Hits != 2 || stats.Misses != 1 || stats.Deletes != 1 {
		t.Errorf("stats = %+v, want 1 set, 2 hits, 1 miss, 1 delete", stats)
	}
	expectedHitRate := float64(2) / float64(3) * 100
	if stats.HitRate < expectedHitRate-0.01 || stats.HitRate > expectedHitRate+0.01 {
		t.Errorf("HitRate = %f, want ~%f", stats.HitRate, expectedHitRate)
	}
}

func TestCache_UnreachableCountsErrors(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()
	cache := New(client, "x:", time.Minute)

	var result string
	found, err := cache.Get(context.Background(), "k", &result)
	if err == nil || found {
		t.Fatalf("Get() = (%v, %v), want an error", found, err)
	}
	if got := cache.GetStats().Errors; got != 1 {
		t.Errorf("Errors = %d, want 1", got)
	}
}

func TestCache_BacksTaskService(t *testing.T) {
	cache, cleanup := setupTestCache(t, "test:service:")
	defer cleanup()

	ctx := context.Background()
	svc := task.NewService(&staticStore{tasks: []marketplace.Task{{ID: "only", Title: "Cached task", Budget: 1}}}, cache)

	for i := 0; i < 3; i++ {
		tasks, err := svc.ListTasks(ctx)
		if err != nil {
			t.Fatalf("ListTasks() error = %v", err)
		}
		if len(tasks) != 1 {
			t.Fatalf("len(tasks) = %d, want 1", len(tasks))
		}
	}

	stats := cache.GetStats()
	if stats.Misses != 1 || stats.Hits != 2 {
		t.Errorf("stats = %+v, want 1 miss then 2 hits", stats)
	}
}

type staticStore struct {
	tasks []marketplace.Task
}

func (s *staticStore) Insert(context.Context, *marketplace.Task) error { return nil }

func (s *staticStore) FindByID(context.Context, string) (*marketplace.Task, error) {
	return nil, task.ErrTaskNotFound
}

func (s *staticStore) List(context.Context) ([]marketplace.Task, error) {
	return s.tasks, nil
}
