package storage

import (
	"context"
	"sync"

	"github.com/example/studenthustle/config"
)

// registry holds the handles opened through Acquire, keyed by configuration.
var registry = struct {
	mu      sync.Mutex
	handles map[config.StoreConfig]*Handle
}{handles: make(map[config.StoreConfig]*Handle)}

// Acquire returns the handle shared by every module with the same store
// configuration, opening it on first use. Modules therefore use one Mongo
// client and, for ":memory:", one SQLite database. Each Acquire must be
// paired with Release.
func Acquire(ctx context.Context, cfg config.StoreConfig) (*Handle, error) {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if h, ok := registry.handles[cfg]; ok {
		h.refs++
		return h, nil
	}

	h, err := Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	h.shared = true
	h.key = cfg
	h.refs = 1
	registry.handles[cfg] = h
	return h, nil
}

// Release drops one reference to h and closes it once the last holder lets
// go. Handles from Open are closed immediately.
func Release(ctx context.Context, h *Handle) error {
	if h == nil {
		return nil
	}
	if !h.shared {
		return h.Close(ctx)
	}

	registry.mu.Lock()
	h.refs--
	last := h.refs == 0
	if last {
		delete(registry.handles, h.key)
	}
	registry.mu.Unlock()

	if !last {
		return nil
	}
	return h.Close(ctx)
}
