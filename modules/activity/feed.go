package activity

import (
	"sync"
	"time"
)

// Kinds of activity entries.
const (
	KindUserRegistered       = "user_registered"
	KindTaskPosted           = "task_posted"
	KindApplicationSubmitted = "application_submitted"
)

// Entry is one line in the activity feed.
type Entry struct {
	Kind      string    `json:"kind"`
	SubjectID string    `json:"subjectId"`
	Message   string    `json:"message"`
	At        time.Time `json:"at"`
}

// Feed keeps the most recent entries up to a fixed capacity.
type Feed struct {
	mu       sync.RWMutex
	entries  []Entry
	capacity int
}

// NewFeed creates a feed holding at most capacity entries.
func NewFeed(capacity int) *Feed {
	if capacity <= 0 {
		capacity = 50
	}
	return &Feed{
		entries:  make([]Entry, 0, capacity),
		capacity: capacity,
	}
}

// Add appends an entry, evicting the oldest when full.
func (f *Feed) Add(e Entry) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.entries) == f.capacity {
		copy(f.entries, f.entries[1:])
		f.entries = f.entries[:len(f.entries)-1]
	}
	f.entries = append(f.entries, e)
}

// Recent returns up to limit entries, newest first. A limit of zero or less
// returns everything.
func (f *Feed) Recent(limit int) []Entry {
	f.mu.RLock()
	defer f.mu.RUnlock()

	n := len(f.entries)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]Entry, 0, n)
	for i := len(f.entries) - 1; i >= 0 && len(out) < n; i-- {
		out = append(out, f.entries[i])
	}
	return out
}
