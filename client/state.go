package client

import (
	"sync"

	"github.com/example/studenthustle/domain/marketplace"
	domain "github.com/example/studenthustle/domain/user"
)

// CategoryAll disables the category filter.
const CategoryAll = "all"

// View is the top-level screen.
type View int

const (
	ViewTasks View = iota
	ViewDashboard
)

// DashboardTab selects the dashboard listing.
type DashboardTab int

const (
	TabMyTasks DashboardTab = iota
	TabMyApplications
)

// FlashKind styles a flash message.
type FlashKind string

const (
	FlashSuccess FlashKind = "success"
	FlashError   FlashKind = "error"
)

// Flash is an inline status message under the task form or auth dialog.
type Flash struct {
	Kind FlashKind
	Text string
}

// State is everything the client renders from. Slices are replaced, never
// modified in place, so a State returned by Store.State is safe to read.
type State struct {
	User  *domain.PublicUser
	Token string

	Tasks        []marketplace.Task
	TasksLoading bool
	TasksError   string

	Category string
	Search   string
	Lang     string

	View           View
	Tab            DashboardTab
	MyTasks        []marketplace.Task
	MyApplications []marketplace.Application

	Modal Modal
	Flash Flash
}

// LoggedIn reports whether a user and token are held.
func (s State) LoggedIn() bool {
	return s.User != nil && s.Token != ""
}

// InitialState returns the state of a fresh client in lang.
func InitialState(lang string) State {
	if !SupportedLanguage(lang) {
		lang = LangEnglish
	}
	return State{
		Category: CategoryAll,
		Lang:     lang,
		View:     ViewTasks,
		Tab:      TabMyTasks,
		Modal:    ClosedModal(),
	}
}

// Store holds the current State and notifies subscribers after each update.
type Store struct {
	mu          sync.Mutex
	state       State
	subscribers map[int]func(State)
	nextID      int
}

// NewStore creates a store seeded with initial.
func NewStore(initial State) *Store {
	return &Store{
		state:       initial,
		subscribers: make(map[int]func(State)),
	}
}

// State returns the current state.
func (s *Store) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Update applies fn to the state and notifies subscribers outside the lock.
func (s *Store) Update(fn func(*State)) {
	s.mu.Lock()
	fn(&s.state)
	snapshot := s.state
	subs := make([]func(State), 0, len(s.subscribers))
	for _, sub := range s.subscribers {
		subs = append(subs, sub)
	}
	s.mu.Unlock()

	for _, sub := range subs {
		sub(snapshot)
	}
}

// Subscribe registers fn to receive every new state. The returned function
// removes the subscription.
func (s *Store) Subscribe(fn func(State)) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextID
	s.nextID++
	s.subscribers[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subscribers, id)
		s.mu.Unlock()
	}
}
