package client

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_NotifiesSubscribers(t *testing.T) {
	store := NewStore(InitialState(LangEnglish))

	var seen []string
	unsubscribe := store.Subscribe(func(s State) {
		seen = append(seen, s.Search)
	})

	store.Update(func(s *State) { s.Search = "tutor" })
	store.Update(func(s *State) { s.Search = "dog" })
	unsubscribe()
	store.Update(func(s *State) { s.Search = "ignored" })

	assert.Equal(t, []string{"tutor", "dog"}, seen)
	assert.Equal(t, "ignored", store.State().Search)
}

func TestStore_SubscriberMayReadStore(t *testing.T) {
	store := NewStore(InitialState(LangEnglish))
	var got string
	store.Subscribe(func(State) {
		got = store.State().Category
	})

	store.Update(func(s *State) { s.Category = "tech" })
	assert.Equal(t, "tech", got)
}

func TestStore_ConcurrentUpdates(t *testing.T) {
	store := NewStore(InitialState(LangEnglish))
	var mu sync.Mutex
	calls := 0
	store.Subscribe(func(State) {
		mu.Lock()
		calls++
		mu.Unlock()
	})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			store.Update(func(s *State) { s.Search += "x" })
		}()
	}
	wg.Wait()

	assert.Len(t, store.State().Search, 50)
	assert.Equal(t, 50, calls)
}
