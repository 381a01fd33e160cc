// Package testutil provides testing utilities.
package testutil

import (
	"context"
	"sync"

	"tasker/internal/store"
)

// Compile-time check to ensure FakeRepository implements store.Repository.
var _ store.Repository = (*FakeRepository)(nil)

// FakeRepository is an in-memory implementation of store.Repository for testing.
// Load and Save copy the store, so commands cannot mutate persisted state
// without saving.
type FakeRepository struct {
	mu    sync.Mutex
	saved *store.Store

	// Call counters
	Locks    int
	Releases int
	Loads    int
	Saves    int

	// Error injection for testing
	LockErr error
	LoadErr error
	SaveErr error
}

// NewFakeRepository creates a FakeRepository holding an empty store.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{saved: store.New()}
}

// AddTask adds a task directly to the persisted state and returns its id.
// It panics if the store has run out of ids.
func (f *FakeRepository) AddTask(description string, completed bool) uint32 {
	f.mu.Lock()
	defer f.mu.Unlock()
	id, err := f.saved.Add(description)
	if err != nil {
		panic(err)
	}
	if completed {
		f.saved.Complete(id)
	}
	return id
}

// Stored returns a copy of the persisted state.
func (f *FakeRepository) Stored() *store.Store {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.saved.Clone()
}

// Lock implements store.Repository.
func (f *FakeRepository) Lock(ctx context.Context) (func(), error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LockErr != nil {
		return nil, f.LockErr
	}
	f.Locks++
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.Releases++
	}, nil
}

// Load implements store.Repository.
func (f *FakeRepository) Load(ctx context.Context) (*store.Store, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.LoadErr != nil {
		return nil, f.LoadErr
	}
	f.Loads++
	return f.saved.Clone(), nil
}

// Save implements store.Repository.
func (f *FakeRepository) Save(ctx context.Context, s *store.Store) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.SaveErr != nil {
		return f.SaveErr
	}
	f.Saves++
	f.saved = s.Clone()
	return nil
}
