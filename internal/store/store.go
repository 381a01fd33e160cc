// Package store holds the task collection and its on-disk representation.
package store

import (
	"errors"
	"math"
)

// ErrIDsExhausted is returned by Add once next_id has reached its maximum.
var ErrIDsExhausted = errors.New("task ids exhausted")

// MaxNextID is the largest next_id a store can hold. The last issued id is MaxNextID-1.
const MaxNextID = math.MaxUint32

// Task represents a single task item.
type Task struct {
	ID          uint32 `json:"id"`
	Description string `json:"description"`
	Completed   bool   `json:"completed"`
}

// Store is the persisted aggregate: tasks in display order plus the id counter.
// NextID is never reused, even after the task holding the previous id is deleted.
type Store struct {
	Tasks  []Task `json:"tasks"`
	NextID uint32 `json:"next_id"`
}

// New returns an empty store whose first task will get id 1.
func New() *Store {
	return &Store{
		Tasks:  []Task{},
		NextID: 1,
	}
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.Tasks)
}

// Add appends a new open task and returns its id.
// The store is left unchanged if no id is left to issue.
func (s *Store) Add(description string) (uint32, error) {
	if s.NextID >= MaxNextID {
		return 0, ErrIDsExhausted
	}
	id := s.NextID
	s.Tasks = append(s.Tasks, Task{
		ID:          id,
		Description: description,
	})
	s.NextID++
	return id, nil
}

// Find returns the task with the given id, or nil if absent.
// The returned pointer aliases the stored task.
func (s *Store) Find(id uint32) *Task {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			return &s.Tasks[i]
		}
	}
	return nil
}

// Update replaces the description of a task.
// Returns false if no task has the id.
func (s *Store) Update(id uint32, description string) bool {
	task := s.Find(id)
	if task == nil {
		return false
	}
	task.Description = description
	return true
}

// Delete removes a task, keeping the relative order of the others.
// Returns false if no task has the id.
func (s *Store) Delete(id uint32) bool {
	for i := range s.Tasks {
		if s.Tasks[i].ID == id {
			s.Tasks = append(s.Tasks[:i], s.Tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Complete marks a task completed. Completing a completed task is a no-op.
// Returns false if no task has the id.
func (s *Store) Complete(id uint32) bool {
	task := s.Find(id)
	if task == nil {
		return false
	}
	task.Completed = true
	return true
}

// Clone returns a deep copy of s.
func (s *Store) Clone() *Store {
	tasks := make([]Task, len(s.Tasks))
	copy(tasks, s.Tasks)
	return &Store{Tasks: tasks, NextID: s.NextID}
}
