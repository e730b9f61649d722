// Package memstore holds the activity catalog in process memory.
package memstore

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/mergington/activities/internal/domain/activity"
	"github.com/mergington/activities/internal/repository"
)

// Store implements activity.Repository over a map guarded by a single
// RWMutex. The set of activities is fixed at construction.
type Store struct {
	mu         sync.RWMutex
	activities map[string]*activity.Activity
}

// New creates a Store seeded with the given activities. Every entry must
// validate and names must be unique.
func New(seed []activity.Activity) (*Store, error) {
	activities := make(map[string]*activity.Activity, len(seed))
	for _, a := range seed {
		if err := a.Validate(); err != nil {
			return nil, err
		}
		if _, ok := activities[a.Name]; ok {
			return nil, fmt.Errorf("%w: duplicate activity name %q", activity.ErrInvalidActivity, a.Name)
		}
		c := a.Clone()
		activities[a.Name] = &c
	}
	return &Store{activities: activities}, nil
}

// List returns a deep copy of every activity.
func (s *Store) List(_ context.Context) (activity.Catalog, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make(activity.Catalog, len(s.activities))
	for name, a := range s.activities {
		out[name] = a.Clone()
	}
	return out, nil
}

// Get returns a copy of a single activity.
func (s *Store) Get(_ context.Context, name string) (*activity.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.activities[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	c := a.Clone()
	return &c, nil
}

// AddParticipant appends email to the roster of the named activity.
func (s *Store) AddParticipant(_ context.Context, name, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return 0, repository.ErrNotFound
	}
	if a.HasParticipant(email) {
		return len(a.Participants), repository.ErrConflict
	}
	a.Participants = append(a.Participants, email)
	return len(a.Participants), nil
}

// RemoveParticipant deletes email from the roster of the named activity,
// keeping the order of the remaining entries.
func (s *Store) RemoveParticipant(_ context.Context, name, email string) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	a, ok := s.activities[name]
	if !ok {
		return 0, repository.ErrNotFound
	}
	i := slices.Index(a.Participants, email)
	if i < 0 {
		return len(a.Participants), repository.ErrMemberNotFound
	}
	a.Participants = slices.Delete(a.Participants, i, i+1)
	return len(a.Participants), nil
}
