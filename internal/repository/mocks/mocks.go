package mocks

import (
	"context"

	"github.com/mergington/activities/internal/domain/activity"
	"github.com/stretchr/testify/mock"
)

// ActivityRepository is a mock for activity.Repository.
type ActivityRepository struct {
	mock.Mock
}

func (m *ActivityRepository) List(ctx context.Context) (activity.Catalog, error) {
	args := m.Called(ctx)
	if catalog, ok := args.Get(0).(activity.Catalog); ok {
		return catalog, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) Get(ctx context.Context, name string) (*activity.Activity, error) {
	args := m.Called(ctx, name)
	if act, ok := args.Get(0).(*activity.Activity); ok {
		return act, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *ActivityRepository) AddParticipant(ctx context.Context, name, email string) (int, error) {
	args := m.Called(ctx, name, email)
	return args.Int(0), args.Error(1)
}

func (m *ActivityRepository) RemoveParticipant(ctx context.Context, name, email string) (int, error) {
	args := m.Called(ctx, name, email)
	return args.Int(0), args.Error(1)
}

// Recorder is a mock for activity.Recorder.
type Recorder struct {
	mock.Mock
}

func (m *Recorder) ObserveEnrollment(activity, outcome string) {
	m.Called(activity, outcome)
}

func (m *Recorder) ObserveRemoval(activity, outcome string) {
	m.Called(activity, outcome)
}

func (m *Recorder) SetRosterSize(activity string, size int) {
	m.Called(activity, size)
}
