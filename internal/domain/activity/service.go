package activity

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/mergington/activities/internal/repository"
)

// Enrollment outcomes reported to the Recorder.
const (
	OutcomeOK       = "ok"
	OutcomeNotFound = "not_found"
	OutcomeConflict = "conflict"
	OutcomeInvalid  = "invalid"
	OutcomeError    = "error"
	unknownActivity = "unknown"
)

// Service handles catalog reads and roster changes.
type Service struct {
	repo     Repository
	recorder Recorder
	logger   *slog.Logger
}

// NewService creates a new activity service. recorder and logger may be nil.
func NewService(repo Repository, recorder Recorder, logger *slog.Logger) *Service {
	if recorder == nil {
		recorder = nopRecorder{}
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Service{repo: repo, recorder: recorder, logger: logger}
}

// ListActivities returns a snapshot of every activity and its roster.
func (s *Service) ListActivities(ctx context.Context) (Catalog, error) {
	catalog, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing activities: %w", err)
	}
	return catalog, nil
}

// GetActivity returns a snapshot of a single activity.
func (s *Service) GetActivity(ctx context.Context, name string) (*Activity, error) {
	act, err := s.repo.Get(ctx, name)
	if err != nil {
		return nil, mapRepoError(err, "getting activity")
	}
	return act, nil
}

// Enroll adds email to the roster of the named activity and returns a
// confirmation message. Capacity is informational and not enforced.
func (s *Service) Enroll(ctx context.Context, name, email string) (string, error) {
	if email == "" {
		s.recorder.ObserveEnrollment(unknownActivity, OutcomeInvalid)
		return "", ErrInvalidInput
	}

	size, err := s.repo.AddParticipant(ctx, name, email)
	if err != nil {
		err = mapRepoError(err, "enrolling participant")
		s.recorder.ObserveEnrollment(metricLabel(name, err), outcomeOf(err))
		s.logger.DebugContext(ctx, "enrollment rejected", "activity", name, "email", email, "error", err)
		return "", err
	}

	s.recorder.ObserveEnrollment(name, OutcomeOK)
	s.recorder.SetRosterSize(name, size)
	s.logger.InfoContext(ctx, "participant enrolled", "activity", name, "email", email, "roster_size", size)
	return fmt.Sprintf("Signed up %s for %s", email, name), nil
}

// Remove deletes email from the roster of the named activity and returns a
// confirmation message.
func (s *Service) Remove(ctx context.Context, name, email string) (string, error) {
	if email == "" {
		s.recorder.ObserveRemoval(unknownActivity, OutcomeInvalid)
		return "", ErrInvalidInput
	}

	size, err := s.repo.RemoveParticipant(ctx, name, email)
	if err != nil {
		err = mapRepoError(err, "removing participant")
		s.recorder.ObserveRemoval(metricLabel(name, err), outcomeOf(err))
		s.logger.DebugContext(ctx, "removal rejected", "activity", name, "email", email, "error", err)
		return "", err
	}

	s.recorder.ObserveRemoval(name, OutcomeOK)
	s.recorder.SetRosterSize(name, size)
	s.logger.InfoContext(ctx, "participant removed", "activity", name, "email", email, "roster_size", size)
	return fmt.Sprintf("Removed %s from %s", email, name), nil
}

func mapRepoError(err error, op string) error {
	switch {
	case errors.Is(err, repository.ErrNotFound):
		return ErrActivityNotFound
	case errors.Is(err, repository.ErrMemberNotFound):
		return ErrParticipantNotFound
	case errors.Is(err, repository.ErrConflict):
		return ErrAlreadySignedUp
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func outcomeOf(err error) string {
	switch {
	case errors.Is(err, ErrActivityNotFound), errors.Is(err, ErrParticipantNotFound):
		return OutcomeNotFound
	case errors.Is(err, ErrAlreadySignedUp):
		return OutcomeConflict
	default:
		return OutcomeError
	}
}

// metricLabel keeps caller-supplied names of unknown activities out of metric labels.
func metricLabel(name string, err error) string {
	if errors.Is(err, ErrActivityNotFound) {
		return unknownActivity
	}
	return name
}
