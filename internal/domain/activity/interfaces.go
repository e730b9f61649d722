package activity

import "context"

// Repository provides access to the activity catalog and its rosters.
// AddParticipant and RemoveParticipant return the roster size after the change.
type Repository interface {
	List(ctx context.Context) (Catalog, error)
	Get(ctx context.Context, name string) (*Activity, error)
	AddParticipant(ctx context.Context, name, email string) (int, error)
	RemoveParticipant(ctx context.Context, name, email string) (int, error)
}

// Recorder receives enrollment outcomes for instrumentation.
type Recorder interface {
	ObserveEnrollment(activity, outcome string)
	ObserveRemoval(activity, outcome string)
	SetRosterSize(activity string, size int)
}

type nopRecorder struct{}

func (nopRecorder) ObserveEnrollment(string, string) {}
func (nopRecorder) ObserveRemoval(string, string)    {}
func (nopRecorder) SetRosterSize(string, int)        {}
