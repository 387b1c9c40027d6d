package activity

import "context"

// Repository provides persistence operations for activity entries.
type Repository interface {
	Log(ctx context.Context, entry *ActivityEntry) error
	List(ctx context.Context, opts ListActivityOptions) ([]ActivityEntry, error)
}

// Recorder is what the entity services log their mutations through.
type Recorder interface {
	Record(ctx context.Context, entityType EntityType, entityID string, action Action, summary string)
}

type nopRecorder struct{}

func (nopRecorder) Record(context.Context, EntityType, string, Action, string) {}

// Nop returns a Recorder that drops every entry.
func Nop() Recorder {
	return nopRecorder{}
}
