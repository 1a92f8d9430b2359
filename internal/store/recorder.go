package store

import (
	"context"
	"fmt"

	"github.com/roach88/glquad/internal/driver"
	"github.com/roach88/glquad/internal/quad"
)

var _ driver.Checkpointer[float64] = (*Recorder)(nil)

// Recorder persists a driven session into the store.
//
// For a new drive, Started creates the session row under a generated ID. For a
// resumed drive, use ResumeRecorder with the existing ID; Started is never
// called on that path.
type Recorder struct {
	store *Store
	ids   IDGenerator
	label string
	id    string
}

// NewRecorder returns a recorder that creates a new labelled session on start.
func NewRecorder(s *Store, ids IDGenerator, label string) *Recorder {
	if ids == nil {
		ids = UUIDv7Generator{}
	}
	return &Recorder{store: s, ids: ids, label: label}
}

// ResumeRecorder returns a recorder that appends to an existing session.
func ResumeRecorder(s *Store, id string) *Recorder {
	return &Recorder{store: s, id: id}
}

// ID returns the session ID, or "" before Started.
func (r *Recorder) ID() string {
	return r.id
}

// Started implements driver.Checkpointer.
func (r *Recorder) Started(ctx context.Context, cp quad.Checkpoint[float64]) error {
	if r.id != "" {
		return fmt.Errorf("recorder already bound to session %s", r.id)
	}
	id := r.ids.Generate()
	if _, err := r.store.CreateSession(ctx, id, r.label, cp); err != nil {
		return err
	}
	r.id = id
	return nil
}

// Stepped implements driver.Checkpointer.
func (r *Recorder) Stepped(ctx context.Context, ev driver.Event[float64], cp quad.Checkpoint[float64]) error {
	if r.id == "" {
		return fmt.Errorf("recorder has no session")
	}
	_, err := r.store.SaveStep(ctx, r.id, ev, cp)
	return err
}
