package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/glquad/internal/driver"
	"github.com/roach88/glquad/internal/quad"
	"github.com/roach88/glquad/internal/rule"
)

// Session is a stored session: its latest checkpoint plus bookkeeping.
type Session struct {
	ID         string
	Label      string
	Checkpoint quad.Checkpoint[float64]
	Digest     string
	CreatedSeq int64
	UpdatedSeq int64
}

// IntegrityError reports a checkpoint row whose digest does not match its content.
type IntegrityError struct {
	SessionID string
	Stored    string
	Computed  string
}

func (e *IntegrityError) Error() string {
	return fmt.Sprintf("session %s: digest mismatch (stored %s, computed %s)", e.SessionID, e.Stored, e.Computed)
}

const sessionColumns = `id, label, ord, a, b, phase, step_index, mid, half, pending, accumulator, digest, created_seq, updated_seq`

// GetSession reads one session and verifies its digest.
// Returns sql.ErrNoRows if not found and *IntegrityError if the row was altered.
func (s *Store) GetSession(ctx context.Context, id string) (Session, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+sessionColumns+` FROM sessions WHERE id = ?`, id)
	sess, err := scanSession(row)
	if err == sql.ErrNoRows {
		return Session{}, err
	}
	if err != nil {
		return Session{}, fmt.Errorf("get session %s: %w", id, err)
	}

	computed, err := Digest(sess.Label, sess.Checkpoint)
	if err != nil {
		return Session{}, fmt.Errorf("get session %s: %w", id, err)
	}
	if computed != sess.Digest {
		return Session{}, &IntegrityError{SessionID: id, Stored: sess.Digest, Computed: computed}
	}
	return sess, nil
}

// LoadCheckpoint returns the verified checkpoint of a session, ready for quad.Engine.Restore.
func (s *Store) LoadCheckpoint(ctx context.Context, id string) (quad.Checkpoint[float64], error) {
	sess, err := s.GetSession(ctx, id)
	if err != nil {
		return quad.Checkpoint[float64]{}, err
	}
	return sess.Checkpoint, nil
}

// ListSessions returns every session in creation order.
// Results are ordered deterministically: ORDER BY created_seq ASC, id ASC COLLATE BINARY.
// Digests are not verified; use GetSession for that.
//
// Returns an empty slice (not nil) if the store is empty.
func (s *Store) ListSessions(ctx context.Context) ([]Session, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+sessionColumns+`
		FROM sessions
		ORDER BY created_seq ASC, id COLLATE BINARY ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("query sessions: %w", err)
	}
	defer rows.Close()

	sessions := []Session{}
	for rows.Next() {
		sess, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, sess)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate sessions: %w", err)
	}
	return sessions, nil
}

// ReadSamples returns the sample log of a session in step order.
// Returns an empty slice (not nil) if nothing was sampled yet.
func (s *Store) ReadSamples(ctx context.Context, id string) ([]driver.Event[float64], error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT step_index, x, value
		FROM samples
		WHERE session_id = ?
		ORDER BY step_index ASC
	`, id)
	if err != nil {
		return nil, fmt.Errorf("query samples: %w", err)
	}
	defer rows.Close()

	samples := []driver.Event[float64]{}
	for rows.Next() {
		var (
			ev       driver.Event[float64]
			x, value int64
		)
		if err := rows.Scan(&ev.Index, &x, &value); err != nil {
			return nil, fmt.Errorf("scan sample: %w", err)
		}
		ev.X = fromBits(x)
		ev.Value = fromBits(value)
		samples = append(samples, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate samples: %w", err)
	}
	return samples, nil
}

// scanner is satisfied by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanSession(row scanner) (Session, error) {
	var (
		sess                                  Session
		order, step                           int
		phase                                 string
		a, b, mid, half, pending, accumulator int64
	)
	err := row.Scan(
		&sess.ID,
		&sess.Label,
		&order,
		&a,
		&b,
		&phase,
		&step,
		&mid,
		&half,
		&pending,
		&accumulator,
		&sess.Digest,
		&sess.CreatedSeq,
		&sess.UpdatedSeq,
	)
	if err == sql.ErrNoRows {
		return Session{}, err
	}
	if err != nil {
		return Session{}, fmt.Errorf("scan session: %w", err)
	}

	p, err := quad.ParsePhase(phase)
	if err != nil {
		return Session{}, fmt.Errorf("scan session %s: %w", sess.ID, err)
	}

	sess.Checkpoint = quad.Checkpoint[float64]{
		Order:       rule.Order(order),
		Phase:       p,
		StepIndex:   step,
		A:           fromBits(a),
		B:           fromBits(b),
		Mid:         fromBits(mid),
		Half:        fromBits(half),
		Pending:     fromBits(pending),
		Accumulator: fromBits(accumulator),
	}
	return sess, nil
}
