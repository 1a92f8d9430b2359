package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/glquad/internal/driver"
	"github.com/roach88/glquad/internal/quad"
)

// CreateSession inserts a new session row holding cp.
// The checkpoint is typically the one a driver produces right after the first
// Advance call. Creating an existing ID is an error.
func (s *Store) CreateSession(ctx context.Context, id, label string, cp quad.Checkpoint[float64]) (Session, error) {
	digest, err := Digest(label, cp)
	if err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return Session{}, fmt.Errorf("create session: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	seq, err := nextSeq(ctx, tx)
	if err != nil {
		return Session{}, fmt.Errorf("create session: %w", err)
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO sessions
		(id, label, ord, a, b, phase, step_index, mid, half, pending, accumulator, digest, created_seq, updated_seq)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		id,
		label,
		int(cp.Order),
		toBits(cp.A),
		toBits(cp.B),
		cp.Phase.String(),
		cp.StepIndex,
		toBits(cp.Mid),
		toBits(cp.Half),
		toBits(cp.Pending),
		toBits(cp.Accumulator),
		digest,
		seq,
		seq,
	)
	if err != nil {
		return Session{}, fmt.Errorf("create session %s: %w", id, err)
	}

	if err := tx.Commit(); err != nil {
		return Session{}, fmt.Errorf("create session: commit: %w", err)
	}

	return Session{
		ID:         id,
		Label:      label,
		Checkpoint: cp,
		Digest:     digest,
		CreatedSeq: seq,
		UpdatedSeq: seq,
	}, nil
}

// SaveStep appends one sample and replaces the session checkpoint, atomically.
//
// cp must be the checkpoint after consuming ev, so cp.StepIndex is ev.Index+1.
// If the sample for ev.Index was already saved, nothing is written and
// inserted is false; a driver retrying after a crash can call SaveStep again
// safely.
func (s *Store) SaveStep(ctx context.Context, id string, ev driver.Event[float64], cp quad.Checkpoint[float64]) (inserted bool, err error) {
	if cp.StepIndex != ev.Index+1 {
		return false, fmt.Errorf("save step: checkpoint step %d does not follow sample %d", cp.StepIndex, ev.Index)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return false, fmt.Errorf("save step: begin tx: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	var label string
	err = tx.QueryRowContext(ctx, `SELECT label FROM sessions WHERE id = ?`, id).Scan(&label)
	if err != nil {
		return false, fmt.Errorf("save step: session %s: %w", id, err)
	}

	seq, err := nextSeq(ctx, tx)
	if err != nil {
		return false, fmt.Errorf("save step: %w", err)
	}

	result, err := tx.ExecContext(ctx, `
		INSERT INTO samples
		(session_id, step_index, x, value, seq)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(session_id, step_index) DO NOTHING
	`,
		id,
		ev.Index,
		toBits(ev.X),
		toBits(ev.Value),
		seq,
	)
	if err != nil {
		return false, fmt.Errorf("save step %d: %w", ev.Index, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("save step %d: rows affected: %w", ev.Index, err)
	}
	if rows == 0 {
		return false, nil
	}

	digest, err := Digest(label, cp)
	if err != nil {
		return false, fmt.Errorf("save step %d: %w", ev.Index, err)
	}

	_, err = tx.ExecContext(ctx, `
		UPDATE sessions
		SET phase = ?, step_index = ?, pending = ?, accumulator = ?, digest = ?, updated_seq = ?
		WHERE id = ?
	`,
		cp.Phase.String(),
		cp.StepIndex,
		toBits(cp.Pending),
		toBits(cp.Accumulator),
		digest,
		seq,
		id,
	)
	if err != nil {
		return false, fmt.Errorf("save step %d: update session: %w", ev.Index, err)
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("save step %d: commit: %w", ev.Index, err)
	}
	return true, nil
}

// DeleteSession removes a session and its sample log.
// Returns sql.ErrNoRows if the session does not exist.
func (s *Store) DeleteSession(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, `DELETE FROM sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete session %s: %w", id, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete session %s: rows affected: %w", id, err)
	}
	if rows == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// nextSeq returns the next value of the store-wide logical clock.
func nextSeq(ctx context.Context, tx *sql.Tx) (int64, error) {
	var seq int64
	err := tx.QueryRowContext(ctx, `
		SELECT COALESCE(MAX(updated_seq), 0) + 1 FROM sessions
	`).Scan(&seq)
	if err != nil {
		return 0, fmt.Errorf("next seq: %w", err)
	}
	return seq, nil
}
