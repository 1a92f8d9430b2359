package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/glquad/internal/store"
)

// ReplayOptions holds flags for the replay command.
type ReplayOptions struct {
	*RootOptions
	Database string
}

// ReplaySessionResult holds the replay result for a single session.
type ReplaySessionResult struct {
	SessionID  string `json:"session_id"`
	Samples    int    `json:"samples"`
	Phase      string `json:"phase"`
	Matches    bool   `json:"matches"`
	Divergence string `json:"divergence,omitempty"`
}

// ReplayResult holds the overall replay result.
type ReplayResult struct {
	Sessions   []ReplaySessionResult `json:"sessions"`
	Total      int                   `json:"total"`
	AllMatched bool                  `json:"all_matched"`
}

func (r ReplayResult) String() string {
	if r.Total == 0 {
		return "No sessions found in database."
	}
	var b strings.Builder
	for _, s := range r.Sessions {
		if s.Matches {
			fmt.Fprintf(&b, "✓ %s (%d samples, %s)\n", s.SessionID, s.Samples, s.Phase)
		} else {
			fmt.Fprintf(&b, "✗ %s: %s\n", s.SessionID, s.Divergence)
		}
	}
	if r.AllMatched {
		fmt.Fprintf(&b, "All %d session(s) replay to their checkpoints", r.Total)
	} else {
		fmt.Fprintf(&b, "Replay diverged from stored checkpoints")
	}
	return b.String()
}

// NewReplayCommand creates the replay command.
func NewReplayCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReplayOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "replay [session-id]",
		Short: "Replay sample logs and verify checkpoints",
		Long: `Rebuild sessions from their sample logs and compare the result with the
stored checkpoint, bit for bit. Without an ID every session is replayed.

Exit codes:
  0 - Every replay reproduced its checkpoint
  1 - A replay diverged
  2 - Command error (database or session not found, etc.)

Examples:
  glquad replay --db sessions.db
  glquad replay --db sessions.db 0190f1c2-...
  glquad replay --db sessions.db --format json`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReplay(cmd.Context(), opts, args, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runReplay(ctx context.Context, opts *ReplayOptions, args []string, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	var ids []string
	if len(args) == 1 {
		ids = args
	} else {
		sessions, err := st.ListSessions(ctx)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to list sessions", err)
		}
		for _, s := range sessions {
			ids = append(ids, s.ID)
		}
	}

	result := ReplayResult{
		Sessions:   make([]ReplaySessionResult, 0, len(ids)),
		Total:      len(ids),
		AllMatched: true,
	}
	for _, id := range ids {
		formatter.VerboseLog("Replaying session %s", id)

		replay, err := st.ReplaySession(ctx, id)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, fmt.Sprintf("failed to replay session %s", id), err)
		}
		result.Sessions = append(result.Sessions, ReplaySessionResult{
			SessionID:  id,
			Samples:    replay.Samples,
			Phase:      replay.Stored.Phase.String(),
			Matches:    replay.Matches(),
			Divergence: replay.Divergence,
		})
		if !replay.Matches() {
			result.AllMatched = false
		}
	}

	if !result.AllMatched {
		if opts.Format == "json" {
			if err := formatter.Error(ErrCodeReplayDiverged, "replay diverged", result); err != nil {
				return err
			}
		} else {
			fmt.Fprintln(cmd.OutOrStdout(), result)
		}
		return NewExitError(ExitFailure, "replay diverged")
	}
	return formatter.Success(result)
}
