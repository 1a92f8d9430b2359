package cli

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/glquad/internal/quad"
	"github.com/roach88/glquad/internal/store"
)

// SessionsOptions holds flags for the sessions command.
type SessionsOptions struct {
	*RootOptions
	Database string
	Delete   string
}

// SessionSummary is one stored session in listings.
type SessionSummary struct {
	ID        string `json:"id"`
	Label     string `json:"label,omitempty"`
	Order     int    `json:"order"`
	A         Float  `json:"a"`
	B         Float  `json:"b"`
	Phase     string `json:"phase"`
	StepIndex int    `json:"step_index"`
	Result    *Float `json:"result,omitempty"`
}

// SessionList is the output of the sessions command.
type SessionList struct {
	Sessions []SessionSummary `json:"sessions"`
	Total    int              `json:"total"`
}

func (l SessionList) String() string {
	if l.Total == 0 {
		return "No sessions found in database."
	}
	var b strings.Builder
	for _, s := range l.Sessions {
		fmt.Fprintf(&b, "%s  order=%d  [%v, %v]  %s %d/%d", s.ID, s.Order, s.A, s.B, s.Phase, s.StepIndex, s.Order)
		if s.Result != nil {
			fmt.Fprintf(&b, "  result=%s", formatFloat(float64(*s.Result)))
		}
		if s.Label != "" {
			fmt.Fprintf(&b, "  %q", s.Label)
		}
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "%d session(s)", l.Total)
	return b.String()
}

// NewSessionsCommand creates the sessions command.
func NewSessionsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SessionsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "sessions",
		Short: "List or delete stored sessions",
		Long: `List the sessions checkpointed into a database, in creation order.

Examples:
  glquad sessions --db sessions.db
  glquad sessions --db sessions.db --format json
  glquad sessions --db sessions.db --delete 0190f1c2-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSessions(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")
	cmd.Flags().StringVar(&opts.Delete, "delete", "", "delete the session with this ID")

	return cmd
}

func runSessions(ctx context.Context, opts *SessionsOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)

	st, err := store.Open(opts.Database)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
	}
	defer st.Close()

	if opts.Delete != "" {
		if err := st.DeleteSession(ctx, opts.Delete); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return formatter.Fail(ExitCommandError, ErrCodeStore, "session not found: "+opts.Delete, nil)
			}
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to delete session", err)
		}
		formatter.VerboseLog("Deleted session %s", opts.Delete)
	}

	sessions, err := st.ListSessions(ctx)
	if err != nil {
		return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to list sessions", err)
	}

	list := SessionList{Sessions: make([]SessionSummary, 0, len(sessions)), Total: len(sessions)}
	for _, s := range sessions {
		list.Sessions = append(list.Sessions, summarize(s))
	}
	return formatter.Success(list)
}

func summarize(s store.Session) SessionSummary {
	cp := s.Checkpoint
	summary := SessionSummary{
		ID:        s.ID,
		Label:     s.Label,
		Order:     int(cp.Order),
		A:         Float(cp.A),
		B:         Float(cp.B),
		Phase:     cp.Phase.String(),
		StepIndex: cp.StepIndex,
	}
	if cp.Phase == quad.PhaseDone {
		summary.Result = floatPtr(cp.Accumulator)
	}
	return summary
}
