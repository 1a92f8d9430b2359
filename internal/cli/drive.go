package cli

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/glquad/internal/driver"
	"github.com/roach88/glquad/internal/quad"
	"github.com/roach88/glquad/internal/rule"
	"github.com/roach88/glquad/internal/store"
)

// DriveOptions holds flags for the drive command.
type DriveOptions struct {
	*RootOptions
	Order    rule.Order
	A, B     float64
	Database string
	Label    string
	Resume   string
}

// DriveResult is the output of a completed drive.
type DriveResult struct {
	Order     int    `json:"order"`
	A         Float  `json:"a"`
	B         Float  `json:"b"`
	Samples   int    `json:"samples"`
	Result    Float  `json:"result"`
	SessionID string `json:"session_id,omitempty"`
}

func (r DriveResult) String() string {
	s := "result " + formatFloat(float64(r.Result))
	if r.SessionID != "" {
		s += "\nsession " + r.SessionID
	}
	return s
}

// Request is one point the session asks the caller to evaluate.
type Request struct {
	Index int   `json:"index"`
	X     Float `json:"x"`
}

// NewDriveCommand creates the drive command.
func NewDriveCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DriveOptions{RootOptions: rootOpts, Order: rule.Order16}

	cmd := &cobra.Command{
		Use:   "drive",
		Short: "Run a reverse-communication session over stdin/stdout",
		Long: `Run a reverse-communication session: the caller evaluates the integrand.

For every point the session needs, a request is written to stdout:
  next <index> <x>              (text)
  {"index": <index>, "x": <x>}  (json)
and the value f(x) is read from the next non-empty line of stdin.
Points are printed in shortest round-trip form.

With --db every step is checkpointed into SQLite. If stdin ends early the
session stays suspended and can be continued later with --resume.

Exit codes:
  0 - Session finished
  1 - Input ended early or a value could not be parsed
  2 - Command error (bad flags, database or session not found)

Examples:
  glquad drive --order 8 --a 0 --b 1
  glquad drive --order 32 --a -1 --b 1 --db sessions.db --label runge
  glquad drive --db sessions.db --resume 0190f1c2-...`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDrive(cmd.Context(), opts, cmd)
		},
	}

	cmd.Flags().Var(&opts.Order, "order", "quadrature order (8, 16, 32 or 64)")
	cmd.Flags().Float64Var(&opts.A, "a", 0, "lower bound")
	cmd.Flags().Float64Var(&opts.B, "b", 1, "upper bound")
	cmd.Flags().StringVar(&opts.Database, "db", "", "checkpoint the session into this SQLite database")
	cmd.Flags().StringVar(&opts.Label, "label", "", "label stored with the session")
	cmd.Flags().StringVar(&opts.Resume, "resume", "", "resume a stored session by ID (requires --db)")
	cmd.MarkFlagsMutuallyExclusive("resume", "label")
	cmd.MarkFlagsMutuallyExclusive("resume", "order")

	return cmd
}

func runDrive(ctx context.Context, opts *DriveOptions, cmd *cobra.Command) error {
	if ctx == nil {
		ctx = context.Background()
	}
	formatter := newFormatter(opts.RootOptions, cmd)
	logger := newLogger(opts.RootOptions, cmd.ErrOrStderr())

	if opts.Resume != "" && opts.Database == "" {
		return formatter.Fail(ExitCommandError, ErrCodeGeneric, "--resume requires --db", nil)
	}

	var st *store.Store
	if opts.Database != "" {
		var err error
		st, err = store.Open(opts.Database)
		if err != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to open database", err)
		}
		defer func() {
			if closeErr := st.Close(); closeErr != nil {
				logger.Error("error closing database", "error", closeErr)
			}
		}()
	}

	prompt := &promptSampler{
		out:  cmd.OutOrStdout(),
		in:   bufio.NewScanner(cmd.InOrStdin()),
		json: opts.Format == "json",
	}

	var (
		report    driver.Report[float64]
		sessionID string
		result    DriveResult
		err       error
	)
	if opts.Resume != "" {
		cp, loadErr := st.LoadCheckpoint(ctx, opts.Resume)
		if loadErr != nil {
			return formatter.Fail(ExitCommandError, ErrCodeStore, "failed to load session "+opts.Resume, loadErr)
		}
		result = DriveResult{Order: int(cp.Order), A: Float(cp.A), B: Float(cp.B), SessionID: opts.Resume}
		sessionID = opts.Resume

		if cp.Phase == quad.PhaseDone {
			result.Samples = cp.StepIndex
			result.Result = Float(cp.Accumulator)
			return formatter.Success(result)
		}

		engine, engErr := quad.NewForOrder[float64](cp.Order)
		if engErr != nil {
			return formatter.Fail(ExitCommandError, ErrCodeUnsupportedOrder, "cannot build engine", engErr)
		}
		session, restoreErr := engine.Restore(cp)
		if restoreErr != nil {
			return formatter.Fail(ExitCommandError, ErrCodeProtocol, "stored checkpoint is not resumable", restoreErr)
		}
		logger.Info("resuming session", "id", opts.Resume, "step", session.StepIndex())

		prompt.index = session.StepIndex()
		d := driver.New(engine, driver.Config[float64]{
			Logger:       logger,
			Checkpointer: store.ResumeRecorder(st, opts.Resume),
		})
		report, err = d.Resume(ctx, session, prompt)
		report.Samples += cp.StepIndex
	} else {
		engine, engErr := quad.NewForOrder[float64](opts.Order)
		if engErr != nil {
			return formatter.Fail(ExitCommandError, ErrCodeUnsupportedOrder, "cannot build engine", engErr)
		}
		result = DriveResult{Order: int(opts.Order), A: Float(opts.A), B: Float(opts.B)}

		cfg := driver.Config[float64]{Logger: logger}
		var rec *store.Recorder
		if st != nil {
			rec = store.NewRecorder(st, store.UUIDv7Generator{}, opts.Label)
			cfg.Checkpointer = rec
		}
		report, err = driver.New(engine, cfg).Drive(ctx, opts.A, opts.B, prompt)
		if rec != nil {
			sessionID = rec.ID()
			result.SessionID = sessionID
		}
	}

	if err != nil {
		return driveFailure(formatter, cmd, sessionID, err)
	}

	result.Samples = report.Samples
	result.Result = Float(report.Result)
	return formatter.Success(result)
}

// driveFailure reports an interrupted drive, with a resume hint when the
// session was recorded.
func driveFailure(formatter *OutputFormatter, cmd *cobra.Command, sessionID string, err error) error {
	if sessionID != "" {
		fmt.Fprintf(cmd.ErrOrStderr(), "session %s suspended; continue with --resume %s\n", sessionID, sessionID)
	}
	switch {
	case errors.Is(err, io.ErrUnexpectedEOF):
		return formatter.Fail(ExitFailure, ErrCodeSample, "input ended before the session finished", err)
	case driver.IsSampleError(err):
		return formatter.Fail(ExitFailure, ErrCodeSample, "could not read integrand value", err)
	case quad.IsProtocolError(err):
		return formatter.Fail(ExitCommandError, ErrCodeProtocol, "session protocol error", err)
	default:
		return formatter.Fail(ExitCommandError, ErrCodeStore, "drive failed", err)
	}
}

// promptSampler asks the caller for every value over a line protocol.
type promptSampler struct {
	out   io.Writer
	in    *bufio.Scanner
	json  bool
	index int
}

func (p *promptSampler) Sample(ctx context.Context, x float64) (float64, error) {
	if p.json {
		if err := json.NewEncoder(p.out).Encode(Request{Index: p.index, X: Float(x)}); err != nil {
			return 0, err
		}
	} else {
		fmt.Fprintf(p.out, "next %d %s\n", p.index, formatFloat(x))
	}
	p.index++

	for p.in.Scan() {
		line := strings.TrimSpace(p.in.Text())
		if line == "" {
			continue
		}
		v, err := strconv.ParseFloat(line, 64)
		if err != nil {
			return 0, fmt.Errorf("value %q: %w", line, err)
		}
		return v, nil
	}
	if err := p.in.Err(); err != nil {
		return 0, err
	}
	return 0, io.ErrUnexpectedEOF
}

// formatFloat prints the shortest representation that parses back to f.
func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
