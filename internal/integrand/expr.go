package integrand

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

const (
	exprFilename = "integrand.cue"
	resultPrefix = "result: "
	resultLine   = 3
)

var (
	pathX      = cue.ParsePath("x")
	pathResult = cue.ParsePath("result")
)

// Expr is an integrand written as a CUE expression over x, for example
//
//	math.Exp(-x*x) * math.Cos(3*x)
//
// The builtin math package is imported. Evaluation goes through the CUE
// runtime, which is not safe for concurrent use, so Sample serializes callers.
type Expr struct {
	source string

	mu   sync.Mutex
	root cue.Value
}

// CompileError reports a CUE expression that does not compile, with the
// position inside the expression when CUE provides one.
type CompileError struct {
	Message string
	Pos     token.Pos
}

func (e *CompileError) Error() string {
	if e.Pos.IsValid() {
		return fmt.Sprintf("expr:%d: %s", e.Pos.Column()-len(resultPrefix), e.Message)
	}
	return fmt.Sprintf("expr: %s", e.Message)
}

// CompileExpr compiles source into an Expr. The expression must fit on one line.
func CompileExpr(source string) (*Expr, error) {
	source = strings.TrimSpace(source)
	if source == "" {
		return nil, &SpecError{Field: "expr", Message: "expression is empty"}
	}
	if strings.ContainsAny(source, "\n\r") {
		return nil, &SpecError{Field: "expr", Message: "expression must be a single line"}
	}

	src := "import \"math\"\nx: number\n" + resultPrefix + source + "\n"
	ctx := cuecontext.New()
	root := ctx.CompileString(src, cue.Filename(exprFilename))
	if err := root.Err(); err != nil {
		return nil, formatCUEError(err)
	}
	return &Expr{source: source, root: root}, nil
}

// Sample evaluates the expression at x.
func (e *Expr) Sample(ctx context.Context, x float64) (float64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	v := e.root.FillPath(pathX, x).LookupPath(pathResult)
	if err := v.Err(); err != nil {
		return 0, fmt.Errorf("evaluate %s at x=%v: %w", e.source, x, formatCUEError(err))
	}
	y, err := v.Float64()
	if err != nil {
		return 0, fmt.Errorf("evaluate %s at x=%v: %w", e.source, x, formatCUEError(err))
	}
	return y, nil
}

func (e *Expr) String() string {
	return e.source
}

// formatCUEError extracts position info from CUE errors.
func formatCUEError(err error) error {
	errs := errors.Errors(err)
	if len(errs) == 0 {
		return err
	}

	first := errs[0]
	ce := &CompileError{Message: first.Error()}
	for _, pos := range errors.Positions(first) {
		if pos.Filename() == exprFilename && pos.Line() == resultLine {
			ce.Pos = pos
			break
		}
	}
	return ce
}
