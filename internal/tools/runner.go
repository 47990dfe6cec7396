// Package tools contains the adapters around the two external collaborators:
// the format converter (Open Babel) and the docking engine (AutoDock Vina).
// Both are invoked through the narrow Runner contract so that the pipeline
// can be tested without real binaries.
package tools

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/molscreen/vinauto/internal/logging"
	"github.com/molscreen/vinauto/pkg/errors"
)

// Invocation describes a single external tool call.
type Invocation struct {
	// Path is the resolved tool binary.
	Path string

	// Args are the command-line arguments, excluding the binary itself.
	Args []string

	// Timeout bounds the call; the child process is killed on expiry.
	Timeout time.Duration
}

// Result captures the observable outcome of a completed invocation.
type Result struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Combined returns stdout and stderr joined for error reporting and logs.
func (r Result) Combined() string {
	return strings.TrimSpace(r.Stdout + "\n" + r.Stderr)
}

// Runner executes external tool invocations.  The production implementation
// shells out; tests substitute fakes.
type Runner interface {
	// Run executes inv and returns its captured output.  A non-zero exit is
	// reported through err while the Result still carries the captured
	// streams for diagnostics.
	Run(ctx context.Context, inv Invocation) (Result, error)
}

// Resolve locates binary on PATH (or verifies an explicit path) and returns
// the absolute path.  It is called once at startup for each tool so a
// missing binary fails the run before any molecule is processed.
func Resolve(binary string) (string, error) {
	path, err := exec.LookPath(binary)
	if err != nil {
		return "", errors.Wrap(err, errors.CodeToolNotFound,
			fmt.Sprintf("tool %q not found or not executable", binary))
	}
	return path, nil
}

// transientMarkers are stderr fragments that indicate lock or resource
// contention rather than a deterministic input failure.  Only these are
// worth retrying.
var transientMarkers = []string{
	"resource temporarily unavailable",
	"text file busy",
	"cannot obtain lock",
	"could not obtain lock",
}

// isTransient classifies a failed invocation.  Context expiry and
// cancellation are never transient: the deadline already includes all the
// time we were willing to spend.
func isTransient(ctx context.Context, res Result) bool {
	if ctx.Err() != nil {
		return false
	}
	combined := strings.ToLower(res.Combined())
	for _, marker := range transientMarkers {
		if strings.Contains(combined, marker) {
			return true
		}
	}
	return false
}

// execRunner is the production Runner.  It applies the per-call timeout,
// kills the child on cancellation, and retries transient failures with
// exponential backoff.
type execRunner struct {
	attempts int
	backoff  time.Duration
	log      logging.Logger
}

// NewRunner constructs the production Runner.  attempts is the total number
// of tries per invocation (minimum 1); backoff is the initial retry delay,
// doubled after each failed attempt.
func NewRunner(log logging.Logger, attempts int, backoff time.Duration) Runner {
	if attempts < 1 {
		attempts = 1
	}
	return &execRunner{
		attempts: attempts,
		backoff:  backoff,
		log:      log.Named("exec"),
	}
}

func (r *execRunner) Run(ctx context.Context, inv Invocation) (Result, error) {
	var (
		res Result
		err error
	)
	delay := r.backoff
	for attempt := 1; attempt <= r.attempts; attempt++ {
		res, err = r.runOnce(ctx, inv)
		if err == nil {
			return res, nil
		}
		if attempt == r.attempts || !isTransient(ctx, res) {
			return res, err
		}
		r.log.Warn("transient tool failure, retrying",
			logging.String("tool", inv.Path),
			logging.Int("attempt", attempt),
			logging.Duration("backoff", delay))
		select {
		case <-time.After(delay):
		case <-ctx.Done():
			return res, ctx.Err()
		}
		delay *= 2
	}
	return res, err
}

func (r *execRunner) runOnce(ctx context.Context, inv Invocation) (Result, error) {
	runCtx := ctx
	if inv.Timeout > 0 {
		var cancel context.CancelFunc
		runCtx, cancel = context.WithTimeout(ctx, inv.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(runCtx, inv.Path, inv.Args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	start := time.Now()
	runErr := cmd.Run()
	elapsed := time.Since(start)

	res := Result{
		Stdout:   stdout.String(),
		Stderr:   stderr.String(),
		ExitCode: -1,
	}
	if cmd.ProcessState != nil {
		res.ExitCode = cmd.ProcessState.ExitCode()
	}

	r.log.Debug("tool invocation finished",
		logging.String("tool", inv.Path),
		logging.Int("exit_code", res.ExitCode),
		logging.Duration("elapsed", elapsed))

	if runCtx.Err() == context.DeadlineExceeded {
		return res, errors.Newf(errors.CodeTimeout,
			"tool %s timed out after %s", inv.Path, inv.Timeout)
	}
	if runErr != nil {
		return res, fmt.Errorf("%s exited with code %d: %w", inv.Path, res.ExitCode, runErr)
	}
	return res, nil
}
