package tools

import (
	"context"
	"os"
	"strings"
	"sync"
)

// readCountFile returns the number of lines in the invocation-count file
// written by the retry tests.
func readCountFile(path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}
	return strings.Count(string(data), "\n"), nil
}

// fakeRunner is a scripted Runner for adapter tests.  Each queued step
// supplies the Result/error pair for one invocation and an optional hook that
// simulates the tool's filesystem side effects (writing the output file).
type fakeRunner struct {
	mu    sync.Mutex
	steps []fakeStep
	calls []Invocation
}

type fakeStep struct {
	res    Result
	err    error
	effect func(inv Invocation)
}

func (f *fakeRunner) Run(_ context.Context, inv Invocation) (Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, inv)
	if len(f.steps) == 0 {
		return Result{}, nil
	}
	step := f.steps[0]
	f.steps = f.steps[1:]
	if step.effect != nil {
		step.effect(inv)
	}
	return step.res, step.err
}

func (f *fakeRunner) invocations() []Invocation {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Invocation, len(f.calls))
	copy(out, f.calls)
	return out
}

// okStep succeeds and writes content to the path found after the "-O" flag
// (or "--out" for the docking engine).
func okStep(content string) fakeStep {
	return fakeStep{
		res: Result{Stdout: content},
		effect: func(inv Invocation) {
			for i, arg := range inv.Args {
				if (arg == "-O" || arg == "--out") && i+1 < len(inv.Args) {
					_ = os.WriteFile(inv.Args[i+1], []byte(content), 0o644)
					return
				}
			}
		},
	}
}
