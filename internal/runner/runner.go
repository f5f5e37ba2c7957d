// Package runner spawns external command-line tools with a bounded lifetime.
package runner

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"
)

// DefaultTimeout bounds a single tool invocation.
const DefaultTimeout = 5 * time.Second

// waitDelay caps how long Run waits for output pipes after the process is
// killed. A grandchild that escaped the process group can hold them open.
const waitDelay = time.Second

// ErrTimeout is returned when a process was killed for exceeding its timeout.
var ErrTimeout = errors.New("command timed out")

// Runner executes a tool and returns its stdout. A nil error means the
// process exited with status 0.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

// Func adapts a plain function to Runner.
type Func func(ctx context.Context, name string, args ...string) ([]byte, error)

func (f Func) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return f(ctx, name, args...)
}

// Exec runs real processes found on PATH.
type Exec struct {
	Timeout time.Duration
}

func (e Exec) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	timeout := e.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	cmd := exec.CommandContext(ctx, name, args...)
	configure(cmd)
	cmd.WaitDelay = waitDelay
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	out, err := cmd.Output()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("%s: %w after %s", name, ErrTimeout, timeout)
	}
	if err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return out, fmt.Errorf("%s: %w: %s", name, err, msg)
		}
		return out, fmt.Errorf("%s: %w", name, err)
	}
	return out, nil
}
