// Package elevate retries a privileged tool through an interactive
// permission wrapper once the unprivileged attempt has failed.
package elevate

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dicklesworthstone/hwsnap/internal/runner"
)

const (
	DefaultWrapper = "pkexec"
	DefaultTimeout = 60 * time.Second
)

// Policy decides whether a failed invocation is retried elevated.
// The zero value never elevates.
type Policy struct {
	Enabled bool
	Wrapper string
	// Runner runs the elevated attempt. It usually carries a longer timeout
	// than the direct runner since the wrapper waits on the user. Nil reuses
	// the direct runner.
	Runner runner.Runner
}

// Default returns an enabled pkexec policy.
func Default() Policy {
	return Policy{
		Enabled: true,
		Wrapper: DefaultWrapper,
		Runner:  runner.Exec{Timeout: DefaultTimeout},
	}
}

// Disabled never prompts. Use it for headless hosts and tests.
func Disabled() Policy { return Policy{} }

// Run invokes name directly and, only when that fails, once more through the
// wrapper. The two attempts are strictly sequential.
func (p Policy) Run(ctx context.Context, r runner.Runner, name string, args ...string) ([]byte, error) {
	out, err := r.Run(ctx, name, args...)
	if err == nil {
		return out, nil
	}
	if !p.Enabled || p.Wrapper == "" {
		return nil, err
	}

	elevated := p.Runner
	if elevated == nil {
		elevated = r
	}
	out, eerr := elevated.Run(ctx, p.Wrapper, append([]string{name}, args...)...)
	if eerr != nil {
		return nil, errors.Join(err, fmt.Errorf("elevated via %s: %w", p.Wrapper, eerr))
	}
	return out, nil
}
