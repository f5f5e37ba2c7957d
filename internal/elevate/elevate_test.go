package elevate

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Dicklesworthstone/hwsnap/internal/runner"
)

type recorder struct {
	calls   []string
	results map[string]error
}

func (r *recorder) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	call := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, call)
	if err := r.results[call]; err != nil {
		return nil, err
	}
	return []byte(call), nil
}

func TestDirectSuccessSkipsWrapper(t *testing.T) {
	rec := &recorder{}
	out, err := Default().withRunner(nil).Run(context.Background(), rec, "dmidecode", "-t", "17")
	require.NoError(t, err)
	assert.Equal(t, "dmidecode -t 17", string(out))
	assert.Equal(t, []string{"dmidecode -t 17"}, rec.calls)
}

func TestFailureRetriesElevatedAfterDirect(t *testing.T) {
	rec := &recorder{results: map[string]error{"dmidecode -t 17": errors.New("permission denied")}}
	out, err := Default().withRunner(nil).Run(context.Background(), rec, "dmidecode", "-t", "17")
	require.NoError(t, err)
	assert.Equal(t, "pkexec dmidecode -t 17", string(out))
	assert.Equal(t, []string{"dmidecode -t 17", "pkexec dmidecode -t 17"}, rec.calls)
}

func TestDisabledNeverPrompts(t *testing.T) {
	rec := &recorder{results: map[string]error{"dmidecode -t 17": errors.New("permission denied")}}
	_, err := Disabled().Run(context.Background(), rec, "dmidecode", "-t", "17")
	require.Error(t, err)
	assert.Equal(t, []string{"dmidecode -t 17"}, rec.calls)
}

func TestBothAttemptsFail(t *testing.T) {
	rec := &recorder{results: map[string]error{
		"dmidecode -t 17":        errors.New("permission denied"),
		"pkexec dmidecode -t 17": errors.New("dismissed"),
	}}
	_, err := Default().withRunner(nil).Run(context.Background(), rec, "dmidecode", "-t", "17")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Contains(t, err.Error(), "dismissed")
}

func TestSeparateElevatedRunner(t *testing.T) {
	direct := &recorder{results: map[string]error{"dmidecode": errors.New("denied")}}
	elevated := &recorder{}
	p := Policy{Enabled: true, Wrapper: "sudo", Runner: elevated}
	_, err := p.Run(context.Background(), direct, "dmidecode")
	require.NoError(t, err)
	assert.Equal(t, []string{"dmidecode"}, direct.calls)
	assert.Equal(t, []string{"sudo dmidecode"}, elevated.calls)
}

func (p Policy) withRunner(r runner.Runner) Policy {
	p.Runner = r
	return p
}
