// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
	"slices"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/tracemap/test"
	"go.opentelemetry.io/otel/trace/noop"
)

const sampleOutput = `traceroute to example.com (93.184.216.34), 20 hops max, 60 byte packets
 1  192.168.1.1  0.4 ms
 2  * * *
 3  core1.example.net (93.184.216.34)  24.1 ms
`

// recordedCall is a single invocation seen by fakeRunner.
type recordedCall struct {
	name string
	args []string
}

// fakeRunner answers invocations in order with the given results.
type fakeRunner struct {
	results []fakeResult
	calls   []recordedCall
}

type fakeResult struct {
	out string
	err error
}

func (f *fakeRunner) run(_ context.Context, _ time.Duration, name string, args ...string) (string, error) {
	f.calls = append(f.calls, recordedCall{name: name, args: slices.Clone(args)})
	if len(f.calls) > len(f.results) {
		return "", errors.New("unexpected invocation")
	}
	r := f.results[len(f.calls)-1]
	return r.out, r.err
}

func newTestClient(runner *fakeRunner) *execClient {
	return &execClient{run: runner.run, tracer: noop.NewTracerProvider().Tracer("test")}
}

func TestExecClient_Trace(t *testing.T) {
	primaryArgs := []string{"-m", "20", "-q", "1", "-w", "2", "example.com"}
	fallbackArgs := []string{"-m", "20", "-q", "1", "example.com"}

	tests := []struct {
		name      string
		results   []fakeResult
		wantCalls [][]string
		wantHops  int
		wantErr   error
	}{
		{
			name:      "primary invocation succeeds",
			results:   []fakeResult{{out: sampleOutput}},
			wantCalls: [][]string{primaryArgs},
			wantHops:  3,
		},
		{
			name: "falls back when the flag is rejected",
			results: []fakeResult{
				{err: fmt.Errorf("%w: exit status 2", ErrInvocationRejected)},
				{out: sampleOutput},
			},
			wantCalls: [][]string{primaryArgs, fallbackArgs},
			wantHops:  3,
		},
		{
			name: "falls back on timeout",
			results: []fakeResult{
				{err: ErrInvocationTimeout},
				{out: sampleOutput},
			},
			wantCalls: [][]string{primaryArgs, fallbackArgs},
			wantHops:  3,
		},
		{
			name: "both invocations fail",
			results: []fakeResult{
				{err: fmt.Errorf("%w: exec: not found", ErrUtilityNotFound)},
				{err: fmt.Errorf("%w: exec: not found", ErrUtilityNotFound)},
			},
			wantCalls: [][]string{primaryArgs, fallbackArgs},
			wantErr:   ErrProbeFailed,
		},
		{
			name:      "unparseable output yields no hops",
			results:   []fakeResult{{out: "nothing useful\n"}},
			wantCalls: [][]string{primaryArgs},
			wantHops:  0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			runner := &fakeRunner{results: tt.results}
			c := newTestClient(runner)

			hops, err := c.Trace(t.Context(), "example.com", DefaultOptions())
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, ErrUtilityNotFound)
				assert.Nil(t, hops)
			} else {
				require.NoError(t, err)
				assert.Len(t, hops, tt.wantHops)
			}

			var gotCalls [][]string
			for _, call := range runner.calls {
				assert.Equal(t, defaultCommand, call.name)
				gotCalls = append(gotCalls, call.args)
			}
			if diff := cmp.Diff(tt.wantCalls, gotCalls); diff != "" {
				t.Errorf("invocations mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExecClient_Trace_InvalidInput(t *testing.T) {
	c := newTestClient(&fakeRunner{})

	_, err := c.Trace(t.Context(), "", DefaultOptions())
	assert.Error(t, err)

	_, err = c.Trace(t.Context(), "example.com", &Options{Command: "traceroute", MaxHops: 0, HopTimeout: time.Second, Timeout: time.Second})
	assert.Error(t, err)
}

func TestExecClient_Trace_CancelledContextSkipsFallback(t *testing.T) {
	ctx, cancel := context.WithCancel(t.Context())
	runner := &fakeRunner{results: []fakeResult{{err: ErrInvocationTimeout}, {out: sampleOutput}}}
	c := &execClient{
		run: func(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
			cancel()
			return runner.run(ctx, timeout, name, args...)
		},
		tracer: noop.NewTracerProvider().Tracer("test"),
	}

	_, err := c.Trace(ctx, "example.com", DefaultOptions())
	assert.ErrorIs(t, err, context.Canceled)
	assert.Len(t, runner.calls, 1)
}

func TestRunCommand(t *testing.T) {
	test.MarkAsLong(t)
	t.Run("missing executable", func(t *testing.T) {
		_, err := runCommand(t.Context(), time.Second, "tracemap-no-such-traceroute-binary", "-m", "1")
		assert.ErrorIs(t, err, ErrUtilityNotFound)
	})

	t.Run("non-zero exit with output is accepted", func(t *testing.T) {
		if _, err := exec.LookPath("sh"); err != nil {
			t.Skip("sh not available")
		}
		out, err := runCommand(t.Context(), 5*time.Second, "sh", "-c", "echo ' 1  10.0.0.1  1.0 ms'; exit 1")
		require.NoError(t, err)
		assert.Len(t, Parse(out), 1)
	})

	t.Run("non-zero exit without output is rejected", func(t *testing.T) {
		if _, err := exec.LookPath("sh"); err != nil {
			t.Skip("sh not available")
		}
		_, err := runCommand(t.Context(), 5*time.Second, "sh", "-c", "echo 'invalid option -w' >&2; exit 2")
		require.ErrorIs(t, err, ErrInvocationRejected)
		assert.Contains(t, err.Error(), "invalid option -w")
	})

	t.Run("timeout kills the process group", func(t *testing.T) {
		if _, err := exec.LookPath("sh"); err != nil {
			t.Skip("sh not available")
		}
		start := time.Now()
		_, err := runCommand(t.Context(), 200*time.Millisecond, "sh", "-c", "sleep 10 & sleep 10")
		assert.ErrorIs(t, err, ErrInvocationTimeout)
		assert.Less(t, time.Since(start), 5*time.Second)
	})
}

func TestIsProbeError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"not found", ErrUtilityNotFound, true},
		{"wrapped timeout", fmt.Errorf("wrap: %w", ErrInvocationTimeout), true},
		{"rejected", ErrInvocationRejected, true},
		{"deadline exceeded", context.DeadlineExceeded, true},
		{"some other error", errors.New("foo"), false},
		{"nil error", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, isProbeError(tt.err), "isProbeError(%v)", tt.err)
		})
	}
}

func TestOptions_Validate(t *testing.T) {
	assert.NoError(t, DefaultOptions().Validate())

	err := (&Options{}).Validate()
	require.Error(t, err)
	for _, field := range []string{"command", "maxHops", "hopTimeout", "timeout"} {
		assert.Contains(t, err.Error(), field)
	}
}

func TestOptions_HopTimeoutSeconds(t *testing.T) {
	assert.Equal(t, "2", (&Options{HopTimeout: 2 * time.Second}).hopTimeoutSeconds())
	assert.Equal(t, "3", (&Options{HopTimeout: 2600 * time.Millisecond}).hopTimeoutSeconds())
	assert.Equal(t, "1", (&Options{HopTimeout: 0}).hopTimeoutSeconds())
}
