// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"github.com/telekom/tracemap/internal/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// maxStderrLength caps how much of the utility's stderr ends up in an error.
const maxStderrLength = 256

// commandRunner runs an executable and returns its standard output.
type commandRunner func(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error)

// invocation is one way of calling the utility.
type invocation struct {
	mode string
	args []string
}

// invocations returns the primary invocation followed by its fallback,
// which drops the per-hop wait flag.
func invocations(host string, opts *Options) []invocation {
	maxHops := fmt.Sprint(opts.MaxHops)
	return []invocation{
		{mode: "primary", args: []string{"-m", maxHops, "-q", "1", "-w", opts.hopTimeoutSeconds(), host}},
		{mode: "fallback", args: []string{"-m", maxHops, "-q", "1", host}},
	}
}

// probe runs the utility against host and returns its raw output.
// The fallback invocation is attempted at most once.
func (c *execClient) probe(ctx context.Context, host string, opts *Options) (string, error) {
	log := logger.FromContext(ctx)
	span := trace.SpanFromContext(ctx)

	var errs []error
	for _, inv := range invocations(host, opts) {
		span.AddEvent("Invoking traceroute", trace.WithAttributes(
			attribute.String("traceroute.mode", inv.mode),
			attribute.StringSlice("traceroute.args", inv.args),
		))

		out, err := c.run(ctx, opts.Timeout, opts.Command, inv.args...)
		if err == nil {
			return out, nil
		}
		if ctx.Err() != nil {
			return "", ctx.Err()
		}

		if isProbeError(err) {
			log.WarnContext(ctx, "Traceroute invocation failed", "mode", inv.mode, "error", err)
		} else {
			log.ErrorContext(ctx, "Traceroute invocation failed", "mode", inv.mode, "error", err)
		}
		errs = append(errs, fmt.Errorf("%s invocation: %w", inv.mode, err))
	}

	return "", fmt.Errorf("%w for %s: %w", ErrProbeFailed, host, errors.Join(errs...))
}

// runCommand executes the utility in its own process group and kills the
// whole group once timeout expires. A non-zero exit that still produced
// output is treated as success since traceroute exits non-zero when the
// destination was not reached.
func runCommand(ctx context.Context, timeout time.Duration, name string, args ...string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	var stdout, stderr bytes.Buffer
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	isolateProcessGroup(cmd)

	err := cmd.Run()
	switch {
	case err == nil:
		return stdout.String(), nil
	case errors.Is(err, exec.ErrNotFound):
		return "", fmt.Errorf("%w: %w", ErrUtilityNotFound, err)
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return "", fmt.Errorf("%w after %v", ErrInvocationTimeout, timeout)
	case ctx.Err() != nil:
		return "", ctx.Err()
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && strings.TrimSpace(stdout.String()) != "" {
		return stdout.String(), nil
	}
	return "", fmt.Errorf("%w: %w: %s", ErrInvocationRejected, err, truncate(strings.TrimSpace(stderr.String()), maxStderrLength))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
