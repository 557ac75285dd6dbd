// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"context"
	"fmt"

	"github.com/telekom/tracemap/internal/logger"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// logHops logs every parsed hop at debug level and a summary at info level.
func logHops(ctx context.Context, host string, hops []Hop) {
	log := logger.FromContext(ctx)
	timedOut := 0
	for _, hop := range hops {
		if hop.TimedOut() {
			timedOut++
		}
		log.DebugContext(ctx, "Hop", "hop", hop.String())
	}
	log.InfoContext(ctx, "Traced host", "host", host, "hops", len(hops), "timedOut", timedOut)
}

// wrapError wraps an error with a message and logs it.
// It also records the error in the current OpenTelemetry span.
func wrapError(ctx context.Context, err error, msg string, args ...any) error {
	if err == nil {
		return nil
	}
	log := logger.FromContext(ctx)
	span := trace.SpanFromContext(ctx)
	caser := cases.Title(language.English)

	formatted := fmt.Sprintf(msg, args...)
	log.ErrorContext(ctx, caser.String(formatted), "error", err)
	span.SetStatus(codes.Error, formatted)
	span.RecordError(err)
	return fmt.Errorf("%s: %w", formatted, err)
}
