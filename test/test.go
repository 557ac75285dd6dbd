// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package test holds helpers shared by the tests of all packages.
package test

import "testing"

// MarkAsLong marks a test that spawns processes, opens sockets or
// waits on timers. It is skipped when running with -short.
func MarkAsLong(t testing.TB) {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping long running test in short mode")
	}
}
