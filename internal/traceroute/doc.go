// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package traceroute runs the system traceroute utility against a host and
// turns its textual output into an ordered sequence of [Hop] records.
//
// The [Client] invokes the utility with a per-hop wait and a single probe per
// hop. When that invocation cannot be used (missing executable, timeout or a
// rejected flag set) it retries exactly once without the per-hop wait flag.
// Every invocation runs in its own process group which is killed as a whole
// when the invocation timeout expires.
//
// [Parse] is a pure function that classifies every output line with an
// ordered list of matchers:
//
//	 3  core1.example.net (93.184.216.34)  24.1 ms   named hop
//	 4  93.184.216.34  24.1 ms                       bare address hop
//	 7  * * *                                        timed out hop
//
// The first matching matcher wins. Lines nothing matches, including the
// utility's header, are dropped.
//
// Typical usage:
//
//	client := traceroute.NewClient()
//	hops, err := client.Trace(ctx, "example.com", traceroute.DefaultOptions())
package traceroute
