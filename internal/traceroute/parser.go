// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package traceroute

import (
	"net/netip"
	"regexp"
	"strconv"
	"strings"
)

var (
	// namedHopPattern matches " 3  core1.example.net (93.184.216.34)  24.1 ms".
	namedHopPattern = regexp.MustCompile(`^\s*(\d+)\s+(\S+)\s+\((\d+\.\d+\.\d+\.\d+)\)\s+([\d.]+)\s*ms`)
	// bareHopPattern matches " 4  93.184.216.34  24.1 ms".
	bareHopPattern = regexp.MustCompile(`^\s*(\d+)\s+(\d+\.\d+\.\d+\.\d+)\s+([\d.]+)\s*ms`)
	// timeoutHopPattern matches " 7  * * *".
	timeoutHopPattern = regexp.MustCompile(`^\s*(\d+)\s+\*`)
)

// matcher classifies a single output line. It reports false if the line
// does not have the matcher's shape.
type matcher func(line string) (Hop, bool)

// matchers are tried in order, the first match wins.
var matchers = []matcher{
	matchNamedHop,
	matchBareHop,
	matchTimeoutHop,
}

// Parse converts raw traceroute output into hops in output order.
// Lines that match no known shape are dropped; Parse never fails.
func Parse(raw string) []Hop {
	hops := []Hop{}
	for line := range strings.Lines(raw) {
		if hop, ok := parseLine(line); ok {
			hops = append(hops, hop)
		}
	}
	return hops
}

func parseLine(line string) (Hop, bool) {
	for _, match := range matchers {
		if hop, ok := match(line); ok {
			return hop, true
		}
	}
	return Hop{}, false
}

func matchNamedHop(line string) (Hop, bool) {
	m := namedHopPattern.FindStringSubmatch(line)
	if m == nil {
		return Hop{}, false
	}
	return newAnsweredHop(m[1], m[2], m[3], m[4])
}

func matchBareHop(line string) (Hop, bool) {
	m := bareHopPattern.FindStringSubmatch(line)
	if m == nil {
		return Hop{}, false
	}
	return newAnsweredHop(m[1], m[2], m[2], m[3])
}

func matchTimeoutHop(line string) (Hop, bool) {
	m := timeoutHopPattern.FindStringSubmatch(line)
	if m == nil {
		return Hop{}, false
	}
	index, ok := parseIndex(m[1])
	if !ok {
		return Hop{}, false
	}
	return Hop{Index: index, Host: TimeoutHost}, true
}

func newAnsweredHop(rawIndex, host, rawIP, rawRTT string) (Hop, bool) {
	index, ok := parseIndex(rawIndex)
	if !ok {
		return Hop{}, false
	}
	addr, err := netip.ParseAddr(rawIP)
	if err != nil || !addr.Is4() {
		return Hop{}, false
	}
	rtt, err := strconv.ParseFloat(rawRTT, 64)
	if err != nil {
		return Hop{}, false
	}
	return Hop{
		Index: index,
		Host:  host,
		IP:    addr.String(),
		RTT:   &rtt,
	}, true
}

func parseIndex(raw string) (int, bool) {
	index, err := strconv.Atoi(raw)
	if err != nil || index < 1 {
		return 0, false
	}
	return index, true
}
