// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package dashboard

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/tracemap/internal/traceroute"
	"github.com/telekom/tracemap/pkg/geo"
	"github.com/telekom/tracemap/pkg/orchestrator"
)

func testRun() orchestrator.Run {
	rtt := 24.1
	return orchestrator.Run{
		Timestamp: time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC),
		Results: []orchestrator.TargetResult{
			{
				Name:         "Binance",
				Host:         "api.binance.com",
				Category:     "Quant APIs",
				HopCount:     2,
				TotalLatency: &rtt,
				Hops: []orchestrator.Hop{
					{Hop: traceroute.Hop{Index: 1, Host: traceroute.TimeoutHost}},
					{
						Hop: traceroute.Hop{Index: 2, Host: "core1.example.net", IP: "93.184.216.34", RTT: &rtt},
						Geo: &geo.Geo{Latitude: 42.15, Longitude: -70.82, City: "Norwell", Country: "United States"},
					},
				},
			},
			{
				Name:     "Evil </script>",
				Host:     "nyse.com",
				Category: "NYSE & Financial",
				Hops:     []orchestrator.Hop{},
				Error:    "traceroute not installed",
			},
		},
	}
}

func TestRenderer_Render(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "output")
	r, err := New(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, r.Dir())

	require.NoError(t, r.Render(t.Context(), testRun()))

	index, err := os.ReadFile(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	html := string(index)
	assert.Contains(t, html, "core1.example.net (93.184.216.34)")
	assert.Contains(t, html, "24.1 ms")
	assert.Contains(t, html, "Norwell, United States")
	assert.Contains(t, html, `<option value="Quant APIs">`)
	assert.Contains(t, html, "1 failed")
	assert.Equal(t, 2, strings.Count(html, "</script>"), "names are escaped inside the embedded run")

	data, err := os.ReadFile(filepath.Join(dir, ResultsFile))
	require.NoError(t, err)
	var got orchestrator.Run
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Len(t, got.Results, 2)
	assert.True(t, got.Timestamp.Equal(testRun().Timestamp))
}

func TestRenderer_RenderOverwrites(t *testing.T) {
	dir := t.TempDir()
	r, err := New(dir)
	require.NoError(t, err)

	run := testRun()
	require.NoError(t, r.Render(t.Context(), run))
	run.Results = run.Results[:1]
	require.NoError(t, r.Render(t.Context(), run))

	index, err := os.ReadFile(filepath.Join(dir, IndexFile))
	require.NoError(t, err)
	assert.NotContains(t, string(index), "failed</span>")

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestNewPage(t *testing.T) {
	p := newPage(testRun())
	assert.Equal(t, []string{"Quant APIs", "NYSE & Financial"}, p.Categories)
	assert.Equal(t, 1, p.Failed)
}

func TestFormatLatency(t *testing.T) {
	rtt := 0.456
	assert.Equal(t, "*", formatLatency(nil))
	assert.Equal(t, "0.5 ms", formatLatency(&rtt))
}
