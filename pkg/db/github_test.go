// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"encoding/base64"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/telekom/tracemap/internal/helper"
)

const contentsURL = "https://api.github.com/repos/telekom/results/contents/tracemap/results.json"

func newTestGitHub(t *testing.T, rc helper.RetryConfig) *GitHub {
	t.Helper()
	hc := &http.Client{}
	httpmock.ActivateNonDefault(hc)
	t.Cleanup(httpmock.DeactivateAndReset)

	g, err := newGitHub(&GitHubConfig{Owner: "telekom", Repo: "results"}, hc, rc)
	require.NoError(t, err)
	return g
}

func fileResponder(t *testing.T, content []byte, sha string) httpmock.Responder {
	t.Helper()
	return httpmock.NewJsonResponderOrPanic(http.StatusOK, map[string]any{
		"type":     "file",
		"encoding": "base64",
		"name":     "results.json",
		"path":     "tracemap/results.json",
		"sha":      sha,
		"content":  base64.StdEncoding.EncodeToString(content),
	})
}

var notFound = httpmock.NewJsonResponderOrPanic(http.StatusNotFound, map[string]string{"message": "Not Found"})

// putRecorder answers PUT requests and keeps the decoded request body.
func putRecorder(t *testing.T, got *map[string]any) httpmock.Responder {
	t.Helper()
	return func(req *http.Request) (*http.Response, error) {
		if err := json.NewDecoder(req.Body).Decode(got); err != nil {
			return nil, err
		}
		return httpmock.NewJsonResponse(http.StatusOK, map[string]any{
			"content": map[string]string{"name": "results.json", "sha": "def456"},
			"commit":  map[string]string{"sha": "0123abc"},
		})
	}
}

func TestGitHub_SaveCreatesFile(t *testing.T) {
	g := newTestGitHub(t, helper.RetryConfig{})
	var body map[string]any
	httpmock.RegisterResponder(http.MethodGet, contentsURL, notFound)
	httpmock.RegisterResponder(http.MethodPut, contentsURL, putRecorder(t, &body))

	run := sampleRun(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	require.NoError(t, g.Save(t.Context(), run))

	assert.Equal(t, "main", body["branch"])
	assert.NotContains(t, body, "sha")
	assert.Equal(t, "Update tracemap results of 2025-03-01T10:00:00Z", body["message"])

	raw, err := base64.StdEncoding.DecodeString(body["content"].(string))
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"name": "Binance"`)
}

func TestGitHub_SaveUpdatesFile(t *testing.T) {
	g := newTestGitHub(t, helper.RetryConfig{})
	var body map[string]any
	httpmock.RegisterResponder(http.MethodGet, contentsURL, fileResponder(t, []byte(`{}`), "abc123"))
	httpmock.RegisterResponder(http.MethodPut, contentsURL, putRecorder(t, &body))

	require.NoError(t, g.Save(t.Context(), sampleRun(time.Now().UTC())))
	assert.Equal(t, "abc123", body["sha"])
}

func TestGitHub_SaveRetries(t *testing.T) {
	g := newTestGitHub(t, helper.RetryConfig{Count: 2, Delay: time.Millisecond})
	var body map[string]any
	httpmock.RegisterResponder(http.MethodGet, contentsURL, notFound)
	httpmock.RegisterResponder(http.MethodPut, contentsURL,
		httpmock.NewStringResponder(http.StatusBadGateway, "").Then(putRecorder(t, &body)))

	require.NoError(t, g.Save(t.Context(), sampleRun(time.Now().UTC())))
	assert.Equal(t, 2, httpmock.GetCallCountInfo()["PUT "+contentsURL])
}

func TestGitHub_Load(t *testing.T) {
	g := newTestGitHub(t, helper.RetryConfig{})
	run := sampleRun(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	data, err := json.Marshal(run)
	require.NoError(t, err)
	httpmock.RegisterResponder(http.MethodGet, contentsURL, fileResponder(t, data, "abc123"))

	got, err := g.Load(t.Context())
	require.NoError(t, err)
	if diff := cmp.Diff(run, got); diff != "" {
		t.Errorf("loaded run mismatch (-want +got):\n%s", diff)
	}
}

func TestGitHub_LoadNotFound(t *testing.T) {
	g := newTestGitHub(t, helper.RetryConfig{Count: 3, Delay: time.Millisecond})
	httpmock.RegisterResponder(http.MethodGet, contentsURL, notFound)

	_, err := g.Load(t.Context())
	require.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 1, httpmock.GetTotalCallCount(), "a missing file is not retried")
}

func TestGitHub_LoadServerError(t *testing.T) {
	g := newTestGitHub(t, helper.RetryConfig{})
	httpmock.RegisterResponder(http.MethodGet, contentsURL, httpmock.NewStringResponder(http.StatusInternalServerError, ""))

	_, err := g.Load(t.Context())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestNewGitHub_Defaults(t *testing.T) {
	g, err := newGitHub(&GitHubConfig{Owner: "o", Repo: "r", BaseURL: "https://github.example.com/"}, nil, helper.RetryConfig{})
	require.NoError(t, err)
	assert.Equal(t, defaultBranch, g.branch)
	assert.Equal(t, defaultGitHubPath, g.path)
	assert.Equal(t, "https://github.example.com/api/v3/", g.client.BaseURL.String())
}
