// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package db

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSQLite_SaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	s, err := NewSQLite(t.Context(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.Load(t.Context())
	require.ErrorIs(t, err, ErrNotFound)

	older := sampleRun(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))
	newer := sampleRun(time.Date(2025, 3, 1, 11, 0, 0, 0, time.UTC))
	require.NoError(t, s.Save(t.Context(), older))
	require.NoError(t, s.Save(t.Context(), newer))

	got, err := s.Load(t.Context())
	require.NoError(t, err)
	if diff := cmp.Diff(newer, got); diff != "" {
		t.Errorf("loaded run mismatch (-want +got):\n%s", diff)
	}
}

func TestSQLite_Reopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")
	run := sampleRun(time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC))

	s, err := NewSQLite(t.Context(), path)
	require.NoError(t, err)
	require.NoError(t, s.Save(t.Context(), run))
	require.NoError(t, s.Close())

	s, err = NewSQLite(t.Context(), path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	got, err := s.Load(t.Context())
	require.NoError(t, err)
	require.True(t, run.Timestamp.Equal(got.Timestamp))
}
