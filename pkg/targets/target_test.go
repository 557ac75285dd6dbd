// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package targets

import (
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_Flatten(t *testing.T) {
	c := Catalog{
		"Cloud Providers": {{Name: "GCP", Host: "gcp.example"}, {Name: "AWS", Host: "aws.example"}},
		"Quant APIs":      {{Name: "Binance", Host: "api.binance.com"}},
	}

	want := []Target{
		{Name: "GCP", Host: "gcp.example", Category: "Cloud Providers"},
		{Name: "AWS", Host: "aws.example", Category: "Cloud Providers"},
		{Name: "Binance", Host: "api.binance.com", Category: "Quant APIs"},
	}
	if diff := cmp.Diff(want, c.Flatten()); diff != "" {
		t.Errorf("Flatten() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, c.Len())
}

func TestCatalog_Validate(t *testing.T) {
	tests := []struct {
		name    string
		catalog Catalog
		wantErr bool
	}{
		{
			name:    "valid",
			catalog: Catalog{"Cloud": {{Name: "Cloudflare", Host: "1.1.1.1"}, {Name: "Example", Host: "example.com"}}},
		},
		{
			name:    "internationalized hostname",
			catalog: Catalog{"Cloud": {{Name: "Bücher", Host: "bücher.example"}}},
		},
		{
			name:    "empty catalog",
			catalog: Catalog{},
			wantErr: true,
		},
		{
			name:    "missing name",
			catalog: Catalog{"Cloud": {{Host: "example.com"}}},
			wantErr: true,
		},
		{
			name:    "missing host",
			catalog: Catalog{"Cloud": {{Name: "Example"}}},
			wantErr: true,
		},
		{
			name:    "ipv6 host",
			catalog: Catalog{"Cloud": {{Name: "Google", Host: "2001:4860:4860::8888"}}},
			wantErr: true,
		},
		{
			name:    "invalid hostname",
			catalog: Catalog{"Cloud": {{Name: "Broken", Host: "exa mple.com"}}},
			wantErr: true,
		},
		{
			name:    "blank category",
			catalog: Catalog{" ": {{Name: "Example", Host: "example.com"}}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.catalog.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestPrecedence_Compare(t *testing.T) {
	input := []Target{
		{Name: "Zeta", Host: "z.example", Category: "Misc"},
		{Name: "NYSE", Host: "nyse.com", Category: "NYSE & Financial"},
		{Name: "AWS", Host: "aws.example", Category: "Cloud Providers"},
		{Name: "Alpha", Host: "a.example", Category: "Misc"},
		{Name: "Binance", Host: "api.binance.com", Category: "Quant APIs"},
		{Name: "AWS", Host: "aws2.example", Category: "Cloud Providers"},
		{Name: "Beta", Host: "b.example", Category: "Another"},
	}

	got := slices.Clone(input)
	slices.SortFunc(got, Precedence(DefaultCategoryOrder).Compare)

	var names []string
	for _, tgt := range got {
		names = append(names, tgt.Name+"@"+tgt.Host)
	}
	assert.Equal(t, []string{
		"Binance@api.binance.com",
		"AWS@aws.example",
		"AWS@aws2.example",
		"NYSE@nyse.com",
		"Alpha@a.example",
		"Beta@b.example",
		"Zeta@z.example",
	}, names)
}

func TestConfig_Precedence(t *testing.T) {
	c := Config{}
	assert.Equal(t, Precedence(DefaultCategoryOrder), c.Precedence())

	c.CategoryOrder = []string{"B", "A"}
	require.Equal(t, 0, c.Precedence().Rank("B"))
	assert.Equal(t, 1, c.Precedence().Rank("A"))
	assert.Equal(t, 2, c.Precedence().Rank("C"))
}

func TestConfig_Validate(t *testing.T) {
	assert.NoError(t, (&Config{Path: "targets.yaml"}).Validate())
	assert.Error(t, (&Config{}).Validate())
	assert.Error(t, (&Config{Path: "targets.yaml", Resolve: ResolveConfig{Nameserver: "1.1.1.1"}}).Validate())
}
