// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMMDBRecord_ToGeo(t *testing.T) {
	addr := netip.MustParseAddr("81.2.69.142")

	var full mmdbRecord
	full.City.Names = mmdbNames{"en": "London", "de": "London"}
	full.Country.Names = mmdbNames{"en": "United Kingdom"}
	full.Subdivisions = append(full.Subdivisions, struct {
		Names mmdbNames `maxminddb:"names"`
	}{Names: mmdbNames{"en": "England"}})
	full.Location.Latitude = 51.5142
	full.Location.Longitude = -0.0931
	full.AutonomousSystemNumber = 20712
	full.AutonomousSystemOrganization = "Andrews & Arnold Ltd"

	got, err := full.toGeo(addr)
	require.NoError(t, err)
	want := Geo{
		Latitude:  51.5142,
		Longitude: -0.0931,
		City:      "London",
		Region:    "England",
		Country:   "United Kingdom",
		Org:       "Andrews & Arnold Ltd",
		ASNumber:  "AS20712 Andrews & Arnold Ltd",
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("toGeo() mismatch (-want +got):\n%s", diff)
	}

	var empty mmdbRecord
	_, err = empty.toGeo(addr)
	assert.ErrorIs(t, err, ErrNoData)
}
