// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"net/netip"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLookupable(t *testing.T) {
	tests := []struct {
		ip   string
		want bool
	}{
		{"93.184.216.34", true},
		{"8.8.8.8", true},
		{"172.32.0.1", true},
		{"10.1.2.3", false},
		{"172.16.0.1", false},
		{"172.31.255.255", false},
		{"192.168.1.1", false},
		{"127.0.0.1", false},
		{"169.254.1.1", false},
		{"0.0.0.0", false},
		{"224.0.0.1", false},
		{"::ffff:10.0.0.1", false},
		{"::ffff:8.8.8.8", true},
		{"2001:4860:4860::8888", false},
		{"", false},
		{"not-an-ip", false},
	}

	for _, tt := range tests {
		t.Run(tt.ip, func(t *testing.T) {
			_, ok := lookupable(tt.ip)
			assert.Equal(t, tt.want, ok)
		})
	}
}

func TestIsPrivate(t *testing.T) {
	assert.True(t, IsPrivate(netip.MustParseAddr("10.0.0.1")))
	assert.True(t, IsPrivate(netip.MustParseAddr("192.168.0.1")))
	assert.True(t, IsPrivate(netip.MustParseAddr("172.20.0.1")))
	assert.False(t, IsPrivate(netip.MustParseAddr("1.1.1.1")))
}
