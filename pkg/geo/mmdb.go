// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"github.com/oschwald/maxminddb-golang"
)

const mmdbLanguage = "en"

var _ Provider = (*mmdbProvider)(nil)

// mmdbProvider resolves addresses offline with a GeoLite2-City database.
// ISP and AS fields are only filled if the database carries them.
type mmdbProvider struct {
	reader *maxminddb.Reader
}

// mmdbNames maps language codes to localized names.
type mmdbNames map[string]string

func (n mmdbNames) get() string {
	if v, ok := n[mmdbLanguage]; ok {
		return v
	}
	return ""
}

// mmdbRecord maps the fields of a GeoLite2-City record.
type mmdbRecord struct {
	City struct {
		Names mmdbNames `maxminddb:"names"`
	} `maxminddb:"city"`
	Country struct {
		Names mmdbNames `maxminddb:"names"`
	} `maxminddb:"country"`
	Subdivisions []struct {
		Names mmdbNames `maxminddb:"names"`
	} `maxminddb:"subdivisions"`
	Location struct {
		Latitude  float64 `maxminddb:"latitude"`
		Longitude float64 `maxminddb:"longitude"`
	} `maxminddb:"location"`
	Traits struct {
		ISP          string `maxminddb:"isp"`
		Organization string `maxminddb:"organization"`
	} `maxminddb:"traits"`
	AutonomousSystemNumber       uint   `maxminddb:"autonomous_system_number"`
	AutonomousSystemOrganization string `maxminddb:"autonomous_system_organization"`
}

func newMMDBProvider(path string) (*mmdbProvider, error) {
	reader, err := maxminddb.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open mmdb %q: %w", path, err)
	}
	return &mmdbProvider{reader: reader}, nil
}

func (p *mmdbProvider) Name() string {
	return ProviderMMDB
}

func (p *mmdbProvider) Lookup(_ context.Context, addr netip.Addr) (Geo, error) {
	var record mmdbRecord
	if err := p.reader.Lookup(net.IP(addr.AsSlice()), &record); err != nil {
		return Geo{}, fmt.Errorf("mmdb lookup of %s failed: %w", addr, err)
	}
	return record.toGeo(addr)
}

func (p *mmdbProvider) Close() error {
	return p.reader.Close()
}

func (r *mmdbRecord) toGeo(addr netip.Addr) (Geo, error) {
	g := Geo{
		Latitude:  r.Location.Latitude,
		Longitude: r.Location.Longitude,
		City:      r.City.Names.get(),
		Country:   r.Country.Names.get(),
		ISP:       r.Traits.ISP,
		Org:       r.Traits.Organization,
	}
	if len(r.Subdivisions) > 0 {
		g.Region = r.Subdivisions[0].Names.get()
	}
	if r.AutonomousSystemNumber != 0 {
		g.ASNumber = fmt.Sprintf("AS%d %s", r.AutonomousSystemNumber, r.AutonomousSystemOrganization)
		if g.Org == "" {
			g.Org = r.AutonomousSystemOrganization
		}
	}
	if g.Country == "" && g.Latitude == 0 && g.Longitude == 0 {
		return Geo{}, fmt.Errorf("%w for %s", ErrNoData, addr)
	}
	return g, nil
}
