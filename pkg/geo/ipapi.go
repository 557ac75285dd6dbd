// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package geo

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/netip"
	"net/url"
	"strings"
)

const (
	ipapiFields   = "status,country,regionName,city,lat,lon,isp,org,as"
	ipapiSuccess  = "success"
	maxErrorBytes = 512
)

var _ Provider = (*ipapiProvider)(nil)

// ipapiProvider resolves addresses with the ip-api.com JSON endpoint.
type ipapiProvider struct {
	baseURL   string
	userAgent string
	client    *http.Client
}

// ipapiResponse is the subset of the ip-api.com answer we request.
type ipapiResponse struct {
	Status     string  `json:"status"`
	Message    string  `json:"message"`
	Country    string  `json:"country"`
	RegionName string  `json:"regionName"`
	City       string  `json:"city"`
	Lat        float64 `json:"lat"`
	Lon        float64 `json:"lon"`
	ISP        string  `json:"isp"`
	Org        string  `json:"org"`
	AS         string  `json:"as"`
}

func newIPAPIProvider(baseURL, userAgent string) *ipapiProvider {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	return &ipapiProvider{
		baseURL:   baseURL,
		userAgent: userAgent,
		client:    &http.Client{},
	}
}

func (p *ipapiProvider) Name() string {
	return ProviderIPAPI
}

func (p *ipapiProvider) Lookup(ctx context.Context, addr netip.Addr) (Geo, error) {
	u := p.baseURL + url.PathEscape(addr.String()) + "?fields=" + ipapiFields
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return Geo{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", p.userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := p.client.Do(req) //nolint:bodyclose // closed in defer
	if err != nil {
		return Geo{}, fmt.Errorf("failed to query %s: %w", p.Name(), err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBytes))
		return Geo{}, ErrLookupFailed{IP: addr.String(), Status: resp.Status, Reason: strings.TrimSpace(string(body))}
	}

	var r ipapiResponse
	if err := json.NewDecoder(resp.Body).Decode(&r); err != nil {
		return Geo{}, fmt.Errorf("failed to decode response: %w", err)
	}
	if r.Status != ipapiSuccess {
		return Geo{}, ErrLookupFailed{IP: addr.String(), Status: r.Status, Reason: r.Message}
	}

	return Geo{
		Latitude:  r.Lat,
		Longitude: r.Lon,
		City:      r.City,
		Region:    r.RegionName,
		Country:   r.Country,
		ISP:       r.ISP,
		Org:       r.Org,
		ASNumber:  r.AS,
	}, nil
}

func (p *ipapiProvider) Close() error {
	p.client.CloseIdleConnections()
	return nil
}
