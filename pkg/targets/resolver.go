// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package targets

import (
	"context"
	"fmt"
	"net"
	"net/netip"

	"github.com/miekg/dns"
)

const resolvConf = "/etc/resolv.conf"

// AddressResolver looks up the IPv4 address of a target host.
//
//go:generate go tool moq -out resolver_moq.go . AddressResolver
type AddressResolver interface {
	// LookupIPv4 returns the first IPv4 address of host.
	LookupIPv4(ctx context.Context, host string) (string, error)
}

var _ AddressResolver = (*DNSResolver)(nil)

// DNSResolver queries a single nameserver for A records.
type DNSResolver struct {
	client     *dns.Client
	nameserver string
}

// NewDNSResolver returns a resolver for the configured nameserver.
// Without a nameserver the first one of /etc/resolv.conf is used.
func NewDNSResolver(cfg ResolveConfig) (*DNSResolver, error) {
	nameserver := cfg.Nameserver
	if nameserver == "" {
		conf, err := dns.ClientConfigFromFile(resolvConf)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", resolvConf, err)
		}
		if len(conf.Servers) == 0 {
			return nil, fmt.Errorf("no nameserver in %s", resolvConf)
		}
		nameserver = net.JoinHostPort(conf.Servers[0], conf.Port)
	}

	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultResolveTimeout
	}

	return &DNSResolver{
		client:     &dns.Client{Timeout: timeout},
		nameserver: nameserver,
	}, nil
}

// LookupIPv4 returns the first A record of host. IPv4 literals are returned as is.
func (r *DNSResolver) LookupIPv4(ctx context.Context, host string) (string, error) {
	if addr, err := netip.ParseAddr(host); err == nil && addr.Is4() {
		return addr.String(), nil
	}

	msg := new(dns.Msg)
	msg.SetQuestion(dns.Fqdn(host), dns.TypeA)

	resp, _, err := r.client.ExchangeContext(ctx, msg, r.nameserver)
	if err != nil {
		return "", fmt.Errorf("failed to query %s for %s: %w", r.nameserver, host, err)
	}
	if resp.Rcode != dns.RcodeSuccess {
		return "", fmt.Errorf("query for %s failed: %s", host, dns.RcodeToString[resp.Rcode])
	}
	for _, ans := range resp.Answer {
		if a, ok := ans.(*dns.A); ok {
			return a.A.String(), nil
		}
	}
	return "", fmt.Errorf("%w for %s", ErrNoAddress, host)
}
