// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package api

import (
	"errors"
	"fmt"
	"net"
)

// DefaultAddress is the local port the dashboard is served on.
const DefaultAddress = ":12034"

const defaultMaxConnections = 64

// Config is the configuration of the api server
type Config struct {
	// ListeningAddress is the address the server listens on
	ListeningAddress string `yaml:"address" mapstructure:"address"`
	// MaxConnections limits the number of concurrently accepted connections
	MaxConnections int `yaml:"maxConnections" mapstructure:"maxConnections"`
	// Tls is the tls configuration of the server
	Tls TLSConfig `yaml:"tls" mapstructure:"tls"`
}

// TLSConfig is the tls configuration of the api server
type TLSConfig struct {
	Enabled  bool   `yaml:"enabled" mapstructure:"enabled"`
	CertPath string `yaml:"certPath" mapstructure:"certPath"`
	KeyPath  string `yaml:"keyPath" mapstructure:"keyPath"`
}

// Validate checks the listening address and the tls files
func (c *Config) Validate() error {
	var errs []error
	if _, _, err := net.SplitHostPort(c.address()); err != nil {
		errs = append(errs, fmt.Errorf("invalid listening address %q: %w", c.ListeningAddress, err))
	}
	if c.MaxConnections < 0 {
		errs = append(errs, errors.New("maxConnections must not be negative"))
	}
	if c.Tls.Enabled && (c.Tls.CertPath == "" || c.Tls.KeyPath == "") {
		errs = append(errs, errors.New("certPath and keyPath are required when tls is enabled"))
	}
	return errors.Join(errs...)
}

func (c *Config) address() string {
	if c.ListeningAddress == "" {
		return DefaultAddress
	}
	return c.ListeningAddress
}

func (c *Config) maxConnections() int {
	if c.MaxConnections == 0 {
		return defaultMaxConnections
	}
	return c.MaxConnections
}
