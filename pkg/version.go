// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

// Package pkg contains metadata about tracemap.
package pkg

// Version is the current version of tracemap.
// It is set by main from the value injected with -ldflags "-X main.version=x.x.x".
var Version string
