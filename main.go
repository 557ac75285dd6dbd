// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package main

import (
	"github.com/telekom/tracemap/cmd"
	"github.com/telekom/tracemap/pkg"
)

// Version is the current version of tracemap
// It is set at build time by using -ldflags "-X main.version=x.x.x"
var version string

func main() {
	pkg.Version = version
	cmd.Execute(version)
}
