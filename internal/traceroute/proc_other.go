// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

//go:build !unix

package traceroute

import (
	"os/exec"
	"time"
)

func isolateProcessGroup(cmd *exec.Cmd) {
	cmd.WaitDelay = time.Second
}
