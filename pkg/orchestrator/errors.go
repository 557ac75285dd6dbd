// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import "errors"

// ErrTaskPanicked is recorded for targets whose task panicked.
var ErrTaskPanicked = errors.New("task panicked")
