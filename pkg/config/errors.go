// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package config

import "errors"

var (
	// ErrInvalidName is returned when the instance name is invalid
	ErrInvalidName = errors.New("invalid instance name")
	// ErrInvalidOutputDir is returned when the output directory is missing
	ErrInvalidOutputDir = errors.New("invalid output directory")
)
