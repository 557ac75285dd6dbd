// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package orchestrator

import "github.com/telekom/tracemap/pkg/targets"

// outcome is what a single task yields: either a result or the reason it failed.
type outcome struct {
	target targets.Target
	result TargetResult
	err    error
}

func success(target targets.Target, r TargetResult) outcome {
	return outcome{target: target, result: r}
}

func failure(target targets.Target, err error) outcome {
	return outcome{target: target, err: err}
}

// toResult maps every failure to the same stub shape.
func (o outcome) toResult() TargetResult {
	if o.err != nil {
		return newFailedResult(o.target, o.err)
	}
	return o.result
}
