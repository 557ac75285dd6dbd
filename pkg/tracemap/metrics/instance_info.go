// SPDX-FileCopyrightText: 2025 Deutsche Telekom IT GmbH
//
// SPDX-License-Identifier: Apache-2.0

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	instanceInfoMetricName = "tracemap_instance_info"
	instanceInfoHelp       = "Build and platform metadata of this tracemap instance."
)

// instanceInfoLabels are the optional labels of the instance info metric
// next to instance_name.
var instanceInfoLabels = []string{"version", "platform"}

// RegisterInstanceInfo registers the tracemap_instance_info info-style metric on the given registry.
// Missing metadata keys are exported as empty labels.
func RegisterInstanceInfo(registry *prometheus.Registry, instanceName string, metadata map[string]string) error {
	info := prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: instanceInfoMetricName,
			Help: instanceInfoHelp,
		},
		append([]string{"instance_name"}, instanceInfoLabels...),
	)
	values := []string{instanceName}
	for _, l := range instanceInfoLabels {
		values = append(values, metadata[l])
	}
	info.WithLabelValues(values...).Set(1)
	return registry.Register(info)
}
