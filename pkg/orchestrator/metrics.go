// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package orchestrator

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	apperrors "github.com/netops-toolkit/portcsv/pkg/errors"
)

var (
	// Run level metrics
	collectionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "portcsv_collection_duration_seconds",
			Help:    "Time taken to collect all targets of a run",
			Buckets: []float64{1, 5, 10, 30, 60, 120, 300, 600},
		},
	)

	collectionTargets = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "portcsv_collection_targets",
			Help: "Number of targets in the last run",
		},
	)

	// Target level metrics
	targetDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "portcsv_target_duration_seconds",
			Help:    "Time taken to fetch, parse and write one target",
			Buckets: []float64{0.01, 0.1, 0.5, 1, 5, 10, 30, 90},
		},
		[]string{"kind"}, // file or device
	)

	targetTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "portcsv_targets_total",
			Help: "Total number of targets processed by result",
		},
		[]string{"status", "code"}, // code is empty on success
	)

	recordsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "portcsv_records_total",
			Help: "Total number of rows written",
		},
	)
)

func observeOutcome(o Outcome) {
	targetDuration.WithLabelValues(string(o.Target.Kind)).Observe(o.Duration.Seconds())
	targetTotal.WithLabelValues(string(o.Status), string(o.Code)).Inc()
	if o.Succeeded() {
		recordsTotal.Add(float64(o.Records))
	}
}

// WriteMetrics writes the default registry to path in the Prometheus text
// format, for node_exporter's textfile collector.
func WriteMetrics(path string) error {
	if err := prometheus.WriteToTextfile(path, prometheus.DefaultGatherer); err != nil {
		return apperrors.WrapWithContext(apperrors.ErrCodeWrite, "failed to write metrics", err,
			map[string]any{"path": path})
	}
	return nil
}
