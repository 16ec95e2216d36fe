// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package registry

import (
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

// Package-level tracer and meter for registry operations.
var (
	tracer = otel.Tracer("blueprint.registry")
	meter  = otel.Meter("blueprint.registry")
)

// Metrics for graph analysis operations.
var (
	cycleDetectionLatency metric.Float64Histogram
	cyclesFound           metric.Int64Histogram
	impactLatency         metric.Float64Histogram
	impactedElements      metric.Int64Histogram

	metricsOnce sync.Once
	metricsErr  error
)

// initMetrics initializes the metrics. Safe to call multiple times.
func initMetrics() error {
	metricsOnce.Do(func() {
		var err error

		cycleDetectionLatency, err = meter.Float64Histogram(
			"blueprint_cycle_detection_duration_seconds",
			metric.WithDescription("Duration of circular dependency detection"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		cyclesFound, err = meter.Int64Histogram(
			"blueprint_cycles_found",
			metric.WithDescription("Number of cycles found per detection run"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		impactLatency, err = meter.Float64Histogram(
			"blueprint_impact_analysis_duration_seconds",
			metric.WithDescription("Duration of impact analysis operations"),
			metric.WithUnit("s"),
		)
		if err != nil {
			metricsErr = err
			return
		}

		impactedElements, err = meter.Int64Histogram(
			"blueprint_impact_affected_elements",
			metric.WithDescription("Number of elements affected per impact analysis"),
		)
		if err != nil {
			metricsErr = err
			return
		}
	})
	return metricsErr
}
