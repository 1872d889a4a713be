// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vendara Contributors

package access

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics for authorization checks.
var (
	// checkDuration tracks the latency of engine checks.
	checkDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "vendara_access_check_duration_seconds",
		Help:    "Histogram of authorization check latency in seconds",
		Buckets: prometheus.DefBuckets,
	}, []string{"check"})

	// checksTotal counts checks by kind and outcome.
	checksTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "vendara_access_checks_total",
		Help: "Total number of authorization checks",
	}, []string{"check", "outcome"})
)

// recordCheck records metrics for a completed check.
func recordCheck(check string, duration time.Duration, granted bool) {
	checkDuration.WithLabelValues(check).Observe(duration.Seconds())
	outcome := "denied"
	if granted {
		outcome = "granted"
	}
	checksTotal.WithLabelValues(check, outcome).Inc()
}
