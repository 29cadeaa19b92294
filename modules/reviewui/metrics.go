// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package reviewui

import "github.com/prometheus/client_golang/prometheus"

const metricsNamespace = "filepreview"

var (
	renderTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "renders_total",
		Help:      "Number of attachment renders by review UI, mode and result",
	}, []string{"review_ui", "mode", "result"})

	renderDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: metricsNamespace,
		Name:      "render_duration_seconds",
		Help:      "Time spent rendering attachments, cache hits excluded",
		Buckets:   prometheus.DefBuckets,
	}, []string{"review_ui", "mode"})

	cacheHitsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: metricsNamespace,
		Name:      "render_cache_hits_total",
		Help:      "Number of renders served from the fragment cache",
	})
)

// Collectors returns the metrics of this package for registration
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{renderTotal, renderDuration, cacheHitsTotal}
}
