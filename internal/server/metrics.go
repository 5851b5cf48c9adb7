// Copyright (C) 2026 truevis (aifab.xyz)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package server

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/truevis/aifab-titanic/internal/dataset"
)

// Metrics holds the Prometheus collectors for the explorer. Each Server
// owns its own registry so tests can build servers independently.
type Metrics struct {
	registry *prometheus.Registry

	// Requests counts HTTP requests by route template and status code.
	Requests *prometheus.CounterVec

	// FilterDuration observes predicate-filter execution time, labeled
	// by evaluation mode so eager and lazy latency can be compared.
	FilterDuration *prometheus.HistogramVec
}

// NewMetrics builds a fresh registry with the explorer's collectors.
// Dataset loads are exposed straight from the store's counter.
func NewMetrics(store *dataset.Store) *Metrics {
	registry := prometheus.NewRegistry()

	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "titanic_http_requests_total",
		Help: "HTTP requests served, by route and status code.",
	}, []string{"route", "status"})

	filterDuration := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "titanic_filter_duration_seconds",
		Help:    "Predicate filter execution time by evaluation mode.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 4, 12),
	}, []string{"mode"})

	loads := prometheus.NewCounterFunc(prometheus.CounterOpts{
		Name: "titanic_dataset_loads_total",
		Help: "Times the dataset file has been read from disk.",
	}, func() float64 {
		return float64(store.Loads())
	})

	registry.MustRegister(requests, filterDuration, loads)

	return &Metrics{
		registry:       registry,
		Requests:       requests,
		FilterDuration: filterDuration,
	}
}

// Handler serves the registry in Prometheus exposition format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
