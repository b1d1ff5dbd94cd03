// SPDX-License-Identifier: GPL-3.0
// Copyright 2024 Pete Heist

// Package metrics exports a pcc.Controller's live state as Prometheus
// metrics, standing in for the observability layer spec.md §1 treats as
// entirely the host's concern.
package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/PCCproject/pcc-go/pcc"
)

// entry is one tracked controller plus the label values its metrics are
// reported under.
type entry struct {
	c      *pcc.Controller
	labels []string
}

// Collector is a prometheus.Collector over a set of live controllers,
// modeled on the connection-tracking collector pattern in
// runZeroInc-sockstats/pkg/exporter: callers Add a controller when a
// connection starts and Remove it when the connection closes, and
// Collect reads each tracked controller's current state on every scrape
// rather than polling continuously.
type Collector struct {
	mu    sync.Mutex
	conns map[*pcc.Controller]entry

	rateDesc      *prometheus.Desc
	modeDesc      *prometheus.Desc
	decisionsDesc *prometheus.Desc
}

// labelNames are the per-connection label dimensions every metric below
// is reported under (e.g. a connection id from rs/xid).
func NewCollector(labelNames []string, constLabels prometheus.Labels) *Collector {
	return &Collector{
		conns: make(map[*pcc.Controller]entry),
		rateDesc: prometheus.NewDesc(
			"pcc_rate_bytes_per_second", "Current PCC target sending rate.",
			labelNames, constLabels,
		),
		modeDesc: prometheus.NewDesc(
			"pcc_mode", "Current PCC decision mode (0=slow-start,1=probing,2=moving,3=loss).",
			labelNames, constLabels,
		),
		decisionsDesc: prometheus.NewDesc(
			"pcc_decisions_total", "Number of rate decisions made so far.",
			labelNames, constLabels,
		),
	}
}

// Add starts tracking c, reporting its metrics under labels.
func (m *Collector) Add(c *pcc.Controller, labels []string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.conns[c] = entry{c: c, labels: labels}
}

// Remove stops tracking c.
func (m *Collector) Remove(c *pcc.Controller) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.conns, c)
}

// Describe implements prometheus.Collector.
func (m *Collector) Describe(descs chan<- *prometheus.Desc) {
	descs <- m.rateDesc
	descs <- m.modeDesc
	descs <- m.decisionsDesc
}

// Collect implements prometheus.Collector. A controller that has been
// Released is dropped rather than reported, the same way the teacher
// pattern drops a connection once its getsockopt call starts failing.
func (m *Collector) Collect(metrics chan<- prometheus.Metric) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for c, e := range m.conns {
		if !c.Valid() {
			delete(m.conns, c)
			continue
		}
		metrics <- prometheus.MustNewConstMetric(m.rateDesc, prometheus.GaugeValue, float64(c.Rate()), e.labels...)
		metrics <- prometheus.MustNewConstMetric(m.modeDesc, prometheus.GaugeValue, float64(c.Mode()), e.labels...)
		metrics <- prometheus.MustNewConstMetric(m.decisionsDesc, prometheus.CounterValue, float64(c.DecisionsCount()), e.labels...)
	}
}

var _ prometheus.Collector = (*Collector)(nil)
