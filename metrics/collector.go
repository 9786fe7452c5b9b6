package metrics

import (
	"maps"
	"net/http"
	"slices"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/philipp01105/wryte/handler"
	"github.com/philipp01105/wryte/logger"
)

// Outcome label values.
const (
	OutcomeProcessed = "processed"
	OutcomeFiltered  = "filtered"
	OutcomeFailed    = "failed"
)

var entriesDesc = prometheus.NewDesc(
	"wryte_sink_entries_total",
	"Log entries offered to a sink, by outcome.",
	[]string{"logger", "sink", "outcome"},
	nil,
)

// Collector implements prometheus.Collector over the sink counters of a
// logger registry.
type Collector struct {
	registry *logger.Registry
}

// NewCollector creates a collector for reg
func NewCollector(reg *logger.Registry) *Collector {
	return &Collector{registry: reg}
}

// Describe implements prometheus.Collector
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- entriesDesc
}

// Collect implements prometheus.Collector
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	stats := c.registry.Stats()
	for _, name := range slices.Sorted(maps.Keys(stats)) {
		sinks := stats[name]
		for _, sink := range slices.Sorted(maps.Keys(sinks)) {
			collectSnapshot(ch, name, sink, sinks[sink])
		}
	}
}

func collectSnapshot(ch chan<- prometheus.Metric, name, sink string, s handler.Snapshot) {
	for _, v := range []struct {
		outcome string
		value   uint64
	}{
		{OutcomeProcessed, s.Processed},
		{OutcomeFiltered, s.Filtered},
		{OutcomeFailed, s.Failed},
	} {
		ch <- prometheus.MustNewConstMetric(entriesDesc, prometheus.CounterValue,
			float64(v.value), name, sink, v.outcome)
	}
}

// Handler returns an HTTP handler serving the collector of reg from a
// dedicated Prometheus registry.
func Handler(reg *logger.Registry) http.Handler {
	promReg := prometheus.NewRegistry()
	promReg.MustRegister(NewCollector(reg))
	return promhttp.HandlerFor(promReg, promhttp.HandlerOpts{})
}
