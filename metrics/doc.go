// Package metrics exports the per-sink counters of a logger registry to
// Prometheus.
//
//	reg := logger.NewRegistry(nil)
//	log, _ := logger.New(logger.Options{Registry: reg})
//	http.Handle("/metrics", metrics.Handler(reg))
//
// Counters are read from the registry at scrape time, so sinks added or
// removed after registration are picked up automatically.
package metrics
