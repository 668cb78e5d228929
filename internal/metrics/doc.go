// Package metrics exports compile statistics for Prometheus.
//
// The tool runs once per boot or config change, so there is no scrape
// endpoint. Instead the gauges are written to a .prom file picked up by
// the node-exporter textfile collector.
package metrics
