// Package metrics provides MetricsSink implementations backed by Prometheus
// and InfluxDB, the event collector that feeds them from the event bus and
// the /metrics HTTP server.
package metrics
