package metrics

// Package metrics defines interfaces and implementations for collecting
// matching metrics. Sinks like PromSink and InfluxSink record finished runs
// and evaluated partitions and can be combined with NewMultiSink. The factory
// helpers return a MultiSink automatically when multiple sinks are configured.
