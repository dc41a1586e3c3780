// Package infra contains technical adapters such as the zerolog logger,
// the MQTT result publisher and metrics exporters. These packages should
// depend only on the interfaces defined in the core packages.
package infra
