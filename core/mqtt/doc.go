// Package mqtt defines the broker-facing contract for announcing matching
// results. Implementations live in infra/mqtt.
package mqtt
