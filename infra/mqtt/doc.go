// Package mqtt publishes matching results to an MQTT broker with Eclipse Paho.
// MockPublisher is provided for tests and dry runs.
package mqtt
