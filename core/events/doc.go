// Package events defines the matching related events emitted on the event bus.
//
// Available event types:
//   - AttemptEvent: one role partition was evaluated
//   - RunEvent: a matching run finished
package events
