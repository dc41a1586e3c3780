package eventbus

import "context"

// Event represents an arbitrary event passed on the bus.
type Event interface{}

// EventBus implements a simple publish/subscribe event bus.
type EventBus interface {
	Publish(Event)
	// PublishWait blocks until every subscriber received the event.
	PublishWait(context.Context, Event) error
	Subscribe() <-chan Event
	Unsubscribe(<-chan Event)
	Close()
}

// Bus is the default EventBus implementation.
type Bus = TypedBus[Event]

// New creates a Bus with the default subscriber buffer.
func New() *Bus { return NewTyped[Event]() }

// NewWithBuffer creates a Bus whose subscriber channels hold size events.
// Partition searches publish one event per attempt, so observers that log
// every attempt should use a larger buffer.
func NewWithBuffer(size int) *Bus { return NewTypedWithBuffer[Event](size) }

var _ EventBus = (*Bus)(nil)
