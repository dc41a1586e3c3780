package mqtt

import (
	"context"
	"fmt"
	"sync"

	coremqtt "github.com/inakineitor/algo-comp-2023/core/mqtt"
)

// ResultPublisher mirrors the core mqtt.ResultPublisher interface.
type ResultPublisher = coremqtt.ResultPublisher

// MockPublisher records published results in memory.
type MockPublisher struct {
	Messages []coremqtt.ResultMessage
	// Fail makes every publish return an error.
	Fail bool
	mu   sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishResult records the message or returns an error if configured to fail.
func (m *MockPublisher) PublishResult(_ context.Context, msg coremqtt.ResultMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Fail {
		return fmt.Errorf("%w: mock", coremqtt.ErrPublishFailed)
	}
	m.Messages = append(m.Messages, msg)
	return nil
}

// Published returns a copy of the recorded messages.
func (m *MockPublisher) Published() []coremqtt.ResultMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]coremqtt.ResultMessage(nil), m.Messages...)
}
