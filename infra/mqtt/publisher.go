package mqtt

import (
	"context"
	"fmt"
	"sync"

	coremqtt "github.com/kilianp07/transitplan/core/mqtt"
)

// Publisher mirrors the core mqtt.Publisher interface.
type Publisher = coremqtt.Publisher

// MockPublisher records published schedules in memory.
type MockPublisher struct {
	Messages []coremqtt.ScheduleMessage
	FailRuns map[string]bool
	Closed   bool
	mu       sync.Mutex
}

// NewMockPublisher creates a new MockPublisher.
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{FailRuns: make(map[string]bool)}
}

// PublishSchedule records msg or fails for runs listed in FailRuns.
func (m *MockPublisher) PublishSchedule(_ context.Context, msg coremqtt.ScheduleMessage) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.FailRuns[msg.RunID] {
		return fmt.Errorf("publish failed")
	}
	m.Messages = append(m.Messages, msg)
	return nil
}

// Published returns a copy of the recorded messages.
func (m *MockPublisher) Published() []coremqtt.ScheduleMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]coremqtt.ScheduleMessage(nil), m.Messages...)
}

// Close marks the publisher closed.
func (m *MockPublisher) Close() {
	m.mu.Lock()
	m.Closed = true
	m.mu.Unlock()
}
