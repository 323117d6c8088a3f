// Package testfixtures provides mock implementations and test utilities for TUI testing.
//
// This file contains mock implementations for common dependencies used in TUI tests:
//   - MockDraftStore: in-memory draft persistence with call counters
//   - MockSender: records messages sent back into the Bubble Tea program
//
// All mocks are thread-safe and provide verification methods for assertions in tests.
package testfixtures

import (
	"context"
	"sync"

	tea "charm.land/bubbletea/v2"

	"github.com/khidmahq/khidma/internal/listing"
)

// MockDraftStore is an in-memory draft store for testing.
// It satisfies the wizard controller's DraftStore interface without NATS.
type MockDraftStore struct {
	mu sync.Mutex

	// Draft holds the stored projection, nil when absent
	Draft *listing.Projection
	// SaveOK controls whether Save reports success
	SaveOK bool

	// Counters for verification
	SaveCalls  int
	LoadCalls  int
	ClearCalls int
}

// NewMockDraftStore creates an empty store whose saves succeed.
func NewMockDraftStore() *MockDraftStore {
	return &MockDraftStore{SaveOK: true}
}

// Save stores the projection when SaveOK is set.
func (m *MockDraftStore) Save(_ context.Context, p listing.Projection) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.SaveCalls++
	if !m.SaveOK {
		return false
	}
	m.Draft = &p
	return true
}

// Load returns the stored projection, if any.
func (m *MockDraftStore) Load(_ context.Context) (listing.Projection, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LoadCalls++
	if m.Draft == nil {
		return listing.Projection{}, false
	}
	return *m.Draft, true
}

// Clear removes the stored projection.
func (m *MockDraftStore) Clear(_ context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ClearCalls++
	m.Draft = nil
}

// Reset clears the draft and all counters.
func (m *MockDraftStore) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Draft = nil
	m.SaveOK = true
	m.SaveCalls = 0
	m.LoadCalls = 0
	m.ClearCalls = 0
}

// MockSender records messages sent to the Bubble Tea program.
// It satisfies the wizard's ProgramSender interface.
type MockSender struct {
	mu   sync.Mutex
	msgs []tea.Msg
}

// NewMockSender creates a new MockSender.
func NewMockSender() *MockSender {
	return &MockSender{}
}

// Send records the message.
func (m *MockSender) Send(msg tea.Msg) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = append(m.msgs, msg)
}

// Messages returns a copy of the recorded messages (thread-safe).
func (m *MockSender) Messages() []tea.Msg {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]tea.Msg, len(m.msgs))
	copy(out, m.msgs)
	return out
}

// Reset clears recorded messages.
func (m *MockSender) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.msgs = nil
}
