package agent

import (
	"context"
	"sync"

	"github.com/ziadkadry99/grocer/internal/llm"
)

// MemoryCheckpointer keeps thread histories in process memory. It backs
// tests and surfaces that do not need conversations to survive a restart.
type MemoryCheckpointer struct {
	mu      sync.RWMutex
	threads map[string][]llm.Message
}

// NewMemoryCheckpointer creates an empty in-memory checkpoint store.
func NewMemoryCheckpointer() *MemoryCheckpointer {
	return &MemoryCheckpointer{threads: make(map[string][]llm.Message)}
}

func (m *MemoryCheckpointer) History(_ context.Context, threadID string) ([]llm.Message, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stored := m.threads[threadID]
	out := make([]llm.Message, len(stored))
	copy(out, stored)
	return out, nil
}

func (m *MemoryCheckpointer) Append(_ context.Context, threadID string, msgs ...llm.Message) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.threads[threadID] = append(m.threads[threadID], msgs...)
	return nil
}

func (m *MemoryCheckpointer) Reset(_ context.Context, threadID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.threads, threadID)
	return nil
}
