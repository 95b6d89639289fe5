// Package assistant wires the catalog, vector index, retrieval tools, and
// agent loop into the single query surface the UIs call.
package assistant

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ziadkadry99/grocer/internal/agent"
	"github.com/ziadkadry99/grocer/internal/catalog"
	"github.com/ziadkadry99/grocer/internal/llm"
	"github.com/ziadkadry99/grocer/internal/tools"
	"github.com/ziadkadry99/grocer/internal/vectordb"
)

// Assistant answers grocery questions over one catalog and index.
type Assistant struct {
	catalog *catalog.Catalog
	index   vectordb.Index
	loop    *agent.Loop
}

// New builds an assistant from its collaborators. The checkpointer decides
// whether conversations survive a restart.
func New(cat *catalog.Catalog, idx vectordb.Index, provider llm.Provider, checkpoints agent.Checkpointer, opts agent.Options) *Assistant {
	registry := tools.NewRegistry(cat, idx)
	return &Assistant{
		catalog: cat,
		index:   idx,
		loop:    agent.New(provider, registry, checkpoints, opts),
	}
}

// Query answers one user question on the given thread. An empty threadID
// starts a fresh single-use thread.
func (a *Assistant) Query(ctx context.Context, question, threadID string) (string, error) {
	if strings.TrimSpace(question) == "" {
		return "", fmt.Errorf("question is empty")
	}
	if threadID == "" {
		threadID = NewThreadID()
	}
	return a.loop.Run(ctx, threadID, question)
}

// Reset clears one thread's conversational memory. The vector index and
// catalog are untouched.
func (a *Assistant) Reset(ctx context.Context, threadID string) error {
	return a.loop.Reset(ctx, threadID)
}

// Catalog exposes the loaded catalog for read-only use (stats, health).
func (a *Assistant) Catalog() *catalog.Catalog { return a.catalog }

// IndexCount returns the number of indexed products.
func (a *Assistant) IndexCount() int { return a.index.Count() }

// NewThreadID generates an opaque conversation thread identifier.
func NewThreadID() string { return uuid.NewString() }
