// Package agent implements the model-decides/tool-executes control loop.
//
// The loop has two states. The agent state sends the accumulated
// conversation to the model with the tool schemas bound. If the reply
// carries tool calls, the tools state executes every call, appends one tool
// result per call, and hands control back to the agent state; otherwise the
// reply text is the final answer. A hard turn cap prevents a pathological
// model from cycling forever.
package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"

	"github.com/ziadkadry99/grocer/internal/llm"
)

// DefaultSystemPrompt seeds every new conversation thread.
const DefaultSystemPrompt = `You are a helpful grocery store assistant.
You help customers find products, suggest items for recipes, and provide information about grocery items.
Use the available tools to search for products and provide detailed, helpful recommendations.
Always be friendly and informative.`

// DefaultMaxTurns caps agent-state invocations per query.
const DefaultMaxTurns = 8

// ErrTurnLimit is returned when the model keeps requesting tools past the
// configured turn cap.
var ErrTurnLimit = errors.New("agent turn limit reached")

// ToolExecutor is the tool surface the loop drives. *tools.Registry
// satisfies it.
type ToolExecutor interface {
	Defs() []llm.ToolDef
	Call(ctx context.Context, name string, args json.RawMessage) (string, error)
}

// Checkpointer persists per-thread conversation history.
type Checkpointer interface {
	// History returns the stored messages for a thread, oldest first. An
	// unknown thread returns an empty history, not an error.
	History(ctx context.Context, threadID string) ([]llm.Message, error)

	// Append adds messages to the end of a thread's history, creating the
	// thread if needed.
	Append(ctx context.Context, threadID string, msgs ...llm.Message) error

	// Reset discards a thread's history.
	Reset(ctx context.Context, threadID string) error
}

// Options tune a Loop. Zero values fall back to defaults.
type Options struct {
	Model        string
	Temperature  float64
	MaxTurns     int
	SystemPrompt string
	Verbose      bool
}

// Loop runs the agent state machine for one conversation thread at a time.
type Loop struct {
	provider    llm.Provider
	tools       ToolExecutor
	checkpoints Checkpointer
	opts        Options
}

// New creates a Loop over the given model provider, tool executor, and
// checkpoint store.
func New(provider llm.Provider, tools ToolExecutor, checkpoints Checkpointer, opts Options) *Loop {
	if opts.MaxTurns <= 0 {
		opts.MaxTurns = DefaultMaxTurns
	}
	if opts.SystemPrompt == "" {
		opts.SystemPrompt = DefaultSystemPrompt
	}
	return &Loop{
		provider:    provider,
		tools:       tools,
		checkpoints: checkpoints,
		opts:        opts,
	}
}

// Run executes one full user turn on the given thread and returns the
// model's final answer. The same thread id resumes its stored history; a
// thread seen for the first time starts from the system prompt.
func (l *Loop) Run(ctx context.Context, threadID, question string) (string, error) {
	history, err := l.checkpoints.History(ctx, threadID)
	if err != nil {
		return "", fmt.Errorf("loading thread %s: %w", threadID, err)
	}

	if len(history) == 0 {
		seed := llm.Message{Role: llm.RoleSystem, Content: l.opts.SystemPrompt}
		history = append(history, seed)
		if err := l.checkpoints.Append(ctx, threadID, seed); err != nil {
			return "", fmt.Errorf("seeding thread %s: %w", threadID, err)
		}
	}

	userMsg := llm.Message{Role: llm.RoleUser, Content: question}
	history = append(history, userMsg)
	if err := l.checkpoints.Append(ctx, threadID, userMsg); err != nil {
		return "", fmt.Errorf("appending to thread %s: %w", threadID, err)
	}

	defs := l.tools.Defs()

	for turn := 0; turn < l.opts.MaxTurns; turn++ {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		resp, err := l.provider.Chat(ctx, llm.ChatRequest{
			Model:       l.opts.Model,
			Messages:    history,
			Tools:       defs,
			Temperature: l.opts.Temperature,
		})
		if err != nil {
			return "", fmt.Errorf("model call failed: %w", err)
		}

		history = append(history, resp.Message)
		if err := l.checkpoints.Append(ctx, threadID, resp.Message); err != nil {
			return "", fmt.Errorf("appending to thread %s: %w", threadID, err)
		}

		if !resp.HasToolCalls() {
			return resp.Message.Content, nil
		}

		results := l.executeToolCalls(ctx, resp.Message.ToolCalls)
		history = append(history, results...)
		if err := l.checkpoints.Append(ctx, threadID, results...); err != nil {
			return "", fmt.Errorf("appending to thread %s: %w", threadID, err)
		}
	}

	return "", fmt.Errorf("%w after %d turns", ErrTurnLimit, l.opts.MaxTurns)
}

// executeToolCalls runs every requested call and produces one tool-result
// message per call, in request order. A failing or unknown tool becomes an
// error-text result rather than aborting the turn, so the model can recover.
func (l *Loop) executeToolCalls(ctx context.Context, calls []llm.ToolCall) []llm.Message {
	results := make([]llm.Message, 0, len(calls))
	for _, call := range calls {
		if l.opts.Verbose {
			log.Printf("agent: calling tool %s(%s)", call.Name, string(call.Arguments))
		}

		content, err := l.tools.Call(ctx, call.Name, call.Arguments)
		if err != nil {
			content = fmt.Sprintf("tool %s failed: %v", call.Name, err)
		}

		results = append(results, llm.Message{
			Role:       llm.RoleTool,
			Content:    content,
			ToolCallID: call.ID,
			ToolName:   call.Name,
		})
	}
	return results
}

// Reset discards the history of a thread.
func (l *Loop) Reset(ctx context.Context, threadID string) error {
	return l.checkpoints.Reset(ctx, threadID)
}
