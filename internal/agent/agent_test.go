package agent

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/ziadkadry99/grocer/internal/llm"
)

// scriptedProvider replays canned responses and records every request.
type scriptedProvider struct {
	responses []llm.ChatResponse
	requests  []llm.ChatRequest
	err       error
}

func (p *scriptedProvider) Name() string { return "scripted" }

func (p *scriptedProvider) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	p.requests = append(p.requests, req)
	if p.err != nil {
		return nil, p.err
	}
	if len(p.responses) == 0 {
		return nil, errors.New("scripted provider exhausted")
	}
	resp := p.responses[0]
	p.responses = p.responses[1:]
	return &resp, nil
}

// recordingTools records calls and returns a fixed payload per tool name.
type recordingTools struct {
	calls   []string
	results map[string]string
}

func (r *recordingTools) Defs() []llm.ToolDef {
	return []llm.ToolDef{{Name: "get_products_by_category"}, {Name: "search_products"}}
}

func (r *recordingTools) Call(_ context.Context, name string, args json.RawMessage) (string, error) {
	r.calls = append(r.calls, fmt.Sprintf("%s(%s)", name, string(args)))
	result, ok := r.results[name]
	if !ok {
		return "", fmt.Errorf("unknown tool %q", name)
	}
	return result, nil
}

func textResponse(text string) llm.ChatResponse {
	return llm.ChatResponse{Message: llm.Message{Role: llm.RoleAssistant, Content: text}}
}

func toolResponse(calls ...llm.ToolCall) llm.ChatResponse {
	return llm.ChatResponse{Message: llm.Message{Role: llm.RoleAssistant, ToolCalls: calls}}
}

func TestRun_NoToolCallsReturnsTextUnchanged(t *testing.T) {
	provider := &scriptedProvider{responses: []llm.ChatResponse{textResponse("We stock plenty of snacks.")}}
	tools := &recordingTools{}
	loop := New(provider, tools, NewMemoryCheckpointer(), Options{})

	answer, err := loop.Run(context.Background(), "t1", "What snacks do you have?")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if answer != "We stock plenty of snacks." {
		t.Errorf("answer = %q", answer)
	}
	if len(tools.calls) != 0 {
		t.Errorf("tools were invoked: %v", tools.calls)
	}
	if len(provider.requests) != 1 {
		t.Errorf("model invoked %d times, want 1", len(provider.requests))
	}
}

func TestRun_FreshThreadSeededWithSystemPrompt(t *testing.T) {
	provider := &scriptedProvider{responses: []llm.ChatResponse{textResponse("Hello!")}}
	loop := New(provider, &recordingTools{}, NewMemoryCheckpointer(), Options{})

	if _, err := loop.Run(context.Background(), "t1", "hi"); err != nil {
		t.Fatalf("Run: %v", err)
	}

	msgs := provider.requests[0].Messages
	if len(msgs) != 2 {
		t.Fatalf("got %d messages, want system + user", len(msgs))
	}
	if msgs[0].Role != llm.RoleSystem || !strings.Contains(msgs[0].Content, "grocery store assistant") {
		t.Errorf("first message = %+v", msgs[0])
	}
	if msgs[1].Role != llm.RoleUser || msgs[1].Content != "hi" {
		t.Errorf("second message = %+v", msgs[1])
	}
}

func TestRun_ToolRoundTrip(t *testing.T) {
	provider := &scriptedProvider{responses: []llm.ChatResponse{
		toolResponse(llm.ToolCall{
			ID:        "call_1",
			Name:      "get_products_by_category",
			Arguments: json.RawMessage(`{"category_name":"Snacks"}`),
		}),
		textResponse("Here are our snacks."),
	}}
	tools := &recordingTools{results: map[string]string{
		"get_products_by_category": `[{"name":"Trail Mix"}]`,
	}}
	checkpoints := NewMemoryCheckpointer()
	loop := New(provider, tools, checkpoints, Options{})

	answer, err := loop.Run(context.Background(), "t1", "What snacks do you have?")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if answer != "Here are our snacks." {
		t.Errorf("answer = %q", answer)
	}

	if len(tools.calls) != 1 || tools.calls[0] != `get_products_by_category({"category_name":"Snacks"})` {
		t.Errorf("tool calls = %v", tools.calls)
	}

	// The second model call must see the tool result appended to history.
	if len(provider.requests) != 2 {
		t.Fatalf("model invoked %d times, want 2", len(provider.requests))
	}
	second := provider.requests[1].Messages
	last := second[len(second)-1]
	if last.Role != llm.RoleTool || last.ToolCallID != "call_1" || last.Content != `[{"name":"Trail Mix"}]` {
		t.Errorf("last message before second call = %+v", last)
	}

	// And the checkpoint holds the full exchange.
	history, err := checkpoints.History(context.Background(), "t1")
	if err != nil {
		t.Fatal(err)
	}
	roles := make([]llm.Role, len(history))
	for i, m := range history {
		roles[i] = m.Role
	}
	want := []llm.Role{llm.RoleSystem, llm.RoleUser, llm.RoleAssistant, llm.RoleTool, llm.RoleAssistant}
	if len(roles) != len(want) {
		t.Fatalf("history roles = %v, want %v", roles, want)
	}
	for i := range want {
		if roles[i] != want[i] {
			t.Errorf("history[%d] role = %v, want %v", i, roles[i], want[i])
		}
	}
}

func TestRun_FailingToolBecomesErrorResult(t *testing.T) {
	provider := &scriptedProvider{responses: []llm.ChatResponse{
		toolResponse(llm.ToolCall{ID: "call_1", Name: "order_groceries"}),
		textResponse("Sorry, I can't do that."),
	}}
	loop := New(provider, &recordingTools{}, NewMemoryCheckpointer(), Options{})

	answer, err := loop.Run(context.Background(), "t1", "order everything")
	if err != nil {
		t.Fatalf("Run: %v", err)
	}
	if answer != "Sorry, I can't do that." {
		t.Errorf("answer = %q", answer)
	}

	second := provider.requests[1].Messages
	last := second[len(second)-1]
	if last.Role != llm.RoleTool || !strings.Contains(last.Content, "failed") {
		t.Errorf("expected error tool result, got %+v", last)
	}
}

func TestRun_TurnLimit(t *testing.T) {
	// The model never stops asking for tools.
	var endless []llm.ChatResponse
	for i := 0; i < 20; i++ {
		endless = append(endless, toolResponse(llm.ToolCall{
			ID:        fmt.Sprintf("call_%d", i),
			Name:      "search_products",
			Arguments: json.RawMessage(`{"query":"more"}`),
		}))
	}
	provider := &scriptedProvider{responses: endless}
	tools := &recordingTools{results: map[string]string{"search_products": "[]"}}
	loop := New(provider, tools, NewMemoryCheckpointer(), Options{MaxTurns: 3})

	_, err := loop.Run(context.Background(), "t1", "find everything")
	if !errors.Is(err, ErrTurnLimit) {
		t.Fatalf("err = %v, want ErrTurnLimit", err)
	}
	if len(provider.requests) != 3 {
		t.Errorf("model invoked %d times, want 3", len(provider.requests))
	}
}

func TestRun_ThreadIsolation(t *testing.T) {
	provider := &scriptedProvider{responses: []llm.ChatResponse{
		textResponse("answer for A"),
		textResponse("answer for B"),
	}}
	checkpoints := NewMemoryCheckpointer()
	loop := New(provider, &recordingTools{}, checkpoints, Options{})

	ctx := context.Background()
	if _, err := loop.Run(ctx, "thread-a", "question from A"); err != nil {
		t.Fatal(err)
	}
	if _, err := loop.Run(ctx, "thread-b", "question from B"); err != nil {
		t.Fatal(err)
	}

	// Thread B's model call must not contain thread A's message.
	for _, m := range provider.requests[1].Messages {
		if strings.Contains(m.Content, "question from A") {
			t.Fatalf("thread A's message leaked into thread B: %+v", m)
		}
	}

	historyB, err := checkpoints.History(ctx, "thread-b")
	if err != nil {
		t.Fatal(err)
	}
	for _, m := range historyB {
		if strings.Contains(m.Content, "question from A") {
			t.Fatalf("thread A's message stored under thread B")
		}
	}
}

func TestRun_SameThreadResumes(t *testing.T) {
	provider := &scriptedProvider{responses: []llm.ChatResponse{
		textResponse("first answer"),
		textResponse("second answer"),
	}}
	loop := New(provider, &recordingTools{}, NewMemoryCheckpointer(), Options{})

	ctx := context.Background()
	if _, err := loop.Run(ctx, "t1", "first question"); err != nil {
		t.Fatal(err)
	}
	if _, err := loop.Run(ctx, "t1", "second question"); err != nil {
		t.Fatal(err)
	}

	second := provider.requests[1].Messages
	// system, user, assistant, user
	if len(second) != 4 {
		t.Fatalf("resumed thread sent %d messages, want 4", len(second))
	}
	if second[1].Content != "first question" || second[2].Content != "first answer" {
		t.Errorf("resumed history = %+v", second)
	}
}

func TestRun_ModelErrorPropagates(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("rate limited")}
	loop := New(provider, &recordingTools{}, NewMemoryCheckpointer(), Options{})

	if _, err := loop.Run(context.Background(), "t1", "hello"); err == nil {
		t.Fatal("expected model error to propagate")
	}
}

func TestReset_DiscardsHistory(t *testing.T) {
	provider := &scriptedProvider{responses: []llm.ChatResponse{
		textResponse("hi"),
		textResponse("fresh start"),
	}}
	checkpoints := NewMemoryCheckpointer()
	loop := New(provider, &recordingTools{}, checkpoints, Options{})

	ctx := context.Background()
	if _, err := loop.Run(ctx, "t1", "remember me"); err != nil {
		t.Fatal(err)
	}
	if err := loop.Reset(ctx, "t1"); err != nil {
		t.Fatal(err)
	}

	if _, err := loop.Run(ctx, "t1", "who am I?"); err != nil {
		t.Fatal(err)
	}
	msgs := provider.requests[1].Messages
	if len(msgs) != 2 {
		t.Fatalf("post-reset thread sent %d messages, want system + user", len(msgs))
	}
}
