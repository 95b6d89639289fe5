package db

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/ziadkadry99/grocer/internal/llm"
)

// ThreadStore reads and writes conversation threads. It satisfies the
// agent's Checkpointer interface.
type ThreadStore struct {
	db *DB
}

// NewThreadStore creates a store over the given database.
func NewThreadStore(d *DB) *ThreadStore {
	return &ThreadStore{db: d}
}

// History returns a thread's messages oldest first. An unknown thread id
// yields an empty history.
func (s *ThreadStore) History(ctx context.Context, threadID string) ([]llm.Message, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT role, content, tool_calls, tool_call_id, tool_name
		FROM messages WHERE thread_id = ? ORDER BY id`, threadID)
	if err != nil {
		return nil, fmt.Errorf("querying thread %s: %w", threadID, err)
	}
	defer rows.Close()

	var history []llm.Message
	for rows.Next() {
		var (
			msg      llm.Message
			role     string
			rawCalls sql.NullString
		)
		if err := rows.Scan(&role, &msg.Content, &rawCalls, &msg.ToolCallID, &msg.ToolName); err != nil {
			return nil, fmt.Errorf("scanning message: %w", err)
		}
		msg.Role = llm.Role(role)
		if rawCalls.Valid && rawCalls.String != "" {
			if err := json.Unmarshal([]byte(rawCalls.String), &msg.ToolCalls); err != nil {
				return nil, fmt.Errorf("decoding tool calls: %w", err)
			}
		}
		history = append(history, msg)
	}
	return history, rows.Err()
}

// Append adds messages to the end of a thread, creating the thread row on
// first write.
func (s *ThreadStore) Append(ctx context.Context, threadID string, msgs ...llm.Message) error {
	if len(msgs) == 0 {
		return nil
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO threads (id) VALUES (?) ON CONFLICT(id) DO NOTHING`, threadID); err != nil {
		return fmt.Errorf("ensuring thread %s: %w", threadID, err)
	}

	for _, msg := range msgs {
		var rawCalls any
		if len(msg.ToolCalls) > 0 {
			data, err := json.Marshal(msg.ToolCalls)
			if err != nil {
				return fmt.Errorf("encoding tool calls: %w", err)
			}
			rawCalls = string(data)
		}

		if _, err := tx.ExecContext(ctx, `
			INSERT INTO messages (thread_id, role, content, tool_calls, tool_call_id, tool_name)
			VALUES (?, ?, ?, ?, ?, ?)`,
			threadID, string(msg.Role), msg.Content, rawCalls, msg.ToolCallID, msg.ToolName); err != nil {
			return fmt.Errorf("inserting message: %w", err)
		}
	}

	return tx.Commit()
}

// Reset discards a thread and its messages.
func (s *ThreadStore) Reset(ctx context.Context, threadID string) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM messages WHERE thread_id = ?`, threadID); err != nil {
		return fmt.Errorf("deleting messages for thread %s: %w", threadID, err)
	}
	if _, err := s.db.ExecContext(ctx, `DELETE FROM threads WHERE id = ?`, threadID); err != nil {
		return fmt.Errorf("deleting thread %s: %w", threadID, err)
	}
	return nil
}

// ThreadIDs lists known thread ids, newest first.
func (s *ThreadStore) ThreadIDs(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id FROM threads ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing threads: %w", err)
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
