package models

import (
	"encoding/json"
	"time"
)

// Generation defines the model for the 'history' table.
// Rows are append-only: written once after a successful generation.
type Generation struct {
	ID       string `json:"id" db:"id"`
	UserID   string `json:"user_id" db:"user_id"`
	TaskType string `json:"task_type" db:"task_type"`
	Prompt   string `json:"prompt" db:"prompt"`
	// Result is the stored envelope: structured results as-is,
	// free text as {"text": "..."}.
	Result    json.RawMessage `json:"result" db:"result"`
	CreatedAt time.Time       `json:"created_at" db:"created_at"`
}
