package models

import "time"

// MaxDescriptionLen is the column width for todo descriptions.
const MaxDescriptionLen = 128

// Todo status values derived from the finished flag.
const (
	StatusOpen     = "open"
	StatusFinished = "finished"
)

type Todo struct {
	ID          int        `json:"id"`
	Description string     `json:"description"`
	Creator     string     `json:"creator"`
	TodoListID  int        `json:"todolist_id"`
	CreatedAt   time.Time  `json:"created_at"`
	IsFinished  bool       `json:"is_finished"`
	FinishedAt  *time.Time `json:"finished_at"`
	Status      string     `json:"status"`
}

// DeriveStatus sets Status from IsFinished. Call after scanning a row.
func (t *Todo) DeriveStatus() {
	if t.IsFinished {
		t.Status = StatusFinished
	} else {
		t.Status = StatusOpen
	}
}

// ValidDescription reports whether description is non-empty and fits the
// column width.
func ValidDescription(description string) bool {
	return description != "" && len(description) <= MaxDescriptionLen
}
