package models

import "time"

// MaxTitleLen is the column width for todolist titles.
const MaxTitleLen = 128

type TodoList struct {
	ID        int       `json:"id"`
	Title     string    `json:"title"`
	Creator   string    `json:"creator"`
	CreatedAt time.Time `json:"created_at"`

	// Counts are filled by the repository on reads.
	TodoCount     int `json:"total_todo_count"`
	OpenCount     int `json:"open_todo_count"`
	FinishedCount int `json:"finished_todo_count"`
}

// ValidTitle reports whether title is non-empty and fits the column width.
func ValidTitle(title string) bool {
	return title != "" && len(title) <= MaxTitleLen
}
