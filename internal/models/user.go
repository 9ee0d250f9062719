package models

import (
	"regexp"
	"time"
)

// Column widths for identity fields.
const (
	MaxUsernameLen = 64
	MaxEmailLen    = 64
)

var (
	usernameRegex = regexp.MustCompile(`^\S+$`)
	emailRegex    = regexp.MustCompile(`^\S+@\S+\.\S+$`)
)

type User struct {
	ID           int       `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	IsAdmin      bool      `json:"is_admin"`
	MemberSince  time.Time `json:"member_since"`
	LastSeen     time.Time `json:"last_seen"`

	// TodoListCount is filled by the repository on profile reads.
	TodoListCount int `json:"todolist_count"`
}

// ValidUsername reports whether username is non-empty, free of
// whitespace, and fits the column width.
func ValidUsername(username string) bool {
	return username != "" && len(username) <= MaxUsernameLen && usernameRegex.MatchString(username)
}

// ValidEmail reports whether email matches the basic address shape and
// fits the column width.
func ValidEmail(email string) bool {
	return email != "" && len(email) <= MaxEmailLen && emailRegex.MatchString(email)
}
