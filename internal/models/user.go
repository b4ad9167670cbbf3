package models

import "time"

// User is a registered account. Followers and Following hold user ids,
// hydrated from the follows table on read.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // never serialized
	ProfilePic   string    `json:"profilePic,omitempty"`
	Bio          string    `json:"bio,omitempty"`
	Followers    []string  `json:"followers"`
	Following    []string  `json:"following"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"-"`
}
