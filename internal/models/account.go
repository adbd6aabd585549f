package models

import "time"

// Account is a connected social account posts can be scheduled against.
// The ID is immutable after creation; Active is the only mutable field.
type Account struct {
	ID        string    `json:"id"`
	Platform  Platform  `json:"platform"`
	Name      string    `json:"name"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"created_at"`
}
