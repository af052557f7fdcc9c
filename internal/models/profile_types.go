package models

import "time"

// Profile defines the model for the 'profiles' table.
// It is the caller's coin balance, keyed by the identity provider's user id.
type Profile struct {
	ID        string    `json:"id" db:"id"`
	Email     string    `json:"email" db:"email"`
	Coins     int       `json:"coins" db:"coins"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
