package models

import "time"

// User is an account. PasswordHash is a bcrypt hash.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash []byte    `json:"-"`
	Theme        string    `json:"theme"`
	CreatedAt    time.Time `json:"createdAt"`
}
