package model

import "time"

// User is a publisher allowed to send newsletter issues.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// Credentials are the username and password presented by a caller.
type Credentials struct {
	Username string
	Password string
}

// Publisher is the identity attached to an authenticated request.
type Publisher struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
}
