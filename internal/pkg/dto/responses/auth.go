package responses

import "time"

type Signup struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type Login struct {
	Token     string    `json:"token"`
	UserID    string    `json:"user_id"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}
