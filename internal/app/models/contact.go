package models

import "time"

type ContactMessage struct {
	Name    string    `json:"name"`
	Email   string    `json:"email"`
	Phone   string    `json:"phone,omitempty"`
	Subject string    `json:"subject"`
	Message string    `json:"message"`
	Kind    string    `json:"kind"`
	UserID  string    `json:"user_id,omitempty"`
	SentAt  time.Time `json:"sent_at"`
}
