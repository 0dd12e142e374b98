package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type Appointment struct {
	ID        string          `json:"id,omitempty"`
	ClinicID  string          `json:"clinic_id"`
	UserID    string          `json:"user_id"`
	Date      string          `json:"date"`
	Time      string          `json:"time"`
	Status    string          `json:"status"`
	Value     decimal.Decimal `json:"value"`
	Notes     string          `json:"notes,omitempty"`
	CreatedAt *time.Time      `json:"created_at,omitempty"`
}

// AppointmentStats is a partition of a fetched appointment set by status.
type AppointmentStats struct {
	Total     int `json:"total"`
	Pending   int `json:"pending"`
	Confirmed int `json:"confirmed"`
	Cancelled int `json:"cancelled"`
	Completed int `json:"completed"`
}

// AppointmentFilter narrows an appointment read against the data API.
// Period and Weekday are applied after the fetch.
type AppointmentFilter struct {
	ClinicIDs []string
	UserID    string
	Date      string
	DateFrom  string
	DateTo    string
	Status    string
}
