package responses

import "clinicroom-service/internal/app/models"

type ClinicAvailability struct {
	ClinicID string            `json:"clinic_id"`
	Date     string            `json:"date"`
	Weekday  string            `json:"weekday"`
	Slots    []models.TimeSlot `json:"slots"`
	Notice   string            `json:"notice,omitempty"`
}
