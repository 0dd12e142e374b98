package responses

import "clinicroom-service/internal/app/models"

type Draft struct {
	ClinicID          string            `json:"clinic_id"`
	Date              string            `json:"date,omitempty"`
	Weekday           string            `json:"weekday,omitempty"`
	SelectedTimes     []string          `json:"selected_times"`
	Notes             string            `json:"notes,omitempty"`
	TermsAccepted     bool              `json:"terms_accepted"`
	Slots             []models.TimeSlot `json:"slots"`
	AvailabilityToken string            `json:"availability_token,omitempty"`
	Loading           bool              `json:"loading"`
	PricePerSession   string            `json:"price_per_session"`
	Total             string            `json:"total"`
	CanSubmit         bool              `json:"can_submit"`
	Error             string            `json:"error,omitempty"`
}

type SubmitBooking struct {
	Appointments []models.Appointment `json:"appointments"`
	Total        string               `json:"total"`
}
