package models

// AvailabilityWindow is one recurring open interval of a clinic on a weekday.
type AvailabilityWindow struct {
	ID        string `json:"id"`
	ClinicID  string `json:"clinic_id"`
	Day       string `json:"day"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type TimeSlot struct {
	Value    string `json:"value"`
	Disabled bool   `json:"disabled"`
}
