package responses

import "clinicroom-service/internal/app/models"

type AppointmentStats struct {
	ClinicIDs    []string                `json:"clinic_ids"`
	Stats        models.AppointmentStats `json:"stats"`
	Appointments []models.Appointment    `json:"appointments"`
}

type UpdateAppointmentStatus struct {
	Appointment models.Appointment      `json:"appointment"`
	Stats       models.AppointmentStats `json:"stats"`
}
