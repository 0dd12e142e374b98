package availability

import (
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
)

// IsBlockingStatus reports whether an appointment in this status occupies
// its slot. Pending requests and cancellations never do.
func IsBlockingStatus(status string) bool {
	return status == constvars.AppointmentStatusConfirmed || status == constvars.AppointmentStatusCompleted
}

// IsSlotBlocked reports whether a confirmed or completed appointment sits on
// the given date and time.
func IsSlotBlocked(appointments []models.Appointment, date, clockValue string) bool {
	want := NormalizeTime(clockValue)
	for _, appointment := range appointments {
		if appointment.Date != date || !IsBlockingStatus(appointment.Status) {
			continue
		}
		if NormalizeTime(appointment.Time) == want {
			return true
		}
	}
	return false
}

// blockedTimes indexes the occupied times of a date.
func blockedTimes(appointments []models.Appointment, date string) map[string]struct{} {
	out := make(map[string]struct{})
	for _, appointment := range appointments {
		if appointment.Date == date && IsBlockingStatus(appointment.Status) {
			out[NormalizeTime(appointment.Time)] = struct{}{}
		}
	}
	return out
}
