package appointments

import (
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"errors"
)

// transitions lists the statuses reachable from each status. Cancelled and
// completed appointments are terminal.
var transitions = map[string][]string{
	constvars.AppointmentStatusPending:   {constvars.AppointmentStatusConfirmed, constvars.AppointmentStatusCancelled},
	constvars.AppointmentStatusConfirmed: {constvars.AppointmentStatusCompleted},
	constvars.AppointmentStatusCancelled: nil,
	constvars.AppointmentStatusCompleted: nil,
}

func IsKnownStatus(status string) bool {
	_, ok := transitions[status]
	return ok
}

// CanTransition reports whether an appointment may move from one status to
// another. Staying in the same status is not a transition.
func CanTransition(from, to string) bool {
	for _, next := range transitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// ValidateTransition wraps CanTransition with the errors surfaced to clients.
func ValidateTransition(from, to string) error {
	if !IsKnownStatus(from) {
		return exceptions.ErrUnknownStatus(errors.New("stored appointment status is not recognised"), from)
	}
	if !IsKnownStatus(to) {
		return exceptions.ErrUnknownStatus(errors.New("requested appointment status is not recognised"), to)
	}
	if !CanTransition(from, to) {
		return exceptions.ErrIllegalStatusTransition(errors.New("illegal status transition"), from, to)
	}
	return nil
}
