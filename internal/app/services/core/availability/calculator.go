package availability

import (
	"clinicroom-service/internal/app/models"
	"time"
)

// Calculator turns weekly availability and existing appointments into the
// selectable slots of one date. It is pure: the same inputs always yield
// the same slots.
type Calculator struct {
	location *time.Location
	policy   WindowPolicy
}

func NewCalculator(location *time.Location, policy WindowPolicy) *Calculator {
	if location == nil {
		location = time.Local
	}
	return &Calculator{location: location, policy: policy}
}

func (c *Calculator) Location() *time.Location {
	return c.location
}

func (c *Calculator) Policy() WindowPolicy {
	return c.policy
}

// SelectWindows returns the windows that apply to a weekday under the
// calculator policy.
func (c *Calculator) SelectWindows(weekday string, windows []models.AvailabilityWindow) []models.AvailabilityWindow {
	var out []models.AvailabilityWindow
	for _, window := range windows {
		if window.Day != weekday {
			continue
		}
		out = append(out, window)
		if c.policy == WindowPolicyFirst {
			break
		}
	}
	return out
}

// Calculate returns the slots of date. A weekday without windows yields an
// empty list; a malformed date yields ErrInvalidDate.
func (c *Calculator) Calculate(date string, windows []models.AvailabilityWindow, appointments []models.Appointment) ([]models.TimeSlot, error) {
	weekday, err := ResolveWeekday(date, c.location)
	if err != nil {
		return nil, err
	}

	selected := c.SelectWindows(weekday, windows)
	raw := make([][]string, 0, len(selected))
	for _, window := range selected {
		raw = append(raw, GenerateSlots(window.StartTime, window.EndTime))
	}

	var values []string
	switch len(raw) {
	case 0:
		return []models.TimeSlot{}, nil
	case 1:
		values = raw[0]
	default:
		values = mergeSlots(raw...)
	}

	blocked := blockedTimes(appointments, date)
	slots := make([]models.TimeSlot, 0, len(values))
	for _, value := range values {
		_, disabled := blocked[value]
		slots = append(slots, models.TimeSlot{Value: value, Disabled: disabled})
	}
	return slots, nil
}

// HasAvailableSlot reports whether at least one slot can still be booked.
func HasAvailableSlot(slots []models.TimeSlot) bool {
	for _, slot := range slots {
		if !slot.Disabled {
			return true
		}
	}
	return false
}
