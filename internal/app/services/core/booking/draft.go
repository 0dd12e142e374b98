package booking

import (
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/app/services/core/availability"
	"clinicroom-service/internal/pkg/exceptions"
	"errors"
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Draft is the booking form of one session for one clinic.
type Draft struct {
	ClinicID          string            `json:"clinic_id"`
	Date              string            `json:"date,omitempty"`
	SelectedTimes     []string          `json:"selected_times"`
	Notes             string            `json:"notes,omitempty"`
	TermsAccepted     bool              `json:"terms_accepted"`
	Slots             []models.TimeSlot `json:"slots"`
	AvailabilityToken string            `json:"availability_token,omitempty"`
	Loading           bool              `json:"loading"`
	PricePerSession   decimal.Decimal   `json:"price_per_session"`
	Error             string            `json:"error,omitempty"`
}

func NewDraft(clinicID string, pricePerSession decimal.Decimal) *Draft {
	return &Draft{
		ClinicID:        clinicID,
		SelectedTimes:   []string{},
		Slots:           []models.TimeSlot{},
		PricePerSession: pricePerSession,
	}
}

// SetDate moves the draft to another date. Selected times and slots are
// cleared and a new availability token is issued; only a load carrying that
// token may fill the slots.
func (d *Draft) SetDate(date string) string {
	d.Date = date
	d.SelectedTimes = []string{}
	d.Slots = []models.TimeSlot{}
	d.AvailabilityToken = uuid.NewString()
	d.Loading = true
	d.Error = ""
	return d.AvailabilityToken
}

// ApplyAvailability stores the result of a load. It reports false and
// leaves the draft untouched when token is no longer current.
func (d *Draft) ApplyAvailability(token string, slots []models.TimeSlot, message string) bool {
	if token == "" || token != d.AvailabilityToken {
		return false
	}
	d.Loading = false
	d.Error = message
	if message != "" || slots == nil {
		d.Slots = []models.TimeSlot{}
		return true
	}
	d.Slots = slots
	return true
}

func (d *Draft) slot(value string) (models.TimeSlot, bool) {
	for _, slot := range d.Slots {
		if slot.Value == value {
			return slot, true
		}
	}
	return models.TimeSlot{}, false
}

func (d *Draft) IsSelected(value string) bool {
	value = availability.NormalizeTime(value)
	for _, selected := range d.SelectedTimes {
		if selected == value {
			return true
		}
	}
	return false
}

// ToggleTime selects or deselects a time. Only enabled slots of the current
// date can be selected; a selected time can always be removed.
func (d *Draft) ToggleTime(value string) error {
	value = availability.NormalizeTime(value)

	for i, selected := range d.SelectedTimes {
		if selected == value {
			d.SelectedTimes = append(d.SelectedTimes[:i:i], d.SelectedTimes[i+1:]...)
			return nil
		}
	}

	slot, ok := d.slot(value)
	if !ok {
		return exceptions.ErrSlotUnavailable(errors.New("time is not offered on this date"), d.Date, value)
	}
	if slot.Disabled {
		return exceptions.ErrSlotUnavailable(errors.New("time is already taken"), d.Date, value)
	}

	d.SelectedTimes = append(d.SelectedTimes, value)
	sort.Strings(d.SelectedTimes)
	return nil
}

// MarkBlocked disables the given times after a fresh conflict check.
func (d *Draft) MarkBlocked(values []string) {
	blocked := make(map[string]struct{}, len(values))
	for _, value := range values {
		blocked[availability.NormalizeTime(value)] = struct{}{}
	}
	for i := range d.Slots {
		if _, ok := blocked[d.Slots[i].Value]; ok {
			d.Slots[i].Disabled = true
		}
	}
}

// Total is the cost of the selected times at price per session.
func (d *Draft) Total(price decimal.Decimal) decimal.Decimal {
	return price.Mul(decimal.NewFromInt(int64(len(d.SelectedTimes))))
}

func (d *Draft) CanSubmit() bool {
	return d.Date != "" &&
		len(d.SelectedTimes) > 0 &&
		availability.HasAvailableSlot(d.Slots) &&
		d.TermsAccepted
}

// Reset clears everything but the clinic and its price.
func (d *Draft) Reset() {
	*d = *NewDraft(d.ClinicID, d.PricePerSession)
}
