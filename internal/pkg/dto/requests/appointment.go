package requests

type AppointmentStats struct {
	ClinicID       string `validate:"omitempty"`
	UserID         string `validate:"omitempty"`
	ClinicOverride string `validate:"omitempty"`
	DateFrom       string `validate:"omitempty,date"`
	DateTo         string `validate:"omitempty,date"`
	Period         string `validate:"omitempty,oneof=manha tarde noite"`
	Weekday        string `validate:"omitempty,weekday"`
	Status         string `validate:"omitempty,oneof=pending confirmed cancelled completed"`
}

type UpdateAppointmentStatus struct {
	AppointmentID string `json:"-" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=pending confirmed cancelled completed"`
}

type MyAppointments struct {
	DateFrom string `validate:"omitempty,date"`
	DateTo   string `validate:"omitempty,date"`
	Status   string `validate:"omitempty,oneof=pending confirmed cancelled completed"`
}
