package constvars

const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCancelled = "cancelled"
	AppointmentStatusCompleted = "completed"
)

const (
	WeekdayDomingo = "domingo"
	WeekdaySegunda = "segunda"
	WeekdayTerca   = "terca"
	WeekdayQuarta  = "quarta"
	WeekdayQuinta  = "quinta"
	WeekdaySexta   = "sexta"
	WeekdaySabado  = "sabado"
)

const (
	PeriodManha = "manha"
	PeriodTarde = "tarde"
	PeriodNoite = "noite"
)

const (
	SlotStepMinutes = 30
	DateLayout      = "2006-01-02"
	ClockLayout     = "15:04"
)

const (
	ContactKindContact = "contact"
	ContactKindSupport = "support"
)

// WeekdayTokens is indexed by time.Weekday.
var WeekdayTokens = [7]string{
	WeekdayDomingo,
	WeekdaySegunda,
	WeekdayTerca,
	WeekdayQuarta,
	WeekdayQuinta,
	WeekdaySexta,
	WeekdaySabado,
}
