package constvars

const (
	URLParamClinicID      = "clinicID"
	URLParamAppointmentID = "appointmentID"
	URLParamTime          = "time"
	URLParamCEP           = "cep"
)

const (
	URLQueryParamSearch        = "q"
	URLQueryParamCity          = "city"
	URLQueryParamState         = "state"
	URLQueryParamSpecialty     = "specialty"
	URLQueryParamMinPrice      = "min_price"
	URLQueryParamMaxPrice      = "max_price"
	URLQueryParamPage          = "page"
	URLQueryParamPageSize      = "page_size"
	URLQueryParamDate          = "date"
	URLQueryParamDateFrom      = "date_from"
	URLQueryParamDateTo        = "date_to"
	URLQueryParamPeriod        = "period"
	URLQueryParamWeekday       = "weekday"
	URLQueryParamStatus        = "status"
	URLQueryParamClinic        = "clinic_id"
	URLQueryParamUser          = "user_id"
	MultipartFormFieldAvatar   = "avatar"
	MultipartMaxMemoryInMBytes = 8
)
