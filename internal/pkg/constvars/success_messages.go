package constvars

const (
	ResponseUnknown = "unknown"

	GetClinicsSuccessMessage             = "get clinics successfully"
	GetClinicSuccessMessage              = "get clinic successfully"
	GetAvailabilitySuccessMessage        = "get availability successfully"
	GetAvailabilityWindowsSuccessMessage = "get availability windows successfully"
	GetAppointmentSuccessMessage         = "get appointments successfully"
	GetAppointmentStatsSuccessMessage    = "get appointment stats successfully"
	UpdateAppointmentStatusSuccess       = "appointment status updated successfully"
	GetDraftSuccessMessage               = "get booking draft successfully"
	UpdateDraftSuccessMessage            = "booking draft updated successfully"
	DeleteDraftSuccessMessage            = "booking draft discarded successfully"
	SubmitBookingSuccessMessage          = "booking request sent successfully"
	GetProfileSuccessMessage             = "get profile successfully"
	UpdateProfileSuccessMessage          = "profile updated successfully"
	UploadAvatarSuccessMessage           = "avatar uploaded successfully"
	GetAddressSuccessMessage             = "get address successfully"
	ContactSentSuccessMessage            = "message sent successfully"
	SignupSuccessMessage                 = "account created successfully"
	LoginSuccessMessage                  = "successfully login"
	LogoutSuccessMessage                 = "successfully logout"
	RecoverPasswordSuccessMessage        = "reset password link already sent to your email"
)
