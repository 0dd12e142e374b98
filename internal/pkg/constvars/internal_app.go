package constvars

type ContextKey string

const (
	CONTEXT_REQUEST_ID_KEY           ContextKey = "request_id"
	CONTEXT_SESSION_DATA_KEY         ContextKey = "session_data"
	CONTEXT_IS_CLIENT_REQUEST_ID_KEY ContextKey = "is_client_request_id"
)

const (
	REQUEST_ID_PREFIX = "CLNRM_SVC_"
)

const (
	AppEnvDevelopment = "development"
	AppEnvProduction  = "production"
)

const (
	AppPaginationUrlFormat = "%s?page=%d&page_size=%d"
	DefaultPage            = 1
	DefaultPageSize        = 12
	MaxPageSize            = 100
)

const (
	// Data API tables
	TableClinics             = "clinics"
	TableAvailabilityWindows = "clinic_availability"
	TableAppointments        = "appointments"
	TableProfiles            = "profiles"
)

const (
	RedisKeySessionPrefix = "session:"
	RedisKeyDraftPrefix   = "booking:draft:"
	RedisKeyCEPPrefix     = "cep:"
	RedisKeyLockPrefix    = "lock:booking:"
)

const (
	AvatarObjectPrefix = "avatars"
)
