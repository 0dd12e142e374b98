package constvars

const (
	LoggingRequestIDKey        = "request_id"
	LoggingSessionIDKey        = "session_id"
	LoggingUserIDKey           = "user_id"
	LoggingClinicIDKey         = "clinic_id"
	LoggingAppointmentIDKey    = "appointment_id"
	LoggingAppointmentCountKey = "appointment_count"
	LoggingWindowCountKey      = "window_count"
	LoggingSlotCountKey        = "slot_count"
	LoggingDateKey             = "date"
	LoggingTimeKey             = "time"
	LoggingStatusKey           = "status"
	LoggingNextStatusKey       = "next_status"
	LoggingQueryParamsKey      = "query_params"
	LoggingDataAPIUrlKey       = "data_api_url"
	LoggingRequestKey          = "request"
	LoggingResponseKey         = "response"
	LoggingResponseLengthKey   = "response_length"
	LoggingRedisKey            = "redis_key"
	LoggingLockValueKey        = "lock_value"
	LoggingLockExpirationKey   = "lock_expiration"
	LoggingQueueKey            = "queue"
	LoggingBucketKey           = "bucket"
	LoggingObjectKey           = "object"
	LoggingCEPKey              = "cep"
	LoggingTokenKey            = "availability_token"
	LoggingFileSizeKey         = "file_size"

	LoggingMethodKey     = "method"
	LoggingEndpointKey   = "endpoint"
	LoggingRemoteAddrKey = "remote_addr"
	LoggingUserAgentKey  = "user_agent"
	LoggingQueryKey      = "query"
	LoggingStatusCodeKey = "status_code"
	LoggingDurationKey   = "duration"
	LoggingSuccessKey    = "success"
	LoggingOperationKey  = "operation"

	LoggingErrorCodeKey    = "error_code"
	LoggingErrorMessageKey = "error_message"
)
