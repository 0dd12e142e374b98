package constvars

// Validation messages mapper
var CustomValidationErrorMessages = map[string]string{
	"required": "is required",
	"email":    "must be a valid email",
	"min":      "must be at least %s characters long",
	"max":      "maximum at %s characters long",
	"len":      "must be %s characters long",
	"oneof":    "must be one of [%s]",
	"gt":       "must be greater than %s",
	"gte":      "must be greater than or equal to %s",
	"lte":      "must be less than or equal to %s",
	"eqfield":  "must match %s",
	"uuid":     "must be a valid UUID",
	"url":      "must be a valid URL",
	"date":     "must be a date in YYYY-MM-DD format",
	"clock":    "must be a time in HH:MM format",
	"weekday":  "must be one of [domingo, segunda, terca, quarta, quinta, sexta, sabado]",
	"cpf":      "must be a valid CPF",
	"cnpj":     "must be a valid CNPJ",
	"document": "must be a valid CPF or CNPJ",
	"cep":      "must be a valid CEP",
	"phone":    "must be a valid phone number",
}

// Tags that require parameter substitution
var TagsWithParams = map[string]bool{
	"min":     true,
	"max":     true,
	"len":     true,
	"gt":      true,
	"gte":     true,
	"lte":     true,
	"eqfield": true,
	"oneof":   true,
}

// Tags whose message is complete on its own
var TagsWithoutFieldName = map[string]bool{
	"cpf":      true,
	"cnpj":     true,
	"document": true,
}

// Error messages for clients
const (
	ErrClientCannotProcessRequest          = "failed to process your request"
	ErrClientSomethingWrongWithApplication = "there is something wrong with the application"
	ErrClientServerLongRespond             = "the app taking too long to respond"
	ErrClientNotAuthorized                 = "you can't access this feature"
	ErrClientNotLoggedIn                   = "your session ended, please login again"
	ErrClientInvalidEmailOrPassword        = "invalid email or password"
	ErrClientInvalidImageFormat            = "the image you uploaded does not meet the specified standards"
	ErrClientInvalidDate                   = "the selected date is invalid"
	ErrClientInvalidTime                   = "the selected time is invalid"
	ErrClientSlotUnavailable               = "the selected time is no longer available"
	ErrClientBookingNotReady               = "select a date, at least one available time and accept the terms before booking"
	ErrClientNoAvailability                = "this clinic has no availability on the selected weekday"
	ErrClientIllegalStatusTransition       = "this appointment can no longer change to the requested status"
	ErrClientBookingInProgress             = "another booking for this date is being processed, please try again"
	ErrClientResourceNotFound              = "the requested data was not found"
	ErrClientCEPNotFound                   = "CEP not found"
	ErrClientMissingTarget                 = "a clinic or a user must be informed"
	ErrClientRequestTooLarge               = "the request is too large"
)

// Error messages for developers
const (
	ErrDevInvalidInput             = "invalid input"
	ErrDevCannotParseJSON          = "cannot parse JSON into struct or other data types"
	ErrDevCannotMarshalJSON        = "cannot convert struct or other data types to JSON"
	ErrDevCannotParseMultipartForm = "cannot parse multipart form body"
	ErrDevCannotParseDate          = "cannot parse the requested date %q"
	ErrDevCannotParseTime          = "cannot parse the requested time %q"
	ErrDevCannotParseDecimal       = "cannot parse decimal value for %s"
	ErrDevCreateHTTPRequest        = "failed to create HTTP request"
	ErrDevSendHTTPRequest          = "failed to send HTTP request"
	ErrDevValidationFailed         = "validation failed"
	ErrDevImageValidationFailed    = "image validation failed"
	ErrDevURLParamValidationFailed = "parameter %s validation failed"
	ErrDevMissingRequestID         = "request id missing from context"
	ErrDevMissingSessionData       = "session data missing from context"
	ErrDevMissingAggregateTarget   = "aggregate requires clinic id or user id"
	ErrDevRequestBodyTooLarge      = "request body exceeds the configured limit"

	// Data API messages
	ErrDevDataAPICreateResource = "failed to create %s on the data API"
	ErrDevDataAPIGetResource    = "failed to get %s from the data API"
	ErrDevDataAPIUpdateResource = "failed to update %s on the data API"
	ErrDevDataAPINoData         = "no data found for %s on the data API"
	ErrDevDataAPIDecodeResponse = "failed to decode %s response from the data API"

	// Auth provider messages
	ErrDevAuthProviderRejected      = "auth provider rejected the %s request"
	ErrDevAuthTokenMissing          = "token missing"
	ErrDevAuthTokenInvalidOrExpired = "invalid or expired token"
	ErrDevAuthInvalidSession        = "invalid session"
	ErrDevAuthGenerateToken         = "failed to generate token"
	ErrDevAuthSigningMethod         = "unexpected signing method"
	ErrDevNotClinicOwner            = "session user %s does not own clinic %s"

	// Booking messages
	ErrDevIllegalStatusTransition = "illegal appointment status transition from %s to %s"
	ErrDevUnknownStatus           = "unknown appointment status %q"
	ErrDevBookingNotReady         = "booking draft does not satisfy submission preconditions"
	ErrDevSlotUnavailable         = "slot %s on %s is disabled or not offered"
	ErrDevBookingLockNotAcquired  = "booking lock %s held by another request"
	ErrDevNoAvailability          = "no availability window for weekday %s"

	// Minio messages
	ErrDevMinioFailedToCreateObject = "failed to create object into minio storage with bucket name '%s'"

	// Redis messages
	ErrDevRedisSetData    = "failed to SET data into redis"
	ErrDevRedisGetData    = "failed to GET data from redis"
	ErrDevRedisDeleteData = "failed to DELETE data from redis"
	ErrDevRedisExpire     = "failed to EXPIRE data in redis"
	ErrDevRedisUnlock     = "failed to release redis lock"

	// RabbitMQ messages
	ErrDevRabbitMQPublishMessage = "failed to publish message into queue '%s'"

	// CEP messages
	ErrDevCEPLookupFailed = "CEP lookup failed for %s"
	ErrDevCEPNotFound     = "CEP %s not found"

	// Server messages
	ErrDevServerProcess          = "server failed to process something related to machine system"
	ErrDevServerDeadlineExceeded = "deadline exceeded"
)

const (
	ErrEnvParsing = "Error parsing %s: %v, will use default value"
)
