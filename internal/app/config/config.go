package config

import (
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/utils"
	"time"

	"github.com/joho/godotenv"
)

func init() {
	godotenv.Load()
}

func NewDriverConfig() *DriverConfig {
	return &DriverConfig{
		Redis: Redis{
			Host:     utils.GetEnvString("REDIS_HOST", "localhost"),
			Port:     utils.GetEnvString("REDIS_PORT", "6379"),
			Password: utils.GetEnvString("REDIS_PASSWORD", ""),
			DB:       utils.GetEnvInt("REDIS_DB", 0),
		},
		Logger: Logger{
			Level:               utils.GetEnvString("LOGGER_LEVEL", "debug"),
			OutputFileName:      utils.GetEnvString("LOGGER_OUTPUT_FILENAME", "logger.log"),
			OutputErrorFileName: utils.GetEnvString("LOGGER_OUTPUT_ERROR_FILENAME", "logger_error.log"),
		},
		RabbitMQ: RabbitMQ{
			Port:     utils.GetEnvString("RABBITMQ_PORT", "5672"),
			Host:     utils.GetEnvString("RABBITMQ_HOST", "localhost"),
			Username: utils.GetEnvString("RABBITMQ_USERNAME", "guest"),
			Password: utils.GetEnvString("RABBITMQ_PASSWORD", "guest"),
		},
		Minio: Minio{
			Port:     utils.GetEnvString("MINIO_PORT", "9000"),
			Host:     utils.GetEnvString("MINIO_HOST", "localhost"),
			Username: utils.GetEnvString("MINIO_USERNAME", "minioadmin"),
			Password: utils.GetEnvString("MINIO_PASSWORD", "minioadmin"),
			UseSSL:   utils.GetEnvBool("MINIO_USE_SSL", false),
		},
	}
}

func NewInternalConfig() *InternalConfig {
	return &InternalConfig{
		App: App{
			Env:                            utils.GetEnvString("APP_ENV", constvars.AppEnvDevelopment),
			Port:                           utils.GetEnvString("APP_PORT", "8080"),
			Version:                        utils.GetEnvString("APP_VERSION", "v1"),
			Address:                        utils.GetEnvString("APP_ADDRESS", "0.0.0.0"),
			Timezone:                       utils.GetEnvString("APP_TIMEZONE", "America/Sao_Paulo"),
			FrontendDomain:                 utils.GetEnvString("APP_FRONTEND_DOMAIN", "http://localhost:5173"),
			EndpointPrefix:                 utils.GetEnvString("APP_ENDPOINT_PREFIX", "api"),
			MaxRequests:                    utils.GetEnvInt("APP_MAX_REQUEST", 20),
			ShutdownTimeoutInSeconds:       utils.GetEnvInt("APP_SHUTDOWN_TIMEOUT_IN_SECONDS", 10),
			RequestTimeoutInSeconds:        utils.GetEnvInt("APP_REQUEST_TIMEOUT_IN_SECONDS", 15),
			RequestBodyLimitInMegabyte:     utils.GetEnvInt("APP_REQUEST_BODY_LIMIT_IN_MEGABYTE", 6),
			LoginSessionExpiredTimeInHours: utils.GetEnvInt("APP_LOGIN_SESSION_EXPIRED_TIME_IN_HOURS", 24),
			BookingDraftTTLInMinutes:       utils.GetEnvInt("APP_BOOKING_DRAFT_TTL_IN_MINUTES", 30),
			BookingLockTTLInSeconds:        utils.GetEnvInt("APP_BOOKING_LOCK_TTL_IN_SECONDS", 15),
			CEPCacheTTLInHours:             utils.GetEnvInt("APP_CEP_CACHE_TTL_IN_HOURS", 168),
			AvatarMaxUploadSizeInMB:        utils.GetEnvInt("APP_AVATAR_MAX_UPLOAD_SIZE_IN_MB", 2),
			AvailabilityMergeWindows:       utils.GetEnvBool("APP_AVAILABILITY_MERGE_WINDOWS", false),
		},
		DataAPI: DataAPI{
			BaseUrl:                 utils.GetEnvString("DATA_API_BASE_URL", "http://localhost:54321/rest/v1"),
			AuthBaseUrl:             utils.GetEnvString("DATA_API_AUTH_BASE_URL", "http://localhost:54321/auth/v1"),
			ServiceKey:              utils.GetEnvString("DATA_API_SERVICE_KEY", ""),
			RequestTimeoutInSeconds: utils.GetEnvInt("DATA_API_REQUEST_TIMEOUT_IN_SECONDS", 10),
		},
		JWT: JWT{
			Secret:        utils.GetEnvString("JWT_SECRET", "anyjwt"),
			ExpTimeInHour: utils.GetEnvInt("JWT_EXP_TIME_IN_HOUR", 24),
		},
		Minio: AppMinio{
			BucketName:    utils.GetEnvString("APP_MINIO_BUCKET_NAME", "avatars"),
			PublicBaseUrl: utils.GetEnvString("APP_MINIO_PUBLIC_BASE_URL", "http://localhost:9000"),
		},
		RabbitMQ: AppRabbitMQ{
			ContactQueue: utils.GetEnvString("APP_RABBITMQ_CONTACT_QUEUE", "clinicroom.contact"),
			SupportQueue: utils.GetEnvString("APP_RABBITMQ_SUPPORT_QUEUE", "clinicroom.support"),
		},
		CEP: CEP{
			BaseUrl: utils.GetEnvString("CEP_BASE_URL", "https://viacep.com.br/ws"),
		},
	}
}

// Location resolves the configured timezone, falling back to the process
// local zone when the name is unknown.
func (c *InternalConfig) Location() *time.Location {
	loc, err := time.LoadLocation(c.App.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}
