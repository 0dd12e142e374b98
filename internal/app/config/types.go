package config

type (
	InternalConfig struct {
		App      App
		DataAPI  DataAPI
		JWT      JWT
		Minio    AppMinio
		RabbitMQ AppRabbitMQ
		CEP      CEP
	}

	App struct {
		Env                            string
		Port                           string
		Version                        string
		Address                        string
		Timezone                       string
		FrontendDomain                 string
		EndpointPrefix                 string
		MaxRequests                    int
		ShutdownTimeoutInSeconds       int
		RequestTimeoutInSeconds        int
		RequestBodyLimitInMegabyte     int
		LoginSessionExpiredTimeInHours int
		BookingDraftTTLInMinutes       int
		BookingLockTTLInSeconds        int
		CEPCacheTTLInHours             int
		AvatarMaxUploadSizeInMB        int
		// AvailabilityMergeWindows unions every window of the weekday
		// instead of honoring only the first one.
		AvailabilityMergeWindows bool
	}

	DataAPI struct {
		BaseUrl                 string
		AuthBaseUrl             string
		ServiceKey              string
		RequestTimeoutInSeconds int
	}

	JWT struct {
		Secret        string
		ExpTimeInHour int
	}

	AppMinio struct {
		BucketName    string
		PublicBaseUrl string
	}

	AppRabbitMQ struct {
		ContactQueue string
		SupportQueue string
	}

	CEP struct {
		BaseUrl string
	}
)

type (
	DriverConfig struct {
		Redis    Redis
		Logger   Logger
		RabbitMQ RabbitMQ
		Minio    Minio
	}
	Redis struct {
		Host     string
		Port     string
		Password string
		DB       int
	}
	Logger struct {
		Level               string
		OutputFileName      string
		OutputErrorFileName string
	}
	RabbitMQ struct {
		Port     string
		Host     string
		Username string
		Password string
	}
	Minio struct {
		Port     string
		Host     string
		Username string
		Password string
		UseSSL   bool
	}
)
