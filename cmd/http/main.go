package main

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/delivery/http/controllers"
	"clinicroom-service/internal/app/delivery/http/middlewares"
	"clinicroom-service/internal/app/delivery/http/routers"
	"clinicroom-service/internal/app/drivers/database"
	"clinicroom-service/internal/app/drivers/logger"
	"clinicroom-service/internal/app/drivers/messaging"
	"clinicroom-service/internal/app/drivers/storage"
	"clinicroom-service/internal/app/services/core/appointments"
	"clinicroom-service/internal/app/services/core/auth"
	"clinicroom-service/internal/app/services/core/availability"
	"clinicroom-service/internal/app/services/core/booking"
	"clinicroom-service/internal/app/services/core/clinics"
	"clinicroom-service/internal/app/services/core/contact"
	"clinicroom-service/internal/app/services/core/profiles"
	"clinicroom-service/internal/app/services/dataapi"
	dataapiAppointments "clinicroom-service/internal/app/services/dataapi/appointments"
	dataapiAuth "clinicroom-service/internal/app/services/dataapi/auth"
	dataapiAvailabilities "clinicroom-service/internal/app/services/dataapi/availabilities"
	dataapiClinics "clinicroom-service/internal/app/services/dataapi/clinics"
	dataapiProfiles "clinicroom-service/internal/app/services/dataapi/profiles"
	"clinicroom-service/internal/app/services/shared/cep"
	"clinicroom-service/internal/app/services/shared/locker"
	"clinicroom-service/internal/app/services/shared/queue"
	"clinicroom-service/internal/app/services/shared/redis"
	sharedStorage "clinicroom-service/internal/app/services/shared/storage"
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

func main() {
	driverConfig := config.NewDriverConfig()
	internalConfig := config.NewInternalConfig()

	zapLogger, err := logger.NewZapLogger(driverConfig, internalConfig)
	if err != nil {
		log.Fatalf("Error initializing logger: %v", err)
	}

	time.Local = internalConfig.Location()

	redisClient, err := database.NewRedisClient(driverConfig)
	if err != nil {
		zapLogger.Fatal("Error connecting to redis", zap.Error(err))
	}

	rabbitMQConnection, err := messaging.NewRabbitMQ(driverConfig)
	if err != nil {
		zapLogger.Fatal("Error connecting to rabbitmq", zap.Error(err))
	}

	minioClient, err := storage.NewMinio(driverConfig, internalConfig)
	if err != nil {
		zapLogger.Fatal("Error connecting to minio", zap.Error(err))
	}

	bootstrap := &config.Bootstrap{
		Router:         chi.NewRouter(),
		Redis:          redisClient,
		Logger:         zapLogger,
		RabbitMQ:       rabbitMQConnection,
		Minio:          minioClient,
		InternalConfig: internalConfig,
		DriverConfig:   driverConfig,
	}

	err = bootstrapingTheApp(bootstrap)
	if err != nil {
		zapLogger.Fatal("Error bootstraping the app", zap.Error(err))
	}

	server := &http.Server{
		Addr:    fmt.Sprintf("%s:%s", internalConfig.App.Address, internalConfig.App.Port),
		Handler: bootstrap.Router,
	}

	go func() {
		zapLogger.Info("Server started", zap.String("address", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Server failed to start", zap.Error(err))
		}
	}()

	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c

	zapLogger.Info("Waiting for pending requests that already received by server to be processed..")

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Second*time.Duration(internalConfig.App.ShutdownTimeoutInSeconds),
	)
	defer cancel()

	err = server.Shutdown(shutdownCtx)
	if err != nil {
		zapLogger.Error("Server forced to shutdown", zap.Error(err))
	}

	err = bootstrap.Shutdown(shutdownCtx)
	if err != nil {
		log.Printf("Error releasing resources: %v", err)
	}

	log.Println("Server exiting")
}

func bootstrapingTheApp(bootstrap *config.Bootstrap) error {
	internalConfig := bootstrap.InternalConfig
	zapLogger := bootstrap.Logger

	// Shared services
	redisRepository := redis.NewRedisRepository(bootstrap.Redis)
	lockService := locker.NewLockService(redisRepository, zapLogger)
	minioStorage := sharedStorage.NewMinioStorage(bootstrap.Minio, internalConfig.Minio.PublicBaseUrl, zapLogger)
	publisher, err := queue.NewRabbitMQPublisher(bootstrap.RabbitMQ, zapLogger)
	if err != nil {
		return err
	}
	cepService := cep.NewViaCEPService(
		internalConfig.CEP.BaseUrl,
		redisRepository,
		time.Duration(internalConfig.App.CEPCacheTTLInHours)*time.Hour,
		zapLogger,
	)

	// Data API clients
	dataAPITimeout := time.Duration(internalConfig.DataAPI.RequestTimeoutInSeconds) * time.Second
	dataAPIClient := dataapi.NewClient(internalConfig.DataAPI.BaseUrl, internalConfig.DataAPI.ServiceKey, dataAPITimeout, zapLogger)
	clinicDataClient := dataapiClinics.NewClinicDataClient(dataAPIClient, zapLogger)
	availabilityDataClient := dataapiAvailabilities.NewAvailabilityDataClient(dataAPIClient, zapLogger)
	appointmentDataClient := dataapiAppointments.NewAppointmentDataClient(dataAPIClient, zapLogger)
	profileDataClient := dataapiProfiles.NewProfileDataClient(dataAPIClient, zapLogger)
	authProviderClient := dataapiAuth.NewAuthProviderClient(internalConfig.DataAPI.AuthBaseUrl, internalConfig.DataAPI.ServiceKey, dataAPITimeout, zapLogger)

	// Availability
	windowPolicy := availability.WindowPolicyFirst
	if internalConfig.App.AvailabilityMergeWindows {
		windowPolicy = availability.WindowPolicyUnion
	}
	calculator := availability.NewCalculator(internalConfig.Location(), windowPolicy)

	// Auth
	authStateStore := auth.NewStateStore(redisRepository, zapLogger)
	initCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := authStateStore.Init(initCtx); err != nil {
		return err
	}
	bootstrap.AuthStateClose = authStateStore.Close
	authUsecase := auth.NewAuthUsecase(authProviderClient, authStateStore, internalConfig, zapLogger)

	// Clinics
	clinicUsecase := clinics.NewClinicUsecase(clinicDataClient, availabilityDataClient, appointmentDataClient, calculator, internalConfig, zapLogger)

	// Appointments
	appointmentUsecase := appointments.NewAppointmentUsecase(appointmentDataClient, clinicDataClient, internalConfig, zapLogger)

	// Booking
	availabilityLoader := booking.NewAvailabilityLoader(time.Duration(internalConfig.App.RequestTimeoutInSeconds)*time.Second, zapLogger)
	bootstrap.LoaderStop = availabilityLoader.Stop
	bookingUsecase := booking.NewBookingUsecase(clinicUsecase, appointmentDataClient, redisRepository, lockService, availabilityLoader, internalConfig, zapLogger)

	// Profile
	profileUsecase := profiles.NewProfileUsecase(profileDataClient, minioStorage, cepService, internalConfig, zapLogger)

	// Contact
	contactUsecase := contact.NewContactUsecase(publisher, internalConfig, zapLogger)

	// Middlewares
	middlewares := middlewares.NewMiddlewares(zapLogger, authUsecase, internalConfig)

	routers.SetupRoutes(
		bootstrap.Router,
		internalConfig,
		middlewares,
		controllers.NewAuthController(zapLogger, authUsecase, internalConfig),
		controllers.NewClinicController(zapLogger, clinicUsecase, internalConfig),
		controllers.NewAppointmentController(zapLogger, appointmentUsecase, internalConfig),
		controllers.NewBookingController(zapLogger, bookingUsecase, internalConfig),
		controllers.NewProfileController(zapLogger, profileUsecase, internalConfig),
		controllers.NewContactController(zapLogger, contactUsecase, internalConfig),
	)

	return nil
}
