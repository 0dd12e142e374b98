package clinics

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/app/services/core/availability"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/dto/responses"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"sync"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

type clinicUsecase struct {
	ClinicDataClient       contracts.ClinicDataClient
	AvailabilityDataClient contracts.AvailabilityDataClient
	AppointmentDataClient  contracts.AppointmentDataClient
	Calculator             *availability.Calculator
	InternalConfig         *config.InternalConfig
	Log                    *zap.Logger
}

var (
	clinicUsecaseInstance contracts.ClinicUsecase
	onceClinicUsecase     sync.Once
)

func NewClinicUsecase(
	clinicDataClient contracts.ClinicDataClient,
	availabilityDataClient contracts.AvailabilityDataClient,
	appointmentDataClient contracts.AppointmentDataClient,
	calculator *availability.Calculator,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ClinicUsecase {
	onceClinicUsecase.Do(func() {
		clinicUsecaseInstance = &clinicUsecase{
			ClinicDataClient:       clinicDataClient,
			AvailabilityDataClient: availabilityDataClient,
			AppointmentDataClient:  appointmentDataClient,
			Calculator:             calculator,
			InternalConfig:         internalConfig,
			Log:                    logger,
		}
	})
	return clinicUsecaseInstance
}

func (uc *clinicUsecase) Search(ctx context.Context, request *requests.SearchClinics) ([]models.Clinic, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicUsecase.Search called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, request),
	)

	filter := models.ClinicFilter{
		Query:     request.Query,
		City:      request.City,
		State:     request.State,
		Specialty: request.Specialty,
		Page:      request.Page,
		PageSize:  request.PageSize,
	}

	if request.MinPrice != "" {
		minPrice, err := decimal.NewFromString(request.MinPrice)
		if err != nil {
			return nil, 0, exceptions.ErrCannotParseDecimal(err, constvars.URLQueryParamMinPrice)
		}
		filter.MinPrice = &minPrice
	}
	if request.MaxPrice != "" {
		maxPrice, err := decimal.NewFromString(request.MaxPrice)
		if err != nil {
			return nil, 0, exceptions.ErrCannotParseDecimal(err, constvars.URLQueryParamMaxPrice)
		}
		filter.MaxPrice = &maxPrice
	}

	clinics, total, err := uc.ClinicDataClient.Search(ctx, "", filter)
	if err != nil {
		uc.Log.Error("clinicUsecase.Search error fetching clinics",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, 0, err
	}

	uc.Log.Info("clinicUsecase.Search succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(clinics)),
	)
	return clinics, total, nil
}

func (uc *clinicUsecase) FindByID(ctx context.Context, clinicID string) (*models.Clinic, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicUsecase.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	clinic, err := uc.ClinicDataClient.FindByID(ctx, "", clinicID)
	if err != nil {
		uc.Log.Error("clinicUsecase.FindByID error fetching clinic",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return clinic, nil
}

func (uc *clinicUsecase) FindAvailabilityWindows(ctx context.Context, clinicID string) ([]models.AvailabilityWindow, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicUsecase.FindAvailabilityWindows called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	windows, err := uc.AvailabilityDataClient.FindByClinicID(ctx, "", clinicID)
	if err != nil {
		uc.Log.Error("clinicUsecase.FindAvailabilityWindows error fetching windows",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("clinicUsecase.FindAvailabilityWindows succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingWindowCountKey, len(windows)),
	)
	return windows, nil
}

// GetAvailability computes the slots of one date. The clinic, its windows
// and the appointments of the date are fetched concurrently.
func (uc *clinicUsecase) GetAvailability(ctx context.Context, request *requests.GetAvailability) (*responses.ClinicAvailability, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("clinicUsecase.GetAvailability called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, request.ClinicID),
		zap.String(constvars.LoggingDateKey, request.Date),
	)

	weekday, err := availability.ResolveWeekday(request.Date, uc.Calculator.Location())
	if err != nil {
		uc.Log.Error("clinicUsecase.GetAvailability error resolving weekday",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	var (
		windows      []models.AvailabilityWindow
		appointments []models.Appointment
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		_, err := uc.ClinicDataClient.FindByID(gctx, "", request.ClinicID)
		return err
	})
	g.Go(func() error {
		var err error
		windows, err = uc.AvailabilityDataClient.FindByClinicID(gctx, "", request.ClinicID)
		return err
	})
	g.Go(func() error {
		var err error
		appointments, err = uc.AppointmentDataClient.FindAll(gctx, "", models.AppointmentFilter{
			ClinicIDs: []string{request.ClinicID},
			Date:      request.Date,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		uc.Log.Error("clinicUsecase.GetAvailability error fetching availability data",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	slots, err := uc.Calculator.Calculate(request.Date, windows, appointments)
	if err != nil {
		return nil, err
	}

	response := &responses.ClinicAvailability{
		ClinicID: request.ClinicID,
		Date:     request.Date,
		Weekday:  weekday,
		Slots:    slots,
	}
	if len(slots) == 0 {
		response.Notice = constvars.ErrClientNoAvailability
	}

	uc.Log.Info("clinicUsecase.GetAvailability succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingSlotCountKey, len(slots)),
	)
	return response, nil
}
