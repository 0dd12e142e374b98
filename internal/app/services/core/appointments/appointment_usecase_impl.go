package appointments

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/dto/responses"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
)

const aggregatorIdleExpiry = 30 * time.Minute

type trackedAggregator struct {
	aggregator *Aggregator
	lastUsed   time.Time
}

type appointmentUsecase struct {
	AppointmentDataClient contracts.AppointmentDataClient
	ClinicDataClient      contracts.ClinicDataClient
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger

	mu          sync.Mutex
	aggregators map[string]*trackedAggregator
}

var (
	appointmentUsecaseInstance contracts.AppointmentUsecase
	onceAppointmentUsecase     sync.Once
)

func NewAppointmentUsecase(
	appointmentDataClient contracts.AppointmentDataClient,
	clinicDataClient contracts.ClinicDataClient,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AppointmentUsecase {
	onceAppointmentUsecase.Do(func() {
		appointmentUsecaseInstance = &appointmentUsecase{
			AppointmentDataClient: appointmentDataClient,
			ClinicDataClient:      clinicDataClient,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
	})
	return appointmentUsecaseInstance
}

func aggregatorKey(session *models.Session, clinicID string) string {
	if clinicID == "" {
		return session.UserID + "|" + session.SessionID + "|user"
	}
	return session.UserID + "|" + session.SessionID + "|clinic:" + clinicID
}

// aggregatorFor returns the aggregator kept for key, creating it when create
// is set. Aggregators idle for longer than aggregatorIdleExpiry are dropped.
func (uc *appointmentUsecase) aggregatorFor(key string, create bool) *Aggregator {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	now := time.Now()
	for k, tracked := range uc.aggregators {
		if now.Sub(tracked.lastUsed) > aggregatorIdleExpiry {
			delete(uc.aggregators, k)
		}
	}

	if tracked, ok := uc.aggregators[key]; ok {
		tracked.lastUsed = now
		return tracked.aggregator
	}
	if !create {
		return nil
	}
	if uc.aggregators == nil {
		uc.aggregators = make(map[string]*trackedAggregator)
	}
	aggregator := NewAggregator(uc.AppointmentDataClient, uc.ClinicDataClient, uc.InternalConfig.Location(), uc.Log)
	uc.aggregators[key] = &trackedAggregator{aggregator: aggregator, lastUsed: now}
	return aggregator
}

// Stats aggregates one clinic owned by the session user, or every clinic the
// session user owns when no clinic is informed.
func (uc *appointmentUsecase) Stats(ctx context.Context, session *models.Session, request *requests.AppointmentStats) (*responses.AppointmentStats, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.Stats called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	params := AggregateParams{
		AccessToken:    session.AccessToken,
		ClinicID:       request.ClinicID,
		UserID:         request.UserID,
		ClinicOverride: request.ClinicOverride,
		DateFrom:       request.DateFrom,
		DateTo:         request.DateTo,
		Period:         request.Period,
		Weekday:        request.Weekday,
		Status:         request.Status,
	}

	if clinicID := params.targetClinic(); clinicID != "" {
		if _, err := uc.ensureClinicOwner(ctx, session, clinicID); err != nil {
			return nil, err
		}
	} else {
		if params.UserID != "" && params.UserID != session.UserID {
			uc.Log.Error("appointmentUsecase.Stats error user mismatch",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingUserIDKey, session.UserID),
			)
			return nil, exceptions.ErrNotClinicOwner(errors.New("stats requested for another user"), session.UserID, "")
		}
		params.UserID = session.UserID
	}

	result, err := uc.aggregatorFor(aggregatorKey(session, params.targetClinic()), true).Load(ctx, params)
	if err != nil {
		uc.Log.Error("appointmentUsecase.Stats error loading aggregate",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.Stats succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, result.Stats.Total),
	)
	return &responses.AppointmentStats{
		ClinicIDs:    result.ClinicIDs,
		Stats:        result.Stats,
		Appointments: result.Appointments,
	}, nil
}

// UpdateStatus moves an appointment through its lifecycle and returns the
// fresh counts of its clinic. Nothing is written when the transition is
// illegal.
func (uc *appointmentUsecase) UpdateStatus(ctx context.Context, session *models.Session, request *requests.UpdateAppointmentStatus) (*responses.UpdateAppointmentStatus, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, request.AppointmentID),
		zap.String(constvars.LoggingNextStatusKey, request.Status),
	)

	current, err := uc.AppointmentDataClient.FindByID(ctx, session.AccessToken, request.AppointmentID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateStatus error fetching appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	if _, err := uc.ensureClinicOwner(ctx, session, current.ClinicID); err != nil {
		return nil, err
	}

	if err := ValidateTransition(current.Status, request.Status); err != nil {
		uc.Log.Error("appointmentUsecase.UpdateStatus error validating transition",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingStatusKey, current.Status),
			zap.String(constvars.LoggingNextStatusKey, request.Status),
			zap.Error(err),
		)
		return nil, err
	}

	updated, err := uc.AppointmentDataClient.UpdateStatus(ctx, session.AccessToken, current.ID, request.Status)
	if err != nil {
		uc.Log.Error("appointmentUsecase.UpdateStatus error updating appointment",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	// the update is already applied; a failed reload only leaves stale counts
	result, err := uc.reloadAggregate(ctx, session, current.ClinicID)
	if err != nil {
		uc.Log.Warn("appointmentUsecase.UpdateStatus error reloading aggregate",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("appointmentUsecase.UpdateStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, updated.ID),
		zap.String(constvars.LoggingStatusKey, updated.Status),
	)
	return &responses.UpdateAppointmentStatus{
		Appointment: *updated,
		Stats:       result.Stats,
	}, nil
}

// reloadAggregate repeats the session's last aggregate covering clinicID,
// keeping its filters. Without one, the clinic is loaded unfiltered.
func (uc *appointmentUsecase) reloadAggregate(ctx context.Context, session *models.Session, clinicID string) (AggregateResult, error) {
	for _, key := range []string{aggregatorKey(session, clinicID), aggregatorKey(session, "")} {
		if aggregator := uc.aggregatorFor(key, false); aggregator != nil {
			aggregator.SetAccessToken(session.AccessToken)
			return aggregator.Reload(ctx)
		}
	}
	return uc.aggregatorFor(aggregatorKey(session, clinicID), true).Load(ctx, AggregateParams{
		AccessToken: session.AccessToken,
		ClinicID:    clinicID,
	})
}

func (uc *appointmentUsecase) FindMine(ctx context.Context, session *models.Session, request *requests.MyAppointments) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("appointmentUsecase.FindMine called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	appointments, err := uc.AppointmentDataClient.FindAll(ctx, session.AccessToken, models.AppointmentFilter{
		UserID:   session.UserID,
		DateFrom: request.DateFrom,
		DateTo:   request.DateTo,
		Status:   request.Status,
	})
	if err != nil {
		uc.Log.Error("appointmentUsecase.FindMine error fetching appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("appointmentUsecase.FindMine succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, len(appointments)),
	)
	return appointments, nil
}

func (uc *appointmentUsecase) ensureClinicOwner(ctx context.Context, session *models.Session, clinicID string) (*models.Clinic, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	clinic, err := uc.ClinicDataClient.FindByID(ctx, session.AccessToken, clinicID)
	if err != nil {
		uc.Log.Error("appointmentUsecase.ensureClinicOwner error fetching clinic",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingClinicIDKey, clinicID),
			zap.Error(err),
		)
		return nil, err
	}
	if clinic.OwnerID != session.UserID {
		uc.Log.Error("appointmentUsecase.ensureClinicOwner session user does not own clinic",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingUserIDKey, session.UserID),
			zap.String(constvars.LoggingClinicIDKey, clinicID),
		)
		return nil, exceptions.ErrNotClinicOwner(errors.New("clinic owned by another user"), session.UserID, clinicID)
	}
	return clinic, nil
}
