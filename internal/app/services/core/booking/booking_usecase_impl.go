package booking

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
	"errors"
	"fmt"
	"hash/fnv"
	"sync"
	"time"

	"go.uber.org/zap"
)

const draftLockStripes = 64

// draftLocks serialises read-modify-write cycles on drafts within this
// process.
type draftLocks [draftLockStripes]sync.Mutex

func (l *draftLocks) lock(key string) func() {
	h := fnv.New32a()
	h.Write([]byte(key))
	m := &l[h.Sum32()%draftLockStripes]
	m.Lock()
	return m.Unlock
}

type bookingUsecase struct {
	ClinicUsecase         contracts.ClinicUsecase
	AppointmentDataClient contracts.AppointmentDataClient
	RedisRepository       contracts.RedisRepository
	LockService           contracts.LockerService
	Loader                *AvailabilityLoader
	InternalConfig        *config.InternalConfig
	Log                   *zap.Logger

	locks draftLocks
}

var (
	bookingUsecaseInstance contracts.BookingUsecase
	onceBookingUsecase     sync.Once
)

func NewBookingUsecase(
	clinicUsecase contracts.ClinicUsecase,
	appointmentDataClient contracts.AppointmentDataClient,
	redisRepository contracts.RedisRepository,
	lockService contracts.LockerService,
	loader *AvailabilityLoader,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.BookingUsecase {
	onceBookingUsecase.Do(func() {
		bookingUsecaseInstance = &bookingUsecase{
			ClinicUsecase:         clinicUsecase,
			AppointmentDataClient: appointmentDataClient,
			RedisRepository:       redisRepository,
			LockService:           lockService,
			Loader:                loader,
			InternalConfig:        internalConfig,
			Log:                   logger,
		}
	})
	return bookingUsecaseInstance
}

func draftKey(session *models.Session, clinicID string) string {
	return fmt.Sprintf("%s%s:%s", constvars.RedisKeyDraftPrefix, session.SessionID, clinicID)
}

func bookingLockKey(clinicID, date string) string {
	return fmt.Sprintf("%s%s:%s", constvars.RedisKeyLockPrefix, clinicID, date)
}

func (uc *bookingUsecase) draftTTL() time.Duration {
	return time.Duration(uc.InternalConfig.App.BookingDraftTTLInMinutes) * time.Minute
}

func (uc *bookingUsecase) loadDraft(ctx context.Context, key string) (*Draft, bool, error) {
	draft := new(Draft)
	found, err := uc.RedisRepository.GetInto(ctx, key, draft)
	if err != nil || !found {
		return nil, found, err
	}
	if draft.SelectedTimes == nil {
		draft.SelectedTimes = []string{}
	}
	if draft.Slots == nil {
		draft.Slots = []models.TimeSlot{}
	}
	return draft, true, nil
}

// loadOrCreate returns the stored draft or a fresh one priced from the
// clinic listing.
func (uc *bookingUsecase) loadOrCreate(ctx context.Context, key, clinicID string) (*Draft, error) {
	draft, found, err := uc.loadDraft(ctx, key)
	if err != nil {
		return nil, err
	}
	if found {
		return draft, nil
	}

	clinic, err := uc.ClinicUsecase.FindByID(ctx, clinicID)
	if err != nil {
		return nil, err
	}
	return NewDraft(clinic.ID, clinic.PricePerSession), nil
}

func (uc *bookingUsecase) saveDraft(ctx context.Context, key string, draft *Draft) error {
	return uc.RedisRepository.Set(ctx, key, draft, uc.draftTTL())
}

func (uc *bookingUsecase) buildResponse(draft *Draft) *responses.Draft {
	response := &responses.Draft{
		ClinicID:          draft.ClinicID,
		Date:              draft.Date,
		SelectedTimes:     draft.SelectedTimes,
		Notes:             draft.Notes,
		TermsAccepted:     draft.TermsAccepted,
		Slots:             draft.Slots,
		AvailabilityToken: draft.AvailabilityToken,
		Loading:           draft.Loading,
		PricePerSession:   draft.PricePerSession.StringFixed(2),
		Total:             draft.Total(draft.PricePerSession).StringFixed(2),
		CanSubmit:         draft.CanSubmit(),
		Error:             draft.Error,
	}
	if draft.Date != "" {
		if weekday, err := availability.ResolveWeekday(draft.Date, uc.InternalConfig.Location()); err == nil {
			response.Weekday = weekday
		}
	}
	return response
}

// mutate applies fn to the draft of key under the draft lock and stores the
// result. The draft is not stored when fn fails.
func (uc *bookingUsecase) mutate(ctx context.Context, key, clinicID string, fn func(draft *Draft) error) (*Draft, error) {
	unlock := uc.locks.lock(key)
	defer unlock()

	draft, err := uc.loadOrCreate(ctx, key, clinicID)
	if err != nil {
		return nil, err
	}
	if err := fn(draft); err != nil {
		return draft, err
	}
	if err := uc.saveDraft(ctx, key, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func (uc *bookingUsecase) GetDraft(ctx context.Context, session *models.Session, clinicID string) (*responses.Draft, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.GetDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	key := draftKey(session, clinicID)
	draft, err := uc.mutate(ctx, key, clinicID, func(*Draft) error { return nil })
	if err != nil {
		uc.Log.Error("bookingUsecase.GetDraft error loading draft",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return uc.buildResponse(draft), nil
}

// SetDate moves the draft to date and waits for its availability. When the
// caller context ends first the draft is returned still loading and the
// load completes in the background.
func (uc *bookingUsecase) SetDate(ctx context.Context, session *models.Session, clinicID string, request *requests.SetDraftDate) (*responses.Draft, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.SetDate called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
		zap.String(constvars.LoggingDateKey, request.Date),
	)

	if _, err := availability.ResolveWeekday(request.Date, uc.InternalConfig.Location()); err != nil {
		return nil, err
	}

	key := draftKey(session, clinicID)
	var token string
	draft, err := uc.mutate(ctx, key, clinicID, func(draft *Draft) error {
		token = draft.SetDate(request.Date)
		return nil
	})
	if err != nil {
		uc.Log.Error("bookingUsecase.SetDate error storing draft",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	load := func(loadCtx context.Context) ([]models.TimeSlot, error) {
		result, err := uc.ClinicUsecase.GetAvailability(loadCtx, &requests.GetAvailability{
			ClinicID: clinicID,
			Date:     request.Date,
		})
		if err != nil {
			return nil, err
		}
		return result.Slots, nil
	}
	commit := func(commitCtx context.Context, token string, slots []models.TimeSlot, loadErr error) error {
		unlock := uc.locks.lock(key)
		defer unlock()

		current, found, err := uc.loadDraft(commitCtx, key)
		if err != nil {
			return err
		}
		message := ""
		if loadErr != nil {
			message = exceptions.ClientMessageOf(loadErr)
		}
		if !found || !current.ApplyAvailability(token, slots, message) {
			return errStaleAvailability
		}
		return uc.saveDraft(commitCtx, key, current)
	}

	select {
	case err = <-uc.Loader.Start(ctx, key, token, load, commit):
	case <-ctx.Done():
		uc.Log.Warn("bookingUsecase.SetDate returning before availability loaded",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingTokenKey, token),
		)
		return uc.buildResponse(draft), nil
	}

	switch {
	case err == nil, errors.Is(err, errStaleAvailability):
	default:
		uc.Log.Error("bookingUsecase.SetDate error loading availability",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	current, found, err := uc.loadDraft(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found {
		current = draft
	}

	uc.Log.Info("bookingUsecase.SetDate succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingSlotCountKey, len(current.Slots)),
	)
	return uc.buildResponse(current), nil
}

func (uc *bookingUsecase) ToggleTime(ctx context.Context, session *models.Session, clinicID, clockValue string) (*responses.Draft, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.ToggleTime called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
		zap.String(constvars.LoggingTimeKey, clockValue),
	)

	draft, err := uc.mutate(ctx, draftKey(session, clinicID), clinicID, func(draft *Draft) error {
		return draft.ToggleTime(clockValue)
	})
	if err != nil {
		uc.Log.Error("bookingUsecase.ToggleTime error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	return uc.buildResponse(draft), nil
}

func (uc *bookingUsecase) SetNotes(ctx context.Context, session *models.Session, clinicID string, request *requests.SetDraftNotes) (*responses.Draft, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.SetNotes called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	draft, err := uc.mutate(ctx, draftKey(session, clinicID), clinicID, func(draft *Draft) error {
		draft.Notes = request.Notes
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.buildResponse(draft), nil
}

func (uc *bookingUsecase) SetTermsAccepted(ctx context.Context, session *models.Session, clinicID string, request *requests.SetDraftTerms) (*responses.Draft, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.SetTermsAccepted called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	draft, err := uc.mutate(ctx, draftKey(session, clinicID), clinicID, func(draft *Draft) error {
		draft.TermsAccepted = request.Accepted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return uc.buildResponse(draft), nil
}

func (uc *bookingUsecase) DiscardDraft(ctx context.Context, session *models.Session, clinicID string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.DiscardDraft called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	key := draftKey(session, clinicID)
	unlock := uc.locks.lock(key)
	defer unlock()

	uc.Loader.Cancel(key)
	return uc.RedisRepository.Delete(ctx, key)
}

// Submit books every selected time as a pending appointment. The draft is
// kept on any failure and deleted only once the data API accepted the batch.
func (uc *bookingUsecase) Submit(ctx context.Context, session *models.Session, clinicID string) (*responses.SubmitBooking, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("bookingUsecase.Submit called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	key := draftKey(session, clinicID)
	unlock := uc.locks.lock(key)
	defer unlock()

	draft, found, err := uc.loadDraft(ctx, key)
	if err != nil {
		return nil, err
	}
	if !found || !draft.CanSubmit() {
		uc.Log.Info("bookingUsecase.Submit draft not ready",
			zap.String(constvars.LoggingRequestIDKey, requestID),
		)
		return nil, exceptions.ErrBookingNotReady(errors.New("draft cannot be submitted"))
	}

	lockKey := bookingLockKey(clinicID, draft.Date)
	lockTTL := time.Duration(uc.InternalConfig.App.BookingLockTTLInSeconds) * time.Second
	acquired, lockValue, err := uc.LockService.TryLock(ctx, lockKey, lockTTL)
	if err != nil {
		return nil, err
	}
	if !acquired {
		return nil, exceptions.ErrBookingInProgress(errors.New("booking lock not acquired"), lockKey)
	}
	defer func() {
		if err := uc.LockService.Unlock(context.WithoutCancel(ctx), lockKey, lockValue); err != nil {
			uc.Log.Warn("bookingUsecase.Submit error releasing lock",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingRedisKey, lockKey),
				zap.Error(err),
			)
		}
	}()

	clinic, err := uc.ClinicUsecase.FindByID(ctx, clinicID)
	if err != nil {
		return nil, uc.keepDraft(ctx, key, draft, err)
	}

	// The service key sees every customer's bookings; a user token only sees its own rows.
	existing, err := uc.AppointmentDataClient.FindAll(ctx, "", models.AppointmentFilter{
		ClinicIDs: []string{clinicID},
		Date:      draft.Date,
	})
	if err != nil {
		return nil, uc.keepDraft(ctx, key, draft, err)
	}

	var taken []string
	for _, selected := range draft.SelectedTimes {
		if availability.IsSlotBlocked(existing, draft.Date, selected) {
			taken = append(taken, selected)
		}
	}
	if len(taken) > 0 {
		uc.Log.Info("bookingUsecase.Submit selected slot became unavailable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Strings(constvars.LoggingTimeKey, taken),
		)
		draft.MarkBlocked(taken)
		return nil, uc.keepDraft(ctx, key, draft, exceptions.ErrSlotUnavailable(errors.New("slot booked meanwhile"), draft.Date, taken[0]))
	}

	pending := make([]models.Appointment, 0, len(draft.SelectedTimes))
	for _, selected := range draft.SelectedTimes {
		pending = append(pending, models.Appointment{
			ClinicID: clinicID,
			UserID:   session.UserID,
			Date:     draft.Date,
			Time:     selected,
			Status:   constvars.AppointmentStatusPending,
			Value:    clinic.PricePerSession,
			Notes:    draft.Notes,
		})
	}

	created, err := uc.AppointmentDataClient.CreateBulk(ctx, session.AccessToken, pending)
	if err != nil {
		uc.Log.Error("bookingUsecase.Submit error creating appointments",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, uc.keepDraft(ctx, key, draft, err)
	}

	total := draft.Total(clinic.PricePerSession)
	draft.Reset()
	if err := uc.RedisRepository.Delete(ctx, key); err != nil {
		uc.Log.Warn("bookingUsecase.Submit error deleting draft",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	uc.Log.Info("bookingUsecase.Submit succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, len(created)),
	)
	return &responses.SubmitBooking{
		Appointments: created,
		Total:        total.StringFixed(2),
	}, nil
}

// keepDraft records cause on the draft and stores it again. cause is
// returned unchanged.
func (uc *bookingUsecase) keepDraft(ctx context.Context, key string, draft *Draft, cause error) error {
	draft.Error = exceptions.ClientMessageOf(cause)
	if err := uc.saveDraft(context.WithoutCancel(ctx), key, draft); err != nil {
		uc.Log.Warn("bookingUsecase.keepDraft error storing draft",
			zap.String(constvars.LoggingRedisKey, key),
			zap.Error(err),
		)
	}
	return cause
}
