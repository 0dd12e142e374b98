package appointments

import (
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/app/services/core/availability"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"errors"
	"strconv"
	"sync"
	"time"

	"go.uber.org/zap"
)

type AggregateParams struct {
	AccessToken string
	ClinicID    string
	UserID      string
	// ClinicOverride takes precedence over ClinicID when set.
	ClinicOverride string
	DateFrom       string
	DateTo         string
	Period         string
	Weekday        string
	Status         string
}

func (p AggregateParams) targetClinic() string {
	if p.ClinicOverride != "" {
		return p.ClinicOverride
	}
	return p.ClinicID
}

type AggregateResult struct {
	ClinicIDs    []string
	Stats        models.AppointmentStats
	Appointments []models.Appointment
	Error        string
}

// Aggregator loads the appointments of one clinic, or of every clinic a user
// owns, and keeps the last result with its counts by status.
type Aggregator struct {
	AppointmentDataClient contracts.AppointmentDataClient
	ClinicDataClient      contracts.ClinicDataClient
	Location              *time.Location
	Log                   *zap.Logger

	mu     sync.RWMutex
	params AggregateParams
	loaded bool
	result AggregateResult
}

func NewAggregator(
	appointmentDataClient contracts.AppointmentDataClient,
	clinicDataClient contracts.ClinicDataClient,
	location *time.Location,
	logger *zap.Logger,
) *Aggregator {
	if location == nil {
		location = time.Local
	}
	return &Aggregator{
		AppointmentDataClient: appointmentDataClient,
		ClinicDataClient:      clinicDataClient,
		Location:              location,
		Log:                   logger,
		result:                emptyResult(""),
	}
}

func emptyResult(message string) AggregateResult {
	return AggregateResult{
		ClinicIDs:    []string{},
		Appointments: []models.Appointment{},
		Error:        message,
	}
}

// Load fetches with params and replaces the snapshot. On failure the
// snapshot is reset to zero counts carrying the error message, and the
// error is returned.
func (a *Aggregator) Load(ctx context.Context, params AggregateParams) (AggregateResult, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	a.Log.Info("Aggregator.Load called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, params.targetClinic()),
		zap.String(constvars.LoggingUserIDKey, params.UserID),
	)

	a.mu.Lock()
	a.params = params
	a.loaded = true
	a.mu.Unlock()

	result, err := a.fetch(ctx, params)
	if err != nil {
		a.Log.Error("Aggregator.Load error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		result = emptyResult(exceptions.ClientMessageOf(err))
	}

	a.mu.Lock()
	a.result = result
	a.mu.Unlock()

	if err != nil {
		return result, err
	}

	a.Log.Info("Aggregator.Load succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, result.Stats.Total),
	)
	return result, nil
}

// Reload repeats the last Load.
func (a *Aggregator) Reload(ctx context.Context) (AggregateResult, error) {
	a.mu.RLock()
	params, loaded := a.params, a.loaded
	a.mu.RUnlock()

	if !loaded {
		return a.Load(ctx, AggregateParams{})
	}
	return a.Load(ctx, params)
}

// SetAccessToken replaces the token used by the next Reload.
func (a *Aggregator) SetAccessToken(accessToken string) {
	a.mu.Lock()
	a.params.AccessToken = accessToken
	a.mu.Unlock()
}

func (a *Aggregator) Snapshot() AggregateResult {
	a.mu.RLock()
	defer a.mu.RUnlock()
	return a.result
}

func (a *Aggregator) fetch(ctx context.Context, params AggregateParams) (AggregateResult, error) {
	clinicID := params.targetClinic()
	if clinicID == "" && params.UserID == "" {
		return AggregateResult{}, exceptions.ErrMissingAggregateTarget(errors.New("no clinic id or user id"))
	}

	var clinicIDs []string
	if clinicID != "" {
		clinicIDs = []string{clinicID}
	} else {
		owned, err := a.ClinicDataClient.FindByOwner(ctx, params.AccessToken, params.UserID)
		if err != nil {
			return AggregateResult{}, err
		}
		for _, clinic := range owned {
			clinicIDs = append(clinicIDs, clinic.ID)
		}
		if len(clinicIDs) == 0 {
			return emptyResult(""), nil
		}
	}

	fetched, err := a.AppointmentDataClient.FindAll(ctx, params.AccessToken, models.AppointmentFilter{
		ClinicIDs: clinicIDs,
		DateFrom:  params.DateFrom,
		DateTo:    params.DateTo,
		Status:    params.Status,
	})
	if err != nil {
		return AggregateResult{}, err
	}

	appointments := make([]models.Appointment, 0, len(fetched))
	for _, appointment := range fetched {
		if params.Period != "" && PeriodOf(appointment.Time) != params.Period {
			continue
		}
		if params.Weekday != "" {
			weekday, err := availability.ResolveWeekday(appointment.Date, a.Location)
			if err != nil || weekday != params.Weekday {
				continue
			}
		}
		appointments = append(appointments, appointment)
	}

	return AggregateResult{
		ClinicIDs:    clinicIDs,
		Stats:        CountByStatus(appointments),
		Appointments: appointments,
	}, nil
}

// CountByStatus partitions appointments by status. Unknown statuses only
// count towards the total.
func CountByStatus(appointments []models.Appointment) models.AppointmentStats {
	stats := models.AppointmentStats{Total: len(appointments)}
	for _, appointment := range appointments {
		switch appointment.Status {
		case constvars.AppointmentStatusPending:
			stats.Pending++
		case constvars.AppointmentStatusConfirmed:
			stats.Confirmed++
		case constvars.AppointmentStatusCancelled:
			stats.Cancelled++
		case constvars.AppointmentStatusCompleted:
			stats.Completed++
		}
	}
	return stats
}

// PeriodOf buckets a time of day: manha before 12:00, tarde until 17:59 and
// noite from 18:00. Unparsable times belong to no period.
func PeriodOf(clockValue string) string {
	normalized := availability.NormalizeTime(clockValue)
	if len(normalized) < 2 {
		return ""
	}
	hour, err := strconv.Atoi(normalized[:2])
	if err != nil {
		return ""
	}
	switch {
	case hour < 12:
		return constvars.PeriodManha
	case hour < 18:
		return constvars.PeriodTarde
	default:
		return constvars.PeriodNoite
	}
}
