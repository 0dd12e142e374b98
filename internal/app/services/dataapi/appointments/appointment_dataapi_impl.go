package dataapi_appointments

import (
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/app/services/dataapi"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/url"

	"go.uber.org/zap"
)

const appointmentColumns = "id,clinic_id,user_id,date,time,status,value,notes,created_at"

type appointmentDataClient struct {
	client *dataapi.Client
	Log    *zap.Logger
}

func NewAppointmentDataClient(client *dataapi.Client, logger *zap.Logger) contracts.AppointmentDataClient {
	return &appointmentDataClient{
		client: client,
		Log:    logger,
	}
}

// BuildFindAllQuery turns a filter into PostgREST query parameters.
func BuildFindAllQuery(filter models.AppointmentFilter) url.Values {
	query := url.Values{}
	query.Set("select", appointmentColumns)
	switch len(filter.ClinicIDs) {
	case 0:
	case 1:
		query.Set("clinic_id", dataapi.Eq(filter.ClinicIDs[0]))
	default:
		query.Set("clinic_id", dataapi.In(filter.ClinicIDs))
	}
	if filter.UserID != "" {
		query.Set("user_id", dataapi.Eq(filter.UserID))
	}
	if filter.Date != "" {
		query.Add("date", dataapi.Eq(filter.Date))
	}
	if filter.DateFrom != "" {
		query.Add("date", dataapi.Gte(filter.DateFrom))
	}
	if filter.DateTo != "" {
		query.Add("date", dataapi.Lte(filter.DateTo))
	}
	if filter.Status != "" {
		query.Set("status", dataapi.Eq(filter.Status))
	}
	query.Set("order", "date.asc,time.asc")
	return query
}

func (c *appointmentDataClient) FindAll(ctx context.Context, accessToken string, filter models.AppointmentFilter) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("appointmentDataClient.FindAll called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter),
	)

	var appointments []models.Appointment
	_, err := c.client.Do(ctx, "appointmentDataClient.FindAll", dataapi.Request{
		Method:      constvars.MethodGet,
		Table:       constvars.TableAppointments,
		Query:       BuildFindAllQuery(filter),
		AccessToken: accessToken,
	}, &appointments)
	if err != nil {
		return nil, err
	}
	if appointments == nil {
		appointments = []models.Appointment{}
	}

	c.Log.Info("appointmentDataClient.FindAll succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, len(appointments)),
	)
	return appointments, nil
}

func (c *appointmentDataClient) FindByID(ctx context.Context, accessToken, appointmentID string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("appointmentDataClient.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)

	query := url.Values{}
	query.Set("select", appointmentColumns)
	query.Set("id", dataapi.Eq(appointmentID))

	var appointments []models.Appointment
	_, err := c.client.Do(ctx, "appointmentDataClient.FindByID", dataapi.Request{
		Method:      constvars.MethodGet,
		Table:       constvars.TableAppointments,
		Query:       query,
		AccessToken: accessToken,
	}, &appointments)
	if err != nil {
		return nil, err
	}
	if len(appointments) == 0 {
		return nil, exceptions.ErrNoDataAPIResource(errors.New("appointment not found"), constvars.TableAppointments)
	}

	c.Log.Info("appointmentDataClient.FindByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingStatusKey, appointments[0].Status),
	)
	return &appointments[0], nil
}

// CreateBulk inserts every appointment in one request; the data API applies
// the batch atomically.
func (c *appointmentDataClient) CreateBulk(ctx context.Context, accessToken string, appointments []models.Appointment) ([]models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("appointmentDataClient.CreateBulk called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, len(appointments)),
	)

	var created []models.Appointment
	_, err := c.client.Do(ctx, "appointmentDataClient.CreateBulk", dataapi.Request{
		Method:      constvars.MethodPost,
		Table:       constvars.TableAppointments,
		AccessToken: accessToken,
		Body:        appointments,
		Prefer:      []string{constvars.PreferReturnRepresentation},
	}, &created)
	if err != nil {
		return nil, err
	}

	c.Log.Info("appointmentDataClient.CreateBulk succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingAppointmentCountKey, len(created)),
	)
	return created, nil
}

func (c *appointmentDataClient) UpdateStatus(ctx context.Context, accessToken, appointmentID, status string) (*models.Appointment, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("appointmentDataClient.UpdateStatus called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
		zap.String(constvars.LoggingNextStatusKey, status),
	)

	query := url.Values{}
	query.Set("id", dataapi.Eq(appointmentID))

	var updated []models.Appointment
	_, err := c.client.Do(ctx, "appointmentDataClient.UpdateStatus", dataapi.Request{
		Method:      constvars.MethodPatch,
		Table:       constvars.TableAppointments,
		Query:       query,
		AccessToken: accessToken,
		Body:        map[string]string{"status": status},
		Prefer:      []string{constvars.PreferReturnRepresentation},
	}, &updated)
	if err != nil {
		return nil, err
	}
	if len(updated) == 0 {
		return nil, exceptions.ErrNoDataAPIResource(errors.New("no appointment updated"), constvars.TableAppointments)
	}

	c.Log.Info("appointmentDataClient.UpdateStatus succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingAppointmentIDKey, appointmentID),
	)
	return &updated[0], nil
}
