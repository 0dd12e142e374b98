package dataapi_availabilities

import (
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/app/services/dataapi"
	"clinicroom-service/internal/pkg/constvars"
	"context"
	"net/url"

	"go.uber.org/zap"
)

type availabilityDataClient struct {
	client *dataapi.Client
	Log    *zap.Logger
}

func NewAvailabilityDataClient(client *dataapi.Client, logger *zap.Logger) contracts.AvailabilityDataClient {
	return &availabilityDataClient{
		client: client,
		Log:    logger,
	}
}

// FindByClinicID keeps the data API order; the first window of a weekday is
// the one honored by default.
func (c *availabilityDataClient) FindByClinicID(ctx context.Context, accessToken, clinicID string) ([]models.AvailabilityWindow, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("availabilityDataClient.FindByClinicID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	query := url.Values{}
	query.Set("select", "id,clinic_id,day,start_time,end_time")
	query.Set("clinic_id", dataapi.Eq(clinicID))
	query.Set("order", "id.asc")

	var windows []models.AvailabilityWindow
	_, err := c.client.Do(ctx, "availabilityDataClient.FindByClinicID", dataapi.Request{
		Method:      constvars.MethodGet,
		Table:       constvars.TableAvailabilityWindows,
		Query:       query,
		AccessToken: accessToken,
	}, &windows)
	if err != nil {
		return nil, err
	}
	if windows == nil {
		windows = []models.AvailabilityWindow{}
	}

	c.Log.Info("availabilityDataClient.FindByClinicID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingWindowCountKey, len(windows)),
	)
	return windows, nil
}
