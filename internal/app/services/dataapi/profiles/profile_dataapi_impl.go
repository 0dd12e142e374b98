package dataapi_profiles

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

type profileDataClient struct {
	client *dataapi.Client
	Log    *zap.Logger
}

func NewProfileDataClient(client *dataapi.Client, logger *zap.Logger) contracts.ProfileDataClient {
	return &profileDataClient{
		client: client,
		Log:    logger,
	}
}

func (c *profileDataClient) FindByID(ctx context.Context, accessToken, userID string) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("profileDataClient.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)

	query := url.Values{}
	query.Set("select", "*")
	query.Set("id", dataapi.Eq(userID))

	var profiles []models.Profile
	_, err := c.client.Do(ctx, "profileDataClient.FindByID", dataapi.Request{
		Method:      constvars.MethodGet,
		Table:       constvars.TableProfiles,
		Query:       query,
		AccessToken: accessToken,
	}, &profiles)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, exceptions.ErrNoDataAPIResource(errors.New("profile not found"), constvars.TableProfiles)
	}

	c.Log.Info("profileDataClient.FindByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return &profiles[0], nil
}

func (c *profileDataClient) Update(ctx context.Context, accessToken string, profile *models.Profile) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("profileDataClient.Update called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, profile.ID),
	)

	// email and avatar are owned by the auth provider and the avatar upload
	body := map[string]string{
		"full_name":    profile.FullName,
		"phone":        profile.Phone,
		"document":     profile.Document,
		"cep":          profile.CEP,
		"street":       profile.Street,
		"number":       profile.Number,
		"complement":   profile.Complement,
		"neighborhood": profile.Neighborhood,
		"city":         profile.City,
		"state":        profile.State,
	}
	return c.patch(ctx, "profileDataClient.Update", accessToken, profile.ID, body)
}

func (c *profileDataClient) UpdateAvatar(ctx context.Context, accessToken, userID, avatarURL string) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("profileDataClient.UpdateAvatar called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return c.patch(ctx, "profileDataClient.UpdateAvatar", accessToken, userID, map[string]string{"avatar_url": avatarURL})
}

func (c *profileDataClient) patch(ctx context.Context, caller, accessToken, userID string, body map[string]string) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	query := url.Values{}
	query.Set("id", dataapi.Eq(userID))

	var profiles []models.Profile
	_, err := c.client.Do(ctx, caller, dataapi.Request{
		Method:      constvars.MethodPatch,
		Table:       constvars.TableProfiles,
		Query:       query,
		AccessToken: accessToken,
		Body:        body,
		Prefer:      []string{constvars.PreferReturnRepresentation},
	}, &profiles)
	if err != nil {
		return nil, err
	}
	if len(profiles) == 0 {
		return nil, exceptions.ErrNoDataAPIResource(errors.New("no profile updated"), constvars.TableProfiles)
	}

	c.Log.Info(caller+" succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, userID),
	)
	return &profiles[0], nil
}
