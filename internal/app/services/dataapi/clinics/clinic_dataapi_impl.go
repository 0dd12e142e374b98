package dataapi_clinics

import (
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/app/services/dataapi"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"go.uber.org/zap"
)

const clinicColumns = "id,owner_id,name,description,specialty,neighborhood,city,state,price_per_session,image_url,active"

type clinicDataClient struct {
	client *dataapi.Client
	Log    *zap.Logger
}

func NewClinicDataClient(client *dataapi.Client, logger *zap.Logger) contracts.ClinicDataClient {
	return &clinicDataClient{
		client: client,
		Log:    logger,
	}
}

// sanitizeSearchTerm drops characters with meaning inside PostgREST filter
// expressions.
func sanitizeSearchTerm(term string) string {
	return strings.TrimSpace(strings.NewReplacer(",", " ", "(", " ", ")", " ", "*", " ").Replace(term))
}

// BuildSearchQuery turns listing filters into PostgREST query parameters.
// Only active listings are returned.
func BuildSearchQuery(filter models.ClinicFilter) url.Values {
	query := url.Values{}
	query.Set("select", clinicColumns)
	query.Set("active", dataapi.Eq("true"))

	if term := sanitizeSearchTerm(filter.Query); term != "" {
		query.Set("or", fmt.Sprintf("(name.ilike.*%[1]s*,description.ilike.*%[1]s*,neighborhood.ilike.*%[1]s*)", term))
	}
	if city := sanitizeSearchTerm(filter.City); city != "" {
		query.Set("city", "ilike.*"+city+"*")
	}
	if filter.State != "" {
		query.Set("state", dataapi.Eq(strings.ToUpper(filter.State)))
	}
	if specialty := sanitizeSearchTerm(filter.Specialty); specialty != "" {
		query.Set("specialty", "ilike.*"+specialty+"*")
	}
	if filter.MinPrice != nil {
		query.Add("price_per_session", dataapi.Gte(filter.MinPrice.String()))
	}
	if filter.MaxPrice != nil {
		query.Add("price_per_session", dataapi.Lte(filter.MaxPrice.String()))
	}
	query.Set("order", "name.asc")
	return query
}

func (c *clinicDataClient) Search(ctx context.Context, accessToken string, filter models.ClinicFilter) ([]models.Clinic, int, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("clinicDataClient.Search called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Any(constvars.LoggingQueryParamsKey, filter),
	)

	var clinics []models.Clinic
	resp, err := c.client.Do(ctx, "clinicDataClient.Search", dataapi.Request{
		Method:      constvars.MethodGet,
		Table:       constvars.TableClinics,
		Query:       BuildSearchQuery(filter),
		AccessToken: accessToken,
		Prefer:      []string{constvars.PreferCountExact},
		Range:       dataapi.RangeHeader(filter.Page, filter.PageSize),
	}, &clinics)
	if err != nil {
		return nil, 0, err
	}
	if clinics == nil {
		clinics = []models.Clinic{}
	}

	total := resp.Total
	if total < 0 {
		total = len(clinics)
	}

	c.Log.Info("clinicDataClient.Search succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(clinics)),
	)
	return clinics, total, nil
}

func (c *clinicDataClient) FindByID(ctx context.Context, accessToken, clinicID string) (*models.Clinic, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("clinicDataClient.FindByID called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)

	query := url.Values{}
	query.Set("select", clinicColumns)
	query.Set("id", dataapi.Eq(clinicID))

	var clinics []models.Clinic
	_, err := c.client.Do(ctx, "clinicDataClient.FindByID", dataapi.Request{
		Method:      constvars.MethodGet,
		Table:       constvars.TableClinics,
		Query:       query,
		AccessToken: accessToken,
	}, &clinics)
	if err != nil {
		return nil, err
	}
	if len(clinics) == 0 {
		return nil, exceptions.ErrNoDataAPIResource(errors.New("clinic not found"), constvars.TableClinics)
	}

	c.Log.Info("clinicDataClient.FindByID succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingClinicIDKey, clinicID),
	)
	return &clinics[0], nil
}

func (c *clinicDataClient) FindByOwner(ctx context.Context, accessToken, ownerID string) ([]models.Clinic, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("clinicDataClient.FindByOwner called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, ownerID),
	)

	query := url.Values{}
	query.Set("select", clinicColumns)
	query.Set("owner_id", dataapi.Eq(ownerID))
	query.Set("order", "name.asc")

	var clinics []models.Clinic
	_, err := c.client.Do(ctx, "clinicDataClient.FindByOwner", dataapi.Request{
		Method:      constvars.MethodGet,
		Table:       constvars.TableClinics,
		Query:       query,
		AccessToken: accessToken,
	}, &clinics)
	if err != nil {
		return nil, err
	}
	if clinics == nil {
		clinics = []models.Clinic{}
	}

	c.Log.Info("clinicDataClient.FindByOwner succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingResponseLengthKey, len(clinics)),
	)
	return clinics, nil
}
