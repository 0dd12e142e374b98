package cep

import (
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"clinicroom-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type viaCEPResponse struct {
	CEP         string      `json:"cep"`
	Logradouro  string      `json:"logradouro"`
	Complemento string      `json:"complemento"`
	Bairro      string      `json:"bairro"`
	Localidade  string      `json:"localidade"`
	UF          string      `json:"uf"`
	Erro        interface{} `json:"erro,omitempty"`
}

// notFound covers both {"erro": true} and {"erro": "true"}.
func (r viaCEPResponse) notFound() bool {
	switch v := r.Erro.(type) {
	case bool:
		return v
	case string:
		return v == "true"
	default:
		return false
	}
}

type viaCEPService struct {
	Client    *http.Client
	BaseUrl   string
	RedisRepo contracts.RedisRepository
	CacheTTL  time.Duration
	Log       *zap.Logger
}

func NewViaCEPService(baseUrl string, redisRepo contracts.RedisRepository, cacheTTL time.Duration, logger *zap.Logger) contracts.CEPService {
	return &viaCEPService{
		Client:    &http.Client{Timeout: 5 * time.Second},
		BaseUrl:   strings.TrimSuffix(baseUrl, "/"),
		RedisRepo: redisRepo,
		CacheTTL:  cacheTTL,
		Log:       logger,
	}
}

// Lookup resolves a CEP to an address, serving repeated lookups from redis.
func (s *viaCEPService) Lookup(ctx context.Context, cep string) (*models.Address, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	digits := utils.NormalizeCEP(cep)
	s.Log.Info("viaCEPService.Lookup called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCEPKey, digits),
	)

	if len(digits) != 8 {
		return nil, exceptions.ErrURLParamValidation(errors.New("cep must have 8 digits"), constvars.URLParamCEP)
	}

	cacheKey := constvars.RedisKeyCEPPrefix + digits
	cached := new(models.Address)
	found, err := s.RedisRepo.GetInto(ctx, cacheKey, cached)
	if err != nil {
		s.Log.Warn("viaCEPService.Lookup cache read failed, falling back to upstream",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	} else if found {
		s.Log.Info("viaCEPService.Lookup served from cache",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingCEPKey, digits),
		)
		return cached, nil
	}

	url := fmt.Sprintf("%s/%s/json/", s.BaseUrl, digits)
	req, err := http.NewRequestWithContext(ctx, constvars.MethodGet, url, nil)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)

	resp, err := s.Client.Do(req)
	if err != nil {
		s.Log.Error("viaCEPService.Lookup error sending http request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCEPLookup(err, digits)
	}
	defer resp.Body.Close()

	if resp.StatusCode == constvars.StatusBadRequest {
		return nil, exceptions.ErrCEPNotFound(nil, digits)
	}
	if resp.StatusCode != constvars.StatusOK {
		bodyBytes, _ := io.ReadAll(resp.Body)
		s.Log.Error("viaCEPService.Lookup upstream returned non-200",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.ByteString(constvars.LoggingResponseKey, bodyBytes),
		)
		return nil, exceptions.ErrCEPLookup(fmt.Errorf("status code %d", resp.StatusCode), digits)
	}

	var payload viaCEPResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, exceptions.ErrCEPLookup(err, digits)
	}
	if payload.notFound() {
		return nil, exceptions.ErrCEPNotFound(nil, digits)
	}

	address := &models.Address{
		CEP:          digits,
		Street:       payload.Logradouro,
		Complement:   payload.Complemento,
		Neighborhood: payload.Bairro,
		City:         payload.Localidade,
		State:        payload.UF,
	}

	if err := s.RedisRepo.Set(ctx, cacheKey, address, s.CacheTTL); err != nil {
		s.Log.Warn("viaCEPService.Lookup cache write failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	s.Log.Info("viaCEPService.Lookup succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCEPKey, digits),
	)
	return address, nil
}
