package dataapi_auth

import (
	"bytes"
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	operationSignup  = "signup"
	operationLogin   = "login"
	operationRefresh = "refresh"
	operationLogout  = "logout"
	operationRecover = "recover"
)

// providerError covers the error bodies the auth provider answers with.
// Older releases use error/error_description, newer ones msg.
type providerError struct {
	Code             interface{} `json:"code"`
	Msg              string      `json:"msg"`
	Message          string      `json:"message"`
	ErrorCode        string      `json:"error"`
	ErrorDescription string      `json:"error_description"`
}

func (e providerError) Error() string {
	switch {
	case e.Msg != "":
		return e.Msg
	case e.ErrorDescription != "":
		return e.ErrorDescription
	case e.Message != "":
		return e.Message
	default:
		return e.ErrorCode
	}
}

type authProviderClient struct {
	BaseUrl    string
	ServiceKey string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewAuthProviderClient(baseUrl, serviceKey string, timeout time.Duration, logger *zap.Logger) contracts.AuthProviderClient {
	return &authProviderClient{
		BaseUrl:    strings.TrimSuffix(baseUrl, "/"),
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        logger,
	}
}

func (c *authProviderClient) Signup(ctx context.Context, email, password string, metadata map[string]interface{}) (*models.AuthUser, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("authProviderClient.Signup called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	body := map[string]interface{}{
		"email":    email,
		"password": password,
		"data":     metadata,
	}

	// depending on the email confirmation setting the provider answers with
	// either a bare user or a session wrapping it
	var raw struct {
		models.AuthUser
		User *models.AuthUser `json:"user"`
	}
	err := c.send(ctx, operationSignup, constvars.MethodPost, "/signup", "", body, &raw)
	if err != nil {
		return nil, err
	}

	user := raw.AuthUser
	if raw.User != nil && raw.User.ID != "" {
		user = *raw.User
	}
	if user.ID == "" {
		return nil, exceptions.ErrDecodeResponse(errors.New("signup response carries no user id"), operationSignup)
	}

	c.Log.Info("authProviderClient.Signup succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return &user, nil
}

func (c *authProviderClient) Login(ctx context.Context, email, password string) (*models.AuthGrant, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("authProviderClient.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	body := map[string]string{
		"email":    email,
		"password": password,
	}

	grant := new(models.AuthGrant)
	err := c.send(ctx, operationLogin, constvars.MethodPost, "/token?grant_type=password", "", body, grant)
	if err != nil {
		return nil, err
	}
	if grant.AccessToken == "" || grant.User.ID == "" {
		return nil, exceptions.ErrDecodeResponse(errors.New("login response carries no access token"), operationLogin)
	}

	c.Log.Info("authProviderClient.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, grant.User.ID),
	)
	return grant, nil
}

func (c *authProviderClient) Refresh(ctx context.Context, refreshToken string) (*models.AuthGrant, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("authProviderClient.Refresh called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	grant := new(models.AuthGrant)
	err := c.send(ctx, operationRefresh, constvars.MethodPost, "/token?grant_type=refresh_token", "", map[string]string{"refresh_token": refreshToken}, grant)
	if err != nil {
		return nil, err
	}
	if grant.AccessToken == "" {
		return nil, exceptions.ErrDecodeResponse(errors.New("refresh response carries no access token"), operationRefresh)
	}

	c.Log.Info("authProviderClient.Refresh succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, grant.User.ID),
	)
	return grant, nil
}

func (c *authProviderClient) Logout(ctx context.Context, accessToken string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("authProviderClient.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := c.send(ctx, operationLogout, constvars.MethodPost, "/logout", accessToken, nil, nil)
	if err != nil {
		return err
	}

	c.Log.Info("authProviderClient.Logout succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (c *authProviderClient) Recover(ctx context.Context, email string) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	c.Log.Info("authProviderClient.Recover called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	err := c.send(ctx, operationRecover, constvars.MethodPost, "/recover", "", map[string]string{"email": email}, nil)
	if err != nil {
		return err
	}

	c.Log.Info("authProviderClient.Recover succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (c *authProviderClient) send(ctx context.Context, operation, method, path, accessToken string, payload, out interface{}) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			return exceptions.ErrCannotMarshalJSON(err)
		}
		body = bytes.NewReader(encoded)
	}

	endpoint := c.BaseUrl + path
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		c.Log.Error("authProviderClient error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOperationKey, operation),
			zap.Error(err),
		)
		return exceptions.ErrCreateHTTPRequest(err)
	}

	token := accessToken
	if token == "" {
		token = c.ServiceKey
	}
	req.Header.Set(constvars.HeaderDataAPIKey, c.ServiceKey)
	req.Header.Set(constvars.HeaderAuthorization, constvars.BearerPrefix+token)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if payload != nil {
		req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		c.Log.Error("authProviderClient error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOperationKey, operation),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return exceptions.ErrServerDeadlineExceeded(err)
		}
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		providerErr := providerError{ErrorCode: http.StatusText(resp.StatusCode)}
		if len(bodyBytes) > 0 {
			json.Unmarshal(bodyBytes, &providerErr)
		}
		c.Log.Error("authProviderClient provider rejected request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingOperationKey, operation),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(providerErr),
		)
		return exceptions.ErrAuthProviderRejected(providerErr, mapStatusCode(operation, resp.StatusCode), operation)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			c.Log.Error("authProviderClient error decoding response",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingOperationKey, operation),
				zap.Error(err),
			)
			return exceptions.ErrDecodeResponse(err, operation)
		}
	}
	return nil
}

// mapStatusCode keeps 4xx answers as client errors and folds provider
// outages into a bad gateway.
func mapStatusCode(operation string, statusCode int) int {
	switch {
	case (operation == operationLogin || operation == operationRefresh) && statusCode == constvars.StatusBadRequest:
		return constvars.StatusUnauthorized
	case statusCode == constvars.StatusTooManyRequests:
		return constvars.StatusTooManyRequests
	case statusCode >= 400 && statusCode < 500:
		return statusCode
	default:
		return constvars.StatusBadGateway
	}
}

