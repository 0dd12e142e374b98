package dataapi

import (
	"bytes"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

// Client talks to the PostgREST style tables of the hosted data API. The
// service key never leaves this process; callers forward the user's own
// access token so row level security applies.
type Client struct {
	BaseUrl    string
	ServiceKey string
	HTTPClient *http.Client
	Log        *zap.Logger
}

// ErrorResponse is the error body returned by the data API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details"`
	Hint    string `json:"hint"`
}

func (e ErrorResponse) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s (%s)", e.Code, e.Message, e.Details)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

type Request struct {
	Method      string
	Table       string
	Query       url.Values
	AccessToken string
	Body        interface{}
	Prefer      []string
	// Range is an inclusive row range such as "0-11".
	Range string
}

type Response struct {
	StatusCode int
	// Total is parsed from Content-Range when count=exact was requested,
	// -1 otherwise.
	Total int
}

func NewClient(baseUrl, serviceKey string, timeout time.Duration, logger *zap.Logger) *Client {
	return &Client{
		BaseUrl:    strings.TrimSuffix(baseUrl, "/"),
		ServiceKey: serviceKey,
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        logger,
	}
}

// Do sends req and decodes a successful JSON body into out when out is not
// nil. caller names the calling method in logs.
func (c *Client) Do(ctx context.Context, caller string, req Request, out interface{}) (*Response, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	endpoint := fmt.Sprintf("%s/%s", c.BaseUrl, req.Table)
	if len(req.Query) > 0 {
		endpoint = endpoint + "?" + req.Query.Encode()
	}
	c.Log.Info(caller+" built URL",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingMethodKey, req.Method),
		zap.String(constvars.LoggingDataAPIUrlKey, endpoint),
	)

	var body io.Reader
	if req.Body != nil {
		encoded, err := json.Marshal(req.Body)
		if err != nil {
			c.Log.Error(caller+" error marshaling request body",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrCannotMarshalJSON(err)
		}
		body = bytes.NewReader(encoded)
	}

	httpReq, err := http.NewRequestWithContext(ctx, req.Method, endpoint, body)
	if err != nil {
		c.Log.Error(caller+" error creating HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	c.setHeaders(httpReq, req)

	resp, err := c.HTTPClient.Do(httpReq)
	if err != nil {
		c.Log.Error(caller+" error sending HTTP request",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		if errors.Is(err, context.DeadlineExceeded) {
			return nil, exceptions.ErrServerDeadlineExceeded(err)
		}
		return nil, exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		bodyBytes, _ := io.ReadAll(resp.Body)
		apiErr := ErrorResponse{Code: strconv.Itoa(resp.StatusCode), Message: http.StatusText(resp.StatusCode)}
		if len(bodyBytes) > 0 {
			json.Unmarshal(bodyBytes, &apiErr)
		}
		c.Log.Error(caller+" data API error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Int(constvars.LoggingStatusCodeKey, resp.StatusCode),
			zap.Error(apiErr),
		)
		return nil, c.mapError(req.Method, req.Table, resp.StatusCode, apiErr)
	}

	result := &Response{StatusCode: resp.StatusCode, Total: -1}
	if total, ok := parseContentRangeTotal(resp.Header.Get(constvars.HeaderContentRange)); ok {
		result.Total = total
	}

	if out != nil && resp.StatusCode != constvars.StatusNoContent {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil && !errors.Is(err, io.EOF) {
			c.Log.Error(caller+" error decoding response",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.Error(err),
			)
			return nil, exceptions.ErrDecodeResponse(err, req.Table)
		}
	}

	return result, nil
}

func (c *Client) setHeaders(httpReq *http.Request, req Request) {
	token := req.AccessToken
	if token == "" {
		token = c.ServiceKey
	}
	httpReq.Header.Set(constvars.HeaderDataAPIKey, c.ServiceKey)
	httpReq.Header.Set(constvars.HeaderAuthorization, constvars.BearerPrefix+token)
	httpReq.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if req.Body != nil {
		httpReq.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	}
	if len(req.Prefer) > 0 {
		httpReq.Header.Set(constvars.HeaderPrefer, strings.Join(req.Prefer, ","))
	}
	if req.Range != "" {
		httpReq.Header.Set(constvars.HeaderRangeUnit, "items")
		httpReq.Header.Set(constvars.HeaderRange, req.Range)
	}
}

func (c *Client) mapError(method, table string, statusCode int, apiErr ErrorResponse) error {
	switch statusCode {
	case constvars.StatusUnauthorized:
		return exceptions.ErrTokenInvalidOrExpired(apiErr)
	case constvars.StatusForbidden:
		return exceptions.BuildNewCustomError(apiErr, constvars.StatusForbidden, constvars.ErrClientNotAuthorized, fmt.Sprintf(constvars.ErrDevDataAPIGetResource, table))
	}

	switch method {
	case constvars.MethodPost:
		return exceptions.ErrCreateDataAPIResource(apiErr, table)
	case constvars.MethodPatch, constvars.MethodPut:
		return exceptions.ErrUpdateDataAPIResource(apiErr, table)
	default:
		return exceptions.ErrGetDataAPIResource(apiErr, table)
	}
}

// parseContentRangeTotal reads the total from "0-11/57" or "*/0".
func parseContentRangeTotal(header string) (int, bool) {
	idx := strings.LastIndex(header, "/")
	if idx < 0 || idx == len(header)-1 {
		return 0, false
	}
	total, err := strconv.Atoi(header[idx+1:])
	if err != nil {
		return 0, false
	}
	return total, true
}

// Eq builds a PostgREST equality filter value.
func Eq(value string) string {
	return "eq." + value
}

// In builds a PostgREST membership filter value.
func In(values []string) string {
	return "in.(" + strings.Join(values, ",") + ")"
}

func Gte(value string) string {
	return "gte." + value
}

func Lte(value string) string {
	return "lte." + value
}

// RangeHeader converts a 1-based page into an inclusive row range.
func RangeHeader(page, pageSize int) string {
	if page < 1 {
		page = 1
	}
	from := (page - 1) * pageSize
	return fmt.Sprintf("%d-%d", from, from+pageSize-1)
}
