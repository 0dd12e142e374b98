package middlewares

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/dto/responses"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeAuthUsecase struct {
	sessions map[string]*models.Session
}

func (f *fakeAuthUsecase) Signup(ctx context.Context, request *requests.Signup) (*responses.Signup, error) {
	return nil, nil
}

func (f *fakeAuthUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	return nil, nil
}

func (f *fakeAuthUsecase) Logout(ctx context.Context, session *models.Session) error {
	return nil
}

func (f *fakeAuthUsecase) RecoverPassword(ctx context.Context, request *requests.RecoverPassword) error {
	return nil
}

func (f *fakeAuthUsecase) ResolveSession(ctx context.Context, token string) (*models.Session, error) {
	session, ok := f.sessions[token]
	if !ok {
		return nil, exceptions.ErrTokenInvalidOrExpired(errors.New("unknown token"))
	}
	return session, nil
}

func newTestMiddlewares() *Middlewares {
	return NewMiddlewares(
		zap.NewNop(),
		&fakeAuthUsecase{sessions: map[string]*models.Session{"good": {SessionID: "s1", UserID: "u1"}}},
		&config.InternalConfig{App: config.App{RequestTimeoutInSeconds: 5, RequestBodyLimitInMegabyte: 1, MaxRequests: 2}},
	)
}

func sessionEcho(t *testing.T, wantUser string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, _ := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
		if wantUser == "" {
			assert.Nil(t, session)
		} else if assert.NotNil(t, session) {
			assert.Equal(t, wantUser, session.UserID)
		}
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestAuthenticate(t *testing.T) {
	m := newTestMiddlewares()

	tests := []struct {
		name   string
		header string
		code   int
	}{
		{name: "Valid Token", header: "Bearer good", code: http.StatusNoContent},
		{name: "Missing Header", header: "", code: http.StatusUnauthorized},
		{name: "Wrong Scheme", header: "Basic good", code: http.StatusUnauthorized},
		{name: "Unknown Token", header: "Bearer bad", code: http.StatusUnauthorized},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				req.Header.Set(constvars.HeaderAuthorization, tt.header)
			}
			rr := httptest.NewRecorder()

			want := ""
			if tt.code == http.StatusNoContent {
				want = "u1"
			}
			m.Authenticate(sessionEcho(t, want)).ServeHTTP(rr, req)
			assert.Equal(t, tt.code, rr.Code)
		})
	}
}

func TestOptionalAuthenticate(t *testing.T) {
	m := newTestMiddlewares()

	t.Run("Anonymous", func(t *testing.T) {
		rr := httptest.NewRecorder()
		m.OptionalAuthenticate(sessionEcho(t, "")).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Invalid Token Passes Anonymously", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer bad")
		rr := httptest.NewRecorder()
		m.OptionalAuthenticate(sessionEcho(t, "")).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Valid Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderAuthorization, "Bearer good")
		rr := httptest.NewRecorder()
		m.OptionalAuthenticate(sessionEcho(t, "u1")).ServeHTTP(rr, req)
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})
}

func TestRequestIDMiddleware(t *testing.T) {
	m := newTestMiddlewares()
	var seen string
	handler := m.RequestIDMiddleware(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = r.Context().Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	}))

	t.Run("Client Supplied", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set(constvars.HeaderXRequestID, "abc-123")
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		assert.Equal(t, "abc-123", seen)
		assert.Equal(t, "abc-123", rr.Header().Get(constvars.HeaderXRequestID))
	})

	t.Run("Generated", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.True(t, strings.HasPrefix(seen, constvars.REQUEST_ID_PREFIX))
		assert.Equal(t, seen, rr.Header().Get(constvars.HeaderXRequestID))
	})
}

func TestErrorHandler(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.ErrorHandler(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.Contains(t, rr.Body.String(), `"success":false`)
}

func TestBodyLimit(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.BodyLimit(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, err := io.ReadAll(r.Body); err != nil {
			w.WriteHeader(http.StatusRequestEntityTooLarge)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}))

	t.Run("Within Limit", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("{}")))
		assert.Equal(t, http.StatusNoContent, rr.Code)
	})

	t.Run("Declared Length Too Large", func(t *testing.T) {
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("a", 2<<20))))
		assert.Equal(t, http.StatusRequestEntityTooLarge, rr.Code)
		assert.Contains(t, rr.Body.String(), constvars.ErrClientRequestTooLarge)
	})
}

func TestRateLimiter(t *testing.T) {
	m := newTestMiddlewares()
	handler := m.RateLimiter()(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rr := httptest.NewRecorder()
		handler.ServeHTTP(rr, req)
		codes = append(codes, rr.Code)
	}
	assert.Equal(t, []int{http.StatusNoContent, http.StatusNoContent, http.StatusTooManyRequests}, codes)
}
