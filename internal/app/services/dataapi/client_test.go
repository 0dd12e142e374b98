package dataapi

import (
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type row struct {
	ID string `json:"id"`
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewClient(server.URL+"/", "service-key", 5*time.Second, zap.NewNop())
}

func TestClientDo(t *testing.T) {
	ctx := context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")

	t.Run("Headers And Query", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/clinics", r.URL.Path)
			assert.Equal(t, "eq.c1", r.URL.Query().Get("id"))
			assert.Equal(t, "service-key", r.Header.Get(constvars.HeaderDataAPIKey))
			assert.Equal(t, "Bearer user-token", r.Header.Get(constvars.HeaderAuthorization))
			assert.Equal(t, "0-11", r.Header.Get(constvars.HeaderRange))
			assert.Equal(t, "items", r.Header.Get(constvars.HeaderRangeUnit))
			assert.Equal(t, constvars.PreferCountExact, r.Header.Get(constvars.HeaderPrefer))
			w.Header().Set(constvars.HeaderContentRange, "0-0/57")
			w.Write([]byte(`[{"id":"c1"}]`))
		})

		var rows []row
		resp, err := client.Do(ctx, "test", Request{
			Method:      constvars.MethodGet,
			Table:       constvars.TableClinics,
			Query:       url.Values{"id": []string{Eq("c1")}},
			AccessToken: "user-token",
			Prefer:      []string{constvars.PreferCountExact},
			Range:       RangeHeader(1, 12),
		}, &rows)
		require.NoError(t, err)
		assert.Equal(t, 57, resp.Total)
		require.Len(t, rows, 1)
		assert.Equal(t, "c1", rows[0].ID)
	})

	t.Run("Service Key When Anonymous", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "Bearer service-key", r.Header.Get(constvars.HeaderAuthorization))
			w.Write([]byte(`[]`))
		})

		resp, err := client.Do(ctx, "test", Request{Method: constvars.MethodGet, Table: constvars.TableClinics}, nil)
		require.NoError(t, err)
		assert.Equal(t, -1, resp.Total)
	})

	t.Run("Error Mapping", func(t *testing.T) {
		cases := []struct {
			name       string
			method     string
			status     int
			wantStatus int
		}{
			{"Unauthorized", constvars.MethodGet, http.StatusUnauthorized, constvars.StatusUnauthorized},
			{"Forbidden", constvars.MethodPatch, http.StatusForbidden, constvars.StatusForbidden},
			{"Create Failure", constvars.MethodPost, http.StatusConflict, constvars.StatusBadGateway},
			{"Read Failure", constvars.MethodGet, http.StatusInternalServerError, constvars.StatusBadGateway},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
					w.WriteHeader(tc.status)
					w.Write([]byte(`{"code":"PGRST","message":"boom"}`))
				})

				_, err := client.Do(ctx, "test", Request{Method: tc.method, Table: constvars.TableAppointments, Body: map[string]string{"a": "b"}}, nil)
				var customErr *exceptions.CustomError
				require.True(t, errors.As(err, &customErr))
				assert.Equal(t, tc.wantStatus, customErr.StatusCode)
			})
		}
	})

	t.Run("Undecodable Body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{not json`))
		})

		var rows []row
		_, err := client.Do(ctx, "test", Request{Method: constvars.MethodGet, Table: constvars.TableClinics}, &rows)
		assert.Error(t, err)
	})
}

func TestParseContentRangeTotal(t *testing.T) {
	total, ok := parseContentRangeTotal("0-11/57")
	assert.True(t, ok)
	assert.Equal(t, 57, total)

	total, ok = parseContentRangeTotal("*/0")
	assert.True(t, ok)
	assert.Equal(t, 0, total)

	_, ok = parseContentRangeTotal("0-11/*")
	assert.False(t, ok)

	_, ok = parseContentRangeTotal("")
	assert.False(t, ok)
}

func TestFilterHelpers(t *testing.T) {
	assert.Equal(t, "eq.x", Eq("x"))
	assert.Equal(t, "in.(a,b)", In([]string{"a", "b"}))
	assert.Equal(t, "gte.2024-01-01", Gte("2024-01-01"))
	assert.Equal(t, "lte.2024-01-31", Lte("2024-01-31"))
	assert.Equal(t, "0-11", RangeHeader(0, 12))
	assert.Equal(t, "24-35", RangeHeader(3, 12))
}
