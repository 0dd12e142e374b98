package cep

import (
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	redisrepo "clinicroom-service/internal/app/services/shared/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestService(t *testing.T, handler http.HandlerFunc) (*viaCEPService, *int32) {
	t.Helper()
	var hits int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&hits, 1)
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := NewViaCEPService(server.URL, redisrepo.NewRedisRepository(client), time.Hour, zap.NewNop()).(*viaCEPService)
	return svc, &hits
}

func TestViaCEPServiceLookup(t *testing.T) {
	ctx := context.Background()

	t.Run("Found And Cached", func(t *testing.T) {
		svc, hits := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/01001000/json/", r.URL.Path)
			w.Header().Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
			w.Write([]byte(`{"cep":"01001-000","logradouro":"Praca da Se","complemento":"lado impar","bairro":"Se","localidade":"Sao Paulo","uf":"SP"}`))
		})

		address, err := svc.Lookup(ctx, "01001-000")
		require.NoError(t, err)
		assert.Equal(t, "Sao Paulo", address.City)
		assert.Equal(t, "SP", address.State)
		assert.Equal(t, "01001000", address.CEP)

		again, err := svc.Lookup(ctx, "01001000")
		require.NoError(t, err)
		assert.Equal(t, address, again)
		assert.Equal(t, int32(1), atomic.LoadInt32(hits))
	})

	t.Run("Not Found Flag", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"erro": "true"}`))
		})

		_, err := svc.Lookup(ctx, "99999-999")
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})

	t.Run("Malformed CEP Never Hits Upstream", func(t *testing.T) {
		svc, hits := newTestService(t, func(w http.ResponseWriter, r *http.Request) {})
		_, err := svc.Lookup(ctx, "123")
		assert.Error(t, err)
		assert.Equal(t, int32(0), atomic.LoadInt32(hits))
	})

	t.Run("Upstream Failure", func(t *testing.T) {
		svc, _ := newTestService(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
		_, err := svc.Lookup(ctx, "01001000")
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
	})
}
