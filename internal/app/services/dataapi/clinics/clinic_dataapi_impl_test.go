package dataapi_clinics

import (
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/app/services/dataapi"
	"clinicroom-service/internal/pkg/constvars"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildSearchQuery(t *testing.T) {
	minPrice := decimal.NewFromInt(100)
	maxPrice := decimal.RequireFromString("250.50")

	query := BuildSearchQuery(models.ClinicFilter{
		Query:     "fisio (centro)",
		City:      "Sao Paulo",
		State:     "sp",
		Specialty: "fisioterapia",
		MinPrice:  &minPrice,
		MaxPrice:  &maxPrice,
	})

	assert.Equal(t, "eq.true", query.Get("active"))
	assert.Equal(t, "(name.ilike.*fisio  centro*,description.ilike.*fisio  centro*,neighborhood.ilike.*fisio  centro*)", query.Get("or"))
	assert.Equal(t, "ilike.*Sao Paulo*", query.Get("city"))
	assert.Equal(t, "eq.SP", query.Get("state"))
	assert.Equal(t, "ilike.*fisioterapia*", query.Get("specialty"))
	assert.Equal(t, []string{"gte.100", "lte.250.5"}, query["price_per_session"])
}

func TestBuildSearchQueryEmptyFilter(t *testing.T) {
	query := BuildSearchQuery(models.ClinicFilter{})
	assert.Empty(t, query.Get("or"))
	assert.Empty(t, query.Get("city"))
	assert.Empty(t, query["price_per_session"])
	assert.Equal(t, "name.asc", query.Get("order"))
}

func TestClinicDataClientSearch(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/clinics", r.URL.Path)
		assert.Equal(t, "12-23", r.Header.Get(constvars.HeaderRange))
		w.Header().Set(constvars.HeaderContentRange, "12-12/13")
		w.Write([]byte(`[{"id":"c13","owner_id":"o1","name":"Sala 13","city":"Recife","state":"PE","price_per_session":120,"active":true}]`))
	}))
	defer server.Close()

	client := NewClinicDataClient(dataapi.NewClient(server.URL, "key", time.Second, zap.NewNop()), zap.NewNop())
	clinics, total, err := client.Search(context.Background(), "", models.ClinicFilter{Page: 2, PageSize: 12})
	require.NoError(t, err)
	assert.Equal(t, 13, total)
	require.Len(t, clinics, 1)
	assert.True(t, clinics[0].PricePerSession.Equal(decimal.NewFromInt(120)))
}

func TestClinicDataClientFindByOwner(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "eq.o1", r.URL.Query().Get("owner_id"))
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	client := NewClinicDataClient(dataapi.NewClient(server.URL, "key", time.Second, zap.NewNop()), zap.NewNop())
	clinics, err := client.FindByOwner(context.Background(), "token", "o1")
	require.NoError(t, err)
	assert.NotNil(t, clinics)
	assert.Empty(t, clinics)
}
