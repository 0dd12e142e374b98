package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNewInternalConfig(t *testing.T) {
	t.Run("Defaults", func(t *testing.T) {
		cfg := NewInternalConfig()
		assert.Equal(t, "api", cfg.App.EndpointPrefix)
		assert.Equal(t, "v1", cfg.App.Version)
		assert.False(t, cfg.App.AvailabilityMergeWindows)
		assert.Equal(t, 30, cfg.App.BookingDraftTTLInMinutes)
	})

	t.Run("Environment Overrides", func(t *testing.T) {
		t.Setenv("APP_AVAILABILITY_MERGE_WINDOWS", "true")
		t.Setenv("APP_BOOKING_DRAFT_TTL_IN_MINUTES", "45")
		t.Setenv("DATA_API_BASE_URL", "https://data.example.com/rest/v1")

		cfg := NewInternalConfig()
		assert.True(t, cfg.App.AvailabilityMergeWindows)
		assert.Equal(t, 45, cfg.App.BookingDraftTTLInMinutes)
		assert.Equal(t, "https://data.example.com/rest/v1", cfg.DataAPI.BaseUrl)
	})

	t.Run("Unparsable Value Keeps Default", func(t *testing.T) {
		t.Setenv("APP_MAX_REQUEST", "many")
		cfg := NewInternalConfig()
		assert.Equal(t, 20, cfg.App.MaxRequests)
	})
}

func TestInternalConfigLocation(t *testing.T) {
	cfg := &InternalConfig{App: App{Timezone: "Not/AZone"}}
	assert.Equal(t, time.Local, cfg.Location())

	cfg.App.Timezone = "UTC"
	assert.Equal(t, "UTC", cfg.Location().String())
}
