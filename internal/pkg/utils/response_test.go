package utils

import (
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"errors"
	"net/http/httptest"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildSuccessResponse(t *testing.T) {
	rec := httptest.NewRecorder()
	BuildSuccessResponse(rec, constvars.StatusOK, "ok", map[string]string{"id": "1"})

	assert.Equal(t, constvars.StatusOK, rec.Code)
	assert.Equal(t, constvars.MIMEApplicationJSON, rec.Header().Get(constvars.HeaderContentType))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "ok", body["message"])
}

func TestBuildErrorResponse(t *testing.T) {
	t.Run("Custom Error Keeps Status", func(t *testing.T) {
		t.Setenv("APP_ENV", constvars.AppEnvProduction)
		rec := httptest.NewRecorder()
		BuildErrorResponse(zap.NewNop(), rec, exceptions.ErrIllegalStatusTransition(nil, "cancelled", "confirmed"))

		assert.Equal(t, constvars.StatusConflict, rec.Code)
		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, false, body["success"])
		assert.Equal(t, constvars.ErrClientIllegalStatusTransition, body["message"])
		_, hasDev := body["dev_message"]
		assert.False(t, hasDev)
	})

	t.Run("Dev Message Outside Production", func(t *testing.T) {
		t.Setenv("APP_ENV", constvars.AppEnvDevelopment)
		rec := httptest.NewRecorder()
		BuildErrorResponse(zap.NewNop(), rec, exceptions.ErrInvalidDate(nil, "2024-13-01"))

		var body map[string]interface{}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Contains(t, body["dev_message"], "2024-13-01")
	})

	t.Run("Plain Error Is Internal", func(t *testing.T) {
		rec := httptest.NewRecorder()
		BuildErrorResponse(zap.NewNop(), rec, errors.New("boom"))
		assert.Equal(t, constvars.StatusInternalServerError, rec.Code)
	})
}

func TestBuildPaginationResponse(t *testing.T) {
	pagination := BuildPaginationResponse(30, 2, 12, "/api/v1/clinics")
	assert.Equal(t, "/api/v1/clinics?page=3&page_size=12", pagination.NextURL)
	assert.Equal(t, "/api/v1/clinics?page=1&page_size=12", pagination.PrevURL)

	last := BuildPaginationResponse(24, 2, 12, "/api/v1/clinics")
	assert.Empty(t, last.NextURL)
}

func TestSessionJWTRoundTrip(t *testing.T) {
	token, err := GenerateSessionJWT("session-1", "secret", 1)
	require.NoError(t, err)

	sessionID, err := ParseJWT(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, "session-1", sessionID)

	_, err = ParseJWT(token, "other-secret")
	assert.Error(t, err)
}
