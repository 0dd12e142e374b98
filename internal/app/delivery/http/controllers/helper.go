package controllers

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"clinicroom-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"time"

	"go.uber.org/zap"
)

func sessionFromRequest(r *http.Request) (*models.Session, error) {
	session, ok := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	if !ok || session == nil {
		return nil, exceptions.ErrMissingSessionData(nil)
	}
	return session, nil
}

// optionalSession returns nil for anonymous requests.
func optionalSession(r *http.Request) *models.Session {
	session, _ := r.Context().Value(constvars.CONTEXT_SESSION_DATA_KEY).(*models.Session)
	return session
}

func requestContext(r *http.Request, internalConfig *config.InternalConfig) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), time.Duration(internalConfig.App.RequestTimeoutInSeconds)*time.Second)
}

func buildUsecaseErrorResponse(log *zap.Logger, w http.ResponseWriter, err error) {
	if errors.Is(err, context.DeadlineExceeded) {
		utils.BuildErrorResponse(log, w, exceptions.ErrServerDeadlineExceeded(err))
		return
	}
	utils.BuildErrorResponse(log, w, err)
}
