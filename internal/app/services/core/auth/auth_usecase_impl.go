package auth

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/dto/responses"
	"clinicroom-service/internal/pkg/exceptions"
	"clinicroom-service/internal/pkg/utils"
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const accessTokenRefreshLeeway = 30 * time.Second

type authUsecase struct {
	AuthProviderClient contracts.AuthProviderClient
	StateStore         contracts.AuthStateStore
	InternalConfig     *config.InternalConfig
	Log                *zap.Logger
	now                func() time.Time
}

var (
	authUsecaseInstance contracts.AuthUsecase
	onceAuthUsecase     sync.Once
)

func NewAuthUsecase(
	authProviderClient contracts.AuthProviderClient,
	stateStore contracts.AuthStateStore,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.AuthUsecase {
	onceAuthUsecase.Do(func() {
		authUsecaseInstance = &authUsecase{
			AuthProviderClient: authProviderClient,
			StateStore:         stateStore,
			InternalConfig:     internalConfig,
			Log:                logger,
			now:                time.Now,
		}
	})
	return authUsecaseInstance
}

func (uc *authUsecase) sessionTTL() time.Duration {
	return time.Duration(uc.InternalConfig.App.LoginSessionExpiredTimeInHours) * time.Hour
}

func (uc *authUsecase) Signup(ctx context.Context, request *requests.Signup) (*responses.Signup, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Signup called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	metadata := map[string]interface{}{
		"full_name": request.FullName,
	}
	if request.Phone != "" {
		metadata["phone"] = request.Phone
	}

	user, err := uc.AuthProviderClient.Signup(ctx, request.Email, request.Password, metadata)
	if err != nil {
		uc.Log.Error("authUsecase.Signup error calling auth provider",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("authUsecase.Signup succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, user.ID),
	)
	return &responses.Signup{
		UserID: user.ID,
		Email:  user.Email,
	}, nil
}

func (uc *authUsecase) Login(ctx context.Context, request *requests.Login) (*responses.Login, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Login called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	grant, err := uc.AuthProviderClient.Login(ctx, request.Email, request.Password)
	if err != nil {
		uc.Log.Error("authUsecase.Login error calling auth provider",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.now()
	session := &models.Session{
		SessionID:            uuid.NewString(),
		UserID:               grant.User.ID,
		Email:                grant.User.Email,
		AccessToken:          grant.AccessToken,
		RefreshToken:         grant.RefreshToken,
		AccessTokenExpiresAt: now.Add(time.Duration(grant.ExpiresIn) * time.Second),
		ExpiresAt:            now.Add(uc.sessionTTL()),
	}
	if grant.ExpiresIn <= 0 {
		session.AccessTokenExpiresAt = time.Time{}
	}

	if err := uc.StateStore.Save(ctx, session, uc.sessionTTL()); err != nil {
		uc.Log.Error("authUsecase.Login error saving session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	token, err := utils.GenerateSessionJWT(session.SessionID, uc.InternalConfig.JWT.Secret, uc.InternalConfig.App.LoginSessionExpiredTimeInHours)
	if err != nil {
		uc.Log.Error("authUsecase.Login error generating session token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenGenerate(err)
	}

	uc.Log.Info("authUsecase.Login succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)
	return &responses.Login{
		Token:     token,
		UserID:    session.UserID,
		Email:     session.Email,
		ExpiresAt: session.ExpiresAt,
	}, nil
}

// Logout drops the local session even when the provider cannot be reached.
func (uc *authUsecase) Logout(ctx context.Context, session *models.Session) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.Logout called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSessionIDKey, session.SessionID),
	)

	if err := uc.AuthProviderClient.Logout(ctx, session.AccessToken); err != nil {
		uc.Log.Warn("authUsecase.Logout error calling auth provider",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}

	if err := uc.StateStore.Delete(ctx, session.SessionID); err != nil {
		uc.Log.Error("authUsecase.Logout error deleting session",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("authUsecase.Logout succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}

func (uc *authUsecase) RecoverPassword(ctx context.Context, request *requests.RecoverPassword) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("authUsecase.RecoverPassword called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	if err := uc.AuthProviderClient.Recover(ctx, request.Email); err != nil {
		uc.Log.Error("authUsecase.RecoverPassword error calling auth provider",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}
	return nil
}

// ResolveSession maps an app token to its session, refreshing the provider
// token when it is about to expire.
func (uc *authUsecase) ResolveSession(ctx context.Context, token string) (*models.Session, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)

	sessionID, err := utils.ParseJWT(token, uc.InternalConfig.JWT.Secret)
	if err != nil {
		uc.Log.Info("authUsecase.ResolveSession invalid token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, exceptions.ErrTokenInvalidOrExpired(err)
	}

	session, err := uc.StateStore.Get(ctx, sessionID)
	if err != nil {
		uc.Log.Info("authUsecase.ResolveSession session lookup failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
			zap.Error(err),
		)
		return nil, err
	}

	now := uc.now()
	if session.IsExpired(now) {
		uc.StateStore.Delete(ctx, sessionID)
		return nil, exceptions.ErrTokenInvalidOrExpired(errors.New("session expired"))
	}

	if session.NeedsRefresh(now, accessTokenRefreshLeeway) {
		grant, err := uc.AuthProviderClient.Refresh(ctx, session.RefreshToken)
		if err != nil {
			uc.Log.Error("authUsecase.ResolveSession error refreshing provider token",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingSessionIDKey, sessionID),
				zap.Error(err),
			)
			return nil, err
		}
		session.AccessToken = grant.AccessToken
		if grant.RefreshToken != "" {
			session.RefreshToken = grant.RefreshToken
		}
		session.AccessTokenExpiresAt = now.Add(time.Duration(grant.ExpiresIn) * time.Second)

		if err := uc.StateStore.Save(ctx, session, session.ExpiresAt.Sub(now)); err != nil {
			return nil, err
		}
		uc.Log.Info("authUsecase.ResolveSession refreshed provider token",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSessionIDKey, sessionID),
		)
	}

	return session, nil
}
