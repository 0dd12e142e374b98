package auth

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/exceptions"
	"clinicroom-service/internal/pkg/utils"
	"context"
	"errors"
	"testing"
	"time"

	redisrepo "clinicroom-service/internal/app/services/shared/redis"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProvider struct {
	loginErr   error
	logoutErr  error
	refreshes  int
	lastMeta   map[string]interface{}
	grantTTL   int
	refreshErr error
}

func (f *fakeProvider) Signup(ctx context.Context, email, password string, metadata map[string]interface{}) (*models.AuthUser, error) {
	f.lastMeta = metadata
	return &models.AuthUser{ID: "u1", Email: email}, nil
}

func (f *fakeProvider) Login(ctx context.Context, email, password string) (*models.AuthGrant, error) {
	if f.loginErr != nil {
		return nil, f.loginErr
	}
	return &models.AuthGrant{
		AccessToken:  "provider-token",
		RefreshToken: "refresh-1",
		ExpiresIn:    f.grantTTL,
		User:         models.AuthUser{ID: "u1", Email: email},
	}, nil
}

func (f *fakeProvider) Refresh(ctx context.Context, refreshToken string) (*models.AuthGrant, error) {
	if f.refreshErr != nil {
		return nil, f.refreshErr
	}
	f.refreshes++
	return &models.AuthGrant{AccessToken: "provider-token-2", RefreshToken: "refresh-2", ExpiresIn: 3600}, nil
}

func (f *fakeProvider) Logout(ctx context.Context, accessToken string) error {
	return f.logoutErr
}

func (f *fakeProvider) Recover(ctx context.Context, email string) error {
	return nil
}

func newTestUsecase(t *testing.T, provider *fakeProvider) (*authUsecase, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	store := NewStateStore(redisrepo.NewRedisRepository(client), zap.NewNop())
	require.NoError(t, store.Init(context.Background()))

	return &authUsecase{
		AuthProviderClient: provider,
		StateStore:         store,
		InternalConfig: &config.InternalConfig{
			App: config.App{LoginSessionExpiredTimeInHours: 2},
			JWT: config.JWT{Secret: "test-secret"},
		},
		Log: zap.NewNop(),
		now: time.Now,
	}, mr
}

func TestAuthUsecaseLoginAndResolve(t *testing.T) {
	ctx := context.Background()
	uc, mr := newTestUsecase(t, &fakeProvider{grantTTL: 3600})

	login, err := uc.Login(ctx, &requests.Login{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "u1", login.UserID)

	sessionID, err := utils.ParseJWT(login.Token, "test-secret")
	require.NoError(t, err)
	assert.True(t, mr.Exists(constvars.RedisKeySessionPrefix+sessionID))
	assert.InDelta(t, 2*time.Hour, mr.TTL(constvars.RedisKeySessionPrefix+sessionID), float64(time.Minute))

	session, err := uc.ResolveSession(ctx, login.Token)
	require.NoError(t, err)
	assert.Equal(t, "provider-token", session.AccessToken)
	assert.Equal(t, "ana@example.com", session.Email)

	require.NoError(t, uc.Logout(ctx, session))
	assert.False(t, mr.Exists(constvars.RedisKeySessionPrefix+sessionID))

	_, err = uc.ResolveSession(ctx, login.Token)
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
}

func TestAuthUsecaseResolveSession(t *testing.T) {
	ctx := context.Background()

	t.Run("Garbage Token", func(t *testing.T) {
		uc, _ := newTestUsecase(t, &fakeProvider{})
		_, err := uc.ResolveSession(ctx, "not-a-jwt")
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)
	})

	t.Run("Token Signed With Other Secret", func(t *testing.T) {
		uc, _ := newTestUsecase(t, &fakeProvider{})
		token, err := utils.GenerateSessionJWT("s1", "other-secret", 1)
		require.NoError(t, err)
		_, err = uc.ResolveSession(ctx, token)
		assert.Error(t, err)
	})

	t.Run("Refreshes Expiring Provider Token", func(t *testing.T) {
		provider := &fakeProvider{grantTTL: 10}
		uc, _ := newTestUsecase(t, provider)

		login, err := uc.Login(ctx, &requests.Login{Email: "ana@example.com", Password: "secret123"})
		require.NoError(t, err)

		session, err := uc.ResolveSession(ctx, login.Token)
		require.NoError(t, err)
		assert.Equal(t, 1, provider.refreshes)
		assert.Equal(t, "provider-token-2", session.AccessToken)
		assert.Equal(t, "refresh-2", session.RefreshToken)

		again, err := uc.ResolveSession(ctx, login.Token)
		require.NoError(t, err)
		assert.Equal(t, 1, provider.refreshes)
		assert.Equal(t, "provider-token-2", again.AccessToken)
	})

	t.Run("Expired App Session", func(t *testing.T) {
		uc, _ := newTestUsecase(t, &fakeProvider{grantTTL: 3600})
		login, err := uc.Login(ctx, &requests.Login{Email: "ana@example.com", Password: "secret123"})
		require.NoError(t, err)

		uc.now = func() time.Time { return time.Now().Add(3 * time.Hour) }
		_, err = uc.ResolveSession(ctx, login.Token)
		assert.Error(t, err)
	})
}

func TestAuthUsecaseLogoutToleratesProviderFailure(t *testing.T) {
	ctx := context.Background()
	uc, mr := newTestUsecase(t, &fakeProvider{grantTTL: 3600, logoutErr: errors.New("provider down")})

	login, err := uc.Login(ctx, &requests.Login{Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	session, err := uc.ResolveSession(ctx, login.Token)
	require.NoError(t, err)

	require.NoError(t, uc.Logout(ctx, session))
	assert.False(t, mr.Exists(constvars.RedisKeySessionPrefix+session.SessionID))
}

func TestAuthUsecaseSignup(t *testing.T) {
	provider := &fakeProvider{}
	uc, _ := newTestUsecase(t, provider)

	resp, err := uc.Signup(context.Background(), &requests.Signup{FullName: "Ana Souza", Email: "ana@example.com", Password: "secret123"})
	require.NoError(t, err)
	assert.Equal(t, "u1", resp.UserID)
	assert.Equal(t, "Ana Souza", provider.lastMeta["full_name"])
	_, hasPhone := provider.lastMeta["phone"]
	assert.False(t, hasPhone)
}

func TestStateStoreRequiresInit(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := NewStateStore(redisrepo.NewRedisRepository(client), zap.NewNop())
	_, err := store.Get(context.Background(), "s1")
	assert.Error(t, err)

	require.NoError(t, store.Init(context.Background()))
	_, err = store.Get(context.Background(), "s1")
	var customErr *exceptions.CustomError
	require.True(t, errors.As(err, &customErr))
	assert.Equal(t, constvars.StatusUnauthorized, customErr.StatusCode)

	require.NoError(t, store.Close(context.Background()))
	assert.Error(t, store.Save(context.Background(), &models.Session{SessionID: "s1"}, time.Minute))
}
