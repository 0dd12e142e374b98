package contracts

import (
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/dto/responses"
	"context"
	"time"
)

// AuthStateStore owns the authenticated sessions of the service. It must be
// initialised before use and closed on shutdown.
type AuthStateStore interface {
	Init(ctx context.Context) error
	Close(ctx context.Context) error
	Save(ctx context.Context, session *models.Session, ttl time.Duration) error
	Get(ctx context.Context, sessionID string) (*models.Session, error)
	Delete(ctx context.Context, sessionID string) error
}

type AuthUsecase interface {
	Signup(ctx context.Context, request *requests.Signup) (*responses.Signup, error)
	Login(ctx context.Context, request *requests.Login) (*responses.Login, error)
	Logout(ctx context.Context, session *models.Session) error
	RecoverPassword(ctx context.Context, request *requests.RecoverPassword) error
	ResolveSession(ctx context.Context, token string) (*models.Session, error)
}
