package contracts

import (
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/dto/responses"
	"context"
)

type ProfileUsecase interface {
	GetProfile(ctx context.Context, session *models.Session) (*models.Profile, error)
	UpdateProfile(ctx context.Context, session *models.Session, request *requests.UpdateProfile) (*models.Profile, error)
	UploadAvatar(ctx context.Context, session *models.Session, request *requests.UploadAvatar) (*responses.UploadAvatar, error)
	LookupAddress(ctx context.Context, cep string) (*models.Address, error)
}
