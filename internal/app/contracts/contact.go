package contracts

import (
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/dto/requests"
	"context"
)

type ContactUsecase interface {
	// Send accepts a nil session for anonymous visitors.
	Send(ctx context.Context, session *models.Session, request *requests.ContactForm) error
}
