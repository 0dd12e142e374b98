package contracts

import (
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/dto/responses"
	"context"
)

type BookingUsecase interface {
	GetDraft(ctx context.Context, session *models.Session, clinicID string) (*responses.Draft, error)
	SetDate(ctx context.Context, session *models.Session, clinicID string, request *requests.SetDraftDate) (*responses.Draft, error)
	ToggleTime(ctx context.Context, session *models.Session, clinicID, clockValue string) (*responses.Draft, error)
	SetNotes(ctx context.Context, session *models.Session, clinicID string, request *requests.SetDraftNotes) (*responses.Draft, error)
	SetTermsAccepted(ctx context.Context, session *models.Session, clinicID string, request *requests.SetDraftTerms) (*responses.Draft, error)
	DiscardDraft(ctx context.Context, session *models.Session, clinicID string) error
	Submit(ctx context.Context, session *models.Session, clinicID string) (*responses.SubmitBooking, error)
}
