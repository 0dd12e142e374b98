package contracts

import (
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/dto/responses"
	"context"
)

type ClinicUsecase interface {
	Search(ctx context.Context, request *requests.SearchClinics) ([]models.Clinic, int, error)
	FindByID(ctx context.Context, clinicID string) (*models.Clinic, error)
	GetAvailability(ctx context.Context, request *requests.GetAvailability) (*responses.ClinicAvailability, error)
	FindAvailabilityWindows(ctx context.Context, clinicID string) ([]models.AvailabilityWindow, error)
}
