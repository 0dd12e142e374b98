package contracts

import (
	"clinicroom-service/internal/app/models"
	"context"
)

// Every data API call takes the caller's access token. An empty token falls
// back to the service key, which only grants public reads.

type ClinicDataClient interface {
	Search(ctx context.Context, accessToken string, filter models.ClinicFilter) ([]models.Clinic, int, error)
	FindByID(ctx context.Context, accessToken, clinicID string) (*models.Clinic, error)
	FindByOwner(ctx context.Context, accessToken, ownerID string) ([]models.Clinic, error)
}

type AvailabilityDataClient interface {
	FindByClinicID(ctx context.Context, accessToken, clinicID string) ([]models.AvailabilityWindow, error)
}

type AppointmentDataClient interface {
	FindAll(ctx context.Context, accessToken string, filter models.AppointmentFilter) ([]models.Appointment, error)
	FindByID(ctx context.Context, accessToken, appointmentID string) (*models.Appointment, error)
	CreateBulk(ctx context.Context, accessToken string, appointments []models.Appointment) ([]models.Appointment, error)
	UpdateStatus(ctx context.Context, accessToken, appointmentID, status string) (*models.Appointment, error)
}

type ProfileDataClient interface {
	FindByID(ctx context.Context, accessToken, userID string) (*models.Profile, error)
	Update(ctx context.Context, accessToken string, profile *models.Profile) (*models.Profile, error)
	UpdateAvatar(ctx context.Context, accessToken, userID, avatarURL string) (*models.Profile, error)
}

type AuthProviderClient interface {
	Signup(ctx context.Context, email, password string, metadata map[string]interface{}) (*models.AuthUser, error)
	Login(ctx context.Context, email, password string) (*models.AuthGrant, error)
	Refresh(ctx context.Context, refreshToken string) (*models.AuthGrant, error)
	Logout(ctx context.Context, accessToken string) error
	Recover(ctx context.Context, email string) error
}
