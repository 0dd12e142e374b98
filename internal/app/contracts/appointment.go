package contracts

import (
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/dto/responses"
	"context"
)

type AppointmentUsecase interface {
	Stats(ctx context.Context, session *models.Session, request *requests.AppointmentStats) (*responses.AppointmentStats, error)
	UpdateStatus(ctx context.Context, session *models.Session, request *requests.UpdateAppointmentStatus) (*responses.UpdateAppointmentStatus, error)
	FindMine(ctx context.Context, session *models.Session, request *requests.MyAppointments) ([]models.Appointment, error)
}
