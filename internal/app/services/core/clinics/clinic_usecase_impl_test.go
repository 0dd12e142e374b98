package clinics

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/app/services/core/availability"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeClinicClient struct {
	clinics    []models.Clinic
	lastFilter models.ClinicFilter
}

func (f *fakeClinicClient) Search(ctx context.Context, accessToken string, filter models.ClinicFilter) ([]models.Clinic, int, error) {
	f.lastFilter = filter
	return f.clinics, len(f.clinics), nil
}

func (f *fakeClinicClient) FindByID(ctx context.Context, accessToken, clinicID string) (*models.Clinic, error) {
	for i := range f.clinics {
		if f.clinics[i].ID == clinicID {
			return &f.clinics[i], nil
		}
	}
	return nil, exceptions.ErrNoDataAPIResource(errors.New("not found"), constvars.TableClinics)
}

func (f *fakeClinicClient) FindByOwner(ctx context.Context, accessToken, ownerID string) ([]models.Clinic, error) {
	return nil, nil
}

type fakeAvailabilityClient struct {
	windows []models.AvailabilityWindow
	err     error
}

func (f *fakeAvailabilityClient) FindByClinicID(ctx context.Context, accessToken, clinicID string) ([]models.AvailabilityWindow, error) {
	return f.windows, f.err
}

type fakeAppointmentClient struct {
	appointments []models.Appointment
}

func (f *fakeAppointmentClient) FindAll(ctx context.Context, accessToken string, filter models.AppointmentFilter) ([]models.Appointment, error) {
	return f.appointments, nil
}

func (f *fakeAppointmentClient) FindByID(ctx context.Context, accessToken, appointmentID string) (*models.Appointment, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAppointmentClient) CreateBulk(ctx context.Context, accessToken string, appointments []models.Appointment) ([]models.Appointment, error) {
	return nil, errors.New("not implemented")
}

func (f *fakeAppointmentClient) UpdateStatus(ctx context.Context, accessToken, appointmentID, status string) (*models.Appointment, error) {
	return nil, errors.New("not implemented")
}

func newTestUsecase(availabilityClient *fakeAvailabilityClient, appointmentClient *fakeAppointmentClient) *clinicUsecase {
	return &clinicUsecase{
		ClinicDataClient:       &fakeClinicClient{clinics: []models.Clinic{{ID: "c1", Name: "Sala Azul"}}},
		AvailabilityDataClient: availabilityClient,
		AppointmentDataClient:  appointmentClient,
		Calculator:             availability.NewCalculator(time.UTC, availability.WindowPolicyFirst),
		InternalConfig:         &config.InternalConfig{},
		Log:                    zap.NewNop(),
	}
}

func TestClinicUsecaseGetAvailability(t *testing.T) {
	ctx := context.Background()
	windows := []models.AvailabilityWindow{{ClinicID: "c1", Day: constvars.WeekdayTerca, StartTime: "09:00", EndTime: "10:30"}}

	t.Run("Marks Confirmed Slots", func(t *testing.T) {
		uc := newTestUsecase(&fakeAvailabilityClient{windows: windows}, &fakeAppointmentClient{appointments: []models.Appointment{
			{ClinicID: "c1", Date: "2024-05-07", Time: "09:30:00", Status: constvars.AppointmentStatusConfirmed},
			{ClinicID: "c1", Date: "2024-05-07", Time: "10:00", Status: constvars.AppointmentStatusPending},
		}})

		resp, err := uc.GetAvailability(ctx, &requests.GetAvailability{ClinicID: "c1", Date: "2024-05-07"})
		require.NoError(t, err)
		assert.Equal(t, constvars.WeekdayTerca, resp.Weekday)
		assert.Equal(t, []models.TimeSlot{
			{Value: "09:00"},
			{Value: "09:30", Disabled: true},
			{Value: "10:00"},
			{Value: "10:30"},
		}, resp.Slots)
		assert.Empty(t, resp.Notice)
	})

	t.Run("No Window Gives Notice", func(t *testing.T) {
		uc := newTestUsecase(&fakeAvailabilityClient{windows: windows}, &fakeAppointmentClient{})

		resp, err := uc.GetAvailability(ctx, &requests.GetAvailability{ClinicID: "c1", Date: "2024-05-08"})
		require.NoError(t, err)
		assert.Empty(t, resp.Slots)
		assert.Equal(t, constvars.ErrClientNoAvailability, resp.Notice)
	})

	t.Run("Unknown Clinic", func(t *testing.T) {
		uc := newTestUsecase(&fakeAvailabilityClient{windows: windows}, &fakeAppointmentClient{})

		_, err := uc.GetAvailability(ctx, &requests.GetAvailability{ClinicID: "missing", Date: "2024-05-07"})
		assert.Error(t, err)
	})

	t.Run("Fetch Failure Surfaces", func(t *testing.T) {
		uc := newTestUsecase(&fakeAvailabilityClient{err: errors.New("data API down")}, &fakeAppointmentClient{})

		_, err := uc.GetAvailability(ctx, &requests.GetAvailability{ClinicID: "c1", Date: "2024-05-07"})
		assert.Error(t, err)
	})

	t.Run("Overflowing Date", func(t *testing.T) {
		uc := newTestUsecase(&fakeAvailabilityClient{windows: windows}, &fakeAppointmentClient{})

		_, err := uc.GetAvailability(ctx, &requests.GetAvailability{ClinicID: "c1", Date: "2024-02-30"})
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusBadRequest, customErr.StatusCode)
	})
}

func TestClinicUsecaseSearch(t *testing.T) {
	uc := newTestUsecase(&fakeAvailabilityClient{}, &fakeAppointmentClient{})

	clinics, total, err := uc.Search(context.Background(), &requests.SearchClinics{
		City:       "Recife",
		MinPrice:   "80",
		MaxPrice:   "200.50",
		Pagination: requests.Pagination{Page: 2, PageSize: 10},
	})
	require.NoError(t, err)
	assert.Len(t, clinics, 1)
	assert.Equal(t, 1, total)

	filter := uc.ClinicDataClient.(*fakeClinicClient).lastFilter
	require.NotNil(t, filter.MinPrice)
	require.NotNil(t, filter.MaxPrice)
	assert.Equal(t, "80", filter.MinPrice.String())
	assert.Equal(t, "200.5", filter.MaxPrice.String())
	assert.Equal(t, 2, filter.Page)
}
