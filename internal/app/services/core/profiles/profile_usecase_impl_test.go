package profiles

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeProfileClient struct {
	stored    models.Profile
	avatarURL string
}

func (f *fakeProfileClient) FindByID(ctx context.Context, accessToken, userID string) (*models.Profile, error) {
	if f.stored.ID != userID {
		return nil, exceptions.ErrNoDataAPIResource(errors.New("not found"), constvars.TableProfiles)
	}
	profile := f.stored
	return &profile, nil
}

func (f *fakeProfileClient) Update(ctx context.Context, accessToken string, profile *models.Profile) (*models.Profile, error) {
	f.stored = *profile
	return profile, nil
}

func (f *fakeProfileClient) UpdateAvatar(ctx context.Context, accessToken, userID, avatarURL string) (*models.Profile, error) {
	f.avatarURL = avatarURL
	f.stored.AvatarURL = avatarURL
	profile := f.stored
	return &profile, nil
}

type fakeStorage struct {
	bucket string
	object string
	body   string
	err    error
}

func (f *fakeStorage) PutObject(ctx context.Context, bucketName, objectName string, reader io.Reader, size int64, contentType string) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	data, _ := io.ReadAll(reader)
	f.bucket, f.object, f.body = bucketName, objectName, string(data)
	return "https://cdn.example.com/" + bucketName + "/" + objectName, nil
}

type fakeCEP struct {
	address *models.Address
	calls   int
}

func (f *fakeCEP) Lookup(ctx context.Context, cep string) (*models.Address, error) {
	f.calls++
	if f.address == nil {
		return nil, exceptions.ErrCEPNotFound(errors.New("not found"), cep)
	}
	return f.address, nil
}

func newTestUsecase() (*profileUsecase, *fakeProfileClient, *fakeStorage, *fakeCEP) {
	profiles := &fakeProfileClient{stored: models.Profile{ID: "u1", FullName: "Ana"}}
	storage := &fakeStorage{}
	cep := &fakeCEP{address: &models.Address{CEP: "01001000", Street: "Praca da Se", Neighborhood: "Se", City: "Sao Paulo", State: "SP"}}
	return &profileUsecase{
		ProfileDataClient: profiles,
		Storage:           storage,
		CEPService:        cep,
		InternalConfig: &config.InternalConfig{
			App:   config.App{AvatarMaxUploadSizeInMB: 1},
			Minio: config.AppMinio{BucketName: "clinicroom"},
		},
		Log: zap.NewNop(),
	}, profiles, storage, cep
}

var session = &models.Session{UserID: "u1", Email: "ana@example.com", AccessToken: "token"}

func TestProfileUsecaseGetProfile(t *testing.T) {
	uc, _, _, _ := newTestUsecase()

	profile, err := uc.GetProfile(context.Background(), session)
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", profile.Email)
}

func TestProfileUsecaseUpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("Normalises And Fills Address", func(t *testing.T) {
		uc, profiles, _, cep := newTestUsecase()

		updated, err := uc.UpdateProfile(ctx, session, &requests.UpdateProfile{
			FullName: " Ana Souza ",
			Document: "529.982.247-25",
			CEP:      "01001-000",
			Number:   "100",
		})
		require.NoError(t, err)
		assert.Equal(t, "Ana Souza", updated.FullName)
		assert.Equal(t, "52998224725", profiles.stored.Document)
		assert.Equal(t, "01001000", profiles.stored.CEP)
		assert.Equal(t, "Praca da Se", profiles.stored.Street)
		assert.Equal(t, "SP", profiles.stored.State)
		assert.Equal(t, 1, cep.calls)
	})

	t.Run("Complete Address Skips Lookup", func(t *testing.T) {
		uc, _, _, cep := newTestUsecase()

		_, err := uc.UpdateProfile(ctx, session, &requests.UpdateProfile{
			FullName: "Ana",
			CEP:      "01001000",
			Street:   "Rua A",
			City:     "Recife",
			State:    "pe",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, cep.calls)
	})

	t.Run("Unknown CEP", func(t *testing.T) {
		uc, _, _, cep := newTestUsecase()
		cep.address = nil

		_, err := uc.UpdateProfile(ctx, session, &requests.UpdateProfile{FullName: "Ana", CEP: "99999999"})
		var customErr *exceptions.CustomError
		require.True(t, errors.As(err, &customErr))
		assert.Equal(t, constvars.StatusNotFound, customErr.StatusCode)
	})
}

func TestProfileUsecaseUploadAvatar(t *testing.T) {
	ctx := context.Background()

	t.Run("Stores And Links", func(t *testing.T) {
		uc, profiles, storage, _ := newTestUsecase()

		resp, err := uc.UploadAvatar(ctx, session, &requests.UploadAvatar{
			FileName:    "Me.PNG",
			ContentType: constvars.MIMEImagePNG,
			Size:        4,
			Data:        []byte("\x89PNG"),
		})
		require.NoError(t, err)
		assert.Equal(t, "clinicroom", storage.bucket)
		assert.True(t, strings.HasPrefix(storage.object, "avatars/u1/"))
		assert.True(t, strings.HasSuffix(storage.object, ".png"))
		assert.Equal(t, resp.AvatarURL, profiles.avatarURL)
	})

	t.Run("Too Large", func(t *testing.T) {
		uc, profiles, _, _ := newTestUsecase()

		_, err := uc.UploadAvatar(ctx, session, &requests.UploadAvatar{FileName: "big.jpg", Size: 2 << 20})
		assert.Error(t, err)
		assert.Empty(t, profiles.avatarURL)
	})

	t.Run("Storage Failure Leaves Profile", func(t *testing.T) {
		uc, profiles, storage, _ := newTestUsecase()
		storage.err = exceptions.ErrMinioCreateObject(errors.New("down"), "clinicroom")

		_, err := uc.UploadAvatar(ctx, session, &requests.UploadAvatar{FileName: "a.jpg", Size: 1, Data: []byte("x")})
		assert.Error(t, err)
		assert.Empty(t, profiles.avatarURL)
	})
}
