package profiles

import (
	"bytes"
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"clinicroom-service/internal/pkg/dto/responses"
	"clinicroom-service/internal/pkg/exceptions"
	"clinicroom-service/internal/pkg/utils"
	"context"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
)

type profileUsecase struct {
	ProfileDataClient contracts.ProfileDataClient
	Storage           contracts.Storage
	CEPService        contracts.CEPService
	InternalConfig    *config.InternalConfig
	Log               *zap.Logger
}

var (
	profileUsecaseInstance contracts.ProfileUsecase
	onceProfileUsecase     sync.Once
)

func NewProfileUsecase(
	profileDataClient contracts.ProfileDataClient,
	storage contracts.Storage,
	cepService contracts.CEPService,
	internalConfig *config.InternalConfig,
	logger *zap.Logger,
) contracts.ProfileUsecase {
	onceProfileUsecase.Do(func() {
		profileUsecaseInstance = &profileUsecase{
			ProfileDataClient: profileDataClient,
			Storage:           storage,
			CEPService:        cepService,
			InternalConfig:    internalConfig,
			Log:               logger,
		}
	})
	return profileUsecaseInstance
}

func (uc *profileUsecase) GetProfile(ctx context.Context, session *models.Session) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("profileUsecase.GetProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	profile, err := uc.ProfileDataClient.FindByID(ctx, session.AccessToken, session.UserID)
	if err != nil {
		uc.Log.Error("profileUsecase.GetProfile error fetching profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}
	if profile.Email == "" {
		profile.Email = session.Email
	}
	return profile, nil
}

// UpdateProfile stores the editable profile fields. Documents and CEPs are
// kept as digits only; address fields left blank are filled from the CEP.
func (uc *profileUsecase) UpdateProfile(ctx context.Context, session *models.Session, request *requests.UpdateProfile) (*models.Profile, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("profileUsecase.UpdateProfile called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)

	profile := &models.Profile{
		ID:           session.UserID,
		FullName:     strings.TrimSpace(request.FullName),
		Email:        session.Email,
		Phone:        request.Phone,
		Document:     utils.OnlyDigits(request.Document),
		CEP:          utils.NormalizeCEP(request.CEP),
		Street:       request.Street,
		Number:       request.Number,
		Complement:   request.Complement,
		Neighborhood: request.Neighborhood,
		City:         request.City,
		State:        strings.ToUpper(request.State),
	}

	if profile.CEP != "" && (profile.Street == "" || profile.City == "" || profile.State == "") {
		address, err := uc.CEPService.Lookup(ctx, profile.CEP)
		if err != nil {
			uc.Log.Error("profileUsecase.UpdateProfile error looking up CEP",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingCEPKey, profile.CEP),
				zap.Error(err),
			)
			return nil, err
		}
		fillAddress(profile, address)
	}

	updated, err := uc.ProfileDataClient.Update(ctx, session.AccessToken, profile)
	if err != nil {
		uc.Log.Error("profileUsecase.UpdateProfile error updating profile",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("profileUsecase.UpdateProfile succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
	)
	return updated, nil
}

func fillAddress(profile *models.Profile, address *models.Address) {
	if profile.Street == "" {
		profile.Street = address.Street
	}
	if profile.Complement == "" {
		profile.Complement = address.Complement
	}
	if profile.Neighborhood == "" {
		profile.Neighborhood = address.Neighborhood
	}
	if profile.City == "" {
		profile.City = address.City
	}
	if profile.State == "" {
		profile.State = address.State
	}
}

func (uc *profileUsecase) UploadAvatar(ctx context.Context, session *models.Session, request *requests.UploadAvatar) (*responses.UploadAvatar, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("profileUsecase.UploadAvatar called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingUserIDKey, session.UserID),
		zap.Int64(constvars.LoggingFileSizeKey, request.Size),
	)

	maxBytes := int64(uc.InternalConfig.App.AvatarMaxUploadSizeInMB) << 20
	if request.Size > maxBytes {
		return nil, exceptions.ErrImageValidation(fmt.Errorf("avatar of %d bytes exceeds %d bytes", request.Size, maxBytes))
	}

	objectName := utils.GenerateAvatarObjectName(session.UserID, request.FileName)
	url, err := uc.Storage.PutObject(ctx, uc.InternalConfig.Minio.BucketName, objectName, bytes.NewReader(request.Data), request.Size, request.ContentType)
	if err != nil {
		uc.Log.Error("profileUsecase.UploadAvatar error storing object",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	if _, err := uc.ProfileDataClient.UpdateAvatar(ctx, session.AccessToken, session.UserID, url); err != nil {
		uc.Log.Error("profileUsecase.UploadAvatar error updating profile avatar",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	uc.Log.Info("profileUsecase.UploadAvatar succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingObjectKey, objectName),
	)
	return &responses.UploadAvatar{AvatarURL: url}, nil
}

func (uc *profileUsecase) LookupAddress(ctx context.Context, cep string) (*models.Address, error) {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("profileUsecase.LookupAddress called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingCEPKey, cep),
	)
	return uc.CEPService.Lookup(ctx, cep)
}
