package contact

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"context"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"
)

type contactUsecase struct {
	Publisher      contracts.Publisher
	InternalConfig *config.InternalConfig
	Log            *zap.Logger
	now            func() time.Time
}

var (
	contactUsecaseInstance contracts.ContactUsecase
	onceContactUsecase     sync.Once
)

func NewContactUsecase(publisher contracts.Publisher, internalConfig *config.InternalConfig, logger *zap.Logger) contracts.ContactUsecase {
	onceContactUsecase.Do(func() {
		contactUsecaseInstance = &contactUsecase{
			Publisher:      publisher,
			InternalConfig: internalConfig,
			Log:            logger,
			now:            time.Now,
		}
	})
	return contactUsecaseInstance
}

func (uc *contactUsecase) queueFor(kind string) string {
	if kind == constvars.ContactKindSupport {
		return uc.InternalConfig.RabbitMQ.SupportQueue
	}
	return uc.InternalConfig.RabbitMQ.ContactQueue
}

func (uc *contactUsecase) Send(ctx context.Context, session *models.Session, request *requests.ContactForm) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	uc.Log.Info("contactUsecase.Send called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, uc.queueFor(request.Kind)),
	)

	message := models.ContactMessage{
		Name:    strings.TrimSpace(request.Name),
		Email:   strings.TrimSpace(request.Email),
		Phone:   request.Phone,
		Subject: strings.TrimSpace(request.Subject),
		Message: strings.TrimSpace(request.Message),
		Kind:    request.Kind,
		SentAt:  uc.now().UTC(),
	}
	if session != nil {
		message.UserID = session.UserID
	}

	if err := uc.Publisher.Publish(ctx, uc.queueFor(request.Kind), message); err != nil {
		uc.Log.Error("contactUsecase.Send error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	uc.Log.Info("contactUsecase.Send succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)
	return nil
}
