package contact

import (
	"clinicroom-service/internal/app/config"
	"clinicroom-service/internal/app/models"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/dto/requests"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type published struct {
	queue   string
	message interface{}
}

type fakePublisher struct {
	sent []published
	err  error
}

func (f *fakePublisher) Publish(ctx context.Context, queueName string, message interface{}) error {
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, published{queue: queueName, message: message})
	return nil
}

func newTestUsecase(publisher *fakePublisher) *contactUsecase {
	return &contactUsecase{
		Publisher: publisher,
		InternalConfig: &config.InternalConfig{RabbitMQ: config.AppRabbitMQ{
			ContactQueue: "contact-q",
			SupportQueue: "support-q",
		}},
		Log: zap.NewNop(),
		now: func() time.Time { return time.Date(2024, 5, 7, 12, 0, 0, 0, time.UTC) },
	}
}

func TestContactUsecaseSend(t *testing.T) {
	ctx := context.Background()
	form := &requests.ContactForm{
		Name:    "  Ana ",
		Email:   "ana@example.com",
		Subject: "Parceria",
		Message: "Gostaria de anunciar minha sala.",
		Kind:    constvars.ContactKindContact,
	}

	t.Run("Anonymous Contact", func(t *testing.T) {
		publisher := &fakePublisher{}
		require.NoError(t, newTestUsecase(publisher).Send(ctx, nil, form))

		require.Len(t, publisher.sent, 1)
		assert.Equal(t, "contact-q", publisher.sent[0].queue)
		message := publisher.sent[0].message.(models.ContactMessage)
		assert.Equal(t, "Ana", message.Name)
		assert.Empty(t, message.UserID)
		assert.Equal(t, 2024, message.SentAt.Year())
	})

	t.Run("Support From Session User", func(t *testing.T) {
		publisher := &fakePublisher{}
		support := *form
		support.Kind = constvars.ContactKindSupport

		require.NoError(t, newTestUsecase(publisher).Send(ctx, &models.Session{UserID: "u1"}, &support))
		assert.Equal(t, "support-q", publisher.sent[0].queue)
		assert.Equal(t, "u1", publisher.sent[0].message.(models.ContactMessage).UserID)
	})

	t.Run("Publish Failure", func(t *testing.T) {
		publisher := &fakePublisher{err: errors.New("broker down")}
		assert.Error(t, newTestUsecase(publisher).Send(ctx, nil, form))
	})
}
