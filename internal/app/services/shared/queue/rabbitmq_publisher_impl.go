package queue

import (
	"clinicroom-service/internal/app/contracts"
	"clinicroom-service/internal/pkg/constvars"
	"clinicroom-service/internal/pkg/exceptions"
	"context"
	"sync"

	"github.com/goccy/go-json"
	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// channel is the slice of *amqp091.Channel the publisher needs.
type channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp091.Table) (amqp091.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
}

type rabbitMQPublisher struct {
	mu       sync.Mutex
	Channel  channel
	Log      *zap.Logger
	declared map[string]bool
}

func NewRabbitMQPublisher(rabbitMQConnection *amqp091.Connection, logger *zap.Logger) (contracts.Publisher, error) {
	ch, err := rabbitMQConnection.Channel()
	if err != nil {
		return nil, err
	}
	return newRabbitMQPublisher(ch, logger), nil
}

func newRabbitMQPublisher(ch channel, logger *zap.Logger) *rabbitMQPublisher {
	return &rabbitMQPublisher{
		Channel:  ch,
		Log:      logger,
		declared: make(map[string]bool),
	}
}

// Publish sends message as a persistent JSON delivery on the default
// exchange, declaring the durable queue the first time it is used.
func (p *rabbitMQPublisher) Publish(ctx context.Context, queueName string, message interface{}) error {
	requestID, _ := ctx.Value(constvars.CONTEXT_REQUEST_ID_KEY).(string)
	p.Log.Info("rabbitMQPublisher.Publish called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, queueName),
	)

	body, err := json.Marshal(message)
	if err != nil {
		return exceptions.ErrCannotMarshalJSON(err)
	}

	publishing := amqp091.Publishing{
		ContentType:  constvars.MIMEApplicationJSON,
		Body:         body,
		DeliveryMode: amqp091.Persistent,
		Priority:     0,
		MessageId:    requestID,
		Headers: amqp091.Table{
			"message_type":     "JSON",
			"requeue_strategy": "DROP",
		},
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.declared[queueName] {
		if _, err := p.Channel.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
			p.Log.Error("rabbitMQPublisher.Publish error declaring queue",
				zap.String(constvars.LoggingRequestIDKey, requestID),
				zap.String(constvars.LoggingQueueKey, queueName),
				zap.Error(err),
			)
			return exceptions.ErrRabbitMQPublishMessage(err, queueName)
		}
		p.declared[queueName] = true
	}

	if err := p.Channel.PublishWithContext(ctx, "", queueName, false, false, publishing); err != nil {
		p.Log.Error("rabbitMQPublisher.Publish error publishing message",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingQueueKey, queueName),
			zap.Error(err),
		)
		return exceptions.ErrRabbitMQPublishMessage(err, queueName)
	}

	p.Log.Info("rabbitMQPublisher.Publish succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingQueueKey, queueName),
	)
	return nil
}
