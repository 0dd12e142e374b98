package contracts

import "context"

type Publisher interface {
	Publish(ctx context.Context, queueName string, message interface{}) error
}
