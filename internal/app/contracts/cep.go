package contracts

import (
	"clinicroom-service/internal/app/models"
	"context"
)

type CEPService interface {
	Lookup(ctx context.Context, cep string) (*models.Address, error)
}
