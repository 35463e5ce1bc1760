package usecases_port

import (
	"context"
	"real-estate-catalog/internal/core/domain"
)

type CreatePropertyUseCase interface {
	Execute(ctx context.Context, input domain.CreatePropertyInput) (*domain.Property, error)
}
