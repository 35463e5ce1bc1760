package usecases_port

import (
	"context"
	"real-estate-catalog/internal/core/domain"
)

type GetPropertyUseCase interface {
	Execute(ctx context.Context, id string) (*domain.Property, error)
}
