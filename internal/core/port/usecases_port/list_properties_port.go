package usecases_port

import (
	"context"
	"real-estate-catalog/internal/core/domain"
)

type ListPropertiesUseCase interface {
	Execute(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, error)
}
