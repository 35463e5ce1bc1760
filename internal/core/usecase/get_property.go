package usecase

import (
	"context"
	"real-estate-catalog/internal/contextkeys"
	"real-estate-catalog/internal/core/domain"
	"real-estate-catalog/internal/core/port"
)

type GetPropertyUseCase struct {
	repository port.PropertyRepositoryPort
}

func NewGetPropertyUseCase(repository port.PropertyRepositoryPort) *GetPropertyUseCase {
	return &GetPropertyUseCase{repository: repository}
}

// Execute возвращает объект по идентификатору.
// Если объекта нет, возвращает domain.ErrPropertyNotFound.
func (uc *GetPropertyUseCase) Execute(ctx context.Context, id string) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "GetProperty",
		"property_id": id,
	})

	ucLogger.Debug("Use case started", nil)

	property, err := uc.repository.GetByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err
	}
	if property == nil {
		ucLogger.Warn("Property not found", nil)
		return nil, domain.ErrPropertyNotFound
	}

	ucLogger.Info("Use case finished successfully", nil)

	return property, nil
}
