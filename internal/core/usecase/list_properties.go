package usecase

import (
	"context"
	"real-estate-catalog/internal/contextkeys"
	"real-estate-catalog/internal/core/domain"
	"real-estate-catalog/internal/core/port"
)

type ListPropertiesUseCase struct {
	repository port.PropertyRepositoryPort
}

func NewListPropertiesUseCase(repository port.PropertyRepositoryPort) *ListPropertiesUseCase {
	return &ListPropertiesUseCase{repository: repository}
}

func (uc *ListPropertiesUseCase) Execute(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, error) {
	// Получаем и обогащаем логгер
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "ListProperties",
	})

	ucLogger.Debug("Use case started", nil)

	properties, err := uc.repository.List(ctx, filters)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return nil, err // Просто пробрасываем ошибку дальше
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"total_found": len(properties),
	})

	return properties, nil
}
