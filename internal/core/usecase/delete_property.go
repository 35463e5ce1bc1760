package usecase

import (
	"context"
	"real-estate-catalog/internal/contextkeys"
	"real-estate-catalog/internal/core/domain"
	"real-estate-catalog/internal/core/port"
)

type DeletePropertyUseCase struct {
	repository  port.PropertyRepositoryPort
	fileStorage port.FileStoragePort
}

func NewDeletePropertyUseCase(repository port.PropertyRepositoryPort, fileStorage port.FileStoragePort) *DeletePropertyUseCase {
	return &DeletePropertyUseCase{
		repository:  repository,
		fileStorage: fileStorage,
	}
}

// Execute удаляет объект и его картинку.
// Удаление блоба - best-effort: отсутствие файла или ошибка файловой
// системы не мешают удалению записи.
func (uc *DeletePropertyUseCase) Execute(ctx context.Context, id string) error {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case":    "DeleteProperty",
		"property_id": id,
	})

	ucLogger.Debug("Use case started", nil)

	property, err := uc.repository.GetByID(ctx, id)
	if err != nil {
		ucLogger.Error("Repository returned an error", err, nil)
		return err
	}
	if property == nil {
		ucLogger.Warn("Property not found", nil)
		return domain.ErrPropertyNotFound
	}

	if err := uc.fileStorage.Delete(ctx, property.ImageKey, ImagesFolder); err != nil {
		// Запись важнее файла: логируем и продолжаем.
		ucLogger.Warn("Failed to delete image, continuing", port.Fields{
			"image_key": property.ImageKey,
			"error":     err.Error(),
		})
	}

	deleted, err := uc.repository.Delete(ctx, id)
	if err != nil {
		ucLogger.Error("Repository delete failed", err, nil)
		return err
	}
	if !deleted {
		// Запись исчезла между GetByID и Delete.
		ucLogger.Warn("Property disappeared before delete", nil)
		return domain.ErrPropertyNotFound
	}

	ucLogger.Info("Use case finished successfully", nil)

	return nil
}
