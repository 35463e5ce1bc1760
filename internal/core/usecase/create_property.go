package usecase

import (
	"context"
	"real-estate-catalog/internal/contextkeys"
	"real-estate-catalog/internal/core/domain"
	"real-estate-catalog/internal/core/port"
)

// ImagesFolder - фиксированная папка для картинок объектов.
const ImagesFolder = "images"

type CreatePropertyUseCase struct {
	repository  port.PropertyRepositoryPort
	fileStorage port.FileStoragePort
}

func NewCreatePropertyUseCase(repository port.PropertyRepositoryPort, fileStorage port.FileStoragePort) *CreatePropertyUseCase {
	return &CreatePropertyUseCase{
		repository:  repository,
		fileStorage: fileStorage,
	}
}

// Execute создает объект недвижимости вместе с его картинкой.
//
// Порядок важен: проверка дубликата идет ДО записи блоба, чтобы повторная
// отправка формы не оставляла осиротевших файлов. Если вставка в хранилище
// упадет уже после записи блоба, файл останется навсегда - компенсирующей
// транзакции нет.
func (uc *CreatePropertyUseCase) Execute(ctx context.Context, input domain.CreatePropertyInput) (*domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	ucLogger := logger.WithFields(port.Fields{
		"use_case": "CreateProperty",
		"name":     input.Name,
		"address":  input.Address,
	})

	ucLogger.Debug("Use case started", nil)

	exists, err := uc.repository.ExistsByNameAndAddress(ctx, input.Name, input.Address)
	if err != nil {
		ucLogger.Error("Existence check failed", err, nil)
		return nil, err
	}
	if exists {
		ucLogger.Warn("Duplicate name+address pair", nil)
		return nil, domain.ErrPropertyExists
	}

	imageKey, err := uc.fileStorage.Save(ctx, input.ImageBytes, input.ImageFileName, ImagesFolder)
	if err != nil {
		ucLogger.Error("Failed to save image", err, nil)
		return nil, err
	}

	property := &domain.Property{
		OwnerID:  input.OwnerID,
		Name:     input.Name,
		Address:  input.Address,
		Price:    input.Price,
		ImageKey: imageKey,
	}

	if err := uc.repository.Add(ctx, property); err != nil {
		ucLogger.Error("Repository insert failed", err, port.Fields{"image_key": imageKey})
		return nil, err
	}

	ucLogger.Info("Use case finished successfully", port.Fields{
		"property_id": property.ID.Hex(),
		"image_key":   imageKey,
	})

	return property, nil
}
