package filestorage

import (
	"context"
	"fmt"
	"os"
	"path"
	"path/filepath"

	"github.com/google/uuid"
)

// LocalFileStorage хранит загруженные файлы на локальном диске под rootDir.
// Возвращаемые ключи относительные ("folder/имя"), абсолютные URL из них
// собирает REST-слой.
type LocalFileStorage struct {
	rootDir string
}

func NewLocalFileStorage(rootDir string) (*LocalFileStorage, error) {
	if rootDir == "" {
		return nil, fmt.Errorf("file storage root directory is required")
	}
	return &LocalFileStorage{rootDir: rootDir}, nil
}

// Save записывает файл под случайным именем, сохраняя расширение исходного.
// Случайное имя исключает коллизии при параллельных загрузках.
func (s *LocalFileStorage) Save(ctx context.Context, fileBytes []byte, fileName string, folder string) (string, error) {
	extension := filepath.Ext(fileName)
	generatedName := uuid.New().String() + extension

	folderPath := filepath.Join(s.rootDir, folder)
	if err := os.MkdirAll(folderPath, 0o755); err != nil {
		return "", fmt.Errorf("failed to create storage folder %q: %w", folderPath, err)
	}

	filePath := filepath.Join(folderPath, generatedName)
	if err := os.WriteFile(filePath, fileBytes, 0o644); err != nil {
		return "", fmt.Errorf("failed to write file %q: %w", filePath, err)
	}

	// Ключ всегда с прямыми слешами, он уходит в URL.
	return path.Join(folder, generatedName), nil
}

// Delete удаляет файл по ключу или URL. Из ссылки берется только последний
// компонент - имя файла. Пустая ссылка и отсутствующий файл - no-op.
func (s *LocalFileStorage) Delete(ctx context.Context, ref string, folder string) error {
	if ref == "" {
		return nil
	}

	fileName := path.Base(ref)
	filePath := filepath.Join(s.rootDir, folder, fileName)

	if err := os.Remove(filePath); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete file %q: %w", filePath, err)
	}

	return nil
}
