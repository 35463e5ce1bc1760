package port

import "context"

// FileStoragePort - контракт хранилища загружаемых файлов.
type FileStoragePort interface {
	// Save записывает файл под сгенерированным именем (расширение исходного
	// имени сохраняется) и возвращает относительный ключ "folder/имя".
	Save(ctx context.Context, fileBytes []byte, fileName string, folder string) (string, error)

	// Delete удаляет файл по ключу или URL. Пустая ссылка и отсутствующий
	// файл - не ошибка.
	Delete(ctx context.Context, ref string, folder string) error
}
