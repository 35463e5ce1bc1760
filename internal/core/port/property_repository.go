package port

import (
	"context"
	"real-estate-catalog/internal/core/domain"
)

// PropertyRepositoryPort - контракт хранилища объектов недвижимости.
type PropertyRepositoryPort interface {
	// List возвращает объекты, подходящие под все заданные фильтры.
	// Пустые фильтры означают "вернуть всё".
	List(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, error)

	// GetByID возвращает объект по идентификатору или nil, если его нет.
	// Некорректный идентификатор трактуется как "не найдено", а не как ошибка.
	GetByID(ctx context.Context, id string) (*domain.Property, error)

	// Add вставляет новый объект и заполняет его ID.
	Add(ctx context.Context, property *domain.Property) error

	// Delete удаляет объект и сообщает, существовала ли запись.
	Delete(ctx context.Context, id string) (bool, error)

	// ExistsByNameAndAddress проверяет точное совпадение пары name+address.
	// Проверка не атомарна со вставкой: две параллельные вставки одной пары
	// могут обе её пройти.
	ExistsByNameAndAddress(ctx context.Context, name, address string) (bool, error)
}
