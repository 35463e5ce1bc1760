package domain

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property — объект недвижимости, единственная сущность каталога.
type Property struct {
	ID      primitive.ObjectID `bson:"_id,omitempty"`
	OwnerID string             `bson:"owner_id"`
	Name    string             `bson:"name"`
	Address string             `bson:"address"`
	Price   float64            `bson:"price"`
	// ImageKey - относительный ключ блоба ("images/<uuid>.png").
	// Абсолютный URL собирается на уровне REST из конфигурации сервера.
	ImageKey string `bson:"image_key"`
}

// PropertyFilters - необязательные фильтры для поиска объектов.
// nil-указатель означает "фильтр не задан".
type PropertyFilters struct {
	Name     *string
	Address  *string
	MinPrice *float64
	MaxPrice *float64
}

// CreatePropertyInput - входные данные для создания объекта.
// Поля id и image_key здесь отсутствуют намеренно: id назначает хранилище,
// ключ картинки - файловое хранилище.
type CreatePropertyInput struct {
	OwnerID       string
	Name          string
	Address       string
	Price         float64
	ImageBytes    []byte
	ImageFileName string
}
