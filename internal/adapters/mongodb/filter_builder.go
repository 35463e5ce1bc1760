package mongodb

import (
	"real-estate-catalog/internal/core/domain"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// filterBuilder накапливает bson-условия для поиска по коллекции.
type filterBuilder struct {
	conditions []bson.M
}

func newFilterBuilder() *filterBuilder {
	return &filterBuilder{conditions: make([]bson.M, 0)}
}

// AddRegexFilter - поиск подстроки без учета регистра (опция "i").
func (fb *filterBuilder) AddRegexFilter(fieldName string, pattern *string) {
	if pattern == nil || *pattern == "" {
		return
	}
	fb.conditions = append(fb.conditions, bson.M{
		fieldName: primitive.Regex{Pattern: *pattern, Options: "i"},
	})
}

// AddRangeFilter - включительные границы min/max.
func (fb *filterBuilder) AddRangeFilter(fieldName string, min *float64, max *float64) {
	if min != nil {
		fb.conditions = append(fb.conditions, bson.M{fieldName: bson.M{"$gte": *min}})
	}
	if max != nil {
		fb.conditions = append(fb.conditions, bson.M{fieldName: bson.M{"$lte": *max}})
	}
}

// build собирает финальный фильтр. Без условий возвращает пустой фильтр
// ("вернуть всё").
func (fb *filterBuilder) build() bson.M {
	if len(fb.conditions) == 0 {
		return bson.M{}
	}
	return bson.M{"$and": fb.conditions}
}

// applyFilters - разбирает доменные фильтры и строит запрос к коллекции.
// Все заданные фильтры комбинируются через логическое И.
func applyFilters(filters domain.PropertyFilters) bson.M {
	fb := newFilterBuilder()

	// Фильтр по названию (подстрока, без учета регистра)
	fb.AddRegexFilter("name", filters.Name)

	// Фильтр по адресу (подстрока, без учета регистра)
	fb.AddRegexFilter("address", filters.Address)

	// Фильтр по цене (включительные границы)
	fb.AddRangeFilter("price", filters.MinPrice, filters.MaxPrice)

	return fb.build()
}
