package mongodb

import (
	"context"
	"fmt"
	"real-estate-catalog/internal/contextkeys"
	"real-estate-catalog/internal/core/domain"
	"real-estate-catalog/internal/core/port"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoPropertyRepository реализует PropertyRepositoryPort поверх
// коллекции MongoDB.
type MongoPropertyRepository struct {
	collection *mongo.Collection
}

func NewMongoPropertyRepository(client *mongo.Client, database, collection string) (*MongoPropertyRepository, error) {
	if client == nil {
		return nil, fmt.Errorf("mongo client cannot be nil")
	}
	return &MongoPropertyRepository{
		collection: client.Database(database).Collection(collection),
	}, nil
}

// List ищет объекты по набору необязательных фильтров.
func (r *MongoPropertyRepository) List(ctx context.Context, filters domain.PropertyFilters) ([]domain.Property, error) {
	logger := contextkeys.LoggerFromContext(ctx)
	repoLogger := logger.WithFields(port.Fields{
		"component": "MongoPropertyRepository",
		"method":    "List",
	})

	filter := applyFilters(filters)

	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		repoLogger.Error("Failed to query properties", err, nil)
		return nil, fmt.Errorf("failed to query properties: %w", err)
	}
	defer cursor.Close(ctx)

	properties := make([]domain.Property, 0)
	if err := cursor.All(ctx, &properties); err != nil {
		repoLogger.Error("Failed to decode properties", err, nil)
		return nil, fmt.Errorf("failed to decode properties: %w", err)
	}

	repoLogger.Debug("Query finished", port.Fields{"total_found": len(properties)})

	return properties, nil
}

// GetByID возвращает объект по идентификатору или nil, если его нет.
// Некорректный hex-идентификатор трактуем как "не найдено".
func (r *MongoPropertyRepository) GetByID(ctx context.Context, id string) (*domain.Property, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, nil
	}

	var property domain.Property
	err = r.collection.FindOne(ctx, bson.M{"_id": objectID}).Decode(&property)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to fetch property %q: %w", id, err)
	}

	return &property, nil
}

// Add вставляет новый объект и заполняет сгенерированный ID.
func (r *MongoPropertyRepository) Add(ctx context.Context, property *domain.Property) error {
	result, err := r.collection.InsertOne(ctx, property)
	if err != nil {
		return fmt.Errorf("failed to insert property: %w", err)
	}

	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		property.ID = oid
	}

	return nil
}

// Delete удаляет объект и сообщает, была ли удалена запись.
func (r *MongoPropertyRepository) Delete(ctx context.Context, id string) (bool, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return false, nil
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": objectID})
	if err != nil {
		return false, fmt.Errorf("failed to delete property %q: %w", id, err)
	}

	return result.DeletedCount > 0, nil
}

// ExistsByNameAndAddress проверяет точное (с учетом регистра) совпадение
// пары name+address. Проверка не атомарна с последующей вставкой.
func (r *MongoPropertyRepository) ExistsByNameAndAddress(ctx context.Context, name, address string) (bool, error) {
	filter := bson.M{"$and": []bson.M{
		{"name": name},
		{"address": address},
	}}

	count, err := r.collection.CountDocuments(ctx, filter, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to check property existence: %w", err)
	}

	return count > 0, nil
}
