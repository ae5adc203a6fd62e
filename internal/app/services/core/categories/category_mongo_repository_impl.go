package categories

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type CategoryMongoRepository struct {
	Collection *mongo.Collection
}

func NewCategoryMongoRepository(db *mongo.Client, dbName string) contracts.CategoryRepository {
	return &CategoryMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionCategories),
	}
}

func (r *CategoryMongoRepository) FindByName(ctx context.Context, name string) (*models.Category, error) {
	var category models.Category
	err := r.Collection.FindOne(ctx, bson.M{"name": name}).Decode(&category)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &category, nil
}

func (r *CategoryMongoRepository) FindAll(ctx context.Context) ([]models.Category, error) {
	opts := options.Find().SetSort(bson.D{{Key: "order", Value: 1}, {Key: "name", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var categories []models.Category
	for cursor.Next(ctx) {
		var category models.Category
		if err := cursor.Decode(&category); err != nil {
			return nil, exceptions.ErrMongoDBDecodeDocument(err)
		}
		categories = append(categories, category)
	}
	if err := cursor.Err(); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return categories, nil
}
