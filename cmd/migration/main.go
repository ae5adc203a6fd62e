package main

import (
	"context"
	"intake-service/internal/app/config"
	"intake-service/internal/app/drivers/database"
	"intake-service/internal/pkg/constvars"
	"log"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// seedCategories are upserted by name so reruns keep existing ids.
var seedCategories = []struct {
	Name  string
	Order int
}{
	{Name: "Medical History", Order: 1},
	{Name: "Allergies", Order: 2},
	{Name: constvars.CategoryNameCurrentMedication, Order: 3},
	{Name: "Lifestyle", Order: 4},
}

func main() {
	driverConfig := config.NewDriverConfig()
	client := database.NewMongoDB(driverConfig)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	defer client.Disconnect(context.Background())

	db := client.Database(driverConfig.MongoDB.DbName)

	if err := ensureIndexes(ctx, db); err != nil {
		log.Fatalf("Error creating indexes: %v", err)
	}
	log.Println("Indexes are up to date")

	seeded, err := seedCatalog(ctx, db.Collection(constvars.MongoCollectionCategories))
	if err != nil {
		log.Fatalf("Error seeding categories: %v", err)
	}
	log.Printf("Seeded %d new categories", seeded)
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		constvars.MongoCollectionVitals: {
			{Keys: bson.D{{Key: "patientId", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
		constvars.MongoCollectionSubmissions: {
			{Keys: bson.D{{Key: "accountId", Value: 1}}},
			{Keys: bson.D{{Key: "status", Value: 1}}},
		},
		constvars.MongoCollectionAccounts: {
			{Keys: bson.D{{Key: "email", Value: 1}}},
			{Keys: bson.D{{Key: "followUpDate", Value: 1}}, Options: options.Index().SetSparse(true)},
			{Keys: bson.D{{Key: "refillReminderDate", Value: 1}}, Options: options.Index().SetSparse(true)},
		},
		constvars.MongoCollectionCategories: {
			{Keys: bson.D{{Key: "name", Value: 1}}, Options: options.Index().SetUnique(true)},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return err
		}
	}
	return nil
}

func seedCatalog(ctx context.Context, collection *mongo.Collection) (int64, error) {
	var seeded int64
	for _, category := range seedCategories {
		result, err := collection.UpdateOne(ctx,
			bson.M{"name": category.Name},
			bson.M{"$setOnInsert": bson.M{"_id": uuid.NewString(), "name": category.Name, "order": category.Order}},
			options.Update().SetUpsert(true),
		)
		if err != nil {
			return seeded, err
		}
		seeded += result.UpsertedCount
	}
	return seeded, nil
}
