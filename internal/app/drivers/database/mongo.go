package database

import (
	"context"
	"fmt"
	"intake-service/internal/app/config"
	"log"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

func NewMongoDB(driverConfig *config.DriverConfig) *mongo.Client {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, newMongoClientOptions(driverConfig))
	if err != nil {
		log.Fatalf("Failed to connect to mongo database: %s", err.Error())
	}
	err = client.Ping(ctx, readpref.Primary())
	if err != nil {
		log.Fatalf("Failed to ping or test the connection to mongo database: %s", err.Error())
	}
	log.Println("Successfully connected to mongo database")
	return client
}

func newMongoClientOptions(driverConfig *config.DriverConfig) *options.ClientOptions {
	connectionString := fmt.Sprintf(
		"mongodb://%s:%s",
		driverConfig.MongoDB.Host,
		driverConfig.MongoDB.Port,
	)
	dbOptions := options.Client().ApplyURI(connectionString)
	if driverConfig.MongoDB.Username != "" {
		dbOptions.SetAuth(options.Credential{
			Username: driverConfig.MongoDB.Username,
			Password: driverConfig.MongoDB.Password,
		})
	}
	if driverConfig.MongoDB.ReplicaSet != "" {
		dbOptions.SetReplicaSet(driverConfig.MongoDB.ReplicaSet)
	}
	return dbOptions
}
