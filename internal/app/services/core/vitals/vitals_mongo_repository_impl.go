package vitals

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type VitalsMongoRepository struct {
	Collection *mongo.Collection
}

func NewVitalsMongoRepository(db *mongo.Client, dbName string) contracts.VitalsRepository {
	return &VitalsMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionVitals),
	}
}

func (r *VitalsMongoRepository) FindByPatientID(ctx context.Context, patientID string) (*models.VitalsRecord, error) {
	var record models.VitalsRecord
	err := r.Collection.FindOne(ctx, bson.M{"patientId": patientID}).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &record, nil
}

// Save inserts a record that has no id yet. The unique patientId index
// turns a concurrent first insert into a version conflict.
func (r *VitalsMongoRepository) Save(ctx context.Context, record *models.VitalsRecord) error {
	if record.ID == "" {
		return r.insert(ctx, record)
	}

	filter := bson.M{"_id": record.ID, "version": record.Version}
	next := *record
	next.Version++

	result, err := r.Collection.ReplaceOne(ctx, filter, &next)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrVersionConflict("vitals", record.PatientID)
	}
	record.Version = next.Version
	return nil
}

func (r *VitalsMongoRepository) insert(ctx context.Context, record *models.VitalsRecord) error {
	next := *record
	next.ID = uuid.NewString()
	next.Version = 0

	_, err := r.Collection.InsertOne(ctx, &next)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return exceptions.ErrVersionConflict("vitals", record.PatientID)
		}
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	record.ID = next.ID
	record.Version = next.Version
	return nil
}
