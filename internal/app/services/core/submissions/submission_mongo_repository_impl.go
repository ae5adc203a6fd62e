package submissions

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type SubmissionMongoRepository struct {
	Collection *mongo.Collection
}

func NewSubmissionMongoRepository(db *mongo.Client, dbName string) contracts.SubmissionRepository {
	return &SubmissionMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionSubmissions),
	}
}

func (r *SubmissionMongoRepository) FindByID(ctx context.Context, submissionID string) (*models.SurveySubmission, error) {
	var submission models.SurveySubmission
	err := r.Collection.FindOne(ctx, bson.M{"_id": submissionID}).Decode(&submission)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &submission, nil
}

func (r *SubmissionMongoRepository) FindByAccountID(ctx context.Context, accountID string) ([]models.SurveySubmission, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: 1}})
	cursor, err := r.Collection.Find(ctx, bson.M{"accountId": accountID}, opts)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var submissions []models.SurveySubmission
	if err := cursor.All(ctx, &submissions); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return submissions, nil
}

func (r *SubmissionMongoRepository) Create(ctx context.Context, submission *models.SurveySubmission) error {
	if submission.ID == "" {
		submission.ID = uuid.NewString()
	}
	submission.Version = 0

	_, err := r.Collection.InsertOne(ctx, submission)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

// Update replaces the stored document only while it still has the version
// submission was loaded with, and bumps the version on success.
func (r *SubmissionMongoRepository) Update(ctx context.Context, submission *models.SurveySubmission) error {
	filter := bson.M{"_id": submission.ID, "version": submission.Version}

	next := *submission
	next.Version++

	result, err := r.Collection.ReplaceOne(ctx, filter, &next)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrVersionConflict("submission", submission.ID)
	}
	submission.Version = next.Version
	return nil
}

func (r *SubmissionMongoRepository) SetAssignedDoctorByAccountID(ctx context.Context, accountID, doctorID string) (int64, error) {
	filter := bson.M{"accountId": accountID}
	update := bson.M{
		"$set": bson.M{"assignedDoctor": doctorID, "updatedAt": time.Now()},
		"$inc": bson.M{"version": 1},
	}

	result, err := r.Collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount, nil
}
