package accounts

import (
	"context"
	"fmt"
	"intake-service/internal/app/contracts"
	"intake-service/internal/app/models"
	"intake-service/internal/pkg/constvars"
	"intake-service/internal/pkg/exceptions"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type AccountMongoRepository struct {
	Collection *mongo.Collection
}

func NewAccountMongoRepository(db *mongo.Client, dbName string) contracts.AccountRepository {
	return &AccountMongoRepository{
		Collection: db.Database(dbName).Collection(constvars.MongoCollectionAccounts),
	}
}

func (r *AccountMongoRepository) FindByID(ctx context.Context, accountID string) (*models.PatientAccount, error) {
	var account models.PatientAccount
	err := r.Collection.FindOne(ctx, bson.M{"_id": accountID}).Decode(&account)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	return &account, nil
}

func (r *AccountMongoRepository) Create(ctx context.Context, account *models.PatientAccount) error {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	account.Version = 0

	_, err := r.Collection.InsertOne(ctx, account)
	if err != nil {
		return exceptions.ErrMongoDBInsertDocument(err)
	}
	return nil
}

func (r *AccountMongoRepository) Update(ctx context.Context, account *models.PatientAccount) error {
	filter := bson.M{"_id": account.ID, "version": account.Version}

	next := *account
	next.Version++

	result, err := r.Collection.ReplaceOne(ctx, filter, &next)
	if err != nil {
		return exceptions.ErrMongoDBUpdateDocument(err)
	}
	if result.MatchedCount == 0 {
		return exceptions.ErrVersionConflict("account", account.ID)
	}
	account.Version = next.Version
	return nil
}

func (r *AccountMongoRepository) FindDueReminders(ctx context.Context, until time.Time) ([]models.PatientAccount, error) {
	filter := bson.M{
		"accountStatus": models.AccountStatusActive,
		"$or": []bson.M{
			{"followUpDate": bson.M{"$lte": until}, "followUpRemindedAt": nil},
			{"refillReminderDate": bson.M{"$lte": until}, "refillRemindedAt": nil},
		},
	}

	cursor, err := r.Collection.Find(ctx, filter)
	if err != nil {
		return nil, exceptions.ErrMongoDBFindDocument(err)
	}
	defer cursor.Close(ctx)

	var accounts []models.PatientAccount
	if err := cursor.All(ctx, &accounts); err != nil {
		return nil, exceptions.ErrMongoDBIterateDocuments(err)
	}
	return accounts, nil
}

// MarkReminderSent records the send time only while the account is still
// due on dueAt and unmarked. It reports false when the schedule moved since
// the account was loaded. The version is bumped so a staff edit holding the
// older copy reloads instead of clearing the mark.
func (r *AccountMongoRepository) MarkReminderSent(ctx context.Context, accountID string, kind models.ReminderKind, dueAt, sentAt time.Time) (bool, error) {
	filter, update, err := reminderSentUpdate(accountID, kind, dueAt, sentAt)
	if err != nil {
		return false, err
	}

	result, err := r.Collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, exceptions.ErrMongoDBUpdateDocument(err)
	}
	return result.MatchedCount > 0, nil
}

func reminderSentUpdate(accountID string, kind models.ReminderKind, dueAt, sentAt time.Time) (bson.M, bson.M, error) {
	var dueField, sentField string
	switch kind {
	case models.ReminderKindFollowUp:
		dueField, sentField = "followUpDate", "followUpRemindedAt"
	case models.ReminderKindRefill:
		dueField, sentField = "refillReminderDate", "refillRemindedAt"
	default:
		return nil, nil, exceptions.ErrServerProcess(fmt.Errorf("unknown reminder kind %q", kind))
	}

	filter := bson.M{"_id": accountID, dueField: dueAt, sentField: nil}
	update := bson.M{
		"$set": bson.M{sentField: sentAt},
		"$inc": bson.M{"version": 1},
	}
	return filter, update, nil
}
