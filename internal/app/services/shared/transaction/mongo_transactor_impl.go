package transaction

import (
	"context"
	"intake-service/internal/app/contracts"
	"intake-service/internal/pkg/exceptions"

	"go.mongodb.org/mongo-driver/mongo"
)

type mongoTransactor struct {
	client *mongo.Client
}

func NewMongoTransactor(client *mongo.Client) contracts.Transactor {
	return &mongoTransactor{client: client}
}

// WithTransaction runs fn in a multi-document transaction. Errors returned
// by fn are passed through unchanged so callers still see their kind.
func (t *mongoTransactor) WithTransaction(ctx context.Context, fn func(txCtx context.Context) error) error {
	session, err := t.client.StartSession()
	if err != nil {
		return exceptions.ErrMongoDBTransaction(err)
	}
	defer session.EndSession(ctx)

	var fnErr error
	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		fnErr = fn(sessCtx)
		return nil, fnErr
	}, transactionOptions())
	if fnErr != nil {
		return fnErr
	}
	if err != nil {
		return exceptions.ErrMongoDBTransaction(err)
	}
	return nil
}
