package repository

import (
	"context"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

type TransactorImpl struct {
	db *mongo.Database
}

func CreateNewTransactor(db *mongo.Database) Transactor {
	return &TransactorImpl{db: db}
}

// HandleTrx relies on session.WithTransaction, which retries fn on transient errors
// such as write conflicts, so fn must only touch the database.
func (t *TransactorImpl) HandleTrx(ctx context.Context, fn func(ctx context.Context) error) error {
	session, err := t.db.Client().StartSession()
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "HandleTrx").Msg("")
		return err
	}
	defer session.EndSession(ctx)

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx)
	})

	return err
}
