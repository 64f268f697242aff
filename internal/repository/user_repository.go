package repository

import (
	"context"
	"errors"
	"time"

	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/alimikegami/apparel-store/pkg/errs"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepositoryImpl struct {
	db *mongo.Database
}

func CreateNewUserRepository(db *mongo.Database) UserRepository {
	return &UserRepositoryImpl{db: db}
}

func (r *UserRepositoryImpl) AddUser(ctx context.Context, data domain.User) (id primitive.ObjectID, err error) {
	stampCreated(&data.CreatedAt, &data.UpdatedAt)

	result, err := r.db.Collection(usersCollection).InsertOne(ctx, data)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return id, errs.ErrUserAlreadyExists
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "AddUser").Msg("")
		return
	}

	return result.InsertedID.(primitive.ObjectID), nil
}

// GetUserByEmail returns a zero User, not an error, when nobody has the email.
func (r *UserRepositoryImpl) GetUserByEmail(ctx context.Context, email string) (user domain.User, err error) {
	err = r.db.Collection(usersCollection).FindOne(ctx, bson.D{{Key: "email", Value: email}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return domain.User{}, nil
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetUserByEmail").Msg("")
		return user, err
	}

	return user, nil
}

func (r *UserRepositoryImpl) GetUserByID(ctx context.Context, id primitive.ObjectID) (user domain.User, err error) {
	err = r.db.Collection(usersCollection).FindOne(ctx, bson.D{{Key: "_id", Value: id}}).Decode(&user)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return user, errs.ErrAccountNotFound
		}

		log.Ctx(ctx).Error().Err(err).Str("component", "GetUserByID").Msg("")
		return user, err
	}

	return user, nil
}

func (r *UserRepositoryImpl) GetUsers(ctx context.Context) (data []domain.User, err error) {
	cursor, err := r.db.Collection(usersCollection).Find(ctx, bson.D{})
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUsers").Msg("")
		return
	}
	defer cursor.Close(ctx)

	data = []domain.User{}
	if err = cursor.All(ctx, &data); err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "GetUsers").Msg("")
		return nil, err
	}

	return data, nil
}

func (r *UserRepositoryImpl) UpdateUserPassword(ctx context.Context, id primitive.ObjectID, hashedPassword string) (err error) {
	filter := bson.D{{Key: "_id", Value: id}}
	update := bson.D{{Key: "$set", Value: bson.D{
		{Key: "password", Value: hashedPassword},
		{Key: "updatedAt", Value: time.Now().UTC()},
	}}}

	result, err := r.db.Collection(usersCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		log.Ctx(ctx).Error().Err(err).Str("component", "UpdateUserPassword").Msg("")
		return
	}

	if result.MatchedCount == 0 {
		return errs.ErrAccountNotFound
	}

	return nil
}
