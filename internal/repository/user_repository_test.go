package repository

import (
	"context"
	"testing"

	"github.com/alimikegami/apparel-store/internal/domain"
	"github.com/alimikegami/apparel-store/pkg/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

func TestGetUserByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("unknown email gives a zero user", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "apparel_store.users", mtest.FirstBatch))

		repo := CreateNewUserRepository(mt.DB)
		user, err := repo.GetUserByEmail(context.Background(), "nobody@example.com")

		require.NoError(t, err)
		assert.True(t, user.ID.IsZero())
	})

	mt.Run("password hash is decoded", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "apparel_store.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: primitive.NewObjectID()},
			{Key: "email", Value: "a@b.co"},
			{Key: "password", Value: "$2a$10$hash"},
		}))

		repo := CreateNewUserRepository(mt.DB)
		user, err := repo.GetUserByEmail(context.Background(), "a@b.co")

		require.NoError(t, err)
		assert.Equal(t, "$2a$10$hash", user.HashedPassword)
	})
}

func TestAddUser(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{Code: 11000, Message: "duplicate key error"}))

		repo := CreateNewUserRepository(mt.DB)
		_, err := repo.AddUser(context.Background(), domain.User{Email: "a@b.co"})

		assert.ErrorIs(t, err, errs.ErrUserAlreadyExists)
	})
}
