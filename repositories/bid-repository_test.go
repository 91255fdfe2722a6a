package repositories

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
)

const bidsNS = "devconnect.bids"

func TestBidRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("bids with developer summary", func(mt *mtest.T) {
		repo := NewBidRepository(mt.DB, nil)
		project, dev := primitive.NewObjectID(), primitive.NewObjectID()
		now := time.Now().UTC().Truncate(time.Millisecond)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, bidsNS, mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "project", Value: project},
				{Key: "developer", Value: bson.D{{Key: "_id", Value: dev}, {Key: "name", Value: "Linus"}, {Key: "email", Value: "linus@example.com"}}},
				{Key: "amount", Value: 200.0},
				{Key: "createdAt", Value: now},
			},
			bson.D{
				{Key: "_id", Value: primitive.NewObjectID()},
				{Key: "project", Value: project},
				{Key: "amount", Value: 500.0},
				{Key: "createdAt", Value: now},
			},
		))

		bids, err := repo.FindBidsByProject(context.Background(), project)
		require.NoError(mt, err)
		require.Len(mt, bids, 2)
		require.NotNil(mt, bids[0].Developer)
		assert.Equal(mt, "Linus", bids[0].Developer.Name)
		assert.Equal(mt, 200.0, bids[0].Amount)
		assert.Nil(mt, bids[1].Developer)
	})

	mt.Run("delete by project", func(mt *mtest.T) {
		repo := NewBidRepository(mt.DB, nil)
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "n", Value: 3}))

		removed, err := repo.DeleteBidsByProject(context.Background(), primitive.NewObjectID())
		require.NoError(mt, err)
		assert.Equal(mt, int64(3), removed)
	})

	mt.Run("delete by project fails", func(mt *mtest.T) {
		repo := NewBidRepository(mt.DB, nil)
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{Code: 2, Message: "bad value", Name: "BadValue"}))

		_, err := repo.DeleteBidsByProject(context.Background(), primitive.NewObjectID())
		assert.Error(mt, err)
	})

	mt.Run("distinct projects", func(mt *mtest.T) {
		repo := NewBidRepository(mt.DB, nil)
		a, b := primitive.NewObjectID(), primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateSuccessResponse(bson.E{Key: "values", Value: bson.A{a, b, "not-an-id"}}))

		ids, err := repo.DistinctBidProjects(context.Background())
		require.NoError(mt, err)
		assert.Equal(mt, []primitive.ObjectID{a, b}, ids)
	})

	mt.Run("delete by projects skips empty input", func(mt *mtest.T) {
		repo := NewBidRepository(mt.DB, nil)

		removed, err := repo.DeleteBidsByProjects(context.Background(), nil)
		require.NoError(mt, err)
		assert.Zero(mt, removed)
	})
}

func TestUserRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, nil)
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "devconnect.users", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Ada"},
			{Key: "email", Value: "ada@example.com"},
			{Key: "role", Value: "client"},
		}))

		user, err := repo.FindUserByID(context.Background(), id)
		require.NoError(mt, err)
		assert.Equal(mt, "client", user.Role)
	})

	mt.Run("missing", func(mt *mtest.T) {
		repo := NewUserRepository(mt.DB, nil)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "devconnect.users", mtest.FirstBatch))

		_, err := repo.FindUserByID(context.Background(), primitive.NewObjectID())
		assert.ErrorIs(mt, err, ErrNotFound)
	})
}
