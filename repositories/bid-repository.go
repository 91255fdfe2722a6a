package repositories

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/Khan-Yazdani04/devconnect-lite/models"
)

type BidRepository struct {
	bids    *mongo.Collection
	breaker *gobreaker.CircuitBreaker
}

func NewBidRepository(db *mongo.Database, breaker *gobreaker.CircuitBreaker) *BidRepository {
	return &BidRepository{
		bids:    db.Collection(BidsCollection),
		breaker: breaker,
	}
}

// FindBidsByProject returns the project's bids, lowest amount first, each with
// the developer summary attached.
func (r *BidRepository) FindBidsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.BidView, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "project", Value: projectID}}}},
		{{Key: "$sort", Value: bson.D{{Key: "amount", Value: 1}}}},
	}, userSummaryLookup("developer")...)

	return execute(r.breaker, func() ([]models.BidView, error) {
		cursor, err := r.bids.Aggregate(ctx, pipeline)
		if err != nil {
			return nil, fmt.Errorf("failed to retrieve bids: %w", err)
		}
		defer cursor.Close(ctx)

		bids := make([]models.BidView, 0)
		if err := cursor.All(ctx, &bids); err != nil {
			return nil, fmt.Errorf("failed to decode bids: %w", err)
		}
		return bids, nil
	})
}

func (r *BidRepository) DeleteBidsByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	return execute(r.breaker, func() (int64, error) {
		result, err := r.bids.DeleteMany(ctx, bson.M{"project": projectID})
		if err != nil {
			return 0, fmt.Errorf("failed to delete bids for project %s: %w", projectID.Hex(), err)
		}
		return result.DeletedCount, nil
	})
}

// DistinctBidProjects lists every project id referenced by at least one bid.
func (r *BidRepository) DistinctBidProjects(ctx context.Context) ([]primitive.ObjectID, error) {
	return execute(r.breaker, func() ([]primitive.ObjectID, error) {
		values, err := r.bids.Distinct(ctx, "project", bson.M{})
		if err != nil {
			return nil, fmt.Errorf("failed to list bid projects: %w", err)
		}
		ids := make([]primitive.ObjectID, 0, len(values))
		for _, v := range values {
			if id, ok := v.(primitive.ObjectID); ok {
				ids = append(ids, id)
			}
		}
		return ids, nil
	})
}

func (r *BidRepository) DeleteBidsByProjects(ctx context.Context, projectIDs []primitive.ObjectID) (int64, error) {
	if len(projectIDs) == 0 {
		return 0, nil
	}
	return execute(r.breaker, func() (int64, error) {
		result, err := r.bids.DeleteMany(ctx, bson.M{"project": bson.M{"$in": projectIDs}})
		if err != nil {
			return 0, fmt.Errorf("failed to delete orphaned bids: %w", err)
		}
		return result.DeletedCount, nil
	})
}
