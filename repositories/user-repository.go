package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Khan-Yazdani04/devconnect-lite/models"
)

// UserRepository reads the accounts collection owned by the auth service.
type UserRepository struct {
	users   *mongo.Collection
	breaker *gobreaker.CircuitBreaker
}

func NewUserRepository(db *mongo.Database, breaker *gobreaker.CircuitBreaker) *UserRepository {
	return &UserRepository{
		users:   db.Collection(UsersCollection),
		breaker: breaker,
	}
}

func (r *UserRepository) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	opts := options.FindOne().SetProjection(bson.M{"name": 1, "email": 1, "role": 1})

	return execute(r.breaker, func() (*models.User, error) {
		var user models.User
		err := r.users.FindOne(ctx, bson.M{"_id": id}, opts).Decode(&user)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("error fetching user: %w", err)
		}
		return &user, nil
	})
}
