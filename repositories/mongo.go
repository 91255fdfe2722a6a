package repositories

import (
	"context"
	"fmt"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/Khan-Yazdani04/devconnect-lite/config"
	"github.com/Khan-Yazdani04/devconnect-lite/logging"
)

const (
	ProjectsCollection = "projects"
	BidsCollection     = "bids"
	UsersCollection    = "users"
)

// Mongo bundles the client and the repositories sharing its breaker.
type Mongo struct {
	Client   *mongo.Client
	DB       *mongo.Database
	Projects *ProjectRepository
	Bids     *BidRepository
	Users    *UserRepository
}

// Connect dials MongoDB and verifies the connection with a ping.
func Connect(ctx context.Context, cfg config.MongoConfig, breakerCfg config.BreakerConfig) (*Mongo, error) {
	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, options.Client().ApplyURI(cfg.URI))
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("mongodb ping failed: %w", err)
	}
	logging.Logger.Infof("Event ID: DB_CONNECTED, Description: Connected to MongoDB database %s", cfg.Database)

	return NewMongo(client, client.Database(cfg.Database), NewBreaker("mongo-store", breakerCfg)), nil
}

func NewMongo(client *mongo.Client, db *mongo.Database, breaker *gobreaker.CircuitBreaker) *Mongo {
	return &Mongo{
		Client:   client,
		DB:       db,
		Projects: NewProjectRepository(db, breaker),
		Bids:     NewBidRepository(db, breaker),
		Users:    NewUserRepository(db, breaker),
	}
}

func (m *Mongo) Ping(ctx context.Context) error {
	return m.Client.Ping(ctx, readpref.Primary())
}

func (m *Mongo) Close(ctx context.Context) error {
	return m.Client.Disconnect(ctx)
}

// EnsureIndexes creates the indexes the listing, detail and cascade queries rely on.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	projectIndexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "status", Value: 1}, {Key: "createdAt", Value: -1}},
			Options: options.Index().SetName("status_createdAt"),
		},
		{
			Keys:    bson.D{{Key: "createdBy", Value: 1}},
			Options: options.Index().SetName("createdBy"),
		},
	}
	if _, err := db.Collection(ProjectsCollection).Indexes().CreateMany(ctx, projectIndexes); err != nil {
		return fmt.Errorf("failed to create project indexes: %w", err)
	}

	bidIndex := mongo.IndexModel{
		Keys:    bson.D{{Key: "project", Value: 1}, {Key: "amount", Value: 1}},
		Options: options.Index().SetName("project_amount"),
	}
	if _, err := db.Collection(BidsCollection).Indexes().CreateOne(ctx, bidIndex); err != nil {
		return fmt.Errorf("failed to create bid index: %w", err)
	}

	logging.Logger.Info("Event ID: DB_INDEXES_READY, Description: Project and bid indexes created")
	return nil
}
