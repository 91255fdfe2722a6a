package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sony/gobreaker"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Khan-Yazdani04/devconnect-lite/models"
)

type ProjectRepository struct {
	projects *mongo.Collection
	breaker  *gobreaker.CircuitBreaker
}

func NewProjectRepository(db *mongo.Database, breaker *gobreaker.CircuitBreaker) *ProjectRepository {
	return &ProjectRepository{
		projects: db.Collection(ProjectsCollection),
		breaker:  breaker,
	}
}

// userSummaryLookup replaces the ObjectID in field with {_id, name, email} of
// the referenced user, dropping the field when the user does not exist.
func userSummaryLookup(field string) mongo.Pipeline {
	return mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: UsersCollection},
			{Key: "let", Value: bson.D{{Key: "ref", Value: "$" + field}}},
			{Key: "pipeline", Value: bson.A{
				bson.D{{Key: "$match", Value: bson.D{{Key: "$expr", Value: bson.D{{Key: "$eq", Value: bson.A{"$_id", "$$ref"}}}}}}},
				bson.D{{Key: "$project", Value: bson.D{{Key: "name", Value: 1}, {Key: "email", Value: 1}}}},
			}},
			{Key: "as", Value: field},
		}}},
		{{Key: "$unwind", Value: bson.D{
			{Key: "path", Value: "$" + field},
			{Key: "preserveNullAndEmptyArrays", Value: true},
		}}},
	}
}

func (r *ProjectRepository) InsertProject(ctx context.Context, project *models.Project) error {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	_, err := execute(r.breaker, func() (*mongo.InsertOneResult, error) {
		return r.projects.InsertOne(ctx, project)
	})
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}
	return nil
}

func (r *ProjectRepository) FindProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	return execute(r.breaker, func() (*models.Project, error) {
		var project models.Project
		err := r.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&project)
		if err != nil {
			if errors.Is(err, mongo.ErrNoDocuments) {
				return nil, ErrNotFound
			}
			return nil, fmt.Errorf("error fetching project: %w", err)
		}
		return &project, nil
	})
}

// FindOpenProjects returns open projects, newest first, with creator summaries.
func (r *ProjectRepository) FindOpenProjects(ctx context.Context) ([]models.ProjectView, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "status", Value: models.StatusOpen}}}},
		{{Key: "$sort", Value: bson.D{{Key: "createdAt", Value: -1}}}},
	}, userSummaryLookup("createdBy")...)

	return execute(r.breaker, func() ([]models.ProjectView, error) {
		cursor, err := r.projects.Aggregate(ctx, pipeline)
		if err != nil {
			return nil, fmt.Errorf("unsuccessful procurement of projects: %w", err)
		}
		defer cursor.Close(ctx)

		projects := make([]models.ProjectView, 0)
		if err := cursor.All(ctx, &projects); err != nil {
			return nil, fmt.Errorf("unsuccessful decoding of projects: %w", err)
		}
		return projects, nil
	})
}

func (r *ProjectRepository) FindProjectView(ctx context.Context, id primitive.ObjectID) (*models.ProjectView, error) {
	pipeline := append(mongo.Pipeline{
		{{Key: "$match", Value: bson.D{{Key: "_id", Value: id}}}},
		{{Key: "$limit", Value: 1}},
	}, userSummaryLookup("createdBy")...)

	return execute(r.breaker, func() (*models.ProjectView, error) {
		cursor, err := r.projects.Aggregate(ctx, pipeline)
		if err != nil {
			return nil, fmt.Errorf("error fetching project: %w", err)
		}
		defer cursor.Close(ctx)

		if !cursor.Next(ctx) {
			if err := cursor.Err(); err != nil {
				return nil, fmt.Errorf("error fetching project: %w", err)
			}
			return nil, ErrNotFound
		}
		var view models.ProjectView
		if err := cursor.Decode(&view); err != nil {
			return nil, fmt.Errorf("error decoding project: %w", err)
		}
		return &view, nil
	})
}

// ReplaceProject overwrites the stored document with project.
func (r *ProjectRepository) ReplaceProject(ctx context.Context, project *models.Project) error {
	_, err := execute(r.breaker, func() (struct{}, error) {
		result, err := r.projects.ReplaceOne(ctx, bson.M{"_id": project.ID}, project)
		if err != nil {
			return struct{}{}, fmt.Errorf("failed to update project: %w", err)
		}
		if result.MatchedCount == 0 {
			return struct{}{}, ErrNotFound
		}
		return struct{}{}, nil
	})
	return err
}

// SetProjectStatus writes only status and updatedAt, leaving every other field
// as stored.
func (r *ProjectRepository) SetProjectStatus(ctx context.Context, id primitive.ObjectID, status models.ProjectStatus, at time.Time) error {
	update := bson.M{"$set": bson.M{"status": status, "updatedAt": at}}
	_, err := execute(r.breaker, func() (struct{}, error) {
		result, err := r.projects.UpdateOne(ctx, bson.M{"_id": id}, update)
		if err != nil {
			return struct{}{}, fmt.Errorf("failed to update project status: %w", err)
		}
		if result.MatchedCount == 0 {
			return struct{}{}, ErrNotFound
		}
		return struct{}{}, nil
	})
	return err
}

func (r *ProjectRepository) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	_, err := execute(r.breaker, func() (struct{}, error) {
		result, err := r.projects.DeleteOne(ctx, bson.M{"_id": id})
		if err != nil {
			return struct{}{}, fmt.Errorf("failed to delete project: %w", err)
		}
		if result.DeletedCount == 0 {
			return struct{}{}, ErrNotFound
		}
		return struct{}{}, nil
	})
	return err
}

// ExistingProjectIDs returns the subset of ids that still have a project document.
func (r *ProjectRepository) ExistingProjectIDs(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	if len(ids) == 0 {
		return []primitive.ObjectID{}, nil
	}
	opts := options.Find().SetProjection(bson.M{"_id": 1})

	return execute(r.breaker, func() ([]primitive.ObjectID, error) {
		cursor, err := r.projects.Find(ctx, bson.M{"_id": bson.M{"$in": ids}}, opts)
		if err != nil {
			return nil, fmt.Errorf("failed to look up projects: %w", err)
		}
		defer cursor.Close(ctx)

		var docs []struct {
			ID primitive.ObjectID `bson:"_id"`
		}
		if err := cursor.All(ctx, &docs); err != nil {
			return nil, fmt.Errorf("failed to decode project ids: %w", err)
		}
		existing := make([]primitive.ObjectID, 0, len(docs))
		for _, d := range docs {
			existing = append(existing, d.ID)
		}
		return existing, nil
	})
}
