package services

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Khan-Yazdani04/devconnect-lite/models"
)

// ProjectStore persists projects. Lookups of a missing document return
// repositories.ErrNotFound.
type ProjectStore interface {
	InsertProject(ctx context.Context, project *models.Project) error
	FindProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error)
	FindOpenProjects(ctx context.Context) ([]models.ProjectView, error)
	FindProjectView(ctx context.Context, id primitive.ObjectID) (*models.ProjectView, error)
	ReplaceProject(ctx context.Context, project *models.Project) error
	SetProjectStatus(ctx context.Context, id primitive.ObjectID, status models.ProjectStatus, at time.Time) error
	DeleteProject(ctx context.Context, id primitive.ObjectID) error
	ExistingProjectIDs(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error)
}

// BidStore reads and removes bids referencing projects.
type BidStore interface {
	FindBidsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.BidView, error)
	DeleteBidsByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error)
	DistinctBidProjects(ctx context.Context) ([]primitive.ObjectID, error)
	DeleteBidsByProjects(ctx context.Context, projectIDs []primitive.ObjectID) (int64, error)
}

// Clock returns the current time; tests replace it to pin deadlines.
type Clock func() time.Time

func systemClock() time.Time {
	return time.Now().UTC()
}
