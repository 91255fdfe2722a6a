package memstore

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Khan-Yazdani04/devconnect-lite/models"
	"github.com/Khan-Yazdani04/devconnect-lite/repositories"
)

func TestStoreProjects(t *testing.T) {
	ctx := context.Background()
	s := New()
	owner := s.PutUser(models.User{Name: "Ada", Email: "ada@example.com", Role: models.RoleClient})
	base := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)

	open1 := &models.Project{Title: "one", Status: models.StatusOpen, CreatedBy: owner.ID, CreatedAt: base}
	open2 := &models.Project{Title: "two", Status: models.StatusOpen, CreatedBy: owner.ID, CreatedAt: base.Add(time.Hour), TechStack: []string{"go"}}
	closed := &models.Project{Title: "three", Status: models.StatusClosed, CreatedBy: owner.ID, CreatedAt: base.Add(2 * time.Hour)}
	for _, p := range []*models.Project{open1, open2, closed} {
		require.NoError(t, s.InsertProject(ctx, p))
		assert.False(t, p.ID.IsZero())
	}

	open2.TechStack[0] = "mutated"
	stored, err := s.FindProjectByID(ctx, open2.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"go"}, stored.TechStack)

	views, err := s.FindOpenProjects(ctx)
	require.NoError(t, err)
	require.Len(t, views, 2)
	assert.Equal(t, open2.ID, views[0].ID)
	assert.Equal(t, open1.ID, views[1].ID)
	assert.Equal(t, "Ada", views[0].CreatedBy.Name)
	assert.Equal(t, []string{}, views[1].TechStack)

	require.NoError(t, s.SetProjectStatus(ctx, open1.ID, models.StatusClosed, base.Add(3*time.Hour)))
	view, err := s.FindProjectView(ctx, open1.ID)
	require.NoError(t, err)
	assert.Equal(t, models.StatusClosed, view.Status)
	assert.Equal(t, base.Add(3*time.Hour), view.UpdatedAt)

	missing := primitive.NewObjectID()
	assert.ErrorIs(t, s.ReplaceProject(ctx, &models.Project{ID: missing}), repositories.ErrNotFound)
	assert.ErrorIs(t, s.DeleteProject(ctx, missing), repositories.ErrNotFound)
	assert.ErrorIs(t, s.SetProjectStatus(ctx, missing, models.StatusClosed, base), repositories.ErrNotFound)
	_, err = s.FindProjectView(ctx, missing)
	assert.ErrorIs(t, err, repositories.ErrNotFound)

	ids, err := s.ExistingProjectIDs(ctx, []primitive.ObjectID{open1.ID, missing})
	require.NoError(t, err)
	assert.Equal(t, []primitive.ObjectID{open1.ID}, ids)
}

func TestStoreBids(t *testing.T) {
	ctx := context.Background()
	s := New()
	dev := s.PutUser(models.User{Name: "Linus", Role: models.RoleDeveloper})
	project, other := primitive.NewObjectID(), primitive.NewObjectID()

	base := time.Date(2025, time.May, 1, 0, 0, 0, 0, time.UTC)
	s.PutBid(models.Bid{Project: project, Developer: dev.ID, Amount: 500, CreatedAt: base})
	s.PutBid(models.Bid{Project: project, Developer: dev.ID, Amount: 200, CreatedAt: base.Add(time.Minute)})
	s.PutBid(models.Bid{Project: project, Developer: primitive.NewObjectID(), Amount: 200, CreatedAt: base.Add(2 * time.Minute)})
	s.PutBid(models.Bid{Project: other, Developer: dev.ID, Amount: 50})

	bids, err := s.FindBidsByProject(ctx, project)
	require.NoError(t, err)
	require.Len(t, bids, 3)
	assert.Equal(t, []float64{200, 200, 500}, []float64{bids[0].Amount, bids[1].Amount, bids[2].Amount})
	assert.NotNil(t, bids[0].Developer)
	assert.Nil(t, bids[1].Developer)

	distinct, err := s.DistinctBidProjects(ctx)
	require.NoError(t, err)
	assert.ElementsMatch(t, []primitive.ObjectID{project, other}, distinct)

	removed, err := s.DeleteBidsByProject(ctx, project)
	require.NoError(t, err)
	assert.Equal(t, int64(3), removed)
	assert.Equal(t, 0, s.BidCount(project))
	assert.Equal(t, 1, s.BidCount(other))

	s.FailBidCleanup = assert.AnError
	_, err = s.DeleteBidsByProject(ctx, other)
	assert.ErrorIs(t, err, assert.AnError)
	assert.Equal(t, 1, s.BidCount(other))
}

func TestStoreUsers(t *testing.T) {
	s := New()
	u := s.PutUser(models.User{Name: "Ada", Role: models.RoleClient})

	found, err := s.FindUserByID(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Ada", found.Name)

	_, err = s.FindUserByID(context.Background(), primitive.NewObjectID())
	assert.ErrorIs(t, err, repositories.ErrNotFound)
}
