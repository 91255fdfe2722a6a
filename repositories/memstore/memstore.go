// Package memstore keeps projects, bids and users in process memory. It follows
// the same contracts as the MongoDB repositories and backs STORE_BACKEND=memory
// as well as the service and handler tests.
package memstore

import (
	"context"
	"sort"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Khan-Yazdani04/devconnect-lite/models"
	"github.com/Khan-Yazdani04/devconnect-lite/repositories"
)

type Store struct {
	mu       sync.RWMutex
	projects map[primitive.ObjectID]models.Project
	bids     map[primitive.ObjectID]models.Bid
	users    map[primitive.ObjectID]models.User

	// FailBidCleanup makes DeleteBidsByProject fail, for exercising the
	// non-atomic delete path.
	FailBidCleanup error
}

func New() *Store {
	return &Store{
		projects: make(map[primitive.ObjectID]models.Project),
		bids:     make(map[primitive.ObjectID]models.Bid),
		users:    make(map[primitive.ObjectID]models.User),
	}
}

func (s *Store) Ping(ctx context.Context) error {
	return nil
}

func (s *Store) Close(ctx context.Context) error {
	return nil
}

// PutUser stores u, assigning an id when it has none.
func (s *Store) PutUser(u models.User) models.User {
	if u.ID.IsZero() {
		u.ID = primitive.NewObjectID()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users[u.ID] = u
	return u
}

// PutBid stores b, assigning an id and timestamps when missing.
func (s *Store) PutBid(b models.Bid) models.Bid {
	if b.ID.IsZero() {
		b.ID = primitive.NewObjectID()
	}
	if b.CreatedAt.IsZero() {
		b.CreatedAt = time.Now().UTC()
		b.UpdatedAt = b.CreatedAt
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.bids[b.ID] = b
	return b
}

// BidCount reports how many bids reference projectID.
func (s *Store) BidCount(projectID primitive.ObjectID) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, b := range s.bids {
		if b.Project == projectID {
			n++
		}
	}
	return n
}

func (s *Store) ProjectCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.projects)
}

func (s *Store) FindUserByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	return &u, nil
}

func (s *Store) InsertProject(ctx context.Context, project *models.Project) error {
	if project.ID.IsZero() {
		project.ID = primitive.NewObjectID()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.projects[project.ID] = cloneProject(*project)
	return nil
}

func (s *Store) FindProjectByID(ctx context.Context, id primitive.ObjectID) (*models.Project, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	p = cloneProject(p)
	return &p, nil
}

func (s *Store) FindOpenProjects(ctx context.Context) ([]models.ProjectView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]models.ProjectView, 0)
	for _, p := range s.projects {
		if p.Status != models.StatusOpen {
			continue
		}
		views = append(views, models.NewProjectView(cloneProject(p), s.summaryLocked(p.CreatedBy)))
	}
	sort.SliceStable(views, func(i, j int) bool {
		return views[i].CreatedAt.After(views[j].CreatedAt)
	})
	return views, nil
}

func (s *Store) FindProjectView(ctx context.Context, id primitive.ObjectID) (*models.ProjectView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.projects[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	view := models.NewProjectView(cloneProject(p), s.summaryLocked(p.CreatedBy))
	return &view, nil
}

func (s *Store) ReplaceProject(ctx context.Context, project *models.Project) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[project.ID]; !ok {
		return repositories.ErrNotFound
	}
	s.projects[project.ID] = cloneProject(*project)
	return nil
}

func (s *Store) SetProjectStatus(ctx context.Context, id primitive.ObjectID, status models.ProjectStatus, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.projects[id]
	if !ok {
		return repositories.ErrNotFound
	}
	p.Status = status
	p.UpdatedAt = at
	s.projects[id] = p
	return nil
}

func (s *Store) DeleteProject(ctx context.Context, id primitive.ObjectID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.projects[id]; !ok {
		return repositories.ErrNotFound
	}
	delete(s.projects, id)
	return nil
}

func (s *Store) ExistingProjectIDs(ctx context.Context, ids []primitive.ObjectID) ([]primitive.ObjectID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	existing := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if _, ok := s.projects[id]; ok {
			existing = append(existing, id)
		}
	}
	return existing, nil
}

func (s *Store) FindBidsByProject(ctx context.Context, projectID primitive.ObjectID) ([]models.BidView, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	views := make([]models.BidView, 0)
	for _, b := range s.bids {
		if b.Project == projectID {
			views = append(views, models.NewBidView(b, s.summaryLocked(b.Developer)))
		}
	}
	sort.SliceStable(views, func(i, j int) bool {
		if views[i].Amount == views[j].Amount {
			return views[i].CreatedAt.Before(views[j].CreatedAt)
		}
		return views[i].Amount < views[j].Amount
	})
	return views, nil
}

func (s *Store) DeleteBidsByProject(ctx context.Context, projectID primitive.ObjectID) (int64, error) {
	if s.FailBidCleanup != nil {
		return 0, s.FailBidCleanup
	}
	return s.DeleteBidsByProjects(ctx, []primitive.ObjectID{projectID})
}

func (s *Store) DistinctBidProjects(ctx context.Context) ([]primitive.ObjectID, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	seen := make(map[primitive.ObjectID]struct{})
	ids := make([]primitive.ObjectID, 0)
	for _, b := range s.bids {
		if _, ok := seen[b.Project]; ok {
			continue
		}
		seen[b.Project] = struct{}{}
		ids = append(ids, b.Project)
	}
	return ids, nil
}

func (s *Store) DeleteBidsByProjects(ctx context.Context, projectIDs []primitive.ObjectID) (int64, error) {
	targets := make(map[primitive.ObjectID]struct{}, len(projectIDs))
	for _, id := range projectIDs {
		targets[id] = struct{}{}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	var removed int64
	for id, b := range s.bids {
		if _, ok := targets[b.Project]; ok {
			delete(s.bids, id)
			removed++
		}
	}
	return removed, nil
}

func (s *Store) summaryLocked(id primitive.ObjectID) *models.UserSummary {
	u, ok := s.users[id]
	if !ok {
		return nil
	}
	return u.Summary()
}

func cloneProject(p models.Project) models.Project {
	if p.TechStack != nil {
		p.TechStack = append(make([]string, 0, len(p.TechStack)), p.TechStack...)
	}
	return p
}
