package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Khan-Yazdani04/devconnect-lite/logging"
	"github.com/Khan-Yazdani04/devconnect-lite/metrics"
	"github.com/Khan-Yazdani04/devconnect-lite/models"
	"github.com/Khan-Yazdani04/devconnect-lite/repositories"
)

// ProjectService owns the project lifecycle: creation by clients, public
// listing, detail with bids, and owner-only update, delete and close while the
// project is open.
type ProjectService struct {
	projects ProjectStore
	bids     BidStore
	metrics  *metrics.Metrics
	now      Clock
}

func NewProjectService(projects ProjectStore, bids BidStore, m *metrics.Metrics) *ProjectService {
	return &ProjectService{
		projects: projects,
		bids:     bids,
		metrics:  m,
		now:      systemClock,
	}
}

// WithClock replaces the time source used for timestamps and deadline checks.
func (s *ProjectService) WithClock(clock Clock) *ProjectService {
	s.now = clock
	return s
}

func (s *ProjectService) CreateProject(ctx context.Context, identity models.Identity, req models.CreateProjectRequest) (*models.Project, error) {
	if err := CanCreateProjects(identity); err != nil {
		return nil, err
	}
	if !req.HasRequiredFields() {
		return nil, newError(KindInvalidInput, "All fields are required")
	}

	now := s.now()
	project := &models.Project{
		ID:          primitive.NewObjectID(),
		Title:       *req.Title,
		Description: *req.Description,
		Budget:      float64(*req.Budget),
		Deadline:    req.Deadline.UTC(),
		TechStack:   req.TechStack,
		Status:      models.StatusOpen,
		CreatedBy:   identity.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.validate(project, now); err != nil {
		return nil, err
	}

	if err := s.projects.InsertProject(ctx, project); err != nil {
		return nil, err
	}

	s.metrics.RecordProjectEvent(metrics.EventCreated)
	logging.Logger.Infof("Event ID: PROJECT_CREATED, Description: Project %s created by %s", project.ID.Hex(), identity.ID.Hex())
	return project, nil
}

// CanCreateProjects reports whether identity may create projects. Only clients
// can.
func CanCreateProjects(identity models.Identity) error {
	if identity.Role != models.RoleClient {
		logging.Logger.Warnf("Event ID: PROJECT_CREATE_FORBIDDEN, Description: User %s with role %q tried to create a project", identity.ID.Hex(), identity.Role)
		return newError(KindForbidden, "Only clients can create projects")
	}
	return nil
}

func (s *ProjectService) ListOpenProjects(ctx context.Context) ([]models.ProjectView, error) {
	projects, err := s.projects.FindOpenProjects(ctx)
	if err != nil {
		return nil, err
	}
	if projects == nil {
		projects = []models.ProjectView{}
	}
	return projects, nil
}

// GetProjectDetail returns the project with its bids, lowest amount first.
func (s *ProjectService) GetProjectDetail(ctx context.Context, projectID string) (*models.ProjectDetail, error) {
	id, err := parseProjectID(projectID)
	if err != nil {
		return nil, err
	}

	view, err := s.projects.FindProjectView(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	bids, err := s.bids.FindBidsByProject(ctx, id)
	if err != nil {
		return nil, err
	}
	if bids == nil {
		bids = []models.BidView{}
	}

	return &models.ProjectDetail{Project: *view, Bids: bids}, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, identity models.Identity, projectID string, req models.UpdateProjectRequest) (*models.Project, error) {
	project, err := s.loadOwned(ctx, identity, projectID, "update")
	if err != nil {
		return nil, err
	}
	if project.Status != models.StatusOpen {
		return nil, newError(KindInvalidState, "Cannot update project once it's not open")
	}

	req.Apply(project)
	now := s.now()
	project.UpdatedAt = now
	if err := s.validate(project, now); err != nil {
		return nil, err
	}

	if err := s.projects.ReplaceProject(ctx, project); err != nil {
		return nil, notFoundOr(err)
	}

	s.metrics.RecordProjectEvent(metrics.EventUpdated)
	logging.Logger.Infof("Event ID: PROJECT_UPDATED, Description: Project %s updated by %s", project.ID.Hex(), identity.ID.Hex())
	return project, nil
}

// DeleteProject removes the project and then its bids. The two deletes are not
// atomic: if bid cleanup fails the project stays deleted and the error is
// returned; the sweeper removes the leftovers later.
func (s *ProjectService) DeleteProject(ctx context.Context, identity models.Identity, projectID string) error {
	project, err := s.loadOwned(ctx, identity, projectID, "delete")
	if err != nil {
		return err
	}
	if project.Status != models.StatusOpen {
		return newError(KindInvalidState, "Cannot delete project once it's not open")
	}

	if err := s.projects.DeleteProject(ctx, project.ID); err != nil {
		return notFoundOr(err)
	}

	removed, err := s.bids.DeleteBidsByProject(ctx, project.ID)
	if err != nil {
		logging.Logger.Errorf("Event ID: PROJECT_BID_CLEANUP_FAILED, Description: Project %s deleted but its bids were not removed: %v", project.ID.Hex(), err)
		return fmt.Errorf("project %s deleted, bid cleanup failed: %w", project.ID.Hex(), err)
	}

	s.metrics.RecordProjectEvent(metrics.EventDeleted)
	logging.Logger.Infof("Event ID: PROJECT_DELETED, Description: Project %s deleted by %s with %d bids", project.ID.Hex(), identity.ID.Hex(), removed)
	return nil
}

// CloseProject marks the project closed. Only the status is written, so
// documents that would no longer pass validation can still be closed.
func (s *ProjectService) CloseProject(ctx context.Context, identity models.Identity, projectID string) (*models.Project, error) {
	project, err := s.loadOwned(ctx, identity, projectID, "close")
	if err != nil {
		return nil, err
	}
	if project.Status == models.StatusClosed {
		return nil, newError(KindInvalidState, "Project is already closed")
	}

	now := s.now()
	if err := s.projects.SetProjectStatus(ctx, project.ID, models.StatusClosed, now); err != nil {
		return nil, notFoundOr(err)
	}
	project.Status = models.StatusClosed
	project.UpdatedAt = now

	s.metrics.RecordProjectEvent(metrics.EventClosed)
	logging.Logger.Infof("Event ID: PROJECT_CLOSED, Description: Project %s closed by %s", project.ID.Hex(), identity.ID.Hex())
	return project, nil
}

// loadOwned fetches the project and checks that identity created it.
func (s *ProjectService) loadOwned(ctx context.Context, identity models.Identity, projectID, action string) (*models.Project, error) {
	id, err := parseProjectID(projectID)
	if err != nil {
		return nil, err
	}

	project, err := s.projects.FindProjectByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err)
	}

	if !identity.Owns(project) {
		logging.Logger.Warnf("Event ID: PROJECT_%s_FORBIDDEN, Description: User %s is not the owner of project %s", strings.ToUpper(action), identity.ID.Hex(), project.ID.Hex())
		return nil, newError(KindForbidden, fmt.Sprintf("You can only %s your own project", action))
	}
	return project, nil
}

// validate applies the document rules checked before every full write.
func (s *ProjectService) validate(project *models.Project, now time.Time) error {
	project.Normalize()
	if err := project.Validate(now); err != nil {
		var vErr *models.ValidationError
		if errors.As(err, &vErr) {
			return &Error{Kind: KindInvalidInput, Message: vErr.Message, Err: err}
		}
		return err
	}
	return nil
}

func parseProjectID(projectID string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(projectID)
	if err != nil {
		return primitive.NilObjectID, newError(KindNotFound, "Project not found")
	}
	return id, nil
}

func notFoundOr(err error) error {
	if errors.Is(err, repositories.ErrNotFound) {
		return &Error{Kind: KindNotFound, Message: "Project not found", Err: err}
	}
	return err
}
