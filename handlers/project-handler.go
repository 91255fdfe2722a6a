package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/Khan-Yazdani04/devconnect-lite/logging"
	"github.com/Khan-Yazdani04/devconnect-lite/middleware"
	"github.com/Khan-Yazdani04/devconnect-lite/models"
	"github.com/Khan-Yazdani04/devconnect-lite/repositories"
	"github.com/Khan-Yazdani04/devconnect-lite/services"
	"github.com/Khan-Yazdani04/devconnect-lite/utils"
)

// ProjectService is the lifecycle the handlers drive.
type ProjectService interface {
	CreateProject(ctx context.Context, identity models.Identity, req models.CreateProjectRequest) (*models.Project, error)
	ListOpenProjects(ctx context.Context) ([]models.ProjectView, error)
	GetProjectDetail(ctx context.Context, projectID string) (*models.ProjectDetail, error)
	UpdateProject(ctx context.Context, identity models.Identity, projectID string, req models.UpdateProjectRequest) (*models.Project, error)
	DeleteProject(ctx context.Context, identity models.Identity, projectID string) error
	CloseProject(ctx context.Context, identity models.Identity, projectID string) (*models.Project, error)
}

type ProjectHandler struct {
	Service ProjectService
}

func NewProjectHandler(service ProjectService) *ProjectHandler {
	return &ProjectHandler{Service: service}
}

func (h *ProjectHandler) CreateProject(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := services.CanCreateProjects(identity); err != nil {
		respondServiceError(w, r, err)
		return
	}

	var req models.CreateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logging.Logger.Warnf("Event ID: PROJECT_CREATE_BAD_PAYLOAD, Description: Could not decode create payload: %v", err)
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	project, err := h.Service.CreateProject(r.Context(), identity, req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondSuccess(w, http.StatusCreated, project, "Project created successfully")
}

func (h *ProjectHandler) ListOpenProjects(w http.ResponseWriter, r *http.Request) {
	projects, err := h.Service.ListOpenProjects(r.Context())
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondSuccess(w, http.StatusOK, projects, "All open projects fetched")
}

func (h *ProjectHandler) GetProjectDetail(w http.ResponseWriter, r *http.Request) {
	if _, ok := requireIdentity(w, r); !ok {
		return
	}

	detail, err := h.Service.GetProjectDetail(r.Context(), mux.Vars(r)["projectId"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondSuccess(w, http.StatusOK, detail, "Project details fetched")
}

func (h *ProjectHandler) UpdateProject(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	var req models.UpdateProjectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		logging.Logger.Warnf("Event ID: PROJECT_UPDATE_BAD_PAYLOAD, Description: Could not decode update payload: %v", err)
		utils.RespondError(w, http.StatusBadRequest, "Invalid request payload")
		return
	}

	project, err := h.Service.UpdateProject(r.Context(), identity, mux.Vars(r)["projectId"], req)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondSuccess(w, http.StatusOK, project, "Project updated successfully")
}

func (h *ProjectHandler) DeleteProject(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	if err := h.Service.DeleteProject(r.Context(), identity, mux.Vars(r)["projectId"]); err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondSuccess(w, http.StatusOK, struct{}{}, "Project deleted successfully")
}

func (h *ProjectHandler) CloseProject(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	project, err := h.Service.CloseProject(r.Context(), identity, mux.Vars(r)["projectId"])
	if err != nil {
		respondServiceError(w, r, err)
		return
	}
	utils.RespondSuccess(w, http.StatusOK, project, "Project closed successfully")
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (models.Identity, bool) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		utils.RespondError(w, http.StatusUnauthorized, "Unauthorized request")
	}
	return identity, ok
}

// respondServiceError writes the envelope for err. Only classified errors
// expose their message.
func respondServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var svcErr *services.Error
	switch {
	case errors.As(err, &svcErr):
		utils.RespondError(w, svcErr.Kind.StatusCode(), svcErr.Message)
	case errors.Is(err, repositories.ErrStoreUnavailable):
		logging.Logger.Errorf("Event ID: STORE_UNAVAILABLE, Description: %s %s failed fast: %v", r.Method, r.URL.Path, err)
		utils.RespondError(w, http.StatusServiceUnavailable, "Service temporarily unavailable")
	default:
		logging.Logger.WithField("request_id", middleware.RequestIDFromContext(r.Context())).
			Errorf("Event ID: INTERNAL_ERROR, Description: %s %s failed: %v", r.Method, r.URL.Path, err)
		utils.RespondError(w, http.StatusInternalServerError, "Internal server error")
	}
}
