package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes mounts the project routes under prefix. /all is registered
// before /{projectId} so it is not captured as an id.
func RegisterRoutes(r *mux.Router, prefix string, h *ProjectHandler, auth func(http.Handler) http.Handler) {
	public := r.PathPrefix(prefix).Subrouter()
	public.HandleFunc("/all", h.ListOpenProjects).Methods(http.MethodGet)

	protected := r.PathPrefix(prefix).Subrouter()
	protected.Use(auth)
	protected.HandleFunc("/create", h.CreateProject).Methods(http.MethodPost)
	protected.HandleFunc("/{projectId}", h.GetProjectDetail).Methods(http.MethodGet)
	protected.HandleFunc("/{projectId}", h.UpdateProject).Methods(http.MethodPut)
	protected.HandleFunc("/{projectId}", h.DeleteProject).Methods(http.MethodDelete)
	protected.HandleFunc("/{projectId}/close", h.CloseProject).Methods(http.MethodPatch)
}
