package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/Khan-Yazdani04/devconnect-lite/logging"
	"github.com/Khan-Yazdani04/devconnect-lite/utils"
)

type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthHandler struct {
	store   Pinger
	service string
	version string
}

func NewHealthHandler(store Pinger, service, version string) *HealthHandler {
	return &HealthHandler{store: store, service: service, version: version}
}

type healthStatus struct {
	Status  string `json:"status"`
	Service string `json:"service"`
	Version string `json:"version"`
	DB      string `json:"db"`
}

func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()

	status := healthStatus{Status: "ok", Service: h.service, Version: h.version, DB: "up"}
	code := http.StatusOK
	if err := h.store.Ping(ctx); err != nil {
		logging.Logger.Warnf("Event ID: HEALTH_DB_DOWN, Description: Store ping failed: %v", err)
		status.Status = "degraded"
		status.DB = "down"
		code = http.StatusServiceUnavailable
	}
	utils.WriteJSON(w, code, status)
}
