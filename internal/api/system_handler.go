package api

import (
	"net/http"

	"github.com/phrazzld/task-api/internal/api/shared"
)

// WelcomeMessage is returned by GET /.
const WelcomeMessage = "Welcome to the Task Management API!"

// SystemHandler serves the root, liveness and version endpoints.
type SystemHandler struct {
	version VersionResponse
}

// NewSystemHandler creates a SystemHandler reporting the given build info.
func NewSystemHandler(name, version, env string) *SystemHandler {
	return &SystemHandler{version: VersionResponse{Name: name, Version: version, Env: env}}
}

// Root handles GET / requests
func (h *SystemHandler) Root(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, MessageResponse{Message: WelcomeMessage})
}

// Health handles GET /health requests
func (h *SystemHandler) Health(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, HealthResponse{Status: "ok"})
}

// Version handles GET /version requests
func (h *SystemHandler) Version(w http.ResponseWriter, r *http.Request) {
	shared.RespondWithJSON(w, r, http.StatusOK, h.version)
}
