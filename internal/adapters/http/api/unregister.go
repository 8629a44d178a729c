package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	repository "github.com/mergington/activities/internal/adapters/repository"
)

// UnregisterDependencies defines the interface for unregister operations.
type UnregisterDependencies interface {
	Unregister(ctx context.Context, name, email string) error
}

// UnregisterHandler handles unregister requests.
type UnregisterHandler struct {
	deps UnregisterDependencies
}

// NewUnregisterHandler creates a new unregister handler.
func NewUnregisterHandler(deps UnregisterDependencies) *UnregisterHandler {
	return &UnregisterHandler{deps: deps}
}

// HandleUnregister handles DELETE /activities/{name}/unregister?email= requests.
func (h *UnregisterHandler) HandleUnregister(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	email := r.URL.Query().Get("email")
	if email == "" {
		writeDetail(w, http.StatusBadRequest, detailMissingEmail)
		return
	}

	err := h.deps.Unregister(r.Context(), name, email)
	switch {
	case err == nil:
		writeMessage(w, fmt.Sprintf("Unregistered %s from %s", email, name))
	case errors.Is(err, repository.ErrActivityNotFound):
		writeDetail(w, http.StatusNotFound, detailActivityNotFound)
	case errors.Is(err, repository.ErrNotRegistered):
		writeDetail(w, http.StatusBadRequest, detailNotRegistered)
	default:
		writeDetail(w, http.StatusInternalServerError, err.Error())
	}
}
