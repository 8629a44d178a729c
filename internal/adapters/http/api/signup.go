package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	repository "github.com/mergington/activities/internal/adapters/repository"
)

// SignupDependencies defines the interface for signup operations.
type SignupDependencies interface {
	Signup(ctx context.Context, name, email string) error
}

// SignupHandler handles signup requests.
type SignupHandler struct {
	deps SignupDependencies
}

// NewSignupHandler creates a new signup handler.
func NewSignupHandler(deps SignupDependencies) *SignupHandler {
	return &SignupHandler{deps: deps}
}

// HandleSignup handles POST /activities/{name}/signup?email= requests.
func (h *SignupHandler) HandleSignup(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")
	email := r.URL.Query().Get("email")
	if email == "" {
		writeDetail(w, http.StatusBadRequest, detailMissingEmail)
		return
	}

	err := h.deps.Signup(r.Context(), name, email)
	switch {
	case err == nil:
		writeMessage(w, fmt.Sprintf("Signed up %s for %s", email, name))
	case errors.Is(err, repository.ErrActivityNotFound):
		writeDetail(w, http.StatusNotFound, detailActivityNotFound)
	case errors.Is(err, repository.ErrAlreadySignedUp):
		writeDetail(w, http.StatusBadRequest, detailAlreadySignedUp)
	default:
		writeDetail(w, http.StatusInternalServerError, err.Error())
	}
}
