package api

import (
	"context"
	"net/http"

	"github.com/mergington/activities/internal/domain/model"
)

// ActivityDependencies defines the interface for listing activities.
type ActivityDependencies interface {
	List(ctx context.Context) (map[string]model.Activity, error)
}

// ActivitiesHandler handles activity listing requests.
type ActivitiesHandler struct {
	deps ActivityDependencies
}

// NewActivitiesHandler creates a new activities handler.
func NewActivitiesHandler(deps ActivityDependencies) *ActivitiesHandler {
	return &ActivitiesHandler{deps: deps}
}

// HandleListActivities handles GET /activities requests. The response maps
// activity name to its attributes, participants in signup order.
func (h *ActivitiesHandler) HandleListActivities(w http.ResponseWriter, r *http.Request) {
	list, err := h.deps.List(r.Context())
	if err != nil {
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, list)
}
