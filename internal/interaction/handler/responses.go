package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"jobpulse/internal/interaction/resolver"
	dErrors "jobpulse/pkg/domain-errors"
)

type entityView struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

type eventView struct {
	ID        string            `json:"id"`
	Type      string            `json:"type"`
	Actor     entityView        `json:"actor"`
	Target    entityView        `json:"target"`
	Metadata  map[string]string `json:"metadata,omitempty"`
	CreatedAt time.Time         `json:"created_at"`
}

type activityResponse struct {
	Events []eventView `json:"events"`
}

type countsResponse struct {
	OrganizationID string         `json:"organization_id"`
	Counts         map[string]int `json:"counts"`
}

type reconcileResponse struct {
	OrganizationID string `json:"organization_id"`
	Materialized   int    `json:"materialized"`
	AlreadyExisted int    `json:"already_existed"`
}

type flagsResponse struct {
	IsFavorite bool   `json:"is_favorite"`
	Memo       string `json:"memo"`
}

type favoriteRequest struct {
	ActorID string `json:"actor_id"`
	On      bool   `json:"on"`
}

type memoRequest struct {
	ActorID string `json:"actor_id"`
	Content string `json:"content"`
}

func toEventViews(resolved []resolver.ResolvedEvent) []eventView {
	views := make([]eventView, 0, len(resolved))
	for _, re := range resolved {
		views = append(views, eventView{
			ID:        re.ID.String(),
			Type:      string(re.Type),
			Actor:     entityView{ID: re.Actor.ID, Name: re.Actor.Name, Kind: string(re.Actor.Kind)},
			Target:    entityView{ID: re.Target.ID, Name: re.Target.Name, Kind: string(re.Target.Kind)},
			Metadata:  re.Metadata,
			CreatedAt: re.CreatedAt,
		})
	}
	return views
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// writeError translates coded domain errors into the JSON error envelope.
// Uncoded errors are treated as internal so raw storage detail never leaks.
func writeError(w http.ResponseWriter, err error) {
	code := dErrors.CodeOf(err)
	status := http.StatusInternalServerError
	switch code {
	case dErrors.CodeValidation:
		status = http.StatusBadRequest
	case dErrors.CodeNotFound:
		status = http.StatusNotFound
	case dErrors.CodeConflict:
		status = http.StatusConflict
	case dErrors.CodeUnavailable:
		status = http.StatusServiceUnavailable
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": string(code)})
}
