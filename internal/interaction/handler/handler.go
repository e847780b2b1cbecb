// Package handler is the thin HTTP layer over the interaction service. It
// delegates to the service without embedding business logic so transport
// concerns remain isolated.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"jobpulse/internal/interaction/aggregate"
	"jobpulse/internal/interaction/reconcile"
	"jobpulse/internal/interaction/resolver"
	"jobpulse/internal/interaction/service"
	"jobpulse/internal/platform/middleware"
	dErrors "jobpulse/pkg/domain-errors"
)

// Service defines the interaction operations the HTTP layer exposes.
type Service interface {
	RecentActivity(ctx context.Context, limit int) ([]resolver.ResolvedEvent, error)
	AuditQuery(ctx context.Context, q service.Query) ([]resolver.ResolvedEvent, error)
	ApplicationCounts(ctx context.Context, orgID string) (map[string]int, error)
	ApplicationFlags(ctx context.Context, targetID string) (aggregate.State, error)
	SetFavorite(ctx context.Context, targetID, actorID string, on bool) error
	UpsertMemo(ctx context.Context, targetID, actorID, content string) error
	Reconcile(ctx context.Context, orgID string) (reconcile.Result, error)
}

type Handler struct {
	logger     *slog.Logger
	service    Service
	adminToken string
}

func New(svc Service, logger *slog.Logger, adminToken string) *Handler {
	return &Handler{logger: logger, service: svc, adminToken: adminToken}
}

// Register wires the admin and company routes onto the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.handleHealth)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdminToken(h.adminToken, h.logger))
		r.Get("/activity", h.handleActivity)
		r.Get("/interactions", h.handleInteractions)
		r.Get("/organizations/{id}/application-counts", h.handleApplicationCounts)
		r.Post("/organizations/{id}/reconcile", h.handleReconcile)
	})

	r.Route("/company/applications/{id}", func(r chi.Router) {
		r.Get("/flags", h.handleFlags)
		r.Put("/favorite", h.handleFavorite)
		r.Put("/memo", h.handleMemo)
	})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) handleActivity(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, dErrors.New(dErrors.CodeValidation, "limit must be an integer"))
			return
		}
		limit = n
	}

	resolved, err := h.service.RecentActivity(ctx, limit)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load activity", "error", err.Error())
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activityResponse{Events: toEventViews(resolved)})
}

func (h *Handler) handleInteractions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	query := r.URL.Query()

	var q service.Query
	q.Types = query["type"]
	if raw := query.Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			writeError(w, dErrors.New(dErrors.CodeValidation, "limit must be an integer"))
			return
		}
		q.Limit = n
	}
	for _, bound := range []struct {
		name string
		dst  *time.Time
	}{
		{"from", &q.From},
		{"to", &q.To},
	} {
		raw := query.Get(bound.name)
		if raw == "" {
			continue
		}
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			writeError(w, dErrors.New(dErrors.CodeValidation, bound.name+" must be RFC 3339"))
			return
		}
		*bound.dst = t
	}

	resolved, err := h.service.AuditQuery(ctx, q)
	if err != nil {
		if !dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.ErrorContext(ctx, "failed to query interactions", "error", err.Error())
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, activityResponse{Events: toEventViews(resolved)})
}

func (h *Handler) handleApplicationCounts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := chi.URLParam(r, "id")

	counts, err := h.service.ApplicationCounts(ctx, orgID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to count applications",
			"organization_id", orgID,
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, countsResponse{OrganizationID: orgID, Counts: counts})
}

func (h *Handler) handleReconcile(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	orgID := chi.URLParam(r, "id")

	result, err := h.service.Reconcile(ctx, orgID)
	if err != nil {
		h.logger.ErrorContext(ctx, "reconciliation failed",
			"organization_id", orgID,
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, reconcileResponse{
		OrganizationID: orgID,
		Materialized:   result.Materialized,
		AlreadyExisted: result.AlreadyExisted,
	})
}

func (h *Handler) handleFlags(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	targetID := chi.URLParam(r, "id")

	state, err := h.service.ApplicationFlags(ctx, targetID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to load application flags",
			"target_id", targetID,
			"error", err.Error(),
		)
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, flagsResponse{IsFavorite: state.IsFavorite, Memo: state.Memo})
}

func (h *Handler) handleFavorite(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	targetID := chi.URLParam(r, "id")

	var req favoriteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	if err := h.service.SetFavorite(ctx, targetID, req.ActorID, req.On); err != nil {
		if !dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.ErrorContext(ctx, "failed to toggle favorite",
				"target_id", targetID,
				"error", err.Error(),
			)
		}
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMemo(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	targetID := chi.URLParam(r, "id")

	var req memoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, dErrors.New(dErrors.CodeValidation, "invalid request body"))
		return
	}

	if err := h.service.UpsertMemo(ctx, targetID, req.ActorID, req.Content); err != nil {
		if !dErrors.HasCode(err, dErrors.CodeValidation) {
			h.logger.ErrorContext(ctx, "failed to upsert memo",
				"target_id", targetID,
				"error", err.Error(),
			)
		}
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
