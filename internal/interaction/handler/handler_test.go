package handler

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"

	"jobpulse/internal/application"
	"jobpulse/internal/directory"
	"jobpulse/internal/interaction"
	"jobpulse/internal/interaction/reconcile"
	"jobpulse/internal/interaction/resolver"
	"jobpulse/internal/interaction/service"
	"jobpulse/internal/interaction/store"
)

const testAdminToken = "test-admin-token"

// HandlerSuite runs the HTTP layer against the full service wired to memory
// stores, so route, serialization and fold behavior are tested together.
type HandlerSuite struct {
	suite.Suite
	events *store.Memory
	router *chi.Mux
	ctx    context.Context
	base   time.Time
}

func TestHandlerSuite(t *testing.T) {
	suite.Run(t, new(HandlerSuite))
}

func (s *HandlerSuite) SetupTest() {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	people := directory.NewMemoryPeople(
		directory.Person{ID: "u1", Name: "Ada Lovelace"},
		directory.Person{ID: "u2", Name: "Alan Turing"},
	)
	orgs := directory.NewMemoryOrganizations(
		directory.Organization{ID: "org1", Name: "Acme Robotics"},
	)
	listings := directory.NewMemoryListings(
		directory.Listing{ID: "j1", Title: "Backend Engineer", OrganizationID: "org1"},
		directory.Listing{ID: "j2", Title: "Designer", OrganizationID: "org1"},
	)
	media := directory.NewMemoryMedia()

	s.events = store.NewMemory()
	res := resolver.New(people, orgs, listings, media, resolver.WithLogger(logger))
	rec := reconcile.New(listings, s.events, application.NewMemory(), reconcile.WithLogger(logger))
	svc := service.New(s.events, res, listings, rec, service.WithLogger(logger))

	s.router = chi.NewRouter()
	New(svc, logger, testAdminToken).Register(s.router)
	s.ctx = context.Background()
	s.base = time.Date(2026, 5, 1, 9, 0, 0, 0, time.UTC)
}

func (s *HandlerSuite) append(actor string, typ interaction.EventType, target string, offset time.Duration) {
	s.Require().NoError(s.events.Append(s.ctx, interaction.Event{
		ID:        uuid.New(),
		ActorID:   actor,
		Type:      typ,
		TargetID:  target,
		CreatedAt: s.base.Add(offset),
	}))
}

func (s *HandlerSuite) do(method, path, body string, admin bool) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if admin {
		req.Header.Set("X-Admin-Token", testAdminToken)
	}
	rr := httptest.NewRecorder()
	s.router.ServeHTTP(rr, req)
	return rr
}

func (s *HandlerSuite) TestHealth() {
	rr := s.do(http.MethodGet, "/healthz", "", false)
	s.Equal(http.StatusOK, rr.Code)
}

func (s *HandlerSuite) TestAdminRoutesRequireToken() {
	rr := s.do(http.MethodGet, "/admin/activity", "", false)
	s.Equal(http.StatusForbidden, rr.Code)
}

func (s *HandlerSuite) TestActivityResolvesNames() {
	s.append("u1", interaction.TypeApply, "j1", 0)
	s.append("u2", interaction.TypeLikeCompany, "org1", time.Minute)

	rr := s.do(http.MethodGet, "/admin/activity", "", true)
	s.Require().Equal(http.StatusOK, rr.Code)

	var resp struct {
		Events []struct {
			Type   string `json:"type"`
			Actor  struct{ Name string }
			Target struct{ Name string }
		} `json:"events"`
	}
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Require().Len(resp.Events, 2)

	// Newest first.
	s.Equal("like_company", resp.Events[0].Type)
	s.Equal("Alan Turing", resp.Events[0].Actor.Name)
	s.Equal("Acme Robotics", resp.Events[0].Target.Name)
	s.Equal("Ada Lovelace", resp.Events[1].Actor.Name)
	s.Equal("Backend Engineer", resp.Events[1].Target.Name)
}

func (s *HandlerSuite) TestActivityDanglingReferencePlaceholder() {
	s.append("ghost", interaction.TypeApply, "j1", 0)

	rr := s.do(http.MethodGet, "/admin/activity", "", true)
	s.Require().Equal(http.StatusOK, rr.Code)

	var resp struct {
		Events []struct {
			Actor struct{ Name string }
		} `json:"events"`
	}
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Require().Len(resp.Events, 1)
	s.Equal("unknown user", resp.Events[0].Actor.Name)
}

func (s *HandlerSuite) TestActivityBadLimit() {
	rr := s.do(http.MethodGet, "/admin/activity?limit=abc", "", true)
	s.Equal(http.StatusBadRequest, rr.Code)
	s.Contains(rr.Body.String(), "validation")
}

func (s *HandlerSuite) TestInteractionsFilters() {
	s.append("u1", interaction.TypeApply, "j1", 0)
	s.append("u2", interaction.TypeLikeJob, "j1", time.Minute)

	rr := s.do(http.MethodGet, "/admin/interactions?type=apply", "", true)
	s.Require().Equal(http.StatusOK, rr.Code)

	var resp struct {
		Events []struct {
			Type string `json:"type"`
		} `json:"events"`
	}
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Require().Len(resp.Events, 1)
	s.Equal("apply", resp.Events[0].Type)
}

func (s *HandlerSuite) TestInteractionsBadTimestamp() {
	rr := s.do(http.MethodGet, "/admin/interactions?from=yesterday", "", true)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *HandlerSuite) TestInteractionsInvertedRange() {
	from := s.base.Format(time.RFC3339)
	to := s.base.Add(-time.Hour).Format(time.RFC3339)
	rr := s.do(http.MethodGet, "/admin/interactions?from="+from+"&to="+to, "", true)
	s.Equal(http.StatusBadRequest, rr.Code)
}

func (s *HandlerSuite) TestApplicationCounts() {
	s.append("u1", interaction.TypeApply, "j1", 0)
	s.append("u1", interaction.TypeApply, "j1", time.Second) // double click counts twice here
	s.append("u2", interaction.TypeApply, "j2", time.Minute)

	rr := s.do(http.MethodGet, "/admin/organizations/org1/application-counts", "", true)
	s.Require().Equal(http.StatusOK, rr.Code)

	var resp struct {
		Counts map[string]int `json:"counts"`
	}
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Equal(map[string]int{"j1": 2, "j2": 1}, resp.Counts)
}

func (s *HandlerSuite) TestReconcile() {
	s.append("u1", interaction.TypeApply, "j1", 0)
	s.append("u1", interaction.TypeApply, "j1", time.Second)
	s.append("u2", interaction.TypeApply, "j2", time.Minute)

	rr := s.do(http.MethodPost, "/admin/organizations/org1/reconcile", "", true)
	s.Require().Equal(http.StatusOK, rr.Code)

	var resp struct {
		Materialized   int `json:"materialized"`
		AlreadyExisted int `json:"already_existed"`
	}
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Equal(2, resp.Materialized)

	// Re-running changes nothing.
	rr = s.do(http.MethodPost, "/admin/organizations/org1/reconcile", "", true)
	s.Require().Equal(http.StatusOK, rr.Code)
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &resp))
	s.Equal(0, resp.Materialized)
	s.Equal(2, resp.AlreadyExisted)
}

func (s *HandlerSuite) TestFavoriteLifecycle() {
	rr := s.do(http.MethodPut, "/company/applications/app1/favorite", `{"actor_id":"staff1","on":true}`, false)
	s.Require().Equal(http.StatusNoContent, rr.Code)

	rr = s.do(http.MethodGet, "/company/applications/app1/flags", "", false)
	s.Require().Equal(http.StatusOK, rr.Code)

	var flags struct {
		IsFavorite bool   `json:"is_favorite"`
		Memo       string `json:"memo"`
	}
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &flags))
	s.True(flags.IsFavorite)

	rr = s.do(http.MethodPut, "/company/applications/app1/favorite", `{"actor_id":"staff1","on":false}`, false)
	s.Require().Equal(http.StatusNoContent, rr.Code)

	rr = s.do(http.MethodGet, "/company/applications/app1/flags", "", false)
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &flags))
	s.False(flags.IsFavorite)
}

func (s *HandlerSuite) TestFavoriteTwiceKeepsOneRow() {
	body := `{"actor_id":"staff1","on":true}`
	s.Require().Equal(http.StatusNoContent, s.do(http.MethodPut, "/company/applications/app1/favorite", body, false).Code)
	s.Require().Equal(http.StatusNoContent, s.do(http.MethodPut, "/company/applications/app1/favorite", body, false).Code)

	rows, err := s.events.Fetch(s.ctx, store.Filter{
		Types:     []interaction.EventType{interaction.TypeCompanyFavoriteApp},
		TargetIDs: []string{"app1"},
	})
	s.Require().NoError(err)
	s.Len(rows, 1, "repeated favorite-on must not accumulate rows")
}

func (s *HandlerSuite) TestMemoUpsert() {
	rr := s.do(http.MethodPut, "/company/applications/app1/memo", `{"actor_id":"staff1","content":"first note"}`, false)
	s.Require().Equal(http.StatusNoContent, rr.Code)

	rr = s.do(http.MethodPut, "/company/applications/app1/memo", `{"actor_id":"staff2","content":"edited note"}`, false)
	s.Require().Equal(http.StatusNoContent, rr.Code)

	rr = s.do(http.MethodGet, "/company/applications/app1/flags", "", false)
	s.Require().Equal(http.StatusOK, rr.Code)

	var flags struct {
		Memo string `json:"memo"`
	}
	s.Require().NoError(json.Unmarshal(rr.Body.Bytes(), &flags))
	s.Equal("edited note", flags.Memo)
}

func (s *HandlerSuite) TestFavoriteBadBody() {
	rr := s.do(http.MethodPut, "/company/applications/app1/favorite", `{broken`, false)
	s.Equal(http.StatusBadRequest, rr.Code)
}
