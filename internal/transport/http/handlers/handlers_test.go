package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"

	memrepo "github.com/shvshnn-coder/venue-pilot/internal/repo/memory"
	authsvc "github.com/shvshnn-coder/venue-pilot/internal/services/auth"
	catalogsvc "github.com/shvshnn-coder/venue-pilot/internal/services/catalog"
	connsvc "github.com/shvshnn-coder/venue-pilot/internal/services/connections"
	feedsvc "github.com/shvshnn-coder/venue-pilot/internal/services/feed"
	modsvc "github.com/shvshnn-coder/venue-pilot/internal/services/moderation"
	ratesvc "github.com/shvshnn-coder/venue-pilot/internal/services/rate"
	swipesvc "github.com/shvshnn-coder/venue-pilot/internal/services/swipes"
)

type testEnv struct {
	store       *memrepo.Store
	router      chi.Router
	swipes      *swipesvc.Service
	connections *connsvc.Service
	moderation  *modsvc.Service
	catalog     *catalogsvc.Service
}

func newTestEnv(t *testing.T, limiter *ratesvc.Limiter) *testEnv {
	t.Helper()

	store := memrepo.NewStore()
	connections := connsvc.NewService(store, nil)
	deps := swipesvc.Dependencies{
		Decisions:   store,
		Connections: connections,
		Tx:          store,
	}
	modDeps := modsvc.Dependencies{Blocks: store, Reports: store}
	if limiter != nil {
		deps.RateLimiter = limiter
		modDeps.RateLimiter = limiter
	}
	swipes := swipesvc.NewService(deps, swipesvc.Config{})
	moderation := modsvc.NewService(modDeps)
	catalog := catalogsvc.NewService(store)
	feed := feedsvc.NewService(feedsvc.Dependencies{
		Catalog:    catalog,
		Decisions:  store,
		Moderation: moderation,
	}, feedsvc.Config{})

	decisions := NewDecisionsHandler(swipes)
	conns := NewConnectionsHandler(connections)
	mod := NewModerationHandler(moderation)
	discover := NewDiscoverHandler(feed)
	stats := NewStatsHandler(swipes, connections)

	r := chi.NewRouter()
	r.Post("/v1/decisions", decisions.Create)
	r.Get("/v1/decisions", decisions.List)
	r.Get("/v1/connections", conns.List)
	r.Delete("/v1/connections", conns.Remove)
	r.Post("/v1/blocks", mod.Block)
	r.Delete("/v1/blocks/{blocker_id}/{blocked_user_id}", mod.UnblockByPath)
	r.Get("/v1/blocks/status", mod.BlockStatus)
	r.Post("/v1/reports", mod.Report)
	r.Get("/v1/discover/{type}", discover.Handle)
	r.Get("/v1/stats", stats.Handle)

	return &testEnv{
		store:       store,
		router:      r,
		swipes:      swipes,
		connections: connections,
		moderation:  moderation,
		catalog:     catalog,
	}
}

func (e *testEnv) do(t *testing.T, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	return e.doWithContext(t, context.Background(), method, path, body)
}

func (e *testEnv) doWithContext(t *testing.T, ctx context.Context, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader).WithContext(ctx)
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, target any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), target); err != nil {
		t.Fatalf("decode response: %v (body=%s)", err, rec.Body.String())
	}
}

func decision(userID, targetID, targetType, direction string) map[string]string {
	return map[string]string{
		"user_id":     userID,
		"target_id":   targetID,
		"target_type": targetType,
		"direction":   direction,
	}
}

func withIdentity(userID string) context.Context {
	return authsvc.WithIdentity(context.Background(), authsvc.Identity{UserID: userID, Role: "user"})
}
