package apiapp

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/shvshnn-coder/venue-pilot/internal/config"
	"github.com/shvshnn-coder/venue-pilot/internal/domain/enums"
	calendarsvc "github.com/shvshnn-coder/venue-pilot/internal/services/calendar"
	catalogsvc "github.com/shvshnn-coder/venue-pilot/internal/services/catalog"
	connsvc "github.com/shvshnn-coder/venue-pilot/internal/services/connections"
	feedsvc "github.com/shvshnn-coder/venue-pilot/internal/services/feed"
	modsvc "github.com/shvshnn-coder/venue-pilot/internal/services/moderation"
	swipesvc "github.com/shvshnn-coder/venue-pilot/internal/services/swipes"
	"github.com/shvshnn-coder/venue-pilot/internal/transport/http/handlers"
)

type Dependencies struct {
	Tokens            TokenParser
	SwipeService      *swipesvc.Service
	ConnectionService *connsvc.Service
	ModerationService *modsvc.Service
	CatalogService    *catalogsvc.Service
	FeedService       *feedsvc.Service
	CalendarService   *calendarsvc.Service
	Logger            *zap.Logger
	Config            config.Config
}

func RegisterRoutes(r chi.Router, deps Dependencies) {
	healthHandler := handlers.NewHealthHandler()
	configHandler := handlers.NewConfigHandler(deps.Config)
	decisionsHandler := handlers.NewDecisionsHandler(deps.SwipeService)
	connectionsHandler := handlers.NewConnectionsHandler(deps.ConnectionService)
	moderationHandler := handlers.NewModerationHandler(deps.ModerationService)
	discoverHandler := handlers.NewDiscoverHandler(deps.FeedService)
	calendarHandler := handlers.NewCalendarHandler(deps.CalendarService)
	statsHandler := handlers.NewStatsHandler(deps.SwipeService, deps.ConnectionService)
	catalogHandler := handlers.NewCatalogHandler(deps.CatalogService)
	authMW := AuthMiddleware(deps.Tokens, deps.Config.Auth.Required, deps.Logger)
	organizerMW := RequireRole(deps.Config.Auth.Required, string(enums.RoleOrganizer))

	r.Get("/healthz", healthHandler.Get)
	r.Route("/v1", func(r chi.Router) {
		r.Get("/config", configHandler.Handle)

		r.Group(func(r chi.Router) {
			r.Use(authMW)

			r.Post("/decisions", decisionsHandler.Create)
			r.Get("/decisions", decisionsHandler.List)

			r.Get("/connections", connectionsHandler.List)
			r.Delete("/connections", connectionsHandler.Remove)

			r.Post("/blocks", moderationHandler.Block)
			r.Delete("/blocks", moderationHandler.Unblock)
			r.Delete("/blocks/{blocker_id}/{blocked_user_id}", moderationHandler.UnblockByPath)
			r.Get("/blocks/status", moderationHandler.BlockStatus)
			r.Get("/blocks", moderationHandler.Blocks)
			r.Post("/reports", moderationHandler.Report)
			r.Get("/reports", moderationHandler.Reports)

			r.Get("/discover/{type}", discoverHandler.Handle)
			r.Get("/calendar", calendarHandler.Overview)
			r.Get("/calendar/{date}", calendarHandler.Day)
			r.Get("/stats", statsHandler.Handle)

			r.Get("/events", catalogHandler.ListEvents)
			r.With(organizerMW).Post("/events", catalogHandler.CreateEvent)
			r.Get("/attendees", catalogHandler.ListAttendees)
			r.With(organizerMW).Post("/attendees", catalogHandler.ImportAttendees)
		})
	})
}
