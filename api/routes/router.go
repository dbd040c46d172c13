package routes

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/openmeeple/meeplevault-backend/api/controllers"
	"github.com/openmeeple/meeplevault-backend/api/middleware"
	"github.com/openmeeple/meeplevault-backend/internal/auth"
	"github.com/openmeeple/meeplevault-backend/internal/bgg"
	"github.com/openmeeple/meeplevault-backend/internal/collection"
	"github.com/openmeeple/meeplevault-backend/internal/users"
	"github.com/openmeeple/meeplevault-backend/pkg/auth/session"
	"github.com/openmeeple/meeplevault-backend/pkg/config"
	"github.com/openmeeple/meeplevault-backend/pkg/logger"
)

type pinger interface {
	Ping(ctx context.Context) error
}

// RouterParams bundles everything the HTTP surface depends on.
type RouterParams struct {
	Config            *config.Config
	Logger            *logger.Logger
	DB                pinger
	Redis             pinger
	SessionChecker    session.AccessSessionChecker
	AuthService       auth.Service
	CatalogService    bgg.Service
	CollectionService collection.Service
	UsersService      users.Service
	MetricsRegistry   *prometheus.Registry
}

func NewRouter(p RouterParams) http.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(p.Logger),
		middleware.RequestID(p.Logger),
		middleware.Logging(p.Logger),
		middleware.CORS(),
	)

	requireAuth := middleware.Auth(p.Config.JWT, p.SessionChecker, p.AuthService, p.Logger)
	optionalAuth := middleware.OptionalAuth(p.Config.JWT, p.SessionChecker, p.AuthService, p.Logger)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(p.Config))
		r.Get("/ready", controllers.HealthReady(p.Config, p.DB, p.Redis, p.Logger))
	})

	if p.MetricsRegistry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(p.MetricsRegistry, promhttp.HandlerOpts{}))
	}

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", controllers.CatalogSearch(p.CatalogService, p.Logger))
		r.Get("/games/{bggID}", controllers.CatalogGameDetails(p.CatalogService, p.Logger))

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", controllers.AuthRegister(p.AuthService, p.Logger))
			r.Post("/login", controllers.AuthLogin(p.AuthService, p.Logger))
			r.Post("/refresh", controllers.AuthRefresh(p.AuthService, p.Logger))
			r.With(requireAuth).Post("/logout", controllers.AuthLogout(p.AuthService, p.Logger))
			r.With(requireAuth).Get("/profile", controllers.AuthProfile(p.AuthService, p.Logger))
		})

		r.Route("/collection", func(r chi.Router) {
			r.Use(optionalAuth)
			r.Post("/", controllers.CollectionAdd(p.CollectionService, p.Logger))
			r.Get("/", controllers.CollectionList(p.CollectionService, p.Logger))
			r.Put("/{entryID}", controllers.CollectionUpdate(p.CollectionService, p.Logger))
			r.Delete("/{entryID}", controllers.CollectionRemove(p.CollectionService, p.Logger))
		})

		r.Route("/public", func(r chi.Router) {
			r.Get("/{username}", controllers.PublicProfile(p.UsersService, p.Logger))
			r.Get("/{username}/collection", controllers.PublicCollection(p.UsersService, p.Logger))
		})
	})

	return r
}
