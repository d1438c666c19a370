package api

import (
	"net/http"
	"sort"
	"strings"

	"github.com/eventorbit/server/internal/api/handlers"
	"github.com/eventorbit/server/internal/api/middleware"
	"github.com/eventorbit/server/internal/api/respond"
	"github.com/eventorbit/server/internal/auth"
	"github.com/eventorbit/server/internal/config"
	"github.com/eventorbit/server/internal/describe"
	"github.com/eventorbit/server/internal/domain/accounts"
	"github.com/eventorbit/server/internal/domain/events"
	"github.com/eventorbit/server/internal/metrics"
	"github.com/eventorbit/server/internal/storage/postgres"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// NewRouter wires repositories, services, and handlers into the HTTP surface.
func NewRouter(cfg config.Config, logger zerolog.Logger, pool *pgxpool.Pool) (http.Handler, error) {
	repo, err := postgres.NewRepository(pool)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewJWTManager(cfg.Auth.JWTSecret, cfg.Auth.AccessExpiry, cfg.Auth.RefreshExpiry, cfg.Auth.Issuer)
	generator := describe.NewClient(cfg.Generator)

	accountsService := accounts.NewService(repo.Accounts(), tokens, logger)
	ingestService := events.NewIngestService(repo.Events(), repo.Accounts(), generator, cfg.Generator.Timeout, logger)
	listingService := events.NewListingService(repo.Events(), repo.Accounts())

	accountsHandler := handlers.NewAccountsHandler(accountsService, cfg.Environment)
	eventsHandler := handlers.NewEventsHandler(ingestService, listingService, cfg.Environment)

	requireToken := middleware.RequireToken(tokens)
	loginLimit := middleware.LoginRateLimit(cfg.RateLimit)
	jsonBody := middleware.JSONRequestSize()
	uploadBody := middleware.UploadRequestSize()

	mux := http.NewServeMux()
	mux.Handle("/healthz", handlers.Healthz())
	mux.Handle("/readyz", handlers.Readyz(pool))
	mux.Handle("/metrics", promhttp.HandlerFor(metrics.Registry, promhttp.HandlerOpts{}))

	mux.Handle("/api/admin/register/{$}", methodMux(map[string]http.Handler{
		http.MethodPost: loginLimit(jsonBody(accountsHandler.Register(accounts.RoleAdmin))),
	}))
	mux.Handle("/api/admin/login/{$}", methodMux(map[string]http.Handler{
		http.MethodPost: loginLimit(jsonBody(accountsHandler.Login(accounts.RoleAdmin))),
	}))
	mux.Handle("/api/user/register/{$}", methodMux(map[string]http.Handler{
		http.MethodPost: loginLimit(jsonBody(accountsHandler.Register(accounts.RoleUser))),
	}))
	mux.Handle("/api/user/login/{$}", methodMux(map[string]http.Handler{
		http.MethodPost: loginLimit(jsonBody(accountsHandler.Login(accounts.RoleUser))),
	}))
	mux.Handle("/api/create-event/{$}", methodMux(map[string]http.Handler{
		http.MethodPost: uploadBody(requireToken(http.HandlerFunc(eventsHandler.Create))),
	}))
	mux.Handle("/api/get-events/{$}", methodMux(map[string]http.Handler{
		http.MethodGet: requireToken(http.HandlerFunc(eventsHandler.List)),
	}))

	var handler http.Handler = mux
	handler = metrics.HTTPMiddleware(handler)
	handler = middleware.RequestLogging(logger)(handler)
	handler = middleware.CorrelationID(logger)(handler)
	return handler, nil
}

func methodMux(routes map[string]http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if handler, ok := routes[r.Method]; ok {
			handler.ServeHTTP(w, r)
			return
		}
		w.Header().Set("Allow", allowedMethods(routes))
		respond.Error(w, r, http.StatusMethodNotAllowed, "Invalid request method", nil)
	})
}

func allowedMethods(routes map[string]http.Handler) string {
	methods := make([]string, 0, len(routes))
	for method := range routes {
		methods = append(methods, method)
	}
	sort.Strings(methods)
	return strings.Join(methods, ", ")
}
