package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/eventorbit/server/internal/api/respond"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Healthz reports process liveness. It never touches dependencies.
func Healthz() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}

// Readyz reports readiness by pinging the database pool.
func Readyz(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if pool == nil {
			respond.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable"})
			return
		}
		if err := pool.Ping(ctx); err != nil {
			respond.Error(w, r, http.StatusServiceUnavailable, "database unavailable", err)
			return
		}
		respond.JSON(w, http.StatusOK, map[string]string{"status": "ready"})
	}
}
