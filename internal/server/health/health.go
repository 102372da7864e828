// Package health serves the HTTP liveness endpoint of the property store.
package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/rentkeeper/internal/logging"
	"github.com/gorilla/mux"
)

const Route = "/health"

// Pinger is satisfied by *sql.DB.
type Pinger interface {
	PingContext(ctx context.Context) error
}

type Response struct {
	Status string `json:"status"`
	Error  string `json:"error,omitempty"`
}

type Controller struct {
	db      Pinger
	logger  logging.Logger
	timeout time.Duration
}

func NewController(db Pinger, l logging.Logger) *Controller {
	return &Controller{db: db, logger: l.With("module", "health"), timeout: 2 * time.Second}
}

// HealthCheckHandler => GET /health
func (c *Controller) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), c.timeout)
	defer cancel()

	if err := c.db.PingContext(ctx); err != nil {
		c.logger.Error(ctx, "database unreachable", "error", err)
		writeJSON(w, http.StatusServiceUnavailable, Response{Status: "UNAVAILABLE", Error: "database unreachable"})
		return
	}
	writeJSON(w, http.StatusOK, Response{Status: "OK"})
}

func NewRouter(c *Controller) *mux.Router {
	router := mux.NewRouter()
	router.HandleFunc(Route, c.HealthCheckHandler).Methods(http.MethodGet)
	return router
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

// Serve runs the health endpoint on addr until ctx is cancelled.
func Serve(ctx context.Context, addr string, c *Controller) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           NewRouter(c),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	c.logger.Info(ctx, "Starting health endpoint", "address", addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}
