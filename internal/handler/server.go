// Package handler implements the HTTP handlers for the Lucky API.
// All handlers are methods on Server, which implements gen.StrictServerInterface.
// Methods are split into files by resource (health.go, lucky.go, restaurant.go)
// but share the same Server struct so they can access its dependencies.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/pkordes/lucky/internal/domain"
	"github.com/pkordes/lucky/internal/handler/gen"
)

// RestaurantServicer defines the business operations the restaurant handlers
// depend on. It is declared here, in the consumer package, so handler tests
// can inject a mock without touching the database or service layer.
type RestaurantServicer interface {
	Sample(ctx context.Context) (domain.Restaurant, error)
	GetByID(ctx context.Context, id uuid.UUID) (domain.Restaurant, error)
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Restaurant, int64, error)
}

// Pinger reports whether the backing store is reachable. *database.DB satisfies it.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Server implements gen.StrictServerInterface for all API endpoints.
type Server struct {
	restaurants RestaurantServicer
	store       Pinger
}

// NewServer constructs the Server with all its dependencies.
// store may be nil, in which case /readyz always reports ready.
func NewServer(restaurants RestaurantServicer, store Pinger) *Server {
	return &Server{restaurants: restaurants, store: store}
}

// NewHealthHandler returns a Server for health-check-only use.
func NewHealthHandler() *Server {
	return NewServer(nil, nil)
}

// NewHTTPHandler mounts srv on the generated chi routes. Parameter binding
// failures, handler errors and unknown routes all answer with the JSON error
// envelope, so clients never see a text/plain body.
func NewHTTPHandler(srv *Server, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusNotFound, notFoundBody("route not found"))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusMethodNotAllowed, errorBody("method_not_allowed", "method not allowed"))
	})

	strict := gen.NewStrictHandlerWithOptions(srv, nil, gen.StrictHTTPServerOptions{
		RequestErrorHandlerFunc:  requestErrorHandler(log),
		ResponseErrorHandlerFunc: responseErrorHandler(log),
	})
	return gen.HandlerWithOptions(strict, gen.ChiServerOptions{
		BaseRouter:       r,
		ErrorHandlerFunc: requestErrorHandler(log),
	})
}
