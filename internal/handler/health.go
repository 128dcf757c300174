package handler

import (
	"context"

	"github.com/pkordes/lucky/internal/handler/gen"
)

// GetHealth handles GET /healthz.
// It returns HTTP 200 with {"status":"ok"} when the server is running.
func (s *Server) GetHealth(ctx context.Context, _ gen.GetHealthRequestObject) (gen.GetHealthResponseObject, error) {
	return gen.GetHealth200JSONResponse{Status: "ok"}, nil
}

// GetReady handles GET /readyz.
// It returns 503 while the restaurant store does not answer pings.
func (s *Server) GetReady(ctx context.Context, _ gen.GetReadyRequestObject) (gen.GetReadyResponseObject, error) {
	if s.store != nil {
		if err := s.store.Ping(ctx); err != nil {
			return gen.GetReady503JSONResponse(errorBody("unavailable", "restaurant store unreachable")), nil
		}
	}
	return gen.GetReady200JSONResponse{Status: "ok"}, nil
}
