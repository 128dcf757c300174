package handler

import (
	"context"
	"errors"
	"net/http"

	"github.com/pkordes/lucky/internal/domain"
	"github.com/pkordes/lucky/internal/handler/gen"
)

// GetLucky handles GET /lucky.
// 200 {"name": ...} when a restaurant was drawn, 404 null when there is none
// (empty table, or the drawn row vanished before it could be read).
func (s *Server) GetLucky(ctx context.Context, _ gen.GetLuckyRequestObject) (gen.GetLuckyResponseObject, error) {
	rest, err := s.restaurants.Sample(ctx)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return luckyNotFoundResponse{}, nil
		}
		return nil, err
	}

	return gen.GetLucky200JSONResponse{Name: rest.Name}, nil
}

// luckyNotFoundResponse is the 404 for /lucky. Its body is the JSON literal
// null, which none of the generated response types can encode.
type luckyNotFoundResponse struct{}

func (luckyNotFoundResponse) VisitGetLuckyResponse(w http.ResponseWriter) error {
	w.Header().Set("Content-Type", jsonContentType)
	w.WriteHeader(http.StatusNotFound)
	_, err := w.Write([]byte("null\n"))
	return err
}
