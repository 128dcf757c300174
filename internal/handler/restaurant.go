package handler

import (
	"context"
	"errors"

	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/lucky/internal/domain"
	"github.com/pkordes/lucky/internal/handler/gen"
)

// ListRestaurants handles GET /restaurants.
// Supports ?page= and ?limit= (defaults: page=1, limit=20, max=100) and
// ?sort=created_at|name with ?order=asc|desc.
func (s *Server) ListRestaurants(ctx context.Context, req gen.ListRestaurantsRequestObject) (gen.ListRestaurantsResponseObject, error) {
	params, err := domain.NewPaginationParams(req.Params.Page, req.Params.Limit)
	if err == nil {
		params, err = params.WithSort(derefString(req.Params.Sort), derefString(req.Params.Order))
	}
	if err != nil {
		return gen.ListRestaurants400JSONResponse(errorBody("bad_request", err.Error())), nil
	}

	rests, total, err := s.restaurants.ListPaged(ctx, params)
	if err != nil {
		return nil, err
	}

	data := make([]gen.Restaurant, len(rests))
	for i, r := range rests {
		data[i] = restaurantToResponse(r)
	}
	return gen.ListRestaurants200JSONResponse{
		Data: data,
		Pagination: gen.Pagination{
			Page:  params.Page,
			Limit: params.Limit,
			Total: int(total),
		},
	}, nil
}

// GetRestaurant handles GET /restaurants/{id}.
func (s *Server) GetRestaurant(ctx context.Context, req gen.GetRestaurantRequestObject) (gen.GetRestaurantResponseObject, error) {
	rest, err := s.restaurants.GetByID(ctx, req.Id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return gen.GetRestaurant404JSONResponse(notFoundBody("restaurant not found")), nil
		}
		return nil, err
	}

	return gen.GetRestaurant200JSONResponse(restaurantToResponse(rest)), nil
}

// restaurantToResponse converts a domain.Restaurant to the generated API type.
func restaurantToResponse(r domain.Restaurant) gen.Restaurant {
	return gen.Restaurant{
		Id:        openapi_types.UUID(r.ID),
		Name:      r.Name,
		CreatedAt: r.CreatedAt,
	}
}

// derefString returns the value of an optional string-kinded query param, or "".
func derefString[T ~string](v *T) string {
	if v == nil {
		return ""
	}
	return string(*v)
}
