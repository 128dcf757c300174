package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/lucky/internal/domain"
	"github.com/pkordes/lucky/internal/handler/gen"
)

func restaurantFixture() domain.Restaurant {
	return domain.Restaurant{
		ID:        uuid.New(),
		Name:      "Harbour Dim Sum",
		CreatedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
	}
}

// ---- GET /restaurants --------------------------------------------------------

func TestListRestaurants_200_DefaultPagination(t *testing.T) {
	rests := []domain.Restaurant{restaurantFixture(), restaurantFixture()}
	svc := &mockRestaurantServicer{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Restaurant, int64, error) {
			assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20}, p)
			return rests, 42, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/restaurants", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body gen.RestaurantList
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Len(t, body.Data, 2)
	assert.Equal(t, rests[0].ID, uuid.UUID(body.Data[0].Id))
	assert.Equal(t, gen.Pagination{Page: 1, Limit: 20, Total: 42}, body.Pagination)
}

func TestListRestaurants_200_CapsLimit(t *testing.T) {
	svc := &mockRestaurantServicer{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Restaurant, int64, error) {
			assert.Equal(t, domain.PaginationParams{Page: 3, Limit: 100}, p)
			return []domain.Restaurant{}, 0, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/restaurants?page=3&limit=1000", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":[],"pagination":{"page":3,"limit":100,"total":0}}`, rec.Body.String())
}

func TestListRestaurants_400_BadPage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/restaurants?page=two", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(&mockRestaurantServicer{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

	var body gen.ErrorResponse
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "bad_request", body.Error.Code)
}

func TestListRestaurants_200_SortByNameDesc(t *testing.T) {
	svc := &mockRestaurantServicer{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Restaurant, int64, error) {
			assert.Equal(t, domain.PaginationParams{Page: 1, Limit: 20, Sort: domain.SortName, Order: domain.OrderDesc}, p)
			return []domain.Restaurant{}, 0, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/restaurants?sort=name&order=desc", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
}

func TestListRestaurants_400_InvalidListParams(t *testing.T) {
	tests := map[string]string{
		"page past last offset": "/restaurants?page=9223372036854775807&limit=100",
		"unknown sort":          "/restaurants?sort=id",
		"unknown order":         "/restaurants?order=up",
	}
	for name, target := range tests {
		t.Run(name, func(t *testing.T) {
			svc := &mockRestaurantServicer{
				listPaged: func(context.Context, domain.PaginationParams) ([]domain.Restaurant, int64, error) {
					t.Fatal("ListPaged must not be called for invalid params")
					return nil, 0, nil
				},
			}

			req := httptest.NewRequest(http.MethodGet, target, nil)
			rec := httptest.NewRecorder()
			newHTTPHandler(svc).ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))

			var body gen.ErrorResponse
			require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
			assert.Equal(t, "bad_request", body.Error.Code)
		})
	}
}

// ---- GET /restaurants/{id} -----------------------------------------------------

func TestGetRestaurant_200(t *testing.T) {
	rest := restaurantFixture()
	svc := &mockRestaurantServicer{
		getByID: func(_ context.Context, id uuid.UUID) (domain.Restaurant, error) {
			assert.Equal(t, rest.ID, id)
			return rest, nil
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/restaurants/"+rest.ID.String(), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	var body gen.Restaurant
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "Harbour Dim Sum", body.Name)
	assert.True(t, rest.CreatedAt.Equal(body.CreatedAt))
}

func TestGetRestaurant_404(t *testing.T) {
	svc := &mockRestaurantServicer{
		getByID: func(context.Context, uuid.UUID) (domain.Restaurant, error) {
			return domain.Restaurant{}, domain.ErrNotFound
		},
	}

	req := httptest.NewRequest(http.MethodGet, "/restaurants/"+uuid.NewString(), nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(svc).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":{"code":"not_found","message":"restaurant not found"}}`, rec.Body.String())
}

func TestGetRestaurant_400_MalformedID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/restaurants/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(&mockRestaurantServicer{}).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoute_404JSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/nope", nil)
	rec := httptest.NewRecorder()
	newHTTPHandler(&mockRestaurantServicer{}).ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json; charset=utf-8", rec.Header().Get("Content-Type"))
}
