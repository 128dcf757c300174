package service_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/lucky/internal/domain"
	"github.com/pkordes/lucky/internal/repo"
	"github.com/pkordes/lucky/internal/service"
)

// ---- mock RestaurantRepo ---------------------------------------------------

type mockRestaurantRepo struct {
	listIDs       func(ctx context.Context) ([]uuid.UUID, error)
	getByID       func(ctx context.Context, id uuid.UUID) (domain.Restaurant, error)
	sampleByOrder func(ctx context.Context) (domain.Restaurant, error)
	listPaged     func(ctx context.Context, p domain.PaginationParams) ([]domain.Restaurant, int64, error)
	count         func(ctx context.Context) (int64, error)
	create        func(ctx context.Context, name string) (domain.Restaurant, error)
}

func (m *mockRestaurantRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	return m.listIDs(ctx)
}
func (m *mockRestaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Restaurant, error) {
	return m.getByID(ctx, id)
}
func (m *mockRestaurantRepo) SampleByOrder(ctx context.Context) (domain.Restaurant, error) {
	return m.sampleByOrder(ctx)
}
func (m *mockRestaurantRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Restaurant, int64, error) {
	return m.listPaged(ctx, p)
}
func (m *mockRestaurantRepo) Count(ctx context.Context) (int64, error) {
	return m.count(ctx)
}
func (m *mockRestaurantRepo) Create(ctx context.Context, name string) (domain.Restaurant, error) {
	return m.create(ctx, name)
}

// compile-time check
var _ repo.RestaurantRepo = (*mockRestaurantRepo)(nil)

// tableRepo backs ListIDs and GetByID with an in-memory map.
func tableRepo(rows ...domain.Restaurant) *mockRestaurantRepo {
	byID := make(map[uuid.UUID]domain.Restaurant, len(rows))
	ids := make([]uuid.UUID, 0, len(rows))
	for _, r := range rows {
		byID[r.ID] = r
		ids = append(ids, r.ID)
	}
	return &mockRestaurantRepo{
		listIDs: func(context.Context) ([]uuid.UUID, error) { return ids, nil },
		getByID: func(_ context.Context, id uuid.UUID) (domain.Restaurant, error) {
			r, ok := byID[id]
			if !ok {
				return domain.Restaurant{}, domain.ErrNotFound
			}
			return r, nil
		},
	}
}

func restaurantFixture(name string) domain.Restaurant {
	return domain.Restaurant{ID: uuid.New(), Name: name}
}

// ---- Sample (ids strategy) -------------------------------------------------

func TestRestaurantService_Sample_IDs_PicksIndexFromIntN(t *testing.T) {
	rows := []domain.Restaurant{restaurantFixture("a"), restaurantFixture("b"), restaurantFixture("c")}
	var gotN int
	svc := service.NewRestaurantService(tableRepo(rows...), service.WithIntN(func(n int) int {
		gotN = n
		return 2
	}))

	got, err := svc.Sample(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 3, gotN, "intN must be called with the number of ids")
	assert.Equal(t, rows[2], got)
}

func TestRestaurantService_Sample_IDs_Single(t *testing.T) {
	only := restaurantFixture("不二家酸菜鱼")
	svc := service.NewRestaurantService(tableRepo(only))

	for range 10 {
		got, err := svc.Sample(context.Background())
		require.NoError(t, err)
		assert.Equal(t, only, got)
	}
}

func TestRestaurantService_Sample_IDs_EmptySkipsFetch(t *testing.T) {
	svc := service.NewRestaurantService(&mockRestaurantRepo{
		listIDs: func(context.Context) ([]uuid.UUID, error) { return []uuid.UUID{}, nil },
		getByID: func(context.Context, uuid.UUID) (domain.Restaurant, error) {
			t.Fatal("GetByID must not be called when there are no ids")
			return domain.Restaurant{}, nil
		},
	})

	_, err := svc.Sample(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// TestRestaurantService_Sample_IDs_RowVanished covers a delete landing between
// ListIDs and GetByID: the caller must see not-found, not a server error.
func TestRestaurantService_Sample_IDs_RowVanished(t *testing.T) {
	svc := service.NewRestaurantService(&mockRestaurantRepo{
		listIDs: func(context.Context) ([]uuid.UUID, error) { return []uuid.UUID{uuid.New()}, nil },
		getByID: func(context.Context, uuid.UUID) (domain.Restaurant, error) {
			return domain.Restaurant{}, fmt.Errorf("repo.RestaurantRepo.GetByID: %w", domain.ErrNotFound)
		},
	})

	_, err := svc.Sample(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestaurantService_Sample_IDs_StoreError(t *testing.T) {
	boom := errors.New("connection refused")
	svc := service.NewRestaurantService(&mockRestaurantRepo{
		listIDs: func(context.Context) ([]uuid.UUID, error) { return nil, boom },
	})

	_, err := svc.Sample(context.Background())

	require.ErrorIs(t, err, boom)
	assert.NotErrorIs(t, err, domain.ErrNotFound)
}

// TestRestaurantService_Sample_IDs_Uniform draws with the real random source
// and checks every row lands near 1/N. The bounds sit about seven standard
// deviations from the mean, so a correct implementation does not flake.
func TestRestaurantService_Sample_IDs_Uniform(t *testing.T) {
	const (
		n      = 4
		trials = 4000
	)
	rows := make([]domain.Restaurant, n)
	for i := range rows {
		rows[i] = restaurantFixture(fmt.Sprintf("Restaurant %d", i))
	}
	svc := service.NewRestaurantService(tableRepo(rows...))

	counts := map[uuid.UUID]int{}
	for range trials {
		got, err := svc.Sample(context.Background())
		require.NoError(t, err)
		counts[got.ID]++
	}

	require.Len(t, counts, n)
	for _, r := range rows {
		assert.InDelta(t, trials/n, counts[r.ID], 200, "restaurant %s", r.Name)
	}
}

// ---- Sample (order strategy) -----------------------------------------------

func TestRestaurantService_Sample_Order(t *testing.T) {
	want := restaurantFixture("Ordered")
	svc := service.NewRestaurantService(&mockRestaurantRepo{
		sampleByOrder: func(context.Context) (domain.Restaurant, error) { return want, nil },
		listIDs: func(context.Context) ([]uuid.UUID, error) {
			t.Fatal("order strategy must not list ids")
			return nil, nil
		},
	}, service.WithStrategy(domain.StrategyOrder))

	got, err := svc.Sample(context.Background())

	require.NoError(t, err)
	assert.Equal(t, want, got)
	assert.Equal(t, domain.StrategyOrder, svc.Strategy())
}

func TestRestaurantService_Sample_Order_Empty(t *testing.T) {
	svc := service.NewRestaurantService(&mockRestaurantRepo{
		sampleByOrder: func(context.Context) (domain.Restaurant, error) {
			return domain.Restaurant{}, domain.ErrNotFound
		},
	}, service.WithStrategy(domain.StrategyOrder))

	_, err := svc.Sample(context.Background())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestaurantService_Sample_UnknownStrategy(t *testing.T) {
	svc := service.NewRestaurantService(&mockRestaurantRepo{}, service.WithStrategy("shuffle"))

	_, err := svc.Sample(context.Background())

	assert.ErrorIs(t, err, domain.ErrValidation)
}

// ---- GetByID / ListPaged / Create ------------------------------------------

func TestRestaurantService_GetByID_NotFound(t *testing.T) {
	svc := service.NewRestaurantService(tableRepo())

	_, err := svc.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestRestaurantService_ListPaged_ReturnsEmptySlice(t *testing.T) {
	svc := service.NewRestaurantService(&mockRestaurantRepo{
		listPaged: func(_ context.Context, p domain.PaginationParams) ([]domain.Restaurant, int64, error) {
			assert.Equal(t, domain.PaginationParams{Page: 2, Limit: 5}, p)
			return nil, 0, nil
		},
	})

	got, total, err := svc.ListPaged(context.Background(), domain.PaginationParams{Page: 2, Limit: 5})

	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
	assert.Zero(t, total)
}

func TestRestaurantService_Create_TrimsName(t *testing.T) {
	var captured string
	svc := service.NewRestaurantService(&mockRestaurantRepo{
		create: func(_ context.Context, name string) (domain.Restaurant, error) {
			captured = name
			return domain.Restaurant{ID: uuid.New(), Name: name}, nil
		},
	})

	got, err := svc.Create(context.Background(), "  Noodle Bar \n")

	require.NoError(t, err)
	assert.Equal(t, "Noodle Bar", captured)
	assert.Equal(t, "Noodle Bar", got.Name)
}

func TestRestaurantService_Create_EmptyName(t *testing.T) {
	svc := service.NewRestaurantService(&mockRestaurantRepo{})

	_, err := svc.Create(context.Background(), "   ")

	assert.ErrorIs(t, err, domain.ErrValidation)
}
