// Package repo contains all database access logic for the Lucky API.
// RestaurantRepo has a Postgres implementation (pgx) and a SQLite
// implementation (database/sql). No business logic lives here, only SQL and
// type mapping.
package repo

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/lucky/internal/domain"
)

// db is the minimal interface satisfied by *pgxpool.Pool, pgx.Conn, and pgx.Tx.
// Integration tests pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// RestaurantRepo defines the persistence operations for Restaurants.
// The service layer depends on this interface, not on a concrete store.
type RestaurantRepo interface {
	// ListIDs returns the id of every stored restaurant in no particular order.
	// An empty table yields an empty, non-nil slice.
	ListIDs(ctx context.Context) ([]uuid.UUID, error)

	// GetByID retrieves a single restaurant by primary key.
	// Returns domain.ErrNotFound if no restaurant with that ID exists.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Restaurant, error)

	// SampleByOrder lets the store order every row by a random key and
	// returns the first. Returns domain.ErrNotFound if the table is empty.
	SampleByOrder(ctx context.Context) (domain.Restaurant, error)

	// ListPaged returns one page of restaurants ordered by creation time,
	// together with the total row count.
	ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Restaurant, int64, error)

	// Count returns the number of stored restaurants.
	Count(ctx context.Context) (int64, error)

	// Create inserts a restaurant and returns the persisted record.
	// Only the seed command writes; the HTTP API is read-only.
	Create(ctx context.Context, name string) (domain.Restaurant, error)
}

// pgRestaurantRepo is the Postgres implementation of RestaurantRepo.
type pgRestaurantRepo struct {
	db db
}

// NewRestaurantRepo constructs a RestaurantRepo backed by the provided db connection.
// In production pass *pgxpool.Pool; in tests pass a pgx.Tx for rollback isolation.
func NewRestaurantRepo(db db) RestaurantRepo {
	return &pgRestaurantRepo{db: db}
}

// ListIDs reads only the primary key column, which Postgres can serve from
// the primary key index.
func (r *pgRestaurantRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	const q = `SELECT id FROM restaurants`

	rows, err := r.db.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("repo.RestaurantRepo.ListIDs: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id pgtype.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("repo.RestaurantRepo.ListIDs: scan: %w", err)
		}
		ids = append(ids, uuid.UUID(id.Bytes))
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.RestaurantRepo.ListIDs: rows: %w", err)
	}
	return ids, nil
}

// GetByID retrieves a restaurant by primary key.
func (r *pgRestaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Restaurant, error) {
	const q = `
		SELECT id, name, created_at
		FROM restaurants
		WHERE id = @id`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"id": id})
	result, err := scanRestaurant(row)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("repo.RestaurantRepo.GetByID: %w", err)
	}
	return result, nil
}

// SampleByOrder sorts the whole table by random() and takes the first row.
func (r *pgRestaurantRepo) SampleByOrder(ctx context.Context) (domain.Restaurant, error) {
	const q = `
		SELECT id, name, created_at
		FROM restaurants
		ORDER BY random()
		LIMIT 1`

	result, err := scanRestaurant(r.db.QueryRow(ctx, q))
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("repo.RestaurantRepo.SampleByOrder: %w", err)
	}
	return result, nil
}

// ListPaged returns one page of restaurants ordered by p.Sort, then id so rows
// with equal sort keys still page deterministically.
func (r *pgRestaurantRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Restaurant, int64, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.RestaurantRepo.ListPaged: %w", err)
	}

	q := `
		SELECT id, name, created_at
		FROM restaurants
		ORDER BY ` + orderByClause(p) + `
		LIMIT @limit OFFSET @offset`

	rows, err := r.db.Query(ctx, q, pgx.NamedArgs{"limit": p.Limit, "offset": p.Offset()})
	if err != nil {
		return nil, 0, fmt.Errorf("repo.RestaurantRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		rest, err := scanRestaurant(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.RestaurantRepo.ListPaged: scan: %w", err)
		}
		restaurants = append(restaurants, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.RestaurantRepo.ListPaged: rows: %w", err)
	}
	return restaurants, total, nil
}

// Count returns the number of rows in restaurants.
func (r *pgRestaurantRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRow(ctx, `SELECT count(*) FROM restaurants`).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.RestaurantRepo.Count: %w", err)
	}
	return n, nil
}

// Create inserts a restaurant; id and created_at are assigned by Postgres.
func (r *pgRestaurantRepo) Create(ctx context.Context, name string) (domain.Restaurant, error) {
	const q = `
		INSERT INTO restaurants (name)
		VALUES (@name)
		RETURNING id, name, created_at`

	row := r.db.QueryRow(ctx, q, pgx.NamedArgs{"name": name})
	result, err := scanRestaurant(row)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("repo.RestaurantRepo.Create: %w", err)
	}
	return result, nil
}

// orderByClause maps the validated sort field and direction onto SQL that is
// valid in both Postgres and SQLite. Only known columns are ever emitted.
func orderByClause(p domain.PaginationParams) string {
	col := "created_at"
	if p.Sort == domain.SortName {
		col = "name"
	}
	dir := "ASC"
	if p.Order == domain.OrderDesc {
		dir = "DESC"
	}
	return col + " " + dir + ", id " + dir
}

// scanner is satisfied by pgx.Row, pgx.Rows, *sql.Row and *sql.Rows, so the
// scan helpers work for both store implementations.
type scanner interface {
	Scan(dest ...any) error
}

// scanRestaurant maps a single Postgres row into a domain.Restaurant.
func scanRestaurant(s scanner) (domain.Restaurant, error) {
	var (
		rest domain.Restaurant
		id   pgtype.UUID
	)
	err := s.Scan(&id, &rest.Name, &rest.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return domain.Restaurant{}, domain.ErrNotFound
		}
		return domain.Restaurant{}, err
	}
	rest.ID = uuid.UUID(id.Bytes)
	return rest, nil
}
