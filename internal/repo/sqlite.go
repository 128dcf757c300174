package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/lucky/internal/domain"
)

// sqliteTimeLayout is fixed-width so that created_at sorts correctly as text.
const sqliteTimeLayout = "2006-01-02T15:04:05.000000000Z07:00"

// sqlDB is the subset of *sql.DB, *sql.Conn and *sql.Tx the SQLite repo needs.
type sqlDB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// sqliteRestaurantRepo is the SQLite implementation of RestaurantRepo, used
// for local development and for tests that run without Postgres.
type sqliteRestaurantRepo struct {
	db sqlDB
}

// NewSQLiteRestaurantRepo constructs a RestaurantRepo backed by a SQLite
// database opened through modernc.org/sqlite.
func NewSQLiteRestaurantRepo(db sqlDB) RestaurantRepo {
	return &sqliteRestaurantRepo{db: db}
}

func (r *sqliteRestaurantRepo) ListIDs(ctx context.Context) ([]uuid.UUID, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id FROM restaurants`)
	if err != nil {
		return nil, fmt.Errorf("repo.SQLiteRestaurantRepo.ListIDs: %w", err)
	}
	defer rows.Close()

	ids := []uuid.UUID{}
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("repo.SQLiteRestaurantRepo.ListIDs: scan: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("repo.SQLiteRestaurantRepo.ListIDs: rows: %w", err)
	}
	return ids, nil
}

func (r *sqliteRestaurantRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Restaurant, error) {
	const q = `
		SELECT id, name, created_at
		FROM restaurants
		WHERE id = ?`

	result, err := scanSQLiteRestaurant(r.db.QueryRowContext(ctx, q, id.String()))
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("repo.SQLiteRestaurantRepo.GetByID: %w", err)
	}
	return result, nil
}

func (r *sqliteRestaurantRepo) SampleByOrder(ctx context.Context) (domain.Restaurant, error) {
	const q = `
		SELECT id, name, created_at
		FROM restaurants
		ORDER BY RANDOM()
		LIMIT 1`

	result, err := scanSQLiteRestaurant(r.db.QueryRowContext(ctx, q))
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("repo.SQLiteRestaurantRepo.SampleByOrder: %w", err)
	}
	return result, nil
}

func (r *sqliteRestaurantRepo) ListPaged(ctx context.Context, p domain.PaginationParams) ([]domain.Restaurant, int64, error) {
	total, err := r.Count(ctx)
	if err != nil {
		return nil, 0, fmt.Errorf("repo.SQLiteRestaurantRepo.ListPaged: %w", err)
	}

	q := `
		SELECT id, name, created_at
		FROM restaurants
		ORDER BY ` + orderByClause(p) + `
		LIMIT ? OFFSET ?`

	rows, err := r.db.QueryContext(ctx, q, p.Limit, p.Offset())
	if err != nil {
		return nil, 0, fmt.Errorf("repo.SQLiteRestaurantRepo.ListPaged: %w", err)
	}
	defer rows.Close()

	restaurants := []domain.Restaurant{}
	for rows.Next() {
		rest, err := scanSQLiteRestaurant(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("repo.SQLiteRestaurantRepo.ListPaged: scan: %w", err)
		}
		restaurants = append(restaurants, rest)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("repo.SQLiteRestaurantRepo.ListPaged: rows: %w", err)
	}
	return restaurants, total, nil
}

func (r *sqliteRestaurantRepo) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT count(*) FROM restaurants`).Scan(&n); err != nil {
		return 0, fmt.Errorf("repo.SQLiteRestaurantRepo.Count: %w", err)
	}
	return n, nil
}

// Create assigns the id and created_at in Go; SQLite has no UUID generator.
func (r *sqliteRestaurantRepo) Create(ctx context.Context, name string) (domain.Restaurant, error) {
	rest := domain.Restaurant{
		ID:        uuid.New(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}

	const q = `INSERT INTO restaurants (id, name, created_at) VALUES (?, ?, ?)`

	_, err := r.db.ExecContext(ctx, q, rest.ID.String(), rest.Name, rest.CreatedAt.Format(sqliteTimeLayout))
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("repo.SQLiteRestaurantRepo.Create: %w", err)
	}
	return rest, nil
}

// scanSQLiteRestaurant maps a single SQLite row into a domain.Restaurant.
func scanSQLiteRestaurant(s scanner) (domain.Restaurant, error) {
	var (
		rest      domain.Restaurant
		createdAt string
	)
	err := s.Scan(&rest.ID, &rest.Name, &createdAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Restaurant{}, domain.ErrNotFound
		}
		return domain.Restaurant{}, err
	}
	rest.CreatedAt, err = time.Parse(sqliteTimeLayout, createdAt)
	if err != nil {
		return domain.Restaurant{}, fmt.Errorf("parse created_at %q: %w", createdAt, err)
	}
	return rest, nil
}
