package catalog

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repository defines the read-only catalog queries.
type Repository interface {
	ListServices(ctx context.Context) ([]Service, error)
	ListTherapists(ctx context.Context) ([]Therapist, error)
	ListProducts(ctx context.Context) ([]Product, error)
}

type querier interface {
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
}

// PostgresRepository reads catalog rows from the relational database.
type PostgresRepository struct {
	pool querier
}

// NewPostgresRepository initializes a repo backed by pgxpool.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	if pool == nil {
		panic("catalog: pgx pool required")
	}
	return &PostgresRepository{pool: pool}
}

// NewPostgresRepositoryWithQuerier allows injecting mocks for tests.
func NewPostgresRepositoryWithQuerier(q querier) *PostgresRepository {
	return &PostgresRepository{pool: q}
}

// ListServices returns active services joined with their category name.
func (r *PostgresRepository) ListServices(ctx context.Context) ([]Service, error) {
	query := `
		SELECT s.id, s.name, s.description, s.duration_minutes, s.price_cents, s.category_id, COALESCE(c.name, ''), s.active
		FROM services s
		LEFT JOIN categories c ON c.id = s.category_id
		WHERE s.active
		ORDER BY s.name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: services query failed: %w", err)
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Name, &s.Description, &s.DurationMinutes, &s.PriceCents, &s.CategoryID, &s.CategoryName, &s.Active); err != nil {
			return nil, fmt.Errorf("catalog: services scan failed: %w", err)
		}
		services = append(services, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: services rows failed: %w", err)
	}
	return services, nil
}

// ListTherapists returns active therapists.
func (r *PostgresRepository) ListTherapists(ctx context.Context) ([]Therapist, error) {
	query := `
		SELECT id, name, COALESCE(title, ''), COALESCE(bio, ''), active
		FROM therapists
		WHERE active
		ORDER BY name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: therapists query failed: %w", err)
	}
	defer rows.Close()

	var therapists []Therapist
	for rows.Next() {
		var t Therapist
		if err := rows.Scan(&t.ID, &t.Name, &t.Title, &t.Bio, &t.Active); err != nil {
			return nil, fmt.Errorf("catalog: therapists scan failed: %w", err)
		}
		therapists = append(therapists, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: therapists rows failed: %w", err)
	}
	return therapists, nil
}

// ListProducts returns active products joined with their category name.
func (r *PostgresRepository) ListProducts(ctx context.Context) ([]Product, error) {
	query := `
		SELECT p.id, p.name, p.description, p.price_cents, p.category_id, COALESCE(c.name, ''), p.stock, p.active
		FROM products p
		LEFT JOIN categories c ON c.id = p.category_id
		WHERE p.active
		ORDER BY p.name
	`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("catalog: products query failed: %w", err)
	}
	defer rows.Close()

	var products []Product
	for rows.Next() {
		var p Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.PriceCents, &p.CategoryID, &p.CategoryName, &p.Stock, &p.Active); err != nil {
			return nil, fmt.Errorf("catalog: products scan failed: %w", err)
		}
		products = append(products, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("catalog: products rows failed: %w", err)
	}
	return products, nil
}
