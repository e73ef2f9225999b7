package product

import (
	"context"
	"errors"
	"io"
	"log"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

// List returns up to limit products ordered newest first. cursor is the id
// of the first product of the page; the returned cursor, when non-empty,
// starts the next page.
func (r *postgresRepo) List(ctx context.Context, cursor string, limit int) ([]domain.Product, string, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), COALESCE(image, ''), price_cents, currency, stock, created_at
FROM products
WHERE ($1 = '' OR (created_at, id) <= (SELECT created_at, id FROM products WHERE id = $1::uuid))
ORDER BY created_at DESC, id DESC
LIMIT $2
`
	rows, err := r.pool.Query(ctx, q, cursor, limit+1)
	if err != nil {
		r.logger.Printf("product repo: list cursor=%q error=%v", cursor, err)
		return nil, "", err
	}
	defer rows.Close()

	var result []domain.Product
	for rows.Next() {
		var p domain.Product
		if err := rows.Scan(&p.ID, &p.Name, &p.Description, &p.Image, &p.PriceCents, &p.Currency, &p.Stock, &p.CreatedAt); err != nil {
			return nil, "", err
		}
		result = append(result, p)
	}
	if err := rows.Err(); err != nil {
		r.logger.Printf("product repo: list rows cursor=%q error=%v", cursor, err)
		return nil, "", err
	}

	next := ""
	if len(result) > limit {
		next = result[limit].ID
		result = result[:limit]
	}
	return result, next, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Product, error) {
	const q = `
SELECT id::text, name, COALESCE(description, ''), COALESCE(image, ''), price_cents, currency, stock, created_at
FROM products
WHERE id = $1
`
	var p domain.Product
	err := r.pool.QueryRow(ctx, q, id).Scan(&p.ID, &p.Name, &p.Description, &p.Image, &p.PriceCents, &p.Currency, &p.Stock, &p.CreatedAt)
	if err != nil {
		// a malformed id in client input reads the same as an unknown one
		var pgErr *pgconn.PgError
		if errors.Is(err, pgx.ErrNoRows) || (errors.As(err, &pgErr) && pgErr.Code == "22P02") {
			r.logger.Printf("product repo: get id=%s not found", id)
			return nil, domain.ErrNotFound
		}
		r.logger.Printf("product repo: get id=%s error=%v", id, err)
		return nil, err
	}
	return &p, nil
}

// Upsert inserts or refreshes a product keyed by name. The catalog importer
// and seeding use it; the API surface stays read-only.
func (r *postgresRepo) Upsert(ctx context.Context, p domain.Product) (*domain.Product, error) {
	const q = `
INSERT INTO products (name, description, image, price_cents, currency, stock)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6)
ON CONFLICT (name) DO UPDATE SET
    description = EXCLUDED.description,
    image = EXCLUDED.image,
    price_cents = EXCLUDED.price_cents,
    currency = EXCLUDED.currency,
    stock = EXCLUDED.stock
RETURNING id::text, created_at
`
	out := p
	err := r.pool.QueryRow(ctx, q, p.Name, p.Description, p.Image, p.PriceCents, p.Currency, p.Stock).
		Scan(&out.ID, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("product repo: upsert name=%q error=%v", p.Name, err)
		return nil, err
	}
	return &out, nil
}
