package customer

import (
	"context"
	"errors"
	"io"
	"log"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"storefront/internal/domain"
)

type postgresRepo struct {
	pool   *pgxpool.Pool
	logger *log.Logger
}

// NewPostgres returns a Repository backed by Postgres.
func NewPostgres(pool *pgxpool.Pool, logger *log.Logger) Repository {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &postgresRepo{pool: pool, logger: logger}
}

func (r *postgresRepo) Create(ctx context.Context, c domain.Customer) (*domain.Customer, error) {
	const q = `
INSERT INTO customers (username, email, password_hash, image)
VALUES ($1, $2, $3, $4)
RETURNING id::text, username, email, password_hash, COALESCE(image, ''), created_at
`
	var out domain.Customer
	err := r.pool.QueryRow(ctx, q,
		strings.ToLower(c.Username),
		strings.ToLower(c.Email),
		c.PasswordHash,
		c.Image,
	).Scan(&out.ID, &out.Username, &out.Email, &out.PasswordHash, &out.Image, &out.CreatedAt)
	if err != nil {
		r.logger.Printf("customer repo: create username=%s error=%v", c.Username, err)
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Customer, error) {
	const q = `
SELECT id::text, username, email, password_hash, COALESCE(image, ''), created_at
FROM customers
WHERE id = $1
`
	var out domain.Customer
	err := r.pool.QueryRow(ctx, q, id).Scan(&out.ID, &out.Username, &out.Email, &out.PasswordHash, &out.Image, &out.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &out, nil
}

func (r *postgresRepo) List(ctx context.Context, limit int) ([]domain.Customer, error) {
	const q = `
SELECT id::text, username, email, password_hash, COALESCE(image, ''), created_at
FROM customers
ORDER BY created_at DESC
LIMIT $1
`
	rows, err := r.pool.Query(ctx, q, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Customer
	for rows.Next() {
		var c domain.Customer
		if err := rows.Scan(&c.ID, &c.Username, &c.Email, &c.PasswordHash, &c.Image, &c.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, c)
	}
	return result, rows.Err()
}
