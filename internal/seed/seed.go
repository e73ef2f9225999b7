package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

type productSeed struct {
	Name        string
	Description string
	Image       string
	PriceCents  int64
	Stock       int
}

type customerSeed struct {
	Username string
	Email    string
}

// Apply inserts basic seed data for manual testing. It is idempotent via
// ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	products := []productSeed{
		{
			Name:        "Canvas Tote Bag",
			Description: "Heavy cotton tote with reinforced handles",
			PriceCents:  1200,
			Stock:       40,
		},
		{
			Name:        "Enamel Camping Mug",
			Description: "Speckled enamel mug, 350ml",
			PriceCents:  950,
			Stock:       25,
		},
		{
			Name:        "Linen Tea Towel",
			Description: "Washed linen towel in slate grey",
			PriceCents:  1450,
			Stock:       60,
		},
	}
	for _, p := range products {
		if err := upsertProduct(ctx, pool, p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.Name, err)
		}
	}

	customers := []customerSeed{
		{Username: "demo", Email: "demo@example.com"},
		{Username: "guest-tester", Email: "guest@example.com"},
	}
	for _, c := range customers {
		if err := upsertCustomer(ctx, pool, c); err != nil {
			return fmt.Errorf("upsert customer %s: %w", c.Username, err)
		}
	}

	return nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, p productSeed) error {
	const q = `
INSERT INTO products (name, description, image, price_cents, currency, stock)
VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, 'gbp', $5)
ON CONFLICT (name) DO UPDATE SET
    description = EXCLUDED.description,
    price_cents = EXCLUDED.price_cents,
    stock = EXCLUDED.stock
`
	_, err := pool.Exec(ctx, q, p.Name, p.Description, p.Image, p.PriceCents, p.Stock)
	return err
}

func upsertCustomer(ctx context.Context, pool *pgxpool.Pool, c customerSeed) error {
	const q = `
INSERT INTO customers (username, email, password_hash)
VALUES ($1, $2, 'seed-disabled')
ON CONFLICT (username) DO UPDATE SET email = EXCLUDED.email
`
	_, err := pool.Exec(ctx, q, c.Username, c.Email)
	return err
}
