package order

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

// Create persists the order and all of its lines in one transaction.
// Either every row commits or none do.
func (r *postgresRepo) Create(ctx context.Context, in CreateOrderInput) (*domain.Order, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var ord domain.Order
	err = tx.QueryRow(ctx, `
INSERT INTO orders (customer_id, status, currency, total_cents)
VALUES ($1, 'PENDING', $2, $3)
RETURNING id::text, customer_id::text, status, currency, total_cents, created_at
`, in.CustomerID, in.Currency, in.TotalCents).Scan(
		&ord.ID,
		&ord.CustomerID,
		&ord.Status,
		&ord.Currency,
		&ord.TotalCents,
		&ord.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	for _, line := range in.Lines {
		var ol domain.OrderLine
		err := tx.QueryRow(ctx, `
INSERT INTO order_lines (order_id, product_id, quantity, unit_price_cents)
VALUES ($1, $2, $3, $4)
RETURNING id::text, order_id::text, product_id::text, quantity, unit_price_cents, created_at
`, ord.ID, line.ProductID, line.Quantity, line.UnitPriceCents).Scan(
			&ol.ID,
			&ol.OrderID,
			&ol.ProductID,
			&ol.Quantity,
			&ol.UnitPriceCents,
			&ol.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		ord.Lines = append(ord.Lines, ol)
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: created id=%s lines=%d total=%d", ord.ID, len(ord.Lines), ord.TotalCents)
	return &ord, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	var ord domain.Order
	err := r.pool.QueryRow(ctx, `
SELECT id::text, customer_id::text, status, currency, total_cents, payment_id::text, created_at
FROM orders
WHERE id = $1
`, id).Scan(
		&ord.ID,
		&ord.CustomerID,
		&ord.Status,
		&ord.Currency,
		&ord.TotalCents,
		&ord.PaymentID,
		&ord.CreatedAt,
	)
	if err != nil {
		if isNoRow(err) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	rows, err := r.pool.Query(ctx, `
SELECT id::text, order_id::text, product_id::text, quantity, unit_price_cents, created_at
FROM order_lines
WHERE order_id = $1
ORDER BY created_at ASC, id ASC
`, ord.ID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var ol domain.OrderLine
		if err := rows.Scan(&ol.ID, &ol.OrderID, &ol.ProductID, &ol.Quantity, &ol.UnitPriceCents, &ol.CreatedAt); err != nil {
			return nil, err
		}
		ord.Lines = append(ord.Lines, ol)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &ord, nil
}

func (r *postgresRepo) List(ctx context.Context, limit int) ([]domain.Order, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, customer_id::text, status, currency, total_cents, payment_id::text, created_at
FROM orders
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Order
	for rows.Next() {
		var ord domain.Order
		if err := rows.Scan(&ord.ID, &ord.CustomerID, &ord.Status, &ord.Currency, &ord.TotalCents, &ord.PaymentID, &ord.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, ord)
	}
	return result, rows.Err()
}

// AttachPayment records a verified payment against an order and moves it to
// COMPLETE. It is idempotent: the unique index on payments.provider_ref
// deduplicates deliveries and the status update is guarded on PENDING, so a
// redelivered webhook leaves exactly one payment row and one transition.
func (r *postgresRepo) AttachPayment(ctx context.Context, orderID, providerRef string, amountCents int64, currency string) (*domain.Payment, error) {
	tx, err := r.pool.BeginTx(ctx, pgx.TxOptions{})
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	var status string
	err = tx.QueryRow(ctx, `
SELECT status FROM orders WHERE id = $1 FOR UPDATE
`, orderID).Scan(&status)
	if err != nil {
		if isNoRow(err) {
			return nil, domain.ErrOrderNotFound
		}
		return nil, err
	}

	var pay domain.Payment
	err = tx.QueryRow(ctx, `
INSERT INTO payments (provider_ref, amount_cents, currency, order_id)
VALUES ($1, $2, $3, $4)
ON CONFLICT (provider_ref) DO NOTHING
RETURNING id::text, provider_ref, amount_cents, currency, order_id::text, created_at
`, providerRef, amountCents, currency, orderID).Scan(
		&pay.ID,
		&pay.ProviderRef,
		&pay.AmountCents,
		&pay.Currency,
		&pay.OrderID,
		&pay.CreatedAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		// duplicate delivery: reuse the already-stored payment
		err = tx.QueryRow(ctx, `
SELECT id::text, provider_ref, amount_cents, currency, order_id::text, created_at
FROM payments
WHERE provider_ref = $1
`, providerRef).Scan(&pay.ID, &pay.ProviderRef, &pay.AmountCents, &pay.Currency, &pay.OrderID, &pay.CreatedAt)
	}
	if err != nil {
		return nil, err
	}

	if status == domain.OrderPending {
		if _, err := tx.Exec(ctx, `
UPDATE orders
SET status = 'COMPLETE', payment_id = $1
WHERE id = $2 AND status = 'PENDING'
`, pay.ID, orderID); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}
	r.logger.Printf("order repo: payment %s attached to order %s", pay.ID, orderID)
	return &pay, nil
}

func (r *postgresRepo) SetStatus(ctx context.Context, orderID, status string) error {
	cmd, err := r.pool.Exec(ctx, `
UPDATE orders SET status = $1 WHERE id = $2
`, status, orderID)
	if err != nil {
		if isNoRow(err) {
			return domain.ErrOrderNotFound
		}
		return err
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrOrderNotFound
	}
	return nil
}

func (r *postgresRepo) ListPayments(ctx context.Context, limit int) ([]domain.Payment, error) {
	rows, err := r.pool.Query(ctx, `
SELECT id::text, provider_ref, amount_cents, currency, order_id::text, created_at
FROM payments
ORDER BY created_at DESC
LIMIT $1
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Payment
	for rows.Next() {
		var pay domain.Payment
		if err := rows.Scan(&pay.ID, &pay.ProviderRef, &pay.AmountCents, &pay.Currency, &pay.OrderID, &pay.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, pay)
	}
	return result, rows.Err()
}

// isNoRow also treats a malformed identifier as "no such row": webhook
// metadata is attacker-controlled and a non-UUID order id must behave like
// an unknown order, not a server error.
func isNoRow(err error) bool {
	if errors.Is(err, pgx.ErrNoRows) {
		return true
	}
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "22P02"
}
