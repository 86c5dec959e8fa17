package database

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/ivan-chernow/ZaraHome-sub000/internal/promocode"
)

var _ promocode.Store = (*PromocodeRepo)(nil)

type PromocodeRepo struct {
	pool   *pgxpool.Pool
	schema string
}

func NewPromocodeRepo(pool *pgxpool.Pool, schema string) *PromocodeRepo {
	return &PromocodeRepo{pool: pool, schema: schema}
}

func (r *PromocodeRepo) FindByCode(ctx context.Context, code string) (*promocode.Promocode, error) {
	var (
		p                promocode.Promocode
		percent, minimum string
		validTo          *time.Time
	)
	err := r.pool.QueryRow(ctx, fmt.Sprintf(`
		SELECT code, discount_percent::text, min_order_amount::text, usage_limit, used_count,
		       active, valid_from, valid_to
		FROM %s WHERE code = $1
	`, pgx.Identifier{r.schema, "promocodes"}.Sanitize()), code).Scan(
		&p.Code, &percent, &minimum, &p.UsageLimit, &p.UsedCount, &p.Active, &p.ValidFrom, &validTo,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find promocode: %w", err)
	}
	if p.DiscountPercent, err = decimal.NewFromString(percent); err != nil {
		return nil, fmt.Errorf("parse discount_percent %q: %w", percent, err)
	}
	if p.MinOrderAmount, err = decimal.NewFromString(minimum); err != nil {
		return nil, fmt.Errorf("parse min_order_amount %q: %w", minimum, err)
	}
	p.ValidTo = validTo
	return &p, nil
}
