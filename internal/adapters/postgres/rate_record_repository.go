package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"fxconvert/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// RateRecordRepository keeps one row per base currency with a jsonb map of
// target->rate. The table name is configurable, so queries interpolate the
// sanitized identifier rather than a placeholder.
type RateRecordRepository struct {
	pool  *pgxpool.Pool
	table string
}

func (r *RateRecordRepository) GetByBase(ctx context.Context, base string) (*domain.RateRecord, error) {
	q := fmt.Sprintf(`select base, rates, as_of, updated_at from %s where base = $1`, r.ident())

	var (
		rec      domain.RateRecord
		rawRates []byte
	)
	if err := r.pool.QueryRow(ctx, q, base).Scan(
		&rec.Base,
		&rawRates,
		&rec.AsOf,
		&rec.UpdatedAt,
	); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrRecordNotFound
		}
		return nil, fmt.Errorf("failed to select rate record for base %q: %w", base, err)
	}

	// Rates decode straight from the JSON text into decimals, never through
	// an intermediate binary float.
	if err := json.Unmarshal(rawRates, &rec.Rates); err != nil {
		return nil, fmt.Errorf("failed to decode rates for base %q: %w", base, err)
	}
	return &rec, nil
}

func (r *RateRecordRepository) UpsertRate(ctx context.Context, base string, target string, rate decimal.Decimal) (*domain.RateRecord, error) {
	asOf := time.Now().UTC().Format(time.RFC3339)
	q := fmt.Sprintf(`
        insert into %s (base, rates, as_of, updated_at)
        values ($1, jsonb_build_object($2::text, $3::numeric), $4, now())
        on conflict (base) do update
        set rates      = %s.rates || excluded.rates,
            as_of      = excluded.as_of,
            updated_at = now()
        returning base, rates, as_of, updated_at
    `, r.ident(), r.ident())

	var (
		rec      domain.RateRecord
		rawRates []byte
	)
	if err := r.pool.QueryRow(ctx, q, base, target, rate.String(), asOf).Scan(
		&rec.Base,
		&rawRates,
		&rec.AsOf,
		&rec.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("failed to upsert rate %q->%q: %w", base, target, err)
	}

	if err := json.Unmarshal(rawRates, &rec.Rates); err != nil {
		return nil, fmt.Errorf("failed to decode rates for base %q: %w", base, err)
	}
	return &rec, nil
}

func (r *RateRecordRepository) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *RateRecordRepository) ident() string {
	return pgx.Identifier{r.table}.Sanitize()
}

func NewRateRecordRepository(pool *pgxpool.Pool, table string) *RateRecordRepository {
	return &RateRecordRepository{pool: pool, table: table}
}
