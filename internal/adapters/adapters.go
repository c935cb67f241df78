package adapters

import (
	"context"
	"fxconvert/internal/domain"

	"github.com/shopspring/decimal"
)

type RateStore interface {
	// GetByBase returns the record keyed by base currency, or
	// domain.ErrRecordNotFound when no such record exists.
	GetByBase(ctx context.Context, base string) (*domain.RateRecord, error)
	// UpsertRate merges a single target->rate entry into the record for
	// base, stamping asOf with server time. Idempotent per (base, target).
	UpsertRate(ctx context.Context, base string, target string, rate decimal.Decimal) (*domain.RateRecord, error)
}

type StorePinger interface {
	Ping(ctx context.Context) error
}

type RateResolver interface {
	Resolve(ctx context.Context, from string, to string) (domain.RateResolution, error)
}
