package conversion

import (
	"context"
	"errors"
	"strings"

	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// Resolver derives a rate for an ordered currency pair from point lookups
// of stored records, trying strategies in fixed priority order:
//
//  1. direct  — the record for base=from publishes to
//  2. cross   — the canonical-base record publishes both codes
//  3. inverse — the record for base=to publishes from, reciprocated
//
// A directly published rate beats a derived cross-rate, which beats an
// inverted one. Each strategy costs at most two point lookups; the resolver
// never scans the store.
type Resolver struct {
	store         adapters.RateStore
	canonicalBase string
}

// Resolve returns the best rate for from->to or domain.ErrRateUnavailable
// when no strategy succeeds. Callers must pass normalized, distinct codes;
// the identity case is theirs to handle.
func (r *Resolver) Resolve(ctx context.Context, from string, to string) (domain.RateResolution, error) {
	if rec := r.lookup(ctx, from); rec != nil {
		if rate, ok := rec.Rates[to]; ok {
			return domain.RateResolution{
				Rate:       rate,
				AsOf:       rec.AsOf,
				Provenance: domain.ProvenanceDirect,
				BaseUsed:   from,
			}, nil
		}
	}

	if rec := r.lookup(ctx, r.canonicalBase); rec != nil {
		rateFrom, okFrom := rec.Rates[from]
		rateTo, okTo := rec.Rates[to]
		// rate(from->to) = rate(base->to) / rate(base->from)
		if okFrom && okTo && !rateFrom.IsZero() {
			return domain.RateResolution{
				Rate:       rateTo.Div(rateFrom),
				AsOf:       rec.AsOf,
				Provenance: domain.ProvenanceCross,
				BaseUsed:   r.canonicalBase,
			}, nil
		}
	}

	if rec := r.lookup(ctx, to); rec != nil {
		// rates[from] means: 1 to = r from, so 1 from = 1/r to.
		if rate, ok := rec.Rates[from]; ok && !rate.IsZero() {
			return domain.RateResolution{
				Rate:       decimal.New(1, 0).Div(rate),
				AsOf:       rec.AsOf,
				Provenance: domain.ProvenanceInverse,
				BaseUsed:   to,
			}, nil
		}
	}

	return domain.RateResolution{}, domain.ErrRateUnavailable
}

// lookup degrades every store failure to "no record": an absent record and a
// failed call both mean the strategy yields nothing. Unexpected failures are
// still logged for the operator.
func (r *Resolver) lookup(ctx context.Context, base string) *domain.RateRecord {
	rec, err := r.store.GetByBase(ctx, base)
	if err != nil {
		if !errors.Is(err, domain.ErrRecordNotFound) {
			logrus.WithError(err).WithField("base", base).Warn("Store lookup failed, treating record as missing")
		}
		return nil
	}
	return rec
}

func NewResolver(store adapters.RateStore, canonicalBase string) *Resolver {
	return &Resolver{store: store, canonicalBase: strings.ToUpper(canonicalBase)}
}
