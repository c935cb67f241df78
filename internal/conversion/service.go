package conversion

import (
	"context"

	"fxconvert/internal/adapters"
	"fxconvert/internal/domain"

	"github.com/shopspring/decimal"
)

// displayPlaces is the presentation quantum: 4 fractional digits, rounded
// half-up (not banker's).
const displayPlaces = 4

// Result is the response payload for one conversion.
type Result struct {
	From       string            `json:"from"`
	To         string            `json:"to"`
	Amount     decimal.Decimal   `json:"amount"`
	Rate       decimal.Decimal   `json:"rate"`
	Result     decimal.Decimal   `json:"result"`
	AsOf       *string           `json:"asOf"`
	Provenance domain.Provenance `json:"provenance"`
	BaseUsed   string            `json:"baseUsed,omitempty"`
}

type Service struct {
	resolver adapters.RateResolver
}

// Convert validates raw inputs, short-circuits the identity pair, otherwise
// resolves a rate and applies display rounding. Returns a validation
// sentinel, domain.ErrRateUnavailable, or a Result.
func (s *Service) Convert(ctx context.Context, fromRaw string, toRaw string, amountRaw string) (Result, error) {
	from := NormalizeCode(fromRaw)
	to := NormalizeCode(toRaw)

	if err := validateCodes(from, to, amountRaw); err != nil {
		return Result{}, err
	}
	amount, err := parseAmount(amountRaw)
	if err != nil {
		return Result{}, err
	}

	if from == to {
		return Result{
			From:       from,
			To:         to,
			Amount:     amount,
			Rate:       decimal.New(1, 0),
			Result:     amount.Round(displayPlaces),
			Provenance: domain.ProvenanceIdentity,
		}, nil
	}

	res, err := s.resolver.Resolve(ctx, from, to)
	if err != nil {
		return Result{}, err
	}

	// The result is amount times the full-precision rate, rounded once at
	// the end. The displayed rate is rounded independently, so displayed
	// rate*amount may differ from result in the 4th decimal.
	return Result{
		From:       from,
		To:         to,
		Amount:     amount,
		Rate:       res.Rate.Round(displayPlaces),
		Result:     amount.Mul(res.Rate).Round(displayPlaces),
		AsOf:       res.AsOf,
		Provenance: res.Provenance,
		BaseUsed:   res.BaseUsed,
	}, nil
}

func NewService(resolver adapters.RateResolver) *Service {
	return &Service{resolver: resolver}
}
