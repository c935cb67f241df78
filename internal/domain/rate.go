package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Provenance tags which resolution path produced a rate.
type Provenance string

const (
	ProvenanceIdentity Provenance = "identity"
	ProvenanceDirect   Provenance = "direct"
	ProvenanceCross    Provenance = "cross"
	ProvenanceInverse  Provenance = "inverse"
)

// RateRecord is one stored row: all published rates for a single base
// currency. Rates are keyed by target currency code; the base itself is
// never a key. The record is owned by the administrative write path and
// read-only everywhere else.
type RateRecord struct {
	Base      string
	Rates     map[string]decimal.Decimal
	AsOf      *string
	UpdatedAt time.Time
}

// RateResolution is the resolver's answer for one ordered currency pair.
// Rate is kept at full precision; display rounding happens later.
type RateResolution struct {
	Rate       decimal.Decimal
	AsOf       *string
	Provenance Provenance
	BaseUsed   string
}
