package conversion

import (
	"context"
	"errors"
	"testing"

	"fxconvert/internal/domain"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// --- Testify mocks ---

type MockRateStore struct{ mock.Mock }

func (m *MockRateStore) GetByBase(ctx context.Context, base string) (*domain.RateRecord, error) {
	args := m.Called(ctx, base)
	rec, _ := args.Get(0).(*domain.RateRecord)
	return rec, args.Error(1)
}

func (m *MockRateStore) UpsertRate(ctx context.Context, base string, target string, rate decimal.Decimal) (*domain.RateRecord, error) {
	args := m.Called(ctx, base, target, rate)
	rec, _ := args.Get(0).(*domain.RateRecord)
	return rec, args.Error(1)
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func recordFor(base string, asOf string, rates map[string]decimal.Decimal) *domain.RateRecord {
	return &domain.RateRecord{Base: base, Rates: rates, AsOf: &asOf}
}

func TestResolver_Direct(t *testing.T) {
	mockStore := new(MockRateStore)
	r := NewResolver(mockStore, "USD")
	ctx := context.Background()

	rec := recordFor("USD", "2025-06-01T00:00:00Z", map[string]decimal.Decimal{"EUR": dec("0.9200")})
	mockStore.On("GetByBase", mock.Anything, "USD").Return(rec, nil).Once()

	res, err := r.Resolve(ctx, "USD", "EUR")

	require.NoError(t, err)
	require.Equal(t, domain.ProvenanceDirect, res.Provenance)
	require.Equal(t, "USD", res.BaseUsed)
	require.True(t, dec("0.9200").Equal(res.Rate))
	require.NotNil(t, res.AsOf)
	require.Equal(t, "2025-06-01T00:00:00Z", *res.AsOf)
	mockStore.AssertExpectations(t)
}

func TestResolver_DirectWinsOverCrossAndInverse(t *testing.T) {
	mockStore := new(MockRateStore)
	r := NewResolver(mockStore, "USD")
	ctx := context.Background()

	// Direct record exists; canonical-base and inverse records must never
	// even be fetched.
	rec := recordFor("EUR", "2025-06-01T00:00:00Z", map[string]decimal.Decimal{"GBP": dec("0.8600")})
	mockStore.On("GetByBase", mock.Anything, "EUR").Return(rec, nil).Once()

	res, err := r.Resolve(ctx, "EUR", "GBP")

	require.NoError(t, err)
	require.Equal(t, domain.ProvenanceDirect, res.Provenance)
	mockStore.AssertNumberOfCalls(t, "GetByBase", 1)
}

func TestResolver_Cross(t *testing.T) {
	mockStore := new(MockRateStore)
	r := NewResolver(mockStore, "USD")
	ctx := context.Background()

	canonical := recordFor("USD", "2025-06-02T00:00:00Z", map[string]decimal.Decimal{
		"EUR": dec("0.92"),
		"GBP": dec("0.79"),
	})
	mockStore.On("GetByBase", mock.Anything, "EUR").Return(nil, domain.ErrRecordNotFound).Once()
	mockStore.On("GetByBase", mock.Anything, "USD").Return(canonical, nil).Once()

	res, err := r.Resolve(ctx, "EUR", "GBP")

	require.NoError(t, err)
	require.Equal(t, domain.ProvenanceCross, res.Provenance)
	require.Equal(t, "USD", res.BaseUsed)
	// Exact pre-rounding quotient of the two published rates.
	require.True(t, dec("0.79").Div(dec("0.92")).Equal(res.Rate))
	require.Equal(t, "0.8587", res.Rate.Round(4).String())
	require.Equal(t, "2025-06-02T00:00:00Z", *res.AsOf)
	mockStore.AssertExpectations(t)
}

func TestResolver_CrossZeroDivisorFallsThroughToInverse(t *testing.T) {
	mockStore := new(MockRateStore)
	r := NewResolver(mockStore, "USD")
	ctx := context.Background()

	canonical := recordFor("USD", "2025-06-02T00:00:00Z", map[string]decimal.Decimal{
		"EUR": dec("0"),
		"GBP": dec("0.79"),
	})
	inverse := recordFor("GBP", "2025-06-03T00:00:00Z", map[string]decimal.Decimal{"EUR": dec("1.1640")})
	mockStore.On("GetByBase", mock.Anything, "EUR").Return(nil, domain.ErrRecordNotFound).Once()
	mockStore.On("GetByBase", mock.Anything, "USD").Return(canonical, nil).Once()
	mockStore.On("GetByBase", mock.Anything, "GBP").Return(inverse, nil).Once()

	res, err := r.Resolve(ctx, "EUR", "GBP")

	require.NoError(t, err)
	require.Equal(t, domain.ProvenanceInverse, res.Provenance)
	require.Equal(t, "GBP", res.BaseUsed)
	require.True(t, decimal.New(1, 0).Div(dec("1.1640")).Equal(res.Rate))
	mockStore.AssertExpectations(t)
}

func TestResolver_Inverse(t *testing.T) {
	mockStore := new(MockRateStore)
	r := NewResolver(mockStore, "USD")
	ctx := context.Background()

	inverse := recordFor("JPY", "2025-06-04T00:00:00Z", map[string]decimal.Decimal{"CHF": dec("0.0058")})
	mockStore.On("GetByBase", mock.Anything, "CHF").Return(nil, domain.ErrRecordNotFound).Once()
	mockStore.On("GetByBase", mock.Anything, "USD").Return(nil, domain.ErrRecordNotFound).Once()
	mockStore.On("GetByBase", mock.Anything, "JPY").Return(inverse, nil).Once()

	res, err := r.Resolve(ctx, "CHF", "JPY")

	require.NoError(t, err)
	require.Equal(t, domain.ProvenanceInverse, res.Provenance)
	require.Equal(t, "JPY", res.BaseUsed)
	require.True(t, decimal.New(1, 0).Div(dec("0.0058")).Equal(res.Rate))
	require.Equal(t, "2025-06-04T00:00:00Z", *res.AsOf)
	mockStore.AssertExpectations(t)
}

func TestResolver_InverseZeroRateIsUnavailable(t *testing.T) {
	mockStore := new(MockRateStore)
	r := NewResolver(mockStore, "USD")
	ctx := context.Background()

	inverse := recordFor("JPY", "2025-06-04T00:00:00Z", map[string]decimal.Decimal{"CHF": dec("0")})
	mockStore.On("GetByBase", mock.Anything, "CHF").Return(nil, domain.ErrRecordNotFound).Once()
	mockStore.On("GetByBase", mock.Anything, "USD").Return(nil, domain.ErrRecordNotFound).Once()
	mockStore.On("GetByBase", mock.Anything, "JPY").Return(inverse, nil).Once()

	_, err := r.Resolve(ctx, "CHF", "JPY")

	require.ErrorIs(t, err, domain.ErrRateUnavailable)
	mockStore.AssertExpectations(t)
}

func TestResolver_Unavailable(t *testing.T) {
	mockStore := new(MockRateStore)
	r := NewResolver(mockStore, "USD")
	ctx := context.Background()

	mockStore.On("GetByBase", mock.Anything, mock.Anything).Return(nil, domain.ErrRecordNotFound).Times(3)

	_, err := r.Resolve(ctx, "EUR", "GBP")

	require.ErrorIs(t, err, domain.ErrRateUnavailable)
	mockStore.AssertExpectations(t)
}

func TestResolver_StoreFailureDegradesToMissingRecord(t *testing.T) {
	mockStore := new(MockRateStore)
	r := NewResolver(mockStore, "USD")
	ctx := context.Background()

	canonical := recordFor("USD", "2025-06-02T00:00:00Z", map[string]decimal.Decimal{
		"EUR": dec("0.92"),
		"GBP": dec("0.79"),
	})
	mockStore.On("GetByBase", mock.Anything, "EUR").Return(nil, errors.New("connection reset")).Once()
	mockStore.On("GetByBase", mock.Anything, "USD").Return(canonical, nil).Once()

	res, err := r.Resolve(ctx, "EUR", "GBP")

	require.NoError(t, err)
	require.Equal(t, domain.ProvenanceCross, res.Provenance)
	mockStore.AssertExpectations(t)
}

func TestResolver_CanonicalBaseIsNormalized(t *testing.T) {
	mockStore := new(MockRateStore)
	r := NewResolver(mockStore, "usd")
	ctx := context.Background()

	canonical := recordFor("USD", "2025-06-02T00:00:00Z", map[string]decimal.Decimal{
		"EUR": dec("0.92"),
		"GBP": dec("0.79"),
	})
	mockStore.On("GetByBase", mock.Anything, "EUR").Return(nil, domain.ErrRecordNotFound).Once()
	mockStore.On("GetByBase", mock.Anything, "USD").Return(canonical, nil).Once()

	res, err := r.Resolve(ctx, "EUR", "GBP")

	require.NoError(t, err)
	require.Equal(t, "USD", res.BaseUsed)
	mockStore.AssertExpectations(t)
}
