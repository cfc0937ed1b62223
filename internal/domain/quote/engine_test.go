package quote

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"coalo/go_backend/internal/domain/pricing"
)

var fixedNow = time.Date(2026, time.March, 2, 10, 0, 0, 0, time.UTC)

func newTestEngine(seq SequenceStore) *Engine {
	logger, _ := test.NewNullLogger()
	return NewEngine(seq, Profile{}, WithClock(func() time.Time { return fixedNow }), WithLogger(logger))
}

func validRequest(tier pricing.Tier, c Cadence, duration float64) Request {
	return Request{
		Customer: Customer{
			Name:    "Thandi Mokoena",
			Company: "GreenLife Supermarkets",
			Phone:   "+27 82 555 0101",
			Address: "14 Oxford Road, Rosebank, Johannesburg",
		},
		Tier:     tier,
		Cadence:  c,
		Duration: duration,
	}
}

func dec(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func assertDecimal(t *testing.T, want int64, got decimal.Decimal, name string) {
	t.Helper()
	assert.Truef(t, got.Equal(dec(want)), "%s: want %d, got %s", name, want, got)
}

func TestCompute_Scenarios(t *testing.T) {
	cases := []struct {
		name     string
		tier     pricing.Tier
		cadence  Cadence
		duration float64
		unit     int64
		subtotal int64
		tax      int64
		total    int64
	}{
		{"standard monthly 1", pricing.Standard, Monthly, 1, 10000, 10000, 1500, 11500},
		{"pro annual 2", pricing.Pro, Annual, 2, 255000, 510000, 76500, 586500},
		{"premium monthly 10", pricing.Premium, Monthly, 10, 45000, 450000, 67500, 517500},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newTestEngine(NewMemorySequence(0))
			q, err := e.Compute(context.Background(), validRequest(tc.tier, tc.cadence, tc.duration))
			require.NoError(t, err)

			require.Len(t, q.Items, 1)
			assert.Equal(t, int(tc.duration), q.Items[0].Qty)
			assertDecimal(t, tc.unit, q.UnitPrice, "unit")
			assertDecimal(t, tc.subtotal, q.Subtotal, "subtotal")
			assertDecimal(t, tc.tax, q.TaxAmount, "tax")
			assertDecimal(t, tc.total, q.Total, "total")
			assert.Equal(t, "QUO-2026-1", q.Number)
			assert.Equal(t, "QUO-2026-1.pdf", q.Filename())
		})
	}
}

func TestCompute_UpperBoundPlusOneRejected(t *testing.T) {
	seq := NewMemorySequence(0)
	e := newTestEngine(seq)

	_, err := e.Compute(context.Background(), validRequest(pricing.Premium, Monthly, 11))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("duration"))

	cur, _ := seq.Current(context.Background())
	assert.Equal(t, int64(0), cur)
}

func TestCompute_BoundaryRejectionLeavesCounter(t *testing.T) {
	bad := []float64{0, -1, 2.5, 11, math.NaN(), math.Inf(1)}
	seq := NewMemorySequence(7)
	e := newTestEngine(seq)

	for _, d := range bad {
		_, err := e.Compute(context.Background(), validRequest(pricing.Standard, Monthly, d))
		require.Error(t, err, "duration %v", d)
		assert.True(t, IsValidation(err))
	}
	cur, _ := seq.Current(context.Background())
	assert.Equal(t, int64(7), cur)
}

func TestCompute_UnknownTierRejectedBeforeNumbering(t *testing.T) {
	seq := NewMemorySequence(0)
	e := newTestEngine(seq)

	_, err := e.Compute(context.Background(), validRequest(pricing.Tier("gold"), Annual, 1))
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)
	assert.True(t, ve.Has("tier"))

	cur, _ := seq.Current(context.Background())
	assert.Equal(t, int64(0), cur)
}

func TestValidate_CollectsAllFields(t *testing.T) {
	err := Validate(Request{Customer: Customer{Email: "nope"}, Duration: 0})
	var ve *ValidationError
	require.ErrorAs(t, err, &ve)

	details := ve.Details()
	for _, f := range []string{"name", "phone", "address", "email", "tier", "billing_cadence", "duration"} {
		assert.Contains(t, details, f)
	}
}

func TestCompute_SequenceMonotonic(t *testing.T) {
	e := newTestEngine(NewMemorySequence(0))
	var last int64
	for i := 0; i < 25; i++ {
		q, err := e.Compute(context.Background(), validRequest(pricing.Pro, Monthly, 1))
		require.NoError(t, err)
		assert.Equal(t, last+1, q.Sequence)
		assert.Equal(t, FormatNumber(2026, q.Sequence), q.Number)
		last = q.Sequence
	}
}

func TestPrice_DeterministicAndTaxInvariant(t *testing.T) {
	e := newTestEngine(NewMemorySequence(0))
	for _, tier := range []pricing.Tier{pricing.Standard, pricing.Pro, pricing.Premium} {
		for _, c := range []Cadence{Monthly, Annual} {
			_, one, err := e.Price(validRequest(tier, c, 1))
			require.NoError(t, err)
			for k := 1; k <= MaxDuration; k++ {
				_, a, err := e.Price(validRequest(tier, c, float64(k)))
				require.NoError(t, err)
				_, b, err := e.Price(validRequest(tier, c, float64(k)))
				require.NoError(t, err)

				assert.True(t, a.Total.Equal(b.Total))
				assert.True(t, a.Subtotal.Equal(one.Subtotal.Mul(dec(int64(k)))))
				assert.True(t, a.TaxAmount.Equal(a.Subtotal.Mul(VATRate).Round(2)))
				assert.True(t, a.Total.Equal(a.Subtotal.Add(a.TaxAmount)))
			}
		}
	}
}

func TestPrice_AnnualIsWholePeriods(t *testing.T) {
	e := newTestEngine(NewMemorySequence(0))
	item, b, err := e.Price(validRequest(pricing.Standard, Annual, 3))
	require.NoError(t, err)

	assertDecimal(t, 102000, item.UnitPrice, "unit")
	assertDecimal(t, 306000, b.Subtotal, "subtotal")
	assertDecimal(t, 54000, b.Savings, "savings")
	assert.Equal(t, "Standard Package (Annual)", item.Description)
}

func TestPrice_MonthlyHasNoSavings(t *testing.T) {
	e := newTestEngine(NewMemorySequence(0))
	_, b, err := e.Price(validRequest(pricing.Premium, Monthly, 4))
	require.NoError(t, err)
	assert.True(t, b.Savings.IsZero())
}

func TestCompute_DatesAndProfile(t *testing.T) {
	e := newTestEngine(NewMemorySequence(0))
	req := validRequest(pricing.Standard, Monthly, 1)
	req.Customer.Name = "  Padded Name  "

	q, err := e.Compute(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, fixedNow, q.CreatedAt)
	assert.Equal(t, fixedNow.AddDate(0, 0, 30), q.ValidUntil)
	assert.Equal(t, "Padded Name", q.Customer.Name)
	assert.Equal(t, DefaultProfile().Issuer.Name, q.Issuer.Name)
	assert.Equal(t, 14, q.Terms.PaymentDueDays)
}

type failingSequence struct{}

func (failingSequence) Next(context.Context) (int64, error)    { return 0, errors.New("disk full") }
func (failingSequence) Current(context.Context) (int64, error) { return 0, nil }

func TestCompute_SequenceFailure(t *testing.T) {
	e := newTestEngine(failingSequence{})
	_, err := e.Compute(context.Background(), validRequest(pricing.Standard, Monthly, 1))

	var ge *GenerationError
	require.ErrorAs(t, err, &ge)
	assert.Equal(t, StageNumber, ge.Stage)
	assert.False(t, IsValidation(err))
}

func TestNewEngine_DefaultLogger(t *testing.T) {
	e := NewEngine(NewMemorySequence(0), Profile{})
	assert.Equal(t, logrus.StandardLogger(), e.log)
}
