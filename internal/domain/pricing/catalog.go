package pricing

import (
	"errors"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type Tier string

const (
	Standard Tier = "standard"
	Pro      Tier = "pro"
	Premium  Tier = "premium"
)

var ErrUnknownTier = errors.New("unknown tier")

// Pricing is the per-period unit price pair of a tier, VAT exclusive.
type Pricing struct {
	MonthlyPrice        decimal.Decimal
	AnnualPrice         decimal.Decimal
	OriginalAnnualPrice decimal.Decimal
}

type TierDetails struct {
	Tier        Tier
	Name        string
	Description string
	Features    []string
	Highlighted bool
	Pricing
}

var order = []Tier{Standard, Pro, Premium}

var catalog = map[Tier]TierDetails{
	Standard: {
		Tier:        Standard,
		Name:        "Standard",
		Description: "Essential advertising for small businesses looking to establish a presence.",
		Features: []string{
			"10-second advert duration",
			"Fixed scheduling",
			"Static images only",
			"Moderate cycle frequency",
			"Monthly reporting",
			"Standard support",
		},
		Pricing: Pricing{
			MonthlyPrice:        decimal.NewFromInt(10000),
			AnnualPrice:         decimal.NewFromInt(102000),
			OriginalAnnualPrice: decimal.NewFromInt(120000),
		},
	},
	Pro: {
		Tier:        Pro,
		Name:        "Pro",
		Description: "Advanced features for growing brands seeking enhanced visibility.",
		Features: []string{
			"20-second advert duration",
			"Enhanced scheduling flexibility",
			"Mix of static and limited dynamic content",
			"Increased cycle frequency",
			"Bi-weekly reporting",
			"Priority support",
			"Basic AI-driven analytics",
		},
		Highlighted: true,
		Pricing: Pricing{
			MonthlyPrice:        decimal.NewFromInt(25000),
			AnnualPrice:         decimal.NewFromInt(255000),
			OriginalAnnualPrice: decimal.NewFromInt(300000),
		},
	},
	Premium: {
		Tier:        Premium,
		Name:        "Premium",
		Description: "Complete creative freedom and maximum exposure for established brands.",
		Features: []string{
			"45-second advert duration",
			"Unlimited cycles per day",
			"Full creative freedom (video, dynamic or static)",
			"AI-driven input and analytics",
			"QR code discounts for first 100 customers",
			"24/7 dedicated support",
			"Customizable campaigns",
			"Overnight viewership",
			"Tailored target market",
		},
		Pricing: Pricing{
			MonthlyPrice:        decimal.NewFromInt(45000),
			AnnualPrice:         decimal.NewFromInt(459000),
			OriginalAnnualPrice: decimal.NewFromInt(540000),
		},
	},
}

func ParseTier(s string) (Tier, error) {
	t := Tier(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := catalog[t]; !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownTier, s)
	}
	return t, nil
}

func (t Tier) Valid() bool {
	_, ok := catalog[t]
	return ok
}

// Lookup returns the tier record or ErrUnknownTier.
func Lookup(t Tier) (TierDetails, error) {
	d, ok := catalog[t]
	if !ok {
		return TierDetails{}, fmt.Errorf("%w: %q", ErrUnknownTier, string(t))
	}
	return clone(d), nil
}

// PricingDetails never fails: an unknown tier yields zero prices.
func PricingDetails(t Tier) Pricing {
	d, ok := catalog[t]
	if !ok {
		return Pricing{
			MonthlyPrice:        decimal.Zero,
			AnnualPrice:         decimal.Zero,
			OriginalAnnualPrice: decimal.Zero,
		}
	}
	return d.Pricing
}

// TierDetailsOf never fails: an unknown tier yields an empty, zero-priced record
// named after the input so documents can still be rendered.
func TierDetailsOf(t Tier) TierDetails {
	d, err := Lookup(t)
	if err != nil {
		return TierDetails{Tier: t, Name: string(t), Features: []string{}, Pricing: PricingDetails(t)}
	}
	return d
}

func All() []TierDetails {
	out := make([]TierDetails, 0, len(order))
	for _, t := range order {
		out = append(out, clone(catalog[t]))
	}
	return out
}

// AnnualSavings is what one annual period saves against twelve monthly payments.
func (p Pricing) AnnualSavings() decimal.Decimal {
	s := p.OriginalAnnualPrice.Sub(p.AnnualPrice)
	if s.IsNegative() {
		return decimal.Zero
	}
	return s
}

func clone(d TierDetails) TierDetails {
	d.Features = append([]string(nil), d.Features...)
	return d
}
