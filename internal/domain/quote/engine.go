package quote

import (
	"context"
	"fmt"
	"math"
	"net/mail"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"coalo/go_backend/internal/domain/pricing"
)

type Engine struct {
	seq     SequenceStore
	profile Profile
	now     func() time.Time
	log     logrus.FieldLogger
}

type Option func(*Engine)

func WithClock(now func() time.Time) Option {
	return func(e *Engine) { e.now = now }
}

func WithLogger(l logrus.FieldLogger) Option {
	return func(e *Engine) { e.log = l }
}

func NewEngine(seq SequenceStore, profile Profile, opts ...Option) *Engine {
	e := &Engine{
		seq:     seq,
		profile: profile.Merge(DefaultProfile()),
		now:     time.Now,
		log:     logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(e)
	}
	return e
}

// Validate checks a request without touching the sequence.
func Validate(req Request) error {
	ve := &ValidationError{}
	if strings.TrimSpace(req.Customer.Name) == "" {
		ve.add("name", "name is required")
	}
	if strings.TrimSpace(req.Customer.Phone) == "" {
		ve.add("phone", "phone is required")
	}
	if strings.TrimSpace(req.Customer.Address) == "" {
		ve.add("address", "address is required")
	}
	if email := strings.TrimSpace(req.Customer.Email); email != "" {
		if _, err := mail.ParseAddress(email); err != nil {
			ve.add("email", "email is not a valid address")
		}
	}
	if !req.Tier.Valid() {
		ve.add("tier", fmt.Sprintf("unknown tier %q", string(req.Tier)))
	}
	if !req.Cadence.Valid() {
		ve.add("billing_cadence", "billing cadence must be monthly or annual")
	}
	switch d := req.Duration; {
	case math.IsNaN(d) || math.IsInf(d, 0):
		ve.add("duration", "duration must be a number")
	case d != math.Trunc(d):
		ve.add("duration", "duration must be a whole number")
	case d < MinDuration || d > MaxDuration:
		ve.add("duration", fmt.Sprintf("duration must be between %d and %d", MinDuration, MaxDuration))
	}
	return ve.orNil()
}

// Price validates the request and computes the line item and totals. It has
// no side effects.
func (e *Engine) Price(req Request) (Item, Breakdown, error) {
	if err := Validate(req); err != nil {
		return Item{}, Breakdown{}, err
	}
	details, err := pricing.Lookup(req.Tier)
	if err != nil {
		ve := &ValidationError{}
		ve.add("tier", err.Error())
		return Item{}, Breakdown{}, ve
	}

	qty := int(req.Duration)
	n := decimal.NewFromInt(int64(qty))

	unit := details.MonthlyPrice
	savings := decimal.Zero
	if req.Cadence == Annual {
		unit = details.AnnualPrice
		savings = details.AnnualSavings().Mul(n)
	}

	subtotal := unit.Mul(n)
	tax := Round2(subtotal.Mul(VATRate))

	item := Item{
		Tier:        details.Tier,
		Description: describe(details, req.Cadence),
		Qty:         qty,
		UnitPrice:   unit,
		LineTotal:   subtotal,
		Features:    details.Features,
	}
	b := Breakdown{
		UnitPrice: unit,
		Subtotal:  subtotal,
		TaxRate:   VATRate,
		TaxAmount: tax,
		Total:     subtotal.Add(tax),
		Savings:   savings,
	}
	return item, b, nil
}

// Compute prices the request and assigns the next document number. The
// sequence only advances once the request is known to be valid.
func (e *Engine) Compute(ctx context.Context, req Request) (Quote, error) {
	item, b, err := e.Price(req)
	if err != nil {
		return Quote{}, err
	}

	seq, err := e.seq.Next(ctx)
	if err != nil {
		return Quote{}, &GenerationError{Stage: StageNumber, Err: err}
	}

	now := e.now()
	q := Quote{
		Number:     FormatNumber(now.Year(), seq),
		Sequence:   seq,
		CreatedAt:  now,
		ValidUntil: now.AddDate(0, 0, e.profile.Terms.ValidityDays),
		Cadence:    req.Cadence,
		Duration:   item.Qty,
		Issuer:     e.profile.Issuer,
		Customer:   trimCustomer(req.Customer),
		Items:      []Item{item},
		Breakdown:  b,
		Banking:    e.profile.Banking,
		Terms:      e.profile.Terms,
	}
	e.log.WithFields(logrus.Fields{
		"quote_number": q.Number,
		"tier":         item.Tier,
		"cadence":      req.Cadence,
		"duration":     item.Qty,
	}).Info("quote: computed")
	return q, nil
}

func describe(d pricing.TierDetails, c Cadence) string {
	if c == Annual {
		return d.Name + " Package (Annual)"
	}
	return d.Name + " Package (Monthly)"
}

func trimCustomer(c Customer) Customer {
	return Customer{
		Name:    strings.TrimSpace(c.Name),
		Company: strings.TrimSpace(c.Company),
		Email:   strings.TrimSpace(c.Email),
		Phone:   strings.TrimSpace(c.Phone),
		Address: strings.TrimSpace(c.Address),
	}
}
