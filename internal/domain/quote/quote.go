package quote

import (
	"time"

	"github.com/shopspring/decimal"

	"coalo/go_backend/internal/domain/pricing"
)

type Cadence string

const (
	Monthly Cadence = "monthly"
	Annual  Cadence = "annual"
)

func (c Cadence) Valid() bool { return c == Monthly || c == Annual }

// PeriodUnit names one duration unit for the cadence.
func (c Cadence) PeriodUnit(n int) string {
	unit := "month"
	if c == Annual {
		unit = "year"
	}
	if n != 1 {
		unit += "s"
	}
	return unit
}

const (
	MinDuration = 1
	MaxDuration = 10
)

// Request is one quote form submission. Duration stays a float so that
// fractional or non-finite input can be rejected instead of truncated.
type Request struct {
	Customer Customer
	Tier     pricing.Tier
	Cadence  Cadence
	Duration float64
}

type Customer struct {
	Name    string
	Company string
	Email   string
	Phone   string
	Address string
}

type Item struct {
	Tier        pricing.Tier
	Description string
	Qty         int
	UnitPrice   decimal.Decimal
	LineTotal   decimal.Decimal
	Features    []string
}

type Breakdown struct {
	UnitPrice decimal.Decimal
	Subtotal  decimal.Decimal
	TaxRate   decimal.Decimal
	TaxAmount decimal.Decimal
	Total     decimal.Decimal
	Savings   decimal.Decimal
}

type Quote struct {
	Number     string
	Sequence   int64
	CreatedAt  time.Time
	ValidUntil time.Time
	Cadence    Cadence
	Duration   int

	Issuer   Issuer
	Customer Customer
	Items    []Item
	Breakdown

	Banking Banking
	Terms   Terms
}

// Filename is the suggested download name of the rendered document.
func (q Quote) Filename() string { return q.Number + ".pdf" }

type Issuer struct {
	Name         string   `yaml:"name"`
	AddressLines []string `yaml:"address_lines"`
	Phone        string   `yaml:"phone"`
	Email        string   `yaml:"email"`
	Website      string   `yaml:"website"`
	VATNumber    string   `yaml:"vat_number"`
}

type Banking struct {
	Beneficiary   string `yaml:"beneficiary"`
	Bank          string `yaml:"bank"`
	AccountNumber string `yaml:"account_number"`
	BranchCode    string `yaml:"branch_code"`
}

type Terms struct {
	ValidityDays   int    `yaml:"validity_days"`
	PaymentDueDays int    `yaml:"payment_due_days"`
	Disclaimer     string `yaml:"disclaimer"`
}

// Profile is the sender side of every document.
type Profile struct {
	Issuer  Issuer  `yaml:"issuer"`
	Banking Banking `yaml:"banking"`
	Terms   Terms   `yaml:"terms"`
}

func DefaultProfile() Profile {
	return Profile{
		Issuer: Issuer{
			Name:         "Coalō",
			AddressLines: []string{"123 Sandton Drive", "Johannesburg, South Africa"},
			Phone:        "+27 12 345 6789",
			Email:        "info@coalo.co.za",
			Website:      "www.coalo.co.za",
		},
		Banking: Banking{
			Beneficiary:   "Coalo (Pty) Ltd",
			Bank:          "First National Bank",
			AccountNumber: "62845123987",
			BranchCode:    "250655",
		},
		Terms: Terms{
			ValidityDays:   30,
			PaymentDueDays: 14,
			Disclaimer:     "E&OE. Errors and omissions excepted. Prices exclude VAT unless stated otherwise.",
		},
	}
}

// Merge fills empty fields of p from def.
func (p Profile) Merge(def Profile) Profile {
	if p.Issuer.Name == "" {
		p.Issuer.Name = def.Issuer.Name
	}
	if len(p.Issuer.AddressLines) == 0 {
		p.Issuer.AddressLines = def.Issuer.AddressLines
	}
	if p.Issuer.Phone == "" {
		p.Issuer.Phone = def.Issuer.Phone
	}
	if p.Issuer.Email == "" {
		p.Issuer.Email = def.Issuer.Email
	}
	if p.Issuer.Website == "" {
		p.Issuer.Website = def.Issuer.Website
	}
	if p.Issuer.VATNumber == "" {
		p.Issuer.VATNumber = def.Issuer.VATNumber
	}
	if p.Banking == (Banking{}) {
		p.Banking = def.Banking
	}
	if p.Terms.ValidityDays <= 0 {
		p.Terms.ValidityDays = def.Terms.ValidityDays
	}
	if p.Terms.PaymentDueDays <= 0 {
		p.Terms.PaymentDueDays = def.Terms.PaymentDueDays
	}
	if p.Terms.Disclaimer == "" {
		p.Terms.Disclaimer = def.Terms.Disclaimer
	}
	return p
}
