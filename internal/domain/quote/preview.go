package quote

import "fmt"

// Preview mirrors the rendered document for in-page display.
type Preview struct {
	QuoteNumber string           `json:"quote_number"`
	IssuedAt    string           `json:"issued_at"`
	ValidUntil  string           `json:"valid_until"`
	Client      PreviewClient    `json:"client"`
	Service     PreviewService   `json:"service"`
	Price       PreviewBreakdown `json:"price"`
}

type PreviewClient struct {
	Name    string `json:"name"`
	Company string `json:"company,omitempty"`
	Email   string `json:"email,omitempty"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

type PreviewService struct {
	Tier          string   `json:"tier"`
	Description   string   `json:"description"`
	Cadence       string   `json:"billing_cadence"`
	Duration      int      `json:"duration"`
	DurationLabel string   `json:"duration_label"`
	Features      []string `json:"features"`
}

type PreviewBreakdown struct {
	UnitPrice string `json:"unit_price"`
	Subtotal  string `json:"subtotal"`
	VATRate   string `json:"vat_rate"`
	VAT       string `json:"vat"`
	Total     string `json:"total"`
	Savings   string `json:"savings,omitempty"`

	SubtotalValue string `json:"subtotal_value"`
	VATValue      string `json:"vat_value"`
	TotalValue    string `json:"total_value"`
}

func NewPreview(q Quote) Preview {
	p := Preview{
		QuoteNumber: q.Number,
		IssuedAt:    q.CreatedAt.Format("2006-01-02"),
		ValidUntil:  q.ValidUntil.Format("2006-01-02"),
		Client: PreviewClient{
			Name:    q.Customer.Name,
			Company: q.Customer.Company,
			Email:   q.Customer.Email,
			Phone:   q.Customer.Phone,
			Address: q.Customer.Address,
		},
		Price: PreviewBreakdown{
			UnitPrice:     FormatCurrency(q.UnitPrice),
			Subtotal:      FormatCurrency(q.Subtotal),
			VATRate:       q.TaxRate.Shift(2).String() + "%",
			VAT:           FormatCurrency(q.TaxAmount),
			Total:         FormatCurrency(q.Total),
			SubtotalValue: q.Subtotal.StringFixed(2),
			VATValue:      q.TaxAmount.StringFixed(2),
			TotalValue:    q.Total.StringFixed(2),
		},
	}
	if q.Savings.IsPositive() {
		p.Price.Savings = FormatCurrency(q.Savings)
	}
	if len(q.Items) > 0 {
		it := q.Items[0]
		p.Service = PreviewService{
			Tier:          string(it.Tier),
			Description:   it.Description,
			Cadence:       string(q.Cadence),
			Duration:      it.Qty,
			DurationLabel: fmt.Sprintf("%d %s", it.Qty, q.Cadence.PeriodUnit(it.Qty)),
			Features:      append([]string(nil), it.Features...),
		}
	}
	return p
}
