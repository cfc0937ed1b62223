package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"coalo/go_backend/internal/domain/pricing"
	"coalo/go_backend/internal/domain/quote"
)

type tierResponse struct {
	Tier                string   `json:"tier"`
	Name                string   `json:"name"`
	Description         string   `json:"description"`
	Features            []string `json:"features"`
	Highlighted         bool     `json:"highlighted"`
	MonthlyPrice        string   `json:"monthly_price"`
	AnnualPrice         string   `json:"annual_price"`
	OriginalAnnualPrice string   `json:"original_annual_price"`
	AnnualSavings       string   `json:"annual_savings"`
	MonthlyDisplay      string   `json:"monthly_display"`
	AnnualDisplay       string   `json:"annual_display"`
}

func newTierResponse(d pricing.TierDetails) tierResponse {
	return tierResponse{
		Tier:                string(d.Tier),
		Name:                d.Name,
		Description:         d.Description,
		Features:            d.Features,
		Highlighted:         d.Highlighted,
		MonthlyPrice:        d.MonthlyPrice.StringFixed(2),
		AnnualPrice:         d.AnnualPrice.StringFixed(2),
		OriginalAnnualPrice: d.OriginalAnnualPrice.StringFixed(2),
		AnnualSavings:       d.AnnualSavings().StringFixed(2),
		MonthlyDisplay:      quote.FormatCurrency(d.MonthlyPrice),
		AnnualDisplay:       quote.FormatCurrency(d.AnnualPrice),
	}
}

func (h *Handlers) ListPricing(w http.ResponseWriter, r *http.Request) {
	all := pricing.All()
	out := make([]tierResponse, 0, len(all))
	for _, d := range all {
		out = append(out, newTierResponse(d))
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"currency": quote.CurrencySymbol,
		"vat_rate": quote.VATRate.String(),
		"tiers":    out,
	})
}

func (h *Handlers) GetPricing(w http.ResponseWriter, r *http.Request) {
	t, err := pricing.ParseTier(chi.URLParam(r, "tier"))
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	d, err := pricing.Lookup(t)
	if err != nil {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, newTierResponse(d))
}

type estimateResponse struct {
	Tier        string   `json:"tier"`
	Description string   `json:"description"`
	Cadence     string   `json:"billing_cadence"`
	Duration    int      `json:"duration"`
	Features    []string `json:"features"`
	UnitPrice   string   `json:"unit_price"`
	Subtotal    string   `json:"subtotal"`
	VATRate     string   `json:"vat_rate"`
	VAT         string   `json:"vat"`
	Total       string   `json:"total"`
	Savings     string   `json:"savings"`
	Display     struct {
		UnitPrice string `json:"unit_price"`
		Subtotal  string `json:"subtotal"`
		VAT       string `json:"vat"`
		Total     string `json:"total"`
		Savings   string `json:"savings,omitempty"`
	} `json:"display"`
}

// Estimate prices a request without issuing a number, for live totals in the form.
func (h *Handlers) Estimate(w http.ResponseWriter, r *http.Request) {
	var body quoteRequest
	if !decodeJSON(w, r, &body) {
		return
	}
	req := body.toDomain()
	item, b, err := h.Quotes.Engine.Price(req)
	if err != nil {
		writeDomainError(w, err, "estimate failed")
		return
	}

	out := estimateResponse{
		Tier:        string(item.Tier),
		Description: item.Description,
		Cadence:     string(req.Cadence),
		Duration:    item.Qty,
		Features:    item.Features,
		UnitPrice:   b.UnitPrice.StringFixed(2),
		Subtotal:    b.Subtotal.StringFixed(2),
		VATRate:     b.TaxRate.String(),
		VAT:         b.TaxAmount.StringFixed(2),
		Total:       b.Total.StringFixed(2),
		Savings:     b.Savings.StringFixed(2),
	}
	out.Display.UnitPrice = quote.FormatCurrency(b.UnitPrice)
	out.Display.Subtotal = quote.FormatCurrency(b.Subtotal)
	out.Display.VAT = quote.FormatCurrency(b.TaxAmount)
	out.Display.Total = quote.FormatCurrency(b.Total)
	if b.Savings.IsPositive() {
		out.Display.Savings = quote.FormatCurrency(b.Savings)
	}
	writeJSON(w, http.StatusOK, out)
}
