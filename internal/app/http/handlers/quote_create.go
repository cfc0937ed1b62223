package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"coalo/go_backend/internal/domain/pricing"
	"coalo/go_backend/internal/domain/quote"
)

type quoteRequest struct {
	Customer struct {
		Name    string `json:"name"`
		Company string `json:"company"`
		Email   string `json:"email"`
		Phone   string `json:"phone"`
		Address string `json:"address"`
	} `json:"customer"`
	Tier           string  `json:"tier"`
	BillingCadence string  `json:"billing_cadence"`
	IsAnnual       *bool   `json:"is_annual"`
	Duration       float64 `json:"duration"`
}

// toDomain resolves the cadence: an explicit billing_cadence wins, then the
// legacy is_annual flag, otherwise monthly.
func (b quoteRequest) toDomain() quote.Request {
	cadence := quote.Monthly
	switch {
	case b.BillingCadence != "":
		cadence = quote.Cadence(strings.ToLower(strings.TrimSpace(b.BillingCadence)))
	case b.IsAnnual != nil && *b.IsAnnual:
		cadence = quote.Annual
	}
	return quote.Request{
		Customer: quote.Customer{
			Name:    b.Customer.Name,
			Company: b.Customer.Company,
			Email:   b.Customer.Email,
			Phone:   b.Customer.Phone,
			Address: b.Customer.Address,
		},
		Tier:     pricing.Tier(strings.ToLower(strings.TrimSpace(b.Tier))),
		Cadence:  cadence,
		Duration: b.Duration,
	}
}

func (h *Handlers) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var body quoteRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	art, err := h.Quotes.Generate(r.Context(), body.toDomain())
	if err != nil {
		writeDomainError(w, err, "We could not generate your quote. Please try again.")
		return
	}

	w.Header().Set("Content-Type", art.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, art.Filename))
	w.Header().Set("X-Quote-Number", art.Quote.Number)
	w.WriteHeader(http.StatusOK)
	w.Write(art.Data)
}

func (h *Handlers) PreviewQuote(w http.ResponseWriter, r *http.Request) {
	var body quoteRequest
	if !decodeJSON(w, r, &body) {
		return
	}

	p, err := h.Quotes.Preview(r.Context(), body.toDomain())
	if err != nil {
		writeDomainError(w, err, "We could not prepare your quote. Please try again.")
		return
	}
	writeJSON(w, http.StatusOK, p)
}
