package pdf

import (
	"fmt"
	"strconv"
	"strings"

	"coalo/go_backend/internal/domain/quote"
	"coalo/go_backend/internal/domain/quote/layout"
)

const dateFormat = "02 January 2006"

type Options struct {
	Frame           layout.Frame
	LogoPath        string
	IncludeFeatures bool
}

func DefaultOptions() Options {
	return Options{Frame: layout.A4(), IncludeFeatures: true}
}

var (
	styleTitle   = layout.Style{Size: 18, Bold: true}
	styleIssuer  = layout.Style{Size: 15, Bold: true}
	styleHeading = layout.Style{Size: 10, Bold: true}
	styleBody    = layout.Style{Size: 10}
	styleBold    = layout.Style{Size: 10, Bold: true}
	styleSmall   = layout.Style{Size: 8.5}
	styleTotal   = layout.Style{Size: 11.5, Bold: true}
)

// table columns, relative to the left margin of an A4 content area
const (
	colDescX, colDescW = 0.0, 100.0
	colQtyX, colQtyW   = 100.0, 20.0
	colUnitX, colUnitW = 120.0, 30.0
	colAmtX, colAmtW   = 150.0, 30.0

	billedToWidth = 90.0
	lineH         = 5.5
)

// BuildBlocks lays a quote out as header, billed-to, itemized table, totals
// and footer.
func BuildBlocks(q quote.Quote, m layout.Measurer, opts Options) []layout.Block {
	width := opts.Frame.ContentWidth()
	if width <= 0 {
		width = layout.A4().ContentWidth()
	}
	return []layout.Block{
		headerBlock(q, width, opts),
		billedToBlock(q, m),
		tableBlock(q, m, width, opts),
		totalsBlock(q, m, width),
		footerBlock(q, m, width),
	}
}

func headerBlock(q quote.Quote, width float64, opts Options) layout.Block {
	leftW := width * 0.6
	rightX, rightW := leftW, width-leftW

	var left []layout.Span
	if opts.LogoPath != "" {
		left = append(left, layout.Span{Width: leftW, Image: opts.LogoPath, Text: q.Issuer.Name, Style: styleIssuer})
	} else {
		left = append(left, layout.Span{Width: leftW, Text: q.Issuer.Name, Style: styleIssuer})
	}
	for _, a := range q.Issuer.AddressLines {
		left = append(left, layout.Span{Width: leftW, Text: a, Style: styleBody})
	}
	if contact := joinNonEmpty(" | ", q.Issuer.Phone, q.Issuer.Email); contact != "" {
		left = append(left, layout.Span{Width: leftW, Text: contact, Style: styleBody})
	}
	if q.Issuer.Website != "" {
		left = append(left, layout.Span{Width: leftW, Text: q.Issuer.Website, Style: styleBody})
	}
	if q.Issuer.VATNumber != "" {
		left = append(left, layout.Span{Width: leftW, Text: "VAT Reg. No: " + q.Issuer.VATNumber, Style: styleBody})
	}

	right := []layout.Span{
		{X: rightX, Width: rightW, Text: "QUOTATION", Style: styleTitle, Align: layout.AlignRight},
		{X: rightX, Width: rightW, Text: "Quote No: " + q.Number, Style: styleBold, Align: layout.AlignRight},
		{X: rightX, Width: rightW, Text: "Date: " + q.CreatedAt.Format(dateFormat), Style: styleBody, Align: layout.AlignRight},
		{X: rightX, Width: rightW, Text: "Valid until: " + q.ValidUntil.Format(dateFormat), Style: styleBody, Align: layout.AlignRight},
	}

	rows := len(left)
	if len(right) > rows {
		rows = len(right)
	}
	b := layout.Block{Name: "header"}
	for i := 0; i < rows; i++ {
		var spans []layout.Span
		h := lineH
		if i < len(left) {
			spans = append(spans, left[i])
		}
		if i < len(right) {
			spans = append(spans, right[i])
		}
		if i == 0 {
			h = 9
			if opts.LogoPath != "" {
				h = 16
			}
		}
		b.Lines = append(b.Lines, layout.Line{Height: h, Spans: spans})
	}
	b.Lines[len(b.Lines)-1].RuleBelow = true
	return b
}

func billedToBlock(q quote.Quote, m layout.Measurer) layout.Block {
	b := layout.Block{Name: "billed_to", SpaceBefore: 8}
	add := func(text string, st layout.Style) {
		b.Lines = append(b.Lines, layout.Line{Height: lineH, Spans: []layout.Span{{Width: billedToWidth, Text: text, Style: st}}})
	}
	add("BILLED TO", styleHeading)
	add(q.Customer.Name, styleBold)
	if q.Customer.Company != "" {
		add(q.Customer.Company, styleBody)
	}
	for _, l := range layout.Wrap(m, q.Customer.Address, styleBody, billedToWidth) {
		add(l, styleBody)
	}
	if q.Customer.Phone != "" {
		add("Tel: "+q.Customer.Phone, styleBody)
	}
	if q.Customer.Email != "" {
		add("Email: "+q.Customer.Email, styleBody)
	}
	return b
}

func tableBlock(q quote.Quote, m layout.Measurer, width float64, opts Options) layout.Block {
	scale := width / layout.A4().ContentWidth()
	col := func(x, w float64, text string, st layout.Style, a layout.Align) layout.Span {
		return layout.Span{X: x * scale, Width: w * scale, Text: text, Style: st, Align: a}
	}

	b := layout.Block{Name: "table", SpaceBefore: 8}
	b.Lines = append(b.Lines, layout.Line{Height: 7, RuleBelow: true, Spans: []layout.Span{
		col(colDescX, colDescW, "Description", styleHeading, layout.AlignLeft),
		col(colQtyX, colQtyW, "Qty", styleHeading, layout.AlignRight),
		col(colUnitX, colUnitW, "Unit Cost", styleHeading, layout.AlignRight),
		col(colAmtX, colAmtW, "Amount", styleHeading, layout.AlignRight),
	}})

	for _, it := range q.Items {
		desc := layout.Truncate(m, it.Description, styleBold, colDescW*scale-2)
		b.Lines = append(b.Lines, layout.Line{Height: 7, Spans: []layout.Span{
			col(colDescX, colDescW, desc, styleBold, layout.AlignLeft),
			col(colQtyX, colQtyW, strconv.Itoa(it.Qty), styleBody, layout.AlignRight),
			col(colUnitX, colUnitW, quote.FormatCurrency(it.UnitPrice), styleBody, layout.AlignRight),
			col(colAmtX, colAmtW, quote.FormatCurrency(it.LineTotal), styleBody, layout.AlignRight),
		}})
		b.Lines = append(b.Lines, layout.Line{Height: lineH, Spans: []layout.Span{
			col(colDescX, colDescW, fmt.Sprintf("Duration: %d %s", it.Qty, q.Cadence.PeriodUnit(it.Qty)), styleSmall, layout.AlignLeft),
		}})
		if !opts.IncludeFeatures {
			continue
		}
		for _, f := range it.Features {
			for i, l := range layout.Wrap(m, f, styleSmall, colDescW*scale-8) {
				prefix := "    "
				if i == 0 {
					prefix = "•  "
				}
				b.Lines = append(b.Lines, layout.Line{Height: 4.5, Spans: []layout.Span{
					col(colDescX+3, colDescW-3, prefix+l, styleSmall, layout.AlignLeft),
				}})
			}
		}
	}
	b.Lines[len(b.Lines)-1].RuleBelow = true
	return b
}

func totalsBlock(q quote.Quote, m layout.Measurer, width float64) layout.Block {
	valueW := 35.0
	labelW := 50.0
	valueX := width - valueW
	labelX := valueX - labelW

	row := func(label, value string, st layout.Style, h float64) layout.Line {
		return layout.Line{Height: h, Spans: []layout.Span{
			{X: labelX, Width: labelW, Text: label, Style: st, Align: layout.AlignRight},
			{X: valueX, Width: valueW, Text: value, Style: st, Align: layout.AlignRight},
		}}
	}

	vat := row(fmt.Sprintf("VAT (%s%%)", q.TaxRate.Shift(2).String()), quote.FormatCurrency(q.TaxAmount), styleBody, 6)
	vat.RuleBelow = true
	b := layout.Block{Name: "totals", SpaceBefore: 4, KeepTogether: true, Lines: []layout.Line{
		row("Subtotal", quote.FormatCurrency(q.Subtotal), styleBody, 6),
		vat,
		row("Total", quote.FormatCurrency(q.Total), styleTotal, 8),
	}}
	if q.Savings.IsPositive() {
		note := fmt.Sprintf("Annual billing saves you %s over %d %s.", quote.FormatCurrency(q.Savings), q.Duration, q.Cadence.PeriodUnit(q.Duration))
		for _, l := range layout.Wrap(m, note, styleSmall, width) {
			b.Lines = append(b.Lines, layout.Line{Height: 4.5, Spans: []layout.Span{
				{Width: width, Text: l, Style: styleSmall, Align: layout.AlignRight},
			}})
		}
	}
	return b
}

func footerBlock(q quote.Quote, m layout.Measurer, width float64) layout.Block {
	b := layout.Block{Name: "footer", SpaceBefore: 12, KeepTogether: true}
	add := func(text string, st layout.Style, h float64) {
		b.Lines = append(b.Lines, layout.Line{Height: h, Spans: []layout.Span{{Width: width, Text: text, Style: st}}})
	}

	add("BANKING DETAILS", styleHeading, lineH)
	add("Beneficiary: "+q.Banking.Beneficiary, styleSmall, 4.5)
	add("Bank: "+q.Banking.Bank, styleSmall, 4.5)
	add("Account Number: "+q.Banking.AccountNumber, styleSmall, 4.5)
	if q.Banking.BranchCode != "" {
		add("Branch Code: "+q.Banking.BranchCode, styleSmall, 4.5)
	}
	add("Reference: "+q.Number, styleSmall, 4.5)

	add("", styleSmall, 3)
	add("TERMS", styleHeading, lineH)
	terms := []string{
		fmt.Sprintf("This quotation is valid for %d days from %s (until %s).",
			q.Terms.ValidityDays, q.CreatedAt.Format(dateFormat), q.ValidUntil.Format(dateFormat)),
		fmt.Sprintf("Payment is due within %d days of invoice.", q.Terms.PaymentDueDays),
		q.Terms.Disclaimer,
	}
	for _, t := range terms {
		for _, l := range layout.Wrap(m, t, styleSmall, width) {
			add(l, styleSmall, 4.5)
		}
	}
	add("", styleSmall, 3)
	add("Thank you for choosing "+q.Issuer.Name+".", styleBold, lineH)
	return b
}

func joinNonEmpty(sep string, parts ...string) string {
	out := parts[:0:0]
	for _, p := range parts {
		if strings.TrimSpace(p) != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, sep)
}
