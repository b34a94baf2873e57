// Package engine holds the pure total-recalculation logic shared by every
// document kind: row totals from quantity and unit price text, and document
// summaries from row totals plus any additive or subtractive fields.
package engine

import (
	"strings"

	"github.com/kenimay/billdesk/internal/models"
	"github.com/shopspring/decimal"
)

// Policy holds the computation knobs that are policy rather than math.
// TaxRate is a fraction (0.15 means 15%) applied to the subtotal.
type Policy struct {
	TaxRate decimal.Decimal
}

// DefaultPolicy returns the current policy: no tax.
func DefaultPolicy() Policy {
	return Policy{TaxRate: decimal.Zero}
}

// ParseAmount parses free-text numeric input. It takes the longest leading
// decimal prefix ("12abc" reads as 12) and treats empty or non-numeric text
// as zero. Negative input is not clamped; it contributes as a literal
// negative amount.
func ParseAmount(text string) decimal.Decimal {
	s := strings.TrimSpace(text)
	end := 0
	seenDigit := false
	seenDot := false
scan:
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c >= '0' && c <= '9':
			seenDigit = true
		case (c == '+' || c == '-') && i == 0:
		case c == '.' && !seenDot:
			seenDot = true
		default:
			break scan
		}
		end = i + 1
	}
	if !seenDigit {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(strings.TrimSuffix(s[:end], "."))
	if err != nil {
		return decimal.Zero
	}
	return d
}

// Display formats an amount for 2-decimal currency display, rounding
// half-up.
func Display(d decimal.Decimal) string {
	return d.Round(2).StringFixed(2)
}

// RecomputeRow derives the row total from its quantity and unit price text.
func RecomputeRow(item *models.LineItem) {
	q := ParseAmount(item.Quantity)
	p := ParseAmount(item.UnitPrice)
	item.LineTotal = Display(q.Mul(p))
}

// Summary holds the derived document totals as display strings.
type Summary struct {
	Subtotal   string
	Tax        string
	Gross      string
	Deductions string
	Total      string
}

// RecomputeSummary derives the document summary from the current rows.
// Additive field values (bonus) are added into the gross, subtractive field
// values (deductions) are subtracted from the final total. Pure: the same
// inputs always produce the same summary, regardless of row order.
func (p Policy) RecomputeSummary(items []models.LineItem, additive, subtractive []string) Summary {
	subtotal := decimal.Zero
	for _, it := range items {
		subtotal = subtotal.Add(ParseAmount(it.LineTotal))
	}
	added := decimal.Zero
	for _, v := range additive {
		added = added.Add(ParseAmount(v))
	}
	deducted := decimal.Zero
	for _, v := range subtractive {
		deducted = deducted.Add(ParseAmount(v))
	}
	tax := subtotal.Mul(p.TaxRate)
	gross := subtotal.Add(added)
	total := gross.Add(tax).Sub(deducted)
	return Summary{
		Subtotal:   Display(subtotal),
		Tax:        Display(tax),
		Gross:      Display(gross),
		Deductions: Display(deducted),
		Total:      Display(total),
	}
}
