package document

import (
	"github.com/kenimay/billdesk/internal/models"
	"github.com/kenimay/billdesk/internal/sequence"
)

// Field roles shared by every kind.
const (
	RoleNumber = "number"
	RoleDate   = "date"
)

// Meta is one metadata field: its surface role, its display label, and
// whether the history card shows it (details and export always do).
type Meta struct {
	Role   string
	Label  string
	OnCard bool
}

// Display names the surface roles that receive computed summary values.
// An empty role means the kind has no such cell.
type Display struct {
	Subtotal   string
	Tax        string
	Gross      string
	Deductions string
	Total      string
	BonusEcho  string
}

// Schema parameterizes the generic controller for one document kind: the
// same edit/recompute/save machinery drives invoices, quotes and payslips
// with different field sets.
type Schema struct {
	Kind         models.Kind
	Title        string
	Number       *sequence.Format // nil when the kind carries no number
	Metadata     []Meta
	Additive     []string // field roles added into the gross
	Subtractive  []string // field roles subtracted from the total
	Display      Display
	Persisted    bool
	EmptyHistory string
}

// InvoiceSchema describes the invoice page: PO and reference metadata,
// flat-rate tax, persisted history.
func InvoiceSchema() Schema {
	return Schema{
		Kind:   models.KindInvoice,
		Title:  "Invoice",
		Number: &sequence.Invoice,
		Metadata: []Meta{
			{Role: "po", Label: "PO", OnCard: true},
			{Role: "ref", Label: "Ref", OnCard: true},
		},
		Display: Display{
			Subtotal: "subtotal",
			Tax:      "vat",
			Total:    "total",
		},
		Persisted:    true,
		EmptyHistory: "No saved invoices yet.",
	}
}

// QuoteSchema describes the quotation page. The reference number is stored
// and exported but kept off the history card.
func QuoteSchema() Schema {
	return Schema{
		Kind:   models.KindQuote,
		Title:  "Quote",
		Number: &sequence.Quote,
		Metadata: []Meta{
			{Role: "customer", Label: "Customer", OnCard: true},
			{Role: "contact", Label: "Contact", OnCard: true},
			{Role: "ref", Label: "Ref"},
		},
		Display: Display{
			Subtotal: "subtotal",
			Tax:      "vat",
			Total:    "total",
		},
		Persisted:    true,
		EmptyHistory: "No saved quotations yet.",
	}
}

// PayslipSchema describes the live-only payslip: rows are hours times rate,
// a bonus adds into the gross and every deduction field subtracts from the
// net. Payslips are never numbered or persisted.
func PayslipSchema() Schema {
	return Schema{
		Kind:        models.KindPayslip,
		Title:       "Payslip",
		Additive:    []string{"bonus"},
		Subtractive: []string{"deduction1", "deduction2"},
		Display: Display{
			Gross:      "gross",
			Deductions: "deductions-total",
			Total:      "net-pay",
			BonusEcho:  "bonus-amount",
		},
	}
}
