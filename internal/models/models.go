package models

// Kind identifies one document family.
type Kind string

const (
	KindInvoice Kind = "invoice"
	KindQuote   Kind = "quote"
	KindPayslip Kind = "payslip"
)

// SchemaVersion tags persisted documents so later field additions can be
// told apart from older entries.
const SchemaVersion = 1

// LineItem is one editable row of a document's item table. Quantity and
// UnitPrice keep the raw text as typed; LineTotal is derived from them and
// is never edited directly.
type LineItem struct {
	Quantity    string `json:"quantity"`
	Description string `json:"description"`
	UnitPrice   string `json:"unit_price"`
	LineTotal   string `json:"line_total"`
}

// NewLineItem returns the blank row seeded into a fresh table.
func NewLineItem() LineItem {
	return LineItem{
		Quantity:    "1",
		Description: "Description",
		UnitPrice:   "0",
		LineTotal:   "0.00",
	}
}

// Document is one saved snapshot of an invoice or quote. Once appended to
// history it is immutable: there is no edit or delete operation.
type Document struct {
	Version  int               `json:"version"`
	ID       string            `json:"id"`
	Number   string            `json:"number"`
	Date     string            `json:"date"`
	Metadata map[string]string `json:"metadata,omitempty"`
	Items    []LineItem        `json:"items,omitempty"`
	Subtotal string            `json:"subtotal"`
	VAT      string            `json:"vat"`
	Total    string            `json:"total"`
}
