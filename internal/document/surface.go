package document

import (
	"github.com/kenimay/billdesk/internal/export"
	"github.com/kenimay/billdesk/internal/models"
)

// Card is one rendered history entry. Actions on a card (details, export)
// are dispatched back to the controller with the card's ID.
type Card struct {
	ID     string
	Number string
	Lines  []string
	Total  string
}

// Surface is the rendering collaborator. The controller reads and writes
// fields by logical role; how they are laid out is the surface's concern.
// A role that is absent from the surface reads as not present, which the
// controller treats as "this page does not host that field".
type Surface interface {
	// Field returns the field carrying the role.
	Field(role string) (string, bool)
	// SetField updates the field carrying the role, if present.
	SetField(role, value string)
	// Notify shows a non-blocking acknowledgment to the user.
	Notify(message string)
	// ShowHistory replaces the rendered history with the given cards, or
	// with the empty-state text when there are none.
	ShowHistory(empty string, cards []Card)
	// ShowDetails displays a read-only full-field view of one document.
	ShowDetails(text string)
}

// Exporter produces a downloadable artifact from a document's frozen
// values. Satisfied by export.PDF.
type Exporter interface {
	Export(title string, items []models.LineItem, summary []export.SummaryField) (string, error)
}
