// Package document orchestrates one editable document: it seeds the form,
// recomputes totals on every edit, and snapshots to history on save.
package document

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/kenimay/billdesk/internal/engine"
	"github.com/kenimay/billdesk/internal/export"
	"github.com/kenimay/billdesk/internal/history"
	"github.com/kenimay/billdesk/internal/models"
	"github.com/kenimay/billdesk/internal/sequence"
)

// Column identifies one editable cell of a line item.
type Column int

const (
	ColumnQuantity Column = iota
	ColumnDescription
	ColumnUnitPrice
)

// Deps carries the collaborators a controller needs. Sequence and History
// may be nil for kinds that are never persisted.
type Deps struct {
	Sequence *sequence.Counter
	History  *history.Store
	Policy   engine.Policy
	Exporter Exporter
	Log      *slog.Logger
}

// Controller drives one document table on the surface. Each controller owns
// its own rows and summary cells; edits on one never recompute another.
type Controller struct {
	schema   Schema
	surface  Surface
	seq      *sequence.Counter
	store    *history.Store
	policy   engine.Policy
	exporter Exporter
	log      *slog.Logger
	items    []models.LineItem
}

func New(schema Schema, surface Surface, deps Deps) *Controller {
	log := deps.Log
	if log == nil {
		log = slog.Default()
	}
	return &Controller{
		schema:   schema,
		surface:  surface,
		seq:      deps.Sequence,
		store:    deps.History,
		policy:   deps.Policy,
		exporter: deps.Exporter,
		log:      log.With("kind", string(schema.Kind)),
	}
}

// active reports whether this controller's document is present on the
// surface. A numbered kind without its number field is inactive and every
// operation on it is a no-op.
func (c *Controller) active() bool {
	if c.schema.Number == nil {
		return true
	}
	_, ok := c.surface.Field(RoleNumber)
	return ok
}

func todayISO() string {
	return time.Now().Format("2006-01-02")
}

// Initialize seeds a fresh document: next number, today's date unless the
// date field is already filled, one blank row, an initial recomputation and
// the current history.
func (c *Controller) Initialize() {
	if !c.active() {
		return
	}
	if c.schema.Number != nil {
		c.surface.SetField(RoleNumber, c.seq.Peek(*c.schema.Number))
	}
	if v, ok := c.surface.Field(RoleDate); ok && v == "" {
		c.surface.SetField(RoleDate, todayISO())
	}
	if len(c.items) == 0 {
		c.items = append(c.items, models.NewLineItem())
	}
	c.recompute()
	c.RenderHistory()
}

// Items returns a copy of the current table rows.
func (c *Controller) Items() []models.LineItem {
	out := make([]models.LineItem, len(c.items))
	copy(out, c.items)
	return out
}

// AddRow appends one blank row to the table. There is no row limit and no
// row delete.
func (c *Controller) AddRow() {
	if !c.active() {
		return
	}
	c.items = append(c.items, models.NewLineItem())
	c.recompute()
}

// EditCell replaces the text of one cell, then recomputes the row total and
// the document summary. Out-of-range rows are ignored.
func (c *Controller) EditCell(row int, col Column, text string) {
	if !c.active() || row < 0 || row >= len(c.items) {
		return
	}
	it := &c.items[row]
	switch col {
	case ColumnQuantity:
		it.Quantity = text
	case ColumnDescription:
		it.Description = text
	case ColumnUnitPrice:
		it.UnitPrice = text
	default:
		return
	}
	engine.RecomputeRow(it)
	c.recompute()
}

// EditField updates a surface field (metadata, date, bonus, deduction) and
// retriggers summary recomputation.
func (c *Controller) EditField(role, text string) {
	if !c.active() {
		return
	}
	c.surface.SetField(role, text)
	c.recompute()
}

func (c *Controller) fieldValues(roles []string) []string {
	var out []string
	for _, role := range roles {
		if v, ok := c.surface.Field(role); ok {
			out = append(out, v)
		}
	}
	return out
}

// fieldOr reads a surface field, falling back to def when the field is
// absent or blank.
func (c *Controller) fieldOr(role, def string) string {
	if v, ok := c.surface.Field(role); ok && v != "" {
		return v
	}
	return def
}

// recompute pushes the current summary to the surface's display cells.
func (c *Controller) recompute() {
	sum := c.policy.RecomputeSummary(c.items,
		c.fieldValues(c.schema.Additive),
		c.fieldValues(c.schema.Subtractive))
	d := c.schema.Display
	if d.Subtotal != "" {
		c.surface.SetField(d.Subtotal, sum.Subtotal)
	}
	if d.Tax != "" {
		c.surface.SetField(d.Tax, sum.Tax)
	}
	if d.Gross != "" {
		c.surface.SetField(d.Gross, sum.Gross)
	}
	if d.Deductions != "" {
		c.surface.SetField(d.Deductions, sum.Deductions)
	}
	if d.Total != "" {
		c.surface.SetField(d.Total, sum.Total)
	}
	if d.BonusEcho != "" && len(c.schema.Additive) > 0 {
		v, _ := c.surface.Field(c.schema.Additive[0])
		c.surface.SetField(d.BonusEcho, engine.Display(engine.ParseAmount(v)))
	}
}

// Save snapshots the current form into history, advances the number
// counter and resets the form to a fresh document. Live-only kinds and
// pages without a number field are left untouched.
func (c *Controller) Save() {
	if !c.schema.Persisted || !c.active() {
		return
	}
	number, _ := c.surface.Field(RoleNumber)
	doc := models.Document{
		Version:  models.SchemaVersion,
		ID:       uuid.NewString(),
		Number:   number,
		Date:     c.fieldOr(RoleDate, todayISO()),
		Metadata: map[string]string{},
		Items:    c.Items(),
		Subtotal: c.fieldOr(c.schema.Display.Subtotal, "0.00"),
		VAT:      c.fieldOr(c.schema.Display.Tax, "0.00"),
		Total:    c.fieldOr(c.schema.Display.Total, "0.00"),
	}
	for _, m := range c.schema.Metadata {
		v, _ := c.surface.Field(m.Role)
		doc.Metadata[m.Role] = v
	}

	c.store.Append(c.schema.Kind, doc)
	c.seq.Advance(*c.schema.Number)
	c.log.Info("document saved", "number", doc.Number, "total", doc.Total)

	c.surface.SetField(RoleNumber, c.seq.Peek(*c.schema.Number))
	for _, m := range c.schema.Metadata {
		c.surface.SetField(m.Role, "")
	}
	c.items = []models.LineItem{models.NewLineItem()}
	c.recompute()
	c.RenderHistory()
	c.surface.Notify(fmt.Sprintf("%s %s saved", c.schema.Title, doc.Number))
}

// RenderHistory rebuilds the rendered history from storage.
func (c *Controller) RenderHistory() {
	if !c.schema.Persisted {
		return
	}
	list := c.store.All(c.schema.Kind)
	cards := make([]Card, 0, len(list))
	for _, doc := range list {
		card := Card{
			ID:     doc.ID,
			Number: doc.Number,
			Lines:  []string{"Date: " + doc.Date},
			Total:  "R" + doc.Total,
		}
		for _, m := range c.schema.Metadata {
			if m.OnCard {
				card.Lines = append(card.Lines, m.Label+": "+doc.Metadata[m.Role])
			}
		}
		cards = append(cards, card)
	}
	c.surface.ShowHistory(c.schema.EmptyHistory, cards)
}

// ViewDetails shows the full stored field set of one saved document.
func (c *Controller) ViewDetails(id string) {
	doc, ok := c.store.Find(c.schema.Kind, id)
	if !ok {
		return
	}
	lines := []string{doc.Number, "Date: " + doc.Date}
	for _, m := range c.schema.Metadata {
		lines = append(lines, m.Label+": "+doc.Metadata[m.Role])
	}
	lines = append(lines,
		"Subtotal: R"+doc.Subtotal,
		"VAT: R"+doc.VAT,
		"Total: R"+doc.Total)
	c.surface.ShowDetails(strings.Join(lines, "\n"))
}

// Export renders one saved document to a file from its frozen values,
// never from the live form.
func (c *Controller) Export(id string) {
	doc, ok := c.store.Find(c.schema.Kind, id)
	if !ok {
		return
	}
	summary := []export.SummaryField{
		{Label: "Number", Value: doc.Number},
		{Label: "Date", Value: doc.Date},
	}
	for _, m := range c.schema.Metadata {
		summary = append(summary, export.SummaryField{Label: m.Label, Value: doc.Metadata[m.Role]})
	}
	summary = append(summary,
		export.SummaryField{Label: "Subtotal", Value: "R" + doc.Subtotal},
		export.SummaryField{Label: "VAT", Value: "R" + doc.VAT},
		export.SummaryField{Label: "Total", Value: "R" + doc.Total})

	path, err := c.exporter.Export(c.schema.Title, doc.Items, summary)
	if err != nil {
		c.log.Error("export failed", "number", doc.Number, "error", err)
		return
	}
	c.surface.Notify(fmt.Sprintf("Exported %s to %s", doc.Number, path))
}
