package main

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kenimay/billdesk/internal/config"
	"github.com/kenimay/billdesk/internal/document"
	"github.com/kenimay/billdesk/internal/export"
	"github.com/kenimay/billdesk/internal/history"
	"github.com/kenimay/billdesk/internal/models"
	"github.com/kenimay/billdesk/internal/sequence"
	"github.com/kenimay/billdesk/internal/storage"
)

type surfaceField struct {
	role  string
	value string
}

// consoleSurface implements document.Surface over an in-memory form and a
// writer. It only carries the roles its page declares; everything else
// reads as absent.
type consoleSurface struct {
	out    io.Writer
	fields []surfaceField
}

func newSurface(out io.Writer, roles ...string) *consoleSurface {
	s := &consoleSurface{out: out}
	for _, r := range roles {
		s.fields = append(s.fields, surfaceField{role: r})
	}
	return s
}

func (s *consoleSurface) Field(role string) (string, bool) {
	for i := range s.fields {
		if s.fields[i].role == role {
			return s.fields[i].value, true
		}
	}
	return "", false
}

func (s *consoleSurface) SetField(role, value string) {
	for i := range s.fields {
		if s.fields[i].role == role {
			s.fields[i].value = value
			return
		}
	}
}

func (s *consoleSurface) Notify(message string) {
	fmt.Fprintln(s.out, message)
}

func (s *consoleSurface) ShowHistory(empty string, cards []document.Card) {
	fmt.Fprintln(s.out, "--- History ---")
	if len(cards) == 0 {
		fmt.Fprintln(s.out, empty)
		return
	}
	for i, c := range cards {
		fmt.Fprintf(s.out, "[%d] %s\n", i+1, c.Number)
		for _, line := range c.Lines {
			fmt.Fprintln(s.out, "    "+line)
		}
		fmt.Fprintln(s.out, "    Total: "+c.Total)
	}
}

func (s *consoleSurface) ShowDetails(text string) {
	fmt.Fprintln(s.out, text)
}

// surfaceRoles declares which fields a kind's page carries, derived from
// its schema.
func surfaceRoles(sc document.Schema) []string {
	var roles []string
	if sc.Number != nil {
		roles = append(roles, document.RoleNumber, document.RoleDate)
	}
	for _, m := range sc.Metadata {
		roles = append(roles, m.Role)
	}
	roles = append(roles, sc.Additive...)
	roles = append(roles, sc.Subtractive...)
	d := sc.Display
	for _, r := range []string{d.Subtotal, d.Tax, d.Gross, d.Deductions, d.Total, d.BonusEcho} {
		if r != "" {
			roles = append(roles, r)
		}
	}
	return roles
}

type desk struct {
	schema  document.Schema
	surface *consoleSurface
	ctrl    *document.Controller
	hist    *history.Store
	in      io.Reader
	out     io.Writer
}

func runDesk(cfg config.Config, logger *slog.Logger, schema document.Schema) error {
	store, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	surface := newSurface(os.Stdout, surfaceRoles(schema)...)
	hist := history.NewStore(store, logger)
	ctrl := document.New(schema, surface, document.Deps{
		Sequence: sequence.NewCounter(store, logger),
		History:  hist,
		Policy:   cfg.Policy(),
		Exporter: &export.PDF{Dir: cfg.ExportDir},
		Log:      logger,
	})
	d := &desk{schema: schema, surface: surface, ctrl: ctrl, hist: hist, in: os.Stdin, out: os.Stdout}
	return d.run()
}

func runHistory(cfg config.Config, logger *slog.Logger, kind string) error {
	var schema document.Schema
	switch kind {
	case "invoice", "invoices":
		schema = document.InvoiceSchema()
	case "quote", "quotes":
		schema = document.QuoteSchema()
	default:
		return fmt.Errorf("unknown kind %q (want invoice or quote)", kind)
	}
	store, err := storage.Open(cfg.DBPath, logger)
	if err != nil {
		return fmt.Errorf("open store: %w", err)
	}
	surface := newSurface(os.Stdout, surfaceRoles(schema)...)
	ctrl := document.New(schema, surface, document.Deps{
		History: history.NewStore(store, logger),
		Log:     logger,
	})
	ctrl.RenderHistory()
	return nil
}

func (d *desk) run() error {
	d.ctrl.Initialize()
	d.printForm()
	fmt.Fprintf(d.out, "%s desk ready. Type 'help' for commands.\n", d.schema.Title)
	sc := bufio.NewScanner(d.in)
	for {
		fmt.Fprint(d.out, "> ")
		if !sc.Scan() {
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.SplitN(line, " ", 3)
		switch parts[0] {
		case "quit", "exit":
			return nil
		case "help":
			d.printHelp()
		case "show":
			d.printForm()
		case "add":
			d.ctrl.AddRow()
			d.printForm()
		case "qty", "hours":
			d.editCell(parts, document.ColumnQuantity)
		case "desc":
			d.editCell(parts, document.ColumnDescription)
		case "price", "rate":
			d.editCell(parts, document.ColumnUnitPrice)
		case "set":
			if len(parts) < 3 {
				fmt.Fprintln(d.out, "usage: set <field> <value>")
				continue
			}
			d.ctrl.EditField(parts[1], parts[2])
			d.printForm()
		case "save":
			d.ctrl.Save()
		case "history":
			d.ctrl.RenderHistory()
		case "view":
			d.byIndex(parts, d.ctrl.ViewDetails)
		case "export":
			d.byIndex(parts, d.ctrl.Export)
		default:
			fmt.Fprintln(d.out, "unknown command; try 'help'")
		}
	}
}

func (d *desk) editCell(parts []string, col document.Column) {
	if len(parts) < 3 {
		fmt.Fprintf(d.out, "usage: %s <row> <value>\n", parts[0])
		return
	}
	row, err := strconv.Atoi(parts[1])
	if err != nil || row < 1 {
		fmt.Fprintln(d.out, "row must be a positive number")
		return
	}
	d.ctrl.EditCell(row-1, col, parts[2])
	d.printForm()
}

// byIndex resolves a 1-based history index to a document id, falling back
// to treating the argument as a raw id.
func (d *desk) byIndex(parts []string, fn func(string)) {
	if len(parts) < 2 {
		fmt.Fprintf(d.out, "usage: %s <history entry>\n", parts[0])
		return
	}
	list := d.hist.All(d.schema.Kind)
	if n, err := strconv.Atoi(parts[1]); err == nil && n >= 1 && n <= len(list) {
		fn(list[n-1].ID)
		return
	}
	fn(parts[1])
}

func (d *desk) printForm() {
	if num, ok := d.surface.Field(document.RoleNumber); ok {
		fmt.Fprintf(d.out, "\n%s %s\n", d.schema.Title, num)
	} else {
		fmt.Fprintf(d.out, "\n%s\n", d.schema.Title)
	}
	if date, ok := d.surface.Field(document.RoleDate); ok {
		fmt.Fprintln(d.out, "Date: "+date)
	}
	for _, m := range d.schema.Metadata {
		v, _ := d.surface.Field(m.Role)
		fmt.Fprintf(d.out, "%s: %s\n", m.Label, v)
	}

	w := tabwriter.NewWriter(d.out, 2, 4, 2, ' ', 0)
	if d.schema.Kind == models.KindPayslip {
		fmt.Fprintln(w, "#\tHours\tDescription\tRate\tAmount")
	} else {
		fmt.Fprintln(w, "#\tQty\tDescription\tUnit Price\tTotal")
	}
	for i, it := range d.ctrl.Items() {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", i+1, it.Quantity, it.Description, it.UnitPrice, it.LineTotal)
	}
	w.Flush()

	for _, role := range d.schema.Additive {
		v, _ := d.surface.Field(role)
		fmt.Fprintf(d.out, "%s: %s\n", fieldLabel(role), v)
	}
	for _, role := range d.schema.Subtractive {
		v, _ := d.surface.Field(role)
		fmt.Fprintf(d.out, "%s: %s\n", fieldLabel(role), v)
	}
	disp := d.schema.Display
	for _, line := range []struct{ role, label string }{
		{disp.Subtotal, "Subtotal"},
		{disp.Tax, "VAT"},
		{disp.Gross, "Gross"},
		{disp.Deductions, "Deductions"},
		{disp.Total, totalLabel(d.schema)},
	} {
		if line.role == "" {
			continue
		}
		v, _ := d.surface.Field(line.role)
		fmt.Fprintf(d.out, "%s: R%s\n", line.label, v)
	}
}

func fieldLabel(role string) string {
	if role == "" {
		return role
	}
	return strings.ToUpper(role[:1]) + role[1:]
}

func totalLabel(sc document.Schema) string {
	if sc.Kind == models.KindPayslip {
		return "Net Pay"
	}
	return "Total"
}

func (d *desk) printHelp() {
	fmt.Fprintln(d.out, `commands:
  add                 add a blank row
  qty <row> <text>    edit a row's quantity (alias: hours)
  desc <row> <text>   edit a row's description
  price <row> <text>  edit a row's unit price (alias: rate)
  set <field> <text>  edit a form field (date, po, ref, customer, ...)
  show                print the current form
  save                snapshot to history and start the next document
  history             list saved documents
  view <n>            show full details of a saved document
  export <n>          export a saved document to PDF
  quit                leave the desk`)
}
