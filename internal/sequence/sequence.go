// Package sequence manages the per-kind document number counters.
package sequence

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/kenimay/billdesk/internal/storage"
)

// Format describes one counter: its storage key and display format.
type Format struct {
	Key    string
	Prefix string
	Width  int
}

var (
	// Invoice numbers render as INV#001.
	Invoice = Format{Key: "invoiceCounter", Prefix: "INV#", Width: 3}
	// Quote numbers render as QUO#0001.
	Quote = Format{Key: "quoteCounter", Prefix: "QUO#", Width: 4}
)

// Counter is a persistent, monotonically increasing document number source.
// Every call reads through to the store; there is no in-memory copy that
// could drift from the persisted value.
type Counter struct {
	kv  storage.KV
	log *slog.Logger
}

func NewCounter(kv storage.KV, log *slog.Logger) *Counter {
	if log == nil {
		log = slog.Default()
	}
	return &Counter{kv: kv, log: log}
}

func (c *Counter) current(f Format) int {
	raw, ok := c.kv.Get(f.Key)
	if !ok {
		return 1
	}
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || n < 1 {
		c.log.Warn("unreadable counter, starting from 1", "key", f.Key, "value", raw)
		return 1
	}
	return n
}

// Peek returns the display number the next save will use, without mutating
// the counter.
func (c *Counter) Peek(f Format) string {
	return fmt.Sprintf("%s%0*d", f.Prefix, f.Width, c.current(f))
}

// Advance moves the counter past a saved document. Must be called exactly
// once per successful save, never on recomputation or load.
func (c *Counter) Advance(f Format) {
	c.kv.Set(f.Key, strconv.Itoa(c.current(f)+1))
}
