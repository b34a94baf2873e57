// Package history persists the ordered list of saved documents per kind.
package history

import (
	"encoding/json"
	"log/slog"

	"github.com/kenimay/billdesk/internal/models"
	"github.com/kenimay/billdesk/internal/storage"
)

// storageKey maps a document kind to its history list key. Payslips are
// live-only and have no history.
func storageKey(kind models.Kind) (string, bool) {
	switch kind {
	case models.KindInvoice:
		return "invoices", true
	case models.KindQuote:
		return "quotes", true
	}
	return "", false
}

// Store is the append-only document history backed by the key-value store.
type Store struct {
	kv  storage.KV
	log *slog.Logger
}

func NewStore(kv storage.KV, log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{kv: kv, log: log}
}

// All returns the saved documents of one kind in save order. Missing or
// corrupt stored data reads as an empty list, never an error.
func (s *Store) All(kind models.Kind) []models.Document {
	key, ok := storageKey(kind)
	if !ok {
		return nil
	}
	raw, ok := s.kv.Get(key)
	if !ok {
		return nil
	}
	var list []models.Document
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		s.log.Warn("corrupt history, treating as empty", "key", key, "error", err)
		return nil
	}
	return list
}

// Append adds one document to the end of the kind's history. The whole list
// is read and written back; a concurrent writer in another process can lose
// the race, which is an accepted limitation of the store.
func (s *Store) Append(kind models.Kind, doc models.Document) {
	key, ok := storageKey(kind)
	if !ok {
		return
	}
	list := append(s.All(kind), doc)
	raw, err := json.Marshal(list)
	if err != nil {
		s.log.Error("history marshal failed", "key", key, "error", err)
		return
	}
	s.kv.Set(key, string(raw))
}

// Find returns the stored document with the given id.
func (s *Store) Find(kind models.Kind, id string) (models.Document, bool) {
	for _, doc := range s.All(kind) {
		if doc.ID == id {
			return doc, true
		}
	}
	return models.Document{}, false
}
