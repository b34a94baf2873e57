package storage

import (
	"fmt"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	s, err := Open(dsn, nil)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	return s
}

func TestGetMissingKey(t *testing.T) {
	s := openTestStore(t)
	if v, ok := s.Get("nope"); ok {
		t.Fatalf("expected missing key, got %q", v)
	}
}

func TestSetGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	s.Set("invoiceCounter", "3")
	v, ok := s.Get("invoiceCounter")
	if !ok || v != "3" {
		t.Fatalf("Get = (%q, %v), want (3, true)", v, ok)
	}
}

func TestSetOverwrites(t *testing.T) {
	s := openTestStore(t)
	s.Set("k", "first")
	s.Set("k", "second")
	v, ok := s.Get("k")
	if !ok || v != "second" {
		t.Fatalf("Get = (%q, %v), want (second, true)", v, ok)
	}
}
