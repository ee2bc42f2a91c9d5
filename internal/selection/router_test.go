package selection

import (
	"testing"

	"eventdash/internal/store"
)

func TestSelectThenResolveAcrossViews(t *testing.T) {
	st := store.New()
	r := NewRouter(st)

	r.Select(KindEvent, "uuid-123")

	// A different view with no path parameter reads the pointer back, even
	// though the owning collection never loaded.
	if got := NewRouter(st).Resolve(KindEvent, ""); got != "uuid-123" {
		t.Fatalf("expected uuid-123, got %q", got)
	}
}

func TestPathParameterWins(t *testing.T) {
	st := store.New()
	r := NewRouter(st)

	r.Select(KindEvent, "stale-uuid")
	if got := r.Resolve(KindEvent, "fresh-uuid"); got != "fresh-uuid" {
		t.Fatalf("path parameter must take precedence, got %q", got)
	}
	// And the stored pointer now agrees with the path.
	if got := st.Selection(store.SelCurrentEventUUID); got != "fresh-uuid" {
		t.Fatalf("stored pointer not refreshed, got %q", got)
	}
}

func TestResolveUnset(t *testing.T) {
	r := NewRouter(store.New())
	if got := r.Resolve(KindAgenda, ""); got != "" {
		t.Fatalf("expected empty resolution, got %q", got)
	}
}

func TestKindsAreIndependent(t *testing.T) {
	st := store.New()
	r := NewRouter(st)
	r.Select(KindEvent, "event-1")
	r.Select(KindAgenda, "agenda-1")
	r.Clear(KindAgenda)
	if got := r.Resolve(KindEvent, ""); got != "event-1" {
		t.Fatalf("clearing agenda must not touch event, got %q", got)
	}
	if got := r.Resolve(KindAgenda, ""); got != "" {
		t.Fatalf("agenda pointer should be cleared, got %q", got)
	}
}
