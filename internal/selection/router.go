package selection

import "eventdash/internal/store"

// Kind names a selectable entity type.
type Kind string

const (
	KindEvent  Kind = "event"
	KindAgenda Kind = "agenda"
)

// Router is the one sanctioned way a view hands "which entity" to a view
// reached without a path parameter. Legacy routes read the stored pointer;
// newer routes carry the identifier in the path, and the path value wins
// because the stored one may be stale from a prior visit.
type Router struct {
	store *store.Store
}

func NewRouter(st *store.Store) *Router {
	return &Router{store: st}
}

func key(kind Kind) (store.SelectionKey, bool) {
	switch kind {
	case KindEvent:
		return store.SelCurrentEventUUID, true
	case KindAgenda:
		return store.SelCurrentAgendaUUID, true
	}
	return "", false
}

// Select stores the identifier under the kind's well-known key.
func (r *Router) Select(kind Kind, identifier string) {
	if k, ok := key(kind); ok {
		r.store.SetSelection(k, identifier)
	}
}

// Resolve returns the identifier a view should show: the path parameter when
// present, else the stored pointer, else "". A present path parameter also
// refreshes the stored pointer so legacy views that follow agree with it.
func (r *Router) Resolve(kind Kind, pathParam string) string {
	k, ok := key(kind)
	if !ok {
		return pathParam
	}
	if pathParam != "" {
		r.store.SetSelection(k, pathParam)
		return pathParam
	}
	return r.store.Selection(k)
}

// Clear drops the stored pointer for kind.
func (r *Router) Clear(kind Kind) {
	if k, ok := key(kind); ok {
		r.store.ClearSelection(k)
	}
}
