package store

import (
	"sync"

	"eventdash/internal/model"
)

// Kind names a cached collection.
type Kind string

const (
	KindEvents          Kind = "events"
	KindAttendees       Kind = "attendees"
	KindAgendas         Kind = "agendas"
	KindPendingRequests Kind = "pending_requests"
	KindJobTitles       Kind = "job_titles"
	KindCompanies       Kind = "companies"
	KindIndustries      Kind = "industries"
)

// SelectionKey names a cross-view selection pointer.
type SelectionKey string

const (
	SelCurrentEventUUID  SelectionKey = "currentEventUUID"
	SelCurrentAgendaUUID SelectionKey = "currentAgendaUUID"
)

// Store is the session-scoped entity cache: fetched collections plus the
// selection pointers views use to hand off "current entity" to each other.
//
// Collection replacement is authoritative (a refetch overwrites, never merges)
// and never touches selection pointers: their lifecycles are decoupled. A read
// before any fetch returns an empty slice, never an error; loading state is
// tracked separately and must not be inferred from emptiness.
//
// A selection pointer may reference an entity not present in any cached
// collection (set before the owning list finished loading). Callers treat
// that as a valid transient state.
type Store struct {
	mu sync.RWMutex

	events    []model.Event
	attendees []model.Attendee
	agendas   []model.Agenda
	pending   []model.Attendee
	refLists  map[Kind][]model.ReferenceItem

	loading    map[Kind]bool
	selections map[SelectionKey]string

	currentEvent *model.Event
	user         *model.User
	token        string
}

func New() *Store {
	return &Store{
		refLists:   make(map[Kind][]model.ReferenceItem),
		loading:    make(map[Kind]bool),
		selections: make(map[SelectionKey]string),
	}
}

func (s *Store) Events() []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Event(nil), s.events...)
}

// SetEvents replaces the cached event collection. Last write wins.
func (s *Store) SetEvents(events []model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append([]model.Event(nil), events...)
}

func (s *Store) Attendees() []model.Attendee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Attendee(nil), s.attendees...)
}

func (s *Store) SetAttendees(attendees []model.Attendee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.attendees = append([]model.Attendee(nil), attendees...)
}

func (s *Store) Agendas() []model.Agenda {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Agenda(nil), s.agendas...)
}

func (s *Store) SetAgendas(agendas []model.Agenda) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.agendas = append([]model.Agenda(nil), agendas...)
}

func (s *Store) PendingRequests() []model.Attendee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.Attendee(nil), s.pending...)
}

func (s *Store) SetPendingRequests(pending []model.Attendee) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = append([]model.Attendee(nil), pending...)
}

// ReferenceList returns a cached reference list (job titles, companies,
// industries). Unknown kinds yield an empty list.
func (s *Store) ReferenceList(kind Kind) []model.ReferenceItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]model.ReferenceItem(nil), s.refLists[kind]...)
}

func (s *Store) SetReferenceList(kind Kind, items []model.ReferenceItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.refLists[kind] = append([]model.ReferenceItem(nil), items...)
}

// Selection returns the stored pointer for key, or "" when none was set.
func (s *Store) Selection(key SelectionKey) string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.selections[key]
}

func (s *Store) SetSelection(key SelectionKey, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selections[key] = value
}

func (s *Store) ClearSelection(key SelectionKey) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.selections, key)
}

// CurrentEvent is the denormalized snapshot of the selected event. Nil when
// the detail fetch has not landed yet.
func (s *Store) CurrentEvent() *model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.currentEvent == nil {
		return nil
	}
	e := *s.currentEvent
	return &e
}

func (s *Store) SetCurrentEvent(e *model.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e == nil {
		s.currentEvent = nil
		return
	}
	copied := *e
	s.currentEvent = &copied
}

// EventByUUID resolves an event from the cached collection. The second return
// is false when the collection has no such event, including the not-loaded-yet
// case; callers render empty rather than treating it as an error.
func (s *Store) EventByUUID(uuid string) (model.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, e := range s.events {
		if e.UUID == uuid {
			return e, true
		}
	}
	return model.Event{}, false
}

func (s *Store) AgendaByUUID(uuid string) (model.Agenda, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, a := range s.agendas {
		if a.UUID == uuid {
			return a, true
		}
	}
	return model.Agenda{}, false
}

func (s *Store) Loading(kind Kind) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading[kind]
}

func (s *Store) SetLoading(kind Kind, v bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.loading[kind] = v
}

func (s *Store) User() *model.User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Store) SetUser(u *model.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if u == nil {
		s.user = nil
		return
	}
	copied := *u
	s.user = &copied
}

func (s *Store) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

func (s *Store) SetToken(token string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.token = token
}
