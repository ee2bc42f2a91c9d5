package gateway

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"eventdash/internal/store"
)

func newTestGateway(t *testing.T, handler http.Handler) Gateway {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	log := zerolog.Nop()
	gw, err := New(Config{BaseURL: srv.URL, Token: "test-token", Timeout: 2 * time.Second}, &log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return gw
}

func TestListEvents(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/all_events" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("missing bearer token, got %q", got)
		}
		w.Write([]byte(`{"status":200,"data":[{"id":1,"uuid":"ev-1","title":"Summit"},{"id":2,"uuid":"ev-2","title":"Expo"}]}`))
	}))

	events, err := gw.ListEvents(context.Background())
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	if len(events) != 2 || events[0].UUID != "ev-1" || events[1].Title != "Expo" {
		t.Fatalf("unexpected events: %+v", events)
	}
}

func TestListEventsMissingUUIDFailsFast(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"data":[{"id":1,"title":"No UUID"}]}`))
	}))

	_, err := gw.ListEvents(context.Background())
	if !errors.Is(err, ErrBadPayload) {
		t.Fatalf("expected ErrBadPayload, got %v", err)
	}
}

func TestGetAttendeeUsesPost(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("attendee detail must POST, got %s", r.Method)
		}
		w.Write([]byte(`{"status":200,"data":{"id":7,"uuid":"at-7","first_name":"Asha"}}`))
	}))

	attendee, err := gw.GetAttendee(context.Background(), "at-7")
	if err != nil {
		t.Fatalf("GetAttendee: %v", err)
	}
	if attendee.FirstName != "Asha" {
		t.Fatalf("unexpected attendee %+v", attendee)
	}
}

func TestNotFoundAndUnauthorized(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.Contains(r.URL.Path, "gone") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusUnauthorized)
	}))

	if _, err := gw.GetEvent(context.Background(), "gone"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := gw.GetEvent(context.Background(), "locked"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestServerMessageSurfaces(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write([]byte(`{"status":422,"message":"The title field is required."}`))
	}))

	_, err := gw.UpdateEvent(context.Background(), "ev-1", url.Values{}, nil)
	if err == nil || !strings.Contains(err.Error(), "The title field is required.") {
		t.Fatalf("server message lost: %v", err)
	}
}

func TestUpdateEventMultipartWithImage(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !strings.HasPrefix(r.Header.Get("Content-Type"), "multipart/form-data") {
			t.Errorf("image update must be multipart, got %s", r.Header.Get("Content-Type"))
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Fatalf("parse multipart: %v", err)
		}
		if got := r.FormValue("title"); got != "Renamed" {
			t.Errorf("title field lost, got %q", got)
		}
		if _, _, err := r.FormFile("image"); err != nil {
			t.Errorf("image part missing: %v", err)
		}
		w.Write([]byte(`{"status":200,"message":"updated","data":{"id":1,"uuid":"ev-1","title":"Renamed"}}`))
	}))

	fields := url.Values{"title": {"Renamed"}}
	image := &Upload{Field: "image", FileName: "banner.jpg", Content: []byte{0xff, 0xd8}}
	event, err := gw.UpdateEvent(context.Background(), "ev-1", fields, image)
	if err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
	if event.Title != "Renamed" {
		t.Fatalf("unexpected event %+v", event)
	}
}

func TestUpdateEventFormEncodedWithoutImage(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Content-Type"); got != "application/x-www-form-urlencoded" {
			t.Errorf("expected urlencoded body, got %s", got)
		}
		w.Write([]byte(`{"status":200,"data":{"id":1,"uuid":"ev-1","title":"Renamed"}}`))
	}))

	if _, err := gw.UpdateEvent(context.Background(), "ev-1", url.Values{"title": {"Renamed"}}, nil); err != nil {
		t.Fatalf("UpdateEvent: %v", err)
	}
}

func TestGetAgenda(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/agendas/ag-1" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"status":200,"data":{"id":3,"uuid":"ag-1","title":"Opening Keynote","event_id":11,"position":1}}`))
	}))

	agenda, err := gw.GetAgenda(context.Background(), "ag-1")
	if err != nil {
		t.Fatalf("GetAgenda: %v", err)
	}
	if agenda.Title != "Opening Keynote" || agenda.EventID != 11 {
		t.Fatalf("unexpected agenda %+v", agenda)
	}
}

func TestUpdateAgendaMethodOverride(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("agenda update must POST, got %s", r.Method)
		}
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.FormValue("_method"); got != "PUT" {
			t.Errorf("method override missing, got %q", got)
		}
		if got := r.FormValue("title"); got != "Closing Panel" {
			t.Errorf("title field lost, got %q", got)
		}
		w.Write([]byte(`{"status":200,"data":{"id":3,"uuid":"ag-1","title":"Closing Panel","position":4}}`))
	}))

	agenda, err := gw.UpdateAgenda(context.Background(), "ag-1", url.Values{"title": {"Closing Panel"}}, nil)
	if err != nil {
		t.Fatalf("UpdateAgenda: %v", err)
	}
	if agenda.Title != "Closing Panel" || agenda.Position != 4 {
		t.Fatalf("unexpected agenda %+v", agenda)
	}
}

func TestTokenSourceFollowsStore(t *testing.T) {
	var got []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = append(got, r.Header.Get("Authorization"))
		w.Write([]byte(`{"status":200,"data":[]}`))
	}))
	t.Cleanup(srv.Close)

	st := store.New()
	st.SetToken("first")
	log := zerolog.Nop()
	gw, err := New(Config{BaseURL: srv.URL, TokenSource: st.Token, Timeout: 2 * time.Second}, &log)
	if err != nil {
		t.Fatalf("New: %v", err)
	}

	if _, err := gw.ListEvents(context.Background()); err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	st.SetToken("second")
	if _, err := gw.ListEvents(context.Background()); err != nil {
		t.Fatalf("ListEvents: %v", err)
	}

	if len(got) != 2 || got[0] != "Bearer first" || got[1] != "Bearer second" {
		t.Fatalf("token not re-injected: %v", got)
	}
}

func TestTotalCheckins(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"data":{"total_checkins":42}}`))
	}))

	total, err := gw.TotalCheckins(context.Background(), "ev-1")
	if err != nil {
		t.Fatalf("TotalCheckins: %v", err)
	}
	if total != 42 {
		t.Fatalf("expected 42, got %d", total)
	}
}

func TestWhatsAppReceiptsNilMessage(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status":200,"data":[` +
			`{"_id":"r1","firstName":"Asha","messageID":{"_id":"m1","messageStatus":"Read"}},` +
			`{"_id":"r2","firstName":"Ravi","messageID":null}]}`))
	}))

	receipts, err := gw.WhatsAppReceipts(context.Background(), "ev-1", "event_reminder_today", "9")
	if err != nil {
		t.Fatalf("WhatsAppReceipts: %v", err)
	}
	if len(receipts) != 2 || receipts[0].Message == nil || receipts[1].Message != nil {
		t.Fatalf("unexpected receipts: %+v", receipts)
	}
}

func TestIsTimeout(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
	}))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err := gw.ListEvents(ctx)
	if err == nil {
		t.Fatal("expected a timeout error")
	}
	if !IsTimeout(err) {
		t.Fatalf("IsTimeout must recognize %v", err)
	}
	if IsTimeout(errors.New("boom")) {
		t.Fatal("plain errors are not timeouts")
	}
}

func TestFetchUser(t *testing.T) {
	gw := newTestGateway(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"user":{"id":9,"uuid":"u-9","first_name":"Meera"}}`))
	}))

	user, err := gw.FetchUser(context.Background())
	if err != nil {
		t.Fatalf("FetchUser: %v", err)
	}
	if user.ID != 9 || user.FirstName != "Meera" {
		t.Fatalf("unexpected user %+v", user)
	}
}
