package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"eventdash/internal/model"
)

var (
	ErrNotFound     = errors.New("entity not found upstream")
	ErrUnauthorized = errors.New("upstream rejected the bearer token")
	ErrBadPayload   = errors.New("malformed upstream payload")
)

// Upload is a binary form field. Its presence switches a mutation to a
// multipart body.
type Upload struct {
	Field    string
	FileName string
	Content  []byte
}

// Config locates the upstream event-platform API. TokenSource, when set,
// supplies the bearer token per request so a token refreshed in the session
// store reaches the wire without rebuilding the client; Token is the static
// fallback.
type Config struct {
	BaseURL     string
	Token       string
	TokenSource func() string
	Timeout     time.Duration
}

// Gateway is the dashboard's only route to the upstream API. Every response
// is decoded into a typed shape and checked at this boundary, so malformed
// records fail here instead of deep inside a view.
type Gateway interface {
	ListEvents(ctx context.Context) ([]model.Event, error)
	GetEvent(ctx context.Context, uuid string) (*model.Event, error)
	UpdateEvent(ctx context.Context, uuid string, fields url.Values, image *Upload) (*model.Event, error)
	DeleteEvent(ctx context.Context, uuid string) error

	ListAttendees(ctx context.Context, eventUUID string) ([]model.Attendee, error)
	GetAttendee(ctx context.Context, uuid string) (*model.Attendee, error)
	UpdateAttendee(ctx context.Context, uuid string, fields url.Values, image *Upload) (*model.Attendee, error)

	ListAgendas(ctx context.Context, eventID int) ([]model.Agenda, error)
	GetAgenda(ctx context.Context, uuid string) (*model.Agenda, error)
	UpdateAgenda(ctx context.Context, uuid string, fields url.Values, image *Upload) (*model.Agenda, error)
	DeleteAgenda(ctx context.Context, uuid string) error
	DuplicateAgendas(ctx context.Context, fromEventID, toEventID int, date string) error

	JobTitles(ctx context.Context) ([]model.ReferenceItem, error)
	Companies(ctx context.Context) ([]model.ReferenceItem, error)
	Industries(ctx context.Context) ([]model.ReferenceItem, error)

	PendingRequests(ctx context.Context, eventUUID string, userID int) ([]model.Attendee, error)
	ApprovePendingRequest(ctx context.Context, id, userID int, eventUUID string) (string, error)
	DiscardPendingRequest(ctx context.Context, id, userID int, eventUUID string) (string, error)

	SendNotification(ctx context.Context, payload url.Values) error
	WhatsAppReceipts(ctx context.Context, eventUUID, templateName, userID string) ([]model.WhatsAppReceipt, error)

	TotalCheckins(ctx context.Context, eventUUID string) (int, error)
	FetchUser(ctx context.Context) (*model.User, error)
}

type client struct {
	http    *http.Client
	baseURL string
	token   func() string
	log     *zerolog.Logger
}

func New(cfg Config, log *zerolog.Logger) (Gateway, error) {
	if cfg.BaseURL == "" {
		return nil, fmt.Errorf("gateway base URL cannot be empty")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	token := cfg.TokenSource
	if token == nil {
		static := cfg.Token
		token = func() string { return static }
	}
	return &client{
		http:    &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		token:   token,
		log:     log,
	}, nil
}

// IsTimeout reports whether err is a request timeout. The reminder flow maps
// this case specially (see service.SendReminder).
func IsTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var nerr net.Error
	return errors.As(err, &nerr) && nerr.Timeout()
}

// envelope is the upstream response wrapper shared by list and mutation
// endpoints.
type envelope struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func (c *client) do(ctx context.Context, method, path string, contentType string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("build %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.token())

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()
	c.log.Debug().Str("method", method).Str("path", path).Int("status", resp.StatusCode).Msg("upstream call")

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read %s %s response: %w", method, path, err)
	}

	switch {
	case resp.StatusCode == http.StatusUnauthorized:
		return nil, ErrUnauthorized
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= 400:
		var e envelope
		if json.Unmarshal(raw, &e) == nil && e.Message != "" {
			return nil, fmt.Errorf("%s %s: upstream status %d: %s", method, path, resp.StatusCode, e.Message)
		}
		return nil, fmt.Errorf("%s %s: upstream status %d", method, path, resp.StatusCode)
	}

	return raw, nil
}

func (c *client) doEnvelope(ctx context.Context, method, path string, contentType string, body io.Reader) (*envelope, error) {
	raw, err := c.do(ctx, method, path, contentType, body)
	if err != nil {
		return nil, err
	}
	var env envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return nil, fmt.Errorf("%w: %s %s: %v", ErrBadPayload, method, path, err)
	}
	return &env, nil
}

func (c *client) getJSON(ctx context.Context, path string, data any) error {
	env, err := c.doEnvelope(ctx, http.MethodGet, path, "", nil)
	if err != nil {
		return err
	}
	return c.decodeData(path, env.Data, data)
}

func (c *client) postJSON(ctx context.Context, path string, payload any) (*envelope, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal %s payload: %w", path, err)
	}
	return c.doEnvelope(ctx, http.MethodPost, path, "application/json", bytes.NewReader(body))
}

// submitForm sends fields as a urlencoded body, or as multipart whenever a
// binary image field is present.
func (c *client) submitForm(ctx context.Context, method, path string, fields url.Values, image *Upload) (*envelope, error) {
	if image == nil {
		return c.doEnvelope(ctx, method, path, "application/x-www-form-urlencoded",
			strings.NewReader(fields.Encode()))
	}

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for key, values := range fields {
		for _, v := range values {
			if err := w.WriteField(key, v); err != nil {
				return nil, fmt.Errorf("write form field %s: %w", key, err)
			}
		}
	}
	part, err := w.CreateFormFile(image.Field, image.FileName)
	if err != nil {
		return nil, fmt.Errorf("create image part: %w", err)
	}
	if _, err := part.Write(image.Content); err != nil {
		return nil, fmt.Errorf("write image part: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("finish multipart body: %w", err)
	}

	return c.doEnvelope(ctx, method, path, w.FormDataContentType(), &buf)
}

func (c *client) decodeData(path string, raw json.RawMessage, out any) error {
	if len(raw) == 0 {
		return fmt.Errorf("%w: %s: missing data field", ErrBadPayload, path)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("%w: %s: %v", ErrBadPayload, path, err)
	}
	return nil
}

func (c *client) ListEvents(ctx context.Context) ([]model.Event, error) {
	var events []model.Event
	if err := c.getJSON(ctx, "/api/all_events", &events); err != nil {
		return nil, err
	}
	for i, e := range events {
		if e.UUID == "" {
			return nil, fmt.Errorf("%w: event %d has no uuid", ErrBadPayload, i)
		}
	}
	return events, nil
}

func (c *client) GetEvent(ctx context.Context, uuid string) (*model.Event, error) {
	var event model.Event
	if err := c.getJSON(ctx, "/api/events/"+url.PathEscape(uuid), &event); err != nil {
		return nil, err
	}
	if event.UUID == "" {
		return nil, fmt.Errorf("%w: event detail has no uuid", ErrBadPayload)
	}
	return &event, nil
}

func (c *client) UpdateEvent(ctx context.Context, uuid string, fields url.Values, image *Upload) (*model.Event, error) {
	env, err := c.submitForm(ctx, http.MethodPost, "/api/events/"+url.PathEscape(uuid), fields, image)
	if err != nil {
		return nil, err
	}
	var event model.Event
	if err := c.decodeData("/api/events/"+uuid, env.Data, &event); err != nil {
		return nil, err
	}
	return &event, nil
}

func (c *client) DeleteEvent(ctx context.Context, uuid string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/events/"+url.PathEscape(uuid), "", nil)
	return err
}

func (c *client) ListAttendees(ctx context.Context, eventUUID string) ([]model.Attendee, error) {
	var attendees []model.Attendee
	if err := c.getJSON(ctx, "/api/event-attendees/"+url.PathEscape(eventUUID), &attendees); err != nil {
		return nil, err
	}
	for i, a := range attendees {
		if a.UUID == "" {
			return nil, fmt.Errorf("%w: attendee %d has no uuid", ErrBadPayload, i)
		}
	}
	return attendees, nil
}

func (c *client) GetAttendee(ctx context.Context, uuid string) (*model.Attendee, error) {
	// Upstream serves attendee detail on POST with an empty body.
	env, err := c.postJSON(ctx, "/api/attendees/"+url.PathEscape(uuid), struct{}{})
	if err != nil {
		return nil, err
	}
	var attendee model.Attendee
	if err := c.decodeData("/api/attendees/"+uuid, env.Data, &attendee); err != nil {
		return nil, err
	}
	return &attendee, nil
}

func (c *client) UpdateAttendee(ctx context.Context, uuid string, fields url.Values, image *Upload) (*model.Attendee, error) {
	env, err := c.submitForm(ctx, http.MethodPost, "/api/update-attendee/"+url.PathEscape(uuid), fields, image)
	if err != nil {
		return nil, err
	}
	var attendee model.Attendee
	if err := c.decodeData("/api/update-attendee/"+uuid, env.Data, &attendee); err != nil {
		return nil, err
	}
	return &attendee, nil
}

func (c *client) ListAgendas(ctx context.Context, eventID int) ([]model.Agenda, error) {
	var agendas []model.Agenda
	if err := c.getJSON(ctx, fmt.Sprintf("/api/all-agendas/%d", eventID), &agendas); err != nil {
		return nil, err
	}
	for i, a := range agendas {
		if a.UUID == "" {
			return nil, fmt.Errorf("%w: agenda %d has no uuid", ErrBadPayload, i)
		}
	}
	return agendas, nil
}

func (c *client) GetAgenda(ctx context.Context, uuid string) (*model.Agenda, error) {
	var agenda model.Agenda
	if err := c.getJSON(ctx, "/api/agendas/"+url.PathEscape(uuid), &agenda); err != nil {
		return nil, err
	}
	if agenda.UUID == "" {
		return nil, fmt.Errorf("%w: agenda detail has no uuid", ErrBadPayload)
	}
	return &agenda, nil
}

// UpdateAgenda posts the edit form with a method override; the upstream only
// accepts agenda updates as POST bodies carrying _method=PUT.
func (c *client) UpdateAgenda(ctx context.Context, uuid string, fields url.Values, image *Upload) (*model.Agenda, error) {
	if fields == nil {
		fields = url.Values{}
	}
	fields.Set("_method", "PUT")
	env, err := c.submitForm(ctx, http.MethodPost, "/api/agendas/"+url.PathEscape(uuid), fields, image)
	if err != nil {
		return nil, err
	}
	var agenda model.Agenda
	if err := c.decodeData("/api/agendas/"+uuid, env.Data, &agenda); err != nil {
		return nil, err
	}
	return &agenda, nil
}

func (c *client) DeleteAgenda(ctx context.Context, uuid string) error {
	_, err := c.do(ctx, http.MethodDelete, "/api/agendas/"+url.PathEscape(uuid), "", nil)
	return err
}

func (c *client) DuplicateAgendas(ctx context.Context, fromEventID, toEventID int, date string) error {
	_, err := c.postJSON(ctx, "/api/duplicate-agendas", map[string]any{
		"event_id":     fromEventID,
		"new_event_id": toEventID,
		"date":         date,
	})
	return err
}

func (c *client) referenceList(ctx context.Context, path string) ([]model.ReferenceItem, error) {
	var items []model.ReferenceItem
	if err := c.getJSON(ctx, path, &items); err != nil {
		return nil, err
	}
	for i, item := range items {
		if item.Name == "" {
			return nil, fmt.Errorf("%w: %s item %d has no name", ErrBadPayload, path, i)
		}
	}
	return items, nil
}

func (c *client) JobTitles(ctx context.Context) ([]model.ReferenceItem, error) {
	return c.referenceList(ctx, "/api/job-titles")
}

func (c *client) Companies(ctx context.Context) ([]model.ReferenceItem, error) {
	return c.referenceList(ctx, "/api/companies")
}

func (c *client) Industries(ctx context.Context) ([]model.ReferenceItem, error) {
	return c.referenceList(ctx, "/api/get-industries")
}

func (c *client) PendingRequests(ctx context.Context, eventUUID string, userID int) ([]model.Attendee, error) {
	env, err := c.postJSON(ctx, "/api/pending_event_requests/"+url.PathEscape(eventUUID),
		map[string]any{"user_id": userID})
	if err != nil {
		return nil, err
	}
	var pending []model.Attendee
	if err := c.decodeData("/api/pending_event_requests/"+eventUUID, env.Data, &pending); err != nil {
		return nil, err
	}
	return pending, nil
}

func (c *client) pendingAction(ctx context.Context, path string, id, userID int, eventUUID string) (string, error) {
	env, err := c.postJSON(ctx, path, map[string]any{
		"id":       id,
		"user_id":  userID,
		"event_id": eventUUID,
	})
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

func (c *client) ApprovePendingRequest(ctx context.Context, id, userID int, eventUUID string) (string, error) {
	return c.pendingAction(ctx, "/api/approved_pending_request", id, userID, eventUUID)
}

func (c *client) DiscardPendingRequest(ctx context.Context, id, userID int, eventUUID string) (string, error) {
	return c.pendingAction(ctx, "/api/discard_pending_request", id, userID, eventUUID)
}

func (c *client) SendNotification(ctx context.Context, payload url.Values) error {
	_, err := c.submitForm(ctx, http.MethodPost, "/api/notifications", payload, nil)
	return err
}

func (c *client) WhatsAppReceipts(ctx context.Context, eventUUID, templateName, userID string) ([]model.WhatsAppReceipt, error) {
	env, err := c.postJSON(ctx, "/api/organiser/v1/whatsapp/all-recipt", map[string]any{
		"eventUUID":    eventUUID,
		"templateName": templateName,
		"userID":       userID,
	})
	if err != nil {
		return nil, err
	}
	var receipts []model.WhatsAppReceipt
	if err := c.decodeData("/api/organiser/v1/whatsapp/all-recipt", env.Data, &receipts); err != nil {
		return nil, err
	}
	return receipts, nil
}

func (c *client) TotalCheckins(ctx context.Context, eventUUID string) (int, error) {
	var payload struct {
		Total int `json:"total_checkins"`
	}
	if err := c.getJSON(ctx, "/api/total-checkins/"+url.PathEscape(eventUUID), &payload); err != nil {
		return 0, err
	}
	return payload.Total, nil
}

func (c *client) FetchUser(ctx context.Context) (*model.User, error) {
	raw, err := c.do(ctx, http.MethodGet, "/api/user", "", nil)
	if err != nil {
		return nil, err
	}
	// The profile endpoint wraps the record as {user: {...}} instead of data.
	var payload struct {
		User *model.User `json:"user"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || payload.User == nil {
		return nil, fmt.Errorf("%w: /api/user: no user record", ErrBadPayload)
	}
	return payload.User, nil
}
