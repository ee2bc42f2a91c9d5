package service

import (
	"encoding/json"
	"fmt"
	"io"
	"net/url"
	"sort"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/wb-go/wbf/ginext"

	"eventdash/internal/dto"
	"eventdash/internal/gateway"
	"eventdash/internal/live"
	"eventdash/internal/model"
	"eventdash/internal/rabbit"
	"eventdash/internal/selection"
	"eventdash/internal/store"
	"eventdash/pkg/paginate"
	"eventdash/pkg/validator"
)

type Service interface {
	GetAllEvents(ctx *ginext.Context)
	SelectEvent(ctx *ginext.Context)
	ViewEvent(ctx *ginext.Context)
	UpdateEvent(ctx *ginext.Context)
	UploadEventImage(ctx *ginext.Context)
	DeleteEvent(ctx *ginext.Context)
	LiveStatus(ctx *ginext.Context)

	ListAttendees(ctx *ginext.Context)
	AttendeeEditForm(ctx *ginext.Context)
	UpdateAttendee(ctx *ginext.Context)

	ListAgendas(ctx *ginext.Context)
	SelectAgenda(ctx *ginext.Context)
	AgendaEditForm(ctx *ginext.Context)
	UpdateAgenda(ctx *ginext.Context)
	DeleteAgenda(ctx *ginext.Context)
	ImportAgendas(ctx *ginext.Context)

	ListPendingRequests(ctx *ginext.Context)
	ApprovePendingRequest(ctx *ginext.Context)
	DiscardPendingRequest(ctx *ginext.Context)

	SendReminder(ctx *ginext.Context)
	WhatsAppReport(ctx *ginext.Context)
}

type service struct {
	gw        gateway.Gateway
	st        *store.Store
	sel       *selection.Router
	poller    *live.Poller
	log       *zerolog.Logger
	rbt       *rabbit.Client
	attendees *attendeeView
}

func NewService(gw gateway.Gateway, st *store.Store, sel *selection.Router, poller *live.Poller, logger *zerolog.Logger, rbt *rabbit.Client) Service {
	return &service{
		gw:        gw,
		st:        st,
		sel:       sel,
		poller:    poller,
		log:       logger,
		rbt:       rbt,
		attendees: newAttendeeView(),
	}
}

// attendeeView is the attendee list's session state. Filter and page-size
// changes move the view back to page 1; a page jump arriving in the same
// request as a filter change loses to the reset.
type attendeeView struct {
	mu                         sync.Mutex
	ctl                        *paginate.Controller[model.Attendee]
	name, email, company, role string
	perPage                    int
}

func newAttendeeView() *attendeeView {
	return &attendeeView{
		ctl:     paginate.NewController[model.Attendee](10),
		perPage: 10,
	}
}

func (v *attendeeView) apply(name, email, company, role string, perPage, page int) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if perPage > 0 && perPage != v.perPage {
		v.perPage = perPage
		v.ctl.SetPageSize(perPage)
	}
	if name != v.name || email != v.email || company != v.company || role != v.role {
		v.name, v.email, v.company, v.role = name, email, company, role
		v.ctl.SetFilters(
			paginate.TextFilter(func(a model.Attendee) string { return a.FirstName }, name),
			paginate.TextFilter(func(a model.Attendee) string { return a.EmailID }, email),
			paginate.TextFilter(func(a model.Attendee) string { return a.CompanyName }, company),
			paginate.ValueFilter(func(a model.Attendee) string { return a.Status }, role),
		)
		return
	}
	if page > 0 {
		v.ctl.SetPage(page)
	}
}

func (v *attendeeView) render(items []model.Attendee) paginate.Result[model.Attendee] {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.ctl.Render(items)
}

// EventSummary is one dashboard card: the event plus its derived live state.
type EventSummary struct {
	model.Event
	IsLive   bool `json:"is_live"`
	Checkins int  `json:"checkins"`
}

type eventListResponse struct {
	Events paginate.Result[EventSummary] `json:"events"`
	Cities []string                      `json:"cities"`
}

func intQuery(ctx *ginext.Context, name string, fallback int) int {
	v, err := strconv.Atoi(ctx.Query(name))
	if err != nil || v < 1 {
		return fallback
	}
	return v
}

// GetAllEvents refreshes the event cache from upstream and serves the
// dashboard list: upcoming or past, optionally narrowed to one city, each
// row carrying its live flag and check-in counter.
func (s *service) GetAllEvents(ctx *ginext.Context) {
	s.st.SetLoading(store.KindEvents, true)
	events, err := s.gw.ListEvents(ctx.Request.Context())
	s.st.SetLoading(store.KindEvents, false)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch events from upstream")
		dto.UpstreamError(ctx, "")
		return
	}
	s.st.SetEvents(events)

	now := time.Now()
	which := ctx.DefaultQuery("type", "upcoming")
	city := ctx.Query("city")

	// City list comes from the full collection, not the filtered one.
	seen := make(map[string]bool)
	cities := make([]string, 0)
	for _, e := range events {
		if !seen[e.City] {
			seen[e.City] = true
			cities = append(cities, e.City)
		}
	}

	split := make([]model.Event, 0, len(events))
	for _, e := range events {
		if live.IsUpcoming(e, now) == (which == "upcoming") {
			split = append(split, e)
		}
	}
	if which == "past" {
		// Most recent past event first.
		sort.SliceStable(split, func(i, j int) bool {
			return split[i].EventStartDate > split[j].EventStartDate
		})
	}

	summaries := make([]EventSummary, 0, len(split))
	for _, e := range split {
		summaries = append(summaries, EventSummary{
			Event:    e,
			IsLive:   live.IsLive(e, now),
			Checkins: s.poller.Checkins(e.UUID),
		})
	}

	filters := []paginate.Predicate[EventSummary]{
		paginate.ValueFilter(func(e EventSummary) string { return e.City }, city),
	}
	page := intQuery(ctx, "page", 1)
	perPage := intQuery(ctx, "per_page", 10)

	dto.SuccessResponse(ctx, eventListResponse{
		Events: paginate.Paginate(summaries, filters, page, perPage),
		Cities: cities,
	})
}

// SelectEvent records the event a card action was clicked on, so views
// reached without a path parameter know which event they show.
func (s *service) SelectEvent(ctx *ginext.Context) {
	uuid := ctx.Param("uuid")
	if uuid == "" {
		dto.FieldIncorrectError(ctx, "uuid")
		return
	}
	s.sel.Select(selection.KindEvent, uuid)
	if e, ok := s.st.EventByUUID(uuid); ok {
		s.st.SetCurrentEvent(&e)
	}
	dto.SuccessResponse(ctx, nil)
}

// resolveEvent yields the event a view should operate on: path parameter
// first, stored selection second. ok=false with a written response when the
// view has nothing to show.
func (s *service) resolveEvent(ctx *ginext.Context) (model.Event, bool) {
	uuid := s.sel.Resolve(selection.KindEvent, ctx.Param("uuid"))
	if uuid == "" {
		// No selection at all: the view renders blank rather than failing.
		dto.SuccessResponse(ctx, nil)
		return model.Event{}, false
	}
	if e, ok := s.st.EventByUUID(uuid); ok {
		return e, true
	}
	// Pointer set but entity not cached yet. A valid transient state: the
	// view renders empty until the collection lands.
	s.log.Debug().Str("event_uuid", uuid).Msg("selected event not in cache yet")
	dto.SuccessResponse(ctx, nil)
	return model.Event{}, false
}

func (s *service) ViewEvent(ctx *ginext.Context) {
	event, ok := s.resolveEvent(ctx)
	if !ok {
		return
	}
	detail, err := s.gw.GetEvent(ctx.Request.Context(), event.UUID)
	if err != nil {
		s.log.Error().Err(err).Str("event_uuid", event.UUID).Msg("failed to fetch event detail")
		dto.UpstreamError(ctx, "")
		return
	}
	s.st.SetCurrentEvent(detail)
	dto.SuccessResponse(ctx, EventSummary{
		Event:    *detail,
		IsLive:   live.IsLive(*detail, time.Now()),
		Checkins: s.poller.Checkins(detail.UUID),
	})
}

func eventFormValues(req dto.UpdateEventRequest) url.Values {
	paid := "0"
	if req.PaidEvent {
		paid = "1"
	}
	return url.Values{
		"title":                 {req.Title},
		"description":           {req.Description},
		"event_start_date":      {req.EventStartDate},
		"event_end_date":        {req.EventEndDate},
		"start_time":            {req.StartTime},
		"start_minute_time":     {req.StartMinuteTime},
		"start_time_type":       {req.StartTimeType},
		"end_time":              {req.EndTime},
		"end_minute_time":       {req.EndMinuteTime},
		"end_time_type":         {req.EndTimeType},
		"event_venue_name":      {req.EventVenueName},
		"event_venue_address_1": {req.EventVenueAddress1},
		"country":               {req.Country},
		"state":                 {req.State},
		"city":                  {req.City},
		"pincode":               {req.Pincode},
		"google_map_link":       {req.GoogleMapLink},
		"video_url":             {req.VideoURL},
		"paid_event":            {paid},
		"event_fee":             {req.EventFee},
		"printer_count":         {strconv.Itoa(req.PrinterCount)},
		"view_agenda_by":        {strconv.Itoa(req.ViewAgendaBy)},
		"event_otp":             {req.EventOTP},
	}
}

func (s *service) UpdateEvent(ctx *ginext.Context) {
	uuid := ctx.Param("uuid")
	if uuid == "" {
		dto.FieldIncorrectError(ctx, "uuid")
		return
	}

	var req dto.UpdateEventRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		s.log.Error().Err(err).Msg("failed to parse update event request")
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		s.log.Error().Msgf("validation failed: %v", verr)
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	updated, err := s.gw.UpdateEvent(ctx.Request.Context(), uuid, eventFormValues(req), nil)
	if err != nil {
		s.log.Error().Err(err).Str("event_uuid", uuid).Msg("failed to update event upstream")
		dto.UpstreamError(ctx, err.Error())
		return
	}

	s.st.SetCurrentEvent(updated)
	s.refreshEvents(ctx)
	dto.SuccessResponse(ctx, updated)
}

// UploadEventImage forwards the banner image as a multipart body, the one
// mutation shape the upstream requires for binary fields.
func (s *service) UploadEventImage(ctx *ginext.Context) {
	uuid := ctx.Param("uuid")
	if uuid == "" {
		dto.FieldIncorrectError(ctx, "uuid")
		return
	}

	file, err := ctx.FormFile("image")
	if err != nil {
		dto.FieldBadFormatError(ctx, "image")
		return
	}
	f, err := file.Open()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to open uploaded image")
		dto.InternalServerError(ctx)
		return
	}
	defer f.Close()

	content, err := io.ReadAll(f)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to read uploaded image")
		dto.InternalServerError(ctx)
		return
	}

	updated, err := s.gw.UpdateEvent(ctx.Request.Context(), uuid, url.Values{}, &gateway.Upload{
		Field:    "image",
		FileName: file.Filename,
		Content:  content,
	})
	if err != nil {
		s.log.Error().Err(err).Str("event_uuid", uuid).Msg("failed to upload event image")
		dto.UpstreamError(ctx, err.Error())
		return
	}

	s.st.SetCurrentEvent(updated)
	dto.SuccessResponse(ctx, updated)
}

func (s *service) DeleteEvent(ctx *ginext.Context) {
	uuid := ctx.Param("uuid")
	if uuid == "" {
		dto.FieldIncorrectError(ctx, "uuid")
		return
	}
	if err := s.gw.DeleteEvent(ctx.Request.Context(), uuid); err != nil {
		s.log.Error().Err(err).Str("event_uuid", uuid).Msg("failed to delete event upstream")
		dto.UpstreamError(ctx, "")
		return
	}
	// A delete invalidates the whole collection; refetch rather than patch.
	s.refreshEvents(ctx)
	dto.SuccessResponse(ctx, nil)
}

func (s *service) refreshEvents(ctx *ginext.Context) {
	events, err := s.gw.ListEvents(ctx.Request.Context())
	if err != nil {
		s.log.Warn().Err(err).Msg("event cache refresh failed, keeping stale collection")
		return
	}
	s.st.SetEvents(events)
}

// LiveStatus serves the polled live badge and check-in counter for one event.
func (s *service) LiveStatus(ctx *ginext.Context) {
	event, ok := s.resolveEvent(ctx)
	if !ok {
		return
	}
	dto.SuccessResponse(ctx, map[string]any{
		"uuid":     event.UUID,
		"is_live":  live.IsLive(event, time.Now()),
		"checkins": s.poller.Checkins(event.UUID),
	})
}

func (s *service) ListAttendees(ctx *ginext.Context) {
	event, ok := s.resolveEvent(ctx)
	if !ok {
		return
	}

	s.st.SetLoading(store.KindAttendees, true)
	attendees, err := s.gw.ListAttendees(ctx.Request.Context(), event.UUID)
	s.st.SetLoading(store.KindAttendees, false)
	if err != nil {
		s.log.Error().Err(err).Str("event_uuid", event.UUID).Msg("failed to fetch attendees")
		dto.UpstreamError(ctx, "")
		return
	}
	s.st.SetAttendees(attendees)

	page, _ := strconv.Atoi(ctx.Query("page"))
	perPage, _ := strconv.Atoi(ctx.Query("per_page"))
	s.attendees.apply(ctx.Query("name"), ctx.Query("email"), ctx.Query("company"), ctx.Query("role"), perPage, page)

	dto.SuccessResponse(ctx, s.attendees.render(attendees))
}

// attendeeFormState is the edit form prefill. A dropdown whose stored value
// is missing from its reference list flips to the "Others" sentinel with the
// original value preserved in the custom field; the mismatch never drops data.
type attendeeFormState struct {
	Attendee          model.Attendee `json:"attendee"`
	JobTitle          string         `json:"job_title"`
	CustomJobTitle    string         `json:"custom_job_title,omitempty"`
	CompanyName       string         `json:"company_name"`
	CustomCompanyName string         `json:"custom_company_name,omitempty"`
	Industry          string         `json:"industry"`
	CustomIndustry    string         `json:"custom_industry,omitempty"`
}

const othersSentinel = "Others"

func resolveReference(value string, list []model.ReferenceItem) (selected, custom string) {
	if value == "" {
		return "", ""
	}
	for _, item := range list {
		if item.Name == value {
			return value, ""
		}
	}
	return othersSentinel, value
}

func (s *service) loadReferenceLists(ctx *ginext.Context) error {
	type fetch struct {
		kind store.Kind
		get  func() ([]model.ReferenceItem, error)
	}
	rctx := ctx.Request.Context()
	for _, f := range []fetch{
		{store.KindJobTitles, func() ([]model.ReferenceItem, error) { return s.gw.JobTitles(rctx) }},
		{store.KindCompanies, func() ([]model.ReferenceItem, error) { return s.gw.Companies(rctx) }},
		{store.KindIndustries, func() ([]model.ReferenceItem, error) { return s.gw.Industries(rctx) }},
	} {
		if len(s.st.ReferenceList(f.kind)) > 0 {
			continue
		}
		items, err := f.get()
		if err != nil {
			return err
		}
		s.st.SetReferenceList(f.kind, items)
	}
	return nil
}

func (s *service) AttendeeEditForm(ctx *ginext.Context) {
	uuid := ctx.Param("attendee_uuid")
	if uuid == "" {
		dto.FieldIncorrectError(ctx, "attendee_uuid")
		return
	}

	if err := s.loadReferenceLists(ctx); err != nil {
		s.log.Error().Err(err).Msg("failed to fetch reference lists")
		dto.UpstreamError(ctx, "")
		return
	}

	attendee, err := s.gw.GetAttendee(ctx.Request.Context(), uuid)
	if err != nil {
		s.log.Error().Err(err).Str("attendee_uuid", uuid).Msg("failed to fetch attendee")
		dto.AttendeeNotFoundError(ctx)
		return
	}

	form := attendeeFormState{Attendee: *attendee}
	form.JobTitle, form.CustomJobTitle = resolveReference(attendee.JobTitle, s.st.ReferenceList(store.KindJobTitles))
	form.CompanyName, form.CustomCompanyName = resolveReference(attendee.CompanyName, s.st.ReferenceList(store.KindCompanies))
	form.Industry, form.CustomIndustry = resolveReference(attendee.Industry, s.st.ReferenceList(store.KindIndustries))

	dto.SuccessResponse(ctx, form)
}

// pickCustom collapses an "Others" dropdown back to the free-text override.
func pickCustom(selected, custom string) string {
	if selected == othersSentinel && custom != "" {
		return custom
	}
	return selected
}

func (s *service) UpdateAttendee(ctx *ginext.Context) {
	uuid := ctx.Param("attendee_uuid")
	if uuid == "" {
		dto.FieldIncorrectError(ctx, "attendee_uuid")
		return
	}

	var req dto.UpdateAttendeeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	fields := url.Values{
		"first_name":              {req.FirstName},
		"last_name":               {req.LastName},
		"email_id":                {req.EmailID},
		"phone_number":            {req.PhoneNumber},
		"alternate_mobile_number": {req.AlternateMobileNumber},
		"job_title":               {pickCustom(req.JobTitle, req.CustomJobTitle)},
		"company_name":            {pickCustom(req.CompanyName, req.CustomCompanyName)},
		"industry":                {pickCustom(req.Industry, req.CustomIndustry)},
		"website":                 {req.Website},
		"linkedin_page_link":      {req.LinkedinPageLink},
		"employee_size":           {req.EmployeeSize},
		"company_turn_over":       {req.CompanyTurnOver},
		"status":                  {req.Status},
	}

	updated, err := s.gw.UpdateAttendee(ctx.Request.Context(), uuid, fields, nil)
	if err != nil {
		s.log.Error().Err(err).Str("attendee_uuid", uuid).Msg("failed to update attendee upstream")
		dto.UpstreamError(ctx, err.Error())
		return
	}
	dto.SuccessResponse(ctx, updated)
}

func (s *service) ListAgendas(ctx *ginext.Context) {
	event, ok := s.resolveEvent(ctx)
	if !ok {
		return
	}

	s.st.SetLoading(store.KindAgendas, true)
	agendas, err := s.gw.ListAgendas(ctx.Request.Context(), event.ID)
	s.st.SetLoading(store.KindAgendas, false)
	if err != nil {
		s.log.Error().Err(err).Int("event_id", event.ID).Msg("failed to fetch agendas")
		dto.UpstreamError(ctx, "")
		return
	}

	// Display order: ascending position, original order on ties.
	sort.SliceStable(agendas, func(i, j int) bool {
		return agendas[i].Position < agendas[j].Position
	})
	s.st.SetAgendas(agendas)

	filters := []paginate.Predicate[model.Agenda]{
		paginate.TextFilter(func(a model.Agenda) string { return a.Title }, ctx.Query("title")),
	}
	page := intQuery(ctx, "page", 1)

	dto.SuccessResponse(ctx, paginate.Paginate(agendas, filters, page, 10))
}

func (s *service) SelectAgenda(ctx *ginext.Context) {
	uuid := ctx.Param("agenda_uuid")
	if uuid == "" {
		dto.FieldIncorrectError(ctx, "agenda_uuid")
		return
	}
	s.sel.Select(selection.KindAgenda, uuid)
	dto.SuccessResponse(ctx, nil)
}

func (s *service) AgendaEditForm(ctx *ginext.Context) {
	uuid := s.sel.Resolve(selection.KindAgenda, ctx.Param("agenda_uuid"))
	if uuid == "" {
		dto.FieldIncorrectError(ctx, "agenda_uuid")
		return
	}
	agenda, err := s.gw.GetAgenda(ctx.Request.Context(), uuid)
	if err != nil {
		s.log.Error().Err(err).Str("agenda_uuid", uuid).Msg("failed to fetch agenda")
		dto.AgendaNotFoundError(ctx)
		return
	}
	dto.SuccessResponse(ctx, agenda)
}

func (s *service) UpdateAgenda(ctx *ginext.Context) {
	uuid := s.sel.Resolve(selection.KindAgenda, ctx.Param("agenda_uuid"))
	if uuid == "" {
		dto.FieldIncorrectError(ctx, "agenda_uuid")
		return
	}

	var req dto.UpdateAgendaRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	// The upstream requires the owning event id back on the form.
	current, ok := s.st.AgendaByUUID(uuid)
	if !ok {
		detail, err := s.gw.GetAgenda(ctx.Request.Context(), uuid)
		if err != nil {
			s.log.Error().Err(err).Str("agenda_uuid", uuid).Msg("failed to fetch agenda before update")
			dto.AgendaNotFoundError(ctx)
			return
		}
		current = *detail
	}

	fields := url.Values{
		"title":             {req.Title},
		"description":       {req.Description},
		"event_date":        {req.EventDate},
		"start_time":        {req.StartTime},
		"start_minute_time": {req.StartMinuteTime},
		"start_time_type":   {req.StartTimeType},
		"end_time":          {req.EndTime},
		"end_minute_time":   {req.EndMinuteTime},
		"end_time_type":     {req.EndTimeType},
		"position":          {strconv.Itoa(req.Position)},
		"event_id":          {strconv.Itoa(current.EventID)},
	}

	updated, err := s.gw.UpdateAgenda(ctx.Request.Context(), uuid, fields, nil)
	if err != nil {
		s.log.Error().Err(err).Str("agenda_uuid", uuid).Msg("failed to update agenda upstream")
		dto.UpstreamError(ctx, err.Error())
		return
	}

	agendas := s.st.Agendas()
	for i := range agendas {
		if agendas[i].UUID == uuid {
			agendas[i] = *updated
			break
		}
	}
	sort.SliceStable(agendas, func(i, j int) bool {
		return agendas[i].Position < agendas[j].Position
	})
	s.st.SetAgendas(agendas)

	dto.SuccessResponse(ctx, updated)
}

func (s *service) DeleteAgenda(ctx *ginext.Context) {
	uuid := s.sel.Resolve(selection.KindAgenda, ctx.Param("agenda_uuid"))
	if uuid == "" {
		dto.FieldIncorrectError(ctx, "agenda_uuid")
		return
	}
	if err := s.gw.DeleteAgenda(ctx.Request.Context(), uuid); err != nil {
		s.log.Error().Err(err).Str("agenda_uuid", uuid).Msg("failed to delete agenda upstream")
		dto.UpstreamError(ctx, "")
		return
	}

	// Drop the row locally; the next list fetch is authoritative anyway.
	remaining := make([]model.Agenda, 0)
	for _, a := range s.st.Agendas() {
		if a.UUID != uuid {
			remaining = append(remaining, a)
		}
	}
	s.st.SetAgendas(remaining)
	dto.SuccessResponse(ctx, nil)
}

// ImportAgendas copies another event's agenda rows onto the selected event.
func (s *service) ImportAgendas(ctx *ginext.Context) {
	event, ok := s.resolveEvent(ctx)
	if !ok {
		return
	}

	var req dto.DuplicateAgendasRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	source, ok := s.st.EventByUUID(req.FromEventUUID)
	if !ok {
		dto.EventNotFoundError(ctx)
		return
	}

	if err := s.gw.DuplicateAgendas(ctx.Request.Context(), source.ID, event.ID, event.EventStartDate); err != nil {
		s.log.Error().Err(err).
			Int("from_event_id", source.ID).
			Int("to_event_id", event.ID).
			Msg("failed to duplicate agendas upstream")
		dto.UpstreamError(ctx, err.Error())
		return
	}
	dto.SuccessResponse(ctx, nil)
}

func (s *service) ListPendingRequests(ctx *ginext.Context) {
	event, ok := s.resolveEvent(ctx)
	if !ok {
		return
	}
	user := s.st.User()
	if user == nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "No authenticated organizer")
		return
	}

	pending, err := s.gw.PendingRequests(ctx.Request.Context(), event.UUID, user.ID)
	if err != nil {
		s.log.Error().Err(err).Str("event_uuid", event.UUID).Msg("failed to fetch pending requests")
		dto.UpstreamError(ctx, "")
		return
	}
	s.st.SetPendingRequests(pending)

	filters := []paginate.Predicate[model.Attendee]{
		paginate.TextFilter(func(a model.Attendee) string { return a.FirstName }, ctx.Query("name")),
		paginate.TextFilter(func(a model.Attendee) string { return a.EmailID }, ctx.Query("email")),
		paginate.TextFilter(func(a model.Attendee) string { return a.CompanyName }, ctx.Query("company")),
		paginate.ValueFilter(func(a model.Attendee) string {
			return strconv.Itoa(a.UserInvitationRequest)
		}, ctx.Query("status")),
	}
	page := intQuery(ctx, "page", 1)
	perPage := intQuery(ctx, "per_page", 10)

	dto.SuccessResponse(ctx, paginate.Paginate(pending, filters, page, perPage))
}

func (s *service) pendingAction(ctx *ginext.Context, approve bool) {
	event, ok := s.resolveEvent(ctx)
	if !ok {
		return
	}
	user := s.st.User()
	if user == nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "No authenticated organizer")
		return
	}

	var req dto.PendingActionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}

	var (
		message string
		err     error
	)
	if approve {
		message, err = s.gw.ApprovePendingRequest(ctx.Request.Context(), req.ID, user.ID, event.UUID)
	} else {
		message, err = s.gw.DiscardPendingRequest(ctx.Request.Context(), req.ID, user.ID, event.UUID)
	}
	if err != nil {
		s.log.Error().Err(err).Int("request_id", req.ID).Msg("pending request action failed upstream")
		dto.UpstreamError(ctx, "")
		return
	}
	dto.SuccessResponse(ctx, map[string]string{"message": message})
}

func (s *service) ApprovePendingRequest(ctx *ginext.Context) {
	s.pendingAction(ctx, true)
}

func (s *service) DiscardPendingRequest(ctx *ginext.Context) {
	s.pendingAction(ctx, false)
}

// SendReminder validates the composer form and queues one reminder job. The
// response is immediate; delivery happens in the worker.
func (s *service) SendReminder(ctx *ginext.Context) {
	event, ok := s.resolveEvent(ctx)
	if !ok {
		return
	}

	var req dto.SendReminderRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Invalid JSON format")
		return
	}
	if verr := validator.Validate(ctx, req); verr != nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, fmt.Sprintf("%v", verr))
		return
	}
	if req.SendMethod == "email" && (req.Subject == "" || req.Message == "") {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "Subject and Message are required")
		return
	}

	var recipients []string
	if req.SendMethod == "email" {
		attendees, err := s.gw.ListAttendees(ctx.Request.Context(), event.UUID)
		if err != nil {
			s.log.Error().Err(err).Str("event_uuid", event.UUID).Msg("failed to fetch reminder recipients")
			dto.UpstreamError(ctx, "")
			return
		}
		for _, a := range attendees {
			if a.EmailID != "" {
				recipients = append(recipients, a.EmailID)
			}
		}
	}

	job := dto.ReminderJob{
		EventUUID:        event.UUID,
		EventTitle:       event.Title,
		EventStartDate:   event.EventStartDate,
		EventEndDate:     event.EventEndDate,
		SendMethod:       req.SendMethod,
		Subject:          req.Subject,
		Message:          req.Message,
		DeliverySchedule: req.DeliverySchedule,
		Recipients:       recipients,
	}
	payload, err := json.Marshal(job)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal reminder job")
		dto.InternalServerError(ctx)
		return
	}

	delaySeconds := 0
	if req.DeliverySchedule == "later" {
		delaySeconds = req.DelayMinutes * 60
	}
	if err := s.rbt.Publish(payload, delaySeconds); err != nil {
		s.log.Error().Err(err).Msg("failed to publish reminder job")
		dto.InternalServerError(ctx)
		return
	}

	s.log.Info().
		Str("event_uuid", event.UUID).
		Str("send_method", req.SendMethod).
		Int("recipients", len(recipients)).
		Msg("reminder job queued")
	dto.SuccessResponse(ctx, map[string]string{"message": "The invitation was sent successfully!"})
}

// ReportSummary is the WhatsApp delivery scorecard plus the filtered table.
type ReportSummary struct {
	Sent      int                                    `json:"sent"`
	Delivered int                                    `json:"delivered"`
	Read      int                                    `json:"read"`
	Failed    int                                    `json:"failed"`
	Receipts  paginate.Result[model.WhatsAppReceipt] `json:"receipts"`
}

func receiptStatus(r model.WhatsAppReceipt) string {
	if r.Message == nil {
		return ""
	}
	return r.Message.MessageStatus
}

func (s *service) WhatsAppReport(ctx *ginext.Context) {
	event, ok := s.resolveEvent(ctx)
	if !ok {
		return
	}
	user := s.st.User()
	if user == nil {
		dto.BadResponseError(ctx, dto.FieldIncorrect, "No authenticated organizer")
		return
	}

	template := ctx.DefaultQuery("template", "event_downloadapp")
	receipts, err := s.gw.WhatsAppReceipts(ctx.Request.Context(), event.UUID, template, strconv.Itoa(user.ID))
	if err != nil {
		s.log.Error().Err(err).Str("event_uuid", event.UUID).Msg("failed to fetch whatsapp receipts")
		dto.UpstreamError(ctx, "")
		return
	}

	summary := ReportSummary{Sent: len(receipts)}
	for _, r := range receipts {
		if r.Message == nil {
			continue
		}
		switch r.Message.MessageStatus {
		case "Failed":
			summary.Failed++
		case "Read":
			summary.Read++
			summary.Delivered++
		default:
			summary.Delivered++
		}
	}

	var filters []paginate.Predicate[model.WhatsAppReceipt]
	switch ctx.Query("status") {
	case "", "Sent":
		// Scorecard "Sent" shows everything.
	case "Delivered":
		filters = append(filters, func(r model.WhatsAppReceipt) bool {
			return r.Message != nil && r.Message.MessageStatus != "Failed"
		})
	default:
		filters = append(filters, paginate.ValueFilter(receiptStatus, ctx.Query("status")))
	}

	page := intQuery(ctx, "page", 1)
	perPage := intQuery(ctx, "per_page", 10)
	summary.Receipts = paginate.Paginate(receipts, filters, page, perPage)

	dto.SuccessResponse(ctx, summary)
}
