package dto

import (
	"github.com/wb-go/wbf/ginext"
)

const (
	FieldBadFormat     = "FIELD_BADFORMAT"
	FieldIncorrect     = "FIELD_INCORRECT"
	ServiceUnavailable = "SERVICE_UNAVAILABLE"
	InternalError      = "Service is currently unavailable. Please try again later."

	EventNotFound    = "EVENT_NOT_FOUND"
	AttendeeNotFound = "ATTENDEE_NOT_FOUND"
	AgendaNotFound   = "AGENDA_NOT_FOUND"
	NoEventSelected  = "NO_EVENT_SELECTED"
	UpstreamFailed   = "UPSTREAM_FAILED"
)

// UpdateEventRequest carries the edit-event form. Time-of-day fields stay on
// the upstream 12-hour clock shape.
type UpdateEventRequest struct {
	Title              string `json:"title" validate:"required"`
	Description        string `json:"description" validate:"required"`
	EventStartDate     string `json:"event_start_date" validate:"required"`
	EventEndDate       string `json:"event_end_date" validate:"required"`
	StartTime          string `json:"start_time" validate:"required,clockhour"`
	StartMinuteTime    string `json:"start_minute_time" validate:"required"`
	StartTimeType      string `json:"start_time_type" validate:"required,meridiem"`
	EndTime            string `json:"end_time" validate:"required,clockhour"`
	EndMinuteTime      string `json:"end_minute_time" validate:"required"`
	EndTimeType        string `json:"end_time_type" validate:"required,meridiem"`
	EventVenueName     string `json:"event_venue_name" validate:"required"`
	EventVenueAddress1 string `json:"event_venue_address_1" validate:"required"`
	Country            string `json:"country" validate:"required"`
	State              string `json:"state" validate:"required"`
	City               string `json:"city" validate:"required"`
	Pincode            string `json:"pincode" validate:"required,min=6"`
	GoogleMapLink      string `json:"google_map_link"`
	VideoURL           string `json:"video_url"`
	PaidEvent          bool   `json:"paid_event"`
	EventFee           string `json:"event_fee"`
	PrinterCount       int    `json:"printer_count"`
	ViewAgendaBy       int    `json:"view_agenda_by"`
	EventOTP           string `json:"event_otp" validate:"required,otp"`
}

// UpdateAttendeeRequest carries the edit-attendee form. The Custom* fields
// hold free-text overrides when a dropdown sits on the "Others" sentinel.
type UpdateAttendeeRequest struct {
	FirstName             string `json:"first_name" validate:"required"`
	LastName              string `json:"last_name" validate:"required"`
	EmailID               string `json:"email_id" validate:"required,email"`
	PhoneNumber           string `json:"phone_number" validate:"required"`
	AlternateMobileNumber string `json:"alternate_mobile_number"`
	JobTitle              string `json:"job_title"`
	CustomJobTitle        string `json:"custom_job_title"`
	CompanyName           string `json:"company_name"`
	CustomCompanyName     string `json:"custom_company_name"`
	Industry              string `json:"industry"`
	CustomIndustry        string `json:"custom_industry"`
	Website               string `json:"website"`
	LinkedinPageLink      string `json:"linkedin_page_link"`
	EmployeeSize          string `json:"employee_size"`
	CompanyTurnOver       string `json:"company_turn_over"`
	Status                string `json:"status" validate:"required"`
}

// UpdateAgendaRequest carries the edit-agenda form. Time-of-day fields use
// the same 12-hour clock shape as the event form.
type UpdateAgendaRequest struct {
	Title           string `json:"title" validate:"required"`
	Description     string `json:"description" validate:"required"`
	EventDate       string `json:"event_date" validate:"required"`
	StartTime       string `json:"start_time" validate:"required,clockhour"`
	StartMinuteTime string `json:"start_minute_time" validate:"required"`
	StartTimeType   string `json:"start_time_type" validate:"required,meridiem"`
	EndTime         string `json:"end_time" validate:"required,clockhour"`
	EndMinuteTime   string `json:"end_minute_time" validate:"required"`
	EndTimeType     string `json:"end_time_type" validate:"required,meridiem"`
	Position        int    `json:"position" validate:"gte=0"`
}

type PendingActionRequest struct {
	ID int `json:"id" validate:"required,positive"`
}

type DuplicateAgendasRequest struct {
	FromEventUUID string `json:"from_event_uuid" validate:"required"`
}

// SendReminderRequest is the reminder-composer form. Subject and message are
// only required for the email channel; the WhatsApp channel sends a fixed
// template.
type SendReminderRequest struct {
	SendMethod       string `json:"send_method" validate:"required,oneof=email whatsapp in-app"`
	Subject          string `json:"subject"`
	Message          string `json:"message"`
	DeliverySchedule string `json:"delivery_schedule" validate:"required,oneof=now later"`
	DelayMinutes     int    `json:"delay_minutes" validate:"gte=0"`
}

// ReminderJob is the queue message the reminder worker consumes.
type ReminderJob struct {
	EventUUID        string   `json:"event_uuid"`
	EventTitle       string   `json:"event_title"`
	EventStartDate   string   `json:"event_start_date"`
	EventEndDate     string   `json:"event_end_date"`
	SendMethod       string   `json:"send_method"`
	Subject          string   `json:"subject"`
	Message          string   `json:"message"`
	DeliverySchedule string   `json:"delivery_schedule"`
	Recipients       []string `json:"recipients"`
}

type Response struct {
	Status string `json:"status"`
	Error  *Error `json:"error,omitempty"`
	Data   any    `json:"data,omitempty"`
}

type Error struct {
	Code string `json:"code"`
	Desc string `json:"desc"`
}

func BadResponseError(c *ginext.Context, code, desc string) {
	c.JSON(400, Response{
		Status: "error",
		Error: &Error{
			Code: code,
			Desc: desc,
		},
	})
}

func InternalServerError(c *ginext.Context) {
	c.JSON(500, Response{
		Status: "error",
		Error: &Error{
			Code: ServiceUnavailable,
			Desc: InternalError,
		},
	})
}

func FieldBadFormatError(c *ginext.Context, fieldName string) {
	BadResponseError(c, FieldBadFormat, "Field '"+fieldName+"' has bad format")
}

func FieldIncorrectError(c *ginext.Context, fieldName string) {
	BadResponseError(c, FieldIncorrect, "Field '"+fieldName+"' is incorrect")
}

func EventNotFoundError(c *ginext.Context) {
	BadResponseError(c, EventNotFound, "Event not found")
}

func AttendeeNotFoundError(c *ginext.Context) {
	BadResponseError(c, AttendeeNotFound, "Attendee not found")
}

func AgendaNotFoundError(c *ginext.Context) {
	BadResponseError(c, AgendaNotFound, "Agenda not found")
}

func NoEventSelectedError(c *ginext.Context) {
	BadResponseError(c, NoEventSelected, "No event selected")
}

func UpstreamError(c *ginext.Context, desc string) {
	if desc == "" {
		desc = "The event platform did not accept the request"
	}
	c.JSON(502, Response{
		Status: "error",
		Error: &Error{
			Code: UpstreamFailed,
			Desc: desc,
		},
	})
}

func SuccessResponse(c *ginext.Context, data any) {
	c.JSON(200, Response{
		Status: "ok",
		Data:   data,
	})
}

func SuccessCreatedResponse(c *ginext.Context, data any) {
	c.JSON(201, Response{
		Status: "ok",
		Data:   data,
	})
}
