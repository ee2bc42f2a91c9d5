package model

// Attendee role values as the upstream API reports them.
const (
	RoleSpeaker   = "speaker"
	RolePanelist  = "panelist"
	RoleSponsor   = "sponsor"
	RoleDelegate  = "delegate"
	RoleModerator = "moderator"
)

// Invitation request states on a pending attendee.
const (
	InvitationPending     = 0
	InvitationApproved    = 1
	InvitationDisapproved = 2
)

type Event struct {
	ID                 int    `json:"id"`
	UUID               string `json:"uuid"`
	Slug               string `json:"slug"`
	Title              string `json:"title"`
	Description        string `json:"description"`
	Image              string `json:"image"`
	QRCode             string `json:"qr_code"`
	EventStartDate     string `json:"event_start_date"`
	EventEndDate       string `json:"event_end_date"`
	StartTime          string `json:"start_time"`
	StartMinuteTime    string `json:"start_minute_time"`
	StartTimeType      string `json:"start_time_type"`
	EndTime            string `json:"end_time"`
	EndMinuteTime      string `json:"end_minute_time"`
	EndTimeType        string `json:"end_time_type"`
	EventVenueName     string `json:"event_venue_name"`
	EventVenueAddress1 string `json:"event_venue_address_1"`
	City               string `json:"city"`
	State              string `json:"state"`
	Country            string `json:"country"`
	Pincode            string `json:"pincode"`
	GoogleMapLink      string `json:"google_map_link"`
	VideoURL           string `json:"video_url"`
	CompanyName        string `json:"company_name"`
	PaidEvent          bool   `json:"paid_event"`
	EventFee           string `json:"event_fee"`
	PrinterCount       int    `json:"printer_count"`
	ViewAgendaBy       int    `json:"view_agenda_by"`
	EventOTP           string `json:"event_otp"`
	CreatedAt          string `json:"created_at"`
	UpdatedAt          string `json:"updated_at"`
}

type Attendee struct {
	ID                    int    `json:"id"`
	UUID                  string `json:"uuid"`
	EventID               int    `json:"event_id"`
	UserID                int    `json:"user_id"`
	FirstName             string `json:"first_name"`
	LastName              string `json:"last_name"`
	EmailID               string `json:"email_id"`
	AlternateEmail        string `json:"alternate_email"`
	PhoneNumber           string `json:"phone_number"`
	AlternateMobileNumber string `json:"alternate_mobile_number"`
	CompanyName           string `json:"company_name"`
	JobTitle              string `json:"job_title"`
	Industry              string `json:"industry"`
	Website               string `json:"website"`
	LinkedinPageLink      string `json:"linkedin_page_link"`
	EmployeeSize          string `json:"employee_size"`
	CompanyTurnOver       string `json:"company_turn_over"`
	Status                string `json:"status"`
	UserInvitationRequest int    `json:"user_invitation_request"`
	ProfileCompleted      int    `json:"profile_completed"`
	NotInvited            bool   `json:"not_invited"`
	Image                 string `json:"image"`
	EventName             string `json:"event_name"`

	CheckIn         int    `json:"check_in"`
	CheckInTime     string `json:"check_in_time"`
	CheckInSecond   int    `json:"check_in_second"`
	CheckInSecondAt string `json:"check_in_second_time"`
	CheckInThird    int    `json:"check_in_third"`
	CheckInThirdAt  string `json:"check_in_third_time"`
	CheckInForth    int    `json:"check_in_forth"`
	CheckInForthAt  string `json:"check_in_forth_time"`
	CheckInFifth    int    `json:"check_in_fifth"`
	CheckInFifthAt  string `json:"check_in_fifth_time"`

	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

type Agenda struct {
	ID              int        `json:"id"`
	UUID            string     `json:"uuid"`
	EventID         int        `json:"event_id"`
	Title           string     `json:"title"`
	Description     string     `json:"description"`
	EventDate       string     `json:"event_date"`
	StartTime       string     `json:"start_time"`
	StartMinuteTime string     `json:"start_minute_time"`
	StartTimeType   string     `json:"start_time_type"`
	EndTime         string     `json:"end_time"`
	EndMinuteTime   string     `json:"end_minute_time"`
	EndTimeType     string     `json:"end_time_type"`
	ImagePath       string     `json:"image_path"`
	Position        int        `json:"position"`
	Speakers        []Attendee `json:"speakers"`
	CreatedAt       string     `json:"created_at"`
	UpdatedAt       string     `json:"updated_at"`
}

// User is the authenticated organizer account.
type User struct {
	ID           int    `json:"id"`
	UUID         string `json:"uuid"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Email        string `json:"email"`
	MobileNumber string `json:"mobile_number"`
	Company      string `json:"company"`
	CompanyName  string `json:"company_name"`
	Designation  string `json:"designation"`
	Image        string `json:"image"`
}

// ReferenceItem is one row of a reference list (job titles, companies,
// industries) backing the attendee dropdowns.
type ReferenceItem struct {
	ID       int    `json:"id"`
	UUID     string `json:"uuid"`
	Name     string `json:"name"`
	ParentID int    `json:"parent_id"`
}

// WhatsAppMessage is the delivery record attached to a receipt.
type WhatsAppMessage struct {
	ID                  string `json:"_id"`
	CustomerPhoneNumber string `json:"customerPhoneNumber"`
	MessageStatus       string `json:"messageStatus"`
	Timestamp           string `json:"timestamp"`
}

// WhatsAppReceipt is one sent-template receipt from the WhatsApp report feed.
// Message is nil when the provider never produced a delivery record.
type WhatsAppReceipt struct {
	ID           string           `json:"_id"`
	EventUUID    string           `json:"eventUUID"`
	UserID       string           `json:"userID"`
	FirstName    string           `json:"firstName"`
	TemplateName string           `json:"templateName"`
	Message      *WhatsAppMessage `json:"messageID"`
}
