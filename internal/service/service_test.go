package service

import (
	"testing"

	"eventdash/internal/dto"
	"eventdash/internal/model"
)

func TestResolveReference(t *testing.T) {
	list := []model.ReferenceItem{{Name: "Engineering"}, {Name: "Finance"}}

	selected, custom := resolveReference("Finance", list)
	if selected != "Finance" || custom != "" {
		t.Errorf("known value: got (%q, %q)", selected, custom)
	}

	selected, custom = resolveReference("Basket Weaving", list)
	if selected != othersSentinel {
		t.Errorf("unknown value should select %q, got %q", othersSentinel, selected)
	}
	if custom != "Basket Weaving" {
		t.Errorf("unknown value must be preserved in custom field, got %q", custom)
	}

	selected, custom = resolveReference("", list)
	if selected != "" || custom != "" {
		t.Errorf("empty value: got (%q, %q)", selected, custom)
	}
}

func TestPickCustom(t *testing.T) {
	if got := pickCustom("Finance", "ignored"); got != "Finance" {
		t.Errorf("regular selection: got %q", got)
	}
	if got := pickCustom(othersSentinel, "Basket Weaving"); got != "Basket Weaving" {
		t.Errorf("others with custom: got %q", got)
	}
	if got := pickCustom(othersSentinel, ""); got != othersSentinel {
		t.Errorf("others without custom: got %q", got)
	}
}

func TestEventFormValues(t *testing.T) {
	req := dto.UpdateEventRequest{
		Title:         "Tech Summit",
		StartTime:     "9",
		StartTimeType: "AM",
		PaidEvent:     true,
		PrinterCount:  3,
	}
	values := eventFormValues(req)

	if got := values.Get("title"); got != "Tech Summit" {
		t.Errorf("title: got %q", got)
	}
	if got := values.Get("paid_event"); got != "1" {
		t.Errorf("paid_event: got %q, want \"1\"", got)
	}
	if got := values.Get("printer_count"); got != "3" {
		t.Errorf("printer_count: got %q", got)
	}

	req.PaidEvent = false
	if got := eventFormValues(req).Get("paid_event"); got != "0" {
		t.Errorf("unpaid event: got %q, want \"0\"", got)
	}
}

func TestAttendeeViewFilterChangeResetsPage(t *testing.T) {
	items := make([]model.Attendee, 30)
	for i := range items {
		items[i] = model.Attendee{FirstName: "Asha", EmailID: "a@example.com"}
	}
	items[29].FirstName = "Ravi"

	v := newAttendeeView()
	v.apply("", "", "", "", 0, 3)
	if got := v.render(items); got.Page != 3 {
		t.Fatalf("page jump: got page %d, want 3", got.Page)
	}

	// A filter change lands back on page 1 even when the request still
	// carries the old page number.
	v.apply("Asha", "", "", "", 0, 3)
	res := v.render(items)
	if res.Page != 1 {
		t.Errorf("filter change: got page %d, want 1", res.Page)
	}
	if res.TotalItems != 29 {
		t.Errorf("filter: got %d items, want 29", res.TotalItems)
	}

	v.apply("Asha", "", "", "", 0, 2)
	if got := v.render(items); got.Page != 2 {
		t.Errorf("paging within unchanged filters: got page %d, want 2", got.Page)
	}

	v.apply("Asha", "", "", "", 25, 0)
	res = v.render(items)
	if res.Page != 1 {
		t.Errorf("page-size change: got page %d, want 1", res.Page)
	}
	if len(res.PageItems) != 25 {
		t.Errorf("page size: got %d items on page, want 25", len(res.PageItems))
	}
}

func TestReceiptStatus(t *testing.T) {
	if got := receiptStatus(model.WhatsAppReceipt{}); got != "" {
		t.Errorf("nil message: got %q", got)
	}
	r := model.WhatsAppReceipt{Message: &model.WhatsAppMessage{MessageStatus: "Read"}}
	if got := receiptStatus(r); got != "Read" {
		t.Errorf("got %q", got)
	}
}
