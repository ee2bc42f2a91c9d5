package live

import (
	"testing"
	"time"

	"eventdash/internal/model"
)

func sampleEvent() model.Event {
	return model.Event{
		EventStartDate:  "2024-06-01",
		StartTime:       "09",
		StartMinuteTime: "00",
		StartTimeType:   "AM",
		EndTime:         "05",
		EndMinuteTime:   "00",
		EndTimeType:     "PM",
	}
}

func TestTo24Hour(t *testing.T) {
	cases := []struct {
		hour   int
		period string
		want   int
	}{
		{12, "AM", 0},
		{12, "PM", 12},
		{5, "AM", 5},
		{5, "PM", 17},
		{11, "PM", 23},
		{1, "AM", 1},
		{5, "pm", 17}, // agendas arrive lowercased sometimes
	}
	for _, c := range cases {
		if got := To24Hour(c.hour, c.period); got != c.want {
			t.Errorf("To24Hour(%d, %s) = %d, want %d", c.hour, c.period, got, c.want)
		}
	}
}

func TestIsLiveInsideWindow(t *testing.T) {
	e := sampleEvent()
	noon := time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)
	if !IsLive(e, noon) {
		t.Fatal("noon must be inside 09:00 AM - 05:00 PM")
	}
}

func TestIsLiveOutsideWindow(t *testing.T) {
	e := sampleEvent()
	evening := time.Date(2024, 6, 1, 18, 0, 0, 0, time.Local)
	if IsLive(e, evening) {
		t.Fatal("18:00 must be outside 09:00 AM - 05:00 PM")
	}
	prior := time.Date(2024, 6, 1, 8, 59, 59, 0, time.Local)
	if IsLive(e, prior) {
		t.Fatal("08:59:59 must be outside the window")
	}
}

func TestIsLiveInclusiveBounds(t *testing.T) {
	e := sampleEvent()
	start := time.Date(2024, 6, 1, 9, 0, 0, 0, time.Local)
	end := time.Date(2024, 6, 1, 17, 0, 0, 0, time.Local)
	if !IsLive(e, start) || !IsLive(e, end) {
		t.Fatal("window bounds are inclusive")
	}
}

func TestOvernightWindowNeverLive(t *testing.T) {
	// End written as an early-AM hour on the same date: the wall-clock window
	// is empty and the event is never live. Preserved behavior.
	e := sampleEvent()
	e.StartTime = "09"
	e.StartTimeType = "PM"
	e.EndTime = "02"
	e.EndTimeType = "AM"
	for _, hour := range []int{1, 10, 22, 23} {
		now := time.Date(2024, 6, 1, hour, 0, 0, 0, time.Local)
		if IsLive(e, now) {
			t.Fatalf("overnight window must be empty, live at %02d:00", hour)
		}
	}
}

func TestIsLiveBadFieldsNotLive(t *testing.T) {
	e := sampleEvent()
	e.StartTime = "nine"
	if IsLive(e, time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)) {
		t.Fatal("unparseable time fields must classify as not live")
	}
	e = sampleEvent()
	e.EventStartDate = "01/06/2024"
	if IsLive(e, time.Date(2024, 6, 1, 12, 0, 0, 0, time.Local)) {
		t.Fatal("unparseable date must classify as not live")
	}
}

func TestIsUpcoming(t *testing.T) {
	now := time.Date(2024, 6, 15, 23, 30, 0, 0, time.Local)
	e := model.Event{EventStartDate: "2024-06-15"}
	if !IsUpcoming(e, now) {
		t.Fatal("today counts as upcoming regardless of time of day")
	}
	e.EventStartDate = "2024-06-16"
	if !IsUpcoming(e, now) {
		t.Fatal("tomorrow is upcoming")
	}
	e.EventStartDate = "2024-06-14"
	if IsUpcoming(e, now) {
		t.Fatal("yesterday is past")
	}
}
