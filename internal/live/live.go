package live

import (
	"strconv"
	"strings"
	"time"

	"eventdash/internal/model"
)

// dateLayout matches the upstream event_start_date / event_date fields.
const dateLayout = "2006-01-02"

// To24Hour converts a 12-hour clock reading to a 24-hour one.
// (12, AM) -> 0, (12, PM) -> 12, any other PM hour gains 12.
func To24Hour(hour int, period string) int {
	switch strings.ToUpper(period) {
	case "PM":
		if hour != 12 {
			return hour + 12
		}
		return hour
	case "AM":
		if hour == 12 {
			return 0
		}
	}
	return hour
}

// Window composes the start and end instants of an event's live window on its
// start date, in local time. The second return is false when any time field
// does not parse.
//
// An end time numerically earlier than the start (an overnight event written
// with an early-AM end on the same calendar date) produces an empty window
// that is never live. That matches the dashboard this replaces; do not
// special-case it without a product decision.
func Window(e model.Event, loc *time.Location) (start, end time.Time, ok bool) {
	day, err := time.ParseInLocation(dateLayout, e.EventStartDate, loc)
	if err != nil {
		return time.Time{}, time.Time{}, false
	}

	startHour, err1 := strconv.Atoi(e.StartTime)
	startMin, err2 := strconv.Atoi(e.StartMinuteTime)
	endHour, err3 := strconv.Atoi(e.EndTime)
	endMin, err4 := strconv.Atoi(e.EndMinuteTime)
	if err1 != nil || err2 != nil || err3 != nil || err4 != nil {
		return time.Time{}, time.Time{}, false
	}

	start = time.Date(day.Year(), day.Month(), day.Day(),
		To24Hour(startHour, e.StartTimeType), startMin, 0, 0, loc)
	end = time.Date(day.Year(), day.Month(), day.Day(),
		To24Hour(endHour, e.EndTimeType), endMin, 0, 0, loc)
	return start, end, true
}

// IsLive reports whether now falls inside the event's window, both ends
// inclusive. Unparseable time fields make the event not live rather than an
// error; the surrounding views render a blank badge either way.
func IsLive(e model.Event, now time.Time) bool {
	start, end, ok := Window(e, now.Location())
	if !ok {
		return false
	}
	return !now.Before(start) && !now.After(end)
}

// IsUpcoming reports whether the event's start date is today or later,
// comparing calendar days (the dashboard splits upcoming/past at midnight).
func IsUpcoming(e model.Event, now time.Time) bool {
	day, err := time.ParseInLocation(dateLayout, e.EventStartDate, now.Location())
	if err != nil {
		return false
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return !day.Before(today)
}
