package model

import "time"

// EventInfo describes the festival or event a checklist is prepared for.
type EventInfo struct {
	Name      string `json:"name"`
	Date      string `json:"date"`
	Location  string `json:"location"`
	StartTime string `json:"startTime"`

	// StartDate and EndDate drive chronological sorting and range display.
	StartDate *time.Time `json:"startDate,omitempty"`
	EndDate   *time.Time `json:"endDate,omitempty"`

	ProhibitedItemsLink string `json:"prohibitedItemsLink,omitempty"`
}

// DefaultEvent is the event shown before any template is applied.
func DefaultEvent() EventInfo {
	return EventInfo{
		Name:      "My Festival",
		Date:      "TBD",
		Location:  "TBD",
		StartTime: "TBD",
	}
}

// Clone returns a copy that shares no date pointers with e.
func (e EventInfo) Clone() EventInfo {
	c := e
	if e.StartDate != nil {
		d := *e.StartDate
		c.StartDate = &d
	}
	if e.EndDate != nil {
		d := *e.EndDate
		c.EndDate = &d
	}
	return c
}

// Equal reports whether two events carry the same information.
func (e EventInfo) Equal(o EventInfo) bool {
	return e.Name == o.Name &&
		e.Date == o.Date &&
		e.Location == o.Location &&
		e.StartTime == o.StartTime &&
		e.ProhibitedItemsLink == o.ProhibitedItemsLink &&
		sameDate(e.StartDate, o.StartDate) &&
		sameDate(e.EndDate, o.EndDate)
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}

// FormatDateRange renders a compact human date range such as
// "Apr 11 - 13, 2025" or "Dec 30, 2025 - Jan 2, 2026".
func FormatDateRange(start, end *time.Time) string {
	if start == nil {
		return "Date TBD"
	}
	if end == nil || start.Equal(*end) {
		return start.Format("Jan 2, 2006")
	}
	if start.Year() == end.Year() {
		if start.Month() == end.Month() {
			return start.Format("Jan 2") + " - " + end.Format("2, 2006")
		}
		return start.Format("Jan 2") + " - " + end.Format("Jan 2, 2006")
	}
	return start.Format("Jan 2, 2006") + " - " + end.Format("Jan 2, 2006")
}
