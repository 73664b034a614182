package domain

import (
	"net/url"
	"strings"
	"time"

	timetable "jadwal/internal/modules/timetable/domain"
)

const (
	DocumentTitle   = "Jadwal Kuliah"
	DefaultFileName = "jadwal-kuliah.pdf"
	CalendarBaseURL = "https://calendar.google.com/calendar/render?action=TEMPLATE"
	WeeklyRecurRule = "RRULE:FREQ=WEEKLY;COUNT=16"

	calendarStamp = "20060102T150405Z"
)

var TableHeader = []string{"Hari", "Waktu", "Mata Kuliah", "Kode", "Ruang", "Dosen"}

// Entry is one course as exported.
type Entry struct {
	Day      timetable.Day
	Time     timetable.TimeRange
	Name     string
	Code     string
	Class    string
	Room     string
	Lecturer string
}

func (e Entry) Row() []string {
	return []string{string(e.Day), e.Time.String(), e.Name, e.Code, e.Room, e.Lecturer}
}

type Document struct {
	Title    string
	Subtitle string
	Header   []string
	Rows     [][]string
}

func NewDocument(subtitle string, entries []Entry) Document {
	doc := Document{Title: DocumentTitle, Subtitle: subtitle, Header: TableHeader, Rows: make([][]string, 0, len(entries))}
	for _, e := range entries {
		doc.Rows = append(doc.Rows, e.Row())
	}
	return doc
}

// NextOccurrence is the first date strictly after today that falls on day,
// at the given clock time. A course on today's weekday lands a week out.
func NextOccurrence(day timetable.Day, at timetable.ClockTime, now time.Time) time.Time {
	ahead := (int(day.Weekday()) - int(now.Weekday()) + 7) % 7
	if ahead == 0 {
		ahead = 7
	}
	y, m, d := now.Date()
	return time.Date(y, m, d+ahead, at.Hour, at.Minute, 0, 0, now.Location())
}

type CalendarEvent struct {
	Title    string
	Details  string
	Location string
	Start    time.Time
	End      time.Time
}

func EventFor(e Entry, now time.Time) CalendarEvent {
	start := NextOccurrence(e.Day, e.Time.Start, now)
	end := e.Time.End.On(start)
	return CalendarEvent{
		Title:    e.Name,
		Details:  "Kode: " + e.Code + "\nKelas: " + e.Class + "\nDosen: " + e.Lecturer + "\nRuang: " + e.Room,
		Location: e.Room,
		Start:    start,
		End:      end,
	}
}

// URL renders the event as a Google Calendar template link recurring
// weekly for one semester.
func (ev CalendarEvent) URL() string {
	var b strings.Builder
	b.WriteString(CalendarBaseURL)
	param := func(key, value string) {
		b.WriteString("&")
		b.WriteString(key)
		b.WriteString("=")
		b.WriteString(url.QueryEscape(value))
	}
	param("text", ev.Title)
	param("details", ev.Details)
	param("location", ev.Location)
	param("dates", ev.Start.UTC().Format(calendarStamp)+"/"+ev.End.UTC().Format(calendarStamp))
	param("recur", WeeklyRecurRule)
	return b.String()
}
