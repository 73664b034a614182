package domain

import (
	"fmt"
	"time"

	timetable "jadwal/internal/modules/timetable/domain"
)

const (
	DefaultLeadMinutes = 15
	DailyInterval      = 24 * time.Hour
)

// Session is the snapshot of a course the scheduler arms reminders for.
type Session struct {
	CourseName string
	Day        timetable.Day
	Time       timetable.TimeRange
	Room       string
}

// Reminder is one armed (or skipped) alert for today.
type Reminder struct {
	Key        string
	CourseName string
	Time       timetable.TimeRange
	Room       string
	FireAt     time.Time
}

type Notification struct {
	Title    string
	Body     string
	DedupKey string
}

func Key(courseName string, timeRange timetable.TimeRange) string {
	return "class-" + courseName + "-" + timeRange.String()
}

// Plan splits today's sessions into reminders that can still fire and ones
// whose window has already passed. A fire instant equal to now counts as
// passed.
func Plan(sessions []Session, now time.Time, leadMinutes int) (armed, skipped []Reminder) {
	today := timetable.DayOf(now.Weekday())
	lead := time.Duration(leadMinutes) * time.Minute
	for _, s := range sessions {
		if s.Day != today {
			continue
		}
		r := Reminder{
			Key:        Key(s.CourseName, s.Time),
			CourseName: s.CourseName,
			Time:       s.Time,
			Room:       s.Room,
			FireAt:     s.Time.Start.On(now).Add(-lead),
		}
		if r.FireAt.After(now) {
			armed = append(armed, r)
		} else {
			skipped = append(skipped, r)
		}
	}
	return armed, skipped
}

// NextMidnight is the start of the local calendar day after now.
func NextMidnight(now time.Time) time.Time {
	y, m, d := now.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, now.Location())
}

func Message(r Reminder, leadMinutes int) Notification {
	return Notification{
		Title:    fmt.Sprintf("Kelas %s akan dimulai", r.CourseName),
		Body:     fmt.Sprintf("Kelas akan dimulai dalam %d menit\nRuang: %s\nWaktu: %s", leadMinutes, r.Room, r.Time.String()),
		DedupKey: r.Key,
	}
}

func TestMessage(leadMinutes int) Notification {
	return Notification{
		Title:    "Notifikasi Berhasil Diaktifkan",
		Body:     fmt.Sprintf("Anda akan menerima pengingat %d menit sebelum kelas dimulai.", leadMinutes),
		DedupKey: "jadwal-test",
	}
}
