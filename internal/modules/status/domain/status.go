package domain

import (
	"fmt"
	"time"

	timetable "jadwal/internal/modules/timetable/domain"
)

// UpcomingThreshold is the lead, in minutes, at which a class of the current
// day turns from "today" into "upcoming". It is not configurable.
const UpcomingThreshold = 30

type Kind string

const (
	KindNotToday Kind = "not-today"
	KindUpcoming Kind = "upcoming"
	KindToday    Kind = "today"
	KindOngoing  Kind = "ongoing"
	KindFinished Kind = "finished"
)

type Status struct {
	Kind Kind
	// MinutesUntil is only set for KindUpcoming.
	MinutesUntil int
}

// Label is the badge text shown next to a class.
func (s Status) Label() string {
	switch s.Kind {
	case KindOngoing:
		return "Sedang Berlangsung"
	case KindUpcoming:
		return fmt.Sprintf("%d menit lagi", s.MinutesUntil)
	case KindToday:
		return "Hari Ini"
	case KindFinished:
		return "Selesai"
	default:
		return ""
	}
}

// Session is the part of a course the resolver looks at.
type Session struct {
	Day  timetable.Day
	Time timetable.TimeRange
}

// Instant is a local wall-clock reading: weekday plus minutes since midnight.
type Instant struct {
	Day    timetable.Day
	Minute int
}

func InstantOf(t time.Time) Instant {
	return Instant{Day: timetable.DayOf(t.Weekday()), Minute: t.Hour()*60 + t.Minute()}
}

// Resolve classifies a session against now. Start and end are compared
// independently as minutes of the same day, so a range that wraps past
// midnight never reads as ongoing.
func Resolve(session Session, now Instant) Status {
	if session.Day != now.Day {
		return Status{Kind: KindNotToday}
	}
	start := session.Time.Start.Minutes()
	end := session.Time.End.Minutes()
	switch {
	case now.Minute < start:
		until := start - now.Minute
		if until <= UpcomingThreshold {
			return Status{Kind: KindUpcoming, MinutesUntil: until}
		}
		return Status{Kind: KindToday}
	case now.Minute <= end:
		return Status{Kind: KindOngoing}
	default:
		return Status{Kind: KindFinished}
	}
}
