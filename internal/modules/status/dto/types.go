package dto

import (
	"time"

	timetabledto "jadwal/internal/modules/timetable/dto"
)

type BoardInput struct {
	Day      string
	Lecturer string
	Search   string
	// At overrides the clock when non-zero.
	At time.Time
}

type CourseStatus struct {
	Course       timetabledto.CourseOutput
	Kind         string
	MinutesUntil int
	Label        string
}

type TodayOutput struct {
	At      time.Time
	Day     string
	Courses []CourseStatus
	Ongoing *CourseStatus
	Next    *CourseStatus
}

type BoardOutput struct {
	At      time.Time
	Courses []CourseStatus
}
