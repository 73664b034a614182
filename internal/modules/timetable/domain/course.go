package domain

import (
	"fmt"
	"sort"
	"strings"

	"jadwal/internal/platform/markdown"
)

const (
	ManagedSummaryStart = "<!-- jadwal:summary:start -->"
	ManagedSummaryEnd   = "<!-- jadwal:summary:end -->"
	SchemaVersion       = 1
)

// SummaryBlock is the generated part of a course note.
var SummaryBlock = markdown.Block{Start: ManagedSummaryStart, End: ManagedSummaryEnd}

// Course is one weekly class meeting.
type Course struct {
	ID       string
	Day      Day
	Time     TimeRange
	Code     string
	Name     string
	Credits  int
	Class    string
	Lecturer string
	Room     string
	Faculty  string
	Slug     string
	NotePath string
}

func (c Course) Validate() error {
	if strings.TrimSpace(c.ID) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("name is required")
	}
	if err := c.Day.Validate(); err != nil {
		return err
	}
	if c.Credits < 0 {
		return fmt.Errorf("credits must be non-negative, got %d", c.Credits)
	}
	return nil
}

type CourseDocument struct {
	Course Course
	Body   string
}

// Filter narrows a schedule. Zero fields match everything.
type Filter struct {
	Day      Day
	Lecturer string
	Search   string
}

func (f Filter) IsZero() bool {
	return f.Day == "" && f.Lecturer == "" && strings.TrimSpace(f.Search) == ""
}

func (f Filter) Matches(c Course) bool {
	if f.Day != "" && c.Day != f.Day {
		return false
	}
	if f.Lecturer != "" && c.Lecturer != f.Lecturer {
		return false
	}
	term := strings.ToLower(strings.TrimSpace(f.Search))
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(c.Name), term) ||
		strings.Contains(strings.ToLower(c.Code), term) ||
		strings.Contains(strings.ToLower(c.Lecturer), term)
}

// SortSchedule orders courses Monday first, then by start time.
func SortSchedule(courses []Course) {
	sort.SliceStable(courses, func(i, j int) bool {
		di, dj := dayRank(courses[i].Day), dayRank(courses[j].Day)
		if di != dj {
			return di < dj
		}
		return courses[i].Time.Start.Minutes() < courses[j].Time.Start.Minutes()
	})
}

func dayRank(d Day) int {
	return (int(d.Weekday()) + 6) % 7
}
