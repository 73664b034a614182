package dto

import "jadwal/internal/modules/timetable/domain"

type ListInput struct {
	Day      string
	Lecturer string
	Search   string
}

type AddCourseInput struct {
	Day      string
	Time     string
	Code     string
	Name     string
	Credits  int
	Class    string
	Lecturer string
	Room     string
	Faculty  string
}

type ReindexInput struct{}

type CourseOutput struct {
	ID       string
	Day      domain.Day
	Time     domain.TimeRange
	Code     string
	Name     string
	Credits  int
	Class    string
	Lecturer string
	Room     string
	Faculty  string
	NotePath string
}

type CourseDetailOutput struct {
	CourseOutput
	Slug  string
	Notes string
}

type SeedOutput struct {
	Created int
	Skipped bool
}
