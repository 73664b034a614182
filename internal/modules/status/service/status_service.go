package service

import (
	"context"
	"time"

	"jadwal/internal/modules/status/domain"
	"jadwal/internal/modules/status/dto"
	timetabledto "jadwal/internal/modules/timetable/dto"
	timetablein "jadwal/internal/modules/timetable/port/in"
	"jadwal/internal/platform/clock"
)

type StatusService struct {
	clock     clock.Clock
	timetable timetablein.Usecase
}

func NewStatusService(clock clock.Clock, timetable timetablein.Usecase) *StatusService {
	return &StatusService{clock: clock, timetable: timetable}
}

func (s *StatusService) now(at time.Time) time.Time {
	if at.IsZero() {
		return s.clock.Now()
	}
	return at
}

func (s *StatusService) Today(ctx context.Context, at time.Time) (dto.TodayOutput, error) {
	now := s.now(at)
	instant := domain.InstantOf(now)
	courses, err := s.timetable.List(ctx, timetabledto.ListInput{Day: string(instant.Day)})
	if err != nil {
		return dto.TodayOutput{}, err
	}
	out := dto.TodayOutput{At: now, Day: string(instant.Day), Courses: resolveAll(courses, instant)}
	for i := range out.Courses {
		entry := &out.Courses[i]
		switch domain.Kind(entry.Kind) {
		case domain.KindOngoing:
			if out.Ongoing == nil {
				out.Ongoing = entry
			}
		case domain.KindUpcoming, domain.KindToday:
			if out.Next == nil {
				out.Next = entry
			}
		}
	}
	return out, nil
}

func (s *StatusService) Board(ctx context.Context, input dto.BoardInput) (dto.BoardOutput, error) {
	now := s.now(input.At)
	courses, err := s.timetable.List(ctx, timetabledto.ListInput{Day: input.Day, Lecturer: input.Lecturer, Search: input.Search})
	if err != nil {
		return dto.BoardOutput{}, err
	}
	return dto.BoardOutput{At: now, Courses: resolveAll(courses, domain.InstantOf(now))}, nil
}

func resolveAll(courses []timetabledto.CourseOutput, now domain.Instant) []dto.CourseStatus {
	out := make([]dto.CourseStatus, 0, len(courses))
	for _, course := range courses {
		status := domain.Resolve(domain.Session{Day: course.Day, Time: course.Time}, now)
		out = append(out, dto.CourseStatus{
			Course:       course,
			Kind:         string(status.Kind),
			MinutesUntil: status.MinutesUntil,
			Label:        status.Label(),
		})
	}
	return out
}
