package service

import (
	"context"

	"jadwal/internal/modules/stats/domain"
	"jadwal/internal/modules/stats/dto"
	timetabledto "jadwal/internal/modules/timetable/dto"
	timetablein "jadwal/internal/modules/timetable/port/in"
)

type StatsService struct {
	timetable timetablein.Usecase
}

func NewStatsService(timetable timetablein.Usecase) *StatsService {
	return &StatsService{timetable: timetable}
}

func (s *StatsService) Summary(ctx context.Context) (dto.SummaryOutput, error) {
	courses, err := s.timetable.List(ctx, timetabledto.ListInput{})
	if err != nil {
		return dto.SummaryOutput{}, err
	}
	entries := make([]domain.Entry, 0, len(courses))
	for _, c := range courses {
		entries = append(entries, domain.Entry{Day: c.Day, Time: c.Time, Credits: c.Credits})
	}
	summary := domain.Compute(entries)
	out := dto.SummaryOutput{
		TotalCredits: summary.TotalCredits,
		TotalClasses: summary.TotalClasses,
		PerDay:       make([]dto.DayCount, 0, len(summary.PerDay)),
		BusiestDay:   string(summary.BusiestDay),
		AverageHours: summary.AverageHours,
		Morning:      summary.TimeOfDay.Morning,
		Afternoon:    summary.TimeOfDay.Afternoon,
		Evening:      summary.TimeOfDay.Evening,
	}
	for _, d := range summary.PerDay {
		out.PerDay = append(out.PerDay, dto.DayCount{Day: string(d.Day), Count: d.Count})
	}
	return out, nil
}
