package in

import (
	"context"

	"jadwal/internal/modules/timetable/dto"
)

type Usecase interface {
	List(ctx context.Context, input dto.ListInput) ([]dto.CourseOutput, error)
	Get(ctx context.Context, id string) (dto.CourseDetailOutput, error)
	Add(ctx context.Context, input dto.AddCourseInput) (dto.CourseOutput, error)
	Seed(ctx context.Context) (dto.SeedOutput, error)
	Reindex(ctx context.Context, input dto.ReindexInput) error
	Lecturers(ctx context.Context) ([]string, error)
}
