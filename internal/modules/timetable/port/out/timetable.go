package out

import (
	"context"

	"jadwal/internal/modules/timetable/domain"
)

type CourseStore interface {
	Save(ctx context.Context, document domain.CourseDocument) (string, error)
	FindByID(ctx context.Context, id string) (domain.CourseDocument, error)
	List(ctx context.Context) ([]domain.CourseDocument, error)
}

type CourseIndex interface {
	Reset(ctx context.Context) error
	Upsert(ctx context.Context, course domain.Course) error
	Count(ctx context.Context) (int, error)
	Query(ctx context.Context, filter domain.Filter) ([]string, error)
}

// SeedCatalog supplies the built-in schedule written by Seed.
type SeedCatalog interface {
	Courses() []domain.Course
}
