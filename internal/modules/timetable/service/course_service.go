package service

import (
	"context"
	"fmt"
	"strings"

	"jadwal/internal/modules/timetable/domain"
	timetableout "jadwal/internal/modules/timetable/port/out"
	apperrors "jadwal/internal/platform/errors"
	"jadwal/internal/platform/id"
	"jadwal/internal/platform/slug"
)

type CourseService struct {
	idGen   id.Generator
	store   timetableout.CourseStore
	index   timetableout.CourseIndex
	catalog timetableout.SeedCatalog
}

func NewCourseService(idGen id.Generator, store timetableout.CourseStore, index timetableout.CourseIndex, catalog timetableout.SeedCatalog) *CourseService {
	return &CourseService{idGen: idGen, store: store, index: index, catalog: catalog}
}

type AddParams struct {
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

func (s *CourseService) Add(ctx context.Context, params AddParams) (domain.Course, error) {
	day, err := domain.ParseDay(params.Day)
	if err != nil {
		return domain.Course{}, err
	}
	timeRange, err := domain.ParseTimeRange(params.Time)
	if err != nil {
		return domain.Course{}, err
	}
	if err := timeRange.Validate(); err != nil {
		return domain.Course{}, err
	}
	course := domain.Course{
		ID:       s.idGen.New(),
		Day:      day,
		Time:     timeRange,
		Code:     strings.TrimSpace(params.Code),
		Name:     strings.TrimSpace(params.Name),
		Credits:  params.Credits,
		Class:    strings.TrimSpace(params.Class),
		Lecturer: strings.TrimSpace(params.Lecturer),
		Room:     strings.TrimSpace(params.Room),
		Faculty:  strings.TrimSpace(params.Faculty),
	}
	course.Slug = courseSlug(course)
	if err := course.Validate(); err != nil {
		return domain.Course{}, fmt.Errorf("%w: %v", apperrors.ErrInvalidInput, err)
	}
	return s.save(ctx, course)
}

// Seed writes the built-in schedule when no course notes exist yet.
func (s *CourseService) Seed(ctx context.Context) (int, bool, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return 0, false, err
	}
	if len(docs) > 0 {
		return 0, true, nil
	}
	created := 0
	for _, course := range s.catalog.Courses() {
		if course.Slug == "" {
			course.Slug = courseSlug(course)
		}
		if _, err := s.save(ctx, course); err != nil {
			return created, false, err
		}
		created++
	}
	return created, false, nil
}

func (s *CourseService) save(ctx context.Context, course domain.Course) (domain.Course, error) {
	path, err := s.store.Save(ctx, domain.CourseDocument{Course: course})
	if err != nil {
		return domain.Course{}, err
	}
	course.NotePath = path
	if err := s.index.Upsert(ctx, course); err != nil {
		return domain.Course{}, err
	}
	return course, nil
}

// List returns the schedule in display order. Filtered reads go through the
// index; Filter.Matches over the notes on disk is the rule, and the index is
// rebuilt whenever it answers differently.
func (s *CourseService) List(ctx context.Context, filter domain.Filter) ([]domain.Course, error) {
	docs, err := s.store.List(ctx)
	if err != nil {
		return nil, err
	}
	courses := make([]domain.Course, 0, len(docs))
	for _, doc := range docs {
		courses = append(courses, doc.Course)
	}
	domain.SortSchedule(courses)
	if filter.IsZero() {
		return courses, nil
	}

	out := make([]domain.Course, 0, len(courses))
	want := make(map[string]struct{}, len(courses))
	for _, course := range courses {
		if filter.Matches(course) {
			out = append(out, course)
			want[course.ID] = struct{}{}
		}
	}

	fresh, err := s.indexAgrees(ctx, filter, len(courses), want)
	if err != nil {
		return nil, err
	}
	if !fresh {
		if err := s.reindex(ctx, courses); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *CourseService) indexAgrees(ctx context.Context, filter domain.Filter, total int, want map[string]struct{}) (bool, error) {
	indexed, err := s.index.Count(ctx)
	if err != nil {
		return false, err
	}
	if indexed != total {
		return false, nil
	}
	ids, err := s.index.Query(ctx, filter)
	if err != nil {
		return false, err
	}
	if len(ids) != len(want) {
		return false, nil
	}
	for _, id := range ids {
		if _, ok := want[id]; !ok {
			return false, nil
		}
	}
	return true, nil
}

func (s *CourseService) Get(ctx context.Context, courseID string) (domain.CourseDocument, error) {
	return s.store.FindByID(ctx, courseID)
}

func (s *CourseService) Reindex(ctx context.Context) error {
	docs, err := s.store.List(ctx)
	if err != nil {
		return err
	}
	courses := make([]domain.Course, 0, len(docs))
	for _, doc := range docs {
		courses = append(courses, doc.Course)
	}
	return s.reindex(ctx, courses)
}

func (s *CourseService) reindex(ctx context.Context, courses []domain.Course) error {
	if err := s.index.Reset(ctx); err != nil {
		return err
	}
	for _, course := range courses {
		if err := s.index.Upsert(ctx, course); err != nil {
			return err
		}
	}
	return nil
}

// Lecturers lists distinct lecturers in schedule order.
func (s *CourseService) Lecturers(ctx context.Context) ([]string, error) {
	courses, err := s.List(ctx, domain.Filter{})
	if err != nil {
		return nil, err
	}
	seen := map[string]struct{}{}
	out := []string{}
	for _, course := range courses {
		if course.Lecturer == "" {
			continue
		}
		if _, ok := seen[course.Lecturer]; ok {
			continue
		}
		seen[course.Lecturer] = struct{}{}
		out = append(out, course.Lecturer)
	}
	return out, nil
}

func courseSlug(course domain.Course) string {
	return slug.Make(course.Code, course.Name, course.Class)
}
