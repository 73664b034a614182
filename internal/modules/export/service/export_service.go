package service

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"jadwal/internal/modules/export/domain"
	"jadwal/internal/modules/export/dto"
	exportout "jadwal/internal/modules/export/port/out"
	timetabledto "jadwal/internal/modules/timetable/dto"
	timetablein "jadwal/internal/modules/timetable/port/in"
	"jadwal/internal/platform/clock"
	"jadwal/internal/platform/logging"
)

type ExportDeps struct {
	Clock     clock.Clock
	Timetable timetablein.Usecase
	Renderer  exportout.PDFRenderer
	Inspector exportout.PDFInspector
	Launcher  exportout.Launcher
	Logger    *slog.Logger
	DataPath  string
	Semester  string
}

type ExportService struct {
	deps ExportDeps
}

func NewExportService(deps ExportDeps) *ExportService {
	if deps.Clock == nil {
		deps.Clock = clock.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = logging.Discard()
	}
	return &ExportService{deps: deps}
}

func (s *ExportService) PDF(ctx context.Context, input dto.PDFInput) (dto.PDFOutput, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return dto.PDFOutput{}, err
	}
	path := input.OutPath
	if path == "" {
		path = filepath.Join(s.deps.DataPath, domain.DefaultFileName)
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return dto.PDFOutput{}, fmt.Errorf("mkdir export dir: %w", err)
		}
	}
	if err := s.deps.Renderer.Render(ctx, domain.NewDocument(s.deps.Semester, entries), path); err != nil {
		return dto.PDFOutput{}, err
	}
	pages, err := s.deps.Inspector.PageCount(ctx, path)
	if err != nil {
		return dto.PDFOutput{}, fmt.Errorf("verify exported pdf: %w", err)
	}
	s.deps.Logger.Info("schedule exported", "path", path, "pages", pages, "courses", len(entries))
	return dto.PDFOutput{Path: path, Pages: pages, Courses: len(entries)}, nil
}

func (s *ExportService) Calendar(ctx context.Context, input dto.CalendarInput) (dto.CalendarOutput, error) {
	entries, err := s.entries(ctx)
	if err != nil {
		return dto.CalendarOutput{}, err
	}
	now := s.deps.Clock.Now()
	out := dto.CalendarOutput{Links: make([]dto.CalendarLink, 0, len(entries))}
	for _, e := range entries {
		link := dto.CalendarLink{CourseName: e.Name, URL: domain.EventFor(e, now).URL()}
		if input.Open && s.deps.Launcher != nil {
			if err := s.deps.Launcher.Open(ctx, link.URL); err != nil {
				link.Error = err.Error()
				s.deps.Logger.Warn("open calendar link failed", "course", e.Name, "error", err)
			} else {
				link.Opened = true
			}
		}
		out.Links = append(out.Links, link)
	}
	return out, nil
}

func (s *ExportService) entries(ctx context.Context) ([]domain.Entry, error) {
	courses, err := s.deps.Timetable.List(ctx, timetabledto.ListInput{})
	if err != nil {
		return nil, err
	}
	out := make([]domain.Entry, 0, len(courses))
	for _, c := range courses {
		out = append(out, domain.Entry{
			Day:      c.Day,
			Time:     c.Time,
			Name:     c.Name,
			Code:     c.Code,
			Class:    c.Class,
			Room:     c.Room,
			Lecturer: c.Lecturer,
		})
	}
	return out, nil
}
