package out

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"jadwal/internal/modules/timetable/domain"
	timetableout "jadwal/internal/modules/timetable/port/out"
	apperrors "jadwal/internal/platform/errors"
	"jadwal/internal/platform/logging"
	"jadwal/internal/platform/markdown"
)

const defaultNoteBody = "## Catatan\n\n## Tugas\n\n## Bahan Ujian\n"

type VaultCourseStore struct {
	dir    string
	logger *slog.Logger
}

func NewVaultCourseStore(coursesDir string, logger *slog.Logger) timetableout.CourseStore {
	if logger == nil {
		logger = logging.Discard()
	}
	return &VaultCourseStore{dir: coursesDir, logger: logger}
}

func (s *VaultCourseStore) Save(_ context.Context, document domain.CourseDocument) (string, error) {
	course := document.Course
	notePath := filepath.Join(s.dir, course.Slug+".md")
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return "", fmt.Errorf("create courses directory: %w", err)
	}

	body := document.Body
	if strings.TrimSpace(body) == "" {
		if existing, err := os.ReadFile(notePath); err == nil {
			body = markdown.Body(string(existing))
		}
	}
	if strings.TrimSpace(domain.SummaryBlock.Strip(body)) == "" {
		body = defaultNoteBody
	}
	body = domain.SummaryBlock.Replace(body, summary(course))

	rendered, err := markdown.Encode(toFrontmatter(course), body)
	if err != nil {
		return "", err
	}
	if err := os.WriteFile(notePath, []byte(rendered), 0o644); err != nil {
		return "", fmt.Errorf("write course note: %w", err)
	}
	return notePath, nil
}

func (s *VaultCourseStore) FindByID(ctx context.Context, id string) (domain.CourseDocument, error) {
	docs, err := s.List(ctx)
	if err != nil {
		return domain.CourseDocument{}, err
	}
	for _, doc := range docs {
		if doc.Course.ID == id {
			return doc, nil
		}
	}
	return domain.CourseDocument{}, fmt.Errorf("course %q: %w", id, apperrors.ErrNotFound)
}

// List reads every course note. Notes with a malformed time, or plain
// markdown files without frontmatter, are skipped so one bad entry does not
// hide the rest of the schedule.
func (s *VaultCourseStore) List(_ context.Context) ([]domain.CourseDocument, error) {
	matches, err := filepath.Glob(filepath.Join(s.dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("glob course notes: %w", err)
	}
	sort.Strings(matches)

	out := make([]domain.CourseDocument, 0, len(matches))
	for _, path := range matches {
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil, fmt.Errorf("read %s: %w", path, readErr)
		}
		var meta courseFrontmatter
		body, decodeErr := markdown.Decode(string(content), &meta)
		if errors.Is(decodeErr, markdown.ErrNoFrontmatter) {
			s.logger.Debug("ignoring note without frontmatter", "path", path)
			continue
		}
		if decodeErr != nil {
			return nil, fmt.Errorf("parse %s: %w", path, decodeErr)
		}
		course, convErr := meta.course(path)
		if errors.Is(convErr, apperrors.ErrMalformedTimeFormat) {
			s.logger.Warn("skipping course note", "path", path, "error", convErr)
			continue
		}
		if convErr != nil {
			return nil, fmt.Errorf("decode course %s: %w", path, convErr)
		}
		out = append(out, domain.CourseDocument{Course: course, Body: body})
	}
	return out, nil
}

func summary(course domain.Course) string {
	lines := []string{
		fmt.Sprintf("- **Hari:** %s, %s", course.Day, course.Time.String()),
		fmt.Sprintf("- **Ruang:** %s", course.Room),
		fmt.Sprintf("- **Dosen:** %s", course.Lecturer),
		fmt.Sprintf("- **SKS:** %d (%s)", course.Credits, course.Class),
	}
	return strings.Join(lines, "\n")
}

type courseFrontmatter struct {
	SchemaVersion int    `yaml:"schema_version"`
	ID            string `yaml:"id"`
	Day           string `yaml:"day"`
	Time          string `yaml:"time"`
	Code          string `yaml:"code,omitempty"`
	Name          string `yaml:"name"`
	Credits       int    `yaml:"credits"`
	Class         string `yaml:"class,omitempty"`
	Lecturer      string `yaml:"lecturer,omitempty"`
	Room          string `yaml:"room,omitempty"`
	Faculty       string `yaml:"faculty,omitempty"`
}

func toFrontmatter(course domain.Course) courseFrontmatter {
	return courseFrontmatter{
		SchemaVersion: domain.SchemaVersion,
		ID:            course.ID,
		Day:           string(course.Day),
		Time:          course.Time.String(),
		Code:          course.Code,
		Name:          course.Name,
		Credits:       course.Credits,
		Class:         course.Class,
		Lecturer:      course.Lecturer,
		Room:          course.Room,
		Faculty:       course.Faculty,
	}
}

func (m courseFrontmatter) course(notePath string) (domain.Course, error) {
	day, err := domain.ParseDay(m.Day)
	if err != nil {
		return domain.Course{}, err
	}
	timeRange, err := domain.ParseTimeRange(m.Time)
	if err != nil {
		return domain.Course{}, err
	}
	course := domain.Course{
		ID:       m.ID,
		Day:      day,
		Time:     timeRange,
		Code:     m.Code,
		Name:     m.Name,
		Credits:  m.Credits,
		Class:    m.Class,
		Lecturer: m.Lecturer,
		Room:     m.Room,
		Faculty:  m.Faculty,
		NotePath: notePath,
	}
	course.Slug = strings.TrimSuffix(filepath.Base(notePath), filepath.Ext(notePath))
	if err := course.Validate(); err != nil {
		return domain.Course{}, err
	}
	return course, nil
}
