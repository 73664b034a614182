package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"jadwal/internal/modules/timetable/domain"
	timetableout "jadwal/internal/modules/timetable/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteCourseIndex struct {
	db *sql.DB
}

func NewSQLiteCourseIndex(dbPath string) (timetableout.CourseIndex, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	index := &SQLiteCourseIndex{db: db}
	if err := index.ensureSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return index, nil
}

func (s *SQLiteCourseIndex) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS courses (
  id TEXT PRIMARY KEY,
  day TEXT NOT NULL,
  weekday INTEGER NOT NULL,
  start_minute INTEGER NOT NULL,
  end_minute INTEGER NOT NULL,
  code TEXT,
  name TEXT NOT NULL,
  credits INTEGER NOT NULL,
  class TEXT,
  lecturer TEXT,
  room TEXT,
  faculty TEXT,
  slug TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS courses_day ON courses(day);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create courses table: %w", err)
	}
	return nil
}

func (s *SQLiteCourseIndex) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM courses`); err != nil {
		return fmt.Errorf("reset courses: %w", err)
	}
	return nil
}

func (s *SQLiteCourseIndex) Upsert(ctx context.Context, course domain.Course) error {
	const stmt = `
INSERT INTO courses (id, day, weekday, start_minute, end_minute, code, name, credits, class, lecturer, room, faculty, slug)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT(id) DO UPDATE SET
  day=excluded.day,
  weekday=excluded.weekday,
  start_minute=excluded.start_minute,
  end_minute=excluded.end_minute,
  code=excluded.code,
  name=excluded.name,
  credits=excluded.credits,
  class=excluded.class,
  lecturer=excluded.lecturer,
  room=excluded.room,
  faculty=excluded.faculty,
  slug=excluded.slug;
`
	_, err := s.db.ExecContext(ctx, stmt,
		course.ID,
		string(course.Day),
		int(course.Day.Weekday()),
		course.Time.Start.Minutes(),
		course.Time.End.Minutes(),
		course.Code,
		course.Name,
		course.Credits,
		course.Class,
		course.Lecturer,
		course.Room,
		course.Faculty,
		course.Slug,
	)
	if err != nil {
		return fmt.Errorf("upsert course: %w", err)
	}
	return nil
}

func (s *SQLiteCourseIndex) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM courses`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count courses: %w", err)
	}
	return n, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *SQLiteCourseIndex) Query(ctx context.Context, filter domain.Filter) ([]string, error) {
	where := []string{}
	args := []any{}
	if filter.Day != "" {
		where = append(where, "day = ?")
		args = append(args, string(filter.Day))
	}
	if filter.Lecturer != "" {
		where = append(where, "lecturer = ?")
		args = append(args, filter.Lecturer)
	}
	if term := strings.ToLower(strings.TrimSpace(filter.Search)); term != "" {
		like := "%" + likeEscaper.Replace(term) + "%"
		where = append(where, `(lower(name) LIKE ? ESCAPE '\' OR lower(code) LIKE ? ESCAPE '\' OR lower(lecturer) LIKE ? ESCAPE '\')`)
		args = append(args, like, like, like)
	}
	query := `SELECT id FROM courses`
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += ` ORDER BY (weekday + 6) % 7, start_minute`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query courses: %w", err)
	}
	defer func() { _ = rows.Close() }()
	ids := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan course id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate courses: %w", err)
	}
	return ids, nil
}

func (s *SQLiteCourseIndex) Close() error {
	return s.db.Close()
}
