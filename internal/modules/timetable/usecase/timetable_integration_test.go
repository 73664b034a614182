package usecase_test

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	timetableout "jadwal/internal/modules/timetable/adapter/out"
	"jadwal/internal/modules/timetable/domain"
	"jadwal/internal/modules/timetable/dto"
	timetablein "jadwal/internal/modules/timetable/port/in"
	"jadwal/internal/modules/timetable/service"
	"jadwal/internal/modules/timetable/usecase"
	apperrors "jadwal/internal/platform/errors"
	"jadwal/internal/platform/id"

	_ "modernc.org/sqlite"
)

func newUsecase(t *testing.T) (timetablein.Usecase, string, string) {
	t.Helper()
	data := t.TempDir()
	coursesDir := filepath.Join(data, "courses")
	dbPath := filepath.Join(data, ".jadwal", "jadwal.db")
	index, err := timetableout.NewSQLiteCourseIndex(dbPath)
	if err != nil {
		t.Fatalf("new index: %v", err)
	}
	store := timetableout.NewVaultCourseStore(coursesDir, nil)
	svc := service.NewCourseService(id.UUID{}, store, index, timetableout.NewSampleCatalog())
	return usecase.NewInteractor(svc), coursesDir, dbPath
}

func TestSeedListFilterAndReindex(t *testing.T) {
	t.Parallel()
	uc, coursesDir, dbPath := newUsecase(t)
	ctx := context.Background()

	seeded, err := uc.Seed(ctx)
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if seeded.Created != 6 || seeded.Skipped {
		t.Fatalf("unexpected seed result: %+v", seeded)
	}
	again, err := uc.Seed(ctx)
	if err != nil {
		t.Fatalf("seed again: %v", err)
	}
	if !again.Skipped || again.Created != 0 {
		t.Fatalf("second seed should be skipped: %+v", again)
	}

	all, err := uc.List(ctx, dto.ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("expected 6 courses, got %d", len(all))
	}
	if all[0].Name != "Teori Bahasa dan Automata" || all[5].Name != "Interaksi Manusia dan Komputer" {
		t.Fatalf("unexpected schedule order: first=%s last=%s", all[0].Name, all[5].Name)
	}

	thursday, err := uc.List(ctx, dto.ListInput{Day: "thursday"})
	if err != nil {
		t.Fatalf("list thursday: %v", err)
	}
	if len(thursday) != 3 {
		t.Fatalf("expected 3 Kamis courses, got %d", len(thursday))
	}
	for i, want := range []string{"07:30-10:00", "12:30-15:00", "15:00-16:40"} {
		if thursday[i].Time.String() != want {
			t.Fatalf("thursday[%d]: expected %s, got %s", i, want, thursday[i].Time.String())
		}
	}

	search, err := uc.List(ctx, dto.ListInput{Search: "sistem"})
	if err != nil {
		t.Fatalf("search: %v", err)
	}
	if len(search) != 3 {
		t.Fatalf("expected 3 courses matching sistem, got %d", len(search))
	}

	byLecturer, err := uc.List(ctx, dto.ListInput{Lecturer: "Ir. ADI SUCIPTO, M.Kom."})
	if err != nil {
		t.Fatalf("list by lecturer: %v", err)
	}
	if len(byLecturer) != 1 || byLecturer[0].Code != "21TIF501" {
		t.Fatalf("unexpected lecturer filter result: %+v", byLecturer)
	}

	lecturers, err := uc.Lecturers(ctx)
	if err != nil {
		t.Fatalf("lecturers: %v", err)
	}
	if len(lecturers) != 6 || lecturers[0] != "NADIA ANNISA MAORI, S.Kom., M.Kom." {
		t.Fatalf("unexpected lecturers: %v", lecturers)
	}

	if err := uc.Reindex(ctx, dto.ReindexInput{}); err != nil {
		t.Fatalf("reindex: %v", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()
	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		t.Fatalf("count courses: %v", err)
	}
	if count != 6 {
		t.Fatalf("expected 6 indexed courses, got %d", count)
	}

	notes, err := filepath.Glob(filepath.Join(coursesDir, "*.md"))
	if err != nil || len(notes) != 6 {
		t.Fatalf("expected 6 course notes, got %d (%v)", len(notes), err)
	}
}

func TestAddWritesNoteAndKeepsUserBody(t *testing.T) {
	t.Parallel()
	uc, _, _ := newUsecase(t)
	ctx := context.Background()

	out, err := uc.Add(ctx, dto.AddCourseInput{
		Day:      "Jumat",
		Time:     "13:00-14:40",
		Code:     "21TIF999",
		Name:     "Kapita Selekta",
		Credits:  2,
		Class:    "5TIFA",
		Lecturer: "Dosen Tamu",
		Room:     "Ruang D201",
	})
	if err != nil {
		t.Fatalf("add: %v", err)
	}
	if out.Day != domain.Jumat || out.NotePath == "" {
		t.Fatalf("unexpected add output: %+v", out)
	}

	content, err := os.ReadFile(out.NotePath)
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	text := string(content)
	if !strings.Contains(text, domain.ManagedSummaryStart) || !strings.Contains(text, "Ruang D201") {
		t.Fatalf("managed summary missing: %s", text)
	}

	edited := strings.Replace(text, "## Catatan\n", "## Catatan\nbawa laptop\n", 1)
	if err := os.WriteFile(out.NotePath, []byte(edited), 0o644); err != nil {
		t.Fatalf("edit note: %v", err)
	}
	detail, err := uc.Get(ctx, out.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !strings.Contains(detail.Notes, "bawa laptop") {
		t.Fatalf("user notes were not preserved: %q", detail.Notes)
	}
	if detail.Time.String() != "13:00-14:40" {
		t.Fatalf("unexpected time %s", detail.Time.String())
	}
}

func TestAddRejectsBadInput(t *testing.T) {
	t.Parallel()
	uc, _, _ := newUsecase(t)
	ctx := context.Background()

	cases := []struct {
		name  string
		input dto.AddCourseInput
		want  error
	}{
		{name: "bad time", input: dto.AddCourseInput{Day: "Senin", Time: "8-10", Name: "X"}, want: apperrors.ErrMalformedTimeFormat},
		{name: "crosses midnight", input: dto.AddCourseInput{Day: "Senin", Time: "23:30-00:30", Name: "X"}, want: apperrors.ErrInvalidInput},
		{name: "bad day", input: dto.AddCourseInput{Day: "Someday", Time: "08:00-10:00", Name: "X"}, want: apperrors.ErrInvalidInput},
		{name: "missing name", input: dto.AddCourseInput{Day: "Senin", Time: "08:00-10:00"}, want: apperrors.ErrInvalidInput},
	}
	for _, tc := range cases {
		if _, err := uc.Add(ctx, tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestGetUnknownCourse(t *testing.T) {
	t.Parallel()
	uc, _, _ := newUsecase(t)
	if _, err := uc.Get(context.Background(), "missing"); !errors.Is(err, apperrors.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestListSkipsMalformedNotes(t *testing.T) {
	t.Parallel()
	uc, coursesDir, _ := newUsecase(t)
	ctx := context.Background()
	if _, err := uc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	broken := "---\nid: broken\nday: Senin\ntime: pagi\nname: Rusak\n---\n"
	if err := os.WriteFile(filepath.Join(coursesDir, "rusak.md"), []byte(broken), 0o644); err != nil {
		t.Fatalf("write broken note: %v", err)
	}
	all, err := uc.List(ctx, dto.ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 6 {
		t.Fatalf("malformed note should be skipped, got %d courses", len(all))
	}
}

func TestFilteredListFollowsEditedNotes(t *testing.T) {
	t.Parallel()
	uc, coursesDir, dbPath := newUsecase(t)
	ctx := context.Background()
	if _, err := uc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := uc.List(ctx, dto.ListInput{Day: "Selasa"}); err != nil {
		t.Fatalf("warm index: %v", err)
	}

	notes, err := filepath.Glob(filepath.Join(coursesDir, "21tif501-*.md"))
	if err != nil || len(notes) != 1 {
		t.Fatalf("expected one Metode Penelitian note, got %v (%v)", notes, err)
	}
	raw, err := os.ReadFile(notes[0])
	if err != nil {
		t.Fatalf("read note: %v", err)
	}
	edited := strings.Replace(string(raw), "day: Selasa", "day: Minggu", 1)
	if edited == string(raw) {
		t.Fatalf("note has no day line to edit:\n%s", raw)
	}
	if err := os.WriteFile(notes[0], []byte(edited), 0o644); err != nil {
		t.Fatalf("write note: %v", err)
	}

	sunday, err := uc.List(ctx, dto.ListInput{Day: "Minggu"})
	if err != nil {
		t.Fatalf("list minggu: %v", err)
	}
	if len(sunday) != 1 || sunday[0].Code != "21TIF501" {
		t.Fatalf("edited course missing from its new day: %+v", sunday)
	}
	tuesday, err := uc.List(ctx, dto.ListInput{Day: "Selasa"})
	if err != nil {
		t.Fatalf("list selasa: %v", err)
	}
	for _, c := range tuesday {
		if c.Code == "21TIF501" {
			t.Fatalf("edited course still listed on its old day")
		}
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	defer func() { _ = db.Close() }()
	var day string
	if err := db.QueryRow(`SELECT day FROM courses WHERE code = ?`, "21TIF501").Scan(&day); err != nil {
		t.Fatalf("read indexed day: %v", err)
	}
	if day != "Minggu" {
		t.Fatalf("index should be rebuilt after the edit, still has %s", day)
	}
}

func TestSearchTreatsWildcardsLiterally(t *testing.T) {
	t.Parallel()
	uc, _, _ := newUsecase(t)
	ctx := context.Background()
	if _, err := uc.Seed(ctx); err != nil {
		t.Fatalf("seed: %v", err)
	}
	for _, term := range []string{"_", "%", `\`} {
		got, err := uc.List(ctx, dto.ListInput{Search: term})
		if err != nil {
			t.Fatalf("search %q: %v", term, err)
		}
		if len(got) != 0 {
			t.Fatalf("search %q should match nothing, got %d courses", term, len(got))
		}
	}
}
