package out_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	timetableadapter "jadwal/internal/modules/timetable/adapter/out"
	"jadwal/internal/modules/timetable/domain"
)

func TestSQLiteCourseIndexQueryAgreesWithFilterMatches(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	index, err := timetableadapter.NewSQLiteCourseIndex(filepath.Join(t.TempDir(), "jadwal.db"))
	require.NoError(t, err)

	courses := timetableadapter.NewSampleCatalog().Courses()
	courses = append(courses, domain.Course{
		ID:   "x",
		Day:  domain.Senin,
		Time: domain.MustParseTimeRange("08:00-09:40"),
		Code: "LAB_01",
		Name: "Praktikum 100% Daring",
	})
	for _, c := range courses {
		require.NoError(t, index.Upsert(ctx, c))
	}

	filters := []domain.Filter{
		{Search: "_"},
		{Search: "%"},
		{Search: "100%"},
		{Search: "lab_"},
		{Search: "sistem"},
		{Day: domain.Kamis},
		{Day: domain.Senin, Search: "daring"},
	}
	for _, f := range filters {
		ids, err := index.Query(ctx, f)
		require.NoError(t, err)
		var want []string
		for _, c := range courses {
			if f.Matches(c) {
				want = append(want, c.ID)
			}
		}
		assert.ElementsMatch(t, want, ids, "filter %+v", f)
	}
}
