package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nvoss/gpacalc/internal/model"
	"github.com/nvoss/gpacalc/internal/scale"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "gpacalc.db"))
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = st.Close()
	})
	return st
}

func TestEnsureProfile(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p, err := st.EnsureProfile(ctx, model.GuestProfileName)
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.False(t, p.Premium)

	// Idempotent: a second call returns the same profile.
	again, err := st.EnsureProfile(ctx, model.GuestProfileName)
	require.NoError(t, err)
	assert.Equal(t, p.ID, again.ID)

	profiles, err := st.ListProfiles(ctx)
	require.NoError(t, err)
	assert.Len(t, profiles, 1)
}

func TestPremiumFlag(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p, err := st.EnsureProfile(ctx, "alex")
	require.NoError(t, err)

	premium, err := st.IsPremium(ctx, p.ID)
	require.NoError(t, err)
	assert.False(t, premium)

	require.NoError(t, st.SetPremium(ctx, p.ID, true))
	premium, err = st.IsPremium(ctx, p.ID)
	require.NoError(t, err)
	assert.True(t, premium)

	assert.ErrorIs(t, st.SetPremium(ctx, "missing", true), ErrNotFound)
}

func TestSemesterAndCourseRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p, err := st.EnsureProfile(ctx, "alex")
	require.NoError(t, err)

	sem, err := st.CreateSemester(ctx, p.ID, "Freshman Fall", "2025-1", scale.US)
	require.NoError(t, err)

	_, err = st.AddCourse(ctx, sem.ID, model.CourseInput{Name: "Calculus", Grade: "A-", Credits: 4})
	require.NoError(t, err)
	_, err = st.AddCourse(ctx, sem.ID, model.CourseInput{
		Name: "AP Physics", Grade: "B+", Credits: 3, Weighted: true, WeightType: "AP",
	})
	require.NoError(t, err)

	loaded, err := st.GetSemester(ctx, sem.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Courses, 2)
	assert.Equal(t, scale.US, loaded.Scale)

	// Insertion order is preserved.
	assert.Equal(t, "Calculus", loaded.Courses[0].Name)
	assert.Equal(t, "AP Physics", loaded.Courses[1].Name)
	assert.True(t, loaded.Courses[1].Weighted)
	assert.Equal(t, scale.WeightAP, loaded.Courses[1].WeightType)
}

func TestAddCourseScaleMismatch(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p, err := st.EnsureProfile(ctx, "alex")
	require.NoError(t, err)
	sem, err := st.CreateSemester(ctx, p.ID, "Semester 1", "2025-1", scale.AU)
	require.NoError(t, err)

	_, err = st.AddCourse(ctx, sem.ID, model.CourseInput{Name: "Maths", Grade: "A", Credits: 10})
	assert.ErrorIs(t, err, ErrScaleMismatch)
}

func TestListSemestersFiltersByScale(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p, err := st.EnsureProfile(ctx, "alex")
	require.NoError(t, err)

	_, err = st.CreateSemester(ctx, p.ID, "US Sem", "2025-1", scale.US)
	require.NoError(t, err)
	_, err = st.CreateSemester(ctx, p.ID, "AU Sem", "2025-1", scale.AU)
	require.NoError(t, err)

	us, err := st.ListSemesters(ctx, p.ID, scale.US)
	require.NoError(t, err)
	require.Len(t, us, 1)
	assert.Equal(t, "US Sem", us[0].Name)

	au, err := st.ListSemesters(ctx, p.ID, scale.AU)
	require.NoError(t, err)
	require.Len(t, au, 1)
	assert.Equal(t, "AU Sem", au[0].Name)
}

func TestUpdateAndDeleteCourse(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p, err := st.EnsureProfile(ctx, "alex")
	require.NoError(t, err)
	sem, err := st.CreateSemester(ctx, p.ID, "Semester 1", "2025-1", scale.US)
	require.NoError(t, err)
	c, err := st.AddCourse(ctx, sem.ID, model.CourseInput{Name: "Calculus", Grade: "B", Credits: 4})
	require.NoError(t, err)

	require.NoError(t, st.UpdateCourse(ctx, c.ID, model.CourseInput{Name: "Calculus", Grade: "A", Credits: 4}))
	loaded, err := st.GetSemester(ctx, sem.ID)
	require.NoError(t, err)
	require.Len(t, loaded.Courses, 1)
	assert.Equal(t, "A", loaded.Courses[0].Grade)

	require.NoError(t, st.DeleteCourse(ctx, c.ID))
	assert.ErrorIs(t, st.DeleteCourse(ctx, c.ID), ErrNotFound)
}

func TestDeleteSemesterRemovesCourses(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p, err := st.EnsureProfile(ctx, "alex")
	require.NoError(t, err)
	sem, err := st.CreateSemester(ctx, p.ID, "Semester 1", "2025-1", scale.US)
	require.NoError(t, err)
	c, err := st.AddCourse(ctx, sem.ID, model.CourseInput{Name: "Calculus", Grade: "A", Credits: 4})
	require.NoError(t, err)

	require.NoError(t, st.DeleteSemester(ctx, sem.ID))
	_, err = st.GetSemester(ctx, sem.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, st.DeleteCourse(ctx, c.ID), ErrNotFound)
	assert.ErrorIs(t, st.DeleteSemester(ctx, sem.ID), ErrNotFound)
}

func TestStandingRoundTrip(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p, err := st.EnsureProfile(ctx, "alex")
	require.NoError(t, err)

	// Missing row is an empty standing, not an error.
	standing, err := st.GetStanding(ctx, p.ID, scale.US)
	require.NoError(t, err)
	assert.Nil(t, standing.GPA)
	assert.Nil(t, standing.Credits)

	gpa, credits := 3.4, 60.0
	require.NoError(t, st.SaveStanding(ctx, p.ID, scale.US, model.Standing{GPA: &gpa, Credits: &credits}))
	standing, err = st.GetStanding(ctx, p.ID, scale.US)
	require.NoError(t, err)
	require.NotNil(t, standing.GPA)
	require.NotNil(t, standing.Credits)
	assert.Equal(t, 3.4, *standing.GPA)
	assert.Equal(t, 60.0, *standing.Credits)

	// Partial standing keeps the absent field NULL.
	require.NoError(t, st.SaveStanding(ctx, p.ID, scale.US, model.Standing{GPA: &gpa}))
	standing, err = st.GetStanding(ctx, p.ID, scale.US)
	require.NoError(t, err)
	require.NotNil(t, standing.GPA)
	assert.Nil(t, standing.Credits)
}

func TestPredictionCourses(t *testing.T) {
	st := openTestStore(t)
	ctx := context.Background()

	p, err := st.EnsureProfile(ctx, "alex")
	require.NoError(t, err)

	require.NoError(t, st.AddPredictionCourse(ctx, p.ID, scale.US,
		model.PredictionCourse{Name: "Algorithms", ExpectedGrade: "A", Credits: 4}))
	require.NoError(t, st.AddPredictionCourse(ctx, p.ID, scale.US,
		model.PredictionCourse{Name: "Databases", ExpectedGrade: "B+", Credits: 3}))

	courses, err := st.ListPredictionCourses(ctx, p.ID, scale.US)
	require.NoError(t, err)
	require.Len(t, courses, 2)
	assert.Equal(t, "Algorithms", courses[0].Name)

	// Scoped per scale.
	au, err := st.ListPredictionCourses(ctx, p.ID, scale.AU)
	require.NoError(t, err)
	assert.Empty(t, au)

	require.NoError(t, st.ClearPredictionCourses(ctx, p.ID, scale.US))
	courses, err = st.ListPredictionCourses(ctx, p.ID, scale.US)
	require.NoError(t, err)
	assert.Empty(t, courses)
}
