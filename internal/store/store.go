// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/nvoss/gpacalc/internal/model"
	"github.com/nvoss/gpacalc/internal/scale"

	_ "modernc.org/sqlite" // SQLite driver.
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("not found")

// ErrScaleMismatch is returned when a course is added to a semester of a
// different grading scale.
var ErrScaleMismatch = errors.New("course scale does not match semester scale")

// Store wraps SQLite access for profiles, semesters, courses, and
// prediction data.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS profiles (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			premium INTEGER NOT NULL DEFAULT 0,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS semesters (
			id TEXT PRIMARY KEY,
			profile_id TEXT NOT NULL,
			name TEXT NOT NULL,
			term TEXT NOT NULL,
			scale TEXT NOT NULL,
			position INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS courses (
			id TEXT PRIMARY KEY,
			semester_id TEXT NOT NULL,
			name TEXT NOT NULL,
			grade TEXT NOT NULL,
			credits REAL NOT NULL,
			weighted INTEGER NOT NULL DEFAULT 0,
			weight_type TEXT NOT NULL DEFAULT '',
			position INTEGER NOT NULL,
			created_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS standings (
			profile_id TEXT NOT NULL,
			scale TEXT NOT NULL,
			gpa REAL,
			credits REAL,
			PRIMARY KEY (profile_id, scale)
		);`,
		`CREATE TABLE IF NOT EXISTS prediction_courses (
			id TEXT PRIMARY KEY,
			profile_id TEXT NOT NULL,
			scale TEXT NOT NULL,
			name TEXT NOT NULL,
			expected_grade TEXT NOT NULL,
			credits REAL NOT NULL,
			position INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_semesters_profile ON semesters(profile_id, scale, position);`,
		`CREATE INDEX IF NOT EXISTS idx_courses_semester ON courses(semester_id, position);`,
		`CREATE INDEX IF NOT EXISTS idx_prediction_profile ON prediction_courses(profile_id, scale, position);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// EnsureProfile returns the profile with the given name, creating it if
// it does not exist yet.
func (s *Store) EnsureProfile(ctx context.Context, name string) (model.Profile, error) {
	p, err := s.GetProfile(ctx, name)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return model.Profile{}, err
	}
	p = model.Profile{
		ID:        uuid.NewString(),
		Name:      name,
		CreatedAt: time.Now().UTC(),
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO profiles (id, name, premium, created_at) VALUES (?, ?, 0, ?)`,
		p.ID, p.Name, p.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.Profile{}, fmt.Errorf("failed to create profile: %w", err)
	}
	return p, nil
}

// GetProfile looks up a profile by name.
func (s *Store) GetProfile(ctx context.Context, name string) (model.Profile, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, premium, created_at FROM profiles WHERE name = ?`, name)
	return scanProfile(row)
}

// ListProfiles returns all profiles in creation order.
func (s *Store) ListProfiles(ctx context.Context) ([]model.Profile, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, premium, created_at FROM profiles ORDER BY created_at ASC`)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var profiles []model.Profile
	for rows.Next() {
		p, err := scanProfile(rows)
		if err != nil {
			return nil, err
		}
		profiles = append(profiles, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return profiles, nil
}

// SetPremium flips the premium entitlement flag for a profile.
func (s *Store) SetPremium(ctx context.Context, profileID string, premium bool) error {
	res, err := s.db.ExecContext(ctx,
		`UPDATE profiles SET premium = ? WHERE id = ?`, boolToInt(premium), profileID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// IsPremium reports the stored entitlement flag for a profile.
func (s *Store) IsPremium(ctx context.Context, profileID string) (bool, error) {
	var premium int
	err := s.db.QueryRowContext(ctx,
		`SELECT premium FROM profiles WHERE id = ?`, profileID).Scan(&premium)
	if errors.Is(err, sql.ErrNoRows) {
		return false, ErrNotFound
	}
	if err != nil {
		return false, err
	}
	return premium != 0, nil
}

// CreateSemester stores a new semester for a profile. The scale is fixed
// here and every course added later must match it.
func (s *Store) CreateSemester(ctx context.Context, profileID, name, term string, sc scale.Scale) (model.Semester, error) {
	sem := model.Semester{
		ID:        uuid.NewString(),
		Name:      name,
		Term:      term,
		Scale:     sc,
		CreatedAt: time.Now().UTC(),
	}
	pos, err := s.nextPosition(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM semesters WHERE profile_id = ?`, profileID)
	if err != nil {
		return model.Semester{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO semesters (id, profile_id, name, term, scale, position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		sem.ID, profileID, sem.Name, sem.Term, sem.Scale.String(), pos,
		sem.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.Semester{}, fmt.Errorf("failed to create semester: %w", err)
	}
	return sem, nil
}

// GetSemester loads one semester with its courses.
func (s *Store) GetSemester(ctx context.Context, semesterID string) (model.Semester, error) {
	row := s.db.QueryRowContext(ctx,
		`SELECT id, name, term, scale, created_at FROM semesters WHERE id = ?`, semesterID)
	sem, err := scanSemester(row)
	if err != nil {
		return model.Semester{}, err
	}
	courses, err := s.listCourses(ctx, sem.ID)
	if err != nil {
		return model.Semester{}, err
	}
	sem.Courses = courses
	return sem, nil
}

// ListSemesters returns a profile's semesters of one scale, in insertion
// order, each populated with its courses. Loading a single scale at a
// time keeps cumulative aggregation well defined.
func (s *Store) ListSemesters(ctx context.Context, profileID string, sc scale.Scale) ([]model.Semester, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, term, scale, created_at FROM semesters
		 WHERE profile_id = ? AND scale = ?
		 ORDER BY position ASC`, profileID, sc.String())
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var semesters []model.Semester
	for rows.Next() {
		sem, err := scanSemester(rows)
		if err != nil {
			return nil, err
		}
		semesters = append(semesters, sem)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	for i := range semesters {
		courses, err := s.listCourses(ctx, semesters[i].ID)
		if err != nil {
			return nil, err
		}
		semesters[i].Courses = courses
	}
	return semesters, nil
}

// DeleteSemester removes a semester and its courses.
func (s *Store) DeleteSemester(ctx context.Context, semesterID string) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	if _, err = tx.ExecContext(ctx, `DELETE FROM courses WHERE semester_id = ?`, semesterID); err != nil {
		return err
	}
	var res sql.Result
	res, err = tx.ExecContext(ctx, `DELETE FROM semesters WHERE id = ?`, semesterID)
	if err != nil {
		return err
	}
	var n int64
	n, err = res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		err = ErrNotFound
		return err
	}
	return tx.Commit()
}

// AddCourse stores a new course under a semester, rejecting grades that
// do not belong to the semester's scale.
func (s *Store) AddCourse(ctx context.Context, semesterID string, in model.CourseInput) (model.Course, error) {
	sem, err := s.GetSemester(ctx, semesterID)
	if err != nil {
		return model.Course{}, err
	}
	if !scale.ValidGrade(sem.Scale, in.Grade) {
		return model.Course{}, ErrScaleMismatch
	}
	wt, ok := scale.ParseWeightType(in.WeightType)
	if !ok {
		return model.Course{}, fmt.Errorf("unknown weight type %q", in.WeightType)
	}
	c := model.Course{
		ID:         uuid.NewString(),
		Name:       in.Name,
		Grade:      in.Grade,
		Credits:    in.Credits,
		Weighted:   in.Weighted,
		WeightType: wt,
		CreatedAt:  time.Now().UTC(),
	}
	pos, err := s.nextPosition(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM courses WHERE semester_id = ?`, semesterID)
	if err != nil {
		return model.Course{}, err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO courses (id, semester_id, name, grade, credits, weighted, weight_type, position, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		c.ID, semesterID, c.Name, c.Grade, c.Credits, boolToInt(c.Weighted),
		string(c.WeightType), pos, c.CreatedAt.Format(time.RFC3339Nano))
	if err != nil {
		return model.Course{}, fmt.Errorf("failed to add course: %w", err)
	}
	return c, nil
}

// UpdateCourse replaces the mutable fields of a course. Mutation is by
// whole replacement, not partial patch.
func (s *Store) UpdateCourse(ctx context.Context, courseID string, in model.CourseInput) error {
	wt, ok := scale.ParseWeightType(in.WeightType)
	if !ok {
		return fmt.Errorf("unknown weight type %q", in.WeightType)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE courses SET name = ?, grade = ?, credits = ?, weighted = ?, weight_type = ?
		 WHERE id = ?`,
		in.Name, in.Grade, in.Credits, boolToInt(in.Weighted), string(wt), courseID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteCourse removes a course by id.
func (s *Store) DeleteCourse(ctx context.Context, courseID string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM courses WHERE id = ?`, courseID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *Store) listCourses(ctx context.Context, semesterID string) ([]model.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, grade, credits, weighted, weight_type, created_at
		 FROM courses WHERE semester_id = ? ORDER BY position ASC`, semesterID)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var courses []model.Course
	for rows.Next() {
		var c model.Course
		var weighted int
		var wt, createdAt string
		if err := rows.Scan(&c.ID, &c.Name, &c.Grade, &c.Credits, &weighted, &wt, &createdAt); err != nil {
			return nil, err
		}
		c.Weighted = weighted != 0
		c.WeightType = scale.WeightType(wt)
		parsed, err := time.Parse(time.RFC3339Nano, createdAt)
		if err != nil {
			return nil, err
		}
		c.CreatedAt = parsed
		courses = append(courses, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

// SaveStanding upserts the current-GPA baseline for a profile and scale.
// Nil fields are stored as NULL and come back as nil.
func (s *Store) SaveStanding(ctx context.Context, profileID string, sc scale.Scale, st model.Standing) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO standings (profile_id, scale, gpa, credits) VALUES (?, ?, ?, ?)
		 ON CONFLICT(profile_id, scale) DO UPDATE SET gpa = excluded.gpa, credits = excluded.credits`,
		profileID, sc.String(), nullFloat(st.GPA), nullFloat(st.Credits))
	if err != nil {
		return fmt.Errorf("failed to save standing: %w", err)
	}
	return nil
}

// GetStanding loads the stored baseline. A missing row is an empty
// standing, not an error.
func (s *Store) GetStanding(ctx context.Context, profileID string, sc scale.Scale) (model.Standing, error) {
	var gpa, credits sql.NullFloat64
	err := s.db.QueryRowContext(ctx,
		`SELECT gpa, credits FROM standings WHERE profile_id = ? AND scale = ?`,
		profileID, sc.String()).Scan(&gpa, &credits)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Standing{}, nil
	}
	if err != nil {
		return model.Standing{}, err
	}
	var st model.Standing
	if gpa.Valid {
		v := gpa.Float64
		st.GPA = &v
	}
	if credits.Valid {
		v := credits.Float64
		st.Credits = &v
	}
	return st, nil
}

// AddPredictionCourse stores an expected future course for a profile.
func (s *Store) AddPredictionCourse(ctx context.Context, profileID string, sc scale.Scale, p model.PredictionCourse) error {
	pos, err := s.nextPosition(ctx,
		`SELECT COALESCE(MAX(position), -1) + 1 FROM prediction_courses WHERE profile_id = ? AND scale = ?`,
		profileID, sc.String())
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO prediction_courses (id, profile_id, scale, name, expected_grade, credits, position)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		uuid.NewString(), profileID, sc.String(), p.Name, p.ExpectedGrade, p.Credits, pos)
	if err != nil {
		return fmt.Errorf("failed to add prediction course: %w", err)
	}
	return nil
}

// ListPredictionCourses returns a profile's expected courses for a scale
// in insertion order.
func (s *Store) ListPredictionCourses(ctx context.Context, profileID string, sc scale.Scale) ([]model.PredictionCourse, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT name, expected_grade, credits FROM prediction_courses
		 WHERE profile_id = ? AND scale = ? ORDER BY position ASC`, profileID, sc.String())
	if err != nil {
		return nil, err
	}
	defer closeRows(rows)

	var courses []model.PredictionCourse
	for rows.Next() {
		var p model.PredictionCourse
		if err := rows.Scan(&p.Name, &p.ExpectedGrade, &p.Credits); err != nil {
			return nil, err
		}
		courses = append(courses, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return courses, nil
}

// ClearPredictionCourses deletes all expected courses for a profile and
// scale.
func (s *Store) ClearPredictionCourses(ctx context.Context, profileID string, sc scale.Scale) error {
	_, err := s.db.ExecContext(ctx,
		`DELETE FROM prediction_courses WHERE profile_id = ? AND scale = ?`,
		profileID, sc.String())
	return err
}

func (s *Store) nextPosition(ctx context.Context, query string, args ...any) (int64, error) {
	var pos int64
	if err := s.db.QueryRowContext(ctx, query, args...).Scan(&pos); err != nil {
		return 0, err
	}
	return pos, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanProfile(row rowScanner) (model.Profile, error) {
	var p model.Profile
	var premium int
	var createdAt string
	err := row.Scan(&p.ID, &p.Name, &premium, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Profile{}, ErrNotFound
	}
	if err != nil {
		return model.Profile{}, err
	}
	p.Premium = premium != 0
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.Profile{}, err
	}
	p.CreatedAt = parsed
	return p, nil
}

func scanSemester(row rowScanner) (model.Semester, error) {
	var sem model.Semester
	var sc, createdAt string
	err := row.Scan(&sem.ID, &sem.Name, &sem.Term, &sc, &createdAt)
	if errors.Is(err, sql.ErrNoRows) {
		return model.Semester{}, ErrNotFound
	}
	if err != nil {
		return model.Semester{}, err
	}
	parsedScale, err := scale.Parse(sc)
	if err != nil {
		return model.Semester{}, err
	}
	sem.Scale = parsedScale
	parsed, err := time.Parse(time.RFC3339Nano, createdAt)
	if err != nil {
		return model.Semester{}, err
	}
	sem.CreatedAt = parsed
	return sem, nil
}

func closeRows(rows *sql.Rows) {
	if cerr := rows.Close(); cerr != nil {
		// Best-effort rows close.
		_ = cerr
	}
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func nullFloat(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}
