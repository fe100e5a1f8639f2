package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/fwojciec/timetable"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ timetable.CourseService = (*CourseService)(nil)

// CourseService implements timetable.CourseService using SQLite.
type CourseService struct {
	db *DB
}

// NewCourseService creates a new CourseService.
func NewCourseService(db *DB) *CourseService {
	return &CourseService{db: db}
}

const courseColumns = "id, department_id, department, code, semester_prefix, semester, campus, name, description, exclusions, prerequisites, corequisites, categories, position"

// ReplaceCourses atomically replaces every course of a department.
// Course positions are renumbered in slice order.
func (s *CourseService) ReplaceCourses(ctx context.Context, departmentID string, courses []*timetable.Course) error {
	for _, c := range courses {
		if err := c.Validate(); err != nil {
			return err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, "SELECT COUNT(*) FROM departments WHERE id = ?", departmentID).Scan(&exists); err != nil {
		return err
	}
	if exists == 0 {
		return timetable.Errorf(timetable.ENOTFOUND, "department not found")
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM courses WHERE department_id = ?", departmentID); err != nil {
		return err
	}

	courseStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO courses (`+courseColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer courseStmt.Close()

	sectionStmt, err := tx.PrepareContext(ctx, `
		INSERT INTO sections (id, course_id, position, name, instructor, location, meet_times)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return err
	}
	defer sectionStmt.Close()

	for i, c := range courses {
		c.ID = uuid.New().String()
		c.DepartmentID = departmentID
		c.Position = i

		if _, err := courseStmt.ExecContext(ctx, c.ID, c.DepartmentID, c.Department, c.Code,
			c.SemesterPrefix, c.Semester, c.Campus, c.Name, c.Description, c.Exclusions,
			c.Prerequisites, c.Corequisites, joinCategories(c.Categories), c.Position); err != nil {
			return fmt.Errorf("insert course %s: %w", c.Abbr(), err)
		}

		for j, sec := range c.Sections {
			meetTimes, err := marshalMeetTimes(sec.ParsedTime.MeetTimes)
			if err != nil {
				return err
			}
			if _, err := sectionStmt.ExecContext(ctx, uuid.New().String(), c.ID, j,
				sec.Name, sec.Instructor, sec.Location, meetTimes); err != nil {
				return fmt.Errorf("insert section %s/%s: %w", c.Abbr(), sec.Name, err)
			}
		}
	}

	return tx.Commit()
}

// FindCourseByID retrieves a course with its sections.
func (s *CourseService) FindCourseByID(ctx context.Context, id string) (*timetable.Course, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+courseColumns+" FROM courses WHERE id = ?", id)

	course, err := scanCourse(row)
	if err == sql.ErrNoRows {
		return nil, timetable.Errorf(timetable.ENOTFOUND, "course not found")
	}
	if err != nil {
		return nil, err
	}

	if err := s.attachSections(ctx, []*timetable.Course{course}); err != nil {
		return nil, err
	}
	return course, nil
}

// FindCourses retrieves courses matching the filter, grouped by department
// and in page order within each department.
func (s *CourseService) FindCourses(ctx context.Context, filter timetable.CourseFilter) ([]*timetable.Course, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + courseColumns + " FROM courses WHERE 1=1")

	if filter.DepartmentID != nil {
		query.WriteString(" AND department_id = ?")
		args = append(args, *filter.DepartmentID)
	}
	if filter.Code != nil {
		query.WriteString(" AND code = ?")
		args = append(args, *filter.Code)
	}
	if filter.Abbr != nil {
		query.WriteString(" AND code || semester_prefix || semester = ?")
		args = append(args, *filter.Abbr)
	}
	if filter.Category != nil {
		query.WriteString(" AND ',' || categories || ',' LIKE ?")
		args = append(args, "%,"+string(*filter.Category)+",%")
	}

	query.WriteString(" ORDER BY department_id ASC, position ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}

	var courses []*timetable.Course
	for rows.Next() {
		course, err := scanCourse(rows)
		if err != nil {
			rows.Close()
			return nil, err
		}
		courses = append(courses, course)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, err
	}
	// The pool holds a single connection, so the cursor must be released
	// before sections are queried.
	rows.Close()

	if err := s.attachSections(ctx, courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// attachSections loads the sections of every course in one query.
func (s *CourseService) attachSections(ctx context.Context, courses []*timetable.Course) error {
	if len(courses) == 0 {
		return nil
	}

	byID := make(map[string]*timetable.Course, len(courses))
	placeholders := make([]string, len(courses))
	args := make([]any, len(courses))
	for i, c := range courses {
		c.Sections = []*timetable.Section{}
		byID[c.ID] = c
		placeholders[i] = "?"
		args[i] = c.ID
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT course_id, name, instructor, location, meet_times
		FROM sections
		WHERE course_id IN (`+strings.Join(placeholders, ", ")+`)
		ORDER BY course_id, position ASC
	`, args...)
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var courseID, meetTimes string
		var sec timetable.Section
		if err := rows.Scan(&courseID, &sec.Name, &sec.Instructor, &sec.Location, &meetTimes); err != nil {
			return err
		}
		if sec.ParsedTime.MeetTimes, err = unmarshalMeetTimes(meetTimes); err != nil {
			return err
		}
		c := byID[courseID]
		c.Sections = append(c.Sections, &sec)
	}

	return rows.Err()
}

func scanCourse(row scanner) (*timetable.Course, error) {
	var c timetable.Course
	var categories string

	if err := row.Scan(&c.ID, &c.DepartmentID, &c.Department, &c.Code, &c.SemesterPrefix,
		&c.Semester, &c.Campus, &c.Name, &c.Description, &c.Exclusions, &c.Prerequisites,
		&c.Corequisites, &categories, &c.Position); err != nil {
		return nil, err
	}
	c.Categories = splitCategories(categories)
	c.Sections = []*timetable.Section{}

	return &c, nil
}

func marshalMeetTimes(spans []timetable.TimeSpan) (string, error) {
	if spans == nil {
		spans = []timetable.TimeSpan{}
	}
	b, err := json.Marshal(spans)
	if err != nil {
		return "", fmt.Errorf("failed to encode meet times: %w", err)
	}
	return string(b), nil
}

func unmarshalMeetTimes(s string) ([]timetable.TimeSpan, error) {
	var spans []timetable.TimeSpan
	if err := json.Unmarshal([]byte(s), &spans); err != nil {
		return nil, fmt.Errorf("failed to decode meet times: %w", err)
	}
	return spans, nil
}
