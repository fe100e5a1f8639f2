package sqlite

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/fwojciec/timetable"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ timetable.DepartmentService = (*DepartmentService)(nil)

// DepartmentService implements timetable.DepartmentService using SQLite.
type DepartmentService struct {
	db *DB
}

// NewDepartmentService creates a new DepartmentService.
func NewDepartmentService(db *DB) *DepartmentService {
	return &DepartmentService{db: db}
}

const departmentColumns = "id, code, name, source_url, content_hash, course_count, fetched_at, created_at, updated_at"

// CreateDepartment creates a new department.
func (s *DepartmentService) CreateDepartment(ctx context.Context, dept *timetable.Department) error {
	if err := dept.Validate(); err != nil {
		return err
	}

	var exists int
	if err := s.db.QueryRowContext(ctx, "SELECT COUNT(*) FROM departments WHERE code = ?", dept.Code).Scan(&exists); err != nil {
		return err
	}
	if exists > 0 {
		return timetable.Errorf(timetable.ECONFLICT, "department %q already exists", dept.Code)
	}

	dept.ID = uuid.New().String()
	now := time.Now().UTC().Truncate(time.Second)
	dept.CreatedAt = now
	dept.UpdatedAt = now

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO departments (`+departmentColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, dept.ID, dept.Code, dept.Name, dept.SourceURL, dept.ContentHash, dept.CourseCount,
		formatOptionalRFC3339(dept.FetchedAt), dept.CreatedAt.Format(time.RFC3339), dept.UpdatedAt.Format(time.RFC3339))

	return err
}

// FindDepartmentByID retrieves a department by ID.
func (s *DepartmentService) FindDepartmentByID(ctx context.Context, id string) (*timetable.Department, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+departmentColumns+" FROM departments WHERE id = ?", id)

	dept, err := scanDepartment(row)
	if err == sql.ErrNoRows {
		return nil, timetable.Errorf(timetable.ENOTFOUND, "department not found")
	}
	if err != nil {
		return nil, err
	}
	return dept, nil
}

// FindDepartments retrieves departments matching the filter, ordered by code.
func (s *DepartmentService) FindDepartments(ctx context.Context, filter timetable.DepartmentFilter) ([]*timetable.Department, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + departmentColumns + " FROM departments WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Code != nil {
		query.WriteString(" AND code = ?")
		args = append(args, *filter.Code)
	}

	query.WriteString(" ORDER BY code ASC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var depts []*timetable.Department
	for rows.Next() {
		dept, err := scanDepartment(rows)
		if err != nil {
			return nil, err
		}
		depts = append(depts, dept)
	}

	return depts, rows.Err()
}

// UpdateDepartment updates an existing department.
func (s *DepartmentService) UpdateDepartment(ctx context.Context, id string, upd timetable.DepartmentUpdate) (*timetable.Department, error) {
	dept, err := s.FindDepartmentByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if upd.Name != nil {
		dept.Name = *upd.Name
	}
	if upd.SourceURL != nil {
		dept.SourceURL = *upd.SourceURL
	}
	if upd.ContentHash != nil {
		dept.ContentHash = *upd.ContentHash
	}
	if upd.CourseCount != nil {
		dept.CourseCount = *upd.CourseCount
	}
	if upd.FetchedAt != nil {
		dept.FetchedAt = upd.FetchedAt.UTC().Truncate(time.Second)
	}
	dept.UpdatedAt = time.Now().UTC().Truncate(time.Second)

	if err := dept.Validate(); err != nil {
		return nil, err
	}

	_, err = s.db.ExecContext(ctx, `
		UPDATE departments
		SET name = ?, source_url = ?, content_hash = ?, course_count = ?, fetched_at = ?, updated_at = ?
		WHERE id = ?
	`, dept.Name, dept.SourceURL, dept.ContentHash, dept.CourseCount,
		formatOptionalRFC3339(dept.FetchedAt), dept.UpdatedAt.Format(time.RFC3339), id)
	if err != nil {
		return nil, err
	}

	return dept, nil
}

// DeleteDepartment permanently removes a department. Its courses and
// sections are removed by cascade.
func (s *DepartmentService) DeleteDepartment(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM departments WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return timetable.Errorf(timetable.ENOTFOUND, "department not found")
	}

	return nil
}

// scanner is implemented by *sql.Row and *sql.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanDepartment(row scanner) (*timetable.Department, error) {
	var dept timetable.Department
	var fetchedAt, createdAt, updatedAt string

	if err := row.Scan(&dept.ID, &dept.Code, &dept.Name, &dept.SourceURL, &dept.ContentHash,
		&dept.CourseCount, &fetchedAt, &createdAt, &updatedAt); err != nil {
		return nil, err
	}

	var err error
	if dept.FetchedAt, err = parseOptionalRFC3339(fetchedAt, "fetched_at"); err != nil {
		return nil, err
	}
	if dept.CreatedAt, err = parseRFC3339(createdAt, "created_at"); err != nil {
		return nil, err
	}
	if dept.UpdatedAt, err = parseRFC3339(updatedAt, "updated_at"); err != nil {
		return nil, err
	}

	return &dept, nil
}
