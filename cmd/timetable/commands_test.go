package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/timetable"
	main "github.com/fwojciec/timetable/cmd/timetable"
	"github.com/fwojciec/timetable/crawl"
	"github.com/fwojciec/timetable/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// departmentsWith returns a DepartmentService that finds depts by code.
func departmentsWith(depts ...*timetable.Department) *mock.DepartmentService {
	return &mock.DepartmentService{
		FindDepartmentsFn: func(_ context.Context, filter timetable.DepartmentFilter) ([]*timetable.Department, error) {
			if filter.Code == nil {
				return depts, nil
			}
			for _, d := range depts {
				if d.Code == *filter.Code {
					return []*timetable.Department{d}, nil
				}
			}
			return nil, nil
		},
	}
}

func csc() *timetable.Department {
	return &timetable.Department{ID: "dept-1", Code: "CSC", Name: "Computer Science", SourceURL: "https://utm.example.edu/timetable?dept=CSC", CourseCount: 2}
}

func newDeps(departments timetable.DepartmentService) (*main.Dependencies, *bytes.Buffer, *bytes.Buffer) {
	stdout := &bytes.Buffer{}
	stderr := &bytes.Buffer{}
	return &main.Dependencies{
		Ctx:         context.Background(),
		Stdout:      stdout,
		Stderr:      stderr,
		Departments: departments,
	}, stdout, stderr
}

func TestAddCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("registers department with upper-case code", func(t *testing.T) {
		t.Parallel()

		var created *timetable.Department
		deps, stdout, _ := newDeps(&mock.DepartmentService{
			CreateDepartmentFn: func(_ context.Context, d *timetable.Department) error {
				d.ID = "dept-1"
				created = d
				return nil
			},
		})

		err := (&main.AddCmd{Code: "csc", URL: "https://utm.example.edu/timetable?dept=CSC", Name: "Computer Science"}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, created)
		assert.Equal(t, "CSC", created.Code)
		assert.Equal(t, "Computer Science", created.Name)
		assert.Contains(t, stdout.String(), "Added department CSC (dept-1)")
	})

	t.Run("rejects non-http URL", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(&mock.DepartmentService{})

		err := (&main.AddCmd{Code: "CSC", URL: "file:///tmp/csc.html"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, timetable.EINVALID, timetable.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not an http(s) URL")
	})

	t.Run("reports conflict", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(&mock.DepartmentService{
			CreateDepartmentFn: func(context.Context, *timetable.Department) error {
				return timetable.Errorf(timetable.ECONFLICT, "department \"CSC\" already exists")
			},
		})

		err := (&main.AddCmd{Code: "CSC", URL: "https://utm.example.edu/"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, timetable.ECONFLICT, timetable.ErrorCode(err))
		assert.Contains(t, stderr.String(), "already exists")
	})
}

func TestDiscoverCmd_Run(t *testing.T) {
	t.Parallel()

	found := func() []*timetable.Department {
		return []*timetable.Department{
			{Code: "CSC", Name: "Computer Science", SourceURL: "https://utm.example.edu/t?dept=CSC"},
			{Code: "MAT", Name: "Mathematics", SourceURL: "https://utm.example.edu/t?dept=MAT"},
		}
	}

	setup := func(departments timetable.DepartmentService) (*main.Dependencies, *bytes.Buffer) {
		deps, stdout, _ := newDeps(departments)
		deps.Fetcher = &mock.Fetcher{
			FetchFn: func(context.Context, string) (string, error) { return "<html></html>", nil },
		}
		deps.Selector = &mock.DepartmentSelector{
			SelectDepartmentsFn: func(string, string) ([]*timetable.Department, error) { return found(), nil },
		}
		return deps, stdout
	}

	t.Run("preview prints without registering", func(t *testing.T) {
		t.Parallel()

		deps, stdout := setup(&mock.DepartmentService{})

		err := (&main.DiscoverCmd{URL: "https://utm.example.edu/t", Preview: true}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "CSC  Computer Science  https://utm.example.edu/t?dept=CSC")
		assert.Contains(t, stdout.String(), "MAT  Mathematics")
	})

	t.Run("registers new departments and skips existing ones", func(t *testing.T) {
		t.Parallel()

		var created []string
		deps, stdout := setup(&mock.DepartmentService{
			CreateDepartmentFn: func(_ context.Context, d *timetable.Department) error {
				if d.Code == "CSC" {
					return timetable.Errorf(timetable.ECONFLICT, "exists")
				}
				created = append(created, d.Code)
				return nil
			},
		})

		err := (&main.DiscoverCmd{URL: "https://utm.example.edu/t"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, []string{"MAT"}, created)
		assert.Contains(t, stdout.String(), "Added 1 departments (1 already registered)")
	})
}

func TestSyncCmd_Run(t *testing.T) {
	t.Parallel()

	harvester := func(fetch func(context.Context, string) (string, error)) *crawl.Harvester {
		return &crawl.Harvester{
			Fetcher: &mock.Fetcher{FetchFn: fetch},
			Extractor: &mock.CourseExtractor{
				ExtractFn: func(department, _ string) ([]*timetable.Course, error) {
					return []*timetable.Course{{Department: department, Code: "CSC108", Semester: "F"}}, nil
				},
			},
			Courses: &mock.CourseService{
				ReplaceCoursesFn: func(context.Context, string, []*timetable.Course) error { return nil },
			},
			Departments: &mock.DepartmentService{
				UpdateDepartmentFn: func(_ context.Context, id string, _ timetable.DepartmentUpdate) (*timetable.Department, error) {
					return csc(), nil
				},
			},
			RetryDelays: []time.Duration{},
		}
	}

	t.Run("syncs named departments", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(departmentsWith(csc()))
		deps.Harvester = harvester(func(context.Context, string) (string, error) { return "<html></html>", nil })

		err := (&main.SyncCmd{Codes: []string{"csc"}}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Syncing 1 departments")
		assert.Contains(t, stdout.String(), "[1/1] CSC: 1 courses")
		assert.Contains(t, stdout.String(), "Saved 1 departments, 1 courses, 0 sections")
	})

	t.Run("returns error when a department fails", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(departmentsWith(csc()))
		deps.Harvester = harvester(func(context.Context, string) (string, error) {
			return "", timetable.Errorf(timetable.EINTERNAL, "HTTP 500")
		})

		err := (&main.SyncCmd{}).Run(deps)

		require.Error(t, err)
		assert.Contains(t, stderr.String(), "skip CSC")
	})

	t.Run("returns ENOTFOUND for unknown code", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(departmentsWith(csc()))

		err := (&main.SyncCmd{Codes: []string{"PSY"}}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, timetable.ENOTFOUND, timetable.ErrorCode(err))
		assert.Contains(t, stderr.String(), `department "PSY" not found`)
	})

	t.Run("explains when nothing is registered", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(departmentsWith())

		err := (&main.SyncCmd{}).Run(deps)

		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No departments registered")
	})
}

func TestCoursesCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("filters by category", func(t *testing.T) {
		t.Parallel()

		var got timetable.CourseFilter
		deps, stdout, _ := newDeps(departmentsWith(csc()))
		deps.Courses = &mock.CourseService{
			FindCoursesFn: func(_ context.Context, filter timetable.CourseFilter) ([]*timetable.Course, error) {
				got = filter
				return []*timetable.Course{{Code: "CSC290", SemesterPrefix: "H5", Semester: "S", Name: "Communication Skills"}}, nil
			},
		}

		err := (&main.CoursesCmd{Code: "csc", Category: "hum"}).Run(deps)

		require.NoError(t, err)
		require.NotNil(t, got.Category)
		assert.Equal(t, timetable.CategoryHUM, *got.Category)
		assert.Equal(t, "dept-1", *got.DepartmentID)
		assert.Contains(t, stdout.String(), "## CSC290H5S Communication Skills")
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(departmentsWith(csc()))

		err := (&main.CoursesCmd{Code: "CSC", Category: "ART"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, timetable.EINVALID, timetable.ErrorCode(err))
	})
}

func TestShowCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("returns ENOTFOUND for unknown course", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(nil)
		deps.Courses = &mock.CourseService{
			FindCoursesFn: func(_ context.Context, filter timetable.CourseFilter) ([]*timetable.Course, error) {
				assert.Equal(t, "CSC999H5F", *filter.Abbr)
				return nil, nil
			},
		}

		err := (&main.ShowCmd{Abbr: "csc999h5f"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, timetable.ENOTFOUND, timetable.ErrorCode(err))
		assert.Contains(t, stderr.String(), "not found")
	})
}

func TestAskCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("asks about the department", func(t *testing.T) {
		t.Parallel()

		deps, stdout, _ := newDeps(departmentsWith(csc()))
		deps.Asker = &mock.Asker{
			AskFn: func(_ context.Context, departmentID, question string) (string, error) {
				assert.Equal(t, "dept-1", departmentID)
				assert.Equal(t, "who teaches CSC108?", question)
				return "A. Petersen", nil
			},
		}

		err := (&main.AskCmd{Code: "CSC", Question: "who teaches CSC108?"}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "A. Petersen\n", stdout.String())
	})

	t.Run("returns ENOTFOUND for unknown department", func(t *testing.T) {
		t.Parallel()

		deps, _, _ := newDeps(departmentsWith())

		err := (&main.AskCmd{Code: "CSC", Question: "?"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, timetable.ENOTFOUND, timetable.ErrorCode(err))
	})
}

func TestDeleteCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires force", func(t *testing.T) {
		t.Parallel()

		deps, _, stderr := newDeps(departmentsWith(csc()))

		err := (&main.DeleteCmd{Code: "CSC"}).Run(deps)

		require.Error(t, err)
		assert.Equal(t, timetable.EINVALID, timetable.ErrorCode(err))
		assert.Contains(t, stderr.String(), "--force")
	})

	t.Run("deletes department", func(t *testing.T) {
		t.Parallel()

		departments := departmentsWith(csc())
		var deleted string
		departments.DeleteDepartmentFn = func(_ context.Context, id string) error {
			deleted = id
			return nil
		}
		deps, stdout, _ := newDeps(departments)

		err := (&main.DeleteCmd{Code: "csc", Force: true}).Run(deps)

		require.NoError(t, err)
		assert.Equal(t, "dept-1", deleted)
		assert.Contains(t, stdout.String(), "Deleted department CSC and 2 courses")
	})
}
