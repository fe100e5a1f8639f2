package crawl_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/timetable"
	"github.com/fwojciec/timetable/crawl"
	"github.com/fwojciec/timetable/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDepartments() []*timetable.Department {
	return []*timetable.Department{
		{ID: "d1", Code: "CSC", SourceURL: "https://utm.example.edu/timetable?dept=CSC"},
		{ID: "d2", Code: "MAT", SourceURL: "https://utm.example.edu/timetable?dept=MAT"},
	}
}

func coursesFor(department string) []*timetable.Course {
	return []*timetable.Course{
		{
			Department: department,
			Code:       department + "101",
			Semester:   "F",
			Sections:   []*timetable.Section{{Name: "LEC0101"}, {Name: "TUT0101"}},
		},
	}
}

// harvestFixture records calls to the storage mocks.
type harvestFixture struct {
	mu       sync.Mutex
	replaced map[string][]*timetable.Course
	updates  map[string]timetable.DepartmentUpdate
	order    []string
}

func newHarvester(f *harvestFixture, fetch func(ctx context.Context, url string) (string, error)) *crawl.Harvester {
	f.replaced = make(map[string][]*timetable.Course)
	f.updates = make(map[string]timetable.DepartmentUpdate)

	return &crawl.Harvester{
		Fetcher: &mock.Fetcher{FetchFn: fetch},
		Extractor: &mock.CourseExtractor{
			ExtractFn: func(department, _ string) ([]*timetable.Course, error) {
				return coursesFor(department), nil
			},
		},
		Courses: &mock.CourseService{
			ReplaceCoursesFn: func(_ context.Context, departmentID string, courses []*timetable.Course) error {
				f.mu.Lock()
				defer f.mu.Unlock()
				f.replaced[departmentID] = courses
				f.order = append(f.order, departmentID)
				return nil
			},
		},
		Departments: &mock.DepartmentService{
			UpdateDepartmentFn: func(_ context.Context, id string, upd timetable.DepartmentUpdate) (*timetable.Department, error) {
				f.mu.Lock()
				defer f.mu.Unlock()
				f.updates[id] = upd
				return &timetable.Department{ID: id, ContentHash: *upd.ContentHash, CourseCount: *upd.CourseCount}, nil
			},
		},
		Concurrency: 2,
		RetryDelays: []time.Duration{0},
		Now:         func() time.Time { return time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC) },
	}
}

func TestHarvester_Harvest(t *testing.T) {
	t.Parallel()

	t.Run("extracts and saves every department in order", func(t *testing.T) {
		t.Parallel()

		f := &harvestFixture{}
		h := newHarvester(f, func(_ context.Context, url string) (string, error) {
			return "<html>" + url + "</html>", nil
		})

		depts := testDepartments()
		result, err := h.Harvest(context.Background(), depts, nil)
		require.NoError(t, err)

		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, 0, result.Failed)
		assert.Equal(t, 2, result.Courses)
		assert.Equal(t, 4, result.Sections)
		assert.Positive(t, result.Bytes)
		assert.Equal(t, []string{"d1", "d2"}, f.order)
		assert.Equal(t, "CSC101", f.replaced["d1"][0].Code)

		upd := f.updates["d1"]
		require.NotNil(t, upd.ContentHash)
		assert.NotEmpty(t, *upd.ContentHash)
		assert.Equal(t, 1, *upd.CourseCount)
		assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), *upd.FetchedAt)
		assert.Equal(t, *upd.ContentHash, depts[0].ContentHash, "department updated in place")
	})

	t.Run("skips departments whose page is unchanged", func(t *testing.T) {
		t.Parallel()

		const page = "<html>same</html>"
		f := &harvestFixture{}
		h := newHarvester(f, func(context.Context, string) (string, error) { return page, nil })

		depts := testDepartments()
		depts[0].ContentHash = crawl.ComputeHash(page)

		var events []crawl.ProgressEvent
		result, err := h.Harvest(context.Background(), depts, func(e crawl.ProgressEvent) {
			events = append(events, e)
		})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Unchanged)
		assert.Equal(t, 1, result.Saved)
		assert.Equal(t, []string{"d2"}, f.order)

		var unchanged int
		for _, e := range events {
			if e.Type == crawl.ProgressUnchanged {
				unchanged++
				assert.Equal(t, "CSC", e.Department)
			}
		}
		assert.Equal(t, 1, unchanged)
	})

	t.Run("re-extracts unchanged pages when forced", func(t *testing.T) {
		t.Parallel()

		const page = "<html>same</html>"
		f := &harvestFixture{}
		h := newHarvester(f, func(context.Context, string) (string, error) { return page, nil })
		h.Force = true

		depts := testDepartments()
		depts[0].ContentHash = crawl.ComputeHash(page)

		result, err := h.Harvest(context.Background(), depts, nil)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.Zero(t, result.Unchanged)
	})

	t.Run("counts failures without stopping other departments", func(t *testing.T) {
		t.Parallel()

		f := &harvestFixture{}
		h := newHarvester(f, func(_ context.Context, url string) (string, error) {
			if url == testDepartments()[0].SourceURL {
				return "", errors.New("HTTP 503")
			}
			return "<html></html>", nil
		})

		var failed []crawl.ProgressEvent
		var mu sync.Mutex
		result, err := h.Harvest(context.Background(), testDepartments(), func(e crawl.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			if e.Type == crawl.ProgressFailed {
				failed = append(failed, e)
			}
		})
		require.NoError(t, err)

		assert.Equal(t, 1, result.Failed)
		assert.Equal(t, 1, result.Saved)
		require.Len(t, failed, 1)
		assert.Equal(t, "CSC", failed[0].Department)
		assert.EqualError(t, failed[0].Error, "HTTP 503")
	})

	t.Run("retries failed fetches", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		attempts := make(map[string]int)
		f := &harvestFixture{}
		h := newHarvester(f, func(_ context.Context, url string) (string, error) {
			mu.Lock()
			defer mu.Unlock()
			attempts[url]++
			if attempts[url] == 1 {
				return "", errors.New("connection reset")
			}
			return "<html></html>", nil
		})

		result, err := h.Harvest(context.Background(), testDepartments(), nil)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Saved)
		assert.Equal(t, 2, attempts[testDepartments()[0].SourceURL])
	})

	t.Run("counts storage failures", func(t *testing.T) {
		t.Parallel()

		f := &harvestFixture{}
		h := newHarvester(f, func(context.Context, string) (string, error) { return "<html></html>", nil })
		h.Courses = &mock.CourseService{
			ReplaceCoursesFn: func(context.Context, string, []*timetable.Course) error {
				return errors.New("disk full")
			},
		}

		result, err := h.Harvest(context.Background(), testDepartments(), nil)
		require.NoError(t, err)
		assert.Equal(t, 2, result.Failed)
		assert.Zero(t, result.Saved)
	})

	t.Run("waits on the rate limiter per host", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var hosts []string
		f := &harvestFixture{}
		h := newHarvester(f, func(context.Context, string) (string, error) { return "<html></html>", nil })
		h.RateLimiter = &mock.DomainLimiter{
			WaitFn: func(_ context.Context, domain string) error {
				mu.Lock()
				defer mu.Unlock()
				hosts = append(hosts, domain)
				return nil
			},
		}

		_, err := h.Harvest(context.Background(), testDepartments(), nil)
		require.NoError(t, err)
		assert.Equal(t, []string{"utm.example.edu", "utm.example.edu"}, hosts)
	})

	t.Run("reports started and finished events", func(t *testing.T) {
		t.Parallel()

		f := &harvestFixture{}
		h := newHarvester(f, func(context.Context, string) (string, error) { return "<html></html>", nil })

		var events []crawl.ProgressEvent
		_, err := h.Harvest(context.Background(), testDepartments(), func(e crawl.ProgressEvent) {
			events = append(events, e)
		})
		require.NoError(t, err)

		require.Len(t, events, 4)
		assert.Equal(t, crawl.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, crawl.ProgressCompleted, events[1].Type)
		assert.Equal(t, crawl.ProgressCompleted, events[2].Type)
		assert.Equal(t, crawl.ProgressFinished, events[3].Type)
		assert.Equal(t, 2, events[3].Completed)
	})

	t.Run("returns context error when canceled", func(t *testing.T) {
		t.Parallel()

		f := &harvestFixture{}
		h := newHarvester(f, func(ctx context.Context, _ string) (string, error) {
			return "", ctx.Err()
		})

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := h.Harvest(ctx, testDepartments(), nil)
		require.ErrorIs(t, err, context.Canceled)
		assert.Empty(t, f.order)
	})

	t.Run("handles empty department list", func(t *testing.T) {
		t.Parallel()

		f := &harvestFixture{}
		h := newHarvester(f, nil)

		result, err := h.Harvest(context.Background(), nil, nil)
		require.NoError(t, err)
		assert.Equal(t, crawl.Result{}, *result)
	})
}
