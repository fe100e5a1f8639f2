// Package crawl coordinates fetching department timetable pages, extracting
// their courses and storing the results.
package crawl

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/fwojciec/timetable"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of pages fetched in parallel when
// Harvester.Concurrency is not set.
const DefaultConcurrency = 4

// Harvester fetches department pages and replaces their stored courses.
type Harvester struct {
	Fetcher     timetable.Fetcher
	Extractor   timetable.CourseExtractor
	Departments timetable.DepartmentService
	Courses     timetable.CourseService
	RateLimiter timetable.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration

	// Force re-extracts pages whose content hash has not changed.
	Force bool

	// Now returns the fetch timestamp. Defaults to time.Now.
	Now func() time.Time
}

// Result holds the outcome of a harvest.
type Result struct {
	Saved     int
	Unchanged int
	Failed    int
	Courses   int
	Sections  int
	Bytes     int
}

// ProgressEvent reports progress during a harvest.
type ProgressEvent struct {
	Type       ProgressType
	Completed  int
	Total      int
	Department string
	URL        string
	Courses    int
	Error      error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressUnchanged
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting harvest progress.
type ProgressFunc func(event ProgressEvent)

// harvestResult holds the outcome of processing a single department.
type harvestResult struct {
	position  int
	dept      *timetable.Department
	courses   []*timetable.Course
	hash      string
	bytes     int
	unchanged bool
	err       error
}

// Harvest fetches every department page concurrently and, in department
// order, replaces each department's courses with the freshly extracted set.
// A failing department is counted and reported but does not stop the others.
// Saved departments are updated in place with their new hash and counts.
// The returned error is non-nil only when ctx is canceled.
func (h *Harvester) Harvest(ctx context.Context, departments []*timetable.Department, progress ProgressFunc) (*Result, error) {
	if progress == nil {
		progress = func(ProgressEvent) {}
	}

	concurrency := h.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	total := len(departments)
	progress(ProgressEvent{Type: ProgressStarted, Total: total})

	resultCh := make(chan harvestResult, total)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, dept := range departments {
			g.Go(func() error {
				resultCh <- h.process(gctx, i, dept)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	var completed atomic.Int64
	results := make([]harvestResult, total)
	for r := range resultCh {
		results[r.position] = r

		event := ProgressEvent{
			Completed:  int(completed.Add(1)),
			Total:      total,
			Department: r.dept.Code,
			URL:        r.dept.SourceURL,
			Courses:    len(r.courses),
			Error:      r.err,
		}
		switch {
		case r.err != nil:
			event.Type = ProgressFailed
		case r.unchanged:
			event.Type = ProgressUnchanged
		default:
			event.Type = ProgressCompleted
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result Result
	for _, r := range results {
		switch {
		case r.err != nil:
			result.Failed++
			continue
		case r.unchanged:
			result.Unchanged++
			continue
		}

		if err := h.save(ctx, r); err != nil {
			result.Failed++
			progress(ProgressEvent{
				Type:       ProgressFailed,
				Completed:  total,
				Total:      total,
				Department: r.dept.Code,
				URL:        r.dept.SourceURL,
				Error:      err,
			})
			continue
		}

		result.Saved++
		result.Bytes += r.bytes
		result.Courses += len(r.courses)
		for _, c := range r.courses {
			result.Sections += len(c.Sections)
		}
	}

	progress(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return &result, nil
}

// process fetches and extracts a single department page.
func (h *Harvester) process(ctx context.Context, position int, dept *timetable.Department) harvestResult {
	result := harvestResult{position: position, dept: dept}

	if h.RateLimiter != nil {
		if err := h.RateLimiter.Wait(ctx, hostOf(dept.SourceURL)); err != nil {
			result.err = err
			return result
		}
	}

	delays := h.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	page, err := FetchWithRetryDelays(ctx, dept.SourceURL, h.Fetcher.Fetch, nil, delays)
	if err != nil {
		result.err = err
		return result
	}

	result.bytes = len(page)
	result.hash = ComputeHash(page)
	if !h.Force && dept.ContentHash != "" && dept.ContentHash == result.hash {
		result.unchanged = true
		return result
	}

	courses, err := h.Extractor.Extract(dept.Code, page)
	if err != nil {
		result.err = err
		return result
	}
	result.courses = courses

	return result
}

// save replaces the department's courses and records the fetch.
func (h *Harvester) save(ctx context.Context, r harvestResult) error {
	if err := h.Courses.ReplaceCourses(ctx, r.dept.ID, r.courses); err != nil {
		return fmt.Errorf("save %s: %w", r.dept.Code, err)
	}

	now := time.Now
	if h.Now != nil {
		now = h.Now
	}
	fetchedAt := now()
	count := len(r.courses)
	updated, err := h.Departments.UpdateDepartment(ctx, r.dept.ID, timetable.DepartmentUpdate{
		ContentHash: &r.hash,
		CourseCount: &count,
		FetchedAt:   &fetchedAt,
	})
	if err != nil {
		return fmt.Errorf("update %s: %w", r.dept.Code, err)
	}
	*r.dept = *updated

	return nil
}
