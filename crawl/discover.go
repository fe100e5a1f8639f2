package crawl

import (
	"context"
	"fmt"
	"time"

	"github.com/fwojciec/timetable"
	"github.com/fwojciec/timetable/bloom"
)

// Bloom filter sizing for department deduplication. The false positive rate
// is set low enough that a distinct department is practically never dropped.
const (
	discoverExpectedURLs      = 1000
	discoverFalsePositiveRate = 1e-6
)

// DiscoverOption configures Discover behavior.
type DiscoverOption func(*discoverConfig)

type discoverConfig struct {
	retryDelays []time.Duration
	logger      LogFunc
}

// WithRetryDelays sets the retry delays for the index page fetch.
// Defaults to DefaultRetryDelays() if not specified.
func WithRetryDelays(delays []time.Duration) DiscoverOption {
	return func(c *discoverConfig) {
		c.retryDelays = delays
	}
}

// WithLogger sets a function called for each retry attempt.
func WithLogger(logger LogFunc) DiscoverOption {
	return func(c *discoverConfig) {
		c.logger = logger
	}
}

// Discover fetches a timetable index page and returns the departments it
// links to, in page order. Departments whose source URL was already seen are
// dropped.
func Discover(
	ctx context.Context,
	indexURL string,
	fetcher timetable.Fetcher,
	selector timetable.DepartmentSelector,
	opts ...DiscoverOption,
) ([]*timetable.Department, error) {
	cfg := &discoverConfig{retryDelays: DefaultRetryDelays()}
	for _, opt := range opts {
		opt(cfg)
	}

	page, err := FetchWithRetryDelays(ctx, indexURL, fetcher.Fetch, cfg.logger, cfg.retryDelays)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}

	found, err := selector.SelectDepartments(page, indexURL)
	if err != nil {
		return nil, fmt.Errorf("select departments: %w", err)
	}

	seen := bloom.NewFilter(max(discoverExpectedURLs, uint(len(found))), discoverFalsePositiveRate)
	depts := make([]*timetable.Department, 0, len(found))
	for _, d := range found {
		if seen.TestAndAdd(d.SourceURL) {
			continue
		}
		depts = append(depts, d)
	}

	return depts, nil
}
