// Package bloom provides set-membership checks for discovered department
// URLs using Bloom filters.
package bloom

import "github.com/bits-and-blooms/bloom/v3"

// Filter records which department URLs have been seen. It reports false
// positives at roughly the rate it was built with and never reports false
// negatives. It is not safe for concurrent use.
type Filter struct {
	f *bloom.BloomFilter
}

// NewFilter returns a filter sized for n keys at the given false positive rate.
func NewFilter(n uint, fpRate float64) *Filter {
	return &Filter{f: bloom.NewWithEstimates(n, fpRate)}
}

// Add records key.
func (f *Filter) Add(key string) {
	f.f.AddString(key)
}

// Test reports whether key may have been added.
func (f *Filter) Test(key string) bool {
	return f.f.TestString(key)
}

// TestAndAdd records key and reports whether it may have been added before.
func (f *Filter) TestAndAdd(key string) bool {
	return f.f.TestAndAddString(key)
}

// EstimatedCount returns the approximate number of distinct keys added.
func (f *Filter) EstimatedCount() uint {
	return uint(f.f.ApproximatedSize())
}
