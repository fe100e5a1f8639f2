//go:build integration

package rod_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fwojciec/timetable"
	"github.com/fwojciec/timetable/rod"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ timetable.Fetcher = (*rod.Fetcher)(nil)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns table built by JavaScript", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.Header().Set("Content-Type", "text/html")
			_, _ = w.Write([]byte(`<!DOCTYPE html>
<html><body>
<div id="timetable">Loading...</div>
<script>
document.getElementById('timetable').innerHTML =
  '<table><tr><th>Section</th><th>Day</th></tr><tr><td>LEC0101</td><td>MO</td></tr></table>';
</script>
</body></html>`))
		}))
		defer srv.Close()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		defer fetcher.Close()

		html, err := fetcher.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, html, "<td>LEC0101</td>")
		assert.NotContains(t, html, "Loading...")
	})

	t.Run("honors canceled context", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		defer fetcher.Close()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err = fetcher.Fetch(ctx, "http://example.com")

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("times out on slow page", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			time.Sleep(500 * time.Millisecond)
			_, _ = w.Write([]byte(`<html><body>late</body></html>`))
		}))
		defer srv.Close()

		fetcher, err := rod.NewFetcher(rod.WithFetchTimeout(100 * time.Millisecond))
		require.NoError(t, err)
		defer fetcher.Close()

		_, err = fetcher.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.ErrorIs(t, err, context.DeadlineExceeded)
	})

	t.Run("returns EINVALID after close", func(t *testing.T) {
		t.Parallel()

		fetcher, err := rod.NewFetcher()
		require.NoError(t, err)
		require.NoError(t, fetcher.Close())
		require.NoError(t, fetcher.Close())

		_, err = fetcher.Fetch(context.Background(), "http://example.com")

		require.Error(t, err)
		assert.Equal(t, timetable.EINVALID, timetable.ErrorCode(err))
	})
}
