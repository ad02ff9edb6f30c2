package catalog

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/kilowatch/kilowatch/pkg/common"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testFetcher(endpoints []Endpoint) *Fetcher {
	return &Fetcher{
		client:    common.HTTPClient(5 * time.Second),
		endpoints: endpoints,
		retry:     common.RetryOptions{MaxAttempts: 1, BaseDelay: time.Millisecond},
	}
}

// padCSV makes a response long enough to pass the short-body check.
func padCSV() string {
	return bracketCSV + strings.Repeat(" ", 100)
}

func TestFetchPlans(t *testing.T) {
	t.Run("first endpoint succeeds", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.NotEmpty(t, r.Header.Get("User-Agent"))
			w.Write([]byte(padCSV()))
		}))
		defer srv.Close()

		f := testFetcher([]Endpoint{{Name: "primary", URL: srv.URL, Type: SourceCSV}})
		plans, err := f.FetchPlans(context.Background())
		require.NoError(t, err)
		assert.Len(t, plans, 2)
	})

	t.Run("falls back to next endpoint", func(t *testing.T) {
		bad := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer bad.Close()
		good := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(padCSV()))
		}))
		defer good.Close()

		f := testFetcher([]Endpoint{
			{Name: "primary", URL: bad.URL, Type: SourceCSV},
			{Name: "fallback", URL: good.URL, Type: SourceCSV},
		})
		plans, err := f.FetchPlans(context.Background())
		require.NoError(t, err)
		assert.Len(t, plans, 2)
	})

	t.Run("error page detected", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte("<html>An unexpected error occurred." + strings.Repeat(" ", 200) + "</html>"))
		}))
		defer srv.Close()

		f := testFetcher([]Endpoint{{Name: "primary", URL: srv.URL, Type: SourceCSV}})
		_, err := f.FetchPlans(context.Background())
		assert.Error(t, err)
	})

	t.Run("all endpoints fail", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()

		f := testFetcher([]Endpoint{
			{Name: "a", URL: srv.URL, Type: SourceCSV},
			{Name: "b", URL: srv.URL, Type: SourceJSON},
		})
		_, err := f.FetchPlans(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "all catalogue endpoints failed")
	})
}
