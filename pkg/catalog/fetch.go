// Package catalog ingests the Texas retail plan catalogue from Power to
// Choose: endpoint fallback, retry with backoff, CSV/JSON parsing, field
// normalization, and duplicate collapsing.
package catalog

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/kilowatch/kilowatch/pkg/common"
	"github.com/kilowatch/kilowatch/pkg/log"
	"github.com/kilowatch/kilowatch/pkg/types"
	"github.com/levenlabs/go-lflag"
)

// SourceType identifies the payload format an endpoint serves.
type SourceType string

const (
	SourceCSV  SourceType = "csv"
	SourceJSON SourceType = "json"
)

// Endpoint is one upstream catalogue source.
type Endpoint struct {
	Name string
	URL  string
	Type SourceType
}

// defaultEndpoints in order of preference. The plain-HTTP CSV export is the
// most reliable; the API and HTTPS export are fallbacks.
var defaultEndpoints = []Endpoint{
	{Name: "CSV Export", URL: "http://www.powertochoose.org/en-us/Plan/ExportToCsv", Type: SourceCSV},
	{Name: "API v1", URL: "http://api.powertochoose.org/api/PowerToChoose/plans", Type: SourceJSON},
	{Name: "HTTPS CSV Export", URL: "https://www.powertochoose.org/en-us/Plan/ExportToCsv", Type: SourceCSV},
}

// Power to Choose blocks obvious bots, so requests carry rotating browser
// user agents.
var browserUserAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.2 Safari/605.1.15",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:122.0) Gecko/20100101 Firefox/122.0",
	"Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36",
}

const fetchTimeout = 45 * time.Second

// Fetcher downloads and parses the plan catalogue.
type Fetcher struct {
	client    *http.Client
	endpoints []Endpoint
	retry     common.RetryOptions
	testFile  string
}

// Configured sets up a Fetcher from flags.
func Configured() *Fetcher {
	testFile := lflag.String("catalog-test-file", "", "Read the catalogue from a local CSV file instead of fetching")

	f := NewFetcher()

	lflag.Do(func() {
		f.testFile = *testFile
	})

	return f
}

// NewFileFetcher returns a Fetcher that reads the catalogue from a local
// CSV file instead of the network, for offline runs.
func NewFileFetcher(path string) *Fetcher {
	f := NewFetcher()
	f.testFile = path
	return f
}

// NewFetcher returns a Fetcher with the default endpoints and retry policy.
func NewFetcher() *Fetcher {
	return &Fetcher{
		client:    common.HTTPClient(fetchTimeout),
		endpoints: defaultEndpoints,
		retry:     common.DefaultRetryOptions,
	}
}

// FetchPlans downloads the catalogue, trying each endpoint in order with
// retries, and returns the parsed (not yet deduplicated) plan list.
func (f *Fetcher) FetchPlans(ctx context.Context) ([]types.Plan, error) {
	if f.testFile != "" {
		b, err := os.ReadFile(f.testFile)
		if err != nil {
			return nil, fmt.Errorf("failed to read test file: %w", err)
		}
		return ParseCSV(string(b))
	}

	var errs []error
	for _, ep := range f.endpoints {
		log.Ctx(ctx).InfoContext(ctx, "trying catalogue endpoint",
			slog.String("endpoint", ep.Name), slog.String("url", ep.URL))

		var body string
		err := common.Retry(ctx, f.retry, func(ctx context.Context) error {
			var err error
			body, err = f.fetch(ctx, ep)
			return err
		})
		if err != nil {
			log.Ctx(ctx).WarnContext(ctx, "catalogue endpoint failed",
				slog.String("endpoint", ep.Name), slog.Any("error", err))
			errs = append(errs, fmt.Errorf("%s: %w", ep.Name, err))
			continue
		}

		var plans []types.Plan
		switch ep.Type {
		case SourceJSON:
			plans, err = ParseJSON(body)
		default:
			plans, err = ParseCSV(body)
		}
		if err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", ep.Name, err))
			continue
		}
		if len(plans) == 0 {
			errs = append(errs, fmt.Errorf("%s: no plans in response", ep.Name))
			continue
		}

		log.Ctx(ctx).InfoContext(ctx, "fetched catalogue",
			slog.String("endpoint", ep.Name), slog.Int("plans", len(plans)))
		return plans, nil
	}
	return nil, fmt.Errorf("all catalogue endpoints failed: %w", errors.Join(errs...))
}

func (f *Fetcher) fetch(ctx context.Context, ep Endpoint) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ep.URL, nil)
	if err != nil {
		return "", fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgents[rand.Intn(len(browserUserAgents))])
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,text/csv,*/*;q=0.8")
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")
	req.Header.Set("Cache-Control", "no-cache")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status %d", resp.StatusCode)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	body := string(b)

	if len(body) < 100 {
		return "", fmt.Errorf("response too short (%d bytes)", len(body))
	}
	// the site serves 200s with an HTML error page when it blocks a client
	head := strings.ToLower(body[:min(500, len(body))])
	if strings.Contains(head, "error") && !strings.Contains(head, "plan") {
		return "", fmt.Errorf("error page received")
	}
	return body, nil
}
