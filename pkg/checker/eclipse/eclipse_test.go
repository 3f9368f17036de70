package eclipse

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/kylelaker/updatechecker/pkg/checker"
	"github.com/kylelaker/updatechecker/pkg/scraper"
	"github.com/kylelaker/updatechecker/pkg/scraper/scrapertest"
	"github.com/pkg/errors"
)

const (
	expectedDownloadURL = "https://download.eclipse.org/technology/epp/downloads/release/2024-03/r/eclipse.tar.gz"
	expectedHash        = "abc123def4567890abc123def4567890abc123de"
)

func TestDownloadURL(t *testing.T) {
	tests := []struct {
		redirect string
		expected string
	}{
		{"https://x/redirect?file=/foo/bar.tar.gz", "https://download.eclipse.org/foo/bar.tar.gz"},
		{"https://www.eclipse.org/downloads/download.php?file=/foo/bar.tar.gz&mirror_id=1", "https://download.eclipse.org/foo/bar.tar.gz"},
		{"https://x/redirect?file=/foo/a.tar.gz&file=/foo/b.tar.gz", "https://download.eclipse.org/foo/a.tar.gz"},
	}

	for _, tt := range tests {
		t.Run(tt.redirect, func(t *testing.T) {
			got, err := DownloadURL(tt.redirect)
			if err != nil {
				t.Fatalf("%+v", errors.WithStack(err))
			}

			if got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestDownloadURLMissingFile(t *testing.T) {
	if _, err := DownloadURL("https://x/redirect?mirror_id=1"); !errors.Is(err, ErrMissingFileParameter) {
		t.Errorf("expected ErrMissingFileParameter, got %v", err)
	}
}

func newScraper() *scrapertest.Scraper {
	return scrapertest.New().
		ServeString(APIEndpoint, packagesDoc).
		ServeString(expectedDownloadURL+".sha1", expectedHash+" eclipse.tar.gz\n")
}

func TestFetch(t *testing.T) {
	sc := newScraper()
	c := checker.NewChecker(&Source{}, checker.WithScraper(sc))

	if err := c.Load(context.Background()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if c.LatestVersion() != "2024-03" {
		t.Errorf("LatestVersion: expected %q, got %q", "2024-03", c.LatestVersion())
	}

	if c.LatestURL() != expectedDownloadURL {
		t.Errorf("LatestURL: expected %q, got %q", expectedDownloadURL, c.LatestURL())
	}

	if c.SHA1Hash() != expectedHash {
		t.Errorf("SHA1Hash: expected %q, got %q", expectedHash, c.SHA1Hash())
	}

	requests := sc.Requests()
	expectedRequests := []string{APIEndpoint, expectedDownloadURL + ".sha1"}

	if len(requests) != len(expectedRequests) {
		t.Fatalf("expected requests %v, got %v", expectedRequests, requests)
	}

	for i := range requests {
		if requests[i] != expectedRequests[i] {
			t.Errorf("requests[%d]: expected %q, got %q", i, expectedRequests[i], requests[i])
		}
	}
}

func TestFetchTwice(t *testing.T) {
	c := checker.NewChecker(&Source{}, checker.WithScraper(newScraper()))

	ctx := context.Background()

	if err := c.Load(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	first, _ := c.Result()

	if err := c.Load(ctx); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	second, _ := c.Result()

	if first != second {
		t.Errorf("expected identical results, got %+v and %+v", first, second)
	}
}

func TestFetchFailures(t *testing.T) {
	tests := []struct {
		name     string
		scraper  *scrapertest.Scraper
		expected error
	}{
		{
			name:     "metadata unavailable",
			scraper:  newScraper().Fail(APIEndpoint, scraper.ErrUnexpectedStatus),
			expected: scraper.ErrUnexpectedStatus,
		},
		{
			name:     "missing package",
			scraper:  newScraper().ServeString(APIEndpoint, `{"release_name": "2024-03", "packages": {}}`),
			expected: ErrKeyNotFound,
		},
		{
			name:     "missing release name",
			scraper:  newScraper().ServeString(APIEndpoint, `{"packages": {}}`),
			expected: ErrKeyNotFound,
		},
		{
			name: "missing file parameter",
			scraper: newScraper().ServeString(APIEndpoint,
				`{"release_name": "2024-03", "packages": {"java-package": {"files": {"linux": {"64": {"url": "https://x/redirect"}}}}}}`),
			expected: ErrMissingFileParameter,
		},
		{
			name:     "hash file unavailable",
			scraper:  newScraper().Fail(expectedDownloadURL+".sha1", scraper.ErrUnexpectedStatus),
			expected: scraper.ErrUnexpectedStatus,
		},
		{
			name:     "empty hash file",
			scraper:  newScraper().ServeString(expectedDownloadURL+".sha1", " \n"),
			expected: ErrEmptyHashFile,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := checker.NewChecker(&Source{}, checker.WithScraper(tt.scraper))

			err := c.Load(context.Background())
			if !errors.Is(err, tt.expected) {
				t.Fatalf("expected %v, got %v", tt.expected, err)
			}

			if _, loaded := c.Result(); loaded {
				t.Error("expected no result")
			}
		})
	}
}

func TestRegistered(t *testing.T) {
	c, err := checker.New("eclipse-java")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if c.Name() != "Eclipse IDE for Java Developers" {
		t.Errorf("unexpected name %q", c.Name())
	}
}

func TestFetchDoesNotLog(t *testing.T) {
	var buf bytes.Buffer

	previous := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer slog.SetDefault(previous)

	if err := checker.NewChecker(&Source{}, checker.WithScraper(newScraper())).Load(context.Background()); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if buf.Len() != 0 {
		t.Errorf("expected no log output, got:\n%s", buf.String())
	}
}
