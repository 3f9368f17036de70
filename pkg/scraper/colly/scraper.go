package colly

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/gocolly/colly"
	"github.com/kylelaker/updatechecker/pkg/scraper"
	"github.com/pkg/errors"
)

const userAgent = "Mozilla/5.0 (X11; Linux x86_64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/135.0.0.0 Safari/537.36"

// Scraper fetches resources with a colly collector. Bodies are buffered in
// memory, which is fine for the artifact sizes vendors publish.
type Scraper struct {
	timeout time.Duration
}

// Check implements scraper.Scraper.
func (s *Scraper) Check(ctx context.Context, url string) (bool, error) {
	if _, err := s.fetch(ctx, url); err != nil {
		if errors.Is(err, scraper.ErrUnexpectedStatus) {
			return false, nil
		}

		return false, errors.WithStack(err)
	}

	return true, nil
}

// Get implements scraper.Scraper.
func (s *Scraper) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	body, err := s.fetch(ctx, url)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return io.NopCloser(bytes.NewReader(body)), nil
}

func (s *Scraper) fetch(ctx context.Context, url string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.WithStack(err)
	}

	collector := colly.NewCollector(
		colly.UserAgent(userAgent),
		colly.AllowURLRevisit(),
	)

	// Release archives are larger than the default 10MB limit
	collector.MaxBodySize = 0
	collector.SetRequestTimeout(s.timeout)

	var (
		body     []byte
		fetchErr error
	)

	collector.OnRequest(func(r *colly.Request) {
		slog.DebugContext(ctx, "colly request", slog.String("url", r.URL.String()))
	})

	collector.OnResponse(func(r *colly.Response) {
		body = r.Body
	})

	collector.OnError(func(r *colly.Response, err error) {
		if r != nil && r.StatusCode != 0 && (r.StatusCode < http.StatusOK || r.StatusCode >= http.StatusMultipleChoices) {
			fetchErr = errors.Wrapf(scraper.ErrUnexpectedStatus, "GET %s: %d", url, r.StatusCode)
			return
		}

		fetchErr = errors.WithStack(err)
	})

	if err := collector.Visit(url); err != nil && fetchErr == nil {
		fetchErr = errors.WithStack(err)
	}

	if fetchErr != nil {
		return nil, fetchErr
	}

	return body, nil
}

func NewScraper(timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = scraper.DefaultTimeout
	}

	return &Scraper{timeout: timeout}
}

var _ scraper.Scraper = &Scraper{}
