package scraper

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/pkg/errors"
)

const userAgent = "updatechecker (+https://github.com/kylelaker/updatechecker)"

type HTTPScraper struct {
	client *http.Client
}

// Check implements scraper.Scraper.
func (s *HTTPScraper) Check(ctx context.Context, url string) (bool, error) {
	res, err := s.do(ctx, http.MethodHead, url)
	if err != nil {
		return false, errors.WithStack(err)
	}

	defer res.Body.Close()

	return isSuccess(res.StatusCode), nil
}

// Get implements scraper.Scraper.
func (s *HTTPScraper) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	res, err := s.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	if !isSuccess(res.StatusCode) {
		defer res.Body.Close()

		body, err := io.ReadAll(io.LimitReader(res.Body, 4e+6)) // Restrict to 4MB
		if err != nil {
			return nil, errors.WithStack(err)
		}

		return nil, errors.Wrapf(ErrUnexpectedStatus, "GET %s: %d (%s):\n%s", url, res.StatusCode, res.Status, body)
	}

	return res.Body, nil
}

func (s *HTTPScraper) do(ctx context.Context, method string, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	req.Header.Set("User-Agent", userAgent)

	slog.DebugContext(ctx, "http request", slog.String("method", method), slog.String("url", url))

	res, err := s.client.Do(req)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return res, nil
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func NewHTTPScraper(client *http.Client) *HTTPScraper {
	if client == nil {
		client = http.DefaultClient
	}

	return &HTTPScraper{
		client: client,
	}
}

var _ Scraper = &HTTPScraper{}
