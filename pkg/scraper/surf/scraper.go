// Package surf provides a scraper backed by a browser-impersonating HTTP
// client, for vendors that reject plain Go clients.
package surf

import (
	"context"
	"io"
	"net/http"
	"os"
	"time"

	"github.com/enetx/g"
	"github.com/enetx/surf"
	"github.com/kylelaker/updatechecker/pkg/scraper"
	"github.com/pkg/errors"
)

type Scraper struct {
	timeout time.Duration
}

// Check implements scraper.Scraper.
func (s *Scraper) Check(ctx context.Context, url string) (bool, error) {
	client := s.getClient()
	resp := client.Get(g.String(url)).WithContext(ctx).Do()
	if resp.IsErr() {
		return false, errors.WithStack(resp.Err())
	}

	res := resp.Ok()
	defer res.Body.Reader.Close()

	return isSuccess(int(res.StatusCode)), nil
}

// Get implements scraper.Scraper.
func (s *Scraper) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	client := s.getClient()
	resp := client.Get(g.String(url)).WithContext(ctx).Do()
	if resp.IsErr() {
		return nil, errors.WithStack(resp.Err())
	}

	res := resp.Ok()

	status := int(res.StatusCode)
	if !isSuccess(status) {
		res.Body.Reader.Close()
		return nil, errors.Wrapf(scraper.ErrUnexpectedStatus, "GET %s: %d", url, status)
	}

	return res.Body.Reader, nil
}

func (s *Scraper) getClient() *surf.Client {
	builder := surf.NewClient().
		Builder()

	if proxy := os.Getenv("HTTP_PROXY"); proxy != "" {
		builder = builder.Proxy(proxy)
	}

	builder = builder.Impersonate().RandomOS().Chrome().
		Timeout(s.timeout).
		Retry(5, 5).
		Session()

	return builder.Build()
}

func isSuccess(status int) bool {
	return status >= http.StatusOK && status < http.StatusMultipleChoices
}

func NewScraper(timeout time.Duration) *Scraper {
	if timeout <= 0 {
		timeout = scraper.DefaultTimeout
	}

	return &Scraper{timeout: timeout}
}

var _ scraper.Scraper = &Scraper{}
