// Package scraper provides the HTTP capability used by update checkers to
// retrieve vendor pages, API documents and release artifacts.
package scraper

import (
	"context"
	"io"

	"github.com/pkg/errors"
)

var ErrUnexpectedStatus = errors.New("unexpected response status")

// Scraper retrieves remote resources. Get returns an error for any
// response that is not a success, the caller must close the returned body.
type Scraper interface {
	Get(ctx context.Context, url string) (io.ReadCloser, error)
	Check(ctx context.Context, url string) (bool, error)
}

// ReadAll fetches url and returns its whole body.
func ReadAll(ctx context.Context, s Scraper, url string) ([]byte, error) {
	body, err := s.Get(ctx, url)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	defer body.Close()

	data, err := io.ReadAll(body)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read body of '%s'", url)
	}

	return data, nil
}
