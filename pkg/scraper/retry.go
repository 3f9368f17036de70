package scraper

import (
	"context"
	"io"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/pkg/errors"
)

// Retry retries failed requests with an exponential backoff.
type Retry struct {
	scraper    Scraper
	baseDelay  time.Duration
	maxRetries int
}

// Check implements Scraper.
func (r *Retry) Check(ctx context.Context, url string) (bool, error) {
	var ok bool

	err := r.retry(ctx, url, func() error {
		var err error
		ok, err = r.scraper.Check(ctx, url)
		return err
	})
	if err != nil {
		return false, errors.WithStack(err)
	}

	return ok, nil
}

// Get implements Scraper.
func (r *Retry) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	var body io.ReadCloser

	err := r.retry(ctx, url, func() error {
		var err error
		body, err = r.scraper.Get(ctx, url)
		return err
	})
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return body, nil
}

func (r *Retry) retry(ctx context.Context, url string, fn func() error) error {
	backoff := r.baseDelay
	retries := 0
	for {
		err := fn()
		if err == nil {
			return nil
		}

		if retries >= r.maxRetries || ctx.Err() != nil {
			return err
		}

		slog.WarnContext(ctx, "request failed, will retry", slog.String("url", url), slog.Duration("backoff", backoff), slog.Int("retries", retries), slog.Any("error", err))

		jitter := time.Duration(rand.Float64() * float64(r.baseDelay))

		select {
		case <-ctx.Done():
			return errors.WithStack(ctx.Err())
		case <-time.After(backoff + jitter):
		}

		backoff *= 2
		retries++
	}
}

var _ Scraper = &Retry{}

func WithRetry(scraper Scraper, maxRetries int, baseDelay time.Duration) *Retry {
	return &Retry{scraper: scraper, maxRetries: maxRetries, baseDelay: baseDelay}
}
