// Package scrapertest provides an in-memory scraper.Scraper for tests.
package scrapertest

import (
	"bytes"
	"context"
	"io"
	"sync"

	"github.com/kylelaker/updatechecker/pkg/scraper"
	"github.com/pkg/errors"
)

// Scraper serves canned bodies keyed by URL and records every request.
type Scraper struct {
	mu        sync.Mutex
	responses map[string][]byte
	failures  map[string]error
	requests  []string
}

func New() *Scraper {
	return &Scraper{
		responses: make(map[string][]byte),
		failures:  make(map[string]error),
	}
}

// Serve registers body as the response for url.
func (s *Scraper) Serve(url string, body []byte) *Scraper {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.responses[url] = body
	delete(s.failures, url)

	return s
}

// ServeString is Serve with a string body.
func (s *Scraper) ServeString(url string, body string) *Scraper {
	return s.Serve(url, []byte(body))
}

// Fail makes requests to url return err.
func (s *Scraper) Fail(url string, err error) *Scraper {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.failures[url] = err
	delete(s.responses, url)

	return s
}

// Requests returns the requested URLs in order.
func (s *Scraper) Requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests := make([]string, len(s.requests))
	copy(requests, s.requests)

	return requests
}

// Check implements scraper.Scraper.
func (s *Scraper) Check(ctx context.Context, url string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, url)

	if err, exists := s.failures[url]; exists {
		return false, errors.WithStack(err)
	}

	_, exists := s.responses[url]

	return exists, nil
}

// Get implements scraper.Scraper. Unknown URLs behave like a 404.
func (s *Scraper) Get(ctx context.Context, url string) (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.requests = append(s.requests, url)

	if err, exists := s.failures[url]; exists {
		return nil, errors.WithStack(err)
	}

	body, exists := s.responses[url]
	if !exists {
		return nil, errors.Wrapf(scraper.ErrUnexpectedStatus, "GET %s: 404", url)
	}

	return io.NopCloser(bytes.NewReader(body)), nil
}

var _ scraper.Scraper = &Scraper{}
