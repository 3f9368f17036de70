// Package checker defines the contract shared by every vendor update checker
// and the registry mapping short names to their implementations.
package checker

import (
	"context"

	"github.com/kylelaker/updatechecker/pkg/scraper"
	"github.com/pkg/errors"
)

// Result is the outcome of a successful check.
type Result struct {
	LatestVersion string
	LatestURL     string
	// SHA1Hash is the lowercase hex digest of the artifact at LatestURL.
	SHA1Hash string
}

// Source knows how to resolve the latest release of one product.
type Source interface {
	// Name is the human readable product name.
	Name() string
	// ShortName is an identifier-safe name, unique in the registry.
	ShortName() string
	// Fetch resolves the latest release on the stable or beta track.
	Fetch(ctx context.Context, s scraper.Scraper, beta bool) (Result, error)
}

// Diagnoser is implemented by errors carrying details worth logging at
// debug level, such as the page a source failed to understand.
type Diagnoser interface {
	Diagnostic() string
}

// Checker runs a Source and holds the result of its last load.
type Checker struct {
	source  Source
	scraper scraper.Scraper
	beta    bool
	result  *Result
}

type Options struct {
	Beta    bool
	Scraper scraper.Scraper
}

type OptionFunc func(opts *Options)

// WithBeta selects the beta release track where the vendor offers one.
func WithBeta(beta bool) OptionFunc {
	return func(opts *Options) {
		opts.Beta = beta
	}
}

func WithScraper(s scraper.Scraper) OptionFunc {
	return func(opts *Options) {
		opts.Scraper = s
	}
}

func NewOptions(funcs ...OptionFunc) *Options {
	opts := &Options{
		Beta:    false,
		Scraper: scraper.DefaultScraper(),
	}

	for _, fn := range funcs {
		fn(opts)
	}

	return opts
}

func NewChecker(source Source, funcs ...OptionFunc) *Checker {
	opts := NewOptions(funcs...)

	return &Checker{
		source:  source,
		scraper: opts.Scraper,
		beta:    opts.Beta,
	}
}

func (c *Checker) Name() string {
	return c.source.Name()
}

func (c *Checker) ShortName() string {
	return c.source.ShortName()
}

func (c *Checker) Beta() bool {
	return c.beta
}

// SetBeta switches the release track used by the next Load.
func (c *Checker) SetBeta(beta bool) {
	c.beta = beta
}

// Load resolves the latest release. On failure the previous result is
// discarded and the error is returned as is, the checker never retries.
func (c *Checker) Load(ctx context.Context) error {
	c.result = nil

	result, err := c.source.Fetch(ctx, c.scraper, c.beta)
	if err != nil {
		return errors.WithStack(err)
	}

	c.result = &result

	return nil
}

// Result returns the last loaded result, if any.
func (c *Checker) Result() (Result, bool) {
	if c.result == nil {
		return Result{}, false
	}

	return *c.result, true
}

func (c *Checker) LatestVersion() string {
	result, _ := c.Result()
	return result.LatestVersion
}

func (c *Checker) LatestURL() string {
	result, _ := c.Result()
	return result.LatestURL
}

func (c *Checker) SHA1Hash() string {
	result, _ := c.Result()
	return result.SHA1Hash
}
