// Package config loads the optional YAML configuration file.
package config

import (
	"os"
	"time"

	"github.com/kylelaker/updatechecker/pkg/scraper"
	"github.com/pkg/errors"
	"go.yaml.in/yaml/v3"
)

const (
	ScraperHTTP  = "http"
	ScraperSurf  = "surf"
	ScraperColly = "colly"

	FormatYAML = "yaml"
	FormatJSON = "json"
)

var ErrInvalidConfig = errors.New("invalid configuration")

type Config struct {
	Scraper     string          `yaml:"scraper"`
	Timeout     time.Duration   `yaml:"timeout"`
	Retries     int             `yaml:"retries"`
	RetryDelay  time.Duration   `yaml:"retry_delay"`
	Concurrency int             `yaml:"concurrency"`
	Format      string          `yaml:"format"`
	Checkers    []CheckerConfig `yaml:"checkers"`
}

// CheckerConfig selects checkers by short name or glob pattern.
type CheckerConfig struct {
	Name string `yaml:"name"`
	Beta bool   `yaml:"beta"`
}

func Default() *Config {
	return &Config{
		Scraper:     ScraperHTTP,
		Timeout:     scraper.DefaultTimeout,
		Retries:     0,
		RetryDelay:  time.Second,
		Concurrency: 4,
		Format:      FormatYAML,
	}
}

// Load reads filename over the defaults.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "could not read config file '%s'", filename)
	}

	conf, err := Parse(data)
	if err != nil {
		return nil, errors.Wrapf(err, "could not load config file '%s'", filename)
	}

	return conf, nil
}

func Parse(data []byte) (*Config, error) {
	conf := Default()

	if err := yaml.Unmarshal(data, conf); err != nil {
		return nil, errors.WithStack(err)
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	return conf, nil
}

func (c *Config) Validate() error {
	switch c.Scraper {
	case ScraperHTTP, ScraperSurf, ScraperColly:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown scraper '%s'", c.Scraper)
	}

	switch c.Format {
	case FormatYAML, FormatJSON:
	default:
		return errors.Wrapf(ErrInvalidConfig, "unknown format '%s'", c.Format)
	}

	if c.RetryDelay < 0 {
		return errors.Wrapf(ErrInvalidConfig, "negative retry delay %s", c.RetryDelay)
	}

	if c.Retries < 0 {
		return errors.Wrapf(ErrInvalidConfig, "retries must be positive, got %d", c.Retries)
	}

	for i, checker := range c.Checkers {
		if checker.Name == "" {
			return errors.Wrapf(ErrInvalidConfig, "checker #%d has no name", i)
		}
	}

	return nil
}
