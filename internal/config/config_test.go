package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
)

func TestParse(t *testing.T) {
	data := []byte(`
scraper: colly
timeout: 45s
retries: 2
retry_delay: 250ms
checkers:
  - name: jgrasp
    beta: true
  - name: eclipse-*
`)

	conf, err := Parse(data)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if conf.Scraper != ScraperColly {
		t.Errorf("conf.Scraper: expected %q, got %q", ScraperColly, conf.Scraper)
	}

	if conf.Timeout != 45*time.Second {
		t.Errorf("conf.Timeout: expected 45s, got %s", conf.Timeout)
	}

	if conf.Retries != 2 {
		t.Errorf("conf.Retries: expected 2, got %d", conf.Retries)
	}

	if conf.RetryDelay != 250*time.Millisecond {
		t.Errorf("conf.RetryDelay: expected 250ms, got %s", conf.RetryDelay)
	}

	// Unset values keep their defaults
	if conf.Format != FormatYAML {
		t.Errorf("conf.Format: expected %q, got %q", FormatYAML, conf.Format)
	}

	if conf.Concurrency != Default().Concurrency {
		t.Errorf("conf.Concurrency: expected %d, got %d", Default().Concurrency, conf.Concurrency)
	}

	expected := []CheckerConfig{{Name: "jgrasp", Beta: true}, {Name: "eclipse-*"}}
	if len(conf.Checkers) != len(expected) {
		t.Fatalf("len(conf.Checkers): expected %d, got %d", len(expected), len(conf.Checkers))
	}

	for i, c := range expected {
		if conf.Checkers[i] != c {
			t.Errorf("conf.Checkers[%d]: expected %+v, got %+v", i, c, conf.Checkers[i])
		}
	}
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"unknown scraper", "scraper: chrome"},
		{"unknown format", "format: toml"},
		{"negative retries", "retries: -1"},
		{"negative retry delay", "retry_delay: -1s"},
		{"unnamed checker", "checkers:\n  - beta: true"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			if !errors.Is(err, ErrInvalidConfig) {
				t.Errorf("expected ErrInvalidConfig, got %v", err)
			}
		})
	}
}

func TestLoad(t *testing.T) {
	filename := filepath.Join(t.TempDir(), "updatechecker.yml")

	if err := os.WriteFile(filename, []byte("format: json\n"), 0o644); err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	conf, err := Load(filename)
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if conf.Format != FormatJSON {
		t.Errorf("conf.Format: expected %q, got %q", FormatJSON, conf.Format)
	}

	if _, err := Load(filepath.Join(t.TempDir(), "missing.yml")); err == nil {
		t.Error("expected an error loading a missing file")
	}
}
