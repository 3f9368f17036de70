package surf

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/kylelaker/updatechecker/pkg/scraper"
	"github.com/pkg/errors"
)

func TestScraper(t *testing.T) {
	mux := http.NewServeMux()

	mux.HandleFunc("/release.zip", func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, "PK\x03\x04release")
	})

	mux.HandleFunc("/missing", func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nothing here", http.StatusNotFound)
	})

	server := httptest.NewServer(mux)
	defer server.Close()

	t.Setenv("HTTP_PROXY", "")

	s := NewScraper(10 * time.Second)
	ctx := context.Background()

	data, err := scraper.ReadAll(ctx, s, server.URL+"/release.zip")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if string(data) != "PK\x03\x04release" {
		t.Errorf("body: unexpected %q", data)
	}

	ok, err := s.Check(ctx, server.URL+"/release.zip")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if !ok {
		t.Error("Check(/release.zip): expected true")
	}

	if _, err := s.Get(ctx, server.URL+"/missing"); !errors.Is(err, scraper.ErrUnexpectedStatus) {
		t.Errorf("expected ErrUnexpectedStatus, got %v", err)
	}

	ok, err = s.Check(ctx, server.URL+"/missing")
	if err != nil {
		t.Fatalf("%+v", errors.WithStack(err))
	}

	if ok {
		t.Error("Check(/missing): expected false")
	}
}

func TestNewScraperDefaultTimeout(t *testing.T) {
	if s := NewScraper(0); s.timeout != scraper.DefaultTimeout {
		t.Errorf("expected %s, got %s", scraper.DefaultTimeout, s.timeout)
	}
}
