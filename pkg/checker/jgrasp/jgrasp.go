// Package jgrasp checks for releases of the jGRASP IDE.
package jgrasp

import (
	"context"
	"crypto/sha1" //nolint:gosec // jGRASP downloads are identified by their SHA-1
	"encoding/hex"
	"io"
	"fmt"
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/PuerkitoBio/goquery"
	"github.com/kylelaker/updatechecker/pkg/checker"
	"github.com/kylelaker/updatechecker/pkg/scraper"
	"github.com/pkg/errors"
)

const (
	Domain       = "https://jgrasp.org"
	DownloadPage = "https://spider.eng.auburn.edu/user-cgi/grasp/grasp.pl"

	downloadSubdir = "dl4g"
	// The download CGI expects a literal semicolon, url.Values would encode it.
	downloadQuery = ";dl=download_jgrasp.html"

	stableTarget = ";target3"
	betaTarget   = ";target23"
)

var (
	ErrElementNotFound = errors.New("download element not found")
	ErrMissingValue    = errors.New("download element has no value")
)

func init() {
	checker.Register(func() checker.Source { return &Source{} })
}

type Source struct{}

func (s *Source) Name() string {
	return "jGRASP"
}

func (s *Source) ShortName() string {
	return "jgrasp"
}

// Fetch implements checker.Source.
func (s *Source) Fetch(ctx context.Context, sc scraper.Scraper, beta bool) (checker.Result, error) {
	page, err := sc.Get(ctx, DownloadPageURL())
	if err != nil {
		return checker.Result{}, errors.Wrap(err, "could not fetch download page")
	}

	defer page.Close()

	doc, err := goquery.NewDocumentFromReader(page)
	if err != nil {
		return checker.Result{}, errors.WithStack(err)
	}

	path, err := FindDownloadPath(doc, Target(beta))
	if err != nil {
		return checker.Result{}, errors.WithStack(err)
	}

	version, err := ParseVersion(path, beta)
	if err != nil {
		return checker.Result{}, errors.WithStack(err)
	}

	downloadURL := DownloadURL(path)

	hash, err := hashDownload(ctx, sc, downloadURL)
	if err != nil {
		return checker.Result{}, errors.WithStack(err)
	}

	return checker.Result{
		LatestVersion: version,
		LatestURL:     downloadURL,
		SHA1Hash:      hash,
	}, nil
}

// Target returns the name of the form element holding the download path of
// the selected release track.
func Target(beta bool) string {
	if beta {
		return betaTarget
	}

	return stableTarget
}

func DownloadPageURL() string {
	return DownloadPage + "?" + downloadQuery
}

func DownloadURL(path string) string {
	return Domain + "/" + downloadSubdir + "/" + path
}

// FindDownloadPath returns the value of the first element whose name
// attribute equals target.
func FindDownloadPath(doc *goquery.Document, target string) (string, error) {
	elements := doc.Find("[name]").FilterFunction(func(i int, s *goquery.Selection) bool {
		return s.AttrOr("name", "") == target
	})

	if elements.Length() == 0 {
		return "", errors.WithStack(&LayoutError{Target: target, Page: pageMarkdown(doc)})
	}

	value, exists := elements.First().Attr("value")
	if !exists {
		return "", errors.Wrapf(ErrMissingValue, "element named '%s'", target)
	}

	return value, nil
}

func hashDownload(ctx context.Context, sc scraper.Scraper, downloadURL string) (string, error) {
	body, err := sc.Get(ctx, downloadURL)
	if err != nil {
		return "", errors.Wrap(err, "could not download release")
	}

	defer body.Close()

	h := sha1.New() //nolint:gosec
	if _, err := io.Copy(h, body); err != nil {
		return "", errors.Wrapf(err, "could not read '%s'", downloadURL)
	}

	return hex.EncodeToString(h.Sum(nil)), nil
}

// LayoutError reports a download page without the expected form element.
// Page holds the page body as markdown.
type LayoutError struct {
	Target string
	Page   string
}

func (e *LayoutError) Error() string {
	return fmt.Sprintf("no element named '%s': %s", e.Target, ErrElementNotFound)
}

func (e *LayoutError) Unwrap() error {
	return ErrElementNotFound
}

// Diagnostic implements checker.Diagnoser.
func (e *LayoutError) Diagnostic() string {
	return e.Page
}

func pageMarkdown(doc *goquery.Document) string {
	html, err := doc.Find("body").Html()
	if err != nil {
		return ""
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
		),
	)

	markdown, err := conv.ConvertString(html)
	if err != nil {
		return ""
	}

	return strings.TrimSpace(markdown)
}

var _ checker.Source = &Source{}
