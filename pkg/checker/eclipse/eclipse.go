// Package eclipse checks for releases of the Eclipse IDE for Java Developers.
package eclipse

import (
	"context"
	"net/url"
	"strings"

	"github.com/kylelaker/updatechecker/pkg/checker"
	"github.com/kylelaker/updatechecker/pkg/scraper"
	"github.com/pkg/errors"
)

const (
	APIEndpoint    = "https://api.eclipse.org/download/release/eclipse_packages"
	DownloadDomain = "download.eclipse.org"

	releaseNamePath = "release_name"
	redirectURLPath = "packages.java-package.files.linux.64.url"
)

var (
	ErrMissingFileParameter = errors.New("missing file parameter")
	ErrEmptyHashFile        = errors.New("empty hash file")
)

func init() {
	checker.Register(func() checker.Source { return &Source{} })
}

type Source struct{}

func (s *Source) Name() string {
	return "Eclipse IDE for Java Developers"
}

func (s *Source) ShortName() string {
	return "eclipse-java"
}

// Fetch implements checker.Source. Eclipse publishes a single release track.
func (s *Source) Fetch(ctx context.Context, sc scraper.Scraper, beta bool) (checker.Result, error) {
	doc, err := scraper.ReadAll(ctx, sc, APIEndpoint)
	if err != nil {
		return checker.Result{}, errors.Wrap(err, "could not fetch release metadata")
	}

	release, err := Lookup(doc, releaseNamePath)
	if err != nil {
		return checker.Result{}, errors.WithStack(err)
	}

	redirect, err := Lookup(doc, redirectURLPath)
	if err != nil {
		return checker.Result{}, errors.WithStack(err)
	}

	downloadURL, err := DownloadURL(redirect.String())
	if err != nil {
		return checker.Result{}, errors.WithStack(err)
	}

	hashFile, err := scraper.ReadAll(ctx, sc, downloadURL+".sha1")
	if err != nil {
		return checker.Result{}, errors.Wrap(err, "could not fetch hash file")
	}

	fields := strings.Fields(string(hashFile))
	if len(fields) == 0 {
		return checker.Result{}, errors.Wrapf(ErrEmptyHashFile, "'%s.sha1'", downloadURL)
	}

	return checker.Result{
		LatestVersion: release.String(),
		LatestURL:     downloadURL,
		SHA1Hash:      fields[0],
	}, nil
}

// DownloadURL extracts the mirror path carried by the file query parameter
// of a redirect URL and returns it as a download.eclipse.org URL.
func DownloadURL(redirect string) (string, error) {
	parsed, err := url.Parse(redirect)
	if err != nil {
		return "", errors.Wrapf(err, "could not parse redirect url '%s'", redirect)
	}

	files, exists := parsed.Query()["file"]
	if !exists || len(files) == 0 {
		return "", errors.Wrapf(ErrMissingFileParameter, "redirect url '%s'", redirect)
	}

	return "https://" + DownloadDomain + files[0], nil
}

var _ checker.Source = &Source{}
