package jgrasp

import (
	"fmt"
	"regexp"

	"github.com/pkg/errors"
)

var ErrUnrecognizedFilename = errors.New("unrecognized download filename")

// Download names drop every separator of the version number except the one
// before the extra group, e.g. jgrasp206_17.zip for 2.0.6_17.
var versionRegex = regexp.MustCompile(
	`jgrasp` +
		`(?P<major>\d)` +
		`(?P<minor>\d)` +
		`(?P<patch>\d+)` +
		`(?P<extra>_\d+)?` +
		`(?P<beta>b(?P<beta_num>\d+)?)?`,
)

// ParseVersion rebuilds a readable version from a download filename. On the
// beta track the beta number is appended, e.g. "2.0.6_17 Beta 2".
func ParseVersion(path string, beta bool) (string, error) {
	match := versionRegex.FindStringSubmatch(path)
	if match == nil {
		return "", errors.Wrapf(ErrUnrecognizedFilename, "'%s'", path)
	}

	group := func(name string) string {
		return match[versionRegex.SubexpIndex(name)]
	}

	version := fmt.Sprintf("%s.%s.%s%s", group("major"), group("minor"), group("patch"), group("extra"))

	if beta {
		betaNum := group("beta_num")
		version = fmt.Sprintf("%s Beta %s", version, betaNum)
		// Without a number only the trailing space is dropped
		if betaNum == "" {
			version = version[:len(version)-1]
		}
	}

	return version, nil
}
