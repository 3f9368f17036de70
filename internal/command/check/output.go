package check

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"github.com/gosimple/slug"
	"github.com/kylelaker/updatechecker/internal/config"
	"github.com/kylelaker/updatechecker/pkg/checker"
	"github.com/pkg/errors"
	"go.yaml.in/yaml/v3"
)

// WriteReports encodes reports to w in the given format.
func WriteReports(w io.Writer, format string, reports any) error {
	switch format {
	case config.FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")

		if err := encoder.Encode(reports); err != nil {
			return errors.Wrap(err, "could not encode reports")
		}

	case config.FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)

		if err := encoder.Encode(reports); err != nil {
			return errors.Wrap(err, "could not encode reports")
		}

		if err := encoder.Close(); err != nil {
			return errors.WithStack(err)
		}

	default:
		return errors.Wrapf(config.ErrInvalidConfig, "unknown format '%s'", format)
	}

	return nil
}

func WriteReportFile(filename string, format string, reports any) error {
	var buff bytes.Buffer

	if err := WriteReports(&buff, format, reports); err != nil {
		return errors.WithStack(err)
	}

	if err := os.WriteFile(filename, buff.Bytes(), 0644); err != nil {
		return errors.Wrapf(err, "could not write report file '%s'", filename)
	}

	return nil
}

// WriteReportFiles writes each report to its own file named after the
// checker short name.
func WriteReportFiles(dir string, format string, reports checker.Reports) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.Wrapf(err, "could not create output directory '%s'", dir)
	}

	for _, r := range reports {
		filename := filepath.Join(dir, ReportFilename(r, format))

		if err := WriteReportFile(filename, format, r); err != nil {
			return errors.WithStack(err)
		}
	}

	return nil
}

func ReportFilename(r checker.Report, format string) string {
	name := r.ShortName
	if r.Beta {
		name += " beta"
	}

	ext := ".yml"
	if format == config.FormatJSON {
		ext = ".json"
	}

	return slug.Make(name) + ext
}
