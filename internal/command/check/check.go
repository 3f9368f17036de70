package check

import (
	"context"
	"log/slog"
	"net/http"
	"slices"

	"github.com/kylelaker/updatechecker/internal/config"
	"github.com/kylelaker/updatechecker/pkg/checker"
	"github.com/kylelaker/updatechecker/pkg/scraper"
	"github.com/kylelaker/updatechecker/pkg/scraper/colly"
	"github.com/kylelaker/updatechecker/pkg/scraper/surf"
	"github.com/pkg/errors"
	"github.com/urfave/cli/v2"
)

func Check() *cli.Command {
	return &cli.Command{
		Name:      "check",
		Usage:     "Check the latest releases of the given checkers (glob patterns, default to all)",
		ArgsUsage: "[pattern...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "config",
				Value:     "",
				Aliases:   []string{"c"},
				EnvVars:   []string{"UPDATECHECKER_CONFIG"},
				Usage:     "YAML configuration file",
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:    "beta",
				Aliases: []string{"b"},
				EnvVars: []string{"UPDATECHECKER_BETA"},
				Usage:   "Check the beta release track where available",
			},
			&cli.StringFlag{
				Name:    "format",
				Value:   config.FormatYAML,
				Aliases: []string{"f"},
				EnvVars: []string{"UPDATECHECKER_FORMAT"},
				Usage:   "Report format (yaml, json)",
			},
			&cli.StringFlag{
				Name:      "output",
				Value:     "",
				Aliases:   []string{"o"},
				EnvVars:   []string{"UPDATECHECKER_OUTPUT"},
				Usage:     "Write the reports to this file instead of stdout",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:      "output-dir",
				Value:     "",
				EnvVars:   []string{"UPDATECHECKER_OUTPUT_DIR"},
				Usage:     "Write one report file per checker in this directory",
				TakesFile: true,
			},
			&cli.StringFlag{
				Name:    "scraper",
				Value:   config.ScraperHTTP,
				EnvVars: []string{"UPDATECHECKER_SCRAPER"},
				Usage:   "HTTP backend (http, surf, colly)",
			},
			&cli.DurationFlag{
				Name:    "timeout",
				Value:   scraper.DefaultTimeout,
				EnvVars: []string{"UPDATECHECKER_TIMEOUT"},
				Usage:   "Timeout of each HTTP request",
			},
			&cli.IntFlag{
				Name:    "retries",
				Value:   0,
				EnvVars: []string{"UPDATECHECKER_RETRIES"},
				Usage:   "Number of retries of failed HTTP requests",
			},
			&cli.DurationFlag{
				Name:    "retry-delay",
				EnvVars: []string{"UPDATECHECKER_RETRY_DELAY"},
				Value:   config.Default().RetryDelay,
				Usage:   "Base delay of the exponential backoff between retries",
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Value:   config.Default().Concurrency,
				EnvVars: []string{"UPDATECHECKER_CONCURRENCY"},
				Usage:   "Maximum number of checkers running at once",
			},
		},
		Action: func(cliCtx *cli.Context) error {
			conf, err := loadConfig(cliCtx)
			if err != nil {
				return errors.WithStack(err)
			}

			sc, err := NewScraper(conf)
			if err != nil {
				return errors.WithStack(err)
			}

			checkers, err := Resolve(cliCtx.Args().Slice(), conf.Checkers, cliCtx.Bool("beta"), checker.WithScraper(sc))
			if err != nil {
				return errors.WithStack(err)
			}

			ctx := cliCtx.Context

			slog.InfoContext(ctx, "running checkers", slog.Int("count", len(checkers)), slog.String("scraper", conf.Scraper))

			reports, loadErr := Run(ctx, checkers, conf.Concurrency)

			if dir := cliCtx.String("output-dir"); dir != "" {
				if err := WriteReportFiles(dir, conf.Format, reports); err != nil {
					return errors.WithStack(err)
				}
			}

			if output := cliCtx.String("output"); output != "" {
				if err := WriteReportFile(output, conf.Format, reports); err != nil {
					return errors.WithStack(err)
				}
			} else if cliCtx.String("output-dir") == "" {
				if err := WriteReports(cliCtx.App.Writer, conf.Format, reports); err != nil {
					return errors.WithStack(err)
				}
			}

			if loadErr != nil {
				return errors.Wrap(loadErr, "some checks failed")
			}

			return nil
		},
	}
}

// Run loads every checker and returns their reports in the same order.
func Run(ctx context.Context, checkers []*checker.Checker, concurrency int) (checker.Reports, error) {
	errs, err := checker.LoadAll(ctx, checkers, concurrency)

	reports := make(checker.Reports, 0, len(checkers))
	for i, c := range checkers {
		reports = append(reports, checker.NewReport(c, errs[i]))
	}

	return reports, err
}

// Resolve creates the checkers selected by the command line patterns, or by
// the configuration file when no pattern is given, or every registered
// checker otherwise.
func Resolve(patterns []string, configured []config.CheckerConfig, beta bool, funcs ...checker.OptionFunc) ([]*checker.Checker, error) {
	type selection struct {
		name string
		beta bool
	}

	selections := make([]selection, 0)

	add := func(names []string, beta bool) {
		for _, name := range names {
			s := selection{name: name, beta: beta}
			if slices.Contains(selections, s) {
				continue
			}

			selections = append(selections, s)
		}
	}

	switch {
	case len(patterns) > 0:
		names, err := checker.Match(patterns...)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		add(names, beta)

	case len(configured) > 0:
		for _, c := range configured {
			names, err := checker.Match(c.Name)
			if err != nil {
				return nil, errors.WithStack(err)
			}

			add(names, beta || c.Beta)
		}

	default:
		add(checker.Names(), beta)
	}

	checkers := make([]*checker.Checker, 0, len(selections))
	for _, s := range selections {
		opts := append(slices.Clone(funcs), checker.WithBeta(s.beta))

		c, err := checker.New(s.name, opts...)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		checkers = append(checkers, c)
	}

	return checkers, nil
}

// NewScraper creates the scraper backend described by conf.
func NewScraper(conf *config.Config) (scraper.Scraper, error) {
	var sc scraper.Scraper

	switch conf.Scraper {
	case config.ScraperHTTP:
		sc = scraper.NewHTTPScraper(&http.Client{Timeout: conf.Timeout})
	case config.ScraperSurf:
		sc = surf.NewScraper(conf.Timeout)
	case config.ScraperColly:
		sc = colly.NewScraper(conf.Timeout)
	default:
		return nil, errors.Wrapf(config.ErrInvalidConfig, "unknown scraper '%s'", conf.Scraper)
	}

	if conf.Retries > 0 {
		sc = scraper.WithRetry(sc, conf.Retries, conf.RetryDelay)
	}

	return sc, nil
}

func loadConfig(cliCtx *cli.Context) (*config.Config, error) {
	conf := config.Default()

	filename := cliCtx.String("config")
	if filename != "" {
		loaded, err := config.Load(filename)
		if err != nil {
			return nil, errors.WithStack(err)
		}

		conf = loaded
	}

	// Flags win over the configuration file only when explicitly set
	override := func(name string) bool {
		return filename == "" || cliCtx.IsSet(name)
	}

	if override("scraper") {
		conf.Scraper = cliCtx.String("scraper")
	}

	if override("format") {
		conf.Format = cliCtx.String("format")
	}

	if override("timeout") {
		conf.Timeout = cliCtx.Duration("timeout")
	}

	if override("retries") {
		conf.Retries = cliCtx.Int("retries")
	}

	if override("retry-delay") {
		conf.RetryDelay = cliCtx.Duration("retry-delay")
	}

	if override("concurrency") {
		conf.Concurrency = cliCtx.Int("concurrency")
	}

	if err := conf.Validate(); err != nil {
		return nil, errors.WithStack(err)
	}

	return conf, nil
}
