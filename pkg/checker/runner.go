package checker

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/kylelaker/updatechecker/internal/logx"
	"github.com/pkg/errors"
)

// LoadAll loads the given checkers with at most concurrency running at once.
// A failing checker does not stop the others. The returned slice holds the
// error of each checker at the same index, the returned error aggregates them.
func LoadAll(ctx context.Context, checkers []*Checker, concurrency int) ([]error, error) {
	if concurrency <= 0 {
		concurrency = len(checkers)
	}

	errs := make([]error, len(checkers))

	var (
		wg            sync.WaitGroup
		errLock       sync.Mutex
		aggregatedErr error
	)

	sem := make(chan struct{}, max(concurrency, 1))

	wg.Add(len(checkers))

	for i, c := range checkers {
		go func(i int, c *Checker) {
			defer wg.Done()

			ctx := logx.WithAttrs(ctx, slog.String("checker", c.ShortName()), slog.Bool("beta", c.Beta()))

			fail := func(err error) {
				slog.ErrorContext(ctx, "checker failed", slog.Any("error", err))

				var diag Diagnoser
				if errors.As(err, &diag) {
					slog.DebugContext(ctx, "checker diagnostic", slog.String("diagnostic", diag.Diagnostic()))
				}

				errs[i] = err

				errLock.Lock()
				aggregatedErr = multierror.Append(aggregatedErr, errors.Wrapf(err, "%s", c.ShortName()))
				errLock.Unlock()
			}

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
			}

			if err := ctx.Err(); err != nil {
				fail(errors.WithStack(err))
				return
			}

			slog.DebugContext(ctx, "loading checker")

			start := time.Now()

			if err := c.Load(ctx); err != nil {
				fail(err)
				return
			}

			slog.InfoContext(ctx, "checker loaded",
				slog.String("version", c.LatestVersion()),
				slog.String("url", c.LatestURL()),
				slog.Duration("elapsed", time.Since(start).Round(time.Millisecond)),
			)
		}(i, c)
	}

	wg.Wait()

	return errs, aggregatedErr
}
