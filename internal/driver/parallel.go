package driver

import (
	"context"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"fixit/internal/trace"
)

// LintPaths discovers Python files under paths and lints them in parallel.
// Discovery errors are returned before any linting starts.
func LintPaths(ctx context.Context, paths []string, opts Options) ([]string, <-chan Result, error) {
	files, err := Discover(paths, opts.Configs)
	if err != nil {
		return nil, nil, err
	}
	return files, LintFiles(ctx, files, opts), nil
}

// LintFiles lints files with at most opts.Jobs workers (GOMAXPROCS when
// zero). Results arrive as files finish, in no particular order; the
// channel is closed after the last one. A cancelled context stops
// scheduling new files.
func LintFiles(ctx context.Context, files []string, opts Options) <-chan Result {
	opts.normalize()
	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}
	out := make(chan Result, jobs)

	for _, f := range files {
		emit(opts.Progress, Event{File: f, Stage: StageLint, Status: StatusQueued})
	}

	go func() {
		defer close(out)
		ctx, span := trace.Start(ctx, trace.ScopeDriver, "lint-files")
		defer span.WithExtra("files", strconv.Itoa(len(files))).WithExtra("jobs", strconv.Itoa(jobs)).End("")

		if len(files) == 0 {
			return
		}
		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(min(jobs, len(files)))

		for _, path := range files {
			if gctx.Err() != nil {
				break
			}
			g.Go(func() error {
				// ошибки файла остаются в Result и не отменяют остальные
				if gctx.Err() != nil {
					return nil
				}
				emit(opts.Progress, Event{File: path, Stage: StageLint, Status: StatusWorking})
				start := time.Now()
				res := LintFile(gctx, path, opts)
				status := StatusDone
				if res.Err != nil {
					status = StatusError
				}
				emit(opts.Progress, Event{File: path, Stage: StageLint, Status: status, Err: res.Err, Elapsed: time.Since(start)})
				select {
				case out <- res:
				case <-gctx.Done():
				}
				return nil
			})
		}
		_ = g.Wait()
	}()
	return out
}
