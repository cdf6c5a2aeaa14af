// internal/app/app.go
package app

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"morphclone-core/shrink"
	"morphclone/internal/batch"
	"morphclone/internal/cli"
	"morphclone/internal/clibase"
	"morphclone/internal/common"
	"morphclone/internal/logutil"
	"morphclone/internal/report"
	"morphclone/internal/runutil"
	"morphclone/internal/shrinker"
	"morphclone/internal/version"
	"morphclone/internal/writers"
)

// RunContext drives the shrink tool: list the morphology folder, process
// every file on a worker pool, and stream per-variant outcomes to the
// selected report writer. Exit codes: 0 ok, 1 at least one morphology
// failed (or no inputs), 2 usage error, 3 I/O error, 130 cancelled.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := cli.NewFlagSet("morphclone")
	fs.SetOutput(io.Discard)

	printUsage := func() int {
		fs.SetOutput(outw)
		fs.Usage()
		if err := outw.Flush(); writers.IsBrokenPipe(err) {
			return 0
		} else if err != nil {
			_, _ = fmt.Fprintln(stderr, err)
			return 3
		}
		return 0
	}

	if len(argv) == 0 {
		return printUsage()
	}

	opts, err := cli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, clibase.ErrPrintedAndExitOK) {
			cli.PrintExamples(outw)
			if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
				_, _ = fmt.Fprintln(stderr, e)
				return 3
			}
			return 0
		}
		if errors.Is(err, flag.ErrHelp) {
			return printUsage()
		}
		_, _ = fmt.Fprintln(stderr, err)
		if code := printUsage(); code != 0 {
			return code
		}
		return 2
	}

	if opts.Version {
		_, _ = fmt.Fprintf(outw, "morphclone version %s\n", version.Version)
		if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
			_, _ = fmt.Fprintln(stderr, e)
			return 3
		}
		return 0
	}

	axis, err := shrink.ParseAxis(opts.Axis)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	paths, err := common.ListMorphologies(opts.FilesDir)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if len(paths) == 0 {
		_, _ = fmt.Fprintf(stderr, "no morphologies found in %s\n", opts.FilesDir)
		return 1
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	log := logutil.New(stderr, opts.Quiet)
	defer func() { _ = log.Sync() }()

	rows, werrCh, err := writers.Start(opts.Report, outw, opts.Header, 64)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	popts := shrinker.Options{
		AnnotationsDir: opts.AnnotationsDir,
		OutputDir:      opts.OutputDir,
		NSamples:       opts.NSamples,
		Heights:        opts.Heights,
		Axis:           axis,
	}

	var failed int
	runErr := batch.ForEach(parent, batch.Config{
		Threads: runutil.EffectiveThreads(opts.Threads),
		Process: func(ctx context.Context, path string) report.File {
			return shrinker.ProcessFile(ctx, popts, path, log)
		},
	}, paths, func(f report.File) error {
		if f.FailedOutright() {
			failed++
		}
		rows <- f
		return nil
	})
	close(rows)
	werr := <-werrCh

	if runErr != nil {
		if errors.Is(runErr, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, runErr)
		return 1
	}
	if werr != nil && !writers.IsBrokenPipe(werr) {
		_, _ = fmt.Fprintln(stderr, werr)
		return 3
	}
	if e := outw.Flush(); e != nil && !writers.IsBrokenPipe(e) {
		_, _ = fmt.Fprintln(stderr, e)
		return 3
	}

	if failed > 0 {
		return 1
	}
	return 0
}

func Run(argv []string, stdout, stderr io.Writer) int {
	return RunContext(context.Background(), argv, stdout, stderr)
}
