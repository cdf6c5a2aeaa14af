// internal/scaleapp/app.go
package scaleapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"morphclone-core/jitter"
	"morphclone-core/swc"
	"morphclone/internal/clibase"
	"morphclone/internal/common"
	"morphclone/internal/logutil"
	"morphclone/internal/report"
	"morphclone/internal/runutil"
	"morphclone/internal/scalecli"
	"morphclone/internal/version"
	"morphclone/internal/writers"
)

// RunContext drives the scale tool: scale one morphology file, or every
// morphology in a folder, by a constant factor. Radii are untouched.
// Exit codes match the shrink tool.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := scalecli.NewFlagSet("morphclone-scale")
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

	opts, err := scalecli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, clibase.ErrPrintedAndExitOK) {
			scalecli.PrintExamples(outw)
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
		_, _ = fmt.Fprintf(outw, "morphclone-scale version %s\n", version.Version)
		return 0
	}

	paths, err := inputPaths(opts.Input)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	if len(paths) == 0 {
		_, _ = fmt.Fprintf(stderr, "no morphologies found in %s\n", opts.Input)
		return 1
	}
	if err := os.MkdirAll(opts.OutputDir, 0o755); err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	log := logutil.New(stderr, opts.Quiet)
	defer func() { _ = log.Sync() }()

	// Fan out over the folder; every file gets its outcome slot, so a failed
	// file never aborts the rest.
	outcomes := make([]report.File, len(paths))
	g, ctx := errgroup.WithContext(parent)
	g.SetLimit(runutil.EffectiveThreads(opts.Threads))
	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			outcomes[i] = scaleOne(opts, path, log)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		if errors.Is(err, context.Canceled) {
			return 130
		}
		_, _ = fmt.Fprintln(stderr, err)
		return 1
	}

	rows, werrCh, err := writers.Start(opts.Report, outw, opts.Header, 64)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}
	failed := 0
	for _, f := range outcomes {
		if f.FailedOutright() {
			failed++
		}
		rows <- f
	}
	close(rows)
	if werr := <-werrCh; werr != nil && !writers.IsBrokenPipe(werr) {
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

// scaleOne reads, scales and rewrites one morphology, reporting the written
// path as a single variant row.
func scaleOne(opts scalecli.Options, path string, log *zap.Logger) report.File {
	stem := common.Stem(path)
	out := report.File{File: path, Stem: stem}

	m, err := swc.Read(path)
	if err != nil {
		out.Err = err.Error()
		log.Warn("morphology failed", zap.String("file", path), zap.Error(err))
		return out
	}
	jitter.ScaleMorphology(m, opts.Scaling)

	dst := filepath.Join(opts.OutputDir, stem+".swc")
	if err := swc.WriteFile(dst, m); err != nil {
		out.Err = err.Error()
		log.Warn("write failed", zap.String("file", dst), zap.Error(err))
		return out
	}

	log.Info("scaled",
		zap.String("file", path),
		zap.Float64("factor", opts.Scaling),
		zap.String("output", dst))
	out.Variants = []report.Variant{{Length: opts.Scaling, Path: dst}}
	return out
}

// inputPaths resolves the input argument to a list of morphology files.
func inputPaths(input string) ([]string, error) {
	st, err := os.Stat(input)
	if err != nil {
		return nil, err
	}
	if st.IsDir() {
		return common.ListMorphologies(input)
	}
	if !common.IsMorphologyFile(input) {
		return nil, fmt.Errorf("%s is not a morphology file", input)
	}
	return []string{input}, nil
}
