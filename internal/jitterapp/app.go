// internal/jitterapp/app.go
package jitterapp

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"hash/fnv"
	"io"
	"os"

	"go.uber.org/zap"
	"golang.org/x/exp/rand"
	"morphclone-core/jitter"
	"morphclone-core/swc"
	"morphclone/internal/batch"
	"morphclone/internal/clibase"
	"morphclone/internal/common"
	"morphclone/internal/jittercli"
	"morphclone/internal/logutil"
	"morphclone/internal/report"
	"morphclone/internal/runutil"
	"morphclone/internal/version"
	"morphclone/internal/writers"
)

// RunContext drives the jitter tool: for every input morphology, write
// NClones randomized variants (<stem>_clone_<i>.swc). Exit codes match the
// shrink tool.
func RunContext(parent context.Context, argv []string, stdout, stderr io.Writer) int {
	outw := bufio.NewWriter(stdout)
	defer func() { _ = outw.Flush() }()

	fs := jittercli.NewFlagSet("morphclone-jitter")
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

	opts, err := jittercli.ParseArgs(fs, argv)
	if err != nil {
		if errors.Is(err, clibase.ErrPrintedAndExitOK) {
			jittercli.PrintExamples(outw)
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
		_, _ = fmt.Fprintf(outw, "morphclone-jitter version %s\n", version.Version)
		return 0
	}

	params, err := jittercli.LoadParams(opts.ParamsFile)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
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

	rows, werrCh, err := writers.Start(opts.Report, outw, opts.Header, 64)
	if err != nil {
		_, _ = fmt.Fprintln(stderr, err)
		return 2
	}

	var failed int
	runErr := batch.ForEach(parent, batch.Config{
		Threads: runutil.EffectiveThreads(opts.Threads),
		Process: func(ctx context.Context, path string) report.File {
			return cloneFile(ctx, opts, params, path, log)
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

// cloneFile writes the jittered clones of one morphology. Each clone draws
// from its own seeded source, so outputs do not depend on worker scheduling.
func cloneFile(ctx context.Context, opts jittercli.Options, params jittercli.Params,
	path string, log *zap.Logger) report.File {
	stem := common.Stem(path)
	out := report.File{File: path, Stem: stem}

	src, err := swc.Read(path)
	if err != nil {
		out.Err = err.Error()
		log.Warn("morphology failed", zap.String("file", path), zap.Error(err))
		return out
	}

	log.Info("cloning", zap.String("file", path), zap.Int("nclones", opts.NClones))

	for i := 0; i < opts.NClones; i++ {
		v := report.Variant{Length: float64(i)}
		if err := ctx.Err(); err != nil {
			v.Err = err.Error()
			out.Variants = append(out.Variants, v)
			continue
		}

		m := src.Clone()
		rng := rand.NewSource(cloneSeed(opts.Seed, stem, i))
		jitter.RotationalJitter(m, params.RotationParameters(), rng)
		jitter.ScalingJitter(m, params.SegmentParameters(), params.SectionParameters(), rng)

		dst := common.ClonePath(opts.OutputDir, stem, i)
		if err := swc.WriteFile(dst, m); err != nil {
			v.Err = err.Error()
			log.Warn("write failed", zap.String("file", dst), zap.Error(err))
			out.Variants = append(out.Variants, v)
			continue
		}
		v.Path = dst
		out.Variants = append(out.Variants, v)
	}
	return out
}

// cloneSeed mixes the base seed, the morphology stem and the clone index.
func cloneSeed(seed uint64, stem string, i int) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(stem))
	return seed ^ h.Sum64() ^ (uint64(i) * 0x9e3779b97f4a7c15)
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
