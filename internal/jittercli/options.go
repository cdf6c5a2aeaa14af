// internal/jittercli/options.go
package jittercli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"morphclone/internal/clibase"
	"morphclone/internal/cliutil"
)

// Options holds the CLI flags and arguments of the jitter tool.
type Options struct {
	clibase.Common

	// Input: a single morphology file or a folder of morphologies.
	Input string

	// Cloning
	NClones    int
	ParamsFile string
	Seed       uint64
}

// NewFlagSet returns a configured FlagSet with the shared usage layout.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] INPUT OUTPUT_DIR\n", name)

		_, _ = fmt.Fprintln(out, "\nInput:")
		_, _ = fmt.Fprintln(out, "  -i, --input path            Morphology file or folder of morphologies [*]")

		_, _ = fmt.Fprintln(out, "\nJitter:")
		_, _ = fmt.Fprintf(out, "  -n, --nclones int           Clones generated per morphology [%s]\n", def("nclones"))
		_, _ = fmt.Fprintln(out, "      --params file           YAML file with rotation/scaling distributions")
		_, _ = fmt.Fprintf(out, "      --seed int              Base seed for the jitter sampling [%s]\n", def("seed"))
	})
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(NewFlagSet("morphclone-jitter"), nil) }

// PrintExamples prints a tiny, focused quickstart for morphclone-jitter.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "morphclone-jitter", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Jitter: generate morphology clones by rotating sections about their")
		_, _ = fmt.Fprintln(w, "principal direction and rescaling segments, with sampled factors.")
		_, _ = fmt.Fprintln(w, "\nExample:")
		_, _ = fmt.Fprintln(w, "  morphclone-jitter --nclones 5 --params jitter.yaml morphs/ out/")
	})
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool
	var showExamples bool

	var c clibase.Common
	noHeader := clibase.Register(fs, &c)

	fs.StringVar(&o.Input, "input", "", "morphology file or folder [*]")
	fs.StringVar(&o.Input, "i", "", "alias of --input")
	fs.IntVar(&o.NClones, "nclones", 10, "clones generated per morphology [10]")
	fs.IntVar(&o.NClones, "n", 10, "alias of --nclones")
	fs.StringVar(&o.ParamsFile, "params", "", "YAML file with jitter distributions")
	fs.Uint64Var(&o.Seed, "seed", 0, "base seed for jitter sampling [0]")

	fs.BoolVar(&help, "h", false, "show this help [false]")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit [false]")

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return o, err
	}
	if showExamples {
		return o, clibase.ErrPrintedAndExitOK
	}
	if help {
		return o, flag.ErrHelp
	}
	if c.Version {
		o.Common = c
		return o, nil
	}

	// Positionals stand in for --input/--output, in that order.
	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return o, err
		}
		dsts := []*string{&o.Input, &c.OutputDir}
		for _, p := range exp {
			placed := false
			for _, d := range dsts {
				if *d == "" {
					*d = p
					placed = true
					break
				}
			}
			if !placed {
				return o, fmt.Errorf("unexpected extra argument %q", p)
			}
		}
	}

	if err := clibase.AfterParse(&c, noHeader); err != nil {
		return o, err
	}

	switch {
	case o.Input == "":
		return o, errors.New("an input file or folder is required (--input or positional)")
	case o.NClones < 1:
		return o, errors.New("--nclones must be >= 1")
	}

	o.Common = c
	return o, nil
}
