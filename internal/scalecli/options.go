// internal/scalecli/options.go
package scalecli

import (
	"errors"
	"flag"
	"fmt"
	"io"

	"morphclone/internal/clibase"
	"morphclone/internal/cliutil"
)

// Options holds the CLI flags and arguments of the scale tool.
type Options struct {
	clibase.Common

	// Input: a single morphology file or a folder of morphologies.
	Input string

	// Scaling factor applied to section geometry. Radii are untouched.
	Scaling float64
}

// NewFlagSet returns a configured FlagSet with the shared usage layout.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] --scaling FACTOR INPUT OUTPUT_DIR\n", name)

		_, _ = fmt.Fprintln(out, "\nInput:")
		_, _ = fmt.Fprintln(out, "  -i, --input path            Morphology file or folder of morphologies [*]")

		_, _ = fmt.Fprintln(out, "\nScale:")
		_, _ = fmt.Fprintln(out, "  -s, --scaling float         Constant scaling factor (radii are not scaled) [*]")
	})
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(NewFlagSet("morphclone-scale"), nil) }

// PrintExamples prints a tiny, focused quickstart for morphclone-scale.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "morphclone-scale", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Scale: multiply every section's geometry by a constant factor.")
		_, _ = fmt.Fprintln(w, "Radii are left untouched.")
		_, _ = fmt.Fprintln(w, "\nExample:")
		_, _ = fmt.Fprintln(w, "  morphclone-scale --scaling 1.2 morphs/ out/")
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
	fs.Float64Var(&o.Scaling, "scaling", 0, "constant scaling factor [*]")
	fs.Float64Var(&o.Scaling, "s", 0, "alias of --scaling")

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
	case o.Scaling <= 0:
		return o, errors.New("--scaling must be > 0")
	}

	o.Common = c
	return o, nil
}
