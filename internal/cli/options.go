// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"strings"

	"morphclone/internal/clibase"
	"morphclone/internal/cliutil"
)

// Connector axis choices.
const (
	AxisVertical = "vertical"
	AxisLocal    = "local"
)

// Options holds all CLI flags and arguments of the shrink tool.
type Options struct {
	clibase.Common

	// Input
	FilesDir       string
	AnnotationsDir string

	// Shrink parameters
	NSamples int
	Heights  []float64
	Axis     string
}

// NewFlagSet returns a configured FlagSet with the shared usage layout.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	clibase.UsageCommon(fs, name, func(out io.Writer, def func(string) string) {
		_, _ = fmt.Fprintln(out, "Usage:")
		_, _ = fmt.Fprintf(out, "  %s [options] FILES_DIR ANNOTATIONS_DIR OUTPUT_DIR\n", name)

		_, _ = fmt.Fprintln(out, "\nInput:")
		_, _ = fmt.Fprintln(out, "  -f, --files dir             Directory of input morphologies (.swc, .swc.gz) [*]")
		_, _ = fmt.Fprintln(out, "  -a, --annotations dir       Directory of annotation XML files, one per morphology stem [*]")

		_, _ = fmt.Fprintln(out, "\nShrink:")
		_, _ = fmt.Fprintf(out, "  -n, --nsamples int          Number of connector lengths, evenly spaced in [0, original] [%s]\n", def("nsamples"))
		_, _ = fmt.Fprintln(out, "      --height float          Explicit connector length (repeatable, overrides --nsamples)")
		_, _ = fmt.Fprintf(out, "      --axis string           Connector direction: vertical | local [%s]\n", def("axis"))
	})
	return fs
}

// Parse is the top-level call for CLI parsing.
func Parse() (Options, error) { return ParseArgs(NewFlagSet("morphclone"), nil) }

// PrintExamples prints a tiny, focused quickstart for morphclone.
func PrintExamples(out io.Writer) {
	clibase.PrintExamples(out, "morphclone", func(w io.Writer) {
		_, _ = fmt.Fprintln(w, "Shrink: regenerate each morphology with the spliced axon segment")
		_, _ = fmt.Fprintln(w, "replaced by connectors of varied length.")
		_, _ = fmt.Fprintln(w, "\nExample:")
		_, _ = fmt.Fprintln(w, "  morphclone \\")
		_, _ = fmt.Fprintln(w, "    --nsamples 5 \\")
		_, _ = fmt.Fprintln(w, "    --report json \\")
		_, _ = fmt.Fprintln(w, "    morphs/ annotations/ out/")
	})
}

// ParseArgs registers and parses all flags, returns an Options struct.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var o Options
	var help bool
	var showExamples bool

	// Shared flags via clibase
	var c clibase.Common
	noHeader := clibase.Register(fs, &c)

	// Input
	fs.StringVar(&o.FilesDir, "files", "", "directory of input morphologies [*]")
	fs.StringVar(&o.FilesDir, "f", "", "alias of --files")
	fs.StringVar(&o.AnnotationsDir, "annotations", "", "directory of annotation XML files [*]")
	fs.StringVar(&o.AnnotationsDir, "a", "", "alias of --annotations")

	// Shrink parameters
	fs.IntVar(&o.NSamples, "nsamples", 10, "number of connector lengths [10]")
	fs.IntVar(&o.NSamples, "n", 10, "alias of --nsamples")
	heights := floatSlice{dst: &o.Heights}
	fs.Var(&heights, "height", "explicit connector length (repeatable, overrides --nsamples)")
	fs.StringVar(&o.Axis, "axis", AxisVertical, "connector direction: vertical | local ["+AxisVertical+"]")

	// Help / examples
	fs.BoolVar(&help, "h", false, "show this help [false]")
	fs.BoolVar(&showExamples, "examples", false, "show quickstart examples and exit [false]")

	// Split & parse
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

	// Positionals stand in for --files/--annotations/--output, in that order.
	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return o, err
		}
		dsts := []*string{&o.FilesDir, &o.AnnotationsDir, &c.OutputDir}
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

	// Shrink-specific validation
	switch {
	case o.FilesDir == "":
		return o, errors.New("a morphology directory is required (--files or positional)")
	case o.AnnotationsDir == "":
		return o, errors.New("an annotation directory is required (--annotations or positional)")
	case o.NSamples < 1:
		return o, errors.New("--nsamples must be >= 1")
	}
	for _, h := range o.Heights {
		if h < 0 {
			return o, fmt.Errorf("--height must be >= 0, got %g", h)
		}
	}
	switch o.Axis {
	case AxisVertical, AxisLocal:
	default:
		return o, fmt.Errorf("invalid --axis %q", o.Axis)
	}

	o.Common = c
	return o, nil
}

// floatSlice allows repeatable float flags.
type floatSlice struct{ dst *[]float64 }

func (s *floatSlice) String() string {
	if s.dst == nil {
		return ""
	}
	parts := make([]string, len(*s.dst))
	for i, v := range *s.dst {
		parts[i] = strconv.FormatFloat(v, 'g', -1, 64)
	}
	return strings.Join(parts, ",")
}

func (s *floatSlice) Set(v string) error {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fmt.Errorf("bad float %q", v)
	}
	*s.dst = append(*s.dst, f)
	return nil
}
