// internal/clibase/common.go
package clibase

import (
	"errors"
	"flag"
	"fmt"
)

// Common holds the CLI fields shared by morphclone, morphclone-scale and
// morphclone-jitter.
type Common struct {
	// Output
	OutputDir string
	Report    string // text|json|jsonl
	Header    bool

	// Performance
	Threads int

	// Misc
	Quiet   bool
	Version bool
}

// Register wires the shared flags onto fs and returns a pointer to the
// "no-header" bool that AfterParse uses to set Common.Header.
func Register(fs *flag.FlagSet, c *Common) *bool {
	fs.StringVar(&c.OutputDir, "output", "", "output directory for generated morphologies")
	fs.StringVar(&c.OutputDir, "o", "", "alias of --output")
	fs.StringVar(&c.Report, "report", "text", "report format: text | json | jsonl [text]")
	noHeader := false
	fs.BoolVar(&noHeader, "no-header", false, "suppress report header line [false]")

	fs.IntVar(&c.Threads, "threads", 0, "worker threads (0=all CPUs) [0]")
	fs.IntVar(&c.Threads, "t", 0, "alias of --threads")

	fs.BoolVar(&c.Quiet, "quiet", false, "suppress per-file progress logging [false]")
	fs.BoolVar(&c.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&c.Version, "v", false, "print version and exit [false]")
	fs.BoolVar(&c.Version, "version", false, "print version and exit [false]")

	return &noHeader
}

// AfterParse finalizes the header toggle and runs shared validation.
func AfterParse(c *Common, noHeader *bool) error {
	c.Header = !*noHeader
	return Validate(c)
}

// Validate applies the CLI invariants shared by all tools.
func Validate(c *Common) error {
	if c.OutputDir == "" {
		return errors.New("an output directory is required (--output or positional)")
	}
	if c.Threads < 0 {
		return errors.New("--threads must be >= 0")
	}
	switch c.Report {
	case "text", "json", "jsonl":
	default:
		return fmt.Errorf("invalid --report %q", c.Report)
	}
	return nil
}
