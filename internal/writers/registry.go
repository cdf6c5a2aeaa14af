// internal/writers/registry.go
package writers

import (
	"fmt"
	"io"

	"morphclone/internal/report"
)

// StartFunc spins up a writer goroutine: rows are sent on the returned
// channel, and the single error (or nil) arrives on the error channel after
// the row channel is closed and drained.
type StartFunc func(out io.Writer, header bool, bufSize int) (chan<- report.File, <-chan error)

// reportWriters maps format → start function. Formats register in init().
var reportWriters = map[string]StartFunc{}

// Register installs a format handler (last registration wins).
func Register(format string, fn StartFunc) { reportWriters[format] = fn }

// Formats lists the registered format names.
func Formats() []string {
	out := make([]string, 0, len(reportWriters))
	for f := range reportWriters {
		out = append(out, f)
	}
	return out
}

// Known reports whether a format has a registered writer.
func Known(format string) bool {
	_, ok := reportWriters[format]
	return ok
}

// Start dispatches to the registered writer for format.
func Start(format string, out io.Writer, header bool, bufSize int) (chan<- report.File, <-chan error, error) {
	fn, ok := reportWriters[format]
	if !ok {
		return nil, nil, fmt.Errorf("unknown report format %q (no writer registered)", format)
	}
	in, errCh := fn(out, header, bufSize)
	return in, errCh, nil
}
