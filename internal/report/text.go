// internal/report/text.go
package report

import (
	"fmt"
	"io"

	"morphclone/internal/common"
)

const textHeader = "file\tlength\tstatus\tdetail"

// WriteText prints one TSV line per variant (or one per failed morphology).
func WriteText(w io.Writer, files []File, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, textHeader); err != nil {
			return err
		}
	}
	for _, f := range files {
		if err := writeTextFile(w, f); err != nil {
			return err
		}
	}
	return nil
}

// StreamText writes rows as they arrive.
func StreamText(w io.Writer, in <-chan File, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, textHeader); err != nil {
			return err
		}
	}
	for f := range in {
		if err := writeTextFile(w, f); err != nil {
			return err
		}
	}
	return nil
}

func writeTextFile(w io.Writer, f File) error {
	if f.FailedOutright() {
		_, err := fmt.Fprintf(w, "%s\t-\tfailed\t%s\n", f.File, f.Err)
		return err
	}
	for _, v := range f.Variants {
		status, detail := "ok", v.Path
		if v.Err != "" {
			status, detail = "error", v.Err
		}
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			f.File, common.FormatLength(v.Length), status, detail); err != nil {
			return err
		}
	}
	return nil
}
