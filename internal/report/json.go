// internal/report/json.go
package report

import (
	"io"

	"morphclone/internal/jsonutil"
)

// WriteJSON emits the aggregate v1 report as indented JSON.
func WriteJSON(w io.Writer, files []File) error {
	return jsonutil.EncodePretty(w, ToAPIReport(files))
}
