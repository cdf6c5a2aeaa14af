// internal/writers/report.go
package writers

import (
	"encoding/json"
	"io"

	"morphclone/internal/jsonlutil"
	"morphclone/internal/report"
)

func init() {
	Register("text", startText)
	Register("json", startJSON)
	Register("jsonl", startJSONL)
}

// startText streams one TSV row per variant as outcomes arrive.
func startText(out io.Writer, header bool, bufSize int) (chan<- report.File, <-chan error) {
	in, errCh := makeChans(bufSize)
	go func() {
		errCh <- report.StreamText(out, in, header)
	}()
	return in, errCh
}

// startJSON buffers all outcomes and emits one sorted aggregate document.
func startJSON(out io.Writer, _ bool, bufSize int) (chan<- report.File, <-chan error) {
	in, errCh := makeChans(bufSize)
	go func() {
		var buf []report.File
		for f := range in {
			buf = append(buf, f)
		}
		report.SortFiles(buf)
		errCh <- report.WriteJSON(out, buf)
	}()
	return in, errCh
}

// startJSONL streams one FileResultV1 JSON line per morphology.
func startJSONL(out io.Writer, _ bool, bufSize int) (chan<- report.File, <-chan error) {
	return jsonlutil.Start[report.File](out, bufSize,
		func(enc *json.Encoder, f report.File) error {
			return enc.Encode(report.ToAPIFile(f))
		},
		IsBrokenPipe,
	)
}

func makeChans(bufSize int) (chan report.File, chan error) {
	if bufSize <= 0 {
		bufSize = 64
	}
	return make(chan report.File, bufSize), make(chan error, 1)
}
