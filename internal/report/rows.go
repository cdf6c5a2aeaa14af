// internal/report/rows.go
// Package report holds the per-file / per-variant outcome rows produced by a
// batch run and their conversions to the stable v1 wire schema.
package report

import (
	"sort"

	"morphclone/pkg/api"
)

// Variant is the outcome of one (morphology, connector length) unit.
type Variant struct {
	Length float64
	Path   string // written morphology path; empty on failure
	Err    string // empty on success
}

// File is the outcome of one input morphology.
type File struct {
	File     string
	Stem     string
	Err      string // morphology-level failure; variants empty when set
	Variants []Variant
}

// Failed reports whether the morphology failed outright or any variant did.
func (f File) Failed() bool {
	if f.Err != "" {
		return true
	}
	for _, v := range f.Variants {
		if v.Err != "" {
			return true
		}
	}
	return false
}

// FailedOutright reports a morphology-level failure (no variants attempted).
func (f File) FailedOutright() bool { return f.Err != "" }

// SortFiles orders outcomes by file name for deterministic reports.
func SortFiles(fs []File) {
	sort.Slice(fs, func(i, j int) bool { return fs[i].File < fs[j].File })
}

// ToAPIFile converts one outcome row to the v1 schema.
func ToAPIFile(f File) api.FileResultV1 {
	out := api.FileResultV1{File: f.File, Stem: f.Stem, Error: f.Err}
	for _, v := range f.Variants {
		out.Variants = append(out.Variants, api.VariantV1{Length: v.Length, Path: v.Path, Error: v.Err})
	}
	return out
}

// ToAPIReport aggregates outcome rows into the v1 report.
func ToAPIReport(fs []File) api.ReportV1 {
	r := api.ReportV1{Files: make([]api.FileResultV1, 0, len(fs))}
	for _, f := range fs {
		if f.FailedOutright() {
			r.Failed++
		} else {
			r.Processed++
		}
		r.Files = append(r.Files, ToAPIFile(f))
	}
	return r
}
