// internal/common/paths.go
package common

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// morphologyExts are the morphology file suffixes the batch recognizes
// (lower-cased; a trailing .gz is stripped first).
var morphologyExts = map[string]bool{".swc": true}

// Stem strips the directory, a trailing .gz, and the format extension.
func Stem(path string) string {
	name := filepath.Base(path)
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return strings.TrimSuffix(name, filepath.Ext(name))
}

// IsMorphologyFile reports whether name looks like a readable morphology.
func IsMorphologyFile(name string) bool {
	if strings.EqualFold(filepath.Ext(name), ".gz") {
		name = strings.TrimSuffix(name, filepath.Ext(name))
	}
	return morphologyExts[strings.ToLower(filepath.Ext(name))]
}

// ListMorphologies returns the morphology files directly inside dir, sorted
// by name for deterministic batch order.
func ListMorphologies(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var out []string
	for _, e := range entries {
		if e.IsDir() || !IsMorphologyFile(e.Name()) {
			continue
		}
		out = append(out, filepath.Join(dir, e.Name()))
	}
	sort.Strings(out)
	return out, nil
}

// AnnotationPath is the annotation file paired with a morphology stem.
func AnnotationPath(dir, stem string) string {
	return filepath.Join(dir, stem+".xml")
}

// FormatLength renders a connector length for filenames and reports.
func FormatLength(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// VariantPath names one output variant, encoding the source stem and the
// connector length for traceability.
func VariantPath(outDir, stem string, length float64) string {
	return filepath.Join(outDir, fmt.Sprintf("%s_height_%s.swc", stem, FormatLength(length)))
}

// VariantAnnotationPath names the annotation written beside a variant.
func VariantAnnotationPath(outDir, stem string, length float64) string {
	return filepath.Join(outDir, fmt.Sprintf("%s_height_%s.xml", stem, FormatLength(length)))
}

// ClonePath names one jitter clone output.
func ClonePath(outDir, stem string, i int) string {
	return filepath.Join(outDir, fmt.Sprintf("%s_clone_%d.swc", stem, i))
}
