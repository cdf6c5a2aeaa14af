// internal/scaleapp/app_test.go
package scaleapp

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"morphclone-core/swc"
)

const scaleSWC = `1 1 0 0 0 2 -1
2 2 0 -1 0 1 1
3 2 0 -4 0 1 2
4 2 3 -8 0 0.5 3
5 3 0 2 0 1 1
6 3 0 5 0 1 5
`

func writeMorph(t *testing.T, dir, name string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(scaleSWC), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestScaleFile(t *testing.T) {
	dir := t.TempDir()
	in := writeMorph(t, dir, "n1.swc")
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"--scaling", "2", "--quiet", in, out}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr.String())
	}

	src, err := swc.Read(in)
	if err != nil {
		t.Fatal(err)
	}
	dst, err := swc.Read(filepath.Join(out, "n1.swc"))
	if err != nil {
		t.Fatal(err)
	}
	if dst.Len() != src.Len() {
		t.Fatalf("section count changed: %d != %d", dst.Len(), src.Len())
	}
	for _, id := range src.IDs() {
		got, want := dst.Section(id).PathLength(), 2*src.Section(id).PathLength()
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("section %d path length %g, want %g", id, got, want)
		}
		// Radii are never scaled.
		if dst.Section(id).Radii[0] != src.Section(id).Radii[0] {
			t.Fatalf("section %d radius changed", id)
		}
	}
}

func TestScaleFolder(t *testing.T) {
	dir := t.TempDir()
	files := filepath.Join(dir, "files")
	if err := os.Mkdir(files, 0o755); err != nil {
		t.Fatal(err)
	}
	writeMorph(t, files, "a.swc")
	writeMorph(t, files, "b.swc")
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"--scaling", "0.5", "--quiet", files, out}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr.String())
	}
	for _, name := range []string{"a.swc", "b.swc"} {
		if _, err := os.Stat(filepath.Join(out, name)); err != nil {
			t.Fatalf("missing output: %v", err)
		}
	}
}

func TestScaleFolderWithBadFile(t *testing.T) {
	dir := t.TempDir()
	files := filepath.Join(dir, "files")
	if err := os.Mkdir(files, 0o755); err != nil {
		t.Fatal(err)
	}
	writeMorph(t, files, "good.swc")
	if err := os.WriteFile(filepath.Join(files, "bad.swc"), []byte("not swc\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	out := filepath.Join(dir, "out")

	var stdout, stderr bytes.Buffer
	code := Run([]string{"--scaling", "2", "--quiet", files, out}, &stdout, &stderr)
	if code != 1 {
		t.Fatalf("exit %d, want 1", code)
	}
	if _, err := os.Stat(filepath.Join(out, "good.swc")); err != nil {
		t.Fatalf("good file should still be scaled: %v", err)
	}
}

func TestScaleUsageErrors(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"--scaling", "0", "in.swc", "out"}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
}
