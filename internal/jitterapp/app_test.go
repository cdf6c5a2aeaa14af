// internal/jitterapp/app_test.go
package jitterapp

import (
	"bytes"
	"math"
	"os"
	"path/filepath"
	"testing"

	"morphclone-core/swc"
)

const jitterSWC = `1 1 0 0 0 2 -1
2 2 0 -1 0 1 1
3 2 0 -4 0 1 2
4 2 3 -8 0 0.5 3
5 2 -3 -8 0 0.5 3
6 3 0 2 0 1 1
7 3 0 5 0 1 6
`

func setup(t *testing.T) (files, out string) {
	t.Helper()
	dir := t.TempDir()
	files = filepath.Join(dir, "files")
	if err := os.Mkdir(files, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(files, "n1.swc"), []byte(jitterSWC), 0o644); err != nil {
		t.Fatal(err)
	}
	return files, filepath.Join(dir, "out")
}

func TestIdentityParamsPreserveGeometry(t *testing.T) {
	files, out := setup(t)

	var stdout, stderr bytes.Buffer
	code := Run([]string{"--nclones", "2", "--quiet", files, out}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr.String())
	}

	src, err := swc.Read(filepath.Join(files, "n1.swc"))
	if err != nil {
		t.Fatal(err)
	}
	for _, name := range []string{"n1_clone_0.swc", "n1_clone_1.swc"} {
		clone, err := swc.Read(filepath.Join(out, name))
		if err != nil {
			t.Fatalf("read %s: %v", name, err)
		}
		if clone.Len() != src.Len() {
			t.Fatalf("%s: section count %d, want %d", name, clone.Len(), src.Len())
		}
		// Default params are the identity: no rotation, no scaling.
		for _, id := range src.IDs() {
			got, want := clone.Section(id).PathLength(), src.Section(id).PathLength()
			if math.Abs(got-want) > 1e-9 {
				t.Fatalf("%s section %d path length %g, want %g", name, id, got, want)
			}
		}
	}
}

func TestParamsFileDrivesScaling(t *testing.T) {
	files, out := setup(t)
	params := filepath.Join(t.TempDir(), "params.yaml")
	if err := os.WriteFile(params, []byte("section_scaling: {mean: 1.0}\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	var stdout, stderr bytes.Buffer
	code := Run([]string{
		"--nclones", "1", "--params", params, "--quiet", files, out,
	}, &stdout, &stderr)
	if code != 0 {
		t.Fatalf("exit %d, stderr: %s", code, stderr.String())
	}

	src, err := swc.Read(filepath.Join(files, "n1.swc"))
	if err != nil {
		t.Fatal(err)
	}
	clone, err := swc.Read(filepath.Join(out, "n1_clone_0.swc"))
	if err != nil {
		t.Fatal(err)
	}
	// mean=1.0, std=0 doubles every section deterministically.
	for _, id := range src.IDs() {
		got, want := clone.Section(id).PathLength(), 2*src.Section(id).PathLength()
		if math.Abs(got-want) > 1e-9 {
			t.Fatalf("section %d path length %g, want %g", id, got, want)
		}
	}
}

func TestSeedDeterminism(t *testing.T) {
	run := func() []byte {
		files, out := setup(t)
		params := filepath.Join(t.TempDir(), "params.yaml")
		content := "rotation: {mean_angle: 0, std_angle: 10, numberpoint: 3}\n"
		if err := os.WriteFile(params, []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
		var stdout, stderr bytes.Buffer
		code := Run([]string{
			"--nclones", "1", "--params", params, "--seed", "7", "--quiet", files, out,
		}, &stdout, &stderr)
		if code != 0 {
			t.Fatalf("exit %d, stderr: %s", code, stderr.String())
		}
		raw, err := os.ReadFile(filepath.Join(out, "n1_clone_0.swc"))
		if err != nil {
			t.Fatal(err)
		}
		return raw
	}

	if !bytes.Equal(run(), run()) {
		t.Fatal("same seed produced different clones")
	}
}

func TestMissingInput(t *testing.T) {
	var stdout, stderr bytes.Buffer
	if code := Run([]string{"--nclones", "1", "nosuch", "out"}, &stdout, &stderr); code != 2 {
		t.Fatalf("exit %d, want 2", code)
	}
}
