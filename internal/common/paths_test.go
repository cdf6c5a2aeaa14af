package common

import (
	"os"
	"path/filepath"
	"testing"
)

func TestStem(t *testing.T) {
	cases := map[string]string{
		"/in/neuron.swc":    "neuron",
		"/in/neuron.swc.gz": "neuron",
		"neuron.SWC":        "neuron",
		"a.b.swc":           "a.b",
	}
	for in, want := range cases {
		if got := Stem(in); got != want {
			t.Errorf("Stem(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestIsMorphologyFile(t *testing.T) {
	for _, name := range []string{"n.swc", "n.SWC", "n.swc.gz"} {
		if !IsMorphologyFile(name) {
			t.Errorf("expected %q to be a morphology file", name)
		}
	}
	for _, name := range []string{"n.xml", "n.txt", "n.gz", "swc"} {
		if IsMorphologyFile(name) {
			t.Errorf("did not expect %q to be a morphology file", name)
		}
	}
}

func TestListMorphologiesSorted(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.swc", "a.swc", "skip.xml"} {
		if err := os.WriteFile(filepath.Join(dir, name), nil, 0o644); err != nil {
			t.Fatal(err)
		}
	}
	got, err := ListMorphologies(dir)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || filepath.Base(got[0]) != "a.swc" || filepath.Base(got[1]) != "b.swc" {
		t.Fatalf("unexpected listing %v", got)
	}
}

func TestVariantPathEncodesLength(t *testing.T) {
	got := VariantPath("/out", "n1", 4.5)
	want := filepath.Join("/out", "n1_height_4.5.swc")
	if got != want {
		t.Fatalf("got %q want %q", got, want)
	}
	if got := FormatLength(0); got != "0" {
		t.Fatalf("FormatLength(0) = %q", got)
	}
}
