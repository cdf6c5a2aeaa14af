package runutil

import (
	"runtime"
	"testing"
)

func TestEffectiveThreads(t *testing.T) {
	if got := EffectiveThreads(3); got != 3 {
		t.Fatalf("EffectiveThreads(3) = %d", got)
	}
	if got := EffectiveThreads(0); got != runtime.NumCPU() {
		t.Fatalf("EffectiveThreads(0) = %d, want NumCPU", got)
	}
	if got := EffectiveThreads(-1); got != runtime.NumCPU() {
		t.Fatalf("EffectiveThreads(-1) = %d, want NumCPU", got)
	}
}
