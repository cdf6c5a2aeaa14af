// internal/runutil/runutil.go
package runutil

import "runtime"

// EffectiveThreads resolves the --threads flag: 0 (or less) means all CPUs.
func EffectiveThreads(n int) int {
	if n <= 0 {
		return runtime.NumCPU()
	}
	return n
}
