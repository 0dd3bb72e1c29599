//go:build linux

package cmd

import (
	"runtime"

	perf "github.com/hodgesds/perf-utils"
)

// instructionCount runs f once under a hardware instruction counter bound to this thread
func instructionCount(f func() error) (count uint64, err error) {
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()
	var pv *perf.ProfileValue
	if pv, err = perf.CPUInstructions(f); err != nil {
		return
	}
	return pv.Value, nil
}
