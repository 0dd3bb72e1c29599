//go:build !linux

package cmd

import "errors"

func instructionCount(f func() error) (uint64, error) {
	return 0, errors.New("perf events need linux")
}
