//go:build windows
// +build windows

// File: affinity/affinity_windows.go
// Author: momentics <momentics@gmail.com>
//
// Windows implementation. Reads the process affinity mask via
// GetProcessAffinityMask and installs thread masks through
// SetThreadAffinityMask. Windows masks are limited to one processor
// group (64 logical CPUs).

package affinity

import (
	"fmt"

	"golang.org/x/sys/windows"
)

var (
	kernel32                  = windows.NewLazySystemDLL("kernel32.dll")
	procSetThreadAffinityMask = kernel32.NewProc("SetThreadAffinityMask")
	procGetCurrentThread      = kernel32.NewProc("GetCurrentThread")
)

// getAffinityPlatform returns the process affinity mask; per-thread
// affinity is not separately readable on Windows.
func getAffinityPlatform() (Mask, error) {
	var processMask, systemMask uintptr
	err := windows.GetProcessAffinityMask(windows.CurrentProcess(), &processMask, &systemMask)
	if err != nil {
		return nil, fmt.Errorf("affinity: GetProcessAffinityMask: %w", err)
	}
	return Mask{uint64(processMask)}, nil
}

// applyAffinityPlatform installs the mask for the calling thread.
func applyAffinityPlatform(m Mask) error {
	if len(m) == 0 || m[0] == 0 {
		return fmt.Errorf("affinity: empty mask")
	}
	hThread, _, _ := procGetCurrentThread.Call()
	ret, _, err := procSetThreadAffinityMask.Call(hThread, uintptr(m[0]))
	if ret == 0 {
		return fmt.Errorf("affinity: SetThreadAffinityMask: %w", err)
	}
	return nil
}
