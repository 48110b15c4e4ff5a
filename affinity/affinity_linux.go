//go:build linux
// +build linux

// File: affinity/affinity_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux implementation on raw sched_getaffinity/sched_setaffinity
// syscalls. The raw syscalls are used instead of unix.SchedGetaffinity
// because that helper is tied to the fixed-size unix.CPUSet; the dynamic
// Mask type has no such limit.

package affinity

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// maskWordBytes is sizeof(uint64), the unit the kernel mask length is
// expressed in.
const maskWordBytes = 8

// getAffinityPlatform reads the affinity mask of the calling thread,
// retrying with a doubled mask when the kernel reports EINVAL for a
// too-small buffer.
func getAffinityPlatform() (Mask, error) {
	words := 16 // 1024 CPUs, enough for most systems on first try
	for {
		mask := make(Mask, words)
		ret, _, e := unix.RawSyscall(unix.SYS_SCHED_GETAFFINITY,
			0, uintptr(words*maskWordBytes), uintptr(unsafe.Pointer(&mask[0])))
		if e == 0 {
			// The kernel reports how many bytes it filled; trim the rest.
			filled := int(ret) / maskWordBytes
			if filled > 0 && filled < words {
				mask = mask[:filled]
			}
			return mask, nil
		}
		if e == unix.EINVAL {
			words *= 2
			continue
		}
		return nil, fmt.Errorf("affinity: sched_getaffinity: %w", e)
	}
}

// applyAffinityPlatform installs the mask for the calling thread.
func applyAffinityPlatform(m Mask) error {
	if len(m) == 0 || m.Count() == 0 {
		return fmt.Errorf("affinity: empty mask")
	}
	_, _, e := unix.RawSyscall(unix.SYS_SCHED_SETAFFINITY,
		0, uintptr(len(m)*maskWordBytes), uintptr(unsafe.Pointer(&m[0])))
	if e != 0 {
		return fmt.Errorf("affinity: sched_setaffinity: %w", e)
	}
	return nil
}
