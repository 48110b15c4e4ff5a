//go:build !linux && !windows
// +build !linux,!windows

// File: affinity/affinity_stub.go
// Author: momentics <momentics@gmail.com>
//
// Stub implementation for platforms without thread affinity support.

package affinity

import "github.com/momentics/cputopo/api"

func getAffinityPlatform() (Mask, error) {
	return nil, api.ErrNotSupported
}

func applyAffinityPlatform(Mask) error {
	return api.ErrNotSupported
}
