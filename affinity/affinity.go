// File: affinity/affinity.go
// Author: momentics <momentics@gmail.com>
//
// Platform-neutral API for thread CPU affinity. Platform-specific
// implementations are located in separate files (affinity_linux.go,
// affinity_windows.go, etc.) guarded by build tags.
//
// All calls operate on the calling OS thread; callers that need a stable
// thread must hold runtime.LockOSThread for the duration.

package affinity

// Get returns the current affinity mask of the calling thread.
func Get() (Mask, error) {
	return getAffinityPlatform()
}

// Apply replaces the affinity mask of the calling thread.
func Apply(m Mask) error {
	return applyAffinityPlatform(m)
}

// PinTo restricts the calling thread to the single logical CPU cpuID.
func PinTo(cpuID int) error {
	return applyAffinityPlatform(NewMask(cpuID).Set(cpuID))
}
