// File: api/collaborators.go
// Author: momentics <momentics@gmail.com>
//
// Collaborator interfaces consumed by the topology core. The core is
// specified against these contracts only; platform implementations live
// in the sysfs and cpuid packages, test doubles in the fake package.

package api

// Enumerator reports the OS logical processor ids that are both present
// and possible (allowed to be scheduled on). An empty result is valid
// and yields a zero-object topology.
type Enumerator interface {
	// LogicalIDs returns the ids in ascending order. The set may be
	// sparse.
	LogicalIDs() ([]int, error)
}

// Describer fills one raw descriptor for the logical processor the
// calling thread is currently pinned to. A failure aborts the whole
// topology construction.
type Describer interface {
	Describe(logicalID int, d *Descriptor) error
}

// Normalizer turns a raw brand string into a package display name.
type Normalizer interface {
	Normalize(brand string) string
}

// GPUQuery optionally names the GPU associated with the first package.
// Only some platform variants provide one; the core treats it as
// best-effort and ignores errors.
type GPUQuery interface {
	GPUName() (string, error)
}
