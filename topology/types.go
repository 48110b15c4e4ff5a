// File: topology/types.go
// Author: momentics <momentics@gmail.com>
//
// Published topology record types. All cross-references between records
// are indices into the sibling arrays of the owning Snapshot, never
// pointers, so the whole graph can be discarded as one unit on rollback
// and shared read-only after publication.

package topology

import "github.com/momentics/cputopo/api"

// AbsentIndex marks a missing cross-reference, such as a cache level a
// processor does not participate in.
const AbsentIndex = -1

// Processor is one logical processor of the published topology.
type Processor struct {
	// LogicalID is the OS-assigned id, the external-facing lookup key.
	LogicalID int

	// ID is the raw hierarchical identifier reported by the describer,
	// retained for diagnostics.
	ID uint32

	// SMTID is the position of this logical processor within its core's
	// simultaneous-multithreading slots.
	SMTID uint32

	// CoreIndex and PackageIndex locate the owning core and package in
	// the snapshot arrays.
	CoreIndex    int
	PackageIndex int

	// CacheIndex holds, per cache level, the index of the cache instance
	// this processor participates in, or AbsentIndex.
	CacheIndex [api.CacheLevelCount]int
}

// Core is one physical core. Its logical processors occupy the
// contiguous snapshot range [ProcessorStart, ProcessorStart+ProcessorCount).
type Core struct {
	ProcessorStart int
	ProcessorCount int

	// ID is the hierarchical identifier with the thread field masked off,
	// shared by all logical processors of the core.
	ID uint32

	PackageIndex int

	// Vendor, Uarch and ModelInfo are copied from the first descriptor
	// of the core; the topology assumes them uniform across a core.
	Vendor    api.Vendor
	Uarch     api.Uarch
	ModelInfo uint32
}

// Package is one processor package (socket).
type Package struct {
	// Name is the normalized brand string of the package.
	Name string

	// GPUName is filled by the optional GPU query collaborator on
	// platforms that provide one; empty otherwise.
	GPUName string

	ProcessorStart int
	ProcessorCount int
	CoreStart      int
	CoreCount      int
}

// Cache is one physical cache instance at some level. Geometry fields
// are copied from the first participating descriptor.
type Cache struct {
	Size          uint32
	Associativity uint32
	Sets          uint32
	Partitions    uint32
	LineSize      uint32
	Flags         uint32

	ProcessorStart int
	ProcessorCount int
}
