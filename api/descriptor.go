// File: api/descriptor.go
// Author: momentics <momentics@gmail.com>
//
// Shared type declarations for raw processor descriptors, cache geometry,
// and vendor/microarchitecture tags used across the cputopo library.

package api

import "fmt"

// CacheLevel identifies one level of the processor cache hierarchy.
type CacheLevel int

const (
	CacheL1I CacheLevel = iota // level-1 instruction cache
	CacheL1D                   // level-1 data cache
	CacheL2
	CacheL3
	CacheL4

	// CacheLevelCount is the number of tracked cache levels.
	CacheLevelCount = 5
)

func (l CacheLevel) String() string {
	switch l {
	case CacheL1I:
		return "L1I"
	case CacheL1D:
		return "L1D"
	case CacheL2:
		return "L2"
	case CacheL3:
		return "L3"
	case CacheL4:
		return "L4"
	default:
		return fmt.Sprintf("cache-level(%d)", int(l))
	}
}

// Vendor tags the processor manufacturer as reported by the describer.
type Vendor int

const (
	VendorUnknown Vendor = iota
	VendorIntel
	VendorAMD
	VendorOther
)

func (v Vendor) String() string {
	switch v {
	case VendorIntel:
		return "Intel"
	case VendorAMD:
		return "AMD"
	case VendorOther:
		return "other"
	default:
		return "unknown"
	}
}

// Uarch is an opaque microarchitecture tag assigned by the describer.
// The topology core copies it through without interpreting it.
type Uarch uint32

// UarchUnknown is the zero tag for describers that do not classify.
const UarchUnknown Uarch = 0

func (u Uarch) String() string {
	if u == UarchUnknown {
		return "unknown"
	}
	return fmt.Sprintf("uarch(0x%08x)", uint32(u))
}

// CacheGeometry describes one cache instance as seen by a single logical
// processor. A Size of zero means the level is absent for that processor.
type CacheGeometry struct {
	Size          uint32 // total size in bytes, 0 if the level is absent
	Associativity uint32 // ways of associativity
	Sets          uint32
	Partitions    uint32
	LineSize      uint32 // coherency line size in bytes
	Flags         uint32 // descriptor-defined attribute bits

	// IDBits is the number of low-order hierarchical-identifier bits that
	// are constant across all logical processors sharing this cache
	// instance. Masking those bits off an identifier yields the cache
	// sharing-domain id.
	IDBits uint32
}

// Descriptor is the raw per-logical-processor record filled in by a
// Describer while execution is pinned to that processor. The topology
// core consumes descriptors; it never produces them.
type Descriptor struct {
	// LogicalID is the OS-assigned id of the logical processor. Filled
	// by the collector, not the describer.
	LogicalID int

	// ID is the hierarchical identifier (APIC id on x86). Contiguous bit
	// fields encode, low to high, the thread-within-core index, the
	// core-within-package index, and package bits.
	ID uint32

	ThreadBitsOffset uint32
	ThreadBitsLength uint32
	CoreBitsOffset   uint32
	CoreBitsLength   uint32

	Vendor    Vendor
	Uarch     Uarch
	ModelInfo uint32 // packed numeric model identification value
	Brand     string // raw vendor brand string, not yet normalized

	// Caches holds the per-level geometry, indexed by CacheLevel.
	Caches [CacheLevelCount]CacheGeometry
}
