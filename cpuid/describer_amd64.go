//go:build amd64
// +build amd64

// File: cpuid/describer_amd64.go
// Author: momentics <momentics@gmail.com>
//
// CPUID-backed describer for x86-64. Must run on the thread pinned to
// the processor being described: the APIC id read through CPUID names
// the executing processor. Re-detects on every call for that reason.
//
// Geometry limits: CPUID exposes cache sizes and line size but, through
// this wrapper, not per-level sets/associativity; those fields stay 0.
// Sharing bit-counts assume the common layouts: private L1/L2 per
// core, package-wide L3.

package cpuid

import (
	"math/bits"

	kcpuid "github.com/klauspost/cpuid/v2"

	"github.com/momentics/cputopo/api"
)

// Describer fills descriptors from CPUID reads on the pinned thread.
type Describer struct{}

// NewDescriber returns the CPUID describer.
func NewDescriber() (*Describer, error) {
	return &Describer{}, nil
}

// Describe implements api.Describer.
func (*Describer) Describe(_ int, out *api.Descriptor) error {
	kcpuid.Detect()
	info := kcpuid.CPU

	threadBits := fieldWidth(info.ThreadsPerCore)
	coresPerPackage := info.PhysicalCores
	if coresPerPackage < 1 {
		coresPerPackage = 1
	}
	coreBits := fieldWidth(coresPerPackage)

	vendor, uarch, model, brand := Identify()

	out.ID = uint32(info.LogicalCPU())
	out.ThreadBitsOffset = 0
	out.ThreadBitsLength = threadBits
	out.CoreBitsOffset = threadBits
	out.CoreBitsLength = coreBits
	out.Vendor = vendor
	out.Uarch = uarch
	out.ModelInfo = model
	out.Brand = brand

	line := uint32(info.CacheLine)
	setCache := func(lvl api.CacheLevel, size int, idBits uint32) {
		if size <= 0 {
			return
		}
		out.Caches[lvl] = api.CacheGeometry{
			Size:     uint32(size),
			LineSize: line,
			IDBits:   idBits,
		}
	}
	setCache(api.CacheL1I, info.Cache.L1I, threadBits)
	setCache(api.CacheL1D, info.Cache.L1D, threadBits)
	setCache(api.CacheL2, info.Cache.L2, threadBits)
	setCache(api.CacheL3, info.Cache.L3, threadBits+coreBits)
	return nil
}

// fieldWidth returns the identifier bit-field width for n slots.
func fieldWidth(n int) uint32 {
	if n <= 1 {
		return 0
	}
	return uint32(bits.Len(uint(n - 1)))
}
