// File: partition/partition.go
// Author: momentics <momentics@gmail.com>
//
// Work partitioning over a published topology snapshot: slice the
// machine into per-core or per-cache-domain groups of OS logical ids,
// ready for thread pinning and cache-aware work placement.

package partition

import (
	"github.com/momentics/cputopo/api"
	"github.com/momentics/cputopo/topology"
)

// CoreSlot is one core's worth of schedulable logical processors.
type CoreSlot struct {
	Core       int   // core index within the snapshot
	LogicalIDs []int // OS ids of the core's logical processors, ascending by snapshot order
}

// PerCore returns one slot per physical core.
func PerCore(snap *topology.Snapshot) []CoreSlot {
	slots := make([]CoreSlot, 0, snap.CoreCount())
	for i := 0; i < snap.CoreCount(); i++ {
		core, _ := snap.Core(i)
		ids := make([]int, 0, core.ProcessorCount)
		for j := core.ProcessorStart; j < core.ProcessorStart+core.ProcessorCount; j++ {
			p, _ := snap.Processor(j)
			ids = append(ids, p.LogicalID)
		}
		slots = append(slots, CoreSlot{Core: i, LogicalIDs: ids})
	}
	return slots
}

// SharingDomains returns, per cache instance at the given level, the OS
// logical ids sharing that instance. Empty when the level is absent.
func SharingDomains(snap *topology.Snapshot, level api.CacheLevel) [][]int {
	count := snap.CacheCount(level)
	domains := make([][]int, 0, count)
	for i := 0; i < count; i++ {
		cache, _ := snap.Cache(level, i)
		ids := make([]int, 0, cache.ProcessorCount)
		for j := cache.ProcessorStart; j < cache.ProcessorStart+cache.ProcessorCount; j++ {
			p, _ := snap.Processor(j)
			ids = append(ids, p.LogicalID)
		}
		domains = append(domains, ids)
	}
	return domains
}
