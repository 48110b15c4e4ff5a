// File: topology/build.go
// Author: momentics <momentics@gmail.com>
//
// Build pass: allocates arrays pre-sized by the counting pass and
// re-scans the sorted descriptors with the same grouping-key tracking,
// this time materializing every processor, core, package and cache
// record, the parent back-references, and the two OS-logical-id lookup
// tables. Everything stays in local variables; the caller publishes the
// returned snapshot only on full success.

package topology

import (
	"fmt"

	"github.com/momentics/cputopo/api"
)

// allocFailpoint, when non-nil, may fail a named allocation. Used by
// tests to verify that a mid-build failure leaves no published state.
var allocFailpoint func(label string) error

// allocSlice allocates a records array through the failpoint. A zero
// count yields a nil slice, which is a valid empty level, not an error.
func allocSlice[T any](label string, n int) ([]T, error) {
	if allocFailpoint != nil {
		if err := allocFailpoint(label); err != nil {
			return nil, api.NewError(api.ErrCodeAlloc, "allocating "+label).
				WithCause(fmt.Errorf("%w: %w", api.ErrAllocFailed, err))
		}
	}
	if n == 0 {
		return nil, nil
	}
	return make([]T, n), nil
}

func allocIDMap(label string, n int) (map[int]int, error) {
	if allocFailpoint != nil {
		if err := allocFailpoint(label); err != nil {
			return nil, api.NewError(api.ErrCodeAlloc, "allocating "+label).
				WithCause(fmt.Errorf("%w: %w", api.ErrAllocFailed, err))
		}
	}
	return make(map[int]int, n), nil
}

// buildGraph links the full topology graph from sorted descriptors and
// their object counts. norm derives package display names from raw
// brand strings.
func buildGraph(descs []api.Descriptor, counts objectCounts, norm api.Normalizer) (*Snapshot, error) {
	processors, err := allocSlice[Processor]("processors", len(descs))
	if err != nil {
		return nil, err
	}
	cores, err := allocSlice[Core]("cores", counts.cores)
	if err != nil {
		return nil, err
	}
	packages, err := allocSlice[Package]("packages", counts.packages)
	if err != nil {
		return nil, err
	}
	var caches [api.CacheLevelCount][]Cache
	for lvl := 0; lvl < api.CacheLevelCount; lvl++ {
		caches[lvl], err = allocSlice[Cache](api.CacheLevel(lvl).String()+" caches", counts.caches[lvl])
		if err != nil {
			return nil, err
		}
	}
	processorByID, err := allocIDMap("cpu-to-processor table", len(descs))
	if err != nil {
		return nil, err
	}
	coreByID, err := allocIDMap("cpu-to-core table", len(descs))
	if err != nil {
		return nil, err
	}

	coreIndex, packageIndex := AbsentIndex, AbsentIndex
	lastCore, lastPackage := noGroup, noGroup
	var cacheIndex [api.CacheLevelCount]int
	var lastCache [api.CacheLevelCount]int64
	for lvl := range lastCache {
		cacheIndex[lvl] = AbsentIndex
		lastCache[lvl] = noGroup
	}

	for i := range descs {
		d := &descs[i]

		coreID := coreGroupID(d)
		newCore := int64(coreID) != lastCore
		if newCore {
			coreIndex++
		}
		packageID := packageGroupID(d)
		newPackage := int64(packageID) != lastPackage
		if newPackage {
			packageIndex++
		}

		p := &processors[i]
		p.LogicalID = d.LogicalID
		p.ID = d.ID
		p.SMTID = smtIndex(d)
		p.CoreIndex = coreIndex
		p.PackageIndex = packageIndex
		for lvl := range p.CacheIndex {
			p.CacheIndex[lvl] = AbsentIndex
		}

		if newCore {
			cores[coreIndex] = Core{
				ProcessorStart: i,
				ProcessorCount: 1,
				ID:             coreID,
				PackageIndex:   packageIndex,
				Vendor:         d.Vendor,
				Uarch:          d.Uarch,
				ModelInfo:      d.ModelInfo,
			}
			packages[packageIndex].CoreCount++
			lastCore = int64(coreID)
		} else {
			// another logical processor on the same core
			cores[coreIndex].ProcessorCount++
		}

		if newPackage {
			pkg := &packages[packageIndex]
			pkg.ProcessorStart = i
			pkg.ProcessorCount = 1
			pkg.CoreStart = coreIndex
			pkg.Name = norm.Normalize(d.Brand)
			lastPackage = int64(packageID)
		} else {
			// another logical processor on the same package
			packages[packageIndex].ProcessorCount++
		}

		processorByID[d.LogicalID] = i
		coreByID[d.LogicalID] = coreIndex

		for lvl := 0; lvl < api.CacheLevelCount; lvl++ {
			g := &d.Caches[lvl]
			if g.Size == 0 {
				// absence is not a group: reset so a later run with the
				// same raw id starts a fresh cache instance
				lastCache[lvl] = noGroup
				continue
			}
			id := cacheGroupID(d.ID, g.IDBits)
			if int64(id) != lastCache[lvl] {
				cacheIndex[lvl]++
				caches[lvl][cacheIndex[lvl]] = Cache{
					Size:           g.Size,
					Associativity:  g.Associativity,
					Sets:           g.Sets,
					Partitions:     g.Partitions,
					LineSize:       g.LineSize,
					Flags:          g.Flags,
					ProcessorStart: i,
					ProcessorCount: 1,
				}
				lastCache[lvl] = int64(id)
			} else {
				// another processor sharing the same cache instance
				caches[lvl][cacheIndex[lvl]].ProcessorCount++
			}
			p.CacheIndex[lvl] = cacheIndex[lvl]
		}
	}

	return &Snapshot{
		processors:    processors,
		cores:         cores,
		packages:      packages,
		caches:        caches,
		processorByID: processorByID,
		coreByID:      coreByID,
	}, nil
}
