// File: topology/count.go
// Author: momentics <momentics@gmail.com>
//
// Counting pass: one forward scan over descriptors sorted by
// hierarchical identifier, counting transitions of seven grouping keys
// (core, package, and the five cache levels). Produces the exact array
// sizes for the build pass without allocating any topology objects.

package topology

import "github.com/momentics/cputopo/api"

// noGroup is the "last group id" sentinel. Group ids are uint32, so an
// int64 -1 can never collide with a real value.
const noGroup = int64(-1)

// objectCounts holds the result of the counting pass.
type objectCounts struct {
	cores    int
	packages int
	caches   [api.CacheLevelCount]int
}

// countObjects scans sorted descriptors and counts distinct adjacent
// groups per key. For a cache level with size 0 on the current
// descriptor the level's sentinel is reset, so a later run with the
// same raw id is counted as a new cache instance rather than merged
// with the earlier, discontiguous one.
func countObjects(descs []api.Descriptor) objectCounts {
	var counts objectCounts
	lastCore, lastPackage := noGroup, noGroup
	var lastCache [api.CacheLevelCount]int64
	for lvl := range lastCache {
		lastCache[lvl] = noGroup
	}

	for i := range descs {
		d := &descs[i]

		coreID := coreGroupID(d)
		if int64(coreID) != lastCore {
			lastCore = int64(coreID)
			counts.cores++
		}

		packageID := packageGroupID(d)
		if int64(packageID) != lastPackage {
			lastPackage = int64(packageID)
			counts.packages++
		}

		for lvl := 0; lvl < api.CacheLevelCount; lvl++ {
			if d.Caches[lvl].Size == 0 {
				lastCache[lvl] = noGroup
				continue
			}
			id := cacheGroupID(d.ID, d.Caches[lvl].IDBits)
			if int64(id) != lastCache[lvl] {
				lastCache[lvl] = int64(id)
				counts.caches[lvl]++
			}
		}
	}
	return counts
}
