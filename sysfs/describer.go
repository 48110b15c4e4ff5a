// File: sysfs/describer.go
// Author: momentics <momentics@gmail.com>
//
// Sysfs-backed processor describer. The kernel does not expose raw
// hardware identifiers, so the describer synthesizes a hierarchical
// identifier per logical processor: package ordinal, core-within-package
// ordinal, and SMT position packed into contiguous bit fields, with each
// field wide enough for the largest observed group. Cache geometry comes
// from the per-cpu cache/index* attributes, and each level's sharing
// bit-count is derived from shared_cpu_list against the synthesized ids.
//
// The whole tree is scanned once, lazily; Describe then serves from the
// scan result. Vendor, brand and model identification come from CPUID
// where the architecture provides it (see the cpuid package).

package sysfs

import (
	"fmt"
	"math/bits"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/momentics/cputopo/api"
	"github.com/momentics/cputopo/cpuid"
)

// Describer synthesizes raw descriptors from a sysfs cpu tree.
type Describer struct {
	root string

	once    sync.Once
	scanErr error
	descs   map[int]api.Descriptor
}

// NewDescriber returns a describer over the live sysfs tree.
func NewDescriber() *Describer {
	return &Describer{root: DefaultRoot}
}

// NewDescriberRoot returns a describer over an alternate sysfs root.
func NewDescriberRoot(root string) *Describer {
	return &Describer{root: root}
}

// Describe implements api.Describer.
func (d *Describer) Describe(id int, out *api.Descriptor) error {
	d.once.Do(func() {
		d.descs, d.scanErr = scanTree(d.root)
	})
	if d.scanErr != nil {
		return d.scanErr
	}
	desc, ok := d.descs[id]
	if !ok {
		return fmt.Errorf("sysfs: cpu %d not present in topology scan", id)
	}
	*out = desc
	return nil
}

// cpuPlace is one logical processor's position read from sysfs.
type cpuPlace struct {
	packageID int
	coreID    int
	smtPos    int
}

func scanTree(root string) (map[int]api.Descriptor, error) {
	ids, err := NewEnumeratorRoot(root).LogicalIDs()
	if err != nil {
		return nil, err
	}

	places := make(map[int]cpuPlace, len(ids))
	packageCores := make(map[int]map[int]bool)
	maxThreads := 1
	for _, cpu := range ids {
		topoDir := filepath.Join(cpuDir(root, cpu), "topology")
		packageID, err := readInt(filepath.Join(topoDir, "physical_package_id"))
		if err != nil {
			return nil, err
		}
		coreID, err := readInt(filepath.Join(topoDir, "core_id"))
		if err != nil {
			return nil, err
		}
		siblings, err := readIDList(filepath.Join(topoDir, "thread_siblings_list"))
		if err != nil {
			return nil, err
		}
		smtPos := 0
		for i, sib := range siblings {
			if sib == cpu {
				smtPos = i
				break
			}
		}
		if len(siblings) > maxThreads {
			maxThreads = len(siblings)
		}
		if packageCores[packageID] == nil {
			packageCores[packageID] = make(map[int]bool)
		}
		packageCores[packageID][coreID] = true
		places[cpu] = cpuPlace{packageID: packageID, coreID: coreID, smtPos: smtPos}
	}

	threadBits := bitsFor(maxThreads)
	maxCores := 1
	for _, cores := range packageCores {
		if len(cores) > maxCores {
			maxCores = len(cores)
		}
	}
	coreBits := bitsFor(maxCores)

	packageOrd := ordinals(keysOf(packageCores))
	coreOrd := make(map[int]map[int]int, len(packageCores))
	for packageID, cores := range packageCores {
		coreOrd[packageID] = ordinals(keysOf(cores))
	}

	// Synthesized hierarchical ids: SMT position in the low field, core
	// ordinal above it, package ordinal on top.
	idOf := make(map[int]uint32, len(ids))
	for _, cpu := range ids {
		p := places[cpu]
		idOf[cpu] = uint32(packageOrd[p.packageID])<<(threadBits+coreBits) |
			uint32(coreOrd[p.packageID][p.coreID])<<threadBits |
			uint32(p.smtPos)
	}

	vendor, uarch, model, brand := cpuid.Identify()

	descs := make(map[int]api.Descriptor, len(ids))
	for _, cpu := range ids {
		desc := api.Descriptor{
			ID:               idOf[cpu],
			ThreadBitsOffset: 0,
			ThreadBitsLength: threadBits,
			CoreBitsOffset:   threadBits,
			CoreBitsLength:   coreBits,
			Vendor:           vendor,
			Uarch:            uarch,
			ModelInfo:        model,
			Brand:            brand,
		}
		if err := fillCaches(root, cpu, idOf, &desc); err != nil {
			return nil, err
		}
		descs[cpu] = desc
	}
	return descs, nil
}

// fillCaches reads cache/index* of one cpu into the descriptor.
func fillCaches(root string, cpu int, idOf map[int]uint32, desc *api.Descriptor) error {
	cacheDir := filepath.Join(cpuDir(root, cpu), "cache")
	entries, err := os.ReadDir(cacheDir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil // no cache information exposed
		}
		return err
	}
	for _, entry := range entries {
		if !strings.HasPrefix(entry.Name(), "index") {
			continue
		}
		idxDir := filepath.Join(cacheDir, entry.Name())
		level, err := readInt(filepath.Join(idxDir, "level"))
		if err != nil {
			return err
		}
		typ, err := readString(filepath.Join(idxDir, "type"))
		if err != nil {
			return err
		}
		lvl, ok := cacheLevelOf(level, typ)
		if !ok {
			continue
		}
		size, err := readCacheSize(filepath.Join(idxDir, "size"))
		if err != nil {
			return err
		}
		shared, err := readIDList(filepath.Join(idxDir, "shared_cpu_list"))
		if err != nil {
			return err
		}
		geo := api.CacheGeometry{
			Size:          size,
			Associativity: uint32(readIntOr(filepath.Join(idxDir, "ways_of_associativity"), 0)),
			Sets:          uint32(readIntOr(filepath.Join(idxDir, "number_of_sets"), 0)),
			Partitions:    uint32(readIntOr(filepath.Join(idxDir, "physical_line_partition"), 1)),
			LineSize:      uint32(readIntOr(filepath.Join(idxDir, "coherency_line_size"), 0)),
			IDBits:        sharingBits(idOf, shared),
		}
		desc.Caches[lvl] = geo
	}
	return nil
}

// cacheLevelOf maps a sysfs level/type pair onto a CacheLevel. A
// unified level-1 cache counts as data.
func cacheLevelOf(level int, typ string) (api.CacheLevel, bool) {
	switch level {
	case 1:
		if typ == "Instruction" {
			return api.CacheL1I, true
		}
		return api.CacheL1D, true
	case 2:
		return api.CacheL2, true
	case 3:
		return api.CacheL3, true
	case 4:
		return api.CacheL4, true
	default:
		return 0, false
	}
}

// sharingBits finds the smallest low-bit count whose mask makes all
// sharers' synthesized identifiers equal.
func sharingBits(idOf map[int]uint32, sharers []int) uint32 {
	if len(sharers) == 0 {
		return 0
	}
	for b := uint32(0); b < 32; b++ {
		mask := ^((uint32(1) << b) - 1)
		ref := idOf[sharers[0]] & mask
		equal := true
		for _, cpu := range sharers[1:] {
			if idOf[cpu]&mask != ref {
				equal = false
				break
			}
		}
		if equal {
			return b
		}
	}
	return 32
}

// readIntOr reads an integer attribute, falling back to def when the
// attribute is missing or malformed (kernels omit some cache fields).
func readIntOr(path string, def int) int {
	v, err := readInt(path)
	if err != nil {
		return def
	}
	return v
}

// bitsFor returns the field width needed to index n distinct values.
func bitsFor(n int) uint32 {
	if n <= 1 {
		return 0
	}
	return uint32(bits.Len(uint(n - 1)))
}

func keysOf[V any](m map[int]V) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	return keys
}

func ordinals(keys []int) map[int]int {
	sort.Ints(keys)
	ord := make(map[int]int, len(keys))
	for i, k := range keys {
		ord[k] = i
	}
	return ord
}
