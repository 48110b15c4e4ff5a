// File: topology/snapshot.go
// Author: momentics <momentics@gmail.com>
//
// The immutable published snapshot and its read-only queries. All
// accessors are safe for arbitrarily many concurrent readers: no field
// is mutated after construction.

package topology

import "github.com/momentics/cputopo/api"

// Snapshot is one complete, immutable topology. Cross-references inside
// are indices into the snapshot's own arrays (see types.go).
type Snapshot struct {
	processors []Processor
	cores      []Core
	packages   []Package
	caches     [api.CacheLevelCount][]Cache

	// lookup tables keyed by OS logical id
	processorByID map[int]int
	coreByID      map[int]int
}

// ProcessorCount returns the number of logical processors.
func (s *Snapshot) ProcessorCount() int { return len(s.processors) }

// CoreCount returns the number of physical cores.
func (s *Snapshot) CoreCount() int { return len(s.cores) }

// PackageCount returns the number of packages (sockets).
func (s *Snapshot) PackageCount() int { return len(s.packages) }

// CacheCount returns the number of cache instances at the given level.
func (s *Snapshot) CacheCount(level api.CacheLevel) int {
	if level < 0 || level >= api.CacheLevelCount {
		return 0
	}
	return len(s.caches[level])
}

// Processor returns the record at index i.
func (s *Snapshot) Processor(i int) (Processor, bool) {
	if i < 0 || i >= len(s.processors) {
		return Processor{}, false
	}
	return s.processors[i], true
}

// Core returns the record at index i.
func (s *Snapshot) Core(i int) (Core, bool) {
	if i < 0 || i >= len(s.cores) {
		return Core{}, false
	}
	return s.cores[i], true
}

// Package returns the record at index i.
func (s *Snapshot) Package(i int) (Package, bool) {
	if i < 0 || i >= len(s.packages) {
		return Package{}, false
	}
	return s.packages[i], true
}

// Cache returns the record at index i of the given level.
func (s *Snapshot) Cache(level api.CacheLevel, i int) (Cache, bool) {
	if level < 0 || level >= api.CacheLevelCount || i < 0 || i >= len(s.caches[level]) {
		return Cache{}, false
	}
	return s.caches[level][i], true
}

// ProcessorForID maps an OS logical id to its processor record.
func (s *Snapshot) ProcessorForID(logicalID int) (Processor, bool) {
	i, ok := s.processorByID[logicalID]
	if !ok {
		return Processor{}, false
	}
	return s.processors[i], true
}

// CoreForID maps an OS logical id to the core owning that logical
// processor.
func (s *Snapshot) CoreForID(logicalID int) (Core, bool) {
	i, ok := s.coreByID[logicalID]
	if !ok {
		return Core{}, false
	}
	return s.cores[i], true
}

// ProcessorCache resolves processor i's cache reference at the given
// level. ok is false when the processor has no cache at that level.
func (s *Snapshot) ProcessorCache(i int, level api.CacheLevel) (Cache, bool) {
	p, ok := s.Processor(i)
	if !ok || level < 0 || level >= api.CacheLevelCount {
		return Cache{}, false
	}
	idx := p.CacheIndex[level]
	if idx == AbsentIndex {
		return Cache{}, false
	}
	return s.caches[level][idx], true
}

// Processors returns the processor array as a read-only view. Callers
// must not modify it.
func (s *Snapshot) Processors() []Processor { return s.processors }

// Cores returns the core array as a read-only view.
func (s *Snapshot) Cores() []Core { return s.cores }

// Packages returns the package array as a read-only view.
func (s *Snapshot) Packages() []Package { return s.packages }

// Caches returns the cache array of the given level as a read-only
// view; nil when the level is empty.
func (s *Snapshot) Caches(level api.CacheLevel) []Cache {
	if level < 0 || level >= api.CacheLevelCount {
		return nil
	}
	return s.caches[level]
}
