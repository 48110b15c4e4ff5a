// File: topology/topology.go
// Author: momentics <momentics@gmail.com>
//
// Commit/rollback controller and the process-global snapshot slot.
// Probe runs the whole pipeline (collect, sort, count, build) into
// local variables only; Init publishes a successful result in a single
// atomic step. On any failure nothing is published and all candidate
// allocations are dropped with the call frame.

package topology

import (
	"log"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/momentics/cputopo/api"
)

var (
	// initMu serializes constructions; only one may be in flight.
	initMu sync.Mutex

	// published holds the committed snapshot, nil until the first
	// successful Init.
	published atomic.Pointer[Snapshot]
)

// Init constructs the topology and publishes it process-wide. It is
// safe to call repeatedly: once a snapshot is published, later calls
// are no-ops. A failed Init leaves the published state untouched.
func Init(opts ...Option) error {
	initMu.Lock()
	defer initMu.Unlock()
	if published.Load() != nil {
		return nil
	}
	snap, err := Probe(opts...)
	if err != nil {
		return err
	}
	published.Store(snap)
	return nil
}

// Get returns the published snapshot. ok is false until a successful
// Init; callers must check it before querying.
func Get() (*Snapshot, bool) {
	snap := published.Load()
	return snap, snap != nil
}

// Teardown discards the published snapshot so a later Init constructs a
// fresh one. Intended for tests; production code initializes once.
func Teardown() {
	initMu.Lock()
	defer initMu.Unlock()
	published.Store(nil)
}

// Probe runs one full construction without publishing: collect raw
// descriptors under pinned affinity, order them canonically, size the
// object arrays in a counting pass, then link the graph. The returned
// snapshot is private to the caller.
func Probe(opts ...Option) (*Snapshot, error) {
	cfg := newConfig(opts...)
	if cfg.Enumerator == nil || cfg.Describer == nil {
		return nil, api.NewError(api.ErrCodeNotSupported,
			"no platform enumerator/describer").WithCause(api.ErrNotSupported)
	}

	descs, err := collectDescriptors(cfg)
	if err != nil {
		return nil, err
	}

	// Canonical ordering: members of the same core, package or cache
	// sharing domain become contiguous, which both scan passes rely on.
	sort.SliceStable(descs, func(i, j int) bool {
		return descs[i].ID < descs[j].ID
	})

	counts := countObjects(descs)
	log.Printf("cputopo: detected %d logical processors, %d cores, %d packages",
		len(descs), counts.cores, counts.packages)
	log.Printf("cputopo: detected caches: %d L1I, %d L1D, %d L2, %d L3, %d L4",
		counts.caches[api.CacheL1I], counts.caches[api.CacheL1D],
		counts.caches[api.CacheL2], counts.caches[api.CacheL3],
		counts.caches[api.CacheL4])

	snap, err := buildGraph(descs, counts, cfg.Normalizer)
	if err != nil {
		return nil, err
	}

	if cfg.GPU != nil && len(snap.packages) > 0 {
		if name, err := cfg.GPU.GPUName(); err == nil {
			snap.packages[0].GPUName = name
		} else {
			log.Printf("cputopo: GPU name query failed: %v", err)
		}
	}
	return snap, nil
}
