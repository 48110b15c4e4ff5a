// Package topology
// Author: momentics <momentics@gmail.com>
//
// Construction and publication of the processor topology snapshot.
// Collects one raw descriptor per logical processor under pinned
// affinity, orders descriptors by hierarchical identifier, derives the
// number of cores, packages and caches in a counting pass, then links
// the full object graph in a second pass. The finished snapshot is
// published process-wide in a single step; any failure rolls the whole
// attempt back without touching published state.
// See collect.go, count.go, build.go, topology.go for the pipeline.
package topology
