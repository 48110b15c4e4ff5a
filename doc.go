// File: doc.go
// Author: momentics <momentics@gmail.com>
// License: Apache-2.0
//
// Package cputopo discovers the physical topology of the machine's
// processors (logical processors, cores, packages and the cache
// hierarchy) and publishes it as an immutable, process-global snapshot
// for performance-sensitive software such as thread pinning and
// cache-aware work placement.
//
// The entry point is the topology package:
//
//	if err := topology.Init(); err != nil { ... }
//	snap, ok := topology.Get()
//
// Subpackages:
//
//   - topology:  snapshot construction and queries (the core)
//   - affinity:  thread-affinity masks and pinning (Linux/Windows)
//   - sysfs:     Linux sysfs enumerator and describer
//   - cpuid:     x86 CPUID-backed describer (amd64)
//   - partition: cache-aware work partitioning over a snapshot
//   - api:       shared types and collaborator interfaces
//   - fake:      collaborator doubles for tests
package cputopo
