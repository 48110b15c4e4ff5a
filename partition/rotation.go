// File: partition/rotation.go
// Author: momentics <momentics@gmail.com>
//
// Round-robin hand-out of core slots for pinned-worker placement. A
// FIFO of slots is rotated on every Next, so successive workers land on
// successive cores and wrap around once every core has been handed out.

package partition

import (
	"sync"

	"github.com/eapache/queue"

	"github.com/momentics/cputopo/topology"
)

// CoreRotation cycles through the snapshot's cores. Safe for concurrent
// use.
type CoreRotation struct {
	mu sync.Mutex
	q  *queue.Queue
}

// NewCoreRotation builds a rotation over all cores of the snapshot.
func NewCoreRotation(snap *topology.Snapshot) *CoreRotation {
	r := &CoreRotation{q: queue.New()}
	for _, slot := range PerCore(snap) {
		r.q.Add(slot)
	}
	return r
}

// Next returns the next core slot and rotates it to the back. ok is
// false for a topology with no cores.
func (r *CoreRotation) Next() (CoreSlot, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.q.Length() == 0 {
		return CoreSlot{}, false
	}
	slot := r.q.Remove().(CoreSlot)
	r.q.Add(slot)
	return slot, true
}

// Len returns the number of cores in the rotation.
func (r *CoreRotation) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.q.Length()
}
