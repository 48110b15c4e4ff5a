// File: topology/collect.go
// Author: momentics <momentics@gmail.com>
//
// Raw descriptor collection. Walks the enumerated logical processor ids
// in ascending order, pins the calling thread to each in turn and asks
// the describer to fill one descriptor. The original thread affinity is
// restored on every exit path; a failed restoration is logged as a
// warning but is not fatal.

package topology

import (
	"fmt"
	"log"
	"runtime"

	"github.com/momentics/cputopo/affinity"
	"github.com/momentics/cputopo/api"
)

// Pinner abstracts thread-affinity control for the collector. The
// default implementation delegates to the affinity package; tests
// substitute a fake.
type Pinner interface {
	// Current returns the affinity mask of the calling thread.
	Current() (affinity.Mask, error)
	// PinTo restricts the calling thread to one logical CPU.
	PinTo(cpu int) error
	// Restore reinstates a mask previously returned by Current.
	Restore(affinity.Mask) error
}

// osPinner is the production Pinner.
type osPinner struct{}

func (osPinner) Current() (affinity.Mask, error) { return affinity.Get() }
func (osPinner) PinTo(cpu int) error             { return affinity.PinTo(cpu) }
func (osPinner) Restore(m affinity.Mask) error   { return affinity.Apply(m) }

// collectDescriptors gathers one raw descriptor per enumerated logical
// processor. Any enumeration, pinning or description failure aborts the
// whole collection.
func collectDescriptors(cfg *Config) ([]api.Descriptor, error) {
	ids, err := cfg.Enumerator.LogicalIDs()
	if err != nil {
		return nil, api.NewError(api.ErrCodeInternal, "enumerating logical processors").WithCause(err)
	}
	if len(ids) == 0 {
		// zero logical processors is a valid, empty topology
		return nil, nil
	}

	// The pinning below changes the affinity of the calling OS thread;
	// keep the goroutine on that thread for the whole collection.
	runtime.LockOSThread()
	defer runtime.UnlockOSThread()

	saved, err := cfg.Pinner.Current()
	if err != nil {
		return nil, api.NewError(api.ErrCodeAffinity, "reading thread affinity").
			WithCause(fmt.Errorf("%w: %w", api.ErrAffinityQuery, err))
	}
	defer func() {
		if err := cfg.Pinner.Restore(saved); err != nil {
			log.Printf("cputopo: could not restore initial thread affinity: %v", err)
		}
	}()

	descs := make([]api.Descriptor, len(ids))
	for i, id := range ids {
		if err := cfg.Pinner.PinTo(id); err != nil {
			return nil, api.NewError(api.ErrCodeAffinity, "pinning thread").
				WithContext("cpu", id).WithCause(fmt.Errorf("%w: %w", api.ErrAffinityApply, err))
		}
		if err := cfg.Describer.Describe(id, &descs[i]); err != nil {
			return nil, api.NewError(api.ErrCodeDescribe, "describing processor").
				WithContext("cpu", id).WithCause(fmt.Errorf("%w: %w", api.ErrDescribe, err))
		}
		descs[i].LogicalID = id
	}
	return descs, nil
}
