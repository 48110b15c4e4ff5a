// File: fake/collaborators.go
// Author: momentics <momentics@gmail.com>
//
// Deterministic collaborator doubles for tests: a canned enumerator, a
// descriptor-table describer, and a pinner that records pinning calls
// instead of touching the OS scheduler.

package fake

import (
	"fmt"

	"github.com/momentics/cputopo/affinity"
	"github.com/momentics/cputopo/api"
)

// Enumerator returns a fixed id set.
type Enumerator struct {
	IDs []int
	Err error
}

func (e *Enumerator) LogicalIDs() ([]int, error) {
	if e.Err != nil {
		return nil, e.Err
	}
	return e.IDs, nil
}

// Describer serves descriptors from a table keyed by logical id.
type Describer struct {
	Descs map[int]api.Descriptor

	// Err, when set, is returned for the logical id ErrID, or for every
	// call when ErrID is negative.
	Err   error
	ErrID int
}

func (d *Describer) Describe(id int, out *api.Descriptor) error {
	if d.Err != nil && (d.ErrID < 0 || d.ErrID == id) {
		return d.Err
	}
	desc, ok := d.Descs[id]
	if !ok {
		return fmt.Errorf("fake: no descriptor for cpu %d", id)
	}
	*out = desc
	return nil
}

// Pinner records affinity operations without performing them.
type Pinner struct {
	Initial affinity.Mask // returned by Current

	Pins     []int // cpus passed to PinTo, in order
	Restored int   // number of Restore calls

	CurrentErr error
	PinErr     error
	PinErrCPU  int // with PinErr set, fail only this cpu (negative: all)
	RestoreErr error
}

func (p *Pinner) Current() (affinity.Mask, error) {
	if p.CurrentErr != nil {
		return nil, p.CurrentErr
	}
	if p.Initial == nil {
		return affinity.NewMask(0).Set(0), nil
	}
	return p.Initial.Clone(), nil
}

func (p *Pinner) PinTo(cpu int) error {
	if p.PinErr != nil && (p.PinErrCPU < 0 || p.PinErrCPU == cpu) {
		return p.PinErr
	}
	p.Pins = append(p.Pins, cpu)
	return nil
}

func (p *Pinner) Restore(affinity.Mask) error {
	p.Restored++
	return p.RestoreErr
}

// StaticNormalizer returns a fixed name regardless of input.
type StaticNormalizer struct {
	Name string
}

func (n *StaticNormalizer) Normalize(string) string { return n.Name }

// GPUQuery returns a fixed GPU name.
type GPUQuery struct {
	Name string
	Err  error
}

func (q *GPUQuery) GPUName() (string, error) { return q.Name, q.Err }
