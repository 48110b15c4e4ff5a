// File: sysfs/enumerator.go
// Author: momentics <momentics@gmail.com>
//
// Logical-id enumeration from the kernel "present" and "possible"
// cpulists. The topology consumes their intersection: ids that exist
// and may be scheduled on.

package sysfs

import (
	"path/filepath"

	"github.com/momentics/cputopo/internal/cpulist"
)

// Enumerator reads present∩possible logical ids from sysfs.
type Enumerator struct {
	root string
}

// NewEnumerator returns an enumerator over the live sysfs tree.
func NewEnumerator() *Enumerator {
	return &Enumerator{root: DefaultRoot}
}

// NewEnumeratorRoot returns an enumerator over an alternate sysfs root.
func NewEnumeratorRoot(root string) *Enumerator {
	return &Enumerator{root: root}
}

// LogicalIDs implements api.Enumerator.
func (e *Enumerator) LogicalIDs() ([]int, error) {
	present, err := readIDList(filepath.Join(e.root, "present"))
	if err != nil {
		return nil, err
	}
	possible, err := readIDList(filepath.Join(e.root, "possible"))
	if err != nil {
		return nil, err
	}
	return cpulist.Intersect(present, possible), nil
}
