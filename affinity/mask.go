// File: affinity/mask.go
// Author: momentics <momentics@gmail.com>
//
// CPU affinity bitmask type shared by all platform implementations.
// The mask is a plain []uint64 bit string, sized dynamically, so it can
// represent systems with more CPUs than any fixed-size kernel cpu_set_t.

package affinity

import "math/bits"

// wordBits is the number of CPU slots per mask word.
const wordBits = 64

// Mask is a CPU bit string such as used for scheduler affinity masks.
// Bit n set means logical CPU n is included.
type Mask []uint64

// NewMask returns a zeroed mask able to hold CPUs [0, maxCPU].
func NewMask(maxCPU int) Mask {
	if maxCPU < 0 {
		maxCPU = 0
	}
	return make(Mask, maxCPU/wordBits+1)
}

// Set includes cpu in the mask, growing it when necessary, and returns
// the updated mask.
func (m Mask) Set(cpu int) Mask {
	idx := cpu / wordBits
	for idx >= len(m) {
		m = append(m, 0)
	}
	m[idx] |= uint64(1) << (uint(cpu) % wordBits)
	return m
}

// IsSet reports whether cpu is included in the mask.
func (m Mask) IsSet(cpu int) bool {
	idx := cpu / wordBits
	if cpu < 0 || idx >= len(m) {
		return false
	}
	return m[idx]&(uint64(1)<<(uint(cpu)%wordBits)) != 0
}

// Count returns the number of CPUs included in the mask.
func (m Mask) Count() int {
	n := 0
	for _, w := range m {
		n += bits.OnesCount64(w)
	}
	return n
}

// And returns the intersection of m and other as a new mask.
func (m Mask) And(other Mask) Mask {
	n := len(m)
	if len(other) < n {
		n = len(other)
	}
	out := make(Mask, n)
	for i := 0; i < n; i++ {
		out[i] = m[i] & other[i]
	}
	return out
}

// CPUs returns the included CPU ids in ascending order.
func (m Mask) CPUs() []int {
	ids := make([]int, 0, m.Count())
	for i, w := range m {
		for w != 0 {
			bit := bits.TrailingZeros64(w)
			ids = append(ids, i*wordBits+bit)
			w &= w - 1
		}
	}
	return ids
}

// Clone returns an independent copy of the mask.
func (m Mask) Clone() Mask {
	out := make(Mask, len(m))
	copy(out, m)
	return out
}
