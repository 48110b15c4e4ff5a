// File: topology/id.go
// Author: momentics <momentics@gmail.com>
//
// Hierarchical-identifier decomposition. Pure bit-mask arithmetic: a
// descriptor's identifier packs thread, core and package fields from low
// to high bits, and masking a field to zero yields the grouping id at
// that level.

package topology

import "github.com/momentics/cputopo/api"

// bitMask returns a mask with the low n bits set. n == 0 yields 0, so a
// zero-length field masks nothing; n >= 32 yields all ones.
func bitMask(n uint32) uint32 {
	return (uint32(1) << n) - 1
}

// maskField zeroes the identifier bit field of the given offset and
// length.
func maskField(id, offset, length uint32) uint32 {
	return id &^ (bitMask(length) << offset)
}

// coreGroupID is the identifier with the thread field removed: equal
// values mean "same core".
func coreGroupID(d *api.Descriptor) uint32 {
	return maskField(d.ID, d.ThreadBitsOffset, d.ThreadBitsLength)
}

// packageGroupID removes both the thread and core fields: equal values
// mean "same package".
func packageGroupID(d *api.Descriptor) uint32 {
	return maskField(coreGroupID(d), d.CoreBitsOffset, d.CoreBitsLength)
}

// cacheGroupID removes the low idBits bits, which are constant for all
// processors sharing one cache instance: equal values mean "same
// sharing domain".
func cacheGroupID(id, idBits uint32) uint32 {
	return id &^ bitMask(idBits)
}

// smtIndex extracts the thread-within-core field.
func smtIndex(d *api.Descriptor) uint32 {
	return (d.ID >> d.ThreadBitsOffset) & bitMask(d.ThreadBitsLength)
}
