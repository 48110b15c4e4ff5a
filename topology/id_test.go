package topology

import (
	"testing"

	"github.com/momentics/cputopo/api"
)

func TestBitMask(t *testing.T) {
	cases := []struct {
		n    uint32
		want uint32
	}{
		{0, 0}, // zero-length field masks nothing
		{1, 0x1},
		{2, 0x3},
		{8, 0xff},
		{31, 0x7fffffff},
		{32, 0xffffffff},
	}
	for _, c := range cases {
		if got := bitMask(c.n); got != c.want {
			t.Errorf("bitMask(%d) = %#x, want %#x", c.n, got, c.want)
		}
	}
}

func TestMaskField(t *testing.T) {
	if got := maskField(0xff, 2, 3); got != 0xe3 {
		t.Errorf("maskField(0xff,2,3) = %#x, want 0xe3", got)
	}
	if got := maskField(0xab, 4, 0); got != 0xab {
		t.Errorf("zero-length field must not mask: got %#x", got)
	}
}

func TestGroupIDs(t *testing.T) {
	// 1-bit thread field at bit 0, 1-bit core field at bit 1.
	for _, c := range []struct {
		id   uint32
		core uint32
		pkg  uint32
		smt  uint32
	}{
		{0, 0, 0, 0},
		{1, 0, 0, 1},
		{2, 2, 0, 0},
		{3, 2, 0, 1},
		{7, 6, 4, 1},
	} {
		d := api.Descriptor{
			ID:               c.id,
			ThreadBitsOffset: 0, ThreadBitsLength: 1,
			CoreBitsOffset: 1, CoreBitsLength: 1,
		}
		if got := coreGroupID(&d); got != c.core {
			t.Errorf("coreGroupID(%d) = %d, want %d", c.id, got, c.core)
		}
		if got := packageGroupID(&d); got != c.pkg {
			t.Errorf("packageGroupID(%d) = %d, want %d", c.id, got, c.pkg)
		}
		if got := smtIndex(&d); got != c.smt {
			t.Errorf("smtIndex(%d) = %d, want %d", c.id, got, c.smt)
		}
	}
}

func TestCacheGroupID(t *testing.T) {
	if got := cacheGroupID(0x17, 3); got != 0x10 {
		t.Errorf("cacheGroupID(0x17,3) = %#x, want 0x10", got)
	}
	if got := cacheGroupID(0x17, 0); got != 0x17 {
		t.Errorf("cacheGroupID with 0 bits must be identity, got %#x", got)
	}
}
