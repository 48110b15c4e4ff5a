package partition_test

import (
	"reflect"
	"testing"

	"github.com/momentics/cputopo/api"
	"github.com/momentics/cputopo/fake"
	"github.com/momentics/cputopo/partition"
	"github.com/momentics/cputopo/topology"
)

// snapshot probes the standard scenario: logical ids 0..3, two cores,
// one package, per-core L2, one shared L3.
func snapshot(t *testing.T) *topology.Snapshot {
	t.Helper()
	descs := make(map[int]api.Descriptor)
	for i := 0; i < 4; i++ {
		d := api.Descriptor{
			ID:               uint32(i),
			ThreadBitsOffset: 0, ThreadBitsLength: 1,
			CoreBitsOffset: 1, CoreBitsLength: 1,
		}
		d.Caches[api.CacheL2] = api.CacheGeometry{Size: 1 << 20, LineSize: 64, IDBits: 1}
		d.Caches[api.CacheL3] = api.CacheGeometry{Size: 8 << 20, LineSize: 64, IDBits: 2}
		descs[i] = d
	}
	snap, err := topology.Probe(
		topology.WithEnumerator(&fake.Enumerator{IDs: []int{0, 1, 2, 3}}),
		topology.WithDescriber(&fake.Describer{Descs: descs}),
		topology.WithPinner(&fake.Pinner{}),
	)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	return snap
}

func TestPerCore(t *testing.T) {
	slots := partition.PerCore(snapshot(t))
	if len(slots) != 2 {
		t.Fatalf("slots = %d, want 2", len(slots))
	}
	if !reflect.DeepEqual(slots[0].LogicalIDs, []int{0, 1}) {
		t.Errorf("core 0 ids = %v, want [0 1]", slots[0].LogicalIDs)
	}
	if !reflect.DeepEqual(slots[1].LogicalIDs, []int{2, 3}) {
		t.Errorf("core 1 ids = %v, want [2 3]", slots[1].LogicalIDs)
	}
}

func TestSharingDomains(t *testing.T) {
	snap := snapshot(t)

	l2 := partition.SharingDomains(snap, api.CacheL2)
	if len(l2) != 2 || !reflect.DeepEqual(l2[0], []int{0, 1}) || !reflect.DeepEqual(l2[1], []int{2, 3}) {
		t.Errorf("L2 domains = %v", l2)
	}

	l3 := partition.SharingDomains(snap, api.CacheL3)
	if len(l3) != 1 || !reflect.DeepEqual(l3[0], []int{0, 1, 2, 3}) {
		t.Errorf("L3 domains = %v", l3)
	}

	if l4 := partition.SharingDomains(snap, api.CacheL4); len(l4) != 0 {
		t.Errorf("L4 domains = %v, want none", l4)
	}
}

func TestCoreRotationCycles(t *testing.T) {
	rot := partition.NewCoreRotation(snapshot(t))
	if rot.Len() != 2 {
		t.Fatalf("Len = %d, want 2", rot.Len())
	}
	var seen []int
	for i := 0; i < 5; i++ {
		slot, ok := rot.Next()
		if !ok {
			t.Fatal("Next returned !ok on non-empty rotation")
		}
		seen = append(seen, slot.Core)
	}
	if !reflect.DeepEqual(seen, []int{0, 1, 0, 1, 0}) {
		t.Errorf("rotation order = %v, want [0 1 0 1 0]", seen)
	}
}

func TestCoreRotationEmpty(t *testing.T) {
	snap, err := topology.Probe(
		topology.WithEnumerator(&fake.Enumerator{}),
		topology.WithDescriber(&fake.Describer{}),
		topology.WithPinner(&fake.Pinner{}),
	)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	rot := partition.NewCoreRotation(snap)
	if _, ok := rot.Next(); ok {
		t.Error("Next must report !ok for a coreless topology")
	}
}
