package sysfs_test

import (
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"testing"

	"github.com/momentics/cputopo/api"
	"github.com/momentics/cputopo/fake"
	"github.com/momentics/cputopo/sysfs"
	"github.com/momentics/cputopo/topology"
)

// writeTree lays out a synthetic sysfs cpu tree: one package, two cores,
// two threads per core with the kernel's interleaved numbering (cpu0/2
// on core 0, cpu1/3 on core 1). Each core has split L1 and a private
// L2; one L3 spans the package.
func writeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	write := func(rel, content string) {
		t.Helper()
		path := filepath.Join(root, rel)
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
			t.Fatal(err)
		}
	}

	write("present", "0-3")
	write("possible", "0-3")

	type cpu struct {
		id       int
		core     int
		siblings string
	}
	cpus := []cpu{
		{0, 0, "0,2"},
		{1, 1, "1,3"},
		{2, 0, "0,2"},
		{3, 1, "1,3"},
	}
	for _, c := range cpus {
		base := filepath.Join("cpu"+itoa(c.id), "topology")
		write(filepath.Join(base, "physical_package_id"), "0")
		write(filepath.Join(base, "core_id"), itoa(c.core))
		write(filepath.Join(base, "thread_siblings_list"), c.siblings)

		cache := filepath.Join("cpu"+itoa(c.id), "cache")
		writeIndex := func(idx int, level int, typ, size, shared string) {
			dir := filepath.Join(cache, "index"+itoa(idx))
			write(filepath.Join(dir, "level"), itoa(level))
			write(filepath.Join(dir, "type"), typ)
			write(filepath.Join(dir, "size"), size)
			write(filepath.Join(dir, "shared_cpu_list"), shared)
			write(filepath.Join(dir, "ways_of_associativity"), "8")
			write(filepath.Join(dir, "number_of_sets"), "64")
			write(filepath.Join(dir, "physical_line_partition"), "1")
			write(filepath.Join(dir, "coherency_line_size"), "64")
		}
		writeIndex(0, 1, "Data", "32K", c.siblings)
		writeIndex(1, 1, "Instruction", "32K", c.siblings)
		writeIndex(2, 2, "Unified", "512K", c.siblings)
		writeIndex(3, 3, "Unified", "4096K", "0-3")
	}
	return root
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

func TestEnumerator(t *testing.T) {
	root := writeTree(t)
	ids, err := sysfs.NewEnumeratorRoot(root).LogicalIDs()
	if err != nil {
		t.Fatalf("LogicalIDs: %v", err)
	}
	if !reflect.DeepEqual(ids, []int{0, 1, 2, 3}) {
		t.Errorf("ids = %v, want [0 1 2 3]", ids)
	}
}

func TestEnumeratorMissingTree(t *testing.T) {
	_, err := sysfs.NewEnumeratorRoot(filepath.Join(t.TempDir(), "nope")).LogicalIDs()
	if err == nil {
		t.Fatal("expected error for missing sysfs tree")
	}
}

func TestDescriberSynthesizedIDs(t *testing.T) {
	root := writeTree(t)
	d := sysfs.NewDescriberRoot(root)

	// cpu2 is the second SMT thread of core 0: thread bit set, core bit
	// clear.
	var desc api.Descriptor
	if err := d.Describe(2, &desc); err != nil {
		t.Fatalf("Describe(2): %v", err)
	}
	if desc.ThreadBitsLength != 1 || desc.ThreadBitsOffset != 0 {
		t.Errorf("thread field = %d@%d, want 1@0", desc.ThreadBitsLength, desc.ThreadBitsOffset)
	}
	if desc.CoreBitsLength != 1 || desc.CoreBitsOffset != 1 {
		t.Errorf("core field = %d@%d, want 1@1", desc.CoreBitsLength, desc.CoreBitsOffset)
	}
	if desc.ID != 1 {
		t.Errorf("cpu2 ID = %d, want 1 (thread 1 of core 0)", desc.ID)
	}

	if got := desc.Caches[api.CacheL1D]; got.Size != 32*1024 || got.IDBits != 1 {
		t.Errorf("L1D = %+v, want size 32768 idbits 1", got)
	}
	if got := desc.Caches[api.CacheL1I]; got.Size != 32*1024 {
		t.Errorf("L1I = %+v, want size 32768", got)
	}
	if got := desc.Caches[api.CacheL2]; got.Size != 512*1024 || got.IDBits != 1 {
		t.Errorf("L2 = %+v, want size 524288 idbits 1", got)
	}
	if got := desc.Caches[api.CacheL3]; got.Size != 4096*1024 || got.IDBits != 2 {
		t.Errorf("L3 = %+v, want size 4194304 idbits 2", got)
	}
	if got := desc.Caches[api.CacheL4]; got.Size != 0 {
		t.Errorf("L4 = %+v, want absent", got)
	}

	var d3 api.Descriptor
	if err := d.Describe(3, &d3); err != nil {
		t.Fatalf("Describe(3): %v", err)
	}
	if d3.ID != 3 {
		t.Errorf("cpu3 ID = %d, want 3 (thread 1 of core 1)", d3.ID)
	}
}

func TestDescriberUnknownCPU(t *testing.T) {
	d := sysfs.NewDescriberRoot(writeTree(t))
	var desc api.Descriptor
	if err := d.Describe(17, &desc); err == nil {
		t.Fatal("expected error for cpu outside the scanned tree")
	}
}

func TestProbeFromSyntheticTree(t *testing.T) {
	root := writeTree(t)
	snap, err := topology.Probe(
		topology.WithEnumerator(sysfs.NewEnumeratorRoot(root)),
		topology.WithDescriber(sysfs.NewDescriberRoot(root)),
		topology.WithPinner(&fake.Pinner{}),
	)
	if err != nil {
		t.Fatalf("Probe: %v", err)
	}
	if snap.ProcessorCount() != 4 || snap.CoreCount() != 2 || snap.PackageCount() != 1 {
		t.Fatalf("counts %d/%d/%d, want 4/2/1",
			snap.ProcessorCount(), snap.CoreCount(), snap.PackageCount())
	}
	if snap.CacheCount(api.CacheL1D) != 2 || snap.CacheCount(api.CacheL3) != 1 {
		t.Errorf("cache counts L1D=%d L3=%d, want 2/1",
			snap.CacheCount(api.CacheL1D), snap.CacheCount(api.CacheL3))
	}

	// Interleaved numbering: core 0 owns logical cpus 0 and 2.
	core, ok := snap.CoreForID(2)
	if !ok {
		t.Fatal("CoreForID(2) missing")
	}
	c0, ok2 := snap.CoreForID(0)
	if !ok2 || core.ID != c0.ID {
		t.Errorf("cpus 0 and 2 should share a core: %+v vs %+v", c0, core)
	}
	if other, _ := snap.CoreForID(1); other.ID == core.ID {
		t.Error("cpus 1 and 2 must be on different cores")
	}
}
