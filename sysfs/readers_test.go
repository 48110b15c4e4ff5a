package sysfs

import (
	"os"
	"path/filepath"
	"testing"
)

func writeAttr(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "size")
	if err := os.WriteFile(path, []byte(content+"\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadCacheSize(t *testing.T) {
	cases := []struct {
		in      string
		want    uint32
		wantErr bool
	}{
		{"32768", 32768, false},
		{"32K", 32 * 1024, false},
		{"4M", 4 << 20, false},
		{"3145728K", 3 << 30, false}, // 3 GiB, the largest unit kernels emit in K
		{"4194304K", 0, true},        // 4 GiB would wrap a uint32
		{"8192M", 0, true},
		{"junk", 0, true},
	}
	for _, c := range cases {
		got, err := readCacheSize(writeAttr(t, c.in))
		if (err != nil) != c.wantErr {
			t.Errorf("readCacheSize(%q) err = %v, wantErr %v", c.in, err, c.wantErr)
			continue
		}
		if !c.wantErr && got != c.want {
			t.Errorf("readCacheSize(%q) = %d, want %d", c.in, got, c.want)
		}
	}
}
