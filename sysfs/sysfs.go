// File: sysfs/sysfs.go
// Author: momentics <momentics@gmail.com>
//
// Shared helpers for reading /sys/devices/system/cpu. The sysfs root is
// injectable so tests can point the package at a synthetic tree.

package sysfs

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/momentics/cputopo/internal/cpulist"
)

// DefaultRoot is the kernel cpu sysfs directory.
const DefaultRoot = "/sys/devices/system/cpu"

func readString(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}

func readInt(path string) (int, error) {
	s, err := readString(path)
	if err != nil {
		return 0, err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("sysfs: %s: %w", path, err)
	}
	return v, nil
}

func readIDList(path string) ([]int, error) {
	s, err := readString(path)
	if err != nil {
		return nil, err
	}
	return cpulist.Parse(s)
}

// readCacheSize parses the kernel cache size notation: a plain byte
// count or a value suffixed with K or M.
func readCacheSize(path string) (uint32, error) {
	s, err := readString(path)
	if err != nil {
		return 0, err
	}
	mult := uint64(1)
	switch {
	case strings.HasSuffix(s, "K"):
		mult = 1024
		s = strings.TrimSuffix(s, "K")
	case strings.HasSuffix(s, "M"):
		mult = 1024 * 1024
		s = strings.TrimSuffix(s, "M")
	}
	v, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("sysfs: %s: %w", path, err)
	}
	total := v * mult
	if total > math.MaxUint32 {
		return 0, fmt.Errorf("sysfs: %s: cache size %d bytes exceeds 32-bit range", path, total)
	}
	return uint32(total), nil
}

func cpuDir(root string, cpu int) string {
	return filepath.Join(root, fmt.Sprintf("cpu%d", cpu))
}
