// File: internal/cpulist/cpulist.go
// Author: momentics <momentics@gmail.com>
//
// Parsing and formatting of the kernel "cpulist" format used by
// /sys/devices/system/cpu/{present,possible} and the per-cache
// shared_cpu_list attributes: comma-separated single ids and inclusive
// ranges, e.g. "0-3,5,8-9". An empty string is a valid empty list.

package cpulist

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// Parse returns the ids encoded by the cpulist string, sorted ascending
// with duplicates removed.
func Parse(s string) ([]int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	var ids []int
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if lo, hi, ok := strings.Cut(part, "-"); ok {
			start, err := strconv.Atoi(strings.TrimSpace(lo))
			if err != nil {
				return nil, fmt.Errorf("cpulist: bad range start %q: %w", part, err)
			}
			end, err := strconv.Atoi(strings.TrimSpace(hi))
			if err != nil {
				return nil, fmt.Errorf("cpulist: bad range end %q: %w", part, err)
			}
			if end < start || start < 0 {
				return nil, fmt.Errorf("cpulist: invalid range %q", part)
			}
			for id := start; id <= end; id++ {
				ids = append(ids, id)
			}
			continue
		}
		id, err := strconv.Atoi(part)
		if err != nil {
			return nil, fmt.Errorf("cpulist: bad id %q: %w", part, err)
		}
		if id < 0 {
			return nil, fmt.Errorf("cpulist: negative id %q", part)
		}
		ids = append(ids, id)
	}
	sort.Ints(ids)
	return dedupeSorted(ids), nil
}

// Format renders sorted ids back into cpulist notation, collapsing
// consecutive runs into ranges.
func Format(ids []int) string {
	if len(ids) == 0 {
		return ""
	}
	var b strings.Builder
	start, prev := ids[0], ids[0]
	flush := func() {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		if start == prev {
			fmt.Fprintf(&b, "%d", start)
		} else {
			fmt.Fprintf(&b, "%d-%d", start, prev)
		}
	}
	for _, id := range ids[1:] {
		if id == prev+1 {
			prev = id
			continue
		}
		flush()
		start, prev = id, id
	}
	flush()
	return b.String()
}

// Intersect returns the ids present in both sorted slices.
func Intersect(a, b []int) []int {
	var out []int
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}

func dedupeSorted(ids []int) []int {
	out := ids[:0]
	for i, id := range ids {
		if i == 0 || id != ids[i-1] {
			out = append(out, id)
		}
	}
	return out
}
