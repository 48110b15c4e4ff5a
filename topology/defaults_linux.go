//go:build linux
// +build linux

// File: topology/defaults_linux.go
// Author: momentics <momentics@gmail.com>
//
// Linux default collaborators: sysfs enumerator and describer.

package topology

import "github.com/momentics/cputopo/sysfs"

func platformDefaults(cfg *Config) {
	cfg.Enumerator = sysfs.NewEnumerator()
	cfg.Describer = sysfs.NewDescriber()
}
