//go:build !linux
// +build !linux

// File: topology/defaults_stub.go
// Author: momentics <momentics@gmail.com>
//
// No default collaborators outside Linux; callers must supply an
// enumerator and a describer through options, or Init fails with
// api.ErrNotSupported.

package topology

func platformDefaults(*Config) {}
