//go:build !amd64
// +build !amd64

// File: cpuid/describer_stub.go
// Author: momentics <momentics@gmail.com>
//
// The CPUID describer exists only on x86-64.

package cpuid

import "github.com/momentics/cputopo/api"

// Describer is unavailable on this architecture.
type Describer struct{}

// NewDescriber reports that CPUID description is not supported here.
func NewDescriber() (*Describer, error) {
	return nil, api.ErrNotSupported
}

// Describe implements api.Describer; it always fails.
func (*Describer) Describe(int, *api.Descriptor) error {
	return api.ErrNotSupported
}
