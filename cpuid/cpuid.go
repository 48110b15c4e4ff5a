// File: cpuid/cpuid.go
// Author: momentics <momentics@gmail.com>
//
// Processor identification via the CPUID instruction, wrapping
// github.com/klauspost/cpuid. Identify is portable: on architectures
// without CPUID it reports unknown vendor and an empty brand, which the
// sysfs describer passes through unchanged.

package cpuid

import (
	kcpuid "github.com/klauspost/cpuid/v2"

	"github.com/momentics/cputopo/api"
)

// Identify returns the vendor tag, microarchitecture tag, packed model
// identification value and raw brand string of the executing processor.
// The model value packs family, model and stepping as
// family<<8 | model<<4 | stepping.
func Identify() (api.Vendor, api.Uarch, uint32, string) {
	info := kcpuid.CPU
	vendor := api.VendorUnknown
	switch info.VendorID {
	case kcpuid.Intel:
		vendor = api.VendorIntel
	case kcpuid.AMD:
		vendor = api.VendorAMD
	case kcpuid.VendorUnknown:
		vendor = api.VendorUnknown
	default:
		vendor = api.VendorOther
	}
	model := uint32(info.Family)<<8 | uint32(info.Model)<<4 | uint32(info.Stepping)
	uarch := api.Uarch(model)
	if vendor == api.VendorUnknown {
		uarch = api.UarchUnknown
		model = 0
	}
	return vendor, uarch, model, info.BrandName
}
