package target

import (
	"strings"

	"github.com/vk/mlcbuild/internal/registry"
)

// Device is an accelerator kind code can be generated for.
type Device string

const (
	CUDA    Device = "cuda"
	ROCm    Device = "rocm"
	Metal   Device = "metal"
	Vulkan  Device = "vulkan"
	OpenCL  Device = "opencl"
	LLVM    Device = "llvm"
	WebGPU  Device = "webgpu"
	IPhone  Device = "iphone"
	Android Device = "android"
)

// ProbeOrder is the order devices are tried in when the device is inferred.
// GPU backends come before the CPU-only fallback.
var ProbeOrder = []Device{CUDA, ROCm, Metal, Vulkan, OpenCL, LLVM}

type deviceInfo struct {
	// fixedTriple is set for devices that always target the same platform
	// regardless of the host the tool runs on. fixedHost is the ISA that
	// platform implies; it is empty for web targets.
	fixedTriple string
	fixedOS     string
	fixedHost   Host
}

var devices = map[Device]deviceInfo{
	CUDA:    {},
	ROCm:    {},
	Metal:   {},
	Vulkan:  {},
	OpenCL:  {},
	LLVM:    {},
	WebGPU:  {fixedTriple: "wasm32-unknown-unknown-wasm", fixedOS: "web"},
	IPhone:  {fixedTriple: "arm64-apple-ios", fixedOS: "ios", fixedHost: HostARM64},
	Android: {fixedTriple: "aarch64-linux-android", fixedOS: "android", fixedHost: HostAArch64},
}

// KnownDevices returns every device name in a stable order: the probe order
// first, then the devices that are only ever selected explicitly.
func KnownDevices() []Device {
	return append(append([]Device{}, ProbeOrder...), WebGPU, IPhone, Android)
}

// Host is a host CPU ISA, spelled the way --host accepts it.
type Host string

const (
	HostARM     Host = "arm"
	HostARM64   Host = "arm64"
	HostAArch64 Host = "aarch64"
	HostX8664   Host = "x86-64"
)

// SupportedHosts is the closed set of --host values.
var SupportedHosts = []Host{HostARM, HostARM64, HostAArch64, HostX8664}

func supportedHostList() string {
	parts := make([]string, len(SupportedHosts))
	for i, h := range SupportedHosts {
		parts[i] = string(h)
	}
	return strings.Join(parts, ", ")
}

// Target is a fully resolved compilation destination.
type Target struct {
	Device Device `toml:"device" yaml:"device" json:"device" validate:"required"`
	// Host is empty for web targets, which have no host ISA.
	Host Host `toml:"host,omitempty" yaml:"host,omitempty" json:"host,omitempty"`
	// OS is the operating system of the generated code, e.g. "linux" or "ios".
	OS      string           `toml:"os" yaml:"os" json:"os" validate:"required"`
	Triple  string           `toml:"triple" yaml:"triple" json:"triple" validate:"required"`
	Builder registry.Builder `toml:"builder" yaml:"builder" json:"builder"`
}
