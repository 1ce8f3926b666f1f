package target

import (
	"context"
	"os"
	"os/exec"
	"runtime"
	"slices"

	"github.com/vk/mlcbuild/internal/ctxlog"
)

// Environment answers the questions inference asks about the local machine.
type Environment interface {
	// GOOS is the operating system, in runtime.GOOS spelling.
	GOOS() string
	// Machine is the hardware name as `uname -m` reports it.
	Machine() (string, error)
	// HasDevice reports whether code generated for d could run here.
	HasDevice(ctx context.Context, d Device) bool
}

// LocalEnvironment probes the machine the tool is running on. Probes only
// read: device nodes, well-known directories and executables on PATH.
type LocalEnvironment struct{}

// NewLocalEnvironment returns an Environment backed by the running machine.
func NewLocalEnvironment() *LocalEnvironment {
	return &LocalEnvironment{}
}

func (LocalEnvironment) GOOS() string {
	return runtime.GOOS
}

func (LocalEnvironment) Machine() (string, error) {
	return machine()
}

func (e LocalEnvironment) HasDevice(ctx context.Context, d Device) bool {
	logger := ctxlog.FromContext(ctx)

	var found bool
	var evidence string
	switch d {
	case CUDA:
		found, evidence = anyExists("/dev/nvidiactl", "/dev/nvidia0")
		if !found {
			found, evidence = onPath("nvidia-smi")
		}
	case ROCm:
		found, evidence = anyExists("/dev/kfd", "/opt/rocm")
	case Metal:
		found, evidence = e.GOOS() == "darwin", "darwin"
	case Vulkan:
		found, evidence = anyExists("/usr/share/vulkan/icd.d", "/etc/vulkan/icd.d")
		if !found {
			found, evidence = onPath("vulkaninfo")
		}
	case OpenCL:
		found, evidence = anyExists("/etc/OpenCL/vendors")
	case LLVM:
		found, evidence = onPath("clang", "gcc", "cc")
	default:
		// webgpu, iphone and android are cross-compilation targets only.
		return false
	}

	logger.Debug("Probed device.", "device", d, "available", found, "evidence", evidence)
	return found
}

func anyExists(paths ...string) (bool, string) {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return true, p
		}
	}
	return false, ""
}

func onPath(names ...string) (bool, string) {
	for _, n := range names {
		if p, err := exec.LookPath(n); err == nil {
			return true, p
		}
	}
	return false, ""
}

// StaticEnvironment is an Environment with fixed answers.
type StaticEnvironment struct {
	OS      string
	Arch    string
	ArchErr error
	Devices []Device
}

func (s StaticEnvironment) GOOS() string {
	return s.OS
}

func (s StaticEnvironment) Machine() (string, error) {
	return s.Arch, s.ArchErr
}

func (s StaticEnvironment) HasDevice(_ context.Context, d Device) bool {
	return slices.Contains(s.Devices, d)
}
