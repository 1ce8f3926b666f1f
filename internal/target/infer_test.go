package target

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vk/mlcbuild/internal/auto"
	"github.com/vk/mlcbuild/internal/diag"
	"github.com/vk/mlcbuild/internal/registry"
)

func TestInfer(t *testing.T) {
	reg := registry.New()
	linuxGPU := StaticEnvironment{OS: "linux", Arch: "x86_64", Devices: []Device{Vulkan, CUDA, LLVM}}

	testCases := []struct {
		name        string
		device      auto.Hint
		host        auto.Hint
		env         StaticEnvironment
		wantDevice  Device
		wantHost    Host
		wantTriple  string
		wantBuilder string
		wantKind    diag.Kind
	}{
		{
			name:        "probe prefers cuda over vulkan",
			device:      auto.Inferred(),
			host:        auto.Inferred(),
			env:         linuxGPU,
			wantDevice:  CUDA,
			wantHost:    HostX8664,
			wantTriple:  "x86_64-unknown-linux-gnu",
			wantBuilder: "build_default",
		},
		{
			name:        "cpu fallback",
			device:      auto.Inferred(),
			host:        auto.Inferred(),
			env:         StaticEnvironment{OS: "linux", Arch: "aarch64", Devices: []Device{LLVM}},
			wantDevice:  LLVM,
			wantHost:    HostAArch64,
			wantTriple:  "aarch64-unknown-linux-gnu",
			wantBuilder: "build_default",
		},
		{
			name:        "apple silicon",
			device:      auto.Inferred(),
			host:        auto.Inferred(),
			env:         StaticEnvironment{OS: "darwin", Arch: "arm64", Devices: []Device{Metal, LLVM}},
			wantDevice:  Metal,
			wantHost:    HostARM64,
			wantTriple:  "arm64-apple-darwin",
			wantBuilder: "build_default",
		},
		{
			name:        "explicit device is not probed",
			device:      auto.Explicit("rocm"),
			host:        auto.Explicit("x86-64"),
			env:         StaticEnvironment{OS: "linux"},
			wantDevice:  ROCm,
			wantHost:    HostX8664,
			wantTriple:  "x86_64-unknown-linux-gnu",
			wantBuilder: "build_default",
		},
		{
			name:        "arm host on linux",
			device:      auto.Explicit("opencl"),
			host:        auto.Explicit("arm"),
			env:         StaticEnvironment{OS: "linux"},
			wantDevice:  OpenCL,
			wantHost:    HostARM,
			wantTriple:  "armv7-unknown-linux-gnueabihf",
			wantBuilder: "build_default",
		},
		{
			name:        "iphone fixes the platform",
			device:      auto.Explicit("iphone"),
			host:        auto.Explicit("x86-64"),
			env:         StaticEnvironment{OS: "darwin"},
			wantDevice:  IPhone,
			wantHost:    HostX8664,
			wantTriple:  "arm64-apple-ios",
			wantBuilder: "build_iphone",
		},
		{
			name:        "android host comes from the platform",
			device:      auto.Explicit("android"),
			host:        auto.Inferred(),
			env:         StaticEnvironment{OS: "linux", Arch: "x86_64"},
			wantDevice:  Android,
			wantHost:    HostAArch64,
			wantTriple:  "aarch64-linux-android",
			wantBuilder: "build_android",
		},
		{
			name:        "webgpu has no host",
			device:      auto.Explicit("webgpu"),
			host:        auto.Inferred(),
			env:         StaticEnvironment{OS: "linux", Arch: "amd64"},
			wantDevice:  WebGPU,
			wantTriple:  "wasm32-unknown-unknown-wasm",
			wantBuilder: "build_webgpu",
		},
		{
			name:        "webgpu on an unrecognized machine",
			device:      auto.Explicit("webgpu"),
			host:        auto.Inferred(),
			env:         StaticEnvironment{OS: "linux", Arch: "riscv64"},
			wantDevice:  WebGPU,
			wantTriple:  "wasm32-unknown-unknown-wasm",
			wantBuilder: "build_webgpu",
		},
		{
			name:        "iphone does not probe the machine",
			device:      auto.Explicit("iphone"),
			host:        auto.Inferred(),
			env:         StaticEnvironment{OS: "darwin", ArchErr: errors.New("uname: permission denied")},
			wantDevice:  IPhone,
			wantHost:    HostARM64,
			wantTriple:  "arm64-apple-ios",
			wantBuilder: "build_iphone",
		},
		{
			name:     "unsupported host",
			device:   auto.Explicit("cuda"),
			host:     auto.Explicit("mips"),
			env:      linuxGPU,
			wantKind: diag.UnsupportedHost,
		},
		{
			name:     "unsupported host is reported before probing fails",
			device:   auto.Inferred(),
			host:     auto.Explicit("mips"),
			env:      StaticEnvironment{OS: "linux"},
			wantKind: diag.UnsupportedHost,
		},
		{
			name:     "nothing to probe",
			device:   auto.Inferred(),
			host:     auto.Inferred(),
			env:      StaticEnvironment{OS: "linux", Arch: "x86_64"},
			wantKind: diag.NoTargetAvailable,
		},
		{
			name:     "unknown explicit device",
			device:   auto.Explicit("tpu"),
			host:     auto.Inferred(),
			env:      linuxGPU,
			wantKind: diag.NoTargetAvailable,
		},
		{
			name:     "unrecognized machine",
			device:   auto.Explicit("llvm"),
			host:     auto.Inferred(),
			env:      StaticEnvironment{OS: "linux", Arch: "riscv64"},
			wantKind: diag.AmbiguousHostDetection,
		},
		{
			name:     "machine probe fails",
			device:   auto.Explicit("llvm"),
			host:     auto.Inferred(),
			env:      StaticEnvironment{OS: "linux", ArchErr: errors.New("uname: permission denied")},
			wantKind: diag.AmbiguousHostDetection,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Infer(context.Background(), tc.device, tc.host, tc.env, reg)
			if tc.wantKind != 0 {
				require.Error(t, err)
				assert.True(t, diag.IsKind(err, tc.wantKind), "got %v", err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.wantDevice, got.Device)
			assert.Equal(t, tc.wantHost, got.Host)
			assert.Equal(t, tc.wantTriple, got.Triple)
			assert.Equal(t, tc.wantBuilder, got.Builder.Name)
		})
	}
}

func TestInfer_InferredHostIsStable(t *testing.T) {
	env := StaticEnvironment{OS: "linux", Arch: "aarch64", Devices: []Device{LLVM}}
	first, err := Infer(context.Background(), auto.Inferred(), auto.Inferred(), env, registry.New())
	require.NoError(t, err)

	for i := 0; i < 20; i++ {
		again, err := Infer(context.Background(), auto.Inferred(), auto.Inferred(), env, registry.New())
		require.NoError(t, err)
		require.Equal(t, first.Host, again.Host)
		require.Equal(t, first.Triple, again.Triple)
	}
}

func TestInfer_ExplicitValuesRoundTrip(t *testing.T) {
	env := StaticEnvironment{OS: "linux"}
	for _, d := range KnownDevices() {
		for _, h := range SupportedHosts {
			got, err := Infer(context.Background(), auto.Explicit(string(d)), auto.Explicit(string(h)), env, registry.New())
			require.NoError(t, err, "device %s host %s", d, h)
			assert.Equal(t, d, got.Device)
			assert.Equal(t, h, got.Host)
		}
	}
}

func TestInfer_UnsupportedHostMessage(t *testing.T) {
	_, err := Infer(context.Background(), auto.Explicit("cuda"), auto.Explicit("mips"), StaticEnvironment{OS: "linux"}, registry.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), `--host "mips"`)
	assert.Contains(t, err.Error(), "arm, arm64, aarch64, x86-64")
}

func TestNormalizeMachine(t *testing.T) {
	testCases := map[string]Host{
		"x86_64":  HostX8664,
		"amd64":   HostX8664,
		"aarch64": HostAArch64,
		"arm64":   HostARM64,
		"armv7l":  HostARM,
	}
	for in, want := range testCases {
		got, ok := NormalizeMachine(in)
		require.True(t, ok, in)
		assert.Equal(t, want, got)
	}

	_, ok := NormalizeMachine("s390x")
	assert.False(t, ok)
}

func TestLocalEnvironment_ReportsAMachine(t *testing.T) {
	env := NewLocalEnvironment()
	m, err := env.Machine()
	require.NoError(t, err)
	assert.NotEmpty(t, m)
	assert.NotEmpty(t, env.GOOS())
	assert.False(t, env.HasDevice(context.Background(), WebGPU), "webgpu is never probed")
}
