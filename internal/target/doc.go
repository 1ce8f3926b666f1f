// Package target resolves where a compile job's code will run: the
// accelerator device, the host CPU ISA, the LLVM target triple they combine
// into, and the build function that packages the result.
//
// Explicit --device and --host values are taken as given, which is how
// cross-compilation works: nothing is probed for them. Inferred values come
// from an Environment. LocalEnvironment inspects the machine the tool runs on;
// StaticEnvironment returns fixed answers and is what tests use.
//
// Devices with a fixed platform (webgpu, iphone, android) determine the
// triple on their own. For them an inferred host is the platform's ISA
// (arm64 for iphone, aarch64 for android, none for webgpu) and the local
// machine is not consulted.
//
// When the device is inferred, devices are probed in ProbeOrder and the first
// available one wins: cuda, rocm, metal, vulkan, opencl, then the CPU-only
// llvm target.
package target
