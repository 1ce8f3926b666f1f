package target

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/vk/mlcbuild/internal/auto"
	"github.com/vk/mlcbuild/internal/ctxlog"
	"github.com/vk/mlcbuild/internal/diag"
	"github.com/vk/mlcbuild/internal/registry"
)

// Flag names resolved by this package.
const (
	DeviceFlag = "device"
	HostFlag   = "host"
)

// Infer resolves the device and host hints into a Target. The explicit host
// is validated first since it needs no probing; then the device is resolved,
// then an inferred host is detected. Devices with a fixed platform never
// probe the machine for an inferred host.
func Infer(ctx context.Context, device, host auto.Hint, env Environment, reg *registry.Registry) (*Target, error) {
	logger := ctxlog.FromContext(ctx)

	if v, ok := host.Value(); ok && !slices.Contains(SupportedHosts, Host(v)) {
		return nil, diag.New(diag.UnsupportedHost, diag.StageTarget, HostFlag, v,
			"expected one of "+supportedHostList())
	}

	dev, err := resolveDevice(ctx, device, env)
	if err != nil {
		return nil, err
	}

	var h Host
	if info := devices[dev]; info.fixedTriple != "" && host.IsInferred() {
		h = info.fixedHost
		logger.Debug("Host ISA taken from the device platform; machine not probed.", "device", dev, "host", h)
	} else if h, err = resolveHost(ctx, host, env); err != nil {
		return nil, err
	}

	goos := env.GOOS()
	triple, targetOS := composeTriple(dev, h, goos)
	if info := devices[dev]; info.fixedTriple != "" && !host.IsInferred() {
		logger.Info("Device determines the target platform; host ISA does not affect the triple.", "device", dev, "host", h, "triple", triple)
	}

	builder, ok := reg.Builder(triple)
	if !ok {
		return nil, fmt.Errorf("no build function registered for target triple %s", triple)
	}

	t := &Target{
		Device:  dev,
		Host:    h,
		OS:      targetOS,
		Triple:  triple,
		Builder: builder,
	}
	logger.Info("Compilation target resolved.", "device", t.Device, "host", t.Host, "triple", t.Triple, "build_func", t.Builder.Name)
	return t, nil
}

func resolveDevice(ctx context.Context, hint auto.Hint, env Environment) (Device, error) {
	logger := ctxlog.FromContext(ctx)

	if v, ok := hint.Value(); ok {
		d := Device(v)
		if _, known := devices[d]; !known {
			names := make([]string, 0, len(devices))
			for _, k := range KnownDevices() {
				names = append(names, string(k))
			}
			return "", diag.New(diag.NoTargetAvailable, diag.StageTarget, DeviceFlag, v,
				"unknown device; expected one of "+strings.Join(names, ", "))
		}
		logger.Debug("Using explicit device.", "device", d)
		return d, nil
	}

	for _, d := range ProbeOrder {
		if env.HasDevice(ctx, d) {
			logger.Info("Device detected.", "device", d)
			return d, nil
		}
	}

	probed := make([]string, len(ProbeOrder))
	for i, d := range ProbeOrder {
		probed[i] = string(d)
	}
	return "", diag.New(diag.NoTargetAvailable, diag.StageTarget, DeviceFlag, hint.String(),
		fmt.Sprintf("probed %s and found none usable; pass --device explicitly", strings.Join(probed, ", ")))
}

func resolveHost(ctx context.Context, hint auto.Hint, env Environment) (Host, error) {
	if v, ok := hint.Value(); ok {
		return Host(v), nil
	}

	m, err := env.Machine()
	if err != nil {
		return "", diag.Wrap(err, diag.AmbiguousHostDetection, diag.StageTarget, HostFlag, hint.String())
	}
	h, ok := NormalizeMachine(m)
	if !ok {
		return "", diag.New(diag.AmbiguousHostDetection, diag.StageTarget, HostFlag, hint.String(),
			fmt.Sprintf("local machine reports %q, which is none of %s; pass --host explicitly", m, supportedHostList()))
	}
	ctxlog.FromContext(ctx).Debug("Host ISA detected.", "machine", m, "host", h)
	return h, nil
}

// NormalizeMachine maps a `uname -m` or GOARCH spelling to a supported host.
func NormalizeMachine(m string) (Host, bool) {
	switch strings.ToLower(strings.TrimSpace(m)) {
	case "x86_64", "amd64", "x86-64", "x64":
		return HostX8664, true
	case "aarch64":
		return HostAArch64, true
	case "arm64":
		return HostARM64, true
	case "arm", "armv6l", "armv7", "armv7l", "armv8l":
		return HostARM, true
	}
	return "", false
}

// composeTriple combines a device and host into an LLVM target triple and
// the OS of the generated code.
func composeTriple(d Device, h Host, goos string) (string, string) {
	if info := devices[d]; info.fixedTriple != "" {
		return info.fixedTriple, info.fixedOS
	}

	var isa string
	switch h {
	case HostX8664:
		isa = "x86_64"
	case HostAArch64:
		isa = "aarch64"
	case HostARM64:
		isa = "aarch64"
		if goos == "darwin" {
			isa = "arm64"
		}
	case HostARM:
		isa = "armv7"
	}

	switch goos {
	case "linux":
		if h == HostARM {
			return isa + "-unknown-linux-gnueabihf", goos
		}
		return isa + "-unknown-linux-gnu", goos
	case "darwin":
		return isa + "-apple-darwin", goos
	case "windows":
		return isa + "-pc-windows-msvc", goos
	default:
		return isa + "-unknown-" + goos, goos
	}
}
