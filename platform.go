package opencli

// Platform declares an operating system the application supports, optionally
// narrowed to specific architectures.
type Platform struct {
	Name          PlatformName   `json:"name" yaml:"name" validate:"required"`
	Architectures []Architecture `json:"architectures,omitempty" yaml:"architectures,omitempty"`
}

// NewPlatform creates a platform entry for the given operating system.
func NewPlatform(name PlatformName) Platform {
	return Platform{Name: name}
}

// WithArchitectures narrows the platform to the given architectures.
func (p Platform) WithArchitectures(archs ...Architecture) Platform {
	p.Architectures = archs
	return p
}

// PlatformName is an operating system identifier.
type PlatformName string

const (
	PlatformWindows   PlatformName = "windows"
	PlatformMacos     PlatformName = "macos"
	PlatformDarwin    PlatformName = "darwin"
	PlatformIos       PlatformName = "ios"
	PlatformLinux     PlatformName = "linux"
	PlatformAndroid   PlatformName = "android"
	PlatformFreebsd   PlatformName = "freebsd"
	PlatformDragonfly PlatformName = "dragonfly"
	PlatformOpenbsd   PlatformName = "openbsd"
	PlatformNetbsd    PlatformName = "netbsd"
	PlatformAix       PlatformName = "aix"
	PlatformSolaris   PlatformName = "solaris"
)

// Architecture is a CPU architecture identifier. Both Go-style and
// Rust-style names are accepted, so amd64 and x86_64 coexist.
type Architecture string

const (
	ArchAmd64       Architecture = "amd64"
	ArchX8664       Architecture = "x86_64"
	Arch386         Architecture = "386"
	ArchX86         Architecture = "x86"
	ArchArm64       Architecture = "arm64"
	ArchAarch64     Architecture = "aarch64"
	ArchArm         Architecture = "arm"
	ArchArmv5te     Architecture = "armv5te"
	ArchArmv7       Architecture = "armv7"
	ArchThumbv7     Architecture = "thumbv7"
	ArchPpc64       Architecture = "ppc64"
	ArchPpc64le     Architecture = "ppc64le"
	ArchPowerpc     Architecture = "powerpc"
	ArchPowerpc64   Architecture = "powerpc64"
	ArchPowerpc64le Architecture = "powerpc64le"
	ArchMips        Architecture = "mips"
	ArchMipsel      Architecture = "mipsel"
	ArchMips64      Architecture = "mips64"
	ArchMips64el    Architecture = "mips64el"
	ArchS390x       Architecture = "s390x"
	ArchRiscv64     Architecture = "riscv64"
	ArchRiscv32     Architecture = "riscv32"
	ArchWasm32      Architecture = "wasm32"
	ArchWasm64      Architecture = "wasm64"
	ArchSparc64     Architecture = "sparc64"
	ArchHexagon     Architecture = "hexagon"
)
