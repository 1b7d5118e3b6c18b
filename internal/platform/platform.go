package platform

import (
	"errors"
	"fmt"

	"devsetup/internal/logger"
)

// Manager identifies the OS package manager selected for the run.
// Exactly one Manager is resolved per run and the selection is immutable afterward.
type Manager string

const (
	Homebrew Manager = "homebrew" // macOS
	Apt      Manager = "apt"      // Debian family
	Dnf      Manager = "dnf"      // Fedora family
	Pacman   Manager = "pacman"   // Arch
	Zypper   Manager = "zypper"   // openSUSE
)

// ErrUnsupportedPlatform is returned when the kernel name is not recognized, or a
// Linux host has none of the known package managers on its search path.
// It is the only fatal error class in the whole tool.
var ErrUnsupportedPlatform = errors.New("unsupported platform")

// Platform describes the resolved host: the OS identifier, a cosmetic distro label
// used only in log output, and the selected package manager.
type Platform struct {
	OS      string  // "darwin" or "linux"
	Distro  string  // Cosmetic label, e.g. "Debian/Ubuntu"; never used for dispatch
	Manager Manager // The single package manager selected for this run
}

// linuxProbes lists the Linux manager binaries in fixed priority order:
// Debian family first, then Fedora family, then Arch, then openSUSE.
// The first binary found on the search path wins.
var linuxProbes = []struct {
	binary  string
	manager Manager
	distro  string
}{
	{"apt-get", Apt, "Debian/Ubuntu"},
	{"dnf", Dnf, "Fedora/RHEL"},
	{"pacman", Pacman, "Arch"},
	{"zypper", Zypper, "openSUSE"},
}

// Resolve inspects the kernel name and the available manager binaries and returns
// the single Platform for this run. It is pure and side-effect free: the probe is
// injected as lookPath (production passes exec.LookPath) and nothing is installed
// or modified here — on macOS, Homebrew is selected even when brew is not yet
// present, and the bootstrap happens later in the installer.
func Resolve(goos string, lookPath func(string) (string, error)) (*Platform, error) {
	logger.Debug("[DEBUG] Resolving platform for kernel %q\n", goos)

	switch goos {
	case "darwin":
		// macOS always resolves to Homebrew; no probing needed.
		return &Platform{OS: goos, Distro: "macOS", Manager: Homebrew}, nil

	case "linux":
		for _, probe := range linuxProbes {
			if _, err := lookPath(probe.binary); err == nil {
				logger.Debug("[DEBUG] Found manager binary %q, selecting %s\n", probe.binary, probe.manager)
				return &Platform{OS: goos, Distro: probe.distro, Manager: probe.manager}, nil
			}
		}
		// A Linux host without any known manager never silently defaults.
		return nil, fmt.Errorf("%w: linux host with no known package manager (looked for apt-get, dnf, pacman, zypper)", ErrUnsupportedPlatform)

	default:
		return nil, fmt.Errorf("%w: unrecognized kernel %q", ErrUnsupportedPlatform, goos)
	}
}

// String returns a human-readable description of the resolved platform for log output.
func (p *Platform) String() string {
	return fmt.Sprintf("%s (%s, package manager: %s)", p.Distro, p.OS, p.Manager)
}
