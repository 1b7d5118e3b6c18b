package installer

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"devsetup/internal/logger"
	"devsetup/internal/platform"
)

// homebrewInstallScript is the vendor-provided bootstrap script for Homebrew.
const homebrewInstallScript = "https://raw.githubusercontent.com/Homebrew/install/HEAD/install.sh"

// homebrewBinDirs are the directories Homebrew installs into: /opt/homebrew/bin
// on Apple silicon, /usr/local/bin on Intel. Overridden in tests.
var homebrewBinDirs = []string{"/opt/homebrew/bin", "/usr/local/bin"}

// managerBinary maps each manager to the binary probed on the search path.
func managerBinary(manager platform.Manager) string {
	switch manager {
	case platform.Homebrew:
		return "brew"
	case platform.Apt:
		return "apt-get"
	case platform.Dnf:
		return "dnf"
	case platform.Pacman:
		return "pacman"
	case platform.Zypper:
		return "zypper"
	}
	return ""
}

// EnsureManager verifies the resolved package manager is actually invocable
// before any package installs proceed. On macOS a missing brew triggers the
// vendor bootstrap install of Homebrew itself; on Linux the resolver only
// selects managers it found, so a miss here is a genuine error. A failure is
// fatal for the tools phase only — the caller reports it once and carries on
// with the remaining phases.
func (inst *Installer) EnsureManager() error {
	binary := managerBinary(inst.Manager)
	if binary == "" {
		return fmt.Errorf("unknown package manager %q", inst.Manager)
	}

	if _, err := inst.Env.LookPath(binary); err == nil {
		logger.Debug("[DEBUG] Manager binary %s already present\n", binary)
		return nil
	}

	if inst.Manager != platform.Homebrew {
		// The Linux resolver probed for this exact binary, so hitting this means
		// the environment changed under us or the Env was constructed oddly.
		return fmt.Errorf("manager binary %s vanished from search path", binary)
	}

	logger.Info("[INFO] Homebrew not found. Bootstrapping Homebrew...\n")

	script := filepath.Join(os.TempDir(), "homebrew-install.sh")
	if err := inst.Fetch(homebrewInstallScript, script); err != nil {
		return fmt.Errorf("failed to fetch Homebrew install script: %w", err)
	}

	// NONINTERACTIVE is honored by the vendor script; without a tty it would
	// otherwise wait on a confirmation that never comes.
	argv := []string{"/bin/bash", "-c", "NONINTERACTIVE=1 /bin/bash " + script}
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(argv, " "))
	output, err := inst.Run(argv[0], argv[1:]...)
	if err != nil {
		return fmt.Errorf("homebrew bootstrap failed: %w (output: %s)", err, output)
	}

	// Extend the run's search path with the Homebrew bin directories so brew
	// resolves regardless of which one the bootstrap used.
	for i := len(homebrewBinDirs) - 1; i >= 0; i-- {
		inst.Env = inst.Env.WithDir(homebrewBinDirs[i])
	}

	if _, err := inst.Env.LookPath(binary); err != nil {
		return fmt.Errorf("homebrew bootstrap completed but brew still not resolvable: %w", err)
	}

	logger.Info("[INFO] Homebrew installed successfully\n")
	return nil
}
