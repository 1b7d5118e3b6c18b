package installer

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"devsetup/internal/config"
	"devsetup/internal/logger"
	"devsetup/internal/platform"
)

// Outcome classifies the result of one install attempt. Failures are always
// non-fatal: the caller records the outcome and moves on to the next item.
type Outcome string

const (
	AlreadyPresent Outcome = "already-present" // Binary was resolvable; manager never invoked
	Installed      Outcome = "installed"       // Install command (or fallback tier) succeeded
	FailedNonFatal Outcome = "failed-non-fatal" // Every tier failed; reported as a warning only
)

// CommandRunner runs an argv and returns its combined output. Production uses
// os/exec; tests substitute fakes to simulate manager failures.
type CommandRunner func(name string, args ...string) ([]byte, error)

// Fetcher downloads the content at url into the file at dest.
type Fetcher func(url, dest string) error

// Installer performs idempotent installs against the single package manager
// resolved for this run. The Env field holds the explicit search-path state;
// methods that extend it (creating the user-local bin dir) update it in place
// so later presence checks within the run observe the extension.
type Installer struct {
	Manager platform.Manager
	Env     Env
	Home    string        // User home directory; user-local bin lives under it
	Run     CommandRunner // Subprocess runner, injectable for tests
	Fetch   Fetcher       // HTTPS fetcher, injectable for tests
}

// New builds an Installer for the resolved manager with the real process
// environment, subprocess runner, and HTTP fetcher.
func New(manager platform.Manager) *Installer {
	home, _ := os.UserHomeDir()
	return &Installer{
		Manager: manager,
		Env:     NewEnv(),
		Home:    home,
		Run:     execRunner,
		Fetch:   downloadFile,
	}
}

// execRunner is the production CommandRunner backed by os/exec.
func execRunner(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).CombinedOutput()
}

// installArgs is the manager dispatch table: it translates a package name into
// the manager-specific install argv.
func installArgs(manager platform.Manager, pkg string) []string {
	switch manager {
	case platform.Homebrew:
		return []string{"brew", "install", pkg}
	case platform.Apt:
		return []string{"apt-get", "install", "-y", pkg}
	case platform.Dnf:
		return []string{"dnf", "install", "-y", pkg}
	case platform.Pacman:
		return []string{"pacman", "-S", "--noconfirm", "--needed", pkg}
	case platform.Zypper:
		return []string{"zypper", "--non-interactive", "install", pkg}
	}
	return nil
}

// needsElevation reports whether the manager requires root to install packages.
// Homebrew refuses to run under sudo; all the Linux managers expect it.
func needsElevation(manager platform.Manager) bool {
	return manager != platform.Homebrew
}

// EnsureInstalled makes one idempotent install attempt for the given package:
//  1. If a binary with the logical name is already resolvable on the Env's
//     search path, return AlreadyPresent without invoking the manager.
//  2. Otherwise dispatch the manager-specific install command, translating the
//     logical name through any per-manager override. When the manager needs
//     root and an elevation helper is resolvable, the invocation is wrapped in
//     it; otherwise it runs unprivileged and the manager itself may fail.
//  3. A non-zero exit is swallowed and reported as FailedNonFatal with a
//     suggested manual remedy, so the caller continues with the next package.
func (inst *Installer) EnsureInstalled(spec config.PackageSpec) Outcome {
	if path, err := inst.Env.LookPath(spec.Name); err == nil {
		logger.Info("[INFO] %s already present at %s. Skipping.\n", spec.Name, path)
		return AlreadyPresent
	}

	// Translate the logical name to the manager-specific package name.
	pkg := spec.Name
	if override, ok := spec.Overrides[string(inst.Manager)]; ok && override != "" {
		pkg = override
	}

	argv := installArgs(inst.Manager, pkg)
	if argv == nil {
		logger.Error("[ERROR] No install command known for manager %s\n", inst.Manager)
		return FailedNonFatal
	}

	// Opportunistic privilege elevation: wrap in sudo only when it is actually
	// resolvable on the search path.
	if needsElevation(inst.Manager) {
		if _, err := inst.Env.LookPath("sudo"); err == nil {
			argv = append([]string{"sudo"}, argv...)
		} else {
			logger.Debug("[DEBUG] No elevation helper found, running %s unprivileged\n", argv[0])
		}
	}

	logger.Info("[INFO] Installing %s via %s...\n", spec.Name, inst.Manager)
	logger.Debug("[DEBUG] Running command: %s\n", strings.Join(argv, " "))

	output, err := inst.Run(argv[0], argv[1:]...)
	if err != nil {
		logger.Warn("[WARN] Failed to install %s: %v\nOutput: %s\n", spec.Name, err, output)
		logger.Warn("[WARN] Continuing. To install manually, run: %s\n", strings.Join(argv, " "))
		return FailedNonFatal
	}

	logger.Info("[INFO] Installed %s\n", spec.Name)
	return Installed
}

// ensureLocalBin creates the user-local bin directory on demand and prepends it
// to the Env's search path, so binaries installed there by fallback tiers are
// visible to every later presence check in the same run.
func (inst *Installer) ensureLocalBin() (string, error) {
	dir := filepath.Join(inst.Home, ".local", "bin")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	// Avoid duplicate prepends when several fallback tools run in one pass.
	for _, d := range inst.Env.Dirs() {
		if d == dir {
			return dir, nil
		}
	}
	inst.Env = inst.Env.WithDir(dir)
	logger.Debug("[DEBUG] Added %s to search path for this run\n", dir)
	return dir, nil
}
