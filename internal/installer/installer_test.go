package installer

import (
	"errors"
	"strings"
	"testing"

	"devsetup/internal/config"
	"devsetup/internal/platform"
)

// recordingRunner is a CommandRunner that records every invocation and fails
// any argv containing one of the failOn substrings.
type recordingRunner struct {
	calls  []string
	failOn []string
}

func (r *recordingRunner) run(name string, args ...string) ([]byte, error) {
	argv := strings.Join(append([]string{name}, args...), " ")
	r.calls = append(r.calls, argv)
	for _, f := range r.failOn {
		if strings.Contains(argv, f) {
			return []byte("simulated failure"), errors.New("exit status 1")
		}
	}
	return []byte("ok"), nil
}

// newTestInstaller builds an Installer with an empty temp-dir search path, a
// temp home, a recording runner, and a no-op fetcher.
func newTestInstaller(t *testing.T, manager platform.Manager) (*Installer, *recordingRunner) {
	t.Helper()
	runner := &recordingRunner{}
	inst := &Installer{
		Manager: manager,
		Env:     EnvFromDirs(t.TempDir()),
		Home:    t.TempDir(),
		Run:     runner.run,
		Fetch:   func(url, dest string) error { return nil },
	}
	return inst, runner
}

func TestEnsureInstalledIdempotence(t *testing.T) {
	inst, runner := newTestInstaller(t, platform.Apt)

	// First call: not present, manager invoked, install succeeds.
	if got := inst.EnsureInstalled(config.PackageSpec{Name: "jq"}); got != Installed {
		t.Fatalf("first EnsureInstalled(jq) = %s, want %s", got, Installed)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("first call ran %d commands, want 1", len(runner.calls))
	}

	// Simulate the install having landed the binary on the search path.
	writeFakeBinary(t, inst.Env.Dirs()[0], "jq")

	// Second call: already present, no manager invocation at all.
	if got := inst.EnsureInstalled(config.PackageSpec{Name: "jq"}); got != AlreadyPresent {
		t.Fatalf("second EnsureInstalled(jq) = %s, want %s", got, AlreadyPresent)
	}
	if len(runner.calls) != 1 {
		t.Errorf("second call invoked the manager: calls = %v", runner.calls)
	}
}

func TestEnsureInstalledNonFatalIsolation(t *testing.T) {
	inst, runner := newTestInstaller(t, platform.Dnf)
	runner.failOn = []string{"htop"}

	// A simulated manager failure for one package must not prevent the
	// subsequent packages from being attempted.
	outcomes := []Outcome{
		inst.EnsureInstalled(config.PackageSpec{Name: "git"}),
		inst.EnsureInstalled(config.PackageSpec{Name: "htop"}),
		inst.EnsureInstalled(config.PackageSpec{Name: "tmux"}),
	}

	want := []Outcome{Installed, FailedNonFatal, Installed}
	for i := range want {
		if outcomes[i] != want[i] {
			t.Errorf("outcome[%d] = %s, want %s", i, outcomes[i], want[i])
		}
	}
	if len(runner.calls) != 3 {
		t.Errorf("ran %d commands, want 3 (one per package): %v", len(runner.calls), runner.calls)
	}
}

func TestEnsureInstalledOverrideTranslation(t *testing.T) {
	inst, runner := newTestInstaller(t, platform.Apt)

	spec := config.PackageSpec{
		Name:      "fd",
		Overrides: map[string]string{"apt": "fd-find", "dnf": "fd-find"},
	}
	inst.EnsureInstalled(spec)

	if len(runner.calls) != 1 || !strings.Contains(runner.calls[0], "fd-find") {
		t.Errorf("apt install did not use the override name: %v", runner.calls)
	}
}

func TestEnsureInstalledElevationIsOpportunistic(t *testing.T) {
	// Without sudo on the search path the manager runs unprivileged.
	inst, runner := newTestInstaller(t, platform.Apt)
	inst.EnsureInstalled(config.PackageSpec{Name: "git"})
	if strings.HasPrefix(runner.calls[0], "sudo ") {
		t.Errorf("wrapped in sudo despite no elevation helper: %s", runner.calls[0])
	}

	// With sudo resolvable, the invocation is wrapped.
	inst2, runner2 := newTestInstaller(t, platform.Apt)
	writeFakeBinary(t, inst2.Env.Dirs()[0], "sudo")
	inst2.EnsureInstalled(config.PackageSpec{Name: "git"})
	if runner2.calls[0] != "sudo apt-get install -y git" {
		t.Errorf("unexpected elevated argv: %s", runner2.calls[0])
	}
}

func TestEnsureInstalledHomebrewNeverElevates(t *testing.T) {
	inst, runner := newTestInstaller(t, platform.Homebrew)
	writeFakeBinary(t, inst.Env.Dirs()[0], "sudo")

	inst.EnsureInstalled(config.PackageSpec{Name: "git"})
	if runner.calls[0] != "brew install git" {
		t.Errorf("homebrew argv = %s, want brew install git", runner.calls[0])
	}
}

func TestPacmanOnlyLinuxUsesPacmanFlags(t *testing.T) {
	// Kernel "Linux" with only a pacman binary present resolves to the Arch
	// branch, and every subsequent install uses pacman-specific flags.
	lookPath := func(name string) (string, error) {
		if name == "pacman" {
			return "/usr/bin/pacman", nil
		}
		return "", errors.New("not found")
	}
	plat, err := platform.Resolve("linux", lookPath)
	if err != nil {
		t.Fatalf("Resolve(linux, pacman-only) returned error: %v", err)
	}

	inst, runner := newTestInstaller(t, plat.Manager)
	inst.EnsureInstalled(config.PackageSpec{Name: "git"})
	inst.EnsureInstalled(config.PackageSpec{Name: "tmux"})

	for _, call := range runner.calls {
		if !strings.HasPrefix(call, "pacman -S --noconfirm --needed ") {
			t.Errorf("argv %q does not use the pacman install flags", call)
		}
	}
}

func TestEnsureManagerBootstrapsHomebrewOnDarwin(t *testing.T) {
	// Kernel "Darwin" with no manager pre-installed resolves to homebrew and
	// triggers a bootstrap install of the manager itself before packages.
	plat, err := platform.Resolve("darwin", func(string) (string, error) {
		return "", errors.New("not found")
	})
	if err != nil {
		t.Fatalf("Resolve(darwin) returned error: %v", err)
	}

	inst, runner := newTestInstaller(t, plat.Manager)

	// Redirect the Homebrew bin dirs at a temp dir and let the fake runner
	// "install" brew there when the bootstrap script is executed.
	brewDir := t.TempDir()
	origDirs := homebrewBinDirs
	homebrewBinDirs = []string{brewDir}
	defer func() { homebrewBinDirs = origDirs }()

	var fetched string
	inst.Fetch = func(url, dest string) error {
		fetched = url
		return nil
	}
	inst.Run = func(name string, args ...string) ([]byte, error) {
		runner.calls = append(runner.calls, strings.Join(append([]string{name}, args...), " "))
		writeFakeBinary(t, brewDir, "brew")
		return []byte("ok"), nil
	}

	if err := inst.EnsureManager(); err != nil {
		t.Fatalf("EnsureManager returned error: %v", err)
	}
	if fetched != homebrewInstallScript {
		t.Errorf("bootstrap fetched %q, want the Homebrew install script", fetched)
	}
	if len(runner.calls) != 1 {
		t.Fatalf("bootstrap ran %d commands, want 1: %v", len(runner.calls), runner.calls)
	}
	if _, err := inst.Env.LookPath("brew"); err != nil {
		t.Error("brew not resolvable after bootstrap extended the search path")
	}
}

func TestEnsureManagerSkipsBootstrapWhenPresent(t *testing.T) {
	inst, runner := newTestInstaller(t, platform.Homebrew)
	writeFakeBinary(t, inst.Env.Dirs()[0], "brew")

	if err := inst.EnsureManager(); err != nil {
		t.Fatalf("EnsureManager returned error: %v", err)
	}
	if len(runner.calls) != 0 {
		t.Errorf("EnsureManager ran commands despite brew being present: %v", runner.calls)
	}
}

func TestInstallArgsDispatchTable(t *testing.T) {
	tests := []struct {
		manager platform.Manager
		want    string
	}{
		{platform.Homebrew, "brew install jq"},
		{platform.Apt, "apt-get install -y jq"},
		{platform.Dnf, "dnf install -y jq"},
		{platform.Pacman, "pacman -S --noconfirm --needed jq"},
		{platform.Zypper, "zypper --non-interactive install jq"},
	}
	for _, tt := range tests {
		got := strings.Join(installArgs(tt.manager, "jq"), " ")
		if got != tt.want {
			t.Errorf("installArgs(%s) = %q, want %q", tt.manager, got, tt.want)
		}
	}
	if installArgs("nonsense", "jq") != nil {
		t.Error("installArgs accepted an unknown manager")
	}
}
