package platform

import (
	"errors"
	"testing"
)

// fakeLookPath returns a lookPath func that only resolves the given binaries.
func fakeLookPath(present ...string) func(string) (string, error) {
	set := make(map[string]bool, len(present))
	for _, p := range present {
		set[p] = true
	}
	return func(name string) (string, error) {
		if set[name] {
			return "/usr/bin/" + name, nil
		}
		return "", errors.New("not found")
	}
}

func TestResolveDarwin(t *testing.T) {
	// Darwin resolves to Homebrew even with no manager binary present at all;
	// the brew bootstrap is the installer's job, not the resolver's.
	p, err := Resolve("darwin", fakeLookPath())
	if err != nil {
		t.Fatalf("Resolve(darwin) returned error: %v", err)
	}
	if p.Manager != Homebrew {
		t.Errorf("Resolve(darwin) manager = %s, want %s", p.Manager, Homebrew)
	}
	if p.OS != "darwin" {
		t.Errorf("Resolve(darwin) OS = %s, want darwin", p.OS)
	}
}

func TestResolveLinuxPriorityOrder(t *testing.T) {
	tests := []struct {
		name    string
		present []string
		want    Manager
	}{
		{"apt only", []string{"apt-get"}, Apt},
		{"dnf only", []string{"dnf"}, Dnf},
		{"pacman only", []string{"pacman"}, Pacman},
		{"zypper only", []string{"zypper"}, Zypper},
		// When several managers coexist, the fixed priority order decides.
		{"apt beats dnf", []string{"dnf", "apt-get"}, Apt},
		{"dnf beats pacman", []string{"pacman", "dnf"}, Dnf},
		{"pacman beats zypper", []string{"zypper", "pacman"}, Pacman},
		{"all present picks apt", []string{"zypper", "pacman", "dnf", "apt-get"}, Apt},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Resolve("linux", fakeLookPath(tt.present...))
			if err != nil {
				t.Fatalf("Resolve(linux) returned error: %v", err)
			}
			if p.Manager != tt.want {
				t.Errorf("Resolve(linux) manager = %s, want %s", p.Manager, tt.want)
			}
		})
	}
}

func TestResolveLinuxNoManager(t *testing.T) {
	_, err := Resolve("linux", fakeLookPath())
	if !errors.Is(err, ErrUnsupportedPlatform) {
		t.Fatalf("Resolve(linux, none) error = %v, want ErrUnsupportedPlatform", err)
	}
}

func TestResolveUnknownKernels(t *testing.T) {
	// Any kernel other than darwin/linux must fail, never silently default,
	// even when manager binaries happen to be resolvable.
	for _, goos := range []string{"windows", "freebsd", "openbsd", "plan9", "js", ""} {
		_, err := Resolve(goos, fakeLookPath("apt-get", "pacman"))
		if !errors.Is(err, ErrUnsupportedPlatform) {
			t.Errorf("Resolve(%q) error = %v, want ErrUnsupportedPlatform", goos, err)
		}
	}
}
