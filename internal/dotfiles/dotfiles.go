package dotfiles

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"devsetup/internal/config"
	"devsetup/internal/logger"
	"devsetup/internal/prompt"
)

// The bundled dotfiles are compiled into the binary so a run from any working
// directory installs the same files.
//
//go:embed assets/zshrc assets/starship.toml
var assets embed.FS

// Syncer copies the bundled dotfiles into the user's environment. Home and
// ConfigRoot are explicit so tests can point them at temp directories; Prompt
// carries the confirmation interaction; Now is injectable for deterministic
// backup names.
type Syncer struct {
	Home       string           // Target home directory for the shell profile
	ConfigRoot string           // Per-user config directory, normally ~/.config
	AssumeYes  bool             // Skip confirmations affirmatively (--yes)
	Prompt     *prompt.Prompter // Confirmation prompt
	Now        func() time.Time
}

// New builds a Syncer against the real home directory, standard streams, and
// wall clock.
func New(assumeYes bool) (*Syncer, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("cannot determine home directory: %w", err)
	}
	return &Syncer{
		Home:       home,
		ConfigRoot: filepath.Join(home, ".config"),
		AssumeYes:  assumeYes,
		Prompt:     prompt.New(os.Stdin, os.Stdout),
		Now:        time.Now,
	}, nil
}

// sourceContent returns the dotfile content to install: the file at path when
// one is configured, otherwise the embedded asset.
func sourceContent(path, asset string) ([]byte, error) {
	if path != "" {
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("cannot read dotfile source %s: %w", path, err)
		}
		return content, nil
	}
	return assets.ReadFile("assets/" + asset)
}

// SyncProfile copies the shell profile into the home directory.
// An existing, differing profile is only replaced after a confirmation, and
// the previous version is preserved under a timestamped backup name first.
// Declining the confirmation leaves the original byte-for-byte unchanged.
func (s *Syncer) SyncProfile(d config.Dotfiles) error {
	content, err := sourceContent(d.ProfileSource, "zshrc")
	if err != nil {
		return err
	}

	target := filepath.Join(s.Home, d.Profile)

	existing, err := os.ReadFile(target)
	switch {
	case err == nil:
		if bytes.Equal(existing, content) {
			logger.Info("[INFO] %s already up to date. Skipping.\n", target)
			return nil
		}

		if !s.AssumeYes && !s.Prompt.Confirm(fmt.Sprintf("Overwrite existing %s?", target)) {
			logger.Info("[INFO] Keeping existing %s\n", target)
			return nil
		}

		backup := target + ".bak." + s.Now().Format("20060102-150405")
		if err := os.Rename(target, backup); err != nil {
			return fmt.Errorf("cannot back up %s: %w", target, err)
		}
		logger.Info("[INFO] Backed up previous profile to %s\n", backup)

	case errors.Is(err, fs.ErrNotExist):
		// Fresh install, nothing to back up.

	default:
		// The target exists but cannot be read. Overwriting here would bypass
		// the confirm-and-backup guarantee, so surface the error instead.
		return fmt.Errorf("cannot read existing profile %s: %w", target, err)
	}

	if err := os.WriteFile(target, content, 0644); err != nil {
		return fmt.Errorf("cannot write profile %s: %w", target, err)
	}
	logger.Info("[INFO] Installed profile %s\n", target)
	return nil
}

// SyncTheme copies the prompt theme into the per-user config directory.
// The theme file is owned by devsetup, so an existing copy is overwritten
// without asking.
func (s *Syncer) SyncTheme(d config.Dotfiles) error {
	content, err := sourceContent(d.ThemeSource, "starship.toml")
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.ConfigRoot, 0755); err != nil {
		return fmt.Errorf("cannot create config directory %s: %w", s.ConfigRoot, err)
	}

	target := filepath.Join(s.ConfigRoot, d.Theme)
	if err := os.WriteFile(target, content, 0644); err != nil {
		return fmt.Errorf("cannot write theme %s: %w", target, err)
	}
	logger.Info("[INFO] Installed theme %s\n", target)
	return nil
}
