package config

// PackageSpec describes one CLI tool to be installed through the resolved package
// manager. Idempotency is keyed on Name: if a binary with that name is already
// resolvable on the search path, the install is skipped entirely.
//   - Name: Logical name of the tool; also the binary name used for the presence check.
//   - Overrides: Optional manager-specific package names keyed by manager id
//     (e.g. fd is packaged as fd-find on apt and dnf).
type PackageSpec struct {
	Name      string            `yaml:"name"`
	Overrides map[string]string `yaml:"overrides"`
}

// FallbackTool describes one shell-enhancement tool installed through the tiered
// fallback chain. One row per tool, all rows consumed by the same routine:
//   - Formula: Homebrew formula name; tier 1, used only when the resolved manager
//     is Homebrew (the Linux distro repos lack first-class packages for these).
//   - ScriptURL: vendor-provided remote install script; tier 2, fetched over HTTPS
//     and executed with sh, installing into the user-local bin directory.
//   - ArchiveURL: release archive (tar.gz/zip/...); tier 3, downloaded and
//     extracted, with the tool binary copied into the user-local bin directory.
type FallbackTool struct {
	Name       string `yaml:"name"`
	Formula    string `yaml:"formula"`
	ScriptURL  string `yaml:"script_url"`
	ArchiveURL string `yaml:"archive_url"`
}

// Dotfiles names the files copied into the user's environment.
//   - ProfileSource/Profile: shell profile copied into $HOME; overwriting an
//     existing profile requires confirmation and produces a timestamped backup.
//   - ThemeSource/Theme: prompt theme copied into the per-user config directory;
//     owned by devsetup, so it is overwritten silently.
type Dotfiles struct {
	ProfileSource string `yaml:"profile_source"` // Optional path to a profile file; empty uses the embedded one
	Profile       string `yaml:"profile"`        // Target name under $HOME, e.g. ".zshrc"
	ThemeSource   string `yaml:"theme_source"`   // Optional path to a theme file; empty uses the embedded one
	Theme         string `yaml:"theme"`          // Target name under ~/.config, e.g. "starship.toml"
}

// HelperFile is an auxiliary file fetched over HTTPS into a config subdirectory
// after an extra tool is installed.
type HelperFile struct {
	URL  string `yaml:"url"`
	File string `yaml:"file"` // Target filename inside the tool's config subdirectory
}

// ModelRunner configures the local LLM runner extra (e.g. ollama): how to install
// it, and which model to offer pulling after install. The model name is prompted
// interactively with DefaultModel used on empty input.
type ModelRunner struct {
	Name         string `yaml:"name"`
	ScriptURL    string `yaml:"script_url"`
	DefaultModel string `yaml:"default_model"`
}

// PromptToolkit configures the prompt-pattern toolkit extra (e.g. fabric): how to
// install it, and the helper scripts fetched into its config subdirectory afterwards.
type PromptToolkit struct {
	Name      string       `yaml:"name"`
	Formula   string       `yaml:"formula"`
	ScriptURL string       `yaml:"script_url"`
	ConfigDir string       `yaml:"config_dir"` // Subdirectory under ~/.config receiving the helpers
	Helpers   []HelperFile `yaml:"helpers"`
}

// Extras groups the two optional AI tools with post-install configuration fetches.
type Extras struct {
	ModelRunner   ModelRunner   `yaml:"model_runner"`
	PromptToolkit PromptToolkit `yaml:"prompt_toolkit"`
}

// Config is the top-level structure describing everything a provisioning run does.
// It is parsed from a single YAML manifest, or built from the compiled-in default
// manifest when no config file is given.
type Config struct {
	Packages  []PackageSpec  `yaml:"packages"`
	Fallbacks []FallbackTool `yaml:"fallbacks"`
	Dotfiles  Dotfiles       `yaml:"dotfiles"`
	Extras    Extras         `yaml:"extras"`
}
