package main

import (
	"devsetup/cmd" // Import the cmd package which contains the CLI commands and execution logic
)

// main is the program entry point.
// It delegates to cmd.Execute() which handles command line argument parsing and execution.
//
// This design cleanly separates the CLI interface (cmd package) from main,
// allowing easier testing, extension, and reuse of the CLI commands.
//
// The devsetup project is a developer workstation bootstrap tool that:
//   - Resolves the host platform once at startup to a single OS package manager
//     (Homebrew on macOS; apt, dnf, pacman, or zypper on Linux, probed in that order)
//   - Idempotently installs a list of CLI tools: anything already resolvable on the
//     search path is skipped without invoking the package manager
//   - Installs a set of shell-enhancement tools through a data-driven fallback chain
//     (package-manager formula, then vendor install script, then release archive)
//   - Copies dotfiles into place, backing up any file it would overwrite under a
//     timestamped name after asking for confirmation
//   - Optionally sets up two AI tools with post-install configuration fetches
//
// Error handling strategy:
//   - Individual install failures are warnings only; the run always continues to the
//     next item so one missing optional tool never blocks the rest of the setup
//   - Only an unresolvable platform (or an explicitly named config file that cannot
//     be parsed) aborts the run with a non-zero exit status
//
// Integration points:
//   - Invokes the resolved package manager as a subprocess, wrapping it in sudo when
//     an elevation helper is available on the search path
//   - Fetches vendor install scripts and helper files over HTTPS
//   - Maintains a JSON state file recording the outcome of each tool per run
func main() {
	cmd.Execute()
}
