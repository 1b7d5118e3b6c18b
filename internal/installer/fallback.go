package installer

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"devsetup/internal/config"
	"devsetup/internal/logger"
	"devsetup/internal/platform"
)

// InstallFallback installs one shell-enhancement tool through the tiered
// fallback chain described by its config table row. The tiers are attempted in
// order until one succeeds or all are exhausted:
//
//	tier 1: the package manager, but only when it is Homebrew and the tool has
//	        a formula (the Linux distro repos lack first-class packages)
//	tier 2: the vendor-provided remote install script, fetched over HTTPS and
//	        executed with sh, installing into the user-local bin directory
//	tier 3: a release archive, downloaded and extracted, with the tool binary
//	        copied into the user-local bin directory
//
// Like every install, it is idempotent (a presence hit returns AlreadyPresent
// without attempting any tier) and non-fatal (exhausting all tiers produces a
// warning and FailedNonFatal, never an abort).
func (inst *Installer) InstallFallback(tool config.FallbackTool) Outcome {
	if path, err := inst.Env.LookPath(tool.Name); err == nil {
		logger.Info("[INFO] %s already present at %s. Skipping.\n", tool.Name, path)
		return AlreadyPresent
	}

	// The script and archive tiers both install into the user-local bin dir;
	// creating it up front also extends the search path for later checks.
	localBin, err := inst.ensureLocalBin()
	if err != nil {
		logger.Warn("[WARN] Cannot create user-local bin directory: %v\n", err)
		logger.Warn("[WARN] Skipping %s. Create ~/.local/bin and re-run to install it.\n", tool.Name)
		return FailedNonFatal
	}

	// Tier 1: package manager formula (Homebrew only).
	if inst.Manager == platform.Homebrew && tool.Formula != "" {
		logger.Info("[INFO] Installing %s via Homebrew formula %s...\n", tool.Name, tool.Formula)
		output, err := inst.Run("brew", "install", tool.Formula)
		if err == nil {
			logger.Info("[INFO] Installed %s\n", tool.Name)
			return Installed
		}
		logger.Warn("[WARN] brew install %s failed: %v\nOutput: %s\n", tool.Formula, err, output)
	}

	// Tier 2: vendor install script.
	if tool.ScriptURL != "" {
		if inst.runInstallScript(tool.Name, tool.ScriptURL) {
			return Installed
		}
	}

	// Tier 3: release archive into the user-local bin dir.
	if tool.ArchiveURL != "" {
		if inst.installFromArchiveURL(tool.Name, tool.ArchiveURL, localBin) {
			return Installed
		}
	}

	logger.Warn("[WARN] All install strategies for %s failed. See the project's install docs to set it up manually.\n", tool.Name)
	return FailedNonFatal
}

// runInstallScript fetches a vendor install script to a temp file and executes
// it with sh. Returns true on success; failures are logged and tolerated.
func (inst *Installer) runInstallScript(name, url string) bool {
	logger.Info("[INFO] Installing %s via vendor install script...\n", name)

	script := filepath.Join(os.TempDir(), name+"-"+path.Base(url))
	if !strings.HasSuffix(script, ".sh") {
		script += ".sh"
	}
	if err := inst.Fetch(url, script); err != nil {
		logger.Warn("[WARN] Failed to fetch install script for %s: %v\n", name, err)
		return false
	}

	logger.Debug("[DEBUG] Running command: sh %s\n", script)
	output, err := inst.Run("sh", script)
	if err != nil {
		logger.Warn("[WARN] Install script for %s failed: %v\nOutput: %s\n", name, err, output)
		return false
	}

	logger.Info("[INFO] Installed %s\n", name)
	return true
}

// installFromArchiveURL downloads a release archive, extracts it, and copies
// the tool binary into destDir. Returns true on success.
func (inst *Installer) installFromArchiveURL(name, url, destDir string) bool {
	logger.Info("[INFO] Installing %s from release archive...\n", name)

	archive := filepath.Join(os.TempDir(), path.Base(url))
	if err := inst.Fetch(url, archive); err != nil {
		logger.Warn("[WARN] Failed to download archive for %s: %v\n", name, err)
		return false
	}

	installed, err := installFromArchive(archive, name, destDir)
	if err != nil {
		logger.Warn("[WARN] Failed to install %s from archive: %v\n", name, err)
		return false
	}

	logger.Info("[INFO] Installed %s to %s\n", name, installed)
	return true
}
