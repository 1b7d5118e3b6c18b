// Package extras sets up the two optional AI tools: a local model runner and a
// prompt-pattern toolkit, each installed through the same tiered fallback chain
// as the shell tools and followed by a post-install configuration step.
package extras

import (
	"fmt"
	"os"
	"path/filepath"

	"devsetup/internal/config"
	"devsetup/internal/installer"
	"devsetup/internal/logger"
	"devsetup/internal/prompt"
)

// Setup runs the extras phase. Everything here is optional: failures are
// warnings only and never abort the run. The Prompter is shared across both
// questions of the model-runner interaction so scripted input survives from
// one question to the next.
type Setup struct {
	Inst       *installer.Installer
	ConfigRoot string           // Per-user config directory, normally ~/.config
	AssumeYes  bool             // Skip confirmations affirmatively (--yes)
	Prompt     *prompt.Prompter // Interactive confirmations and model name
}

// New builds a Setup against the real config directory and standard streams.
func New(inst *installer.Installer, assumeYes bool) *Setup {
	home, _ := os.UserHomeDir()
	return &Setup{
		Inst:       inst,
		ConfigRoot: filepath.Join(home, ".config"),
		AssumeYes:  assumeYes,
		Prompt:     prompt.New(os.Stdin, os.Stdout),
	}
}

// SetupModelRunner installs the local LLM runner and optionally pulls a model.
// The tool installs through the usual tiers (Homebrew formula, then the vendor
// script). Pulling a model is offered interactively: a yes/no confirmation,
// then a free-text model name with the configured default used on empty input.
func (s *Setup) SetupModelRunner(cfg config.ModelRunner) installer.Outcome {
	outcome := s.Inst.InstallFallback(config.FallbackTool{
		Name:      cfg.Name,
		Formula:   cfg.Name,
		ScriptURL: cfg.ScriptURL,
	})
	if outcome == installer.FailedNonFatal {
		// Without the runner there is nothing to pull.
		return outcome
	}

	if !s.AssumeYes && !s.Prompt.Confirm(fmt.Sprintf("Download a model with %s now? (multi-GB download)", cfg.Name)) {
		logger.Info("[INFO] Skipping model download\n")
		return outcome
	}

	model := cfg.DefaultModel
	if !s.AssumeYes {
		model = s.Prompt.Ask("Model name", cfg.DefaultModel)
	}

	logger.Info("[INFO] Pulling model %s (this may take a while)...\n", model)
	output, err := s.Inst.Run(cfg.Name, "pull", model)
	if err != nil {
		logger.Warn("[WARN] Model pull failed: %v\nOutput: %s\n", err, output)
		logger.Warn("[WARN] Continuing. To pull manually, run: %s pull %s\n", cfg.Name, model)
		return outcome
	}
	logger.Info("[INFO] Model %s ready\n", model)
	return outcome
}

// SetupPromptToolkit installs the prompt-pattern toolkit and fetches its
// auxiliary helper scripts into the tool's config subdirectory. Each helper
// fetch failure is a warning only.
func (s *Setup) SetupPromptToolkit(cfg config.PromptToolkit) installer.Outcome {
	outcome := s.Inst.InstallFallback(config.FallbackTool{
		Name:      cfg.Name,
		Formula:   cfg.Formula,
		ScriptURL: cfg.ScriptURL,
	})
	if outcome == installer.FailedNonFatal {
		return outcome
	}

	if len(cfg.Helpers) == 0 {
		return outcome
	}

	dir := filepath.Join(s.ConfigRoot, cfg.ConfigDir)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Warn("[WARN] Cannot create %s: %v. Skipping helper scripts.\n", dir, err)
		return outcome
	}

	for _, helper := range cfg.Helpers {
		dest := filepath.Join(dir, helper.File)
		if err := s.Inst.Fetch(helper.URL, dest); err != nil {
			logger.Warn("[WARN] Failed to fetch helper %s: %v\n", helper.File, err)
			logger.Warn("[WARN] Continuing. Download it manually from %s\n", helper.URL)
			continue
		}
		// Helpers are scripts meant to be invoked directly.
		if err := os.Chmod(dest, 0755); err != nil {
			logger.Warn("[WARN] Cannot mark %s executable: %v\n", dest, err)
			continue
		}
		logger.Info("[INFO] Fetched helper %s\n", dest)
	}
	return outcome
}
