package cmd

import (
	"os/exec"
	"runtime"

	"devsetup/internal/config"
	"devsetup/internal/dotfiles"
	"devsetup/internal/extras"
	"devsetup/internal/installer"
	"devsetup/internal/logger"
	"devsetup/internal/platform"
	"devsetup/internal/state"
	"github.com/spf13/cobra"
)

// configPath holds the path to an optional YAML manifest overriding the
// built-in one. It's passed via the `--config` or `-c` flag.
var configPath string

// statePath is the path to the persistent state file recording the outcome of
// each tool per run. Empty means the per-user default location.
var statePath string

// resolveStatePath applies the per-user default when --state was not given, so
// the state file does not depend on the working directory.
func resolveStatePath() string {
	if statePath != "" {
		return statePath
	}
	return state.DefaultPath()
}

// upCmd is the top-level command for a full provisioning run: resolve the
// platform, install packages and fallback tools, copy dotfiles, set up extras.
var upCmd = &cobra.Command{
	Use:          "up",
	Short:        "Provision the workstation (tools, dotfiles, extras)",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			return err
		}

		// The platform is resolved exactly once; everything downstream receives
		// the selected manager. An unresolvable platform is the one fatal error.
		plat, err := platform.Resolve(runtime.GOOS, exec.LookPath)
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			return err
		}
		logger.Info("[INFO] Detected platform: %s\n", plat)

		sp := resolveStatePath()
		st := state.Load(sp)
		inst := installer.New(plat.Manager)

		runTools(cfg, inst, st)
		runDotfiles(cfg)
		runExtras(cfg, inst, st)

		state.Save(sp, st)
		logger.Info("[INFO] Provisioning complete\n")
		return nil
	},
}

// upToolsCmd provisions only the CLI tools (packages + fallback tools).
var upToolsCmd = &cobra.Command{
	Use:          "tools",
	Short:        "Install only the CLI tools",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			return err
		}
		plat, err := platform.Resolve(runtime.GOOS, exec.LookPath)
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			return err
		}
		logger.Info("[INFO] Detected platform: %s\n", plat)

		sp := resolveStatePath()
		st := state.Load(sp)
		runTools(cfg, installer.New(plat.Manager), st)
		state.Save(sp, st)
		return nil
	},
}

// upDotfilesCmd copies only the dotfiles. No platform resolution is needed.
var upDotfilesCmd = &cobra.Command{
	Use:          "dotfiles",
	Short:        "Copy only the dotfiles",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			return err
		}
		runDotfiles(cfg)
		return nil
	},
}

// upExtrasCmd sets up only the optional AI tools.
var upExtrasCmd = &cobra.Command{
	Use:          "extras",
	Short:        "Set up only the optional AI tools",
	SilenceUsage: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			return err
		}
		plat, err := platform.Resolve(runtime.GOOS, exec.LookPath)
		if err != nil {
			logger.Error("[ERROR] %v\n", err)
			return err
		}
		logger.Info("[INFO] Detected platform: %s\n", plat)

		sp := resolveStatePath()
		st := state.Load(sp)
		runExtras(cfg, installer.New(plat.Manager), st)
		state.Save(sp, st)
		return nil
	},
}

// runTools installs the package list and the fallback-chain tools. The manager
// itself is bootstrapped first (relevant on a fresh macOS host); if that fails
// the whole tools phase is skipped with a warning, but the run continues to the
// other phases.
func runTools(cfg config.Config, inst *installer.Installer, st *state.State) {
	if err := inst.EnsureManager(); err != nil {
		logger.Error("[ERROR] Package manager unavailable: %v\n", err)
		logger.Warn("[WARN] Skipping tool installs. Install %s manually and re-run.\n", inst.Manager)
		return
	}

	// One failing package never blocks the rest of the list.
	for _, pkg := range cfg.Packages {
		outcome := inst.EnsureInstalled(pkg)
		st.Record(pkg.Name, string(inst.Manager), string(outcome))
	}

	for _, tool := range cfg.Fallbacks {
		outcome := inst.InstallFallback(tool)
		st.Record(tool.Name, string(inst.Manager), string(outcome))
	}
}

// runDotfiles copies the shell profile (confirmed, with backup) and the prompt
// theme. Failures here are reported but never abort the run.
func runDotfiles(cfg config.Config) {
	syncer, err := dotfiles.New(assumeYes)
	if err != nil {
		logger.Error("[ERROR] %v\n", err)
		return
	}
	if err := syncer.SyncProfile(cfg.Dotfiles); err != nil {
		logger.Warn("[WARN] Profile not installed: %v\n", err)
	}
	if err := syncer.SyncTheme(cfg.Dotfiles); err != nil {
		logger.Warn("[WARN] Theme not installed: %v\n", err)
	}
}

// runExtras sets up the optional AI tools; both are best-effort.
func runExtras(cfg config.Config, inst *installer.Installer, st *state.State) {
	setup := extras.New(inst, assumeYes)
	outcome := setup.SetupModelRunner(cfg.Extras.ModelRunner)
	st.Record(cfg.Extras.ModelRunner.Name, string(inst.Manager), string(outcome))
	outcome = setup.SetupPromptToolkit(cfg.Extras.PromptToolkit)
	st.Record(cfg.Extras.PromptToolkit.Name, string(inst.Manager), string(outcome))
}

// init sets up CLI flags and adds subcommands to the root command.
func init() {
	// Flags shared by up and its subcommands
	upCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to YAML manifest (built-in manifest if omitted)")
	upCmd.PersistentFlags().StringVar(&statePath, "state", "", "Path to the state file (default ~/.local/state/devsetup/state.json)")

	// Add subcommands for more granular control
	upCmd.AddCommand(upToolsCmd)
	upCmd.AddCommand(upDotfilesCmd)
	upCmd.AddCommand(upExtrasCmd)
	// Register the `up` command with the root command
	rootCmd.AddCommand(upCmd)
}
