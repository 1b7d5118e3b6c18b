package cmd

import (
	"os"

	"devsetup/internal/logger"
	"github.com/spf13/cobra"
)

// debug flag indicates whether debug logging should be enabled.
// It can be toggled via the `--debug` command-line flag.
var debug bool

// assumeYes answers every interactive confirmation affirmatively.
// Used for unattended provisioning runs via the `--yes` flag.
var assumeYes bool

// rootCmd is the base command for the CLI tool `devsetup`.
// It sets up the root-level CLI structure and provides global flags.
var rootCmd = &cobra.Command{
	Use:   "devsetup",                        // The name of the CLI tool
	Short: "Developer workstation bootstrap", // Short description shown in help output

	// PersistentPreRun is a hook that runs before any subcommand.
	// Here, we initialize the logger based on the debug flag.
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logger.Init(debug) // Set up logging (verbose if --debug is true)
	},
}

// Execute initializes flags, registers subcommands, and starts the command execution.
// It's the entry point for the CLI when invoked by the user.
func Execute() {
	// Register the global flags before any command is executed.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "Assume yes for all confirmations")

	// Individual tool install failures never surface here; a returned error means
	// the platform could not be resolved or an explicitly named config file was
	// unreadable, the only conditions that warrant a non-zero exit.
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
