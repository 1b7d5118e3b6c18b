package logger

import (
	"github.com/fatih/color" // Import the fatih/color package for colored console output
)

// Define colorized printing functions for different log levels using fatih/color.
// These are package-level variables holding functions that behave like fmt.Printf,
// but with text colored appropriately for the log level.

// Info logs informational messages in green color.
// Green is typically used for success or normal info to catch user attention pleasantly.
var Info = color.New(color.FgGreen).PrintfFunc()

// Warn logs warning messages in bright magenta color.
// Every non-fatal install failure goes through Warn together with a suggested
// manual remedy, since the run continues past it.
var Warn = color.New(color.FgHiMagenta).PrintfFunc()

// Error logs error messages in red color.
// Red is commonly associated with errors or critical problems to draw immediate attention.
var Error = color.New(color.FgRed).PrintfFunc()

// Debug logs debug messages in cyan color if enabled, otherwise is a no-op.
// This is a function variable that is assigned dynamically during Init based on debug flag.
var Debug func(format string, a ...any)

// Init initializes the logger package, specifically enabling or disabling debug logging.
// When enabled, Debug will print messages in cyan color.
// When disabled, Debug is a no-op function that silently ignores debug logs.
func Init(enableDebug bool) {
	if enableDebug {
		Debug = color.New(color.FgCyan).PrintfFunc()
	} else {
		Debug = func(format string, a ...any) {}
	}
}

func init() {
	// Default to the disabled Debug so packages can log before Init runs (e.g. in tests).
	Init(false)
}
