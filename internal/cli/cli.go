// Package cli parses command-line arguments into an app.Config.
package cli

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/186526/arin-irr-syncer/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// Parse processes command-line arguments. It returns a populated app.Config,
// a boolean indicating if the program should exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	flagSet := flag.NewFlagSet("irrsync", flag.ContinueOnError)
	flagSet.SetOutput(output)

	flagSet.Usage = func() {
		fmt.Fprint(output, `
irrsync - manage IRR AS-SET objects through a registry REST API.

Usage:
  irrsync [options] ACTION TARGET

Actions:
  convert   Re-encode a local as-set file (-to selects the format).
  expand    Resolve flat members via the expansion tool and emit the result.
  get       Fetch an as-set from the registry. TARGET is the as-set name.
  create    Register a local as-set file with the registry.
  update    Replace a registry as-set with a local file.
  sync      Expand a local file, then update the registry.
  delete    Remove an as-set from the registry. TARGET is the as-set name.

Options:
`)
		flagSet.PrintDefaults()
	}

	configFlag := flagSet.String("config", "irrsync.hcl", "Path to the settings file.")
	toFlag := flagSet.String("to", "", "Output format: 'yaml', 'rpsl' or 'xml'. Default keeps the input format.")
	outFlag := flagSet.String("o", "", "Write output to this file instead of stdout.")
	logFormatFlag := flagSet.String("log-format", "text", "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", "info", "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	if flagSet.NArg() == 0 {
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	config, err := app.NewConfig(app.Config{
		Action:       strings.ToLower(flagSet.Arg(0)),
		Target:       flagSet.Arg(1),
		SettingsPath: *configFlag,
		OutFormat:    strings.ToLower(*toFlag),
		OutPath:      *outFlag,
		LogFormat:    logFormat,
		LogLevel:     logLevel,
	})
	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	return config, false, nil
}
