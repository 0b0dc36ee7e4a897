package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"led-layout/internal/common"
	"led-layout/internal/ledconfig"
)

// Output formats.
const (
	OutputYAML = "yaml"
	OutputJSON = "json"
	OutputDump = "dump"
)

// Exit codes.
const (
	ExitFailure = 1
	ExitUsage   = 2
)

// ExitError is an error that carries the process exit code.
type ExitError struct {
	Code    int
	Message string
}

func (e *ExitError) Error() string {
	return e.Message
}

// Config is the parsed command line.
type Config struct {
	// ConfigPath is the config file to load. Empty means discover it.
	ConfigPath      string
	BasePath        string
	DuplicateGroups ledconfig.DuplicateGroupPolicy
	// Compatible lists system names for discovery. Nil means ask D-Bus.
	Compatible []string
	Wait       bool
	Timeout    time.Duration
	Output     string
	Lint       bool
	LogLevel   string
	LogFormat  string
}

// BuildOptions returns the loader options selected on the command line.
func (c *Config) BuildOptions() ledconfig.BuildOptions {
	return ledconfig.BuildOptions{
		BasePath:        c.BasePath,
		DuplicateGroups: c.DuplicateGroups,
	}
}

// Parse processes command-line arguments. It returns the Config, whether the
// program should exit cleanly (help was requested), or an *ExitError.
func Parse(args []string, output io.Writer) (*Config, bool, error) {
	fs := flag.NewFlagSet("ledmap", flag.ContinueOnError)
	fs.SetOutput(output)

	fs.Usage = func() {
		fmt.Fprint(output, `
ledmap - load, validate and print an LED group config.

Usage:
  ledmap [options] [CONFIG]

Arguments:
  CONFIG
    Path to led-group-config.json. When omitted the config is discovered
    from the override and compatible-system directories.

Options:
`)
		fs.PrintDefaults()
	}

	configFlag := fs.String("config", GetEnvOrDefault(EnvConfig, ""), "Path to the LED group config. Env: "+EnvConfig+".")
	basePathFlag := fs.String("base-path", GetEnvOrDefault(EnvBasePath, ledconfig.DefaultBasePath), "Object path prefix of every group. Env: "+EnvBasePath+".")
	duplicatesFlag := fs.String("duplicate-groups", ledconfig.DuplicateGroupReject.String(), "Handling of repeated groups: 'reject', 'overwrite' or 'merge'.")
	compatibleFlag := fs.String("compatible", "", "Comma-separated compatible system names. Empty asks D-Bus.")
	waitFlag := fs.Bool("wait", false, "Wait for compatible system names to appear on D-Bus.")
	timeoutFlag := fs.Duration("timeout", 0, "Give up on discovery after this long. 0 waits forever.")
	outputFlag := fs.String("output", OutputYAML, "Output format: 'yaml', 'json' or 'dump'.")
	lintFlag := fs.Bool("lint", false, "Report diagnostics instead of printing the group map.")
	logLevelFlag := fs.String("log-level", "info", "Logging level: 'debug', 'info', 'warn' or 'error'.")
	logFormatFlag := fs.String("log-format", "text", "Log output format: 'text' or 'json'.")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}

		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	path := *configFlag

	switch {
	case fs.NArg() > 1:
		return nil, false, &ExitError{Code: ExitUsage, Message: "at most one config path may be given"}
	case fs.NArg() == 1 && path != "" && path != fs.Arg(0):
		return nil, false, &ExitError{Code: ExitUsage, Message: "config path given both as -config and as an argument"}
	case fs.NArg() == 1:
		path = fs.Arg(0)
	}

	duplicates, err := ledconfig.ParseDuplicateGroupPolicy(*duplicatesFlag)
	if err != nil {
		return nil, false, &ExitError{Code: ExitUsage, Message: err.Error()}
	}

	outputFormat := strings.ToLower(*outputFlag)
	switch outputFormat {
	case OutputYAML, OutputJSON, OutputDump:
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid output: must be 'yaml', 'json' or 'dump'"}
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
	default:
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}

	if *timeoutFlag < 0 {
		return nil, false, &ExitError{Code: ExitUsage, Message: "invalid timeout: must not be negative"}
	}

	var compatible []string
	if *compatibleFlag != "" {
		compatible = common.SplitList(*compatibleFlag)
	}

	return &Config{
		ConfigPath:      path,
		BasePath:        *basePathFlag,
		DuplicateGroups: duplicates,
		Compatible:      compatible,
		Wait:            *waitFlag,
		Timeout:         *timeoutFlag,
		Output:          outputFormat,
		Lint:            *lintFlag,
		LogLevel:        logLevel,
		LogFormat:       logFormat,
	}, false, nil
}
