package config

import "flag"

// flags holds the shared flag values. Subcommands run their own flag
// sets, so the flags are registered per set rather than on the global
// CommandLine.
var flags struct {
	config  string
	debug   bool
	quiet   bool
	logFile string
	array   string
	title   string
}

// RegisterFlags installs the shared configuration flags on fs. Call it
// before fs.Parse; Load picks the values up afterwards.
func RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&flags.config, "config", "", "Path to config file")
	fs.BoolVar(&flags.debug, "debug", false, "Enable debug logging")
	fs.BoolVar(&flags.quiet, "quiet", false, "Log errors only")
	fs.StringVar(&flags.logFile, "log-file", "", "Write logs to this file")
	fs.StringVar(&flags.array, "array", "", "Cell array name for converted models")
	fs.StringVar(&flags.title, "title", "", "Dataset title for VTK output")
}

// applyFlags applies CLI flag overrides to the config.
func applyFlags(cfg *Config) {
	if flags.debug {
		cfg.Logging.Level = "debug"
	}
	if flags.quiet {
		cfg.Logging.Level = "error"
	}
	if flags.logFile != "" {
		cfg.Logging.LogFile = flags.logFile
	}
	if flags.array != "" {
		cfg.Output.ArrayName = flags.array
	}
	if flags.title != "" {
		cfg.Output.Title = flags.title
	}
}
