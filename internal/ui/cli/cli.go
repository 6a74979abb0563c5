package cli

import (
	"flag"
	"io"

	"typeonly/internal/core/config"
)

type cliOptions struct {
	configPath  string
	format      string
	output      string
	banEnums    bool
	filePattern string
	watch       bool
	history     bool
	noColor     bool
	verbose     bool
	version     bool
	args        []string

	// set records which flags appeared on the command line so that only
	// those override the config file.
	set map[string]bool
}

func parseOptions(args []string, stderr io.Writer) (cliOptions, error) {
	var opts cliOptions
	fs := flag.NewFlagSet("typeonly", flag.ContinueOnError)
	fs.SetOutput(stderr)

	fs.StringVar(&opts.configPath, "config", config.DefaultConfigFile, "Path to config file")
	fs.StringVar(&opts.format, "format", "", "Report format: text, json or sarif")
	fs.StringVar(&opts.output, "output", "", "Write the report to this file instead of stdout")
	fs.BoolVar(&opts.banEnums, "ban-enums", false, "Report enum declarations in type-only files")
	fs.StringVar(&opts.filePattern, "file-pattern", "", `Regular expression selecting type-only files (default \.types\.tsx?$)`)
	fs.BoolVar(&opts.watch, "watch", false, "Re-check files as they change")
	fs.BoolVar(&opts.history, "history", false, "Record runs in the local history database and show the trend")
	fs.BoolVar(&opts.noColor, "no-color", false, "Disable colored text output")
	fs.BoolVar(&opts.verbose, "verbose", false, "Enable verbose logging")
	fs.BoolVar(&opts.version, "version", false, "Print version and exit")

	if err := fs.Parse(args); err != nil {
		return cliOptions{}, err
	}

	opts.set = make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { opts.set[f.Name] = true })
	opts.args = fs.Args()
	return opts, nil
}

// applyOverrides copies explicitly given flags and positional paths onto
// cfg, then re-validates it.
func applyOverrides(opts cliOptions, cfg *config.Config) error {
	if opts.set["format"] {
		cfg.Output.Format = opts.format
	}
	if opts.set["output"] {
		cfg.Output.Path = opts.output
	}
	if opts.set["ban-enums"] {
		cfg.Rule.BanEnums = opts.banEnums
	}
	if opts.set["file-pattern"] {
		cfg.Rule.FilePattern = opts.filePattern
	}
	if opts.history {
		cfg.History.Enabled = true
	}
	if opts.noColor {
		disabled := false
		cfg.Output.Color = &disabled
	}
	if len(opts.args) > 0 {
		cfg.Scan.Paths = append([]string(nil), opts.args...)
	}
	return config.Validate(cfg)
}
