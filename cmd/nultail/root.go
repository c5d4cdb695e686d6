package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"nultail/internal/config"
	"nultail/internal/pathglob"
)

type rootOptions struct {
	configPath string
	lines      string
	sleep      int
	pid        int
	quiet      bool
	pattern    string
	delimiter  string
	endMarker  string
	verbose    bool
	stateDB    string
	logFormat  string
	initConfig bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "nultail [flags] <file>...",
		Short: "Follow pre-allocated NUL-padded files as text appears in them",
		Long: `nultail follows files that were pre-allocated and padded with an end-marker
byte (NUL by default), the layout used by loggers that print formatted text at
increasing offsets inside a fixed-size buffer. Such files never change size,
so ordinary follow tools see nothing; nultail tracks the boundary between
written text and the remaining padding instead.

Per file it first replays the last N lines already present, then streams
every new line as it is written. Press ctrl-c to stop.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.initConfig {
				return writeSampleConfig(cmd, opts.configPath)
			}
			cfg, err := buildConfig(cmd.Flags(), opts, args)
			if err != nil {
				// Configuration errors never start a run; show usage so the
				// flag surface is discoverable.
				fmt.Fprintln(cmd.ErrOrStderr(), cmd.UsageString())
				return err
			}
			return runFollow(cmd.Context(), cfg)
		},
	}

	registerFlags(cmd, opts)
	return cmd
}

func registerFlags(cmd *cobra.Command, opts *rootOptions) {
	flags := cmd.Flags()
	flags.StringVarP(&opts.lines, "lines", "n", "", "Replay the last K lines per file; +K replays from the start")
	flags.IntVarP(&opts.sleep, "sleep-interval", "s", 0, "Seconds between poll cycles")
	flags.IntVarP(&opts.pid, "pid", "p", 0, "Stop once this pid is no longer alive")
	flags.BoolVarP(&opts.quiet, "quiet", "q", false, "Never print per-file headers")
	flags.StringVarP(&opts.pattern, "glob", "r", "", "Follow files matching this pattern, in addition to any positional paths")
	flags.StringVarP(&opts.delimiter, "delimiter", "d", "", `Line delimiter: a character or \n \t \r \0`)
	flags.StringVarP(&opts.endMarker, "end-marker", "x", "", `Padding byte: a character or \n \t \r \0`)
	flags.BoolVarP(&opts.verbose, "verbose", "v", false, "Verbose diagnostics on stderr")
	flags.StringVarP(&opts.configPath, "config", "c", "", "Configuration file path")
	flags.StringVar(&opts.stateDB, "state-db", "", "SQLite database for persisting read cursors across runs")
	flags.StringVar(&opts.logFormat, "log-format", "", "Diagnostic format: console or json")
	flags.BoolVar(&opts.initConfig, "init-config", false, "Write a sample configuration file and exit")
}

// buildConfig merges the config file (or defaults) with explicitly set flags
// and the resolved file list. Flags win over the file.
func buildConfig(flags *pflag.FlagSet, opts *rootOptions, args []string) (*config.Config, error) {
	cfg, _, _, err := config.Load(opts.configPath)
	if err != nil {
		return nil, err
	}

	if flags.Changed("lines") {
		count, fromStart, err := parseLinesFlag(opts.lines)
		if err != nil {
			return nil, fmt.Errorf("invalid -n value: %w", err)
		}
		cfg.Follow.Lines = count
		cfg.Follow.FromStart = fromStart
	}
	if flags.Changed("sleep-interval") {
		cfg.Follow.PollInterval = opts.sleep
	}
	if flags.Changed("quiet") {
		cfg.Follow.Quiet = opts.quiet
	}
	if flags.Changed("delimiter") {
		cfg.Follow.Delimiter = opts.delimiter
	}
	if flags.Changed("end-marker") {
		cfg.Follow.EndMarker = opts.endMarker
	}
	if flags.Changed("state-db") {
		cfg.StateDB = opts.stateDB
	}
	if flags.Changed("log-format") {
		cfg.Logging.Format = opts.logFormat
	}
	cfg.WatchPID = opts.pid
	cfg.Verbose = opts.verbose
	if cfg.Verbose {
		cfg.Logging.Level = "debug"
	}

	files := append([]string{}, args...)
	if opts.pattern != "" {
		matches, err := pathglob.Expand(opts.pattern)
		if err != nil {
			return nil, err
		}
		files = append(files, matches...)
	}
	cfg.Files = files

	if err := cfg.Normalize(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.ValidateFiles(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// parseLinesFlag handles the -n forms: "K" replays the last K lines, "+K"
// replays everything from the start.
func parseLinesFlag(value string) (int, bool, error) {
	trimmed := strings.TrimSpace(value)
	fromStart := strings.HasPrefix(trimmed, "+")
	if fromStart {
		trimmed = trimmed[1:]
	}
	count, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, false, fmt.Errorf("parse %q: %w", value, err)
	}
	if count < 0 {
		return 0, false, fmt.Errorf("line count must be zero or positive, got %d", count)
	}
	return count, fromStart, nil
}

func writeSampleConfig(cmd *cobra.Command, path string) error {
	if path == "" {
		resolved, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		path = resolved
	}
	if err := config.CreateSample(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote sample configuration to %s\n", path)
	return nil
}
