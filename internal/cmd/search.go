package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/harrison/lgrep/internal/config"
	"github.com/harrison/lgrep/internal/history"
	"github.com/harrison/lgrep/internal/logger"
	"github.com/harrison/lgrep/internal/models"
	"github.com/harrison/lgrep/internal/pattern"
	"github.com/harrison/lgrep/internal/walker"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// runSearch implements the root command logic
func runSearch(cmd *cobra.Command, args []string, argv0 string) error {
	started := time.Now()

	cfg, err := buildConfig(cmd, argv0)
	if err != nil {
		return fail(err)
	}

	out := cmd.OutOrStdout()
	log := logger.NewConsoleLogger(cmd.ErrOrStderr(), "lgrep", cfg.LogLevel)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	if cmd.Flags().Changed("show-history") {
		n, _ := cmd.Flags().GetInt("show-history")
		if err := showHistory(ctx, out, cfg.History.DBPath, n); err != nil {
			return fail(err)
		}
		return nil
	}

	patterns, sources, err := resolvePatterns(cmd, args)
	if err != nil {
		return fail(err)
	}

	set, err := pattern.CompileAll(patterns, cfg.Dialect, pattern.Flags{
		Literal:    cfg.Fixed,
		IgnoreCase: cfg.IgnoreCase,
	})
	if err != nil {
		return fail(err)
	}
	log.LogDebug(fmt.Sprintf("compiled %d pattern(s) as %s", set.Len(), cfg.Dialect))

	w := walker.New(*cfg, set, out, log)
	result, runErr := w.Run(sources, cmd.InOrStdin())

	code := ExitNoMatch
	if result.AnyMatch {
		code = ExitMatch
	}
	if runErr != nil {
		code = ExitFailure
	}

	if cfg.History.Enabled {
		run := &history.RunRecord{
			StartedAt:      started,
			Duration:       time.Since(started),
			Patterns:       patterns,
			Sources:        sources,
			Dialect:        string(cfg.Dialect),
			Invert:         cfg.Invert,
			SourcesScanned: result.Sources,
			LinesScanned:   result.Lines,
			MatchedLines:   result.Matches,
			Errors:         result.Errors,
			ExitCode:       code,
		}
		if err := recordRun(ctx, cfg.History.DBPath, run); err != nil {
			log.LogWarn(fmt.Sprintf("failed to record history: %v", err))
		} else {
			log.LogDebug(fmt.Sprintf("recorded run %s", run.ID))
		}
	}

	switch {
	case runErr != nil:
		return fail(runErr)
	case code != ExitMatch:
		return &ExitError{Code: code}
	}
	return nil
}

// buildConfig layers defaults, program name, config file, environment and
// flags, then validates the result and resolves color against the output.
func buildConfig(cmd *cobra.Command, argv0 string) (*config.Config, error) {
	base := config.DefaultConfig()
	base.ApplyProgramName(argv0)

	configPath, _ := cmd.Flags().GetString("config")
	var cfg *config.Config
	var err error
	if configPath != "" {
		cfg, err = config.LoadConfig(configPath, base)
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
	} else {
		cfg, err = config.LoadConfigFromDir(".", base)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}

	overrides, err := flagOverrides(cmd)
	if err != nil {
		return nil, err
	}
	cfg.MergeWithFlags(overrides)

	if cfg.History.DBPath == "" && (cfg.History.Enabled || cmd.Flags().Changed("show-history")) {
		path, err := config.GetHistoryDBPath()
		if err != nil {
			return nil, err
		}
		cfg.History.DBPath = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	cfg.ResolveColor(isTerminal(cmd.OutOrStdout()))
	return cfg, nil
}

// flagOverrides collects the flags given on the command line. Flags left
// at their defaults do not override the config file.
func flagOverrides(cmd *cobra.Command) (config.FlagOverrides, error) {
	flags := cmd.Flags()
	var o config.FlagOverrides

	if flags.Changed("extended-regexp") && flags.Changed("basic-regexp") {
		return o, fmt.Errorf("cannot use both --extended-regexp and --basic-regexp")
	}
	if flags.Changed("text") && flags.Changed("skip-binary") {
		return o, fmt.Errorf("cannot use both --text and --skip-binary")
	}

	boolFlag := func(name string) *bool {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetBool(name)
		return &v
	}
	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}

	if v := boolFlag("extended-regexp"); v != nil && *v {
		d := models.DialectExtended
		o.Dialect = &d
	}
	if v := boolFlag("basic-regexp"); v != nil && *v {
		d := models.DialectBasic
		o.Dialect = &d
	}

	o.Recursive = boolFlag("recursive")
	o.Fixed = boolFlag("fixed-strings")
	o.IgnoreCase = boolFlag("ignore-case")
	o.LineNumbers = boolFlag("line-numbers")
	o.Invert = boolFlag("invert-match")
	o.Quiet = boolFlag("quiet")
	o.SuppressErrors = boolFlag("no-messages")
	o.Count = boolFlag("count")
	o.History = boolFlag("history")
	o.HistoryDB = stringFlag("history-db")
	o.LogLevel = stringFlag("log-level")

	if v := stringFlag("binary-mode"); v != nil {
		mode, err := models.ParseBinaryMode(*v)
		if err != nil {
			return o, err
		}
		o.BinaryMode = &mode
	}
	if v := boolFlag("text"); v != nil && *v {
		mode := models.BinaryModeText
		o.BinaryMode = &mode
	}
	if v := boolFlag("skip-binary"); v != nil && *v {
		mode := models.BinaryModeSkip
		o.BinaryMode = &mode
	}

	if v := stringFlag("color"); v != nil {
		mode, err := models.ParseColorMode(*v)
		if err != nil {
			return o, err
		}
		o.ColorMode = &mode
	}

	return o, nil
}

// resolvePatterns returns the patterns from -e and -f, in that order. When
// those yield no pattern, including an empty -f file, the first positional
// argument is the pattern. The remaining arguments are the sources.
func resolvePatterns(cmd *cobra.Command, args []string) ([]string, []string, error) {
	inline, _ := cmd.Flags().GetStringArray("regexp")
	patternFile, _ := cmd.Flags().GetString("file")

	patterns := append([]string(nil), inline...)
	if patternFile != "" {
		loaded, err := pattern.LoadFile(patternFile)
		if err != nil {
			return nil, nil, err
		}
		patterns = append(patterns, loaded...)
	}

	if len(patterns) > 0 {
		return patterns, args, nil
	}

	if len(args) == 0 {
		return nil, nil, pattern.ErrNoPatterns
	}
	return args[:1], args[1:], nil
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok || f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
