package cmd

import (
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// NewRootCommand creates and returns the root cobra command for lgrep
func NewRootCommand() *cobra.Command {
	return NewRootCommandAs("lgrep")
}

// NewRootCommandAs creates the root command for a binary invoked as argv0.
// Invoked as rgrep, egrep or fgrep the matching defaults are applied before
// the config file and flags are read.
func NewRootCommandAs(argv0 string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "lgrep [OPTIONS] [PATTERN] [FILE...]",
		Short: "Search files for lines matching a pattern",
		Long: `lgrep prints the lines of each FILE (or standard input) that match
one of the given patterns.

Patterns are basic regular expressions unless -E selects the extended
dialect or -F matches them as fixed strings. With -r, directories are
searched recursively and the current directory is searched when no FILE
is given.

Exit status is 0 if any line matched, 1 if none did and 2 on error.`,
		Version: Version,
		Args:    cobra.ArbitraryArgs,
		// Silence usage on errors to avoid duplicate help text
		SilenceUsage: true,
		// main reports errors so the exit status can be chosen there
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSearch(cmd, args, argv0)
		},
	}

	flags := cmd.Flags()
	flags.BoolP("recursive", "r", false, "Recursively search directories")
	flags.BoolP("extended-regexp", "E", false, "Use the extended regular expression dialect")
	flags.BoolP("basic-regexp", "G", false, "Use the basic regular expression dialect (default)")
	flags.BoolP("fixed-strings", "F", false, "Match patterns as literal strings")
	flags.StringArrayP("regexp", "e", nil, "Pattern to search for (repeatable)")
	flags.StringP("file", "f", "", "Read patterns from FILE, one per line")
	flags.BoolP("ignore-case", "i", false, "Match case-insensitively")
	flags.BoolP("line-numbers", "n", false, "Prefix each output line with its line number")
	flags.BoolP("invert-match", "v", false, "Select non-matching lines")
	flags.BoolP("quiet", "q", false, "Print nothing; report matches through the exit status only")
	flags.BoolP("no-messages", "s", false, "Suppress error messages about unreadable files")
	flags.BoolP("count", "c", false, "Print the number of matching lines per source")
	flags.String("binary-mode", "", "Policy for lines containing a zero byte: binary, text or skip")
	flags.BoolP("text", "a", false, "Treat binary lines as text (same as --binary-mode=text)")
	flags.BoolP("skip-binary", "I", false, "Ignore binary lines (same as --binary-mode=skip)")
	flags.String("color", "", "Highlight output: auto, always or never")
	flags.String("config", "", "Path to config file (default: .lgrep/config.yaml)")
	flags.String("log-level", "", "Diagnostics level: trace, debug, info, warn or error")
	flags.Bool("history", false, "Record this run in the history database")
	flags.String("history-db", "", "Path to the history database (implies --history)")
	flags.Int("show-history", 0, "Print the N most recent recorded runs and exit")

	return cmd
}
