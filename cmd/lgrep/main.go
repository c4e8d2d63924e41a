package main

import (
	"fmt"
	"io"
	"os"

	"github.com/harrison/lgrep/internal/cmd"
)

func main() {
	os.Exit(run(os.Args, os.Stdin, os.Stdout, os.Stderr))
}

// run executes the root command and returns the process exit status
func run(argv []string, stdin io.Reader, stdout, stderr io.Writer) int {
	rootCmd := cmd.NewRootCommandAs(argv[0])
	rootCmd.SetIn(stdin)
	rootCmd.SetOut(stdout)
	rootCmd.SetErr(stderr)
	rootCmd.SetArgs(argv[1:])

	err := rootCmd.Execute()
	if reportable := cmd.Reportable(err); reportable != nil {
		fmt.Fprintf(stderr, "lgrep: %v\n", reportable)
	}
	return cmd.ExitCode(err)
}
