// Package cmd holds the flylang debug CLI's cobra commands: lex and
// parse. It deliberately omits commands (run, fmt) that belong to stages
// this front-end doesn't build.
package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	// Version information (set by build flags).
	Version   = "0.1.0-dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// outputFormat is shared by lex and parse: text (human-readable), json
// (via tidwall/pretty over the underlying struct dump), or yaml (via
// goccy/go-yaml), per SPEC_FULL.md's CLI surface.
var outputFormat string

// color toggles ANSI escapes in text-format diagnostic output.
var color bool

// lastCode is the process exit code the CLI driver should use, set by
// whichever subcommand ran (0 on success, the diagnostics.Code of the
// first Stop diagnostic otherwise). main.go reads it after Execute
// returns.
var lastCode int

// ExitCode returns the code main.go should pass to os.Exit.
func ExitCode() int {
	return lastCode
}

var rootCmd = &cobra.Command{
	Use:   "flylang",
	Short: "flylang lexer and parser debug CLI",
	Long: `flylang is a front end for the flylang scripting language: a
lexer and recursive-descent parser with no runtime behind them yet.

This CLI exists to exercise and debug those two stages:

  flylang lex <file>    tokenize a .fly file and print its tokens
  flylang parse <file>  parse a .fly file and print its AST`,
	Version: Version,

	// lex/parse print their own diagnostics (with caret context and
	// color); cobra's default "Error: ..." + usage dump would just
	// repeat the message in a plainer form.
	SilenceErrors: true,
	SilenceUsage:  true,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf(`{{with .Name}}{{printf "%%s " .}}{{end}}{{printf "version %%s" .Version}}
Commit: %s
Built:  %s
`, GitCommit, BuildDate))

	rootCmd.PersistentFlags().StringVar(&outputFormat, "format", "text", "output format: text, json, or yaml")
	rootCmd.PersistentFlags().BoolVar(&color, "color", false, "colorize text-format diagnostics")
}
