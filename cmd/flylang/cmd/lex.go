package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/flylang/flylang/internal/fly/diagnostics"
	"github.com/flylang/flylang/internal/fly/lexer"
	"github.com/flylang/flylang/internal/fly/module"
	"github.com/flylang/flylang/internal/fly/token"
)

var (
	lexEval     string
	lexShowPos  bool
	lexOnlyErrs bool
)

var lexCmd = &cobra.Command{
	Use:   "lex [file]",
	Short: "Tokenize a .fly file and print the resulting tokens",
	Long: `Tokenize a flylang program and print the resulting tokens.

If no file is provided, reads from stdin. Use -e to tokenize an inline
expression instead.

Examples:
  flylang lex script.fly
  flylang lex -e "count: 1 + 2"
  flylang lex --show-pos --format=json script.fly`,
	Args: cobra.MaximumNArgs(1),
	RunE: runLex,
}

func init() {
	rootCmd.AddCommand(lexCmd)

	lexCmd.Flags().StringVarP(&lexEval, "eval", "e", "", "tokenize inline code instead of reading from a file")
	lexCmd.Flags().BoolVar(&lexShowPos, "show-pos", false, "show each token's line:column")
	lexCmd.Flags().BoolVar(&lexOnlyErrs, "only-errors", false, "print only the lex errors, not the token stream")
}

func runLex(_ *cobra.Command, args []string) error {
	m, warn, err := loadModule(lexEval, args)
	if err != nil {
		d := diagnostics.Classify(err)
		fmt.Fprintln(os.Stderr, d.Format(color))
		lastCode = exitCodeFor(d)
		return err
	}
	if warn != nil {
		fmt.Fprintln(os.Stderr, diagnostics.Classify(warn).Format(color))
	}

	toks, lexErrs := lexer.New(m).Tokenize()

	if len(lexErrs) > 0 {
		diags := diagnostics.ClassifyAll(lexErrs)
		fmt.Fprintln(os.Stderr, diagnostics.FormatAll(diags, color))
		lastCode = exitCodeFor(diags[0])
		return lexErrs[0]
	}

	if lexOnlyErrs {
		return nil
	}

	return printTokens(toks)
}

type tokenRecord struct {
	Kind    string `json:"kind" yaml:"kind"`
	Literal string `json:"literal" yaml:"literal"`
	Line    int    `json:"line,omitempty" yaml:"line,omitempty"`
	Column  int    `json:"column,omitempty" yaml:"column,omitempty"`
}

func printTokens(toks []token.Token) error {
	records := make([]tokenRecord, 0, len(toks))
	for _, t := range toks {
		r := tokenRecord{Kind: t.Kind.String(), Literal: t.Literal()}
		if lexShowPos {
			pos := t.Pos()
			r.Line, r.Column = pos.Line, pos.Column
		}
		records = append(records, r)
	}

	switch outputFormat {
	case "json":
		out, err := jsonMarshal(records)
		if err != nil {
			return err
		}
		fmt.Println(string(pretty.Pretty(out)))
	case "yaml":
		out, err := yaml.Marshal(records)
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	default:
		for _, r := range records {
			line := fmt.Sprintf("[%-16s] %q", r.Kind, r.Literal)
			if lexShowPos {
				line += fmt.Sprintf(" @%d:%d", r.Line, r.Column)
			}
			fmt.Println(line)
		}
	}
	return nil
}

// loadModule resolves the CLI's three input modes (inline -e, a named
// file, or stdin) into a *module.Module. module.Load's WeirdExtension is
// non-fatal — the module is still returned and usable — so it comes back
// as a separate warning rather than through the error return.
func loadModule(eval string, args []string) (m *module.Module, warn error, err error) {
	if eval != "" {
		return module.New("<eval>", eval), nil, nil
	}
	if len(args) == 1 {
		m, err = module.Load(args[0])
		if err != nil {
			if _, ok := err.(*module.WeirdExtension); ok {
				return m, err, nil
			}
			return nil, nil, err
		}
		return m, nil, nil
	}
	content, err := io.ReadAll(os.Stdin)
	if err != nil {
		return nil, nil, err
	}
	return module.New("<stdin>", string(content)), nil, nil
}
