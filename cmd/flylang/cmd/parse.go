package cmd

import (
	"fmt"
	"os"

	"github.com/goccy/go-yaml"
	"github.com/spf13/cobra"
	"github.com/tidwall/pretty"

	"github.com/flylang/flylang/internal/fly/ast"
	"github.com/flylang/flylang/internal/fly/diagnostics"
	"github.com/flylang/flylang/internal/fly/lexer"
	"github.com/flylang/flylang/internal/fly/parser"
)

var (
	parseEval     string
	parseDumpTree bool
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a .fly file and display its AST",
	Long: `Parse flylang source and display the resulting Abstract Syntax Tree.

If no file is provided, reads from stdin. Use -e to parse a single
inline expression.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&parseEval, "eval", "e", "", "parse inline code instead of reading from a file")
	parseCmd.Flags().BoolVar(&parseDumpTree, "dump-ast", false, "print one line per top-level instruction instead of source-like output")
}

func runParse(_ *cobra.Command, args []string) error {
	m, warn, err := loadModule(parseEval, args)
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

	program, warnings, err := parser.New(m, toks).Parse()
	if len(warnings) > 0 {
		fmt.Fprintln(os.Stderr, diagnostics.FormatAll(diagnostics.ClassifyAll(warnings), color))
	}
	if err != nil {
		d := diagnostics.Classify(err)
		fmt.Fprintln(os.Stderr, d.Format(color))
		lastCode = exitCodeFor(d)
		return err
	}

	return printProgram(program)
}

func printProgram(program *ast.Program) error {
	if parseDumpTree {
		for _, instr := range program.Instructions {
			fmt.Printf("%T: %s\n", instr, instr.String())
		}
		return nil
	}

	switch outputFormat {
	case "json":
		out, err := jsonMarshal(programRecord(program))
		if err != nil {
			return err
		}
		fmt.Println(string(pretty.Pretty(out)))
	case "yaml":
		out, err := yaml.Marshal(programRecord(program))
		if err != nil {
			return err
		}
		fmt.Print(string(out))
	default:
		fmt.Println(program.String())
	}
	return nil
}

// programRecord is the JSON/YAML-facing shape of a parsed program: each
// instruction's own String() rendering alongside its Go type name, since
// the AST's concrete node types aren't themselves tagged for
// serialization.
func programRecord(program *ast.Program) map[string]any {
	instrs := make([]map[string]string, 0, len(program.Instructions))
	for _, instr := range program.Instructions {
		instrs = append(instrs, map[string]string{
			"kind": fmt.Sprintf("%T", instr),
			"text": instr.String(),
		})
	}
	return map[string]any{"instructions": instrs}
}
