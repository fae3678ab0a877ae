package main

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/cwbudde/gpexpr/program"
	"github.com/cwbudde/gpexpr/sym"
	"github.com/spf13/cobra"
)

var (
	simplifyExpr   string
	simplifyNames  string
	simplifyFormat string
)

var simplifyCmd = &cobra.Command{
	Use:   "simplify",
	Short: "Symbolically simplify a math expression",
	Long: `Parses an infix mathematical expression over features X0, X1, ...,
reduces it with the symbolic engine, and prints the simplified form.`,
	RunE: runSimplify,
}

func init() {
	simplifyCmd.Flags().StringVar(&simplifyExpr, "expr", "", "Expression to simplify (required)")
	simplifyCmd.Flags().StringVar(&simplifyNames, "names", "", "Comma-separated feature names to substitute")
	simplifyCmd.Flags().StringVar(&simplifyFormat, "format", "%.8g", "Format verb for constants")

	simplifyCmd.MarkFlagRequired("expr")
	rootCmd.AddCommand(simplifyCmd)
}

func runSimplify(cmd *cobra.Command, args []string) error {
	p, err := program.FromString(simplifyExpr, program.DefaultFunctions()...)
	if err != nil {
		return fmt.Errorf("failed to import expression: %w", err)
	}

	ge, err := sym.FromProgram(p)
	if err != nil {
		return fmt.Errorf("failed to build symbolic expression: %w", err)
	}
	tree, err := sym.ToExpr(sym.Simplify(ge))
	if err != nil {
		return fmt.Errorf("failed to convert simplified expression: %w", err)
	}
	simplified, _, err := program.FromExpr(tree, program.DefaultPalette(), nil)
	if err != nil {
		return fmt.Errorf("failed to rebuild program: %w", err)
	}

	var names []string
	if simplifyNames != "" {
		names = strings.Split(simplifyNames, ",")
	}
	out, err := sym.MathString(simplified, names, simplifyFormat)
	if err != nil {
		return fmt.Errorf("failed to render expression: %w", err)
	}

	slog.Info("Expression simplified", "nodesIn", len(p), "nodesOut", len(simplified))
	fmt.Println(out)
	return nil
}
