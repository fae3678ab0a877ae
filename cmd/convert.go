package main

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/cwbudde/gpexpr/program"
	"github.com/spf13/cobra"
)

var (
	convertExpr   string
	convertFormat string
	convertAt     string
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a math expression to a prefix program",
	Long: `Parses an infix mathematical expression over features X0, X1, ... and
prints its flattened prefix-program form. With --at, the program is also
evaluated against the given sample.`,
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVar(&convertExpr, "expr", "", "Expression to convert (required)")
	convertCmd.Flags().StringVar(&convertFormat, "format", "%.8g", "Format verb for constants")
	convertCmd.Flags().StringVar(&convertAt, "at", "", "Comma-separated sample values to evaluate at")

	convertCmd.MarkFlagRequired("expr")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	p, err := program.FromString(convertExpr, program.DefaultFunctions()...)
	if err != nil {
		return fmt.Errorf("failed to import expression: %w", err)
	}

	s, maxFeature := p.Render(convertFormat)
	slog.Info("Expression converted", "nodes", len(p), "maxFeature", maxFeature)
	fmt.Println(s)

	if convertAt != "" {
		x, err := parseSample(convertAt)
		if err != nil {
			return err
		}
		v, err := p.Eval(x)
		if err != nil {
			return fmt.Errorf("failed to evaluate program: %w", err)
		}
		fmt.Printf("value at %v: %g\n", x, v)
	}
	return nil
}

func parseSample(s string) ([]float64, error) {
	parts := strings.Split(s, ",")
	x := make([]float64, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(part), 64)
		if err != nil {
			return nil, fmt.Errorf("invalid sample value %q: %w", part, err)
		}
		x[i] = v
	}
	return x, nil
}
