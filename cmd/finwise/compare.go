package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/rgehrsitz/finwise/internal/compare"
	"github.com/rgehrsitz/finwise/internal/config"
	"github.com/rgehrsitz/finwise/internal/output"
)

func (a *app) compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [cloud|cards]",
		Short: "Compare cloud providers or credit cards",
		Long: `Compare one usage profile across AWS, Azure and GCP, or one monthly
spend across every credit card in the catalogue.

The input file is the input document of the cloud_cost or rewards calculator;
fields it leaves out keep their defaults.

Examples:
  finwise compare cloud -i usage.yaml
  finwise compare cards --set spend.dining=15000 -f csv
  finwise compare cloud -f html -o providers.html
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			subject, err := compare.ParseSubject(args[0])
			if err != nil {
				return err
			}
			inputFile, _ := cmd.Flags().GetString("input")
			sets, _ := cmd.Flags().GetStringArray("set")
			format, _ := cmd.Flags().GetString("format")
			outFile, _ := cmd.Flags().GetString("out")

			req := &config.Request{Kind: subject.Kind()}
			if inputFile != "" {
				data, err := os.ReadFile(inputFile)
				if err != nil {
					return fmt.Errorf("failed to read file %s: %w", inputFile, err)
				}
				if req, err = config.NewInputParser().ParseInput(subject.Kind(), data); err != nil {
					return err
				}
			}
			assignments, err := config.ParseAssignments(sets)
			if err != nil {
				return err
			}

			engine, err := a.engine()
			if err != nil {
				return err
			}
			compSet, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), subject, req.Decoder(assignments))
			if err != nil {
				return err
			}
			compSet.ConfigPath = a.settings.ConfigPath
			if best := compSet.Best(); best != nil {
				a.logger.Debug("compared", zap.String("subject", string(subject)), zap.String("best", best.Name))
			}

			return writeComparison(cmd, compSet, format, outFile)
		},
	}

	cmd.Flags().StringP("input", "i", "", "Input file for the cloud_cost or rewards calculator")
	cmd.Flags().StringArray("set", nil, "Override an input field, e.g. --set provider=azure (repeatable)")
	cmd.Flags().StringP("format", "f", "table",
		"Output format (table, csv, json or a report format: "+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringP("out", "o", "", "Write the comparison to this file instead of stdout")
	return cmd
}

// writeComparison renders table, csv and json with the comparison formatters
// and every other format through the report formatters.
func writeComparison(cmd *cobra.Command, compSet *compare.ComparisonSet, format, outFile string) error {
	var text string
	switch strings.ToLower(format) {
	case "table":
		text = (&compare.TableFormatter{}).Format(compSet)
	case "csv":
		s, err := (&compare.CSVFormatter{}).Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format comparison: %w", err)
		}
		text = s
	case "json":
		s, err := (&compare.JSONFormatter{Pretty: true}).Format(compSet)
		if err != nil {
			return fmt.Errorf("failed to format comparison: %w", err)
		}
		text = s + "\n"
	default:
		f := output.GetFormatterByName(format)
		if f == nil {
			return fmt.Errorf("unknown format %q (available: table, csv, json, %s)",
				format, strings.Join(output.AvailableFormatterNames(), ", "))
		}
		return writeReport(cmd, f, &output.Result{Kind: compSet.Subject.Kind(), Report: compSet}, outFile)
	}

	if outFile != "" {
		if err := os.WriteFile(outFile, []byte(text), 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", outFile, err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Comparison written to %s\n", outFile)
		return nil
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}
