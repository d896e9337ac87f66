package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"

	"github.com/rgehrsitz/finwise/internal/calculation"
	"github.com/rgehrsitz/finwise/internal/config"
	"github.com/rgehrsitz/finwise/internal/domain"
	"github.com/rgehrsitz/finwise/internal/output"
)

func (a *app) calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [kind]",
		Short: "Run one calculator",
		Long: `Run one calculator and print its report.

The input starts from the calculator defaults (see "finwise defaults <kind>").
A request file (kind + input) or a bare input file overrides them, and --set
overrides single fields by their path.

Examples:
  finwise calculate emi --set principal=2500000 --set annual_rate_pct=9
  finwise calculate -i housing.yaml -f csv
  finwise calculate tax -i salary.yaml -f xlsx -o tax.xlsx
  finwise calculate cloud_cost --set provider=gcp --set compute.instance_type=n1-standard-4`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputFile, _ := cmd.Flags().GetString("input")
			sets, _ := cmd.Flags().GetStringArray("set")
			outFile, _ := cmd.Flags().GetString("out")

			var kind domain.Kind
			if len(args) == 1 {
				k, err := domain.ParseKind(args[0])
				if err != nil {
					return err
				}
				kind = k
			}
			req, err := loadRequest(kind, inputFile)
			if err != nil {
				return err
			}
			assignments, err := config.ParseAssignments(sets)
			if err != nil {
				return err
			}

			formatter := output.GetFormatterByName(a.settings.Output)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %s)",
					a.settings.Output, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			engine, err := a.engine()
			if err != nil {
				return err
			}
			report, err := engine.CalculateFrom(req.Kind, req.Decoder(assignments))
			if err != nil {
				return err
			}
			a.logger.Debug("calculated", zap.String("kind", string(req.Kind)), zap.Int("overrides", len(assignments)))

			return writeReport(cmd, formatter, &output.Result{Kind: req.Kind, Report: report}, outFile)
		},
	}

	cmd.Flags().StringP("input", "i", "", "Request file (kind + input) or, with a kind argument, a bare input file")
	cmd.Flags().StringArray("set", nil, "Override an input field, e.g. --set tenure=15 (repeatable)")
	cmd.Flags().StringP("format", "f", "console",
		"Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringP("out", "o", "", "Write the report to this file instead of stdout")
	return cmd
}

// loadRequest builds the request from a kind argument, an input file, or
// both. A file with a top-level kind is a request file; any other file is the
// input document of kind.
func loadRequest(kind domain.Kind, path string) (*config.Request, error) {
	parser := config.NewInputParser()
	if path == "" {
		if kind == "" {
			return nil, errors.New("a calculator kind or --input request file is required")
		}
		return &config.Request{Kind: kind}, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}
	if !isRequestFile(data) {
		if kind == "" {
			return nil, fmt.Errorf("%s has no kind; pass the calculator kind as an argument", path)
		}
		return parser.ParseInput(kind, data)
	}

	req, err := parser.ParseRequest(data)
	if err != nil {
		return nil, err
	}
	if kind != "" && kind != req.Kind {
		return nil, fmt.Errorf("%s is a %s request, not %s", path, req.Kind, kind)
	}
	return req, nil
}

func isRequestFile(data []byte) bool {
	var head struct {
		Kind string `yaml:"kind"`
	}
	return yaml.Unmarshal(data, &head) == nil && head.Kind != ""
}

// writeReport prints the report, or writes it to outFile. Binary formats are
// never printed; without outFile they go to a timestamped file.
func writeReport(cmd *cobra.Command, f output.Formatter, res *output.Result, outFile string) error {
	switch {
	case outFile != "":
		if err := output.WriteFormattedTo(f, res, outFile); err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", outFile)
		return nil
	case output.IsBinary(f.Name()):
		path, err := output.WriteFormatted(f, res, output.Extension(f.Name()))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", path)
		return nil
	}

	data, err := f.Format(res)
	if err != nil {
		return fmt.Errorf("failed to format %s report: %w", f.Name(), err)
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [file]",
		Short: "Validate a rates configuration or a request file",
		Long: `Validate a rates configuration file, or a request file (one with a
top-level kind) by running it against the configured rates.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("failed to read file %s: %w", path, err)
			}

			if !isRequestFile(data) {
				if _, err := config.NewInputParser().Parse(data); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Configuration file %s is valid\n", path)
				return nil
			}

			req, err := config.NewInputParser().ParseRequest(data)
			if err != nil {
				return err
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}
			if _, err := engine.CalculateFrom(req.Kind, req.Decoder(nil)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Request file %s is valid (%s)\n", path, req.Kind.Title())
			return nil
		},
	}
}

func (a *app) defaultsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "defaults [kind]",
		Short: "Print a calculator's default input as a request file",
		Long: `Print a calculator's default input as a request file that
"finwise calculate -i" accepts. With --ranges, list the adjustable fields with
their limits instead.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := domain.ParseKind(args[0])
			if err != nil {
				return err
			}
			engine, err := a.engine()
			if err != nil {
				return err
			}

			if showRanges, _ := cmd.Flags().GetBool("ranges"); showRanges {
				return printRanges(cmd.OutOrStdout(), engine.Ranges(kind))
			}

			input, err := engine.DefaultInput(kind)
			if err != nil {
				return err
			}
			enc := yaml.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent(2)
			if err := enc.Encode(struct {
				Kind  domain.Kind `yaml:"kind"`
				Input interface{} `yaml:"input"`
			}{kind, input}); err != nil {
				return fmt.Errorf("failed to encode defaults: %w", err)
			}
			return enc.Close()
		},
	}
	cmd.Flags().Bool("ranges", false, "List the adjustable fields with min, max, default and step")
	return cmd
}

func printRanges(w io.Writer, ranges []calculation.FieldRange) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "FIELD\tLABEL\tMIN\tMAX\tDEFAULT\tSTEP\tUNIT")
	for _, r := range ranges {
		if r.IsChoice() || r.DefaultOption != "" {
			fmt.Fprintf(tw, "%s\t%s\t%s\t\t%s\t\t\n", r.Field, r.Label, strings.Join(r.Options, "|"), r.DefaultOption)
			continue
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			r.Field, r.Label, r.Min, r.Max, r.Default, r.Step, r.Unit)
	}
	return tw.Flush()
}

func (a *app) kindsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "kinds",
		Short: "List the available calculators",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			engine, err := a.engine()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			for _, k := range engine.Kinds() {
				fmt.Fprintf(tw, "%s\t%s\n", k, k.Title())
			}
			return tw.Flush()
		},
	}
}
