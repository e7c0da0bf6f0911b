package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abdul-hamid-achik/storyspec/packages/core/config"
	"github.com/abdul-hamid-achik/storyspec/packages/output"
)

var reportCmd = &cobra.Command{
	Use:   "report <results.json>",
	Short: "Format a results document",
	Long: `Format a JSON results document produced by the runner.

Examples:
  storyspec report results.json
  storyspec report results.json --output junit --output-file report.xml
  storyspec report results.json -o text --no-color`,
	Args: cobra.ExactArgs(1),
	RunE: reportCommand,
}

var (
	reportOutputFlag     string
	reportOutputFileFlag string
	reportNoColorFlag    bool
	reportVerboseFlag    bool
	reportConfigFlag     string
)

func init() {
	reportCmd.Flags().StringVarP(&reportOutputFlag, "output", "o", getEnvString("STORYSPEC_OUTPUT", ""), "Output format: console, text, json, junit, tap (env: STORYSPEC_OUTPUT)")
	reportCmd.Flags().StringVar(&reportOutputFileFlag, "output-file", "", "Write output to file (default: stdout)")
	reportCmd.Flags().BoolVar(&reportNoColorFlag, "no-color", getEnvBool("STORYSPEC_NO_COLOR", false), "Disable colored output (env: STORYSPEC_NO_COLOR)")
	reportCmd.Flags().BoolVarP(&reportVerboseFlag, "verbose", "v", false, "Include step timings in console output")
	reportCmd.Flags().StringVar(&reportConfigFlag, "config", getEnvString("STORYSPEC_CONFIG", ""), "Path to config file (env: STORYSPEC_CONFIG)")
}

func reportCommand(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	cfg, err := config.LoadConfig(reportConfigFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitConfigError)
	}

	format := reportOutputFlag
	if format == "" {
		format = cfg.GetOutput()
	}
	noColor := reportNoColorFlag || cfg.GetNoColor()
	verbose := reportVerboseFlag || cfg.GetVerbose()

	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading results document: %w", err)
	}
	doc, err := output.ParseDocument(data)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(ExitParseError)
	}

	writer := io.Writer(cmd.OutOrStdout())
	if reportOutputFileFlag != "" {
		file, err := os.Create(reportOutputFileFlag)
		if err != nil {
			return fmt.Errorf("creating output file: %w", err)
		}
		defer file.Close()
		writer = file
	}

	formatter, err := newFormatter(format, writer, noColor, verbose)
	if err != nil {
		return err
	}
	if err := formatter.Format(doc); err != nil {
		return fmt.Errorf("formatting results: %w", err)
	}

	if !doc.Summary.Passed() {
		os.Exit(ExitRunFailure)
	}
	return nil
}

type formatter interface {
	Format(doc *output.Document) error
}

func newFormatter(format string, w io.Writer, noColor, verbose bool) (formatter, error) {
	switch format {
	case "console":
		return output.NewConsoleFormatter(
			output.WithWriter(w),
			output.WithNoColor(noColor),
			output.WithVerbose(verbose),
		), nil
	case "text":
		return output.NewTextFormatter(output.TextWithWriter(w)), nil
	case "json":
		return output.NewJSONFormatter(output.JSONWithWriter(w)), nil
	case "junit":
		return output.NewJUnitFormatter(output.JUnitWithWriter(w)), nil
	case "tap":
		return output.NewTAPFormatter(output.TAPWithWriter(w)), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}

func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	if val := os.Getenv(key); val != "" {
		return val == "true" || val == "1" || val == "yes"
	}
	return defaultVal
}
