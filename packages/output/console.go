package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/storyspec/packages/core/result"
)

// ConsoleFormatter renders a document as a colored terminal report.
type ConsoleFormatter struct {
	writer  io.Writer
	verbose bool
	noColor bool
}

type ConsoleOption func(*ConsoleFormatter)

func NewConsoleFormatter(opts ...ConsoleOption) *ConsoleFormatter {
	f := &ConsoleFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.noColor {
		color.NoColor = true
	}
	return f
}

func WithWriter(w io.Writer) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.writer = w
	}
}

func WithVerbose(v bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.verbose = v
	}
}

func WithNoColor(nc bool) ConsoleOption {
	return func(f *ConsoleFormatter) {
		f.noColor = nc
	}
}

func (f *ConsoleFormatter) Format(doc *Document) error {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()
	yellow := color.New(color.FgYellow).SprintFunc()
	cyan := color.New(color.FgCyan).SprintFunc()
	bold := color.New(color.Bold).SprintFunc()

	for _, feature := range doc.Features {
		fmt.Fprintf(f.writer, "%s\n", bold("Feature: "+feature.Name))
		if feature.Description != "" {
			fmt.Fprintf(f.writer, "  %s\n", feature.Description)
		}

		for _, sc := range feature.Scenarios {
			fmt.Fprintf(f.writer, "\n  %s\n", cyan("Scenario: "+sc.Name))
			for _, st := range sc.Steps {
				switch st.Status {
				case result.StatusPassed:
					fmt.Fprintf(f.writer, "    %s %s", green("✓"), st.Name)
				case result.StatusFailed:
					fmt.Fprintf(f.writer, "    %s %s", red("✗"), st.Name)
				default:
					fmt.Fprintf(f.writer, "    %s %s", yellow("-"), st.Name)
				}
				if f.verbose && st.Status != result.StatusNotRun {
					fmt.Fprintf(f.writer, " %s", cyan(fmt.Sprintf("(%.0fms)", st.Duration*1000)))
				}
				fmt.Fprintf(f.writer, "\n")
				if st.Error != "" {
					fmt.Fprintf(f.writer, "      %s %s\n", red("→"), st.Error)
				}
			}
		}
		fmt.Fprintf(f.writer, "\n")
	}

	s := doc.Summary
	fmt.Fprintf(f.writer, "Scenarios: ")
	if s.ScenariosPassed > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d passed", s.ScenariosPassed)))
	}
	if s.ScenariosFailed > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d failed", s.ScenariosFailed)))
	}
	fmt.Fprintf(f.writer, "%d total\n", s.Scenarios)

	fmt.Fprintf(f.writer, "Steps:     ")
	if s.StepsPassed > 0 {
		fmt.Fprintf(f.writer, "%s, ", green(fmt.Sprintf("%d passed", s.StepsPassed)))
	}
	if s.StepsFailed > 0 {
		fmt.Fprintf(f.writer, "%s, ", red(fmt.Sprintf("%d failed", s.StepsFailed)))
	}
	if s.StepsNotRun > 0 {
		fmt.Fprintf(f.writer, "%s, ", yellow(fmt.Sprintf("%d not run", s.StepsNotRun)))
	}
	fmt.Fprintf(f.writer, "%d total\n", s.Steps)
	return nil
}
