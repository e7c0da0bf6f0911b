package notify

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"github.com/abdul-hamid-achik/storyspec/packages/core/result"
)

// ConsoleNotifier writes progress events to a writer as they happen. It is
// the default notifier a runner is constructed with.
type ConsoleNotifier struct {
	writer  io.Writer
	noColor bool
}

type ConsoleOption func(*ConsoleNotifier)

// NewConsoleNotifier creates a console notifier writing to stdout unless
// overridden.
func NewConsoleNotifier(opts ...ConsoleOption) *ConsoleNotifier {
	n := &ConsoleNotifier{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.noColor {
		color.NoColor = true
	}
	return n
}

// WithWriter redirects events to w.
func WithWriter(w io.Writer) ConsoleOption {
	return func(n *ConsoleNotifier) {
		n.writer = w
	}
}

// WithNoColor disables ANSI colors.
func WithNoColor(nc bool) ConsoleOption {
	return func(n *ConsoleNotifier) {
		n.noColor = nc
	}
}

func (n *ConsoleNotifier) FeatureStarted(name, description string) {
	bold := color.New(color.Bold).SprintFunc()
	fmt.Fprintf(n.writer, "%s\n", bold("Feature: "+name))
	if description != "" {
		fmt.Fprintf(n.writer, "  %s\n", description)
	}
}

func (n *ConsoleNotifier) ScenarioStarted(name string) {
	cyan := color.New(color.FgCyan).SprintFunc()
	fmt.Fprintf(n.writer, "\n  %s\n", cyan("Scenario: "+name))
}

func (n *ConsoleNotifier) StepStarted(name string, ordinal, total int) {
	fmt.Fprintf(n.writer, "    [%d/%d] %s\n", ordinal, total, name)
}

func (n *ConsoleNotifier) ScenarioFinished(status result.Status) {
	sprint := color.New(color.FgRed).SprintFunc()
	switch status {
	case result.StatusPassed:
		sprint = color.New(color.FgGreen).SprintFunc()
	case result.StatusNotRun:
		sprint = color.New(color.FgYellow).SprintFunc()
	}
	fmt.Fprintf(n.writer, "  %s\n", sprint("=> "+status.String()))
}
