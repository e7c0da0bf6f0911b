package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/storyspec/packages/core/result"
)

// TextFormatter renders a document as a plain-text report, suitable for log
// files and attachments.
type TextFormatter struct {
	writer io.Writer
}

type TextOption func(*TextFormatter)

func NewTextFormatter(opts ...TextOption) *TextFormatter {
	f := &TextFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func TextWithWriter(w io.Writer) TextOption {
	return func(f *TextFormatter) {
		f.writer = w
	}
}

func (f *TextFormatter) Format(doc *Document) error {
	for _, feature := range doc.Features {
		fmt.Fprintf(f.writer, "Feature: %s\n", feature.Name)
		if feature.Description != "" {
			fmt.Fprintf(f.writer, "%s\n", feature.Description)
		}
		fmt.Fprintf(f.writer, "%s\n", strings.Repeat("=", len("Feature: ")+len(feature.Name)))

		for _, sc := range feature.Scenarios {
			fmt.Fprintf(f.writer, "\nScenario: %s [%s]\n", sc.Name, sc.Status)
			for _, st := range sc.Steps {
				marker := " "
				switch st.Status {
				case result.StatusPassed:
					marker = "+"
				case result.StatusFailed:
					marker = "x"
				}
				fmt.Fprintf(f.writer, "  %s %d. %s\n", marker, st.Ordinal, st.Name)
				if st.Error != "" {
					fmt.Fprintf(f.writer, "       %s\n", st.Error)
				}
			}
		}
		fmt.Fprintf(f.writer, "\n")
	}

	s := doc.Summary
	fmt.Fprintf(f.writer, "%d features, %d scenarios (%d passed, %d failed), %d steps\n",
		s.Features, s.Scenarios, s.ScenariosPassed, s.ScenariosFailed, s.Steps)
	return nil
}
