package output

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/abdul-hamid-achik/storyspec/packages/core/result"
)

// TAPFormatter renders a document in TAP (Test Anything Protocol) format,
// one test line per scenario.
type TAPFormatter struct {
	writer io.Writer
}

type TAPOption func(*TAPFormatter)

func NewTAPFormatter(opts ...TAPOption) *TAPFormatter {
	f := &TAPFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func TAPWithWriter(w io.Writer) TAPOption {
	return func(f *TAPFormatter) {
		f.writer = w
	}
}

func (f *TAPFormatter) Format(doc *Document) error {
	fmt.Fprintf(f.writer, "TAP version 13\n")
	fmt.Fprintf(f.writer, "1..%d\n", doc.Summary.Scenarios)

	number := 0
	for _, feature := range doc.Features {
		for _, sc := range feature.Scenarios {
			number++
			name := feature.Name + " - " + sc.Name

			switch sc.Status {
			case result.StatusPassed:
				fmt.Fprintf(f.writer, "ok %d - %s\n", number, name)
			case result.StatusNotRun:
				fmt.Fprintf(f.writer, "ok %d - %s # SKIP steps never ran\n", number, name)
			default:
				fmt.Fprintf(f.writer, "not ok %d - %s\n", number, name)
				for _, st := range sc.Steps {
					if st.Status == result.StatusFailed {
						fmt.Fprintf(f.writer, "  ---\n")
						fmt.Fprintf(f.writer, "  message: %s\n", escapeYAML(st.Error))
						fmt.Fprintf(f.writer, "  step: %d\n", st.Ordinal)
						fmt.Fprintf(f.writer, "  ...\n")
					}
				}
			}
		}
	}

	fmt.Fprintln(f.writer)
	return nil
}

// escapeYAML keeps failure detail on a single YAML line.
func escapeYAML(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	return s
}
