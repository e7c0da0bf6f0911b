package output

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/abdul-hamid-achik/storyspec/packages/core/result"
)

// JUnit XML structures. Each feature maps to a testsuite, each scenario to a
// testcase; the failing step's detail lands in the <failure> element.

// JUnitTestSuites is the root element
type JUnitTestSuites struct {
	XMLName    xml.Name         `xml:"testsuites"`
	Name       string           `xml:"name,attr,omitempty"`
	Tests      int              `xml:"tests,attr"`
	Failures   int              `xml:"failures,attr"`
	Skipped    int              `xml:"skipped,attr"`
	Time       float64          `xml:"time,attr"`
	Timestamp  string           `xml:"timestamp,attr,omitempty"`
	TestSuites []JUnitTestSuite `xml:"testsuite"`
}

// JUnitTestSuite represents one feature
type JUnitTestSuite struct {
	XMLName   xml.Name        `xml:"testsuite"`
	Name      string          `xml:"name,attr"`
	Tests     int             `xml:"tests,attr"`
	Failures  int             `xml:"failures,attr"`
	Skipped   int             `xml:"skipped,attr"`
	Time      float64         `xml:"time,attr"`
	TestCases []JUnitTestCase `xml:"testcase"`
}

// JUnitTestCase represents one scenario
type JUnitTestCase struct {
	XMLName   xml.Name      `xml:"testcase"`
	Name      string        `xml:"name,attr"`
	ClassName string        `xml:"classname,attr"`
	Time      float64       `xml:"time,attr"`
	Failure   *JUnitFailure `xml:"failure,omitempty"`
	Skipped   *JUnitSkipped `xml:"skipped,omitempty"`
}

// JUnitFailure carries the failing step's detail
type JUnitFailure struct {
	Message string `xml:"message,attr,omitempty"`
	Type    string `xml:"type,attr,omitempty"`
	Content string `xml:",chardata"`
}

// JUnitSkipped marks a scenario whose steps never ran
type JUnitSkipped struct {
	Message string `xml:"message,attr,omitempty"`
}

// JUnitFormatter renders a document as JUnit XML.
type JUnitFormatter struct {
	writer io.Writer
}

type JUnitOption func(*JUnitFormatter)

func NewJUnitFormatter(opts ...JUnitOption) *JUnitFormatter {
	f := &JUnitFormatter{
		writer: os.Stdout,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func JUnitWithWriter(w io.Writer) JUnitOption {
	return func(f *JUnitFormatter) {
		f.writer = w
	}
}

func (f *JUnitFormatter) Format(doc *Document) error {
	suites := JUnitTestSuites{
		Name:       "storyspec",
		Timestamp:  doc.Time,
		TestSuites: make([]JUnitTestSuite, 0, len(doc.Features)),
	}

	for _, feature := range doc.Features {
		suite := JUnitTestSuite{
			Name:      feature.Name,
			Tests:     len(feature.Scenarios),
			TestCases: make([]JUnitTestCase, 0, len(feature.Scenarios)),
		}

		for _, sc := range feature.Scenarios {
			tc := JUnitTestCase{
				Name:      sc.Name,
				ClassName: feature.Name,
				Time:      sc.Duration,
			}
			suite.Time += sc.Duration

			switch sc.Status {
			case result.StatusFailed:
				suite.Failures++
				tc.Failure = failureFor(sc)
			case result.StatusNotRun:
				suite.Skipped++
				tc.Skipped = &JUnitSkipped{Message: "steps never ran"}
			}

			suite.TestCases = append(suite.TestCases, tc)
		}

		suites.Tests += suite.Tests
		suites.Failures += suite.Failures
		suites.Skipped += suite.Skipped
		suites.Time += suite.Time
		suites.TestSuites = append(suites.TestSuites, suite)
	}

	if suites.Timestamp == "" {
		suites.Timestamp = time.Now().Format(time.RFC3339)
	}

	fmt.Fprintf(f.writer, "<?xml version=\"1.0\" encoding=\"UTF-8\"?>\n")
	encoder := xml.NewEncoder(f.writer)
	encoder.Indent("", "  ")
	return encoder.Encode(suites)
}

func failureFor(sc Scenario) *JUnitFailure {
	var detail strings.Builder
	for _, st := range sc.Steps {
		if st.Status == result.StatusFailed {
			fmt.Fprintf(&detail, "step %d (%s): %s\n", st.Ordinal, st.Name, st.Error)
		}
	}
	return &JUnitFailure{
		Message: "scenario failed",
		Type:    "StepFailure",
		Content: detail.String(),
	}
}
