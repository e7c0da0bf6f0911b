package output

import (
	"time"

	"github.com/abdul-hamid-achik/storyspec/packages/core/result"
)

// Document is the serializable projection of one or more feature runs. It is
// what the JSON formatter emits, what the run history stores, and what every
// formatter consumes.
type Document struct {
	Summary  Summary   `json:"summary"`
	Features []Feature `json:"features"`
	Time     string    `json:"time"`
}

// Feature mirrors a result.FeatureResult.
type Feature struct {
	Name        string        `json:"name"`
	Description string        `json:"description,omitempty"`
	Status      result.Status `json:"status"`
	Scenarios   []Scenario    `json:"scenarios"`
}

// Scenario mirrors a result.ScenarioResult.
type Scenario struct {
	Name     string        `json:"name"`
	Status   result.Status `json:"status"`
	Duration float64       `json:"duration"` // seconds
	Steps    []Step        `json:"steps"`
}

// Step mirrors a result.StepResult.
type Step struct {
	Name     string        `json:"name"`
	Ordinal  int           `json:"ordinal"`
	Status   result.Status `json:"status"`
	Duration float64       `json:"duration"` // seconds
	Error    string        `json:"error,omitempty"`
}

// Summary counts outcomes across every feature in a document.
type Summary struct {
	Features        int `json:"features"`
	Scenarios       int `json:"scenarios"`
	ScenariosPassed int `json:"scenariosPassed"`
	ScenariosFailed int `json:"scenariosFailed"`
	Steps           int `json:"steps"`
	StepsPassed     int `json:"stepsPassed"`
	StepsFailed     int `json:"stepsFailed"`
	StepsNotRun     int `json:"stepsNotRun"`
}

// Passed reports whether nothing in the summarized runs failed.
func (s Summary) Passed() bool {
	return s.ScenariosFailed == 0 && s.StepsFailed == 0
}

// Add accumulates another summary, for aggregation across stored runs.
func (s *Summary) Add(o Summary) {
	s.Features += o.Features
	s.Scenarios += o.Scenarios
	s.ScenariosPassed += o.ScenariosPassed
	s.ScenariosFailed += o.ScenariosFailed
	s.Steps += o.Steps
	s.StepsPassed += o.StepsPassed
	s.StepsFailed += o.StepsFailed
	s.StepsNotRun += o.StepsNotRun
}

// NewDocument snapshots feature result trees into a Document.
func NewDocument(features ...*result.FeatureResult) *Document {
	doc := &Document{
		Features: make([]Feature, 0, len(features)),
		Time:     time.Now().Format(time.RFC3339),
	}
	for _, f := range features {
		doc.Features = append(doc.Features, newFeature(f))
	}
	doc.Summary = Summarize(doc.Features...)
	return doc
}

func newFeature(f *result.FeatureResult) Feature {
	feature := Feature{
		Name:        f.Name(),
		Description: f.Description(),
		Status:      f.Status(),
		Scenarios:   make([]Scenario, 0, len(f.Scenarios())),
	}
	for _, sc := range f.Scenarios() {
		scenario := Scenario{
			Name:     sc.Name(),
			Status:   sc.Status(),
			Duration: sc.Duration().Seconds(),
			Steps:    make([]Step, 0, len(sc.Steps())),
		}
		for _, st := range sc.Steps() {
			step := Step{
				Name:     st.Name(),
				Ordinal:  st.Ordinal(),
				Status:   st.Status(),
				Duration: st.Duration().Seconds(),
			}
			if st.Err() != nil {
				step.Error = st.Err().Error()
			}
			scenario.Steps = append(scenario.Steps, step)
		}
		feature.Scenarios = append(feature.Scenarios, scenario)
	}
	return feature
}

// Summarize counts outcomes across features.
func Summarize(features ...Feature) Summary {
	var s Summary
	s.Features = len(features)
	for _, f := range features {
		for _, sc := range f.Scenarios {
			s.Scenarios++
			switch sc.Status {
			case result.StatusPassed:
				s.ScenariosPassed++
			case result.StatusFailed:
				s.ScenariosFailed++
			}
			for _, st := range sc.Steps {
				s.Steps++
				switch st.Status {
				case result.StatusPassed:
					s.StepsPassed++
				case result.StatusFailed:
					s.StepsFailed++
				default:
					s.StepsNotRun++
				}
			}
		}
	}
	return s
}
