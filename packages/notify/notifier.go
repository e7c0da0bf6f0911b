// Package notify delivers live progress events while scenarios run. It is a
// push-based channel decoupled from result storage: the runner tells a
// Notifier what is happening, and the result tree records what happened.
package notify

import "github.com/abdul-hamid-achik/storyspec/packages/core/result"

// Notifier receives lifecycle events during a run. Implementations must not
// fail: there are no error returns, and a notifier that panics aborts the
// run like any other unhandled failure.
type Notifier interface {
	// FeatureStarted fires once, when the runner for a feature is created.
	FeatureStarted(name, description string)

	// ScenarioStarted fires at the top of each RunScenario call.
	ScenarioStarted(name string)

	// StepStarted fires before each attempted step. Total is the number of
	// steps submitted, not the number that will actually run.
	StepStarted(name string, ordinal, total int)

	// ScenarioFinished fires exactly once per scenario, after its result has
	// been recorded, with the computed status.
	ScenarioFinished(status result.Status)
}

// Nop is a Notifier that discards all events.
type Nop struct{}

func (Nop) FeatureStarted(name, description string) {}

func (Nop) ScenarioStarted(name string) {}

func (Nop) StepStarted(name string, ordinal, total int) {}

func (Nop) ScenarioFinished(status result.Status) {}
